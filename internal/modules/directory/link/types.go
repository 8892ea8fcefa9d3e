package link

type CreateLinkDTO struct {
	URL        string `json:"url"`
	CategoryID string `json:"categoryId"`
}

// BatchLinkDTO carries newline-separated URLs for one category.
type BatchLinkDTO struct {
	URLs       string `json:"urls"`
	CategoryID string `json:"categoryId"`
}

// BatchItem is the outcome for one submitted line.
type BatchItem struct {
	URL   string `json:"url"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// BatchResult reports partial success of a batch create.
type BatchResult struct {
	Created int         `json:"created"`
	Failed  int         `json:"failed"`
	Results []BatchItem `json:"results"`
}
