package post

import (
	"sort"

	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/pkg/pagination"
	"github.com/linkfolio/core/internal/pkg/textutil"
)

// Content formats accepted on write. HTML is stored as submitted; Markdown is rendered first.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// CreateInput is the request body for creating a post.
type CreateInput struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Featured  bool     `json:"featured"`
	Published bool     `json:"published"`
	Format    string   `json:"format"`
}

// UpdateInput is the request body for a partial update. Nil fields are left unchanged;
// a non-nil Tags replaces the whole tag set.
type UpdateInput struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Tags      *[]string `json:"tags"`
	Featured  *bool     `json:"featured"`
	Published *bool     `json:"published"`
	Format    *string   `json:"format"`
}

// ListQuery holds the public listing filters.
type ListQuery struct {
	pagination.Query
	Tag      string
	Featured bool
}

// View is the API shape of a post.
type View struct {
	models.PostModel
	Author      *models.AuthorSummary `json:"author"`
	ReadingTime int                   `json:"readingTime"`
}

func toView(p *models.PostModel, withEmail bool) View {
	v := View{PostModel: *p, ReadingTime: textutil.ReadingTime(p.Content)}
	if v.Tags == nil {
		v.Tags = []models.TagModel{}
	}
	sort.Slice(v.Tags, func(i, j int) bool { return v.Tags[i].Name < v.Tags[j].Name })
	if p.Author != nil {
		v.Author = &models.AuthorSummary{ID: p.Author.ID, Name: p.Author.Name}
		if withEmail {
			v.Author.Email = p.Author.Email
		}
	}
	v.PostModel.Author = nil
	return v
}

func toViews(posts []models.PostModel, withEmail bool) []View {
	out := make([]View, len(posts))
	for i := range posts {
		out[i] = toView(&posts[i], withEmail)
	}
	return out
}
