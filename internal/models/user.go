package models

// Role is the coarse permission flag carried by a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// UserModel is an account that can sign in. Only ADMIN users may mutate content.
type UserModel struct {
	Base
	Name     string `json:"name"`
	Email    string `json:"email"    gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`
	Role     Role   `json:"role"     gorm:"type:varchar(16);default:'USER';not null"`

	Posts []PostModel `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}

func (UserModel) TableName() string { return "users" }

// IsAdmin reports whether the user holds the ADMIN role.
func (u UserModel) IsAdmin() bool { return u.Role == RoleAdmin }

// AuthorSummary is the trimmed author shape embedded in post responses.
type AuthorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
