package post

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linkfolio/core/internal/access"
	"github.com/linkfolio/core/internal/models"
	"github.com/linkfolio/core/internal/modules/content/tag"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"github.com/linkfolio/core/internal/pkg/markdown"
	"github.com/linkfolio/core/internal/pkg/pagination"
	"github.com/linkfolio/core/internal/pkg/response"
	"github.com/linkfolio/core/internal/pkg/slug"
	"github.com/linkfolio/core/internal/pkg/textutil"
	"gorm.io/gorm"
)

const (
	// fallbackSlug is used when a title has no letters or digits.
	fallbackSlug = "post"
	// maxInsertRetries bounds retries after a concurrent writer claimed the chosen slug.
	maxInsertRetries = 16
)

// Options tunes how submitted content is stored.
type Options struct {
	SanitizeHTML bool
}

// Service owns posts and their tag associations.
type Service struct {
	db   *gorm.DB
	opts Options
}

func NewService(db *gorm.DB, opts Options) *Service {
	return &Service{db: db, opts: opts}
}

// Create stores a new post authored by the session user.
func (s *Service) Create(ctx context.Context, sess *access.Session, in CreateInput) (*View, error) {
	if err := access.RequireAdmin(sess); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, apperr.Validation("Title and content are required")
	}
	content, err := s.prepareContent(in.Content, in.Format)
	if err != nil {
		return nil, err
	}

	post := models.PostModel{
		Title:     title,
		Content:   content,
		Excerpt:   textutil.Excerpt(content, textutil.ExcerptLength),
		Featured:  in.Featured,
		Published: in.Published,
		AuthorID:  sess.UserID,
	}
	if in.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := tag.UpsertAll(tx, in.Tags)
		if err != nil {
			return err
		}
		if err := insertWithUniqueSlug(tx, &post, slugBase(title)); err != nil {
			return err
		}
		return linkTags(tx, post.ID, tags)
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return s.load(ctx, post.ID, true)
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, sess *access.Session, id string, in UpdateInput) (*View, error) {
	if err := access.RequireAdmin(sess); err != nil {
		return nil, err
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, apperr.Validation("Title cannot be empty")
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		return nil, apperr.Validation("Content cannot be empty")
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		format := ""
		if in.Format != nil {
			format = *in.Format
		}
		content, err := s.prepareContent(*in.Content, format)
		if err != nil {
			return nil, err
		}
		updates["content"] = content
		updates["excerpt"] = textutil.Excerpt(content, textutil.ExcerptLength)
	}
	if in.Featured != nil {
		updates["featured"] = *in.Featured
	}
	if in.Published != nil {
		updates["published"] = *in.Published
		if *in.Published {
			updates["published_at"] = time.Now()
		} else {
			updates["published_at"] = nil
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.PostModel
		if err := tx.Select("id").First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&post).Updates(updates).Error; err != nil {
				return err
			}
		}
		if in.Tags != nil {
			return replaceTags(tx, post.ID, *in.Tags)
		}
		return nil
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return s.load(ctx, id, true)
}

// Delete removes a post and its tag associations. Tags themselves are kept.
func (s *Service) Delete(ctx context.Context, sess *access.Session, id string) error {
	if err := access.RequireAdmin(sess); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.PostModel
		if err := tx.Select("id").First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PostModel{}, "id = ?", post.ID).Error
	})
	return wrapStorage(err)
}

// ListForAdmin returns every post, drafts included, newest first.
func (s *Service) ListForAdmin(ctx context.Context, sess *access.Session) ([]View, error) {
	if err := access.RequireAdmin(sess); err != nil {
		return nil, err
	}
	var posts []models.PostModel
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return toViews(posts, true), nil
}

// Get returns any post by id for the admin editor.
func (s *Service) Get(ctx context.Context, sess *access.Session, id string) (*View, error) {
	if err := access.RequireAdmin(sess); err != nil {
		return nil, err
	}
	return s.load(ctx, id, true)
}

// ListPublished returns one page of published posts, most recently published first.
func (s *Service) ListPublished(ctx context.Context, q ListQuery) ([]View, response.Meta, error) {
	q.Query = pagination.Normalize(q.Page, q.Limit)

	tx := s.db.WithContext(ctx).Model(&models.PostModel{}).Where("published = ?", true)
	if q.Featured {
		tx = tx.Where("featured = ?", true)
	}
	if tagSlug := strings.TrimSpace(q.Tag); tagSlug != "" {
		tagged := s.db.WithContext(ctx).Model(&models.PostTag{}).
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", tagSlug)
		tx = tx.Where("id IN (?)", tagged)
	}
	tx = tx.Order("published_at DESC").Order("created_at DESC")

	var posts []models.PostModel
	meta, err := pagination.Paginate(tx, q.Query, &posts, "Tags", "Author")
	if err != nil {
		return nil, response.Meta{}, apperr.Internal(err)
	}
	return toViews(posts, false), meta, nil
}

// GetPublishedBySlug returns a published post and counts the view.
// Unpublished posts are reported exactly like missing ones.
func (s *Service) GetPublishedBySlug(ctx context.Context, postSlug string) (*View, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&models.PostModel{}).
		Where("slug = ? AND published = ?", postSlug, true).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return nil, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("Post")
	}

	var post models.PostModel
	err := db.Preload("Tags").Preload("Author").
		Where("slug = ? AND published = ?", postSlug, true).
		First(&post).Error
	if err != nil {
		return nil, wrapStorage(err)
	}
	v := toView(&post, false)
	return &v, nil
}

func (s *Service) load(ctx context.Context, id string, withEmail bool) (*View, error) {
	var post models.PostModel
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Author").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, wrapStorage(err)
	}
	v := toView(&post, withEmail)
	return &v, nil
}

func (s *Service) prepareContent(content, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatHTML:
	case FormatMarkdown:
		rendered, err := markdown.Render(content)
		if err != nil {
			return "", apperr.Validation("Content is not valid Markdown")
		}
		content = rendered
	default:
		return "", apperr.Validation(fmt.Sprintf("Unsupported content format %q", format))
	}
	if s.opts.SanitizeHTML {
		content = textutil.SanitizeHTML(content)
	}
	return content, nil
}

func slugBase(title string) string {
	if base := slug.Generate(title); base != "" {
		return base
	}
	return fallbackSlug
}

// insertWithUniqueSlug picks the first free slug among base, base-1, base-2, ...
// and inserts the post. A unique violation from a concurrent insert restarts the
// search from the next suffix.
func insertWithUniqueSlug(tx *gorm.DB, post *models.PostModel, base string) error {
	n := 0
	for attempt := 0; ; attempt++ {
		candidate, next, err := nextFreeSlug(tx, base, n)
		if err != nil {
			return err
		}
		post.Slug = candidate

		// Savepoint so a failed insert does not abort the outer transaction on Postgres.
		err = tx.Transaction(func(sp *gorm.DB) error {
			return sp.Omit("Tags", "Author").Create(post).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt >= maxInsertRetries {
			return err
		}
		n = next + 1
	}
}

func nextFreeSlug(tx *gorm.DB, base string, from int) (string, int, error) {
	for n := from; ; n++ {
		candidate := slug.WithSuffix(base, n)
		var count int64
		if err := tx.Model(&models.PostModel{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", 0, err
		}
		if count == 0 {
			return candidate, n, nil
		}
	}
}

func replaceTags(tx *gorm.DB, postID string, names []string) error {
	tags, err := tag.UpsertAll(tx, names)
	if err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
		return err
	}
	return linkTags(tx, postID, tags)
}

func linkTags(tx *gorm.DB, postID string, tags []models.TagModel) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]models.PostTag, len(tags))
	for i, t := range tags {
		rows[i] = models.PostTag{PostID: postID, TagID: t.ID}
	}
	return tx.Create(&rows).Error
}

// wrapStorage classifies storage errors; already classified errors pass through.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Post")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("A post with this slug already exists")
	}
	return apperr.Internal(err)
}
