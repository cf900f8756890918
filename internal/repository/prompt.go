package repository

import (
	"context"
	"errors"

	"promptstash/internal/cache"
	"promptstash/internal/models"

	"gorm.io/gorm"
)

// PromptFilter narrows a published-prompt listing.
type PromptFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// PromptRepository defines the interface for prompt data operations
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.Prompt) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Prompt, error)
	ListPublished(ctx context.Context, filter PromptFilter, viewerID uint) ([]*models.Prompt, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Prompt, error)
	Update(ctx context.Context, prompt *models.Prompt) error
	Delete(ctx context.Context, id uint) error
	CategoryCounts(ctx context.Context) (map[string]int64, error)
	ApplyVoteDelta(ctx context.Context, id uint, upDelta, downDelta int) error
}

// promptRepository implements PromptRepository
type promptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	if err := r.db.WithContext(ctx).Create(prompt).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PublishedListKey)
	cache.Invalidate(ctx, cache.CategoryCountsKey)
	return nil
}

func (r *promptRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Prompt, error) {
	var prompt models.Prompt

	fetch := func() error {
		if err := r.applyViewerVote(r.db.WithContext(ctx), viewerID).
			Preload("Author").
			First(&prompt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Prompt", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if viewerID == 0 {
		// Anonymous reads share one cache entry; the viewer vote is always empty.
		err = cache.Aside(ctx, cache.PromptKey(id), &prompt, cache.PromptTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *promptRepository) ListPublished(ctx context.Context, filter PromptFilter, viewerID uint) ([]*models.Prompt, error) {
	var prompts []*models.Prompt

	q := r.applyViewerVote(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Where("published = ?", true)

	if filter.Category != "" && filter.Category != models.CategoryAll {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		// Case-insensitive substring match across title, description and content.
		like := "%" + filter.Search + "%"
		q = q.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)",
			like, like, like,
		)
	}

	if err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&prompts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return prompts, nil
}

func (r *promptRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Prompt, error) {
	var prompts []*models.Prompt
	// The author always sees their own vote status, published or not.
	if err := r.applyViewerVote(r.db.WithContext(ctx), authorID).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&prompts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return prompts, nil
}

// applyViewerVote selects the viewer's own vote row alongside each prompt.
func (r *promptRepository) applyViewerVote(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID != 0 {
		return db.Select(
			"prompts.*, COALESCE((SELECT vote_type FROM votes WHERE votes.prompt_id = prompts.id AND votes.user_id = ?), '') AS user_vote",
			viewerID,
		)
	}
	return db.Select("prompts.*, '' AS user_vote")
}

func (r *promptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	if err := r.db.WithContext(ctx).Save(prompt).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePrompt(ctx, prompt.ID)
	return nil
}

func (r *promptRepository) Delete(ctx context.Context, id uint) error {
	// Vote rows referencing the prompt go with it; Postgres cascades via the
	// foreign key, the explicit delete keeps SQLite-backed tests honest.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prompt_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Prompt{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePrompt(ctx, id)
	return nil
}

func (r *promptRepository) CategoryCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row

	err := cache.Aside(ctx, cache.CategoryCountsKey, &rows, cache.CategoryCountTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.Prompt{}).
			Select("category, COUNT(*) as count").
			Where("published = ?", true).
			Group("category").
			Scan(&rows).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows)+1)
	var total int64
	for _, r := range rows {
		counts[r.Category] = r.Count
		total += r.Count
	}
	counts[models.CategoryAll] = total
	return counts, nil
}

// ApplyVoteDelta atomically adjusts the persisted counters, clamping at zero.
// The CASE expression is portable between PostgreSQL and SQLite.
func (r *promptRepository) ApplyVoteDelta(ctx context.Context, id uint, upDelta, downDelta int) error {
	updates := map[string]any{}
	if upDelta != 0 {
		updates["upvotes"] = gorm.Expr(
			"CASE WHEN upvotes + ? < 0 THEN 0 ELSE upvotes + ? END", upDelta, upDelta)
	}
	if downDelta != 0 {
		updates["downvotes"] = gorm.Expr(
			"CASE WHEN downvotes + ? < 0 THEN 0 ELSE downvotes + ? END", downDelta, downDelta)
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Prompt", id)
	}
	cache.InvalidatePrompt(ctx, id)
	return nil
}
