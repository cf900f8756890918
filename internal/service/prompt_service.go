// Package service holds the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"
	"time"

	"promptstash/internal/cache"
	"promptstash/internal/middleware"
	"promptstash/internal/models"
	"promptstash/internal/repository"
)

// readTimeout bounds every read path. List reads that exceed it degrade to
// an empty result instead of failing the request.
const readTimeout = 12 * time.Second

type PromptService struct {
	promptRepo repository.PromptRepository
	voteRepo   repository.VoteRepository
	isAdmin    func(ctx context.Context, userID uint) (bool, error)
}

type CreatePromptInput struct {
	AuthorID    uint
	Title       string
	Description string
	Content     string
	Category    string
	Tags        []string
	Published   bool
}

type UpdatePromptInput struct {
	UserID      uint
	PromptID    uint
	Title       string
	Description string
	Content     string
	Category    string
	Tags        []string
}

type ListPromptsInput struct {
	Category      string
	Search        string
	Limit         int
	Offset        int
	CurrentUserID uint
}

func NewPromptService(
	promptRepo repository.PromptRepository,
	voteRepo repository.VoteRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PromptService {
	return &PromptService{
		promptRepo: promptRepo,
		voteRepo:   voteRepo,
		isAdmin:    isAdmin,
	}
}

// ListPublished returns the browsable feed. The unfiltered first page is
// served through the cache; the viewer's vote status is re-applied on top
// of the shared cached entries.
func (s *PromptService) ListPublished(ctx context.Context, in ListPromptsInput) ([]*models.Prompt, error) {
	if in.Category != "" && in.Category != models.CategoryAll && !models.ValidCategory(in.Category) {
		return nil, models.NewValidationError("Unknown category")
	}

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var prompts []*models.Prompt
	var err error

	filter := repository.PromptFilter{
		Category: in.Category,
		Search:   in.Search,
		Limit:    in.Limit,
		Offset:   in.Offset,
	}

	cacheable := in.Search == "" &&
		(in.Category == "" || in.Category == models.CategoryAll) &&
		in.Offset == 0 && in.Limit <= 20

	if cacheable {
		err = cache.Aside(ctx, cache.PublishedListKey, &prompts, cache.ListTTL, func() error {
			var fetchErr error
			prompts, fetchErr = s.promptRepo.ListPublished(ctx, filter, 0)
			return fetchErr
		})
		if err == nil && in.CurrentUserID != 0 && len(prompts) > 0 {
			if applyErr := s.applyViewerVotes(ctx, prompts, in.CurrentUserID); applyErr != nil {
				err = applyErr
			}
		}
	} else {
		prompts, err = s.promptRepo.ListPublished(ctx, filter, in.CurrentUserID)
	}

	if err != nil {
		if models.IsTransient(err) {
			middleware.Logger.WarnContext(ctx, "prompt feed degraded to empty", "error", err)
			return []*models.Prompt{}, nil
		}
		return nil, err
	}
	if prompts == nil {
		prompts = []*models.Prompt{}
	}
	return prompts, nil
}

// applyViewerVotes overwrites UserVote on each prompt with the viewer's own
// votes. Cached entries were fetched with an anonymous viewer.
func (s *PromptService) applyViewerVotes(ctx context.Context, prompts []*models.Prompt, viewerID uint) error {
	ids := make([]uint, len(prompts))
	for i, p := range prompts {
		ids[i] = p.ID
	}
	votes, err := s.voteRepo.GetUserVotes(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	for _, p := range prompts {
		p.UserVote = votes[p.ID]
	}
	return nil
}

// ListOwn returns the requesting user's prompts, drafts included.
func (s *PromptService) ListOwn(ctx context.Context, userID uint, limit, offset int) ([]*models.Prompt, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	prompts, err := s.promptRepo.ListByAuthor(ctx, userID, limit, offset)
	if err != nil {
		if models.IsTransient(err) {
			middleware.Logger.WarnContext(ctx, "own prompts degraded to empty", "error", err)
			return []*models.Prompt{}, nil
		}
		return nil, err
	}
	if prompts == nil {
		prompts = []*models.Prompt{}
	}
	return prompts, nil
}

// GetPrompt returns a single prompt. Unpublished prompts are visible only to
// their author and admins; everyone else gets a not-found, never a hint that
// the row exists.
func (s *PromptService) GetPrompt(ctx context.Context, id uint, currentUserID uint) (*models.Prompt, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	prompt, err := s.promptRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if !prompt.Published && prompt.AuthorID != currentUserID {
		admin, err := s.currentUserIsAdmin(ctx, currentUserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewNotFoundError("Prompt", id)
		}
	}
	return prompt, nil
}

func (s *PromptService) CreatePrompt(ctx context.Context, in CreatePromptInput) (*models.Prompt, error) {
	if in.AuthorID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if !models.ValidCategory(in.Category) {
		return nil, models.NewValidationError("Unknown category")
	}

	prompt := &models.Prompt{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Category:    in.Category,
		Tags:        in.Tags,
		Published:   in.Published,
		AuthorID:    in.AuthorID,
	}
	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}
	return s.promptRepo.GetByID(ctx, prompt.ID, in.AuthorID)
}

func (s *PromptService) UpdatePrompt(ctx context.Context, in UpdatePromptInput) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(ctx, in.PromptID, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnerOrAdmin(ctx, prompt, in.UserID, "You can only update your own prompts"); err != nil {
		return nil, err
	}

	if in.Title != "" {
		prompt.Title = in.Title
	}
	if in.Description != "" {
		prompt.Description = in.Description
	}
	if in.Content != "" {
		prompt.Content = in.Content
	}
	if in.Category != "" {
		if !models.ValidCategory(in.Category) {
			return nil, models.NewValidationError("Unknown category")
		}
		prompt.Category = in.Category
	}
	if in.Tags != nil {
		prompt.Tags = in.Tags
	}

	if err := s.promptRepo.Update(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (s *PromptService) DeletePrompt(ctx context.Context, userID, promptID uint) error {
	prompt, err := s.promptRepo.GetByID(ctx, promptID, userID)
	if err != nil {
		return err
	}
	if err := s.requireOwnerOrAdmin(ctx, prompt, userID, "You can only delete your own prompts"); err != nil {
		return err
	}
	return s.promptRepo.Delete(ctx, promptID)
}

// TogglePublished flips a prompt between draft and published.
func (s *PromptService) TogglePublished(ctx context.Context, userID, promptID uint) (*models.Prompt, error) {
	prompt, err := s.promptRepo.GetByID(ctx, promptID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnerOrAdmin(ctx, prompt, userID, "You can only publish your own prompts"); err != nil {
		return nil, err
	}

	prompt.Published = !prompt.Published
	if err := s.promptRepo.Update(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// CategoryCounts returns published prompt counts keyed by category,
// including the synthetic "all" total.
func (s *PromptService) CategoryCounts(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	counts, err := s.promptRepo.CategoryCounts(ctx)
	if err != nil {
		if models.IsTransient(err) {
			middleware.Logger.WarnContext(ctx, "category counts degraded to empty", "error", err)
			return map[string]int64{models.CategoryAll: 0}, nil
		}
		return nil, err
	}
	for _, c := range models.Categories {
		if _, ok := counts[c]; !ok {
			counts[c] = 0
		}
	}
	return counts, nil
}

func (s *PromptService) requireOwnerOrAdmin(ctx context.Context, prompt *models.Prompt, userID uint, denial string) error {
	if prompt.AuthorID == userID {
		return nil
	}
	admin, err := s.currentUserIsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewUnauthorizedError(denial)
	}
	return nil
}

func (s *PromptService) currentUserIsAdmin(ctx context.Context, userID uint) (bool, error) {
	if userID == 0 || s.isAdmin == nil {
		return false, nil
	}
	return s.isAdmin(ctx, userID)
}
