package service

import (
	"context"

	"promptstash/internal/middleware"
	"promptstash/internal/models"
	"promptstash/internal/observability"
	"promptstash/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// VoteService drives the vote state machine. Each user holds at most one
// vote per prompt: casting the same type again removes it, casting the
// opposite type switches the existing row in place.
type VoteService struct {
	voteRepo   repository.VoteRepository
	promptRepo repository.PromptRepository
}

func NewVoteService(voteRepo repository.VoteRepository, promptRepo repository.PromptRepository) *VoteService {
	return &VoteService{
		voteRepo:   voteRepo,
		promptRepo: promptRepo,
	}
}

// Cast applies one vote action and returns the prompt refetched after the
// transition, so counters and the caller's vote status are authoritative.
func (s *VoteService) Cast(ctx context.Context, userID, promptID uint, voteType string) (*models.Prompt, error) {
	ctx, span := observability.StartSpan(ctx, "vote.cast",
		attribute.Int64("prompt.id", int64(promptID)),
		attribute.String("vote.type", voteType),
	)
	defer span.End()

	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required to vote")
	}
	if !models.ValidVoteType(voteType) {
		return nil, models.NewValidationError("vote_type must be \"up\" or \"down\"")
	}

	prompt, err := s.promptRepo.GetByID(ctx, promptID, userID)
	if err != nil {
		return nil, err
	}
	// Drafts are votable only by their author; to anyone else they do not exist.
	if !prompt.Published && prompt.AuthorID != userID {
		return nil, models.NewNotFoundError("Prompt", promptID)
	}

	existing, err := s.voteRepo.GetByUserAndPrompt(ctx, userID, promptID)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		err = s.castNew(ctx, userID, promptID, voteType)
	case existing.VoteType == voteType:
		err = s.retract(ctx, existing)
	default:
		err = s.switchVote(ctx, existing, voteType)
	}
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, err
	}

	return s.promptRepo.GetByID(ctx, promptID, userID)
}

// castNew inserts a fresh vote. When a concurrent request already created
// the row, the insert is a no-op and the request is replayed against the
// now-existing vote.
func (s *VoteService) castNew(ctx context.Context, userID, promptID uint, voteType string) error {
	vote := &models.Vote{UserID: userID, PromptID: promptID, VoteType: voteType}
	created, err := s.voteRepo.Create(ctx, vote)
	if err != nil {
		return err
	}
	if !created {
		middleware.VoteConflicts.Inc()
		existing, err := s.voteRepo.GetByUserAndPrompt(ctx, userID, promptID)
		if err != nil {
			return err
		}
		if existing == nil {
			// Row vanished between insert and read; surface a retryable conflict.
			return models.NewConflictError("Vote changed concurrently, please retry")
		}
		if existing.VoteType == voteType {
			return s.retract(ctx, existing)
		}
		return s.switchVote(ctx, existing, voteType)
	}

	up, down := voteDelta(voteType, 1)
	return s.promptRepo.ApplyVoteDelta(ctx, promptID, up, down)
}

// retract removes an existing vote of the same type (the toggle-off case).
func (s *VoteService) retract(ctx context.Context, vote *models.Vote) error {
	if err := s.voteRepo.Delete(ctx, vote.ID); err != nil {
		return err
	}
	up, down := voteDelta(vote.VoteType, -1)
	return s.promptRepo.ApplyVoteDelta(ctx, vote.PromptID, up, down)
}

// switchVote flips an existing vote to the opposite type, moving one unit
// from one counter to the other.
func (s *VoteService) switchVote(ctx context.Context, vote *models.Vote, voteType string) error {
	if err := s.voteRepo.UpdateType(ctx, vote.ID, voteType); err != nil {
		return err
	}

	oldUp, oldDown := voteDelta(vote.VoteType, -1)
	newUp, newDown := voteDelta(voteType, 1)
	return s.promptRepo.ApplyVoteDelta(ctx, vote.PromptID, oldUp+newUp, oldDown+newDown)
}

func voteDelta(voteType string, n int) (up, down int) {
	if voteType == models.VoteUp {
		return n, 0
	}
	return 0, n
}
