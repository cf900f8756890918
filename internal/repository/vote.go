package repository

import (
	"context"
	"errors"

	"promptstash/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository defines persistence operations for vote rows.
type VoteRepository interface {
	GetByUserAndPrompt(ctx context.Context, userID, promptID uint) (*models.Vote, error)
	Create(ctx context.Context, vote *models.Vote) (bool, error)
	UpdateType(ctx context.Context, voteID uint, voteType string) error
	Delete(ctx context.Context, voteID uint) error
	GetUserVotes(ctx context.Context, userID uint, promptIDs []uint) (map[uint]string, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository returns a new VoteRepository implementation.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// GetByUserAndPrompt returns the user's vote on a prompt, or (nil, nil) when
// no vote exists.
func (r *voteRepository) GetByUserAndPrompt(ctx context.Context, userID, promptID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &vote, nil
}

// Create inserts a vote row. It reports created=false without error when a
// concurrent insert already claimed the (user, prompt) pair.
func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "prompt_id"}},
			DoNothing: true,
		}).
		Create(vote)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateType switches an existing vote in place, preserving the row identity.
func (r *voteRepository) UpdateType(ctx context.Context, voteID uint, voteType string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("id = ?", voteID).
		Update("vote_type", voteType)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Vote", voteID)
	}
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, voteID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Vote{}, voteID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetUserVotes returns the user's vote type per prompt for the given IDs.
// Prompts the user never voted on are absent from the map.
func (r *voteRepository) GetUserVotes(ctx context.Context, userID uint, promptIDs []uint) (map[uint]string, error) {
	votes := make(map[uint]string, len(promptIDs))
	if userID == 0 || len(promptIDs) == 0 {
		return votes, nil
	}

	var rows []models.Vote
	if err := r.db.WithContext(ctx).
		Select("prompt_id, vote_type").
		Where("user_id = ? AND prompt_id IN ?", userID, promptIDs).
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, v := range rows {
		votes[v.PromptID] = v.VoteType
	}
	return votes, nil
}
