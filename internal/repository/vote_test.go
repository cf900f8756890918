package repository

import (
	"context"
	"testing"

	"promptstash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	user := createTestProfile(t, db, "voter@example.com")
	prompt := createTestPrompt(t, db, user.ID, "Voted", true)

	vote := &models.Vote{UserID: user.ID, PromptID: prompt.ID, VoteType: models.VoteUp}
	created, err := repo.Create(ctx, vote)
	require.NoError(t, err)
	assert.True(t, created)

	got, err := repo.GetByUserAndPrompt(ctx, user.ID, prompt.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.VoteUp, got.VoteType)

	none, err := repo.GetByUserAndPrompt(ctx, user.ID, 9999)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestVoteRepository_DuplicateCreateIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	user := createTestProfile(t, db, "voter@example.com")
	prompt := createTestPrompt(t, db, user.ID, "Voted", true)

	first := &models.Vote{UserID: user.ID, PromptID: prompt.ID, VoteType: models.VoteUp}
	created, err := repo.Create(ctx, first)
	require.NoError(t, err)
	require.True(t, created)

	// A second insert for the same (user, prompt) pair does not error and
	// reports that no row was created.
	second := &models.Vote{UserID: user.ID, PromptID: prompt.ID, VoteType: models.VoteDown}
	created, err = repo.Create(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.GetByUserAndPrompt(ctx, user.ID, prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoteUp, got.VoteType)
}

func TestVoteRepository_UpdateType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	user := createTestProfile(t, db, "voter@example.com")
	prompt := createTestPrompt(t, db, user.ID, "Voted", true)

	vote := &models.Vote{UserID: user.ID, PromptID: prompt.ID, VoteType: models.VoteUp}
	_, err := repo.Create(ctx, vote)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateType(ctx, vote.ID, models.VoteDown))

	got, err := repo.GetByUserAndPrompt(ctx, user.ID, prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoteDown, got.VoteType)
	assert.Equal(t, vote.ID, got.ID)

	err = repo.UpdateType(ctx, 9999, models.VoteUp)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestVoteRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	user := createTestProfile(t, db, "voter@example.com")
	prompt := createTestPrompt(t, db, user.ID, "Voted", true)

	vote := &models.Vote{UserID: user.ID, PromptID: prompt.ID, VoteType: models.VoteUp}
	_, err := repo.Create(ctx, vote)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, vote.ID))

	got, err := repo.GetByUserAndPrompt(ctx, user.ID, prompt.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVoteRepository_GetUserVotes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoteRepository(db)
	ctx := context.Background()

	user := createTestProfile(t, db, "voter@example.com")
	p1 := createTestPrompt(t, db, user.ID, "First", true)
	p2 := createTestPrompt(t, db, user.ID, "Second", true)
	p3 := createTestPrompt(t, db, user.ID, "Third", true)

	_, err := repo.Create(ctx, &models.Vote{UserID: user.ID, PromptID: p1.ID, VoteType: models.VoteUp})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Vote{UserID: user.ID, PromptID: p2.ID, VoteType: models.VoteDown})
	require.NoError(t, err)

	votes, err := repo.GetUserVotes(ctx, user.ID, []uint{p1.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{
		p1.ID: models.VoteUp,
		p2.ID: models.VoteDown,
	}, votes)

	// Anonymous viewers have no votes.
	votes, err = repo.GetUserVotes(ctx, 0, []uint{p1.ID})
	require.NoError(t, err)
	assert.Empty(t, votes)
}
