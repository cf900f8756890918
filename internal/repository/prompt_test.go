package repository

import (
	"context"
	"testing"

	"promptstash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author@example.com")
	prompt := createTestPrompt(t, db, author.ID, "Code Reviewer", true)

	got, err := repo.GetByID(ctx, prompt.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Code Reviewer", got.Title)
	assert.Equal(t, author.ID, got.Author.ID)
	assert.Empty(t, got.UserVote)

	_, err = repo.GetByID(ctx, 9999, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPromptRepository_GetByID_ViewerVote(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author@example.com")
	voter := createTestProfile(t, db, "voter@example.com")
	prompt := createTestPrompt(t, db, author.ID, "SQL Tutor", true)

	require.NoError(t, db.Create(&models.Vote{
		UserID:   voter.ID,
		PromptID: prompt.ID,
		VoteType: models.VoteUp,
	}).Error)

	got, err := repo.GetByID(ctx, prompt.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoteUp, got.UserVote)

	// The author never voted, so their view carries no vote.
	got, err = repo.GetByID(ctx, prompt.ID, author.ID)
	require.NoError(t, err)
	assert.Empty(t, got.UserVote)
}

func TestPromptRepository_ListPublished_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author@example.com")
	createTestPrompt(t, db, author.ID, "Code Reviewer", true)
	createTestPrompt(t, db, author.ID, "Blog Outliner", true)
	createTestPrompt(t, db, author.ID, "Hidden Draft", false)

	writing := &models.Prompt{
		Title:     "Essay Grader",
		Content:   "Grade this essay.",
		Category:  "writing",
		AuthorID:  author.ID,
		Published: true,
	}
	require.NoError(t, db.Create(writing).Error)

	tests := []struct {
		name       string
		filter     PromptFilter
		wantTitles []string
	}{
		{
			name:       "all published",
			filter:     PromptFilter{Limit: 50},
			wantTitles: []string{"Code Reviewer", "Blog Outliner", "Essay Grader"},
		},
		{
			name:       "category all is no filter",
			filter:     PromptFilter{Category: models.CategoryAll, Limit: 50},
			wantTitles: []string{"Code Reviewer", "Blog Outliner", "Essay Grader"},
		},
		{
			name:       "category narrows",
			filter:     PromptFilter{Category: "writing", Limit: 50},
			wantTitles: []string{"Essay Grader"},
		},
		{
			name:       "search is case-insensitive substring",
			filter:     PromptFilter{Search: "code", Limit: 50},
			wantTitles: []string{"Code Reviewer"},
		},
		{
			name:       "search with no matches",
			filter:     PromptFilter{Search: "nonexistent", Limit: 50},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListPublished(ctx, tt.filter, 0)
			require.NoError(t, err)

			titles := make([]string, 0, len(got))
			for _, p := range got {
				titles = append(titles, p.Title)
			}
			assert.ElementsMatch(t, tt.wantTitles, titles)
		})
	}
}

func TestPromptRepository_PublishVisibility(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author@example.com")
	draft := createTestPrompt(t, db, author.ID, "My Draft", false)

	published, err := repo.ListPublished(ctx, PromptFilter{Limit: 50}, 0)
	require.NoError(t, err)
	assert.Empty(t, published)

	own, err := repo.ListByAuthor(ctx, author.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "My Draft", own[0].Title)

	draft.Published = true
	require.NoError(t, repo.Update(ctx, draft))

	published, err = repo.ListPublished(ctx, PromptFilter{Limit: 50}, 0)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "My Draft", published[0].Title)
}

func TestPromptRepository_ApplyVoteDelta(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author@example.com")
	prompt := createTestPrompt(t, db, author.ID, "Counter Test", true)

	require.NoError(t, repo.ApplyVoteDelta(ctx, prompt.ID, 1, 0))
	require.NoError(t, repo.ApplyVoteDelta(ctx, prompt.ID, 1, 1))

	got, err := repo.GetByID(ctx, prompt.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Upvotes)
	assert.Equal(t, 1, got.Downvotes)

	// Counters clamp at zero instead of going negative.
	require.NoError(t, repo.ApplyVoteDelta(ctx, prompt.ID, -5, -5))

	got, err = repo.GetByID(ctx, prompt.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Upvotes)
	assert.Equal(t, 0, got.Downvotes)

	err = repo.ApplyVoteDelta(ctx, 9999, 1, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPromptRepository_Delete_RemovesVotes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author@example.com")
	voter := createTestProfile(t, db, "voter@example.com")
	prompt := createTestPrompt(t, db, author.ID, "Doomed", true)

	require.NoError(t, db.Create(&models.Vote{
		UserID:   voter.ID,
		PromptID: prompt.ID,
		VoteType: models.VoteDown,
	}).Error)

	require.NoError(t, repo.Delete(ctx, prompt.ID))

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("prompt_id = ?", prompt.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPromptRepository_CategoryCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()

	author := createTestProfile(t, db, "author@example.com")
	createTestPrompt(t, db, author.ID, "One", true)
	createTestPrompt(t, db, author.ID, "Two", true)
	createTestPrompt(t, db, author.ID, "Draft", false)

	writing := &models.Prompt{
		Title:     "Three",
		Content:   "c",
		Category:  "writing",
		AuthorID:  author.ID,
		Published: true,
	}
	require.NoError(t, db.Create(writing).Error)

	counts, err := repo.CategoryCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["coding"])
	assert.Equal(t, int64(1), counts["writing"])
	assert.Equal(t, int64(3), counts[models.CategoryAll])
}
