package server

import (
	"fmt"
	"net/http"
	"testing"

	"promptstash/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVoteEndpoint(t *testing.T) {
	app, srv, db := newTestServer(t)
	author, _ := createAccount(t, srv, db, "author@example.com", models.RoleUser)
	_, voterToken := createAccount(t, srv, db, "voter@example.com", models.RoleUser)

	prompt := models.Prompt{Title: "Votable", Content: "c", Category: "coding", AuthorID: author.ID, Published: true}
	require.NoError(t, db.Create(&prompt).Error)
	path := fmt.Sprintf("/api/prompts/%d/vote", prompt.ID)

	// Guests cannot vote.
	resp := doJSON(t, app, http.MethodPost, path, "", fiber.Map{"vote_type": "up"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// First upvote.
	resp = doJSON(t, app, http.MethodPost, path, voterToken, fiber.Map{"vote_type": "up"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodePrompt(t, resp)
	assert.Equal(t, 1, got.Upvotes)
	assert.Equal(t, 0, got.Downvotes)
	assert.Equal(t, "up", got.UserVote)

	// Switching to a downvote moves one unit between counters.
	resp = doJSON(t, app, http.MethodPost, path, voterToken, fiber.Map{"vote_type": "down"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decodePrompt(t, resp)
	assert.Equal(t, 0, got.Upvotes)
	assert.Equal(t, 1, got.Downvotes)
	assert.Equal(t, "down", got.UserVote)

	// Repeating the same vote toggles it off.
	resp = doJSON(t, app, http.MethodPost, path, voterToken, fiber.Map{"vote_type": "down"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decodePrompt(t, resp)
	assert.Equal(t, 0, got.Upvotes)
	assert.Equal(t, 0, got.Downvotes)
	assert.Empty(t, got.UserVote)

	// Only one vote row may ever exist for the pair.
	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCastVoteValidation(t *testing.T) {
	app, srv, db := newTestServer(t)
	author, token := createAccount(t, srv, db, "author@example.com", models.RoleUser)

	prompt := models.Prompt{Title: "Votable", Content: "c", Category: "coding", AuthorID: author.ID, Published: true}
	require.NoError(t, db.Create(&prompt).Error)

	// Unknown vote type.
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/prompts/%d/vote", prompt.ID), token,
		fiber.Map{"vote_type": "sideways"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Voting on a missing prompt.
	resp = doJSON(t, app, http.MethodPost, "/api/prompts/9999/vote", token, fiber.Map{"vote_type": "up"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVotersSeeOwnVotesInBrowse(t *testing.T) {
	app, srv, db := newTestServer(t)
	author, _ := createAccount(t, srv, db, "author@example.com", models.RoleUser)
	voter, voterToken := createAccount(t, srv, db, "voter@example.com", models.RoleUser)

	prompt := models.Prompt{Title: "Votable", Content: "c", Category: "coding", AuthorID: author.ID, Published: true}
	require.NoError(t, db.Create(&prompt).Error)
	require.NoError(t, db.Create(&models.Vote{UserID: voter.ID, PromptID: prompt.ID, VoteType: models.VoteUp}).Error)
	require.NoError(t, db.Model(&models.Prompt{}).Where("id = ?", prompt.ID).Update("upvotes", 1).Error)

	// The voter's browse view carries their vote; an anonymous view does not.
	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/prompts/%d", prompt.ID), voterToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "up", decodePrompt(t, resp).UserVote)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/prompts/%d", prompt.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodePrompt(t, resp).UserVote)
}
