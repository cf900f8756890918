package models

import "time"

// Vote types.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// ValidVoteType reports whether t is a known vote type.
func ValidVoteType(t string) bool {
	return t == VoteUp || t == VoteDown
}

// Vote represents a single user's opinion on one prompt.
// The combination of UserID and PromptID must be unique: a user holds zero
// or one vote per prompt. A repeated vote of the same type removes the row;
// a vote of the opposite type updates it in place.
type Vote struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"not null;uniqueIndex:idx_user_prompt" json:"user_id"`
	PromptID  uint    `gorm:"not null;uniqueIndex:idx_user_prompt" json:"prompt_id"`
	VoteType  string  `gorm:"not null" json:"vote_type"`
	User      Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Prompt    Prompt  `gorm:"foreignKey:PromptID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
