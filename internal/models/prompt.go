package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Categories is the fixed sidebar taxonomy. CategoryAll is a filter value
// only and is never stored on a prompt.
const CategoryAll = "all"

// Categories lists the storable prompt categories.
var Categories = []string{"coding", "writing", "marketing", "productivity", "design"}

// ValidCategory reports whether c is a storable category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// StringList is a list of free-form tags stored as a JSON text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Prompt represents a reusable text template shared in the application.
type Prompt struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Category    string     `gorm:"not null;index" json:"category"`
	Tags        StringList `gorm:"type:text" json:"tags"`
	// Upvotes and Downvotes are persisted counters kept equal to the number
	// of matching vote rows; adjusted atomically and clamped at zero.
	Upvotes   int     `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int     `gorm:"not null;default:0" json:"downvotes"`
	Published bool    `gorm:"not null;default:false;index" json:"published"`
	AuthorID  uint    `gorm:"not null;index" json:"author_id"`
	Author    Profile `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	// UserVote is the requesting viewer's vote ("", "up" or "down"); computed
	// at query time, empty for anonymous viewers.
	UserVote  string    `gorm:"->" json:"user_vote"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
