package model

import "time"

// Project is a saved humanization result owned by exactly one user.
// The original/humanized pair is stored verbatim; saving costs credits,
// charged atomically with record creation.
type Project struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	OriginalText  string    `json:"original_text"`
	HumanizedText string    `json:"humanized_text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
