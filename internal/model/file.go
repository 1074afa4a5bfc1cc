package model

import "time"

// File is the metadata record for an uploaded object. The stored object and
// this record are both present or both absent; a divergence is an
// inconsistency that must be surfaced, never silently accepted.
type File struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}
