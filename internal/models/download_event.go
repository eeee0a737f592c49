package models

import "time"

// DownloadEvent is the audit record written whenever the file endpoint
// releases bytes. Anonymous downloads carry no user id.
type DownloadEvent struct {
	ID        string    `json:"id"`
	FileID    string    `json:"file_id"`
	Category  string    `json:"category"`
	UserID    *string   `json:"user_id,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
