package domain

import "time"

// Task is a todo item owned by exactly one user.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Attachment captures a file stored alongside a task in object storage.
// The bytes live under S3Key; this record is metadata only.
type Attachment struct {
	ID          int64
	TaskID      int64
	FileName    string
	ContentType string
	Size        int64
	S3Key       string
	CreatedAt   time.Time
}
