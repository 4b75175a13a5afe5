package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

const createAttachmentsTable = `
CREATE TABLE IF NOT EXISTS attachments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	file_name TEXT NOT NULL DEFAULT '',
	content_type TEXT NOT NULL DEFAULT '',
	size INTEGER NOT NULL DEFAULT 0,
	s3_key TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
`

type AttachmentRepository struct {
	db *sql.DB
}

func NewAttachmentRepository(db *sql.DB) repository.AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAttachmentsTable); err != nil {
		return fmt.Errorf("create attachments table: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) Create(ctx context.Context, att *domain.Attachment) (int64, error) {
	att.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO attachments (task_id, file_name, content_type, size, s3_key, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		att.TaskID,
		att.FileName,
		att.ContentType,
		att.Size,
		att.S3Key,
		att.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert attachment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("attachment last insert id: %w", err)
	}
	att.ID = id
	return id, nil
}

func (r *AttachmentRepository) Get(ctx context.Context, id int64) (*domain.Attachment, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, task_id, file_name, content_type, size, s3_key, created_at
FROM attachments
WHERE id = ?`,
		id,
	)

	var att domain.Attachment
	if err := row.Scan(
		&att.ID,
		&att.TaskID,
		&att.FileName,
		&att.ContentType,
		&att.Size,
		&att.S3Key,
		&att.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("attachment %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan attachment: %w", err)
	}
	return &att, nil
}

func (r *AttachmentRepository) ListByTask(ctx context.Context, taskID int64) ([]domain.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, task_id, file_name, content_type, size, s3_key, created_at
FROM attachments
WHERE task_id = ?
ORDER BY id`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var atts []domain.Attachment
	for rows.Next() {
		var att domain.Attachment
		if err := rows.Scan(
			&att.ID,
			&att.TaskID,
			&att.FileName,
			&att.ContentType,
			&att.Size,
			&att.S3Key,
			&att.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attachment row: %w", err)
		}
		atts = append(atts, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attachments: %w", err)
	}
	return atts, nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete attachment rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("attachment %d: %w", id, repository.ErrNotFound)
	}
	return nil
}
