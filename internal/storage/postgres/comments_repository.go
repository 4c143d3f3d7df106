package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventlane/server/internal/domain/comments"
	"github.com/jackc/pgx/v5"
)

var _ comments.Repository = (*CommentRepository)(nil)

const commentColumns = `id, text, event_id, author_id, created`

func (r *CommentRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *CommentRepository) Create(ctx context.Context, eventID, authorID int64, text string, created time.Time) (*comments.Comment, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO comments (event_id, author_id, text, created)
VALUES ($1, $2, $3, $4)
RETURNING `+commentColumns,
		eventID, authorID, text, created)

	comment, err := scanComment(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, comments.ErrNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepository) Update(ctx context.Context, id int64, text string) (*comments.Comment, error) {
	row := r.queryer().QueryRow(ctx, `
UPDATE comments SET text = $2 WHERE id = $1 RETURNING `+commentColumns, id, text)

	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comments.ErrNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comments.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*comments.Comment, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)

	comment, err := scanComment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comments.ErrNotFound
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepository) ListByEvent(ctx context.Context, eventID int64, offset, limit int) ([]comments.Comment, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT `+commentColumns+` FROM comments
WHERE event_id = $1
ORDER BY created DESC, id DESC
OFFSET $2 LIMIT $3`, eventID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	items := make([]comments.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return items, nil
}

func scanComment(row pgx.Row) (*comments.Comment, error) {
	var comment comments.Comment
	err := row.Scan(&comment.ID, &comment.Text, &comment.EventID, &comment.AuthorID, &comment.Created)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
