package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventlane/server/internal/domain/requests"
	"github.com/jackc/pgx/v5"
)

var _ requests.Repository = (*RequestRepository)(nil)

const requestColumns = `id, created, event_id, requester_id, status`

func (r *RequestRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *RequestRepository) Create(ctx context.Context, eventID, requesterID int64, status requests.Status, created time.Time) (*requests.Request, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO requests (event_id, requester_id, status, created)
VALUES ($1, $2, $3, $4)
RETURNING `+requestColumns,
		eventID, requesterID, status, created)

	request, err := scanRequest(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, requests.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return nil, requests.ErrNotFound
		}
		return nil, fmt.Errorf("create request: %w", err)
	}
	return request, nil
}

func (r *RequestRepository) LockEvent(ctx context.Context, eventID int64) error {
	var id int64
	err := r.queryer().QueryRow(ctx, `
SELECT id FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return requests.ErrNotFound
		}
		return fmt.Errorf("lock event: %w", err)
	}
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*requests.Request, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)

	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, requests.ErrNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return request, nil
}

func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]requests.Request, error) {
	return r.list(ctx, `
SELECT `+requestColumns+` FROM requests WHERE requester_id = $1 ORDER BY id`, requesterID)
}

func (r *RequestRepository) ListByEvent(ctx context.Context, eventID int64) ([]requests.Request, error) {
	return r.list(ctx, `
SELECT `+requestColumns+` FROM requests WHERE event_id = $1 ORDER BY id`, eventID)
}

func (r *RequestRepository) FindByEventAndIDs(ctx context.Context, eventID int64, ids []int64) ([]requests.Request, error) {
	return r.list(ctx, `
SELECT `+requestColumns+` FROM requests WHERE event_id = $1 AND id = ANY($2) ORDER BY id`, eventID, ids)
}

func (r *RequestRepository) CountByEventAndStatus(ctx context.Context, eventID int64, status requests.Status) (int64, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = $2`, eventID, status)

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return count, nil
}

func (r *RequestRepository) ExistsByEventAndRequester(ctx context.Context, eventID, requesterID int64) (bool, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM requests WHERE event_id = $1 AND requester_id = $2)`, eventID, requesterID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check request: %w", err)
	}
	return exists, nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status requests.Status) (*requests.Request, error) {
	row := r.queryer().QueryRow(ctx, `
UPDATE requests SET status = $2 WHERE id = $1 RETURNING `+requestColumns, id, status)

	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, requests.ErrNotFound
		}
		return nil, fmt.Errorf("update request: %w", err)
	}
	return request, nil
}

func (r *RequestRepository) UpdateStatuses(ctx context.Context, ids []int64, status requests.Status) ([]requests.Request, error) {
	if len(ids) == 0 {
		return []requests.Request{}, nil
	}
	return r.list(ctx, `
UPDATE requests SET status = $2 WHERE id = ANY($1) RETURNING `+requestColumns, ids, status)
}

func (r *RequestRepository) list(ctx context.Context, query string, args ...any) ([]requests.Request, error) {
	rows, err := r.queryer().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	items := make([]requests.Request, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		items = append(items, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return items, nil
}

func scanRequest(row pgx.Row) (*requests.Request, error) {
	var request requests.Request
	err := row.Scan(&request.ID, &request.Created, &request.EventID, &request.RequesterID, &request.Status)
	if err != nil {
		return nil, err
	}
	return &request, nil
}
