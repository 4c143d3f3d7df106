package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"

	"github.com/eventlane/server/internal/domain/events"
)

var _ events.Repository = (*EventRepository)(nil)

var dialect = goqu.Dialect("postgres")

// eventColumns is the joined projection shared by every event query. The
// alias order must match scanEvent.
var eventColumns = []any{
	goqu.I("e.id"),
	goqu.I("e.title"),
	goqu.I("e.annotation"),
	goqu.I("e.description"),
	goqu.I("e.lat"),
	goqu.I("e.lon"),
	goqu.I("e.paid"),
	goqu.I("e.participant_limit"),
	goqu.I("e.request_moderation"),
	goqu.I("e.state"),
	goqu.I("e.created_on"),
	goqu.I("e.event_date"),
	goqu.I("e.published_on"),
	goqu.I("c.id").As("category_id"),
	goqu.I("c.name").As("category_name"),
	goqu.I("u.id").As("initiator_id"),
	goqu.I("u.name").As("initiator_name"),
	goqu.I("u.email").As("initiator_email"),
}

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (
	title, annotation, description, category_id, initiator_id,
	lat, lon, paid, participant_limit, request_moderation,
	state, created_on, event_date
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`,
		params.Title, params.Annotation, params.Description,
		params.CategoryID, params.InitiatorID,
		params.Location.Lat, params.Location.Lon,
		params.Paid, params.ParticipantLimit, params.RequestModeration,
		params.State, params.CreatedOn, params.EventDate)

	var id int64
	if err := row.Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *EventRepository) Save(ctx context.Context, event *events.Event) (*events.Event, error) {
	tag, err := r.queryer().Exec(ctx, `
UPDATE events SET
	title = $2, annotation = $3, description = $4, category_id = $5,
	lat = $6, lon = $7, paid = $8, participant_limit = $9,
	request_moderation = $10, state = $11, event_date = $12, published_on = $13
WHERE id = $1`,
		event.ID,
		event.Title, event.Annotation, event.Description, event.Category.ID,
		event.Location.Lat, event.Location.Lon, event.Paid, event.ParticipantLimit,
		event.RequestModeration, event.State, event.EventDate, event.PublishedOn)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("save event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, events.ErrNotFound
	}
	return r.GetByID(ctx, event.ID)
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*events.Event, error) {
	return r.getOne(ctx, goqu.Ex{"e.id": id})
}

func (r *EventRepository) GetByInitiatorAndID(ctx context.Context, initiatorID, eventID int64) (*events.Event, error) {
	return r.getOne(ctx, goqu.Ex{"e.id": eventID, "e.initiator_id": initiatorID})
}

func (r *EventRepository) getOne(ctx context.Context, where goqu.Ex) (*events.Event, error) {
	query, args, err := baseSelect().Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build event query: %w", err)
	}

	row := r.queryer().QueryRow(ctx, query, args...)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) ListByInitiator(ctx context.Context, initiatorID int64, offset, limit int) ([]events.Event, error) {
	stmt := baseSelect().
		Where(goqu.Ex{"e.initiator_id": initiatorID}).
		Order(goqu.I("e.id").Asc()).
		Offset(uint(offset)).
		Limit(uint(limit))
	return r.list(ctx, stmt)
}

func (r *EventRepository) SearchAdmin(ctx context.Context, filters events.AdminFilters, offset, limit int) ([]events.Event, error) {
	stmt := baseSelect()

	if len(filters.Users) > 0 {
		stmt = stmt.Where(goqu.I("e.initiator_id").In(filters.Users))
	}
	if len(filters.States) > 0 {
		stmt = stmt.Where(goqu.I("e.state").In(filters.States))
	}
	if len(filters.Categories) > 0 {
		stmt = stmt.Where(goqu.I("e.category_id").In(filters.Categories))
	}
	if filters.RangeStart != nil {
		stmt = stmt.Where(goqu.I("e.event_date").Gte(*filters.RangeStart))
	}
	if filters.RangeEnd != nil {
		stmt = stmt.Where(goqu.I("e.event_date").Lte(*filters.RangeEnd))
	}

	stmt = stmt.Order(goqu.I("e.id").Asc()).Offset(uint(offset)).Limit(uint(limit))
	return r.list(ctx, stmt)
}

func (r *EventRepository) SearchPublic(ctx context.Context, filters events.PublicFilters, offset, limit int) ([]events.Event, error) {
	stmt := baseSelect().Where(goqu.Ex{"e.state": events.StatePublished})

	if filters.Text != "" {
		pattern := "%" + filters.Text + "%"
		stmt = stmt.Where(goqu.Or(
			goqu.I("e.annotation").ILike(pattern),
			goqu.I("e.description").ILike(pattern),
		))
	}
	if len(filters.Categories) > 0 {
		stmt = stmt.Where(goqu.I("e.category_id").In(filters.Categories))
	}
	if filters.Paid != nil {
		stmt = stmt.Where(goqu.Ex{"e.paid": *filters.Paid})
	}
	if filters.RangeStart != nil {
		stmt = stmt.Where(goqu.I("e.event_date").Gte(*filters.RangeStart))
	}
	if filters.RangeEnd != nil {
		stmt = stmt.Where(goqu.I("e.event_date").Lte(*filters.RangeEnd))
	}
	if filters.OnlyAvailable {
		confirmed := dialect.From(goqu.T("requests").As("r")).
			Select(goqu.COUNT("*")).
			Where(
				goqu.L("r.event_id = e.id"),
				goqu.Ex{"r.status": "CONFIRMED"},
			)
		stmt = stmt.Where(goqu.Or(
			goqu.Ex{"e.participant_limit": 0},
			goqu.I("e.participant_limit").Gt(confirmed),
		))
	}

	// VIEWS ordering needs hit counts and happens after enrichment.
	stmt = stmt.Order(goqu.I("e.event_date").Asc()).Offset(uint(offset)).Limit(uint(limit))
	return r.list(ctx, stmt)
}

func (r *EventRepository) ConfirmedCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	return r.countByEvent(ctx, eventIDs, `
SELECT event_id, COUNT(*) FROM requests
WHERE event_id = ANY($1) AND status = 'CONFIRMED'
GROUP BY event_id`)
}

func (r *EventRepository) CommentCounts(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	return r.countByEvent(ctx, eventIDs, `
SELECT event_id, COUNT(*) FROM comments
WHERE event_id = ANY($1)
GROUP BY event_id`)
}

func (r *EventRepository) countByEvent(ctx context.Context, eventIDs []int64, query string) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	rows, err := r.queryer().Query(ctx, query, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("count by event: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, count int64
		if err := rows.Scan(&eventID, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[eventID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

func (r *EventRepository) list(ctx context.Context, stmt *goqu.SelectDataset) ([]events.Event, error) {
	query, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build event query: %w", err)
	}

	rows, err := r.queryer().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	items := make([]events.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return items, nil
}

func baseSelect() *goqu.SelectDataset {
	return dialect.From(goqu.T("events").As("e")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.L("c.id = e.category_id"))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.L("u.id = e.initiator_id"))).
		Select(eventColumns...)
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var event events.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Annotation,
		&event.Description,
		&event.Location.Lat,
		&event.Location.Lon,
		&event.Paid,
		&event.ParticipantLimit,
		&event.RequestModeration,
		&event.State,
		&event.CreatedOn,
		&event.EventDate,
		&event.PublishedOn,
		&event.Category.ID,
		&event.Category.Name,
		&event.Initiator.ID,
		&event.Initiator.Name,
		&event.Initiator.Email,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
