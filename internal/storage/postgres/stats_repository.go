package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventlane/server/internal/stats"
)

// StatsRepository stores endpoint hits for the statistics service. It runs
// against the statistics database, not the main one.
type StatsRepository struct {
	pool *pgxpool.Pool
}

var _ stats.Repository = (*StatsRepository)(nil)

func NewStatsRepository(pool *pgxpool.Pool) (*StatsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("stats repository: pool is nil")
	}
	return &StatsRepository{pool: pool}, nil
}

func (r *StatsRepository) SaveHit(ctx context.Context, hit stats.EndpointHit) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO endpoint_hits (app, uri, ip, created)
VALUES ($1, $2, $3, $4)`,
		hit.App, hit.URI, hit.IP, hit.Timestamp)
	if err != nil {
		return fmt.Errorf("save hit: %w", err)
	}
	return nil
}

func (r *StatsRepository) Stats(ctx context.Context, query stats.StatsQuery) ([]stats.ViewStats, error) {
	hits := goqu.COUNT(goqu.I("ip"))
	if query.Unique {
		hits = goqu.COUNT(goqu.DISTINCT(goqu.I("ip")))
	}

	stmt := dialect.From("endpoint_hits").
		Select(goqu.I("app"), goqu.I("uri"), hits.As("hits")).
		Where(
			goqu.I("created").Gte(query.Start),
			goqu.I("created").Lte(query.End),
		).
		GroupBy(goqu.I("app"), goqu.I("uri")).
		Order(goqu.I("hits").Desc())
	if len(query.URIs) > 0 {
		stmt = stmt.Where(goqu.I("uri").In(query.URIs))
	}

	sqlQuery, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	items := make([]stats.ViewStats, 0)
	for rows.Next() {
		var item stats.ViewStats
		if err := rows.Scan(&item.App, &item.URI, &item.Hits); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return items, nil
}
