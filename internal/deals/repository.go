package deals

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Repository defines data access for deal scoring.
type Repository interface {
	// GetCachedInvoice returns (nil, nil) when no cached row matches.
	GetCachedInvoice(ctx context.Context, year int, make, model, trim string) (*CachedInvoice, error)
	SaveScore(ctx context.Context, record *ScoreRecord) error
	ListScores(ctx context.Context, filters *HistoryFilters) ([]*ScoreRecord, int, error)
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetCachedInvoice(ctx context.Context, year int, make, model, trim string) (*CachedInvoice, error) {
	query := `
		SELECT vehicle_year, vehicle_make, model, trim, invoice_price, holdback, fetched_at
		FROM cached_invoices
		WHERE vehicle_year = $1 AND vehicle_make = $2 AND model = $3 AND trim = $4
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var cached CachedInvoice
	err := r.db.GetContext(ctx, &cached, query, year, make, model, trim)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached invoice: %w", err)
	}

	return &cached, nil
}

func (r *PostgresRepository) SaveScore(ctx context.Context, record *ScoreRecord) error {
	query := `
		INSERT INTO score_records (
			id, vehicle_year, vehicle_make, model, trim, asking_price, msrp,
			days_on_lot, score, grade, true_cost, likely_offer, scored_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.VehicleYear, record.VehicleMake, record.Model, record.Trim,
		record.AskingPrice, record.MSRP, record.DaysOnLot, record.Score, record.Grade,
		record.TrueCost, record.LikelyOffer, record.ScoredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save score record: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListScores(ctx context.Context, filters *HistoryFilters) ([]*ScoreRecord, int, error) {
	var conditions []string
	var args []interface{}
	argCount := 0

	if filters.Make != nil {
		argCount++
		conditions = append(conditions, fmt.Sprintf("vehicle_make = $%d", argCount))
		args = append(args, *filters.Make)
	}

	if filters.MinScore != nil {
		argCount++
		conditions = append(conditions, fmt.Sprintf("score >= $%d", argCount))
		args = append(args, *filters.MinScore)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM score_records` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count score records: %w", err)
	}

	offset := (filters.Page - 1) * filters.PageSize
	if filters.Page < 1 {
		offset = 0
	}

	argCount++
	limitArg := argCount
	argCount++
	offsetArg := argCount

	query := `
		SELECT id, vehicle_year, vehicle_make, model, trim, asking_price, msrp,
			   days_on_lot, score, grade, true_cost, likely_offer, scored_at
		FROM score_records
	` + whereClause + fmt.Sprintf(" ORDER BY scored_at DESC LIMIT $%d OFFSET $%d", limitArg, offsetArg)
	args = append(args, filters.PageSize, offset)

	var records []*ScoreRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list score records: %w", err)
	}

	return records, totalCount, nil
}
