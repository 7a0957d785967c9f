package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ReportRun is the audit record of one generated brand-wise report: which
// filters ran, how much came back, and how long it took. The computation
// itself stays stateless; runs are written after the fact and never read
// back into a later report.
type ReportRun struct {
	ID           int             `json:"id"`
	RunID        string          `json:"run_id"`
	FromDate     string          `json:"from_date"`
	ToDate       string          `json:"to_date"`
	OrderType    string          `json:"order_type,omitempty"`
	Brand        string          `json:"brand,omitempty"`
	OrderCount   int             `json:"order_count"`
	ProductCount int             `json:"product_count"`
	TotalCrates  decimal.Decimal `json:"total_crates"`
	TotalLiters  decimal.Decimal `json:"total_liters"`
	TotalPackets decimal.Decimal `json:"total_packets"`
	Duration     time.Duration   `json:"duration_ms"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ReportLogService archives report run metadata.
type ReportLogService interface {
	RecordRun(ctx context.Context, run ReportRun) error
	// RecentRuns returns the newest runs first, at most limit rows.
	RecentRuns(ctx context.Context, limit int) ([]ReportRun, error)
}

type reportLogService struct {
	pool *pgxpool.Pool
}

// NewReportLogService constructs a ReportLogService backed by PostgreSQL.
func NewReportLogService(pool *pgxpool.Pool) ReportLogService {
	return &reportLogService{pool: pool}
}

func (s *reportLogService) RecordRun(ctx context.Context, run ReportRun) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO report_runs (run_id, from_date, to_date, order_type, brand,
		                         order_count, product_count, total_crates, total_liters,
		                         total_packets, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		run.RunID, run.FromDate, run.ToDate, run.OrderType, run.Brand,
		run.OrderCount, run.ProductCount, run.TotalCrates, run.TotalLiters,
		run.TotalPackets, run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record report run %s: %w", run.RunID, err)
	}
	return nil
}

func (s *reportLogService) RecentRuns(ctx context.Context, limit int) ([]ReportRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, run_id, from_date::text, to_date::text, order_type, brand,
		       order_count, product_count, total_crates, total_liters, total_packets,
		       duration_ms, created_at
		FROM report_runs
		ORDER BY id DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query report runs: %w", err)
	}
	defer rows.Close()

	var runs []ReportRun
	for rows.Next() {
		var r ReportRun
		var durationMs int64
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.FromDate, &r.ToDate, &r.OrderType, &r.Brand,
			&r.OrderCount, &r.ProductCount, &r.TotalCrates, &r.TotalLiters, &r.TotalPackets,
			&durationMs, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report run: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
