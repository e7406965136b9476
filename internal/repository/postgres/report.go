package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB - подмножество pgxpool.Pool, которое нужно репозиторию
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createReportsTable = `
	CREATE TABLE IF NOT EXISTS parking_reports (
		id              UUID PRIMARY KEY,
		generated_at    TIMESTAMPTZ NOT NULL,
		total_slots     INTEGER NOT NULL,
		small_slots     INTEGER NOT NULL,
		large_slots     INTEGER NOT NULL,
		oversize_slots  INTEGER NOT NULL,
		occupied_slots  INTEGER NOT NULL,
		events_count    INTEGER NOT NULL,
		payload         JSONB NOT NULL
	)
`

type reportRepository struct {
	db DB
}

// NewReportRepository создает архив отчетов в PostgreSQL
func NewReportRepository(db DB) repository.ReportArchive {
	return &reportRepository{db: db}
}

// EnsureSchema создает таблицу отчетов, если ее еще нет
func EnsureSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, createReportsTable); err != nil {
		return fmt.Errorf("failed to create parking_reports table: %w", err)
	}
	return nil
}

func (r *reportRepository) Name() string {
	return "postgres"
}

func (r *reportRepository) Save(ctx context.Context, report *domain.SessionReport) error {
	query := `
		INSERT INTO parking_reports (id, generated_at, total_slots, small_slots, large_slots,
		                             oversize_slots, occupied_slots, events_count, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = r.db.Exec(ctx, query,
		report.ID,
		report.GeneratedAt,
		report.TotalSlots,
		report.Counts.Small,
		report.Counts.Large,
		report.Counts.Oversize,
		report.OccupiedSlots(),
		len(report.History),
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SessionReport, error) {
	query := `SELECT payload FROM parking_reports WHERE id = $1`

	var payload []byte
	if err := r.db.QueryRow(ctx, query, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}

	report := &domain.SessionReport{}
	if err := json.Unmarshal(payload, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return report, nil
}
