package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDB struct {
	mock.Mock
}

func (m *MockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(pgx.Row)
}

// stubRow - pgx.Row, отдающий заранее заданный payload
type stubRow struct {
	payload []byte
	err     error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.payload
	return nil
}

func testReport() *domain.SessionReport {
	parked := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return &domain.SessionReport{
		ID:          uuid.New(),
		GeneratedAt: parked.Add(time.Hour),
		TotalSlots:  3,
		Counts:      domain.TierCounts{Small: 1, Large: 1, Oversize: 1},
		Available:   map[domain.SizeClass]int{domain.SizeSmall: 0, domain.SizeLarge: 1, domain.SizeOversize: 1},
		Slots: []domain.SlotView{
			{ID: 1, Size: domain.SizeSmall, Occupied: true, LicensePlate: "AAA111", VehicleSize: domain.SizeSmall},
			{ID: 2, Size: domain.SizeLarge},
			{ID: 3, Size: domain.SizeOversize},
		},
		History: []domain.ParkingEvent{
			{ID: uuid.New(), LicensePlate: "AAA111", Size: domain.SizeSmall, SlotID: 1, ParkedAt: parked},
		},
	}
}

func TestReportRepository_Save(t *testing.T) {
	db := new(MockDB)
	report := testReport()

	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(args []any) bool {
		return len(args) == 9 &&
			args[0] == report.ID &&
			args[2] == 3 &&
			args[6] == 1 && // занятых мест
			args[7] == 1 // событий
	})).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	repo := NewReportRepository(db)
	assert.Equal(t, "postgres", repo.Name())
	require.NoError(t, repo.Save(context.Background(), report))

	db.AssertExpectations(t)
}

func TestReportRepository_SaveError(t *testing.T) {
	db := new(MockDB)
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("connection refused"))

	err := NewReportRepository(db).Save(context.Background(), testReport())
	assert.ErrorContains(t, err, "failed to insert report")
}

func TestReportRepository_GetByID(t *testing.T) {
	report := testReport()
	payload, err := json.Marshal(report)
	require.NoError(t, err)

	tests := []struct {
		name    string
		row     stubRow
		wantErr error
	}{
		{name: "найден", row: stubRow{payload: payload}},
		{name: "не найден", row: stubRow{err: pgx.ErrNoRows}, wantErr: domain.ErrReportNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDB)
			db.On("QueryRow", mock.Anything, mock.Anything, []any{report.ID}).Return(tt.row)

			got, err := NewReportRepository(db).GetByID(context.Background(), report.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, report.ID, got.ID)
			assert.Equal(t, report.Counts, got.Counts)
			assert.Equal(t, report.Available, got.Available)
			assert.Equal(t, "AAA111", got.Slots[0].LicensePlate)
			require.Len(t, got.History, 1)
			assert.True(t, got.History[0].IsOpen())
		})
	}
}

func TestEnsureSchema(t *testing.T) {
	db := new(MockDB)
	db.On("Exec", mock.Anything, createReportsTable, mock.Anything).
		Return(pgconn.NewCommandTag("CREATE TABLE"), nil)

	require.NoError(t, EnsureSchema(context.Background(), db))
	db.AssertExpectations(t)
}
