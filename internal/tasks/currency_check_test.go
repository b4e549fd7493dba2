package tasks

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"pilot_logbook/internal/database"
	"pilot_logbook/internal/logbook"
	"pilot_logbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockArchiver struct {
	mock.Mock
}

func (m *mockArchiver) SaveLogbook(source string, lb *logbook.Logbook) (*database.Import, error) {
	args := m.Called(source, lb)
	imp, _ := args.Get(0).(*database.Import)
	return imp, args.Error(1)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testLogbook() *logbook.Logbook {
	return logbook.New(
		[]*models.Aircraft{{ID: "N172", Class: "airplane_single_engine_land", GearType: models.GearFixedTricycle}},
		[]*models.Flight{
			{Date: day(2024, 6, 1), AircraftID: "N172", TotalTime: 1.5, DayTakeoffs: 3, DayLandingsFullStop: 3, AllLandings: 3},
			{Date: day(2024, 4, 10), AircraftID: "N172", TotalTime: 1.0, FlightReview: true},
		},
	)
}

func newTestTask(cfg CurrencyCheckConfig, archive Archiver, lb *logbook.Logbook, loadErr error) *CurrencyCheckTask {
	task := NewCurrencyCheckTask(cfg, archive)
	task.now = func() time.Time { return day(2024, 6, 30) }
	task.load = func(string) (*logbook.Logbook, error) { return lb, loadErr }
	return task
}

func TestNewCurrencyCheckTask(t *testing.T) {
	task := NewCurrencyCheckTask(CurrencyCheckConfig{LogbookPath: "logbook.csv", Interval: time.Hour}, nil)

	require.NotNil(t, task)
	assert.Equal(t, "currency_check", task.Name())
	assert.Equal(t, time.Hour, task.Interval())
	assert.Equal(t, logbook.DefaultCategoryClass, task.cfg.CategoryClass)
	assert.Nil(t, task.Last())
}

func TestCurrencyCheckTask_Run(t *testing.T) {
	logs := captureLogs(t)
	lb := testLogbook()

	archive := &mockArchiver{}
	archive.On("SaveLogbook", "logbook.csv", lb).Return(&database.Import{ID: "import-1"}, nil).Once()

	task := newTestTask(CurrencyCheckConfig{LogbookPath: "logbook.csv", Interval: time.Hour, WarnDays: 30}, archive, lb, nil)
	require.NoError(t, task.Run(context.Background()))
	archive.AssertExpectations(t)

	summary := task.Last()
	require.NotNil(t, summary)
	assert.Equal(t, day(2024, 6, 30), summary.AsOf)
	assert.Equal(t, 2.5, summary.Hours[0].Hours)
	assert.Equal(t, day(2024, 8, 30), summary.Currency[0].Expiration)
	assert.Equal(t, 62, summary.Currency[0].DaysRemaining)

	out := logs.String()
	assert.Contains(t, out, `msg=Current rule="General (ASEL)" expires=2024-08-30 days_remaining=62`)
	assert.Contains(t, out, `level=WARN msg="Not current" rule="Night (ASEL)"`)
	assert.Contains(t, out, `level=WARN msg="Not current" rule="Tailwheel (ASEL)"`)
	assert.Contains(t, out, `msg=Current rule="Flight Review" expires=2026-04-30`)
	assert.Contains(t, out, "total_hours=2.5")
}

func TestCurrencyCheckTask_WarnsBeforeExpiry(t *testing.T) {
	logs := captureLogs(t)

	task := newTestTask(CurrencyCheckConfig{Interval: time.Hour, WarnDays: 90}, nil, testLogbook(), nil)
	require.NoError(t, task.Run(context.Background()))

	assert.Contains(t, logs.String(), `level=WARN msg="Currency expiring soon" rule="General (ASEL)" expires=2024-08-30 days_remaining=62`)
}

func TestCurrencyCheckTask_LoadError(t *testing.T) {
	archive := &mockArchiver{}

	task := newTestTask(CurrencyCheckConfig{LogbookPath: "missing.csv", Interval: time.Hour}, archive, nil, models.ErrInvalidLogbookFile)
	err := task.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidLogbookFile)
	assert.Nil(t, task.Last())
	archive.AssertNotCalled(t, "SaveLogbook", mock.Anything, mock.Anything)
}

func TestCurrencyCheckTask_ArchiveErrorStillReports(t *testing.T) {
	logs := captureLogs(t)
	lb := testLogbook()

	archive := &mockArchiver{}
	archive.On("SaveLogbook", mock.Anything, lb).Return(nil, errors.New("disk full"))

	task := newTestTask(CurrencyCheckConfig{Interval: time.Hour}, archive, lb, nil)
	require.NoError(t, task.Run(context.Background()))

	assert.NotNil(t, task.Last())
	assert.Contains(t, logs.String(), "Failed to archive logbook")
	assert.Contains(t, logs.String(), "disk full")
}

func TestCurrencyCheckTask_UnknownAircraft(t *testing.T) {
	lb := logbook.New(nil, []*models.Flight{
		{Date: day(2024, 6, 1), AircraftID: "N999", DayTakeoffs: 3, AllLandings: 3},
	})

	task := newTestTask(CurrencyCheckConfig{Interval: time.Hour}, nil, lb, nil)
	err := task.Run(context.Background())
	assert.ErrorIs(t, err, logbook.ErrUnknownAircraft)
}

func TestCurrencyCheckTask_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := newTestTask(CurrencyCheckConfig{Interval: time.Hour}, nil, testLogbook(), nil)
	assert.ErrorIs(t, task.Run(ctx), context.Canceled)
}
