package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockCounterRepo(t *testing.T) (*counterRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &counterRepo{db: db}, mock
}

func TestWriteCountersNoRowsAffectedIsStale(t *testing.T) {
	repo, mock := newMockCounterRepo(t)
	mock.ExpectExec("UPDATE `progression_counters`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := &CountersRecord{UserID: "u1", TotalXP: 10, Version: 4}
	err := repo.WriteCounters(context.Background(), rec)
	assert.ErrorIs(t, err, ErrStaleCounters)
	assert.Equal(t, int64(4), rec.Version, "version unchanged on conflict")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteCountersInsertConflictIsStale(t *testing.T) {
	repo, mock := newMockCounterRepo(t)
	mock.ExpectExec("INSERT INTO `progression_counters`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.WriteCounters(context.Background(), &CountersRecord{UserID: "u1"})
	assert.ErrorIs(t, err, ErrStaleCounters)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteCountersDriverError(t *testing.T) {
	repo, mock := newMockCounterRepo(t)
	boom := errors.New("disk I/O error")
	mock.ExpectExec("UPDATE `progression_counters`").WillReturnError(boom)

	err := repo.WriteCounters(context.Background(), &CountersRecord{UserID: "u1", Version: 1})
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrStaleCounters))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadCountersDriverError(t *testing.T) {
	repo, mock := newMockCounterRepo(t)
	boom := errors.New("database is locked")
	mock.ExpectQuery("SELECT .* FROM `progression_counters`").WillReturnError(boom)

	_, err := repo.ReadCounters(context.Background(), "u1")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "u1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
