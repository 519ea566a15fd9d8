package sqlitedb_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/repo/repoerrs"
	"github.com/Egor213/LogParser/internal/repo/repotypes"
	"github.com/Egor213/LogParser/internal/repo/sqlitedb"
	"github.com/Egor213/LogParser/migrations"
	"github.com/Egor213/LogParser/pkg/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*sqlitedb.LogRepo, *sqlite.SQLite) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := sqlite.New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = migrations.Up(migrations.DriverSQLite, path)
	require.NoError(t, err)

	return sqlitedb.NewLogRepo(db), db
}

func selectAll(t *testing.T, r *sqlitedb.LogRepo) []domain.Row {
	t.Helper()
	rows, err := r.Select(context.Background(), repotypes.LogQuery{Fields: domain.Fields()})
	require.NoError(t, err)
	return rows
}

func value(t *testing.T, row domain.Row, f domain.Field) string {
	t.Helper()
	v := row[f.String()]
	require.NotNil(t, v, "field %s is null", f)
	return *v
}

func TestLogRepo_InsertAllIsIdempotent(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	records := []domain.Record{
		domain.RecordFromStrings("10.0.0.1", "-", "-", "10/Oct/2023:13:55:36 -0700", "GET / HTTP/1.1", "200", "10"),
		domain.RecordFromStrings("10.0.0.2", "-", "-", "10/Oct/2023:13:55:37 -0700", "GET / HTTP/1.1", "200", "10"),
	}

	inserted, err := r.InsertAll(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = r.InsertAll(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	assert.Len(t, selectAll(t, r), 2)
}

func TestLogRepo_DuplicateKeepsFirst(t *testing.T) {
	r, _ := newTestRepo(t)

	first := domain.RecordFromStrings("10.0.0.1", "-", "-", "10/Oct/2023:13:55:36", "GET / HTTP/1.1", "200", "10")
	second := domain.RecordFromStrings("10.0.0.1", "-", "-", "10/Oct/2023:13:55:36", "GET / HTTP/1.1", "500", "99")

	inserted, err := r.InsertAll(context.Background(), []domain.Record{first, second})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	rows := selectAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "200", value(t, rows[0], domain.FieldStatus))
	assert.Equal(t, "10", value(t, rows[0], domain.FieldBytes))
}

func TestLogRepo_AbsentKeyPartsAreOneIdentity(t *testing.T) {
	r, _ := newTestRepo(t)

	absent := domain.NewRecord(nil, nil, nil, nil, nil, nil, nil)
	empty := domain.RecordFromStrings("", "-", "-", "", "")

	inserted, err := r.InsertAll(context.Background(), []domain.Record{absent, absent, empty})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	rows := selectAll(t, r)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0]["host"])
}

func TestLogRepo_SelectRange(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := r.InsertAll(ctx, []domain.Record{
		domain.RecordFromStrings("10.0.0.1", "-", "-", "10/Oct/2023:13:55:36", "GET /a HTTP/1.1", "200", "1"),
		domain.RecordFromStrings("10.0.0.1", "-", "-", "10/Oct/2023:13:55:40", "GET /b HTTP/1.1", "200", "2"),
	})
	require.NoError(t, err)

	testCases := []struct {
		name     string
		tr       repotypes.TimeRange
		wantReqs []string
	}{
		{
			name:     "inclusive bounds",
			tr:       repotypes.TimeRange{Start: "10/Oct/2023:13:55:36", End: "10/Oct/2023:13:55:40"},
			wantReqs: []string{"GET /a HTTP/1.1", "GET /b HTTP/1.1"},
		},
		{
			name:     "narrowed end",
			tr:       repotypes.TimeRange{Start: "10/Oct/2023:13:55:36", End: "10/Oct/2023:13:55:38"},
			wantReqs: []string{"GET /a HTTP/1.1"},
		},
		{
			name:     "empty window",
			tr:       repotypes.TimeRange{Start: "11/Oct/2023:00:00:00", End: "11/Oct/2023:23:59:59"},
			wantReqs: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := tc.tr
			rows, err := r.Select(ctx, repotypes.LogQuery{
				Fields: []domain.Field{domain.FieldRequest},
				Range:  &tr,
			})
			require.NoError(t, err)

			got := []string{}
			for _, row := range rows {
				got = append(got, value(t, row, domain.FieldRequest))
			}
			assert.ElementsMatch(t, tc.wantReqs, got)
		})
	}
}

func TestLogRepo_ProjectionMatchesWildcard(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := r.InsertAll(ctx, []domain.Record{
		domain.RecordFromStrings("10.0.0.1", "-", "bob", "10/Oct/2023:13:55:36", "GET /a HTTP/1.1", "200", "1"),
		domain.RecordFromStrings("10.0.0.2", "-", "-", "10/Oct/2023:13:55:40", "GET /b HTTP/1.1", "404", "-"),
		domain.RecordFromStrings("10.0.0.3", "-"),
	})
	require.NoError(t, err)

	subset := []domain.Field{domain.FieldStatus, domain.FieldHost, domain.FieldUser}

	all := selectAll(t, r)
	projected, err := r.Select(ctx, repotypes.LogQuery{Fields: subset})
	require.NoError(t, err)

	want := make([]domain.Row, 0, len(all))
	for _, row := range all {
		want = append(want, row.Project(subset))
	}
	assert.Equal(t, want, projected)
}

func TestLogRepo_FailedBatchIsRolledBack(t *testing.T) {
	r, db := newTestRepo(t)
	ctx := context.Background()

	_, err := db.DB.Exec(`CREATE TRIGGER fail_on_boom BEFORE INSERT ON logs
		WHEN NEW."host" = 'boom'
		BEGIN SELECT RAISE(ABORT, 'boom'); END;`)
	require.NoError(t, err)

	inserted, err := r.InsertAll(ctx, []domain.Record{
		domain.RecordFromStrings("10.0.0.1", "-", "-", "10/Oct/2023:13:55:36", "GET / HTTP/1.1"),
		domain.RecordFromStrings("boom", "-", "-", "10/Oct/2023:13:55:37", "GET / HTTP/1.1"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, repoerrs.ErrStorageFault))
	assert.Equal(t, 0, inserted)
	assert.Empty(t, selectAll(t, r))
}

func TestLogRepo_StorageFault(t *testing.T) {
	r, db := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.InsertAll(ctx, []domain.Record{domain.RecordFromStrings("10.0.0.1")})
	var sf *repoerrs.StorageFaultError
	assert.True(t, errors.As(err, &sf))

	_, err = r.Select(ctx, repotypes.LogQuery{Fields: domain.Fields()})
	assert.True(t, errors.As(err, &sf))
}
