package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/database"
)

// newTestDB connects to TEST_DATABASE_URL, migrates the schema and empties every table.
// Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	migrator, err := database.NewMigrator(db)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())

	_, err = db.Exec(ctx, `TRUNCATE TABLE leave_requests, attendance_records, refresh_tokens, users, schedules CASCADE`)
	require.NoError(t, err)

	return db
}
