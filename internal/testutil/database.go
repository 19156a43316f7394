package testutil

import (
	"testing"

	"github.com/jominki354/maulwurf/internal/database"
	"github.com/jominki354/maulwurf/internal/database/migrations"
	"github.com/jominki354/maulwurf/internal/timeline"
)

// NewTestOperationLog creates an in-memory SQLite operation log with the
// schema applied. The log is automatically closed when the test completes.
func NewTestOperationLog(t *testing.T) timeline.OperationLog {
	t.Helper()

	log, err := database.NewSQLiteOperationLog(":memory:")
	if err != nil {
		t.Fatalf("failed to open operation log: %v", err)
	}

	if err := migrations.MigrateUp(log.DB()); err != nil {
		log.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		log.Close()
	})

	return log
}
