package scheduler

import (
	"database/sql"

	"github.com/rvanleeuwen/investment-tracker/internal/database"
)

// IntegrityJob runs SQLite's consistency check against the live store.
// Scheduled nightly; a failure surfaces in the scheduler's error log long
// before a corrupted page would surface as a broken API response.
type IntegrityJob struct {
	db *sql.DB
}

// NewIntegrityJob creates an IntegrityJob for the given database.
func NewIntegrityJob(db *sql.DB) *IntegrityJob {
	return &IntegrityJob{db: db}
}

// Name implements Job.
func (j *IntegrityJob) Name() string {
	return "database-integrity-check"
}

// Run implements Job.
func (j *IntegrityJob) Run() error {
	return database.IntegrityCheck(j.db)
}
