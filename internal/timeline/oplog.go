package timeline

import "time"

// OperationRecord is one entry of the persistent operation history,
// shown by `maulwurf history` and the shell's debug console.
type OperationRecord struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // "success" or "error"
	StartedAt  time.Time
	FinishedAt *time.Time
}

// OperationLog records the operations a shell session performs. It is
// app-level bookkeeping, separate from the snapshot collection itself.
type OperationLog interface {
	// Record creates a new in-progress operation entry and returns its id.
	Record(operation, parameters string) (int64, error)

	// Finish stamps the operation with its final status and end time.
	Finish(id int64, status string) error

	// List returns the most recent operations, newest first.
	List(limit int) ([]*OperationRecord, error)

	Close() error
}
