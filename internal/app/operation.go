package app

// EditorOperation tracks a CLI command that may mutate the timeline.
// Operations are created in memory with ID=0. Only mutating commands
// persist them (giving them an auto-increment ID from the operation log).
type EditorOperation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // "success" or "error"
}

// NewEditorOperation creates a new in-memory operation record.
func NewEditorOperation(operation, parameters string) *EditorOperation {
	return &EditorOperation{
		Operation:  operation,
		Parameters: parameters,
		Status:     "success",
	}
}

// Persisted returns true if this operation has been saved to the operation log.
func (op *EditorOperation) Persisted() bool {
	return op.ID != 0
}
