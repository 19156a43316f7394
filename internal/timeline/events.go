package timeline

// Events carries the notifications the shell subscribes to for toasts and
// history logs. All callbacks are optional and invoked synchronously from
// the operation that caused them; they carry no control-flow obligation
// back into the core.
type Events struct {
	SnapshotCreated  func(Snapshot)
	SnapshotsLoaded  func(count int)
	CleanupPerformed func(evicted int)
}

func (e *Events) snapshotCreated(s Snapshot) {
	if e != nil && e.SnapshotCreated != nil {
		e.SnapshotCreated(s)
	}
}

func (e *Events) snapshotsLoaded(count int) {
	if e != nil && e.SnapshotsLoaded != nil {
		e.SnapshotsLoaded(count)
	}
}

func (e *Events) cleanupPerformed(evicted int) {
	if e != nil && e.CleanupPerformed != nil {
		e.CleanupPerformed(evicted)
	}
}
