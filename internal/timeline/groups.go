package timeline

// SnapshotGroup is the per-tab view the history panel renders.
type SnapshotGroup struct {
	TabID     string
	FileName  string
	Snapshots []Snapshot // timestamp ascending
}

// Groups returns all snapshots grouped by tab, groups in first-seen order.
// Each group's FileName comes from its most recent snapshot, so a rename
// shows the current name rather than the one at first capture.
func (s *Service) Groups() []SnapshotGroup {
	var order []string
	byTab := make(map[string][]Snapshot)
	for _, snap := range s.store.All() {
		if _, seen := byTab[snap.TabID]; !seen {
			order = append(order, snap.TabID)
		}
		byTab[snap.TabID] = append(byTab[snap.TabID], snap)
	}

	groups := make([]SnapshotGroup, 0, len(order))
	for _, tabID := range order {
		snaps := s.store.ListForTab(tabID)
		groups = append(groups, SnapshotGroup{
			TabID:     tabID,
			FileName:  snaps[len(snaps)-1].FileName,
			Snapshots: snaps,
		})
	}
	return groups
}

// ForTab returns one tab's snapshots in display order, newest first.
func (s *Service) ForTab(tabID string) []Snapshot {
	asc := s.store.ListForTab(tabID)
	out := make([]Snapshot, len(asc))
	for i, snap := range asc {
		out[len(asc)-1-i] = snap
	}
	return out
}

// SnapshotAtDisplayIndex translates a newest-first display index back to
// the snapshot it refers to. Display indexes go stale when the list
// changes under the UI, so an out-of-range index just reports false.
func (s *Service) SnapshotAtDisplayIndex(tabID string, index int) (Snapshot, bool) {
	list := s.ForTab(tabID)
	if index < 0 || index >= len(list) {
		return Snapshot{}, false
	}
	return list[index], true
}
