package baselib

// idManager allocates issue IDs for one Result store. IDs start at 0,
// increase monotonically and are never reused, not even when the
// registration that consumed one fails.
type idManager struct {
	next int
}

// nextID returns the next free ID and consumes it.
func (m *idManager) nextID() int {
	id := m.next
	m.next++
	return id
}

// seed raises the counter so that already used IDs are not handed out
// again. Seeding below the current counter has no effect.
func (m *idManager) seed(used int) {
	if used >= m.next {
		m.next = used + 1
	}
}
