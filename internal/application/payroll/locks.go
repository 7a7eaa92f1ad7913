package payroll

import (
	"sync"

	"github.com/google/uuid"
)

// employeeLocks serializes read-modify-write sequences per employee. Two
// concurrent recomputes for the same employee would otherwise both read the
// same prior state and the later snapshot write would drop the earlier one's
// figures.
type employeeLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newEmployeeLocks() *employeeLocks {
	return &employeeLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// acquire locks the mutex for the given employee and returns its release
// function. Entries are never evicted; the employee set is small.
func (l *employeeLocks) acquire(employeeID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[employeeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[employeeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
