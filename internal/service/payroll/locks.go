package payroll

import (
	"fmt"
	"sync"
)

// employeeYearLocks serializes the read-ceiling / compute / write-payment
// sequence per employee and year. Without it, two concurrent payment writes
// for the same employee/year could both read the same "already used" ceiling
// wage and double-count the headroom.
type employeeYearLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEmployeeYearLocks() *employeeYearLocks {
	return &employeeYearLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *employeeYearLocks) acquire(employeeID string, year int) func() {
	key := fmt.Sprintf("%s:%d", employeeID, year)

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
