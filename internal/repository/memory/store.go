// Package memory holds map-backed repositories that mirror the PostgreSQL
// constraints (unique keys, cascades, SET NULL) closely enough for service
// and handler tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/domain/attendance"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/domain/leave"
	"github.com/SkShizan/clg-project/internal/domain/master/department"
	"github.com/SkShizan/clg-project/internal/domain/master/role"
	"github.com/google/uuid"
)

type txKey struct{}

type tables struct {
	accounts      map[string]account.Account
	departments   map[string]department.Department
	roles         map[string]role.Role
	employees     map[string]employee.Employee
	attendances   map[string]attendance.Attendance
	leaveRequests map[string]leave.LeaveRequest
	refreshTokens map[string]refreshToken
}

func newTables() tables {
	return tables{
		accounts:      map[string]account.Account{},
		departments:   map[string]department.Department{},
		roles:         map[string]role.Role{},
		employees:     map[string]employee.Employee{},
		attendances:   map[string]attendance.Attendance{},
		leaveRequests: map[string]leave.LeaveRequest{},
		refreshTokens: map[string]refreshToken{},
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.accounts {
		c.accounts[k] = v
	}
	for k, v := range t.departments {
		c.departments[k] = v
	}
	for k, v := range t.roles {
		c.roles[k] = v
	}
	for k, v := range t.employees {
		c.employees[k] = v
	}
	for k, v := range t.attendances {
		c.attendances[k] = v
	}
	for k, v := range t.leaveRequests {
		c.leaveRequests[k] = v
	}
	for k, v := range t.refreshTokens {
		c.refreshTokens[k] = v
	}
	return c
}

type failure struct {
	err   error
	after int
}

// Store is shared by every memory repository and doubles as their
// database.Transactor.
type Store struct {
	mu       sync.Mutex
	data     tables
	last     time.Time
	failures map[string]*failure
	calls    map[string]int
}

func NewStore() *Store {
	return &Store{
		data:     newTables(),
		failures: map[string]*failure{},
		calls:    map[string]int{},
	}
}

// FailOn makes operation op (for example "attendance.Update") return err once
// it has succeeded after times.
func (s *Store) FailOn(op string, after int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = &failure{err: err, after: after}
}

// Calls reports how many times op ran, failed calls included.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// WithinTransaction snapshots every table and restores the snapshot when fn
// fails.
func (s *Store) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// begin locks the store and evaluates the failure hook for op. Callers must
// unlock.
func (s *Store) begin(op string) error {
	s.mu.Lock()
	s.calls[op]++
	if f, ok := s.failures[op]; ok {
		if f.after <= 0 {
			return fmt.Errorf("%s: %w", op, f.err)
		}
		f.after--
	}
	return nil
}

func (s *Store) tick() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// AttendanceRows counts stored attendance records for an employee and day.
func (s *Store) AttendanceRows(employeeID string, date time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.data.attendances {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			n++
		}
	}
	return n
}

// AttendanceCount is the total number of attendance records.
func (s *Store) AttendanceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.attendances)
}

// ActiveRefreshTokens counts unrevoked, unexpired refresh tokens of an account.
func (s *Store) ActiveRefreshTokens(accountID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	now := time.Now()
	for _, t := range s.data.refreshTokens {
		if t.accountID == accountID && t.revokedAt == nil && t.expiresAt.After(now) {
			n++
		}
	}
	return n
}

// AccountCount is the total number of accounts.
func (s *Store) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.accounts)
}
