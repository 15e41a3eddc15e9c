package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/ogurasousui/employee-directory/internal/core/department"
)

var errUnavailable = errors.New("service unavailable")

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance は時計を進め、期限に達したタイマーを期限順に実行します。
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	var due, pending []*fakeTimer
	for _, t := range c.timers {
		switch {
		case t.stopped || t.fired:
		case !t.at.After(now):
			t.fired = true
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	c.timers = pending
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.fn()
	}
}

func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type fakeService struct {
	mu       sync.Mutex
	records  []Record
	sequence int

	listErr   error
	createErr error
	getErr    error
	updateErr error
	deleteErr error

	calls []string
}

func newFakeService(records ...Record) *fakeService {
	return &fakeService{records: cloneRecords(records)}
}

func (s *fakeService) record(call string) {
	s.calls = append(s.calls, call)
}

func (s *fakeService) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *fakeService) ListEmployees(context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("list")
	if s.listErr != nil {
		return nil, s.listErr
	}
	return cloneRecords(s.records), nil
}

func (s *fakeService) CreateEmployee(_ context.Context, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("create")
	if s.createErr != nil {
		return Record{}, s.createErr
	}
	s.sequence++
	r.ID = fmt.Sprintf("new-%d", s.sequence)
	s.records = append(s.records, r)
	return r, nil
}

func (s *fakeService) GetEmployee(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("get " + id)
	if s.getErr != nil {
		return Record{}, s.getErr
	}
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func (s *fakeService) UpdateEmployee(_ context.Context, id string, r Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("update " + id)
	if s.updateErr != nil {
		return Record{}, s.updateErr
	}
	for i := range s.records {
		if s.records[i].ID == id {
			r.ID = id
			s.records[i] = r
			return r, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func (s *fakeService) DeleteEmployee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("delete " + id)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.records = removeRecord(s.records, id)
	return nil
}

type navEvent struct {
	Target string
	At     time.Time
}

type fakeNavigator struct {
	mu     sync.Mutex
	clock  Clock
	events []navEvent
}

func (n *fakeNavigator) push(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, navEvent{Target: target, At: n.clock.Now()})
}

func (n *fakeNavigator) NavigateRoot()            { n.push("/") }
func (n *fakeNavigator) NavigateEditor(id string) { n.push("/edit/" + id) }
func (n *fakeNavigator) NavigateCreate()          { n.push("/add") }

func (n *fakeNavigator) Events() []navEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]navEvent(nil), n.events...)
}

type fakeExporter struct {
	got []Record
	err error
}

func (e *fakeExporter) Export(w io.Writer, records []Record) error {
	if e.err != nil {
		return e.err
	}
	e.got = cloneRecords(records)
	_, err := fmt.Fprintf(w, "%d rows", len(records))
	return err
}

func validRecord(id, name string) Record {
	return Record{
		ID:         id,
		Name:       name,
		Email:      "someone@example.com",
		Phone:      "555-123-4567",
		Department: department.Engineering,
		Position:   "Engineer",
	}
}
