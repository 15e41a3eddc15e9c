package client

import (
	"context"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/ogurasousui/employee-directory/internal/adapters/grpc/employeev1"
	"github.com/ogurasousui/employee-directory/internal/adapters/grpc/handler"
	"github.com/ogurasousui/employee-directory/internal/core/department"
	"github.com/ogurasousui/employee-directory/internal/core/directory"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type memoryRepository struct {
	mu    sync.Mutex
	order []string
	rows  map[string]*employee.Employee
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[string]*employee.Employee)}
}

func (m *memoryRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.rows[e.ID] = &cp
	m.order = append(m.order, e.ID)
	return &cp, nil
}

func (m *memoryRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[e.ID]; !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	cp := *e
	m.rows[e.ID] = &cp
	return &cp, nil
}

func (m *memoryRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(m.rows, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memoryRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*employee.Employee
	for i := filter.Offset; i < len(m.order) && len(out) < filter.Limit; i++ {
		cp := *m.rows[m.order[i]]
		out = append(out, &cp)
	}

	next := ""
	if filter.Offset+filter.Limit < len(m.order) {
		next = strconv.Itoa(filter.Offset + filter.Limit)
	}
	return out, next, nil
}

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDs) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "emp-" + strconv.Itoa(s.n)
}

func startServer(t *testing.T, srv employeev1.EmployeeServiceServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	employeev1.RegisterEmployeeServiceServer(gs, srv)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	return dialBufconn(t, lis)
}

func dialBufconn(t *testing.T, lis *bufconn.Listener) *grpc.ClientConn {
	t.Helper()

	svc, err := Dial("passthrough:///bufnet", Options{},
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc.conn
}

func newTestService(t *testing.T, pageSize int) *RecordService {
	t.Helper()

	ids := &sequenceIDs{}
	usecase := employee.NewService(newMemoryRepository(), nil, nil, employee.WithIDGenerator(ids.next))
	conn := startServer(t, handler.NewEmployeeGrpcHandler(usecase))
	return New(employeev1.NewEmployeeServiceClient(conn), Options{PageSize: pageSize})
}

func draft(name, email string) directory.Record {
	return directory.Record{
		Name:       name,
		Email:      email,
		Phone:      "555-123-4567",
		Department: department.Sales,
		Position:   "Rep",
	}
}

func TestRecordService_CRUDRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, draft("Ann Lee", "ann@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "emp-1", created.ID)
	assert.Equal(t, department.Sales, created.Department)

	fetched, err := svc.GetEmployee(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	edit := fetched
	edit.Position = "Lead"
	edit.Department = department.Marketing
	updated, err := svc.UpdateEmployee(ctx, created.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "Lead", updated.Position)
	assert.Equal(t, department.Marketing, updated.Department)

	require.NoError(t, svc.DeleteEmployee(ctx, created.ID))

	_, err = svc.GetEmployee(ctx, created.ID)
	require.ErrorIs(t, err, directory.ErrRecordNotFound)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRecordService_ListDrainsAllPages(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 2)
	ctx := context.Background()

	empty, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	names := []string{"Ann", "Bob", "Cy", "Dee", "Eve"}
	for i, name := range names {
		_, err := svc.CreateEmployee(ctx, draft(name, name+strconv.Itoa(i)+"@example.com"))
		require.NoError(t, err)
	}

	records, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, records, len(names))
	for i, r := range records {
		assert.Equal(t, names[i], r.Name)
	}
}

func TestRecordService_InvalidArgumentIsNotNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, 0)

	_, err := svc.CreateEmployee(context.Background(), draft("Ann", "not-an-email"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, directory.ErrRecordNotFound)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

type slowServer struct {
	employeev1.UnimplementedEmployeeServiceServer
}

func (slowServer) GetEmployee(ctx context.Context, _ *employeev1.GetEmployeeRequest) (*employeev1.GetEmployeeResponse, error) {
	<-ctx.Done()
	return nil, status.FromContextError(ctx.Err()).Err()
}

func TestRecordService_PerCallTimeout(t *testing.T) {
	t.Parallel()

	conn := startServer(t, slowServer{})
	svc := New(employeev1.NewEmployeeServiceClient(conn), Options{Timeout: 50 * time.Millisecond})

	_, err := svc.GetEmployee(context.Background(), "emp-1")
	require.Error(t, err)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(err))
}

func TestDial_RequiresAddress(t *testing.T) {
	t.Parallel()

	_, err := Dial("", Options{})
	require.Error(t, err)
}

func TestOptions_Normalized(t *testing.T) {
	t.Parallel()

	opts := Options{}.normalized()
	assert.Equal(t, defaultTimeout, opts.Timeout)
	assert.Equal(t, defaultPageSize, opts.PageSize)
}
