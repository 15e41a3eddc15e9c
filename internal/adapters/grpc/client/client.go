// Package client は employee.v1.EmployeeService を directory.RecordService として提供します。
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ogurasousui/employee-directory/internal/adapters/grpc/employeev1"
	"github.com/ogurasousui/employee-directory/internal/core/department"
	"github.com/ogurasousui/employee-directory/internal/core/directory"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultPageSize = 100
	maxPages        = 10000
)

var errPageLimitExceeded = errors.New("client: page limit exceeded while listing employees")

// Options はクライアントの呼び出し設定です。ゼロ値は既定値で補われます。
type Options struct {
	Timeout  time.Duration
	PageSize int
}

func (o Options) normalized() Options {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	return o
}

// RecordService は gRPC 経由でレコードサービスを呼び出します。
type RecordService struct {
	api  employeev1.EmployeeServiceClient
	conn *grpc.ClientConn
	opts Options
}

var _ directory.RecordService = (*RecordService)(nil)

// Dial は addr へのコネクションを作成します。実際の接続は最初の呼び出しまで遅延されます。
func Dial(addr string, opts Options, dialOpts ...grpc.DialOption) (*RecordService, error) {
	if addr == "" {
		return nil, fmt.Errorf("client: server address must be set")
	}

	all := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, dialOpts...)
	conn, err := grpc.NewClient(addr, all...)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", addr, err)
	}

	svc := New(employeev1.NewEmployeeServiceClient(conn), opts)
	svc.conn = conn
	return svc, nil
}

// New は既存のスタブから RecordService を生成します。
func New(api employeev1.EmployeeServiceClient, opts Options) *RecordService {
	return &RecordService{api: api, opts: opts.normalized()}
}

// Close は Dial で作成したコネクションを閉じます。
func (s *RecordService) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// ListEmployees は全ページを取得して連結します。
func (s *RecordService) ListEmployees(ctx context.Context) ([]directory.Record, error) {
	var (
		records []directory.Record
		token   string
	)

	for page := 0; page < maxPages; page++ {
		resp, err := s.listPage(ctx, token)
		if err != nil {
			return nil, err
		}

		for _, e := range resp.GetEmployees() {
			records = append(records, toRecord(e))
		}

		token = resp.GetNextPageToken()
		if token == "" {
			if records == nil {
				records = []directory.Record{}
			}
			return records, nil
		}
	}

	return nil, errPageLimitExceeded
}

func (s *RecordService) listPage(ctx context.Context, token string) (*employeev1.ListEmployeesResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	resp, err := s.api.ListEmployees(ctx, &employeev1.ListEmployeesRequest{
		PageSize:  int32(s.opts.PageSize),
		PageToken: token,
	})
	if err != nil {
		return nil, translateError("list employees", err)
	}
	return resp, nil
}

// CreateEmployee はレコードを作成し、採番済みのレコードを返します。
func (s *RecordService) CreateEmployee(ctx context.Context, r directory.Record) (directory.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	resp, err := s.api.CreateEmployee(ctx, &employeev1.CreateEmployeeRequest{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Department: r.Department.String(),
		Position:   r.Position,
	})
	if err != nil {
		return directory.Record{}, translateError("create employee", err)
	}
	return toRecord(resp.GetEmployee()), nil
}

// GetEmployee は id のレコードを取得します。
func (s *RecordService) GetEmployee(ctx context.Context, id string) (directory.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	resp, err := s.api.GetEmployee(ctx, &employeev1.GetEmployeeRequest{Id: id})
	if err != nil {
		return directory.Record{}, translateError("get employee", err)
	}
	return toRecord(resp.GetEmployee()), nil
}

// UpdateEmployee はフォームの全フィールドで id のレコードを置き換えます。
func (s *RecordService) UpdateEmployee(ctx context.Context, id string, r directory.Record) (directory.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	dept := r.Department.String()
	resp, err := s.api.UpdateEmployee(ctx, &employeev1.UpdateEmployeeRequest{
		Id:         id,
		Name:       &r.Name,
		Email:      &r.Email,
		Phone:      &r.Phone,
		Department: &dept,
		Position:   &r.Position,
	})
	if err != nil {
		return directory.Record{}, translateError("update employee", err)
	}
	return toRecord(resp.GetEmployee()), nil
}

// DeleteEmployee は id のレコードを削除します。
func (s *RecordService) DeleteEmployee(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	if _, err := s.api.DeleteEmployee(ctx, &employeev1.DeleteEmployeeRequest{Id: id}); err != nil {
		return translateError("delete employee", err)
	}
	return nil
}

func toRecord(e *employeev1.Employee) directory.Record {
	return directory.Record{
		ID:         e.GetId(),
		Name:       e.GetName(),
		Email:      e.GetEmail(),
		Phone:      e.GetPhone(),
		Department: department.Name(e.GetDepartment()),
		Position:   e.GetPosition(),
	}
}

func translateError(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("client: %s: %w: %w", op, directory.ErrRecordNotFound, err)
	}
	return fmt.Errorf("client: %s: %w", op, err)
}
