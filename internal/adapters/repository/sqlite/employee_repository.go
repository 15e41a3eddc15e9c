package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ogurasousui/employee-directory/internal/core/department"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	sqlitedb "github.com/ogurasousui/employee-directory/internal/platform/db/sqlite"
)

const employeeColumns = `id, name, email, phone, department, position, created_at, updated_at`

// EmployeeRepository は SQLite を利用した社員永続化の実装です。
type EmployeeRepository struct {
	db sqlitedb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(db sqlitedb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `
        INSERT INTO employees (`+employeeColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING `+employeeColumns,
		e.ID, e.Name, e.Email, e.Phone, string(e.Department), e.Position,
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateError(err)
	}
	return created, nil
}

// Update は社員情報を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `
        UPDATE employees
           SET name = ?, email = ?, phone = ?, department = ?, position = ?, updated_at = ?
         WHERE id = ?
        RETURNING `+employeeColumns,
		e.Name, e.Email, e.Phone, string(e.Department), e.Position, formatTime(e.UpdatedAt), e.ID,
	)
	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateError(err)
	}
	return updated, nil
}

// Delete は社員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	res, err := exec.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return translateError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ? LIMIT 1`, id)
	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateError(err)
	}
	return found, nil
}

// List は作成順に社員の一覧を取得します。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, string, error) {
	if filter.Limit <= 0 {
		return nil, "", employee.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", employee.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	rows, err := exec.QueryContext(ctx, `
        SELECT `+employeeColumns+`
          FROM employees
         ORDER BY created_at ASC, id ASC
         LIMIT ? OFFSET ?
    `, limitWithBuffer, filter.Offset)
	if err != nil {
		return nil, "", translateError(err)
	}
	defer func() { _ = rows.Close() }()

	employees := make([]*employee.Employee, 0, filter.Limit)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, "", err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	var nextToken string
	if len(employees) == limitWithBuffer {
		employees = employees[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}
	return employees, nextToken, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*employee.Employee, error) {
	var (
		e                    employee.Employee
		dept                 string
		createdAt, updatedAt string
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &dept, &e.Position, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("sqlite: created_at: %w", err)
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("sqlite: updated_at: %w", err)
	}
	e.Department = department.Name(dept)
	return &e, nil
}

func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}
	if err != nil && strings.Contains(err.Error(), "CHECK constraint failed") {
		return employee.ErrInvalidDepartment
	}
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, raw)
}
