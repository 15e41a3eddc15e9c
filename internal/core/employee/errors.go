package employee

import "errors"

var (
	ErrInvalidID         = errors.New("employee: invalid id")
	ErrInvalidName       = errors.New("employee: invalid name")
	ErrInvalidEmail      = errors.New("employee: invalid email")
	ErrInvalidPhone      = errors.New("employee: invalid phone")
	ErrInvalidDepartment = errors.New("employee: invalid department")
	ErrInvalidPosition   = errors.New("employee: invalid position")
	ErrInvalidPageSize   = errors.New("employee: invalid page size")
	ErrInvalidPageToken  = errors.New("employee: invalid page token")
	ErrEmployeeNotFound  = errors.New("employee: not found")
)
