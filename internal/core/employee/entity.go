package employee

import (
	"time"

	"github.com/ogurasousui/employee-directory/internal/core/department"
)

// Employee は社員エンティティです。
type Employee struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Department department.Name
	Position   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
