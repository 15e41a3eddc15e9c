// Package employeev1 は employee.v1.EmployeeService のワイヤ定義です。
// gRPC では File の記述子に沿った protobuf で、REST では JSON タグで送受信されます。
package employeev1

import "time"

// Employee は社員のワイヤ表現です。
type Employee struct {
	Id         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (x *Employee) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

func (x *Employee) GetName() string {
	if x == nil {
		return ""
	}
	return x.Name
}

func (x *Employee) GetEmail() string {
	if x == nil {
		return ""
	}
	return x.Email
}

func (x *Employee) GetPhone() string {
	if x == nil {
		return ""
	}
	return x.Phone
}

func (x *Employee) GetDepartment() string {
	if x == nil {
		return ""
	}
	return x.Department
}

func (x *Employee) GetPosition() string {
	if x == nil {
		return ""
	}
	return x.Position
}

type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position"`
}

type CreateEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

func (x *CreateEmployeeResponse) GetEmployee() *Employee {
	if x == nil {
		return nil
	}
	return x.Employee
}

type GetEmployeeRequest struct {
	Id string `json:"id"`
}

func (x *GetEmployeeRequest) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

type GetEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

func (x *GetEmployeeResponse) GetEmployee() *Employee {
	if x == nil {
		return nil
	}
	return x.Employee
}

type ListEmployeesRequest struct {
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

func (x *ListEmployeesRequest) GetPageSize() int32 {
	if x == nil {
		return 0
	}
	return x.PageSize
}

func (x *ListEmployeesRequest) GetPageToken() string {
	if x == nil {
		return ""
	}
	return x.PageToken
}

type ListEmployeesResponse struct {
	Employees     []*Employee `json:"employees"`
	NextPageToken string      `json:"next_page_token,omitempty"`
}

func (x *ListEmployeesResponse) GetEmployees() []*Employee {
	if x == nil {
		return nil
	}
	return x.Employees
}

func (x *ListEmployeesResponse) GetNextPageToken() string {
	if x == nil {
		return ""
	}
	return x.NextPageToken
}

// UpdateEmployeeRequest は部分更新です。nil のフィールドは変更されません。
type UpdateEmployeeRequest struct {
	Id         string  `json:"id"`
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
}

func (x *UpdateEmployeeRequest) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

type UpdateEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

func (x *UpdateEmployeeResponse) GetEmployee() *Employee {
	if x == nil {
		return nil
	}
	return x.Employee
}

type DeleteEmployeeRequest struct {
	Id string `json:"id"`
}

func (x *DeleteEmployeeRequest) GetId() string {
	if x == nil {
		return ""
	}
	return x.Id
}

type DeleteEmployeeResponse struct{}
