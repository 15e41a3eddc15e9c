package employeev1

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// wireMessage はメッセージ構造体と File の記述子との対応です。
type wireMessage interface {
	protoName() protoreflect.Name
	toProto(m protoreflect.Message)
	fromProto(m protoreflect.Message)
}

func fieldOf(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	fd := m.Descriptor().Fields().ByName(name)
	if fd == nil {
		panic(fmt.Sprintf("employeev1: %s has no field %s", m.Descriptor().FullName(), name))
	}
	return fd
}

func setString(m protoreflect.Message, name protoreflect.Name, v string) {
	if v == "" {
		return
	}
	m.Set(fieldOf(m, name), protoreflect.ValueOfString(v))
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(fieldOf(m, name)).String()
}

// setStringValue は google.protobuf.StringValue を設定します。nil は未設定のままです。
func setStringValue(m protoreflect.Message, name protoreflect.Name, v *string) {
	if v == nil {
		return
	}
	fd := fieldOf(m, name)
	w := m.NewField(fd).Message()
	w.Set(fieldOf(w, "value"), protoreflect.ValueOfString(*v))
	m.Set(fd, protoreflect.ValueOfMessage(w))
}

func getStringValue(m protoreflect.Message, name protoreflect.Name) *string {
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return nil
	}
	v := getString(m.Get(fd).Message(), "value")
	return &v
}

func setTimestamp(m protoreflect.Message, name protoreflect.Name, t time.Time) {
	if t.IsZero() {
		return
	}
	ts := timestamppb.New(t)
	fd := fieldOf(m, name)
	w := m.NewField(fd).Message()
	w.Set(fieldOf(w, "seconds"), protoreflect.ValueOfInt64(ts.GetSeconds()))
	w.Set(fieldOf(w, "nanos"), protoreflect.ValueOfInt32(ts.GetNanos()))
	m.Set(fd, protoreflect.ValueOfMessage(w))
}

func getTimestamp(m protoreflect.Message, name protoreflect.Name) time.Time {
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return time.Time{}
	}
	w := m.Get(fd).Message()
	ts := &timestamppb.Timestamp{
		Seconds: w.Get(fieldOf(w, "seconds")).Int(),
		Nanos:   int32(w.Get(fieldOf(w, "nanos")).Int()),
	}
	return ts.AsTime()
}

func setEmployee(m protoreflect.Message, name protoreflect.Name, e *Employee) {
	if e == nil {
		return
	}
	fd := fieldOf(m, name)
	sub := m.NewField(fd).Message()
	e.toProto(sub)
	m.Set(fd, protoreflect.ValueOfMessage(sub))
}

func getEmployee(m protoreflect.Message, name protoreflect.Name) *Employee {
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return nil
	}
	e := &Employee{}
	e.fromProto(m.Get(fd).Message())
	return e
}

func (*Employee) protoName() protoreflect.Name { return "Employee" }

func (x *Employee) toProto(m protoreflect.Message) {
	setString(m, "id", x.Id)
	setString(m, "name", x.Name)
	setString(m, "email", x.Email)
	setString(m, "phone", x.Phone)
	setString(m, "department", x.Department)
	setString(m, "position", x.Position)
	setTimestamp(m, "created_at", x.CreatedAt)
	setTimestamp(m, "updated_at", x.UpdatedAt)
}

func (x *Employee) fromProto(m protoreflect.Message) {
	x.Id = getString(m, "id")
	x.Name = getString(m, "name")
	x.Email = getString(m, "email")
	x.Phone = getString(m, "phone")
	x.Department = getString(m, "department")
	x.Position = getString(m, "position")
	x.CreatedAt = getTimestamp(m, "created_at")
	x.UpdatedAt = getTimestamp(m, "updated_at")
}

func (*CreateEmployeeRequest) protoName() protoreflect.Name { return "CreateEmployeeRequest" }

func (x *CreateEmployeeRequest) toProto(m protoreflect.Message) {
	setString(m, "name", x.Name)
	setString(m, "email", x.Email)
	setString(m, "phone", x.Phone)
	setString(m, "department", x.Department)
	setString(m, "position", x.Position)
}

func (x *CreateEmployeeRequest) fromProto(m protoreflect.Message) {
	x.Name = getString(m, "name")
	x.Email = getString(m, "email")
	x.Phone = getString(m, "phone")
	x.Department = getString(m, "department")
	x.Position = getString(m, "position")
}

func (*CreateEmployeeResponse) protoName() protoreflect.Name { return "CreateEmployeeResponse" }

func (x *CreateEmployeeResponse) toProto(m protoreflect.Message) {
	setEmployee(m, "employee", x.Employee)
}

func (x *CreateEmployeeResponse) fromProto(m protoreflect.Message) {
	x.Employee = getEmployee(m, "employee")
}

func (*GetEmployeeRequest) protoName() protoreflect.Name { return "GetEmployeeRequest" }

func (x *GetEmployeeRequest) toProto(m protoreflect.Message) {
	setString(m, "id", x.Id)
}

func (x *GetEmployeeRequest) fromProto(m protoreflect.Message) {
	x.Id = getString(m, "id")
}

func (*GetEmployeeResponse) protoName() protoreflect.Name { return "GetEmployeeResponse" }

func (x *GetEmployeeResponse) toProto(m protoreflect.Message) {
	setEmployee(m, "employee", x.Employee)
}

func (x *GetEmployeeResponse) fromProto(m protoreflect.Message) {
	x.Employee = getEmployee(m, "employee")
}

func (*ListEmployeesRequest) protoName() protoreflect.Name { return "ListEmployeesRequest" }

func (x *ListEmployeesRequest) toProto(m protoreflect.Message) {
	if x.PageSize != 0 {
		m.Set(fieldOf(m, "page_size"), protoreflect.ValueOfInt32(x.PageSize))
	}
	setString(m, "page_token", x.PageToken)
}

func (x *ListEmployeesRequest) fromProto(m protoreflect.Message) {
	x.PageSize = int32(m.Get(fieldOf(m, "page_size")).Int())
	x.PageToken = getString(m, "page_token")
}

func (*ListEmployeesResponse) protoName() protoreflect.Name { return "ListEmployeesResponse" }

func (x *ListEmployeesResponse) toProto(m protoreflect.Message) {
	if len(x.Employees) > 0 {
		list := m.Mutable(fieldOf(m, "employees")).List()
		for _, e := range x.Employees {
			if e == nil {
				continue
			}
			el := list.NewElement()
			e.toProto(el.Message())
			list.Append(el)
		}
	}
	setString(m, "next_page_token", x.NextPageToken)
}

func (x *ListEmployeesResponse) fromProto(m protoreflect.Message) {
	list := m.Get(fieldOf(m, "employees")).List()
	x.Employees = make([]*Employee, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		e := &Employee{}
		e.fromProto(list.Get(i).Message())
		x.Employees = append(x.Employees, e)
	}
	x.NextPageToken = getString(m, "next_page_token")
}

func (*UpdateEmployeeRequest) protoName() protoreflect.Name { return "UpdateEmployeeRequest" }

func (x *UpdateEmployeeRequest) toProto(m protoreflect.Message) {
	setString(m, "id", x.Id)
	setStringValue(m, "name", x.Name)
	setStringValue(m, "email", x.Email)
	setStringValue(m, "phone", x.Phone)
	setStringValue(m, "department", x.Department)
	setStringValue(m, "position", x.Position)
}

func (x *UpdateEmployeeRequest) fromProto(m protoreflect.Message) {
	x.Id = getString(m, "id")
	x.Name = getStringValue(m, "name")
	x.Email = getStringValue(m, "email")
	x.Phone = getStringValue(m, "phone")
	x.Department = getStringValue(m, "department")
	x.Position = getStringValue(m, "position")
}

func (*UpdateEmployeeResponse) protoName() protoreflect.Name { return "UpdateEmployeeResponse" }

func (x *UpdateEmployeeResponse) toProto(m protoreflect.Message) {
	setEmployee(m, "employee", x.Employee)
}

func (x *UpdateEmployeeResponse) fromProto(m protoreflect.Message) {
	x.Employee = getEmployee(m, "employee")
}

func (*DeleteEmployeeRequest) protoName() protoreflect.Name { return "DeleteEmployeeRequest" }

func (x *DeleteEmployeeRequest) toProto(m protoreflect.Message) {
	setString(m, "id", x.Id)
}

func (x *DeleteEmployeeRequest) fromProto(m protoreflect.Message) {
	x.Id = getString(m, "id")
}

// DeleteEmployeeResponse は google.protobuf.Empty として送受信されます。
func (*DeleteEmployeeResponse) protoName() protoreflect.Name { return "Empty" }

func (*DeleteEmployeeResponse) toProto(protoreflect.Message) {}

func (*DeleteEmployeeResponse) fromProto(protoreflect.Message) {}
