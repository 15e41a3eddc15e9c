package employeev1

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	protoFile    = "employee/v1/employee.proto"
	protoPackage = "employee.v1"

	timestampType = ".google.protobuf.Timestamp"
	stringType    = ".google.protobuf.StringValue"
	emptyType     = ".google.protobuf.Empty"
)

// File は employee/v1/employee.proto の記述子です。
// .proto ファイルと同じ内容を descriptorpb で組み立てています。
var File = mustBuildFile()

func mustBuildFile() protoreflect.FileDescriptor {
	fd, err := protodesc.NewFile(fileDescriptorProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("employeev1: build %s: %v", protoFile, err))
	}
	return fd
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(protoFile),
		Package: proto.String(protoPackage),
		Syntax:  proto.String("proto3"),
		Dependency: []string{
			timestamppb.File_google_protobuf_timestamp_proto.Path(),
			wrapperspb.File_google_protobuf_wrappers_proto.Path(),
			emptypb.File_google_protobuf_empty_proto.Path(),
		},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/ogurasousui/employee-directory/internal/adapters/grpc/employeev1"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			message("Employee",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("name", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("email", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("phone", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("department", 5, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("position", 6, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				messageRef("created_at", 7, timestampType),
				messageRef("updated_at", 8, timestampType),
			),
			message("CreateEmployeeRequest",
				scalar("name", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("email", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("phone", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("department", 4, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				scalar("position", 5, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("CreateEmployeeResponse", messageRef("employee", 1, localType("Employee"))),
			message("GetEmployeeRequest", scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
			message("GetEmployeeResponse", messageRef("employee", 1, localType("Employee"))),
			message("ListEmployeesRequest",
				scalar("page_size", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32),
				scalar("page_token", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("ListEmployeesResponse",
				repeated(messageRef("employees", 1, localType("Employee"))),
				scalar("next_page_token", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING),
			),
			message("UpdateEmployeeRequest",
				scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				messageRef("name", 2, stringType),
				messageRef("email", 3, stringType),
				messageRef("phone", 4, stringType),
				messageRef("department", 5, stringType),
				messageRef("position", 6, stringType),
			),
			message("UpdateEmployeeResponse", messageRef("employee", 1, localType("Employee"))),
			message("DeleteEmployeeRequest", scalar("id", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING)),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("EmployeeService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("CreateEmployee", localType("CreateEmployeeRequest"), localType("CreateEmployeeResponse")),
				method("GetEmployee", localType("GetEmployeeRequest"), localType("GetEmployeeResponse")),
				method("ListEmployees", localType("ListEmployeesRequest"), localType("ListEmployeesResponse")),
				method("UpdateEmployee", localType("UpdateEmployeeRequest"), localType("UpdateEmployeeResponse")),
				method("DeleteEmployee", localType("DeleteEmployeeRequest"), emptyType),
			},
		}},
	}
}

func localType(name string) string {
	return "." + protoPackage + "." + name
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func scalar(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func messageRef(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalar(name, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE)
	f.TypeName = proto.String(typeName)
	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func method(name, input, output string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String(input),
		OutputType: proto.String(output),
	}
}

func messageDescriptor(name protoreflect.Name) protoreflect.MessageDescriptor {
	if name == "Empty" {
		return (&emptypb.Empty{}).ProtoReflect().Descriptor()
	}
	md := File.Messages().ByName(name)
	if md == nil {
		panic(fmt.Sprintf("employeev1: message %s is not declared in %s", name, protoFile))
	}
	return md
}
