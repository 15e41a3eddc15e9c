package directory

import "errors"

var (
	ErrValidation        = errors.New("directory: validation failed")
	ErrServiceFailure    = errors.New("directory: record service failure")
	ErrRecordNotFound    = errors.New("directory: record not found")
	ErrNoPendingDelete   = errors.New("directory: no delete awaiting confirmation")
	ErrUnknownDepartment = errors.New("directory: unknown department")
	ErrUnknownSortKey    = errors.New("directory: unknown sort key")
	ErrUnknownViewMode   = errors.New("directory: unknown view mode")
	ErrEditorNotReady    = errors.New("directory: editor is not ready")
)

// 利用者に表示する通知メッセージです。
const (
	MsgFixFormErrors   = "Please fix the errors in the form"
	MsgFetchFailed     = "Failed to fetch employees"
	MsgFetchOneFailed  = "Failed to fetch employee data"
	MsgAddSucceeded    = "Employee added successfully!"
	MsgAddFailed       = "Failed to add employee"
	MsgUpdateSucceeded = "Employee updated successfully!"
	MsgUpdateFailed    = "Failed to update employee"
	MsgDeleteSucceeded = "Employee deleted successfully"
	MsgDeleteFailed    = "Failed to delete employee"
	MsgExportSucceeded = "Data exported successfully"
	MsgExportFailed    = "Failed to export employees"
)
