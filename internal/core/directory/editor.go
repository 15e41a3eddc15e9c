package directory

import (
	"fmt"

	"github.com/ogurasousui/employee-directory/internal/core/department"
)

// EditorMode は作成か更新かを表します。
type EditorMode int

const (
	EditorCreate EditorMode = iota
	EditorEdit
)

// EditorStatus は編集フォームの状態です。
type EditorStatus int

const (
	EditorLoading EditorStatus = iota
	EditorReady
	EditorLoadFailed
	EditorSubmitting
	EditorSaved
)

// Editor は作成・更新フォームのドラフトとフィールドエラーを保持します。
type Editor struct {
	Mode   EditorMode
	ID     string
	Draft  Record
	Errors ValidationErrors
	Status EditorStatus
}

// NewCreateEditor は新規作成用のフォームを返します。
func NewCreateEditor() *Editor {
	return &Editor{
		Mode:   EditorCreate,
		Draft:  NewDraft(),
		Errors: ValidationErrors{},
		Status: EditorReady,
	}
}

func newEditEditor(id string) *Editor {
	draft := NewDraft()
	draft.ID = id
	return &Editor{
		Mode:   EditorEdit,
		ID:     id,
		Draft:  draft,
		Errors: ValidationErrors{},
		Status: EditorLoading,
	}
}

// SetField はドラフトを更新し、そのフィールドのエラーだけを消します。
func (e *Editor) SetField(f Field, value string) error {
	switch f {
	case FieldName:
		e.Draft.Name = value
	case FieldEmail:
		e.Draft.Email = value
	case FieldPhone:
		e.Draft.Phone = value
	case FieldPosition:
		e.Draft.Position = value
	case FieldDepartment:
		name, ok := department.Parse(value)
		if !ok {
			return fmt.Errorf("%q: %w", value, ErrUnknownDepartment)
		}
		e.Draft.Department = name
	default:
		return fmt.Errorf("directory: unknown field %q", f)
	}
	delete(e.Errors, f)
	return nil
}

// Value はフィールドの現在値を返します。
func (e *Editor) Value(f Field) string {
	switch f {
	case FieldName:
		return e.Draft.Name
	case FieldEmail:
		return e.Draft.Email
	case FieldPhone:
		return e.Draft.Phone
	case FieldPosition:
		return e.Draft.Position
	case FieldDepartment:
		return string(e.Draft.Department)
	default:
		return ""
	}
}

// Reset はドラフトを初期値に戻します。更新フォームでは ID を保持します。
func (e *Editor) Reset() {
	draft := NewDraft()
	draft.ID = e.ID
	e.Draft = draft
	e.Errors = ValidationErrors{}
}

// Editable はフォームが入力を受け付ける状態かを返します。
func (e *Editor) Editable() bool {
	return e.Status == EditorReady
}
