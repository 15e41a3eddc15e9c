package directory

import (
	"context"
	"io"
)

// RecordService はリモートの社員レコードサービスです。
// 各呼び出しは値付きの成功か、理由付きの失敗のどちらかで完了します。
type RecordService interface {
	ListEmployees(ctx context.Context) ([]Record, error)
	CreateEmployee(ctx context.Context, r Record) (Record, error)
	GetEmployee(ctx context.Context, id string) (Record, error)
	UpdateEmployee(ctx context.Context, id string, r Record) (Record, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// Navigator は画面遷移を担う表示層です。
type Navigator interface {
	NavigateRoot()
	NavigateEditor(id string)
	NavigateCreate()
}

// Exporter は導出済みビューをファイル形式に書き出します。
type Exporter interface {
	Export(w io.Writer, records []Record) error
}

type noopNavigator struct{}

func (noopNavigator) NavigateRoot()         {}
func (noopNavigator) NavigateEditor(string) {}
func (noopNavigator) NavigateCreate()       {}
