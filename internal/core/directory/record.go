package directory

import "github.com/ogurasousui/employee-directory/internal/core/department"

// Record はクライアント側で保持する社員レコードです。
// ID は初回の作成が成功するまで空文字列です。
type Record struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Department department.Name
	Position   string
}

// NewDraft は新規作成フォーム用の空ドラフトを返します。
func NewDraft() Record {
	return Record{Department: department.Default}
}

// Persisted はレコードがサーバー側で採番済みかを返します。
func (r Record) Persisted() bool {
	return r.ID != ""
}

func cloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
