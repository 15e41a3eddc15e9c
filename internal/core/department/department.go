package department

import "strings"

// Name は部署名を表します。値は固定の列挙集合のいずれかです。
type Name string

const (
	Engineering Name = "Engineering"
	Medical     Name = "Medical"
	Marketing   Name = "Marketing"
	Sales       Name = "Sales"
	HR          Name = "HR"
	Finance     Name = "Finance"
	Operations  Name = "Operations"
)

// Default は新規ドラフトに設定される部署です。
const Default = Engineering

var all = []Name{Engineering, Medical, Marketing, Sales, HR, Finance, Operations}

// All は表示順に並んだ部署一覧のコピーを返します。
func All() []Name {
	out := make([]Name, len(all))
	copy(out, all)
	return out
}

// Valid は n が列挙集合に含まれるかを返します。
func (n Name) Valid() bool {
	for _, candidate := range all {
		if candidate == n {
			return true
		}
	}
	return false
}

func (n Name) String() string {
	return string(n)
}

// Parse は大文字小文字を区別せずに部署名を解決します。
func Parse(raw string) (Name, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, candidate := range all {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, true
		}
	}
	return "", false
}
