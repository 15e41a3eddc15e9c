package directory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ogurasousui/employee-directory/internal/core/department"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DepartmentAll は部署フィルタを無効にする値です。
const DepartmentAll = "all"

// SortKey は一覧の並び順を表します。
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByDepartment SortKey = "department"
)

// ViewMode は表示形式です。フィルタ処理には影響しません。
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// QueryParams は一覧の検索・絞り込み・並び替え条件です。
type QueryParams struct {
	SearchTerm string
	Department string
	SortKey    SortKey
	ViewMode   ViewMode
}

// DefaultQueryParams は初期表示時の条件を返します。
func DefaultQueryParams() QueryParams {
	return QueryParams{
		Department: DepartmentAll,
		SortKey:    SortByName,
		ViewMode:   ViewGrid,
	}
}

// ParseDepartmentFilter は "all" または部署名を正規化します。
func ParseDepartmentFilter(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, DepartmentAll) {
		return DepartmentAll, nil
	}
	name, ok := department.Parse(trimmed)
	if !ok {
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownDepartment)
	}
	return string(name), nil
}

// ParseSortKey はソートキーを解決します。
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortByName, "":
		return SortByName, nil
	case SortByDepartment:
		return SortByDepartment, nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownSortKey)
	}
}

// ParseViewMode は表示形式を解決します。
func ParseViewMode(raw string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ViewGrid, "":
		return ViewGrid, nil
	case ViewList:
		return ViewList, nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownViewMode)
	}
}

// DeriveView は records を params に従って絞り込み、安定ソートした新しいスライスを返します。
// 入力スライスは変更しません。
func DeriveView(records []Record, params QueryParams) []Record {
	term := strings.ToLower(params.SearchTerm)

	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if matchesSearch(r, params.SearchTerm, term) && matchesDepartment(r, params.Department) {
			filtered = append(filtered, r)
		}
	}

	var key func(Record) string
	switch params.SortKey {
	case SortByName:
		key = func(r Record) string { return r.Name }
	case SortByDepartment:
		key = func(r Record) string { return string(r.Department) }
	default:
		return filtered
	}

	// Collator は内部バッファを持つため呼び出しごとに生成する。
	c := collate.New(language.English)
	sort.SliceStable(filtered, func(i, j int) bool {
		return c.CompareString(key(filtered[i]), key(filtered[j])) < 0
	})
	return filtered
}

func matchesSearch(r Record, raw, lowered string) bool {
	if raw == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), lowered) ||
		strings.Contains(strings.ToLower(r.Email), lowered) ||
		strings.Contains(r.Phone, raw)
}

func matchesDepartment(r Record, filter string) bool {
	return filter == DepartmentAll || filter == "" || string(r.Department) == filter
}
