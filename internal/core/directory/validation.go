package directory

import (
	"regexp"
	"sort"
	"strings"
)

// Field はバリデーション対象のフィールド名です。
type Field string

const (
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldDepartment Field = "department"
	FieldPosition   Field = "position"
)

const minPhoneDigits = 10

// emailPattern は形だけを確認します。RFC 準拠の検証ではありません。
var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// ValidationErrors はフィールド名からエラーメッセージへの対応です。
// 失敗しているフィールドのキーだけが含まれます。
type ValidationErrors map[Field]string

// Valid はエラーが一件もないかを返します。
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Fields は失敗しているフィールドをソートして返します。
func (v ValidationErrors) Fields() []Field {
	fields := make([]Field, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v.Fields() {
		parts = append(parts, string(f)+": "+v[f])
	}
	return strings.Join(parts, "; ")
}

// Validate はレコードを検証し、失敗したフィールドをすべて返します。
func Validate(r Record) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(r.Name) == "" {
		errs[FieldName] = "Name is required"
	}

	email := strings.TrimSpace(r.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "Email is invalid"
	}

	switch {
	case strings.TrimSpace(r.Phone) == "":
		errs[FieldPhone] = "Phone is required"
	case len(PhoneDigits(r.Phone)) < minPhoneDigits:
		errs[FieldPhone] = "Phone must be at least 10 digits"
	}

	if strings.TrimSpace(r.Position) == "" {
		errs[FieldPosition] = "Position is required"
	}

	return errs
}

// PhoneDigits は電話番号から数字以外を取り除いた文字列を返します。
func PhoneDigits(phone string) string {
	return nonDigit.ReplaceAllString(phone, "")
}
