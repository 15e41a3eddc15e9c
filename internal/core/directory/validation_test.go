package directory

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Record)
		want   ValidationErrors
	}{
		{
			name:   "valid",
			mutate: func(*Record) {},
			want:   ValidationErrors{},
		},
		{
			name: "missing name and malformed email",
			mutate: func(r *Record) {
				r.Name = ""
				r.Email = "bob@"
			},
			want: ValidationErrors{
				FieldName:  "Name is required",
				FieldEmail: "Email is invalid",
			},
		},
		{
			name: "whitespace only fields",
			mutate: func(r *Record) {
				r.Name = "   "
				r.Email = "  "
				r.Phone = " "
				r.Position = "\t"
			},
			want: ValidationErrors{
				FieldName:     "Name is required",
				FieldEmail:    "Email is required",
				FieldPhone:    "Phone is required",
				FieldPosition: "Position is required",
			},
		},
		{
			name:   "short phone",
			mutate: func(r *Record) { r.Phone = "555-1234" },
			want:   ValidationErrors{FieldPhone: "Phone must be at least 10 digits"},
		},
		{
			name:   "formatted phone counts digits only",
			mutate: func(r *Record) { r.Phone = "(555) 123-4567" },
			want:   ValidationErrors{},
		},
		{
			name:   "email surrounded by spaces",
			mutate: func(r *Record) { r.Email = "  ann@example.com  " },
			want:   ValidationErrors{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := validRecord("", "Ann")
			tt.mutate(&r)

			got := Validate(r)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Validate mismatch (-want +got):\n%s", diff)
			}
			if got.Valid() != (len(tt.want) == 0) {
				t.Fatalf("Valid() = %v", got.Valid())
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		FieldPhone: "Phone is required",
		FieldEmail: "Email is required",
	}
	if got, want := errs.Error(), "email: Email is required; phone: Phone is required"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	var target ValidationErrors
	if !errors.As(error(errs), &target) {
		t.Fatalf("expected errors.As to match ValidationErrors")
	}
}

func TestPhoneDigits(t *testing.T) {
	t.Parallel()

	if got := PhoneDigits("+1 (555) 010-9999"); got != "15550109999" {
		t.Fatalf("PhoneDigits = %q", got)
	}
}
