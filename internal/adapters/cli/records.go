package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ogurasousui/employee-directory/internal/core/directory"
	"github.com/spf13/cobra"
)

// queryFlags は list / export 共通の絞り込み条件です。
type queryFlags struct {
	search     string
	department string
	sort       string
}

func (q *queryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.search, "search", "", "case-insensitive match on name, email or position")
	cmd.Flags().StringVar(&q.department, "department", directory.DepartmentAll, "department name or 'all'")
	cmd.Flags().StringVar(&q.sort, "sort", string(directory.SortByName), "sort key: name or department")
}

func (q *queryFlags) apply(orch *directory.Orchestrator) error {
	key, err := directory.ParseSortKey(q.sort)
	if err != nil {
		return err
	}
	if err := orch.SetDepartmentFilter(q.department); err != nil {
		return err
	}
	if err := orch.SetSortKey(key); err != nil {
		return err
	}
	orch.SetSearchTerm(q.search)
	return nil
}

func newListCmd(app *App) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(nil, nil)
			if err != nil {
				return err
			}
			defer s.close()

			if err := q.apply(s.orch); err != nil {
				return err
			}
			if err := s.orch.Load(cmd.Context()); err != nil {
				printNotification(cmd.ErrOrStderr(), s.orch)
				return err
			}

			snap := s.orch.Snapshot()
			if err := printTable(cmd.OutOrStdout(), snap.View); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d employees\n", len(snap.View), snap.Total)
			return nil
		},
	}
	q.bind(cmd)
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(nil, nil)
			if err != nil {
				return err
			}
			defer s.close()

			r, err := s.orch.LoadForEdit(cmd.Context(), args[0])
			if err != nil {
				printNotification(cmd.ErrOrStderr(), s.orch)
				return err
			}
			printRecord(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

// recordFlags は add / edit のフィールド指定です。
type recordFlags struct {
	name       string
	email      string
	phone      string
	department string
	position   string
}

var recordFlagFields = []struct {
	flag  string
	field directory.Field
	usage string
}{
	{"name", directory.FieldName, "full name"},
	{"email", directory.FieldEmail, "email address"},
	{"phone", directory.FieldPhone, "phone number (at least 10 digits)"},
	{"department", directory.FieldDepartment, "department"},
	{"position", directory.FieldPosition, "job title"},
}

func (r *recordFlags) bind(cmd *cobra.Command) {
	targets := map[directory.Field]*string{
		directory.FieldName:       &r.name,
		directory.FieldEmail:      &r.email,
		directory.FieldPhone:      &r.phone,
		directory.FieldDepartment: &r.department,
		directory.FieldPosition:   &r.position,
	}
	for _, f := range recordFlagFields {
		cmd.Flags().StringVar(targets[f.field], f.flag, "", f.usage)
	}
}

func (r *recordFlags) value(f directory.Field) string {
	switch f {
	case directory.FieldName:
		return r.name
	case directory.FieldEmail:
		return r.email
	case directory.FieldPhone:
		return r.phone
	case directory.FieldDepartment:
		return r.department
	default:
		return r.position
	}
}

// fill は指定されたフラグだけをフォームへ反映します。
func (r *recordFlags) fill(cmd *cobra.Command, e *directory.Editor) error {
	for _, f := range recordFlagFields {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		if err := e.SetField(f.field, r.value(f.field)); err != nil {
			return err
		}
	}
	return nil
}

func newAddCmd(app *App) *cobra.Command {
	var r recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(nil, nil)
			if err != nil {
				return err
			}
			defer s.close()

			e := directory.NewCreateEditor()
			if err := r.fill(cmd, e); err != nil {
				return err
			}
			return submit(cmd, s.orch, e)
		},
	}
	r.bind(cmd)
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var r recordFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update an employee; only the given fields change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.open(nil, nil)
			if err != nil {
				return err
			}
			defer s.close()

			e, err := s.orch.OpenEditor(cmd.Context(), args[0])
			if err != nil {
				printNotification(cmd.ErrOrStderr(), s.orch)
				return err
			}
			if err := r.fill(cmd, e); err != nil {
				return err
			}
			return submit(cmd, s.orch, e)
		},
	}
	r.bind(cmd)
	return cmd
}

func submit(cmd *cobra.Command, orch *directory.Orchestrator, e *directory.Editor) error {
	err := orch.Submit(cmd.Context(), e)
	if errors.Is(err, directory.ErrValidation) {
		for _, f := range e.Errors.Fields() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f, e.Errors[f])
		}
	}
	if err != nil {
		printNotification(cmd.ErrOrStderr(), orch)
		return err
	}

	printNotification(cmd.OutOrStdout(), orch)
	printRecord(cmd.OutOrStdout(), e.Draft)
	return nil
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", args[0])
			}

			s, err := app.open(nil, nil)
			if err != nil {
				return err
			}
			defer s.close()

			target, err := s.orch.LoadForEdit(cmd.Context(), args[0])
			if err != nil {
				printNotification(cmd.ErrOrStderr(), s.orch)
				return err
			}
			target.ID = args[0]

			s.orch.RequestDelete(target)
			if err := s.orch.ConfirmDelete(cmd.Context()); err != nil {
				printNotification(cmd.ErrOrStderr(), s.orch)
				return err
			}
			printNotification(cmd.OutOrStdout(), s.orch)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func printNotification(w io.Writer, orch *directory.Orchestrator) {
	if n, ok := orch.Notification(); ok {
		fmt.Fprintln(w, n.Message)
	}
}

func printTable(w io.Writer, records []directory.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDEPARTMENT\tPOSITION\tEMAIL\tPHONE")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Department, r.Position, r.Email, r.Phone)
	}
	return tw.Flush()
}

func printRecord(w io.Writer, r directory.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", r.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", r.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", r.Phone)
	fmt.Fprintf(tw, "Department:\t%s\n", r.Department)
	fmt.Fprintf(tw, "Position:\t%s\n", r.Position)
	_ = tw.Flush()
}
