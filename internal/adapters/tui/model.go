// Package tui は社員ディレクトリの対話型画面です。
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ogurasousui/employee-directory/internal/core/department"
	"github.com/ogurasousui/employee-directory/internal/core/directory"
)

// Options は画面の任意設定です。
type Options struct {
	// ExportPath は x キーで書き出すファイルです。
	ExportPath string
	Exporter   directory.Exporter
}

var formFields = []directory.Field{
	directory.FieldName,
	directory.FieldEmail,
	directory.FieldPhone,
	directory.FieldDepartment,
	directory.FieldPosition,
}

var fieldLabels = map[directory.Field]string{
	directory.FieldName:       "Name",
	directory.FieldEmail:      "Email",
	directory.FieldPhone:      "Phone",
	directory.FieldDepartment: "Department",
	directory.FieldPosition:   "Position",
}

type (
	loadedMsg   struct{ err error }
	deletedMsg  struct{ err error }
	exportedMsg struct{ err error }

	editorOpenedMsg struct {
		seq    uint64
		editor *directory.Editor
	}
	submittedMsg struct {
		seq    uint64
		editor *directory.Editor
		err    error
	}
)

// Model は bubbletea のモデルです。状態の正は Orchestrator が持ち、Model は入力欄とカーソルだけを保持します。
type Model struct {
	orch *directory.Orchestrator
	opts Options

	screen    screen
	width     int
	cursor    int
	search    textinput.Model
	searching bool

	editor    *directory.Editor
	editorSeq uint64
	inputs    map[directory.Field]*textinput.Model
	focus     int

	lastErr error
}

// New は Model を生成します。orch の Navigator と OnChange には同じ Navigator を渡してください。
func New(orch *directory.Orchestrator, opts Options) Model {
	search := newInput("search name, email or position")
	return Model{
		orch:   orch,
		opts:   opts,
		screen: screenDirectory,
		search: search,
	}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 120
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		return loadedMsg{err: orch.Load(context.Background())}
	}
}

func (m Model) openEditorCmd(seq uint64, id string) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		e, _ := orch.OpenEditor(context.Background(), id)
		return editorOpenedMsg{seq: seq, editor: e}
	}
}

func (m Model) submitCmd(seq uint64, e *directory.Editor) tea.Cmd {
	orch := m.orch
	work := cloneEditor(e)
	return func() tea.Msg {
		err := orch.Submit(context.Background(), work)
		return submittedMsg{seq: seq, editor: work, err: err}
	}
}

func (m Model) deleteCmd() tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		return deletedMsg{err: orch.ConfirmDelete(context.Background())}
	}
}

func (m Model) exportCmd() tea.Cmd {
	orch := m.orch
	path := m.opts.ExportPath
	exporter := m.opts.Exporter
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{err: fmt.Errorf("create %s: %w", path, err)}
		}
		err = orch.Export(context.Background(), f, exporter)
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		return exportedMsg{err: err}
	}
}

func cloneEditor(e *directory.Editor) *directory.Editor {
	cp := *e
	cp.Errors = make(directory.ValidationErrors, len(e.Errors))
	for k, v := range e.Errors {
		cp.Errors[k] = v
	}
	return &cp
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case changedMsg:
		m.clampCursor()
		return m, nil

	case loadedMsg:
		m.lastErr = msg.err
		m.clampCursor()
		return m, nil

	case deletedMsg:
		m.lastErr = msg.err
		m.clampCursor()
		return m, nil

	case exportedMsg:
		m.lastErr = msg.err
		return m, nil

	case navigateMsg:
		return m.navigate(msg)

	case editorOpenedMsg:
		if msg.seq != m.editorSeq || m.screen != screenEditor {
			return m, nil
		}
		m.editor = msg.editor
		m.syncInputs()
		return m, nil

	case submittedMsg:
		if msg.seq != m.editorSeq || m.screen != screenEditor {
			return m, nil
		}
		m.lastErr = msg.err
		m.editor = msg.editor
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenEditor {
			return m.updateEditor(msg)
		}
		return m.updateDirectory(msg)
	}

	return m, nil
}

func (m Model) navigate(msg navigateMsg) (tea.Model, tea.Cmd) {
	m.editorSeq++
	m.lastErr = nil

	if msg.screen == screenDirectory {
		m.screen = screenDirectory
		m.editor = nil
		m.inputs = nil
		m.clampCursor()
		return m, nil
	}

	m.screen = screenEditor
	m.focus = 0
	if msg.id == "" {
		m.editor = directory.NewCreateEditor()
		m.syncInputs()
		return m, nil
	}

	m.editor = &directory.Editor{Mode: directory.EditorEdit, ID: msg.id, Status: directory.EditorLoading}
	m.inputs = nil
	return m, m.openEditorCmd(m.editorSeq, msg.id)
}

func (m *Model) syncInputs() {
	m.inputs = make(map[directory.Field]*textinput.Model, len(formFields))
	for _, f := range formFields {
		if f == directory.FieldDepartment {
			continue
		}
		ti := newInput(fieldLabels[f])
		ti.SetValue(m.editor.Value(f))
		m.inputs[f] = &ti
	}
	m.applyFocus()
}

func (m *Model) applyFocus() {
	for i, f := range formFields {
		ti, ok := m.inputs[f]
		if !ok {
			continue
		}
		if i == m.focus {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
}

func (m *Model) clampCursor() {
	n := len(m.orch.View())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (directory.Record, bool) {
	view := m.orch.View()
	if m.cursor < 0 || m.cursor >= len(view) {
		return directory.Record{}, false
	}
	return view[m.cursor], true
}

func (m Model) updateDirectory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modal := m.orch.Modal()
	switch modal.Kind {
	case directory.ModalConfirmingDelete:
		switch msg.String() {
		case "y", "enter":
			return m, m.deleteCmd()
		case "n", "esc":
			m.orch.CancelDelete()
		}
		return m, nil
	case directory.ModalViewing:
		switch msg.String() {
		case "e":
			m.orch.BeginEdit(modal.Record.ID)
		case "D":
			m.orch.RequestDelete(modal.Record)
		case "esc", "enter", "q":
			m.orch.CloseModal()
		}
		return m, nil
	}

	if m.searching {
		switch msg.String() {
		case "enter", "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.orch.SetSearchTerm(m.search.Value())
		m.clampCursor()
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "d":
		m.cycleDepartment()
	case "s":
		next := directory.SortByDepartment
		if m.orch.Query().SortKey == directory.SortByDepartment {
			next = directory.SortByName
		}
		_ = m.orch.SetSortKey(next)
	case "v":
		next := directory.ViewList
		if m.orch.Query().ViewMode == directory.ViewList {
			next = directory.ViewGrid
		}
		_ = m.orch.SetViewMode(next)
	case "enter":
		if r, ok := m.selected(); ok {
			m.orch.ViewRecord(r)
		}
	case "e":
		if r, ok := m.selected(); ok {
			m.orch.BeginEdit(r.ID)
		}
	case "D":
		if r, ok := m.selected(); ok {
			m.orch.RequestDelete(r)
		}
	case "a":
		m.orch.BeginCreate()
	case "r":
		return m, m.loadCmd()
	case "x":
		if m.opts.Exporter != nil && m.opts.ExportPath != "" {
			return m, m.exportCmd()
		}
	}
	return m, nil
}

func (m *Model) cycleDepartment() {
	options := append([]string{directory.DepartmentAll}, departmentNames()...)
	current := m.orch.Query().Department
	next := options[0]
	for i, opt := range options {
		if opt == current {
			next = options[(i+1)%len(options)]
			break
		}
	}
	_ = m.orch.SetDepartmentFilter(next)
	m.clampCursor()
}

func departmentNames() []string {
	all := department.All()
	out := make([]string, len(all))
	for i, d := range all {
		out[i] = d.String()
	}
	return out
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editor == nil {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.orch.CancelEdit()
		return m, nil
	}

	if !m.editor.Editable() {
		return m, nil
	}

	field := formFields[m.focus]
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % len(formFields)
		m.applyFocus()
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + len(formFields) - 1) % len(formFields)
		m.applyFocus()
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.focus == len(formFields)-1 {
			return m.submit()
		}
		m.focus++
		m.applyFocus()
		return m, nil
	case "ctrl+r":
		if m.editor.Mode == directory.EditorCreate {
			m.editor.Reset()
			m.syncInputs()
		}
		return m, nil
	}

	if field == directory.FieldDepartment {
		switch msg.String() {
		case "left", "h":
			m.shiftDepartment(-1)
		case "right", "l", " ":
			m.shiftDepartment(1)
		}
		return m, nil
	}

	ti := m.inputs[field]
	updated, cmd := ti.Update(msg)
	*ti = updated
	if ti.Value() != m.editor.Value(field) {
		_ = m.editor.SetField(field, ti.Value())
	}
	return m, cmd
}

func (m *Model) shiftDepartment(delta int) {
	names := departmentNames()
	idx := 0
	for i, n := range names {
		if n == m.editor.Draft.Department.String() {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(names)) % len(names)
	_ = m.editor.SetField(directory.FieldDepartment, names[idx])
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	cmd := m.submitCmd(m.editorSeq, m.editor)
	m.editor.Status = directory.EditorSubmitting
	return m, cmd
}

// Err は直近の操作のエラーを返します。
func (m Model) Err() error {
	return m.lastErr
}

// ValidationFailed は直近の送信が入力エラーで失敗したかを返します。
func (m Model) ValidationFailed() bool {
	return errors.Is(m.lastErr, directory.ErrValidation)
}

func headerLine(parts ...string) string {
	return strings.Join(parts, styleMuted.Render("  ·  "))
}
