package directory

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ogurasousui/employee-directory/internal/platform/logger"
)

// NavigationDelay は作成・更新成功から一覧へ戻るまでの待ち時間です。
const NavigationDelay = 1000 * time.Millisecond

// State は Orchestrator が所有する状態です。
type State struct {
	Records []Record
	Query   QueryParams
	Loading bool
	Loaded  bool
}

// Snapshot は表示層へ渡す読み取り専用のスナップショットです。
type Snapshot struct {
	View         []Record
	Total        int
	Query        QueryParams
	Modal        ModalState
	Notification *Notification
	Loading      bool
	Loaded       bool
}

// Options は Orchestrator の任意設定です。
type Options struct {
	Clock           Clock
	OnChange        func()
	NavigationDelay time.Duration
}

// Orchestrator はレコード集合の唯一の更新者として、リモート呼び出しと状態遷移をまとめます。
type Orchestrator struct {
	svc      RecordService
	nav      Navigator
	clock    Clock
	navDelay time.Duration
	onChange func()

	notifier *Notifier

	mu        sync.Mutex
	state     State
	modal     ModalCoordinator
	navSeq    uint64
	navTimers map[uint64]Timer
	closed    bool
}

// NewOrchestrator は Orchestrator を生成します。nav が nil の場合は遷移を行いません。
func NewOrchestrator(svc RecordService, nav Navigator, opts Options) *Orchestrator {
	if nav == nil {
		nav = noopNavigator{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock()
	}
	delay := opts.NavigationDelay
	if delay <= 0 {
		delay = NavigationDelay
	}

	o := &Orchestrator{
		svc:       svc,
		nav:       nav,
		clock:     clock,
		navDelay:  delay,
		onChange:  opts.OnChange,
		state:     State{Query: DefaultQueryParams()},
		navTimers: make(map[uint64]Timer),
	}
	o.notifier = NewNotifier(clock, o.changed)
	return o
}

// Load はレコード集合を取得し直します。失敗時は直前の集合を保持します。
func (o *Orchestrator) Load(ctx context.Context) error {
	o.mu.Lock()
	o.state.Loading = true
	o.mu.Unlock()
	o.changed()

	records, err := o.svc.ListEmployees(ctx)

	o.mu.Lock()
	o.state.Loading = false
	if err == nil {
		o.state.Records = cloneRecords(records)
		o.state.Loaded = true
	}
	o.mu.Unlock()

	if err != nil {
		logger.Error(ctx, err, "list employees failed")
		o.notifier.Notify(MsgFetchFailed, KindError)
		return fmt.Errorf("%w: list employees: %w", ErrServiceFailure, err)
	}

	o.changed()
	return nil
}

// Create はドラフトを検証し、有効であればサービスへ作成を依頼します。
func (o *Orchestrator) Create(ctx context.Context, draft Record) (ValidationErrors, error) {
	if errs := Validate(draft); !errs.Valid() {
		o.notifier.Notify(MsgFixFormErrors, KindError)
		return errs, fmt.Errorf("%w: %w", ErrValidation, errs)
	}

	draft.ID = ""
	created, err := o.svc.CreateEmployee(ctx, draft)
	if err != nil {
		logger.Error(ctx, err, "create employee failed")
		o.notifier.Notify(MsgAddFailed, KindError)
		return nil, fmt.Errorf("%w: create employee: %w", ErrServiceFailure, err)
	}

	o.mu.Lock()
	o.state.Records = upsertRecord(o.state.Records, created, true)
	o.mu.Unlock()

	o.notifier.Notify(MsgAddSucceeded, KindSuccess)
	o.scheduleNavigateRoot()
	return nil, nil
}

// LoadForEdit は編集対象を ID で取得します。
func (o *Orchestrator) LoadForEdit(ctx context.Context, id string) (Record, error) {
	found, err := o.svc.GetEmployee(ctx, id)
	if err != nil {
		logger.Error(ctx, err, "get employee %s failed", id)
		o.notifier.Notify(MsgFetchOneFailed, KindError)
		return Record{}, fmt.Errorf("%w: get employee %s: %w", ErrServiceFailure, id, err)
	}
	return found, nil
}

// Update は検証後に id のレコードを更新します。
func (o *Orchestrator) Update(ctx context.Context, id string, r Record) (ValidationErrors, error) {
	if errs := Validate(r); !errs.Valid() {
		o.notifier.Notify(MsgFixFormErrors, KindError)
		return errs, fmt.Errorf("%w: %w", ErrValidation, errs)
	}

	r.ID = id
	updated, err := o.svc.UpdateEmployee(ctx, id, r)
	if err != nil {
		logger.Error(ctx, err, "update employee %s failed", id)
		o.notifier.Notify(MsgUpdateFailed, KindError)
		return nil, fmt.Errorf("%w: update employee %s: %w", ErrServiceFailure, id, err)
	}
	if updated.ID == "" {
		updated.ID = id
	}

	o.mu.Lock()
	o.state.Records = upsertRecord(o.state.Records, updated, false)
	o.mu.Unlock()

	o.notifier.Notify(MsgUpdateSucceeded, KindSuccess)
	o.scheduleNavigateRoot()
	return nil, nil
}

// OpenEditor は更新フォームを作成し、対象レコードを読み込みます。
// 読み込みに失敗した場合、フォームは EditorLoadFailed のまま返ります。
func (o *Orchestrator) OpenEditor(ctx context.Context, id string) (*Editor, error) {
	e := newEditEditor(id)
	found, err := o.LoadForEdit(ctx, id)
	if err != nil {
		e.Status = EditorLoadFailed
		return e, err
	}
	found.ID = id
	e.Draft = found
	e.Status = EditorReady
	return e, nil
}

// Submit はフォームのモードに応じて Create または Update を実行します。
func (o *Orchestrator) Submit(ctx context.Context, e *Editor) error {
	if e == nil || !e.Editable() {
		return ErrEditorNotReady
	}

	e.Status = EditorSubmitting
	var (
		errs ValidationErrors
		err  error
	)
	if e.Mode == EditorEdit {
		errs, err = o.Update(ctx, e.ID, e.Draft)
	} else {
		errs, err = o.Create(ctx, e.Draft)
	}

	if errs == nil {
		errs = ValidationErrors{}
	}
	e.Errors = errs
	if err != nil {
		e.Status = EditorReady
		return err
	}
	e.Status = EditorSaved
	return nil
}

// RequestDelete は削除確認ダイアログを開きます。
func (o *Orchestrator) RequestDelete(r Record) {
	o.mu.Lock()
	o.modal.OpenDeleteConfirm(r)
	o.mu.Unlock()
	o.changed()
}

// CancelDelete は削除確認ダイアログを閉じます。
func (o *Orchestrator) CancelDelete() {
	o.CloseModal()
}

// ConfirmDelete は確認済みのレコードを削除します。
// 成功した場合だけ集合から取り除き、ダイアログを閉じます。
func (o *Orchestrator) ConfirmDelete(ctx context.Context) error {
	o.mu.Lock()
	pending := o.modal.State()
	o.mu.Unlock()

	if pending.Kind != ModalConfirmingDelete {
		return ErrNoPendingDelete
	}
	target := pending.Record

	if err := o.svc.DeleteEmployee(ctx, target.ID); err != nil {
		logger.Error(ctx, err, "delete employee %s failed", target.ID)
		o.notifier.Notify(MsgDeleteFailed, KindError)
		return fmt.Errorf("%w: delete employee %s: %w", ErrServiceFailure, target.ID, err)
	}

	o.mu.Lock()
	o.state.Records = removeRecord(o.state.Records, target.ID)
	if current := o.modal.State(); current.Kind == ModalConfirmingDelete && current.Record.ID == target.ID {
		o.modal.Close()
	}
	o.mu.Unlock()

	o.notifier.Notify(MsgDeleteSucceeded, KindSuccess)
	return nil
}

// ViewRecord は詳細表示ダイアログを開きます。
func (o *Orchestrator) ViewRecord(r Record) {
	o.mu.Lock()
	o.modal.OpenView(r)
	o.mu.Unlock()
	o.changed()
}

// CloseModal は開いているダイアログを閉じます。
func (o *Orchestrator) CloseModal() {
	o.mu.Lock()
	o.modal.Close()
	o.mu.Unlock()
	o.changed()
}

// BeginEdit はダイアログを閉じて更新フォームへの遷移を通知します。
func (o *Orchestrator) BeginEdit(id string) {
	o.mu.Lock()
	o.modal.Close()
	o.mu.Unlock()
	o.changed()
	o.nav.NavigateEditor(id)
}

// BeginCreate は新規作成フォームへの遷移を通知します。
func (o *Orchestrator) BeginCreate() {
	o.nav.NavigateCreate()
}

// CancelEdit は一覧への遷移を通知します。
func (o *Orchestrator) CancelEdit() {
	o.nav.NavigateRoot()
}

// SetSearchTerm は検索語を設定します。
func (o *Orchestrator) SetSearchTerm(term string) {
	o.mu.Lock()
	o.state.Query.SearchTerm = term
	o.mu.Unlock()
	o.changed()
}

// SetDepartmentFilter は部署フィルタを設定します。
func (o *Orchestrator) SetDepartmentFilter(raw string) error {
	filter, err := ParseDepartmentFilter(raw)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.state.Query.Department = filter
	o.mu.Unlock()
	o.changed()
	return nil
}

// SetSortKey は並び順を設定します。
func (o *Orchestrator) SetSortKey(key SortKey) error {
	if key != SortByName && key != SortByDepartment {
		return fmt.Errorf("%q: %w", key, ErrUnknownSortKey)
	}
	o.mu.Lock()
	o.state.Query.SortKey = key
	o.mu.Unlock()
	o.changed()
	return nil
}

// SetViewMode は表示形式を設定します。
func (o *Orchestrator) SetViewMode(mode ViewMode) error {
	if mode != ViewGrid && mode != ViewList {
		return fmt.Errorf("%q: %w", mode, ErrUnknownViewMode)
	}
	o.mu.Lock()
	o.state.Query.ViewMode = mode
	o.mu.Unlock()
	o.changed()
	return nil
}

// View は現在の状態から導出ビューを計算します。
func (o *Orchestrator) View() []Record {
	o.mu.Lock()
	records, params := o.state.Records, o.state.Query
	o.mu.Unlock()
	return DeriveView(records, params)
}

// Records は権威あるレコード集合のコピーを返します。
func (o *Orchestrator) Records() []Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	return cloneRecords(o.state.Records)
}

// Query は現在の検索条件を返します。
func (o *Orchestrator) Query() QueryParams {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Query
}

// Modal は現在のダイアログ状態を返します。
func (o *Orchestrator) Modal() ModalState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.modal.State()
}

// Notification は表示中の通知を返します。
func (o *Orchestrator) Notification() (Notification, bool) {
	return o.notifier.Current()
}

// DismissNotification は通知を明示的に消します。
func (o *Orchestrator) DismissNotification() {
	o.notifier.Clear()
}

// Snapshot は表示に必要な状態をまとめて返します。
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	st := o.state
	records := st.Records
	modal := o.modal.State()
	o.mu.Unlock()

	snap := Snapshot{
		View:    DeriveView(records, st.Query),
		Total:   len(records),
		Query:   st.Query,
		Modal:   modal,
		Loading: st.Loading,
		Loaded:  st.Loaded,
	}
	if n, ok := o.notifier.Current(); ok {
		snap.Notification = &n
	}
	return snap
}

// Export は導出ビューを exporter で w へ書き出します。
func (o *Orchestrator) Export(ctx context.Context, w io.Writer, exporter Exporter) error {
	if err := exporter.Export(w, o.View()); err != nil {
		logger.Error(ctx, err, "export employees failed")
		o.notifier.Notify(MsgExportFailed, KindError)
		return fmt.Errorf("directory: export: %w", err)
	}
	o.notifier.Notify(MsgExportSucceeded, KindSuccess)
	return nil
}

// Close は保留中の通知・遷移タイマーを停止します。
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.closed = true
	for id, t := range o.navTimers {
		if t != nil {
			t.Stop()
		}
		delete(o.navTimers, id)
	}
	o.mu.Unlock()
	o.notifier.Stop()
}

func (o *Orchestrator) scheduleNavigateRoot() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.navSeq++
	id := o.navSeq
	o.navTimers[id] = nil
	o.mu.Unlock()

	t := o.clock.AfterFunc(o.navDelay, func() {
		o.mu.Lock()
		_, pending := o.navTimers[id]
		delete(o.navTimers, id)
		o.mu.Unlock()
		if pending {
			o.nav.NavigateRoot()
		}
	})

	o.mu.Lock()
	if _, pending := o.navTimers[id]; pending {
		o.navTimers[id] = t
	} else if o.closed {
		t.Stop()
	}
	o.mu.Unlock()
}

func (o *Orchestrator) changed() {
	if o.onChange != nil {
		o.onChange()
	}
}

func upsertRecord(records []Record, r Record, appendMissing bool) []Record {
	out := cloneRecords(records)
	for i := range out {
		if out[i].ID != "" && out[i].ID == r.ID {
			out[i] = r
			return out
		}
	}
	if appendMissing {
		out = append(out, r)
	}
	return out
}

func removeRecord(records []Record, id string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
