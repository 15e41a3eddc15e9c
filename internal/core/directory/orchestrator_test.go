package directory

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	clock *fakeClock
	svc   *fakeService
	nav   *fakeNavigator
	orch  *Orchestrator
	ticks atomic.Int64
}

func newHarness(t *testing.T, records ...Record) *harness {
	t.Helper()

	h := &harness{clock: newFakeClock(), svc: newFakeService(records...)}
	h.nav = &fakeNavigator{clock: h.clock}
	h.orch = NewOrchestrator(h.svc, h.nav, Options{
		Clock:    h.clock,
		OnChange: func() { h.ticks.Add(1) },
	})
	t.Cleanup(h.orch.Close)
	return h
}

func (h *harness) notification(t *testing.T) Notification {
	t.Helper()
	n, ok := h.orch.Notification()
	require.True(t, ok, "expected a notification")
	return n
}

func TestOrchestrator_Load(t *testing.T) {
	t.Parallel()

	h := newHarness(t, validRecord("1", "Zoe"), validRecord("2", "Amy"))

	require.NoError(t, h.orch.Load(context.Background()))

	snap := h.orch.Snapshot()
	assert.True(t, snap.Loaded)
	assert.False(t, snap.Loading)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, []string{"Amy", "Zoe"}, names(snap.View))
	assert.Nil(t, snap.Notification)
	assert.Positive(t, h.ticks.Load())
}

func TestOrchestrator_LoadFailureKeepsPreviousRecords(t *testing.T) {
	t.Parallel()

	h := newHarness(t, validRecord("1", "Ann"))
	require.NoError(t, h.orch.Load(context.Background()))

	h.svc.listErr = errUnavailable
	err := h.orch.Load(context.Background())

	require.ErrorIs(t, err, ErrServiceFailure)
	require.ErrorIs(t, err, errUnavailable)
	assert.Len(t, h.orch.Records(), 1)
	n := h.notification(t)
	assert.Equal(t, MsgFetchFailed, n.Message)
	assert.Equal(t, KindError, n.Kind)
}

func TestOrchestrator_CreateValidationSkipsService(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	draft := Record{Email: "bob@", Phone: "555-123-4567", Position: "Engineer"}

	errs, err := h.orch.Create(context.Background(), draft)

	require.ErrorIs(t, err, ErrValidation)
	want := ValidationErrors{
		FieldName:  "Name is required",
		FieldEmail: "Email is invalid",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("validation mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, h.svc.Calls())
	assert.Equal(t, MsgFixFormErrors, h.notification(t).Message)
	assert.Empty(t, h.nav.Events())
}

func TestOrchestrator_CreateSuccessAppendsAndNavigates(t *testing.T) {
	t.Parallel()

	h := newHarness(t, validRecord("1", "Ann"))
	require.NoError(t, h.orch.Load(context.Background()))
	start := h.clock.Now()

	errs, err := h.orch.Create(context.Background(), validRecord("ignored", "Bea"))

	require.NoError(t, err)
	assert.Nil(t, errs)
	records := h.orch.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "new-1", records[1].ID)
	assert.Equal(t, MsgAddSucceeded, h.notification(t).Message)

	h.clock.Advance(NavigationDelay - time.Millisecond)
	assert.Empty(t, h.nav.Events())

	h.clock.Advance(time.Millisecond)
	events := h.nav.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "/", events[0].Target)
	assert.Equal(t, start.Add(NavigationDelay), events[0].At)
}

func TestOrchestrator_CreateFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.svc.createErr = errUnavailable

	errs, err := h.orch.Create(context.Background(), validRecord("", "Ann"))

	require.ErrorIs(t, err, ErrServiceFailure)
	assert.Nil(t, errs)
	assert.Empty(t, h.orch.Records())
	assert.Equal(t, MsgAddFailed, h.notification(t).Message)

	h.clock.Advance(2 * NavigationDelay)
	assert.Empty(t, h.nav.Events())
}

func TestOrchestrator_UpdateNotifiesThenNavigatesAfterDelay(t *testing.T) {
	t.Parallel()

	h := newHarness(t, validRecord("7", "Ann"))
	require.NoError(t, h.orch.Load(context.Background()))
	start := h.clock.Now()

	changed := validRecord("", "Ann Lee")
	_, err := h.orch.Update(context.Background(), "7", changed)
	require.NoError(t, err)

	n := h.notification(t)
	assert.Equal(t, MsgUpdateSucceeded, n.Message)
	assert.Equal(t, start, n.IssuedAt)
	assert.Equal(t, "Ann Lee", h.orch.Records()[0].Name)
	assert.Equal(t, "7", h.orch.Records()[0].ID)

	h.clock.Advance(999 * time.Millisecond)
	assert.Empty(t, h.nav.Events())

	h.clock.Advance(time.Millisecond)
	events := h.nav.Events()
	require.Len(t, events, 1)
	assert.Equal(t, navEvent{Target: "/", At: start.Add(1000 * time.Millisecond)}, events[0])

	// 通知は遷移後も残る
	_, ok := h.orch.Notification()
	assert.True(t, ok)
	h.clock.Advance(NotificationTTL)
	_, ok = h.orch.Notification()
	assert.False(t, ok)
}

func TestOrchestrator_UpdateFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t, validRecord("7", "Ann"))
	require.NoError(t, h.orch.Load(context.Background()))
	h.svc.updateErr = errUnavailable

	_, err := h.orch.Update(context.Background(), "7", validRecord("", "Changed"))

	require.ErrorIs(t, err, ErrServiceFailure)
	assert.Equal(t, "Ann", h.orch.Records()[0].Name)
	assert.Equal(t, MsgUpdateFailed, h.notification(t).Message)
}

func TestOrchestrator_DeleteFailureKeepsRecordAndDialog(t *testing.T) {
	t.Parallel()

	target := validRecord("42", "Ann")
	h := newHarness(t, target)
	require.NoError(t, h.orch.Load(context.Background()))
	h.svc.deleteErr = errUnavailable

	h.orch.RequestDelete(target)
	err := h.orch.ConfirmDelete(context.Background())

	require.ErrorIs(t, err, ErrServiceFailure)
	assert.Len(t, h.orch.Records(), 1)
	modal := h.orch.Modal()
	assert.Equal(t, ModalConfirmingDelete, modal.Kind)
	assert.Equal(t, "42", modal.Record.ID)
	assert.Equal(t, MsgDeleteFailed, h.notification(t).Message)
}

func TestOrchestrator_DeleteSuccess(t *testing.T) {
	t.Parallel()

	target := validRecord("42", "Ann")
	h := newHarness(t, target, validRecord("43", "Bob"))
	require.NoError(t, h.orch.Load(context.Background()))

	h.orch.RequestDelete(target)
	require.NoError(t, h.orch.ConfirmDelete(context.Background()))

	assert.Equal(t, []string{"Bob"}, names(h.orch.Records()))
	assert.False(t, h.orch.Modal().Active())
	assert.Equal(t, MsgDeleteSucceeded, h.notification(t).Message)
	assert.Equal(t, []string{"list", "delete 42"}, h.svc.Calls())
	assert.Empty(t, h.nav.Events())
}

func TestOrchestrator_ConfirmDeleteRequiresPendingDialog(t *testing.T) {
	t.Parallel()

	h := newHarness(t, validRecord("1", "Ann"))
	err := h.orch.ConfirmDelete(context.Background())
	require.ErrorIs(t, err, ErrNoPendingDelete)

	h.orch.ViewRecord(validRecord("1", "Ann"))
	err = h.orch.ConfirmDelete(context.Background())
	require.ErrorIs(t, err, ErrNoPendingDelete)
	assert.Empty(t, h.svc.Calls())
}

func TestOrchestrator_ModalTransitions(t *testing.T) {
	t.Parallel()

	ann := validRecord("1", "Ann")
	h := newHarness(t, ann)

	h.orch.ViewRecord(ann)
	assert.Equal(t, ModalViewing, h.orch.Modal().Kind)

	h.orch.RequestDelete(ann)
	assert.Equal(t, ModalConfirmingDelete, h.orch.Modal().Kind)

	h.orch.CancelDelete()
	assert.False(t, h.orch.Modal().Active())

	h.orch.ViewRecord(ann)
	h.orch.BeginEdit("1")
	assert.False(t, h.orch.Modal().Active())
	require.Len(t, h.nav.Events(), 1)
	assert.Equal(t, "/edit/1", h.nav.Events()[0].Target)

	h.orch.BeginCreate()
	h.orch.CancelEdit()
	events := h.nav.Events()
	assert.Equal(t, "/add", events[1].Target)
	assert.Equal(t, "/", events[2].Target)
}

func TestOrchestrator_OpenEditorAndSubmit(t *testing.T) {
	t.Parallel()

	h := newHarness(t, validRecord("7", "Ann"))
	require.NoError(t, h.orch.Load(context.Background()))

	e, err := h.orch.OpenEditor(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, EditorReady, e.Status)
	assert.Equal(t, "Ann", e.Draft.Name)

	require.NoError(t, e.SetField(FieldEmail, "bad"))
	err = h.orch.Submit(context.Background(), e)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, EditorReady, e.Status)
	assert.Equal(t, "Email is invalid", e.Errors[FieldEmail])

	require.NoError(t, e.SetField(FieldEmail, "ann@example.com"))
	assert.True(t, e.Errors.Valid())
	require.NoError(t, h.orch.Submit(context.Background(), e))
	assert.Equal(t, EditorSaved, e.Status)
	assert.Equal(t, "ann@example.com", h.orch.Records()[0].Email)

	assert.ErrorIs(t, h.orch.Submit(context.Background(), e), ErrEditorNotReady)
}

func TestOrchestrator_OpenEditorFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	e, err := h.orch.OpenEditor(context.Background(), "missing")

	require.ErrorIs(t, err, ErrServiceFailure)
	require.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, EditorLoadFailed, e.Status)
	assert.False(t, e.Editable())
	assert.Equal(t, MsgFetchOneFailed, h.notification(t).Message)
}

func TestOrchestrator_SubmitCreate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	e := NewCreateEditor()
	for f, v := range map[Field]string{
		FieldName:     "Cy",
		FieldEmail:    "cy@example.com",
		FieldPhone:    "5550001111",
		FieldPosition: "Analyst",
	} {
		require.NoError(t, e.SetField(f, v))
	}

	require.NoError(t, h.orch.Submit(context.Background(), e))
	assert.Equal(t, EditorSaved, e.Status)
	assert.Equal(t, []string{"create"}, h.svc.Calls())
}

func TestOrchestrator_QueryControls(t *testing.T) {
	t.Parallel()

	ann := validRecord("1", "Ann")
	bob := validRecord("2", "Bob")
	bob.Department = "Sales"
	h := newHarness(t, ann, bob)
	require.NoError(t, h.orch.Load(context.Background()))

	require.NoError(t, h.orch.SetDepartmentFilter("sales"))
	assert.Equal(t, []string{"Bob"}, names(h.orch.View()))

	assert.ErrorIs(t, h.orch.SetDepartmentFilter("Legal"), ErrUnknownDepartment)
	assert.Equal(t, "Sales", h.orch.Query().Department)

	require.NoError(t, h.orch.SetDepartmentFilter("all"))
	h.orch.SetSearchTerm("an")
	assert.Equal(t, []string{"Ann"}, names(h.orch.View()))

	require.NoError(t, h.orch.SetViewMode(ViewList))
	assert.Equal(t, []string{"Ann"}, names(h.orch.View()))
	assert.ErrorIs(t, h.orch.SetViewMode("table"), ErrUnknownViewMode)
	assert.ErrorIs(t, h.orch.SetSortKey("salary"), ErrUnknownSortKey)
	require.NoError(t, h.orch.SetSortKey(SortByDepartment))

	snap := h.orch.Snapshot()
	assert.Equal(t, QueryParams{SearchTerm: "an", Department: DepartmentAll, SortKey: SortByDepartment, ViewMode: ViewList}, snap.Query)
	assert.Equal(t, 2, snap.Total)
}

func TestOrchestrator_ExportUsesDerivedView(t *testing.T) {
	t.Parallel()

	zoe := validRecord("1", "Zoe")
	zoe.Department = "Sales"
	h := newHarness(t, zoe, validRecord("2", "Max"), validRecord("3", "Amy"))
	require.NoError(t, h.orch.Load(context.Background()))
	require.NoError(t, h.orch.SetDepartmentFilter("Engineering"))

	var buf bytes.Buffer
	exp := &fakeExporter{}
	require.NoError(t, h.orch.Export(context.Background(), &buf, exp))

	assert.Equal(t, []string{"Amy", "Max"}, names(exp.got))
	assert.Equal(t, "2 rows", buf.String())
	assert.Equal(t, MsgExportSucceeded, h.notification(t).Message)

	err := h.orch.Export(context.Background(), &buf, &fakeExporter{err: errors.New("disk full")})
	require.Error(t, err)
	assert.Equal(t, MsgExportFailed, h.notification(t).Message)
}

func TestOrchestrator_CloseCancelsPendingNavigation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	_, err := h.orch.Create(context.Background(), validRecord("", "Ann"))
	require.NoError(t, err)

	h.orch.Close()
	h.clock.Advance(NotificationTTL)

	assert.Empty(t, h.nav.Events())
	assert.Zero(t, h.clock.Pending())
}

func TestOrchestrator_ResultAfterCloseSchedulesNoTimers(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.orch.Close()

	h.svc.listErr = errUnavailable
	require.Error(t, h.orch.Load(context.Background()))
	_, err := h.orch.Create(context.Background(), validRecord("", "Ann"))
	require.NoError(t, err)

	assert.Equal(t, MsgAddSucceeded, h.notification(t).Message)
	assert.Zero(t, h.clock.Pending())
}

func TestOrchestrator_ConcurrentWritesLastWins(t *testing.T) {
	t.Parallel()

	h := newHarness(t, validRecord("7", "Ann"))
	require.NoError(t, h.orch.Load(context.Background()))

	done := make(chan struct{})
	for _, name := range []string{"First", "Second"} {
		go func(name string) {
			defer func() { done <- struct{}{} }()
			_, _ = h.orch.Update(context.Background(), "7", validRecord("", name))
		}(name)
	}
	<-done
	<-done

	got := h.orch.Records()[0].Name
	assert.Contains(t, []string{"First", "Second"}, got)
	assert.Len(t, h.orch.Records(), 1)
}

func TestOrchestrator_SystemClockDefaults(t *testing.T) {
	svc := newFakeService()
	orch := NewOrchestrator(svc, nil, Options{})
	defer orch.Close()

	_, err := orch.Create(context.Background(), validRecord("", "Ann"))
	require.NoError(t, err)
	assert.Len(t, orch.Records(), 1)
}
