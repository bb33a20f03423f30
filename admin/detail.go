package admin

import (
	"context"
	"fmt"
	"sync"

	"okuyorum-admin/models"
	"okuyorum-admin/session"
)

// State is the load state of a detail screen.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	return [...]string{"idle", "loading", "ready", "error"}[s]
}

// Action names the independent update actions of a detail screen.
type Action string

const (
	ActionStatus   Action = "status"
	ActionTracking Action = "tracking"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionCreate   Action = "create"
)

// ActionState is the per-action sub-state while the record is ready.
type ActionState int

const (
	ActionEditing ActionState = iota
	ActionSubmitting
	ActionFailed
)

// Journal receives one entry per finished mutation. *session.Store
// satisfies it.
type Journal interface {
	Record(session.Entry) error
}

// Form is the editable copy of the record. It is reseeded from the server
// after every successful load and left alone when a submit fails.
type Form struct {
	Status   string
	Note     string
	Tracking models.TrackingInfo
	Handler  string
}

// TrackingHooks add the two-call tracking update to a detail screen.
type TrackingHooks[T any] struct {
	Current        func(T) (models.TrackingInfo, string)
	UpdateTracking func(ctx context.Context, id int64, info models.TrackingInfo) error
	UpdateHandler  func(ctx context.Context, id int64, name string) error
}

// DetailConfig binds a Detail to one resource type.
type DetailConfig[T any] struct {
	Resource     string // journal key, e.g. "donation"
	InvalidID    string // message for a malformed id
	ListRoute    string // where a successful delete goes
	Get          func(ctx context.Context, id int64) (T, error)
	Status       func(T) string
	Note         func(T) string
	ValidStatus  func(string) bool
	UpdateStatus func(ctx context.Context, id int64, status, note string) error
	Validate     func(T) error // local checks before Update
	Update       func(ctx context.Context, id int64, item T) error
	Delete       func(ctx context.Context, id int64) error
	Tracking     *TrackingHooks[T]
}

type loadMode int

const (
	loadInitial loadMode = iota
	loadResync
	loadKeepForm
)

// Detail is one record on screen plus its update actions.
//
//	idle → loading → ready | error
//	ready: each action editing → submitting → editing | failed
type Detail[T any] struct {
	mu      sync.Mutex
	cfg     DetailConfig[T]
	fb      *Feedback
	journal Journal

	state   State
	err     error
	id      int64
	item    T
	form    Form
	actions map[Action]ActionState
	stale   bool
	gen     uint64
}

func NewDetail[T any](cfg DetailConfig[T], fb *Feedback, journal Journal) *Detail[T] {
	return &Detail[T]{cfg: cfg, fb: fb, journal: journal, actions: make(map[Action]ActionState)}
}

func (d *Detail[T]) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Err is the error that put the screen in StateError.
func (d *Detail[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Detail[T]) ID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// Item returns the last loaded record.
func (d *Detail[T]) Item() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.item
}

func (d *Detail[T]) Form() Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

// Stale is true when a post-mutation re-fetch failed and Item may lag the
// server.
func (d *Detail[T]) Stale() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stale
}

func (d *Detail[T]) ActionState(a Action) ActionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.actions[a]
}

// Enabled reports whether the control for a may be used right now.
func (d *Detail[T]) Enabled(a Action) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateReady || d.actions[a] == ActionSubmitting {
		return false
	}
	switch a {
	case ActionStatus:
		return d.cfg.UpdateStatus != nil
	case ActionTracking:
		return d.cfg.Tracking != nil
	case ActionEdit:
		return d.cfg.Update != nil
	case ActionDelete:
		return d.cfg.Delete != nil
	}
	return false
}

// Load validates rawID and fetches the record. A malformed id fails without
// any network call.
func (d *Detail[T]) Load(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID, d.cfg.InvalidID)
	if err != nil {
		d.mu.Lock()
		d.state, d.err = StateError, err
		d.mu.Unlock()
		d.fb.Invalid(err.Error())
		return err
	}
	if err := d.fetch(ctx, id, loadInitial); err != nil {
		if ctx.Err() == nil && err != ErrStale {
			d.fb.Failure("Kayıt yüklenemedi", err)
		}
		return err
	}
	return nil
}

func (d *Detail[T]) fetch(ctx context.Context, id int64, mode loadMode) error {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	if mode == loadInitial {
		d.id, d.state, d.err = id, StateLoading, nil
	}
	d.mu.Unlock()

	item, err := d.cfg.Get(ctx, id)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return ErrStale
	}
	if err != nil {
		if mode == loadInitial {
			d.state, d.err = StateError, err
		} else {
			d.stale = true
		}
		return err
	}
	d.item, d.state, d.err, d.stale = item, StateReady, nil, false
	if mode != loadKeepForm {
		d.seedForm()
	}
	return nil
}

func (d *Detail[T]) seedForm() {
	d.form = Form{}
	if d.cfg.Status != nil {
		d.form.Status = d.cfg.Status(d.item)
	}
	if d.cfg.Note != nil {
		d.form.Note = d.cfg.Note(d.item)
	}
	if d.cfg.Tracking != nil && d.cfg.Tracking.Current != nil {
		d.form.Tracking, d.form.Handler = d.cfg.Tracking.Current(d.item)
	}
}

// begin moves action a to submitting if the screen allows it.
func (d *Detail[T]) begin(a Action) (int64, error) {
	if d.state != StateReady {
		return 0, ErrNotReady
	}
	if d.actions[a] == ActionSubmitting {
		return 0, ErrBusy
	}
	d.actions[a] = ActionSubmitting
	return d.id, nil
}

func (d *Detail[T]) finish(a Action, s ActionState) {
	d.mu.Lock()
	d.actions[a] = s
	d.mu.Unlock()
}

// resync re-fetches after a successful mutation. The mutation already
// succeeded, so a failed re-fetch only marks the screen stale.
func (d *Detail[T]) resync(ctx context.Context, id int64, mode loadMode) {
	if err := d.fetch(ctx, id, mode); err != nil && ctx.Err() == nil {
		d.fb.logger.Warn().Err(err).Str("resource", d.cfg.Resource).Int64("id", id).Msg("re-fetch after update failed")
	}
}

func (d *Detail[T]) record(id int64, a Action, outcome, detail string) {
	writeJournal(d.journal, d.fb, session.Entry{Resource: d.cfg.Resource, ResourceID: id, Action: string(a), Outcome: outcome, Detail: detail})
}

// writeJournal records e. A journal failure is logged and never fails the
// mutation itself.
func writeJournal(j Journal, fb *Feedback, e session.Entry) {
	if j == nil {
		return
	}
	if err := j.Record(e); err != nil {
		fb.logger.Warn().Err(err).Msg("journal write failed")
	}
}

// SubmitStatus sends a status change. The control stays disabled until the
// call and the re-fetch that follows it have finished; a second submit in
// that window returns ErrBusy without calling the backend. Any valid status
// may follow any other.
func (d *Detail[T]) SubmitStatus(ctx context.Context, status, note string) error {
	if d.cfg.UpdateStatus == nil {
		return ErrUnsupported
	}
	d.mu.Lock()
	if d.state != StateReady {
		d.mu.Unlock()
		return ErrNotReady
	}
	if d.actions[ActionStatus] == ActionSubmitting {
		d.mu.Unlock()
		return ErrBusy
	}
	d.form.Status, d.form.Note = status, note
	if d.cfg.ValidStatus != nil && !d.cfg.ValidStatus(status) {
		d.mu.Unlock()
		err := &ValidationError{Field: "status", Message: fmt.Sprintf("Geçersiz durum: %q", status)}
		d.fb.Invalid(err.Message)
		return err
	}
	id, _ := d.begin(ActionStatus)
	d.mu.Unlock()

	err := d.cfg.UpdateStatus(ctx, id, status, note)
	if ctx.Err() != nil {
		d.finish(ActionStatus, ActionEditing)
		return ctx.Err()
	}
	if err != nil {
		d.finish(ActionStatus, ActionFailed)
		d.record(id, ActionStatus, session.OutcomeFailed, err.Error())
		d.fb.Failure("Durum güncellenemedi", err)
		return err
	}

	d.resync(ctx, id, loadResync)
	d.finish(ActionStatus, ActionEditing)
	d.record(id, ActionStatus, session.OutcomeSuccess, status)
	d.fb.Success("Durum güncellendi", fmt.Sprintf("Yeni durum: %s", status))
	return nil
}

// SubmitEdit applies edit to a copy of the loaded record, checks it with
// Validate and sends it with Update. Like SubmitStatus the action stays busy
// until the re-fetch has finished. A failed submit leaves Item untouched.
func (d *Detail[T]) SubmitEdit(ctx context.Context, edit func(*T)) error {
	if d.cfg.Update == nil {
		return ErrUnsupported
	}
	d.mu.Lock()
	if d.state != StateReady {
		d.mu.Unlock()
		return ErrNotReady
	}
	if d.actions[ActionEdit] == ActionSubmitting {
		d.mu.Unlock()
		return ErrBusy
	}
	item := d.item
	edit(&item)
	if d.cfg.Validate != nil {
		if err := d.cfg.Validate(item); err != nil {
			d.mu.Unlock()
			d.fb.Invalid(err.Error())
			return err
		}
	}
	id, _ := d.begin(ActionEdit)
	d.mu.Unlock()

	err := d.cfg.Update(ctx, id, item)
	if ctx.Err() != nil {
		d.finish(ActionEdit, ActionEditing)
		return ctx.Err()
	}
	if err != nil {
		d.finish(ActionEdit, ActionFailed)
		d.record(id, ActionEdit, session.OutcomeFailed, err.Error())
		d.fb.Failure("Kayıt güncellenemedi", err)
		return err
	}

	d.resync(ctx, id, loadResync)
	d.finish(ActionEdit, ActionEditing)
	d.record(id, ActionEdit, session.OutcomeSuccess, "")
	d.fb.Success("Kayıt güncellendi", fmt.Sprintf("#%d kaydedildi.", id))
	return nil
}

// Delete asks for confirmation and then deletes the record. Only a
// successful delete navigates back to the list; a failed one re-enables the
// control and stays put.
func (d *Detail[T]) Delete(ctx context.Context, confirm Confirmer) error {
	if d.cfg.Delete == nil {
		return ErrUnsupported
	}
	d.mu.Lock()
	if d.state != StateReady {
		d.mu.Unlock()
		return ErrNotReady
	}
	if d.actions[ActionDelete] == ActionSubmitting {
		d.mu.Unlock()
		return ErrBusy
	}
	id := d.id
	d.mu.Unlock()

	if confirm == nil || !confirm.Confirm(ctx, fmt.Sprintf("#%d silinecek. Bu işlem geri alınamaz. Emin misiniz?", id)) {
		return ErrCancelled
	}

	d.mu.Lock()
	id, err := d.begin(ActionDelete)
	d.mu.Unlock()
	if err != nil {
		return err
	}

	err = d.cfg.Delete(ctx, id)
	if ctx.Err() != nil {
		d.finish(ActionDelete, ActionEditing)
		return ctx.Err()
	}
	if err != nil {
		d.finish(ActionDelete, ActionFailed)
		d.record(id, ActionDelete, session.OutcomeFailed, err.Error())
		d.fb.Failure("Silme işlemi başarısız", err)
		return err
	}

	d.mu.Lock()
	d.actions[ActionDelete] = ActionEditing
	d.state = StateIdle
	d.mu.Unlock()
	d.record(id, ActionDelete, session.OutcomeSuccess, "")
	d.fb.Success("Silindi", fmt.Sprintf("#%d silindi.", id))
	d.fb.Navigate(d.cfg.ListRoute)
	return nil
}
