// Package editor implements the per-user metrics editing workflow: load any
// previous save, confirm before replacing what is on screen, edit a working
// copy, then merge it into the stored record.
//
// One generic Editor serves every chart; a Group decides which fields of the
// shared record a chart owns.
package editor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/notify"
	"github.com/Veraticus/voiq/internal/service"
)

// DefaultTimeout bounds each remote call.
const DefaultTimeout = 10 * time.Second

// Notifier receives the outcome of a save.
type Notifier interface {
	Notify(message string, kind notify.Kind) notify.Notice
}

// Options tunes an Editor.
type Options struct {
	// Clock stamps saved records.
	Clock func() time.Time
	// Timeout bounds each remote call. Zero or negative disables it.
	Timeout time.Duration
	// RetainOnWriteFailure keeps edit mode and the working copy when a save
	// fails. By default they are discarded.
	RetainOnWriteFailure bool
}

// DefaultOptions returns the standard settings.
func DefaultOptions() Options {
	return Options{
		Timeout: DefaultTimeout,
		Clock:   time.Now,
	}
}

// DecisionKind tells the caller what BeginEdit decided.
type DecisionKind int

// Decisions returned by BeginEdit.
const (
	// EnterEditDirectly means no previous save exists and edit mode is on.
	EnterEditDirectly DecisionKind = iota
	// AwaitConfirmation means saved values were found and the caller must
	// Confirm or Decline before anything changes.
	AwaitConfirmation
)

func (k DecisionKind) String() string {
	switch k {
	case EnterEditDirectly:
		return "edit"
	case AwaitConfirmation:
		return "confirm"
	default:
		return "unknown"
	}
}

// Decision is the result of BeginEdit. Values is the working copy for
// EnterEditDirectly and the fetched values for AwaitConfirmation.
type Decision[V any] struct {
	Values V
	Kind   DecisionKind
}

// Editor is the synchronized editing state for one field group.
type Editor[V any] struct {
	store    service.MetricsStore
	group    Group[V]
	notifier Notifier
	opts     Options

	displayed V
	working   V
	pending   V

	mu         sync.Mutex
	editing    bool
	hasPending bool
	busy       bool
}

// New creates an Editor showing the group's defaults. notifier may be nil.
func New[V any](group Group[V], store service.MetricsStore, notifier Notifier, opts Options) *Editor[V] {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Editor[V]{
		store:     store,
		group:     group,
		notifier:  notifier,
		opts:      opts,
		displayed: group.Default(),
	}
}

// Group returns the field group this editor owns.
func (e *Editor[V]) Group() Group[V] {
	return e.group
}

// Hydrate replaces the displayed values with the stored ones, if any.
func (e *Editor[V]) Hydrate(ctx context.Context, id model.Identity) error {
	if id.IsZero() {
		return ErrEmptyIdentity
	}
	if err := e.acquire(false); err != nil {
		return err
	}

	record, err := e.fetch(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = false

	if err != nil {
		common.LogError(err, "Failed to hydrate metrics", common.Fields{"group": e.group.Name(), "identity": id})
		return &FetchError{Identity: id, Group: e.group.Name(), Err: err}
	}
	if e.group.Present(record) {
		e.displayed = e.group.Extract(record)
		common.LogDebug("Hydrated saved values", common.Fields{"group": e.group.Name(), "identity": id})
	}
	return nil
}

// BeginEdit performs exactly one read. When a previous save exists it is
// staged for confirmation and edit mode stays off; otherwise the working
// copy is seeded from the displayed values and edit mode starts.
func (e *Editor[V]) BeginEdit(ctx context.Context, id model.Identity) (Decision[V], error) {
	if id.IsZero() {
		return Decision[V]{}, ErrEmptyIdentity
	}
	if err := e.acquire(true); err != nil {
		return Decision[V]{}, err
	}

	record, err := e.fetch(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = false

	if err != nil {
		common.LogError(err, "Failed to load saved metrics", common.Fields{"group": e.group.Name(), "identity": id})
		return Decision[V]{}, &FetchError{Identity: id, Group: e.group.Name(), Err: err}
	}

	if e.group.Present(record) {
		e.pending = e.group.Extract(record)
		e.hasPending = true
		slog.Debug("Saved values found, awaiting confirmation", "group", e.group.Name(), "identity", id)
		return Decision[V]{Kind: AwaitConfirmation, Values: e.group.Clone(e.pending)}, nil
	}

	e.working = e.group.Clone(e.displayed)
	e.editing = true
	slog.Debug("No saved values, editing displayed values", "group", e.group.Name(), "identity", id)
	return Decision[V]{Kind: EnterEditDirectly, Values: e.group.Clone(e.working)}, nil
}

// Confirm loads the staged values into the working copy and starts editing.
func (e *Editor[V]) Confirm() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasPending {
		return ErrNoPendingOverwrite
	}
	e.working = e.pending
	e.clearPending()
	e.editing = true
	return nil
}

// Decline drops the staged values. Edit mode stays off and the displayed
// values are untouched.
func (e *Editor[V]) Decline() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasPending {
		return ErrNoPendingOverwrite
	}
	e.clearPending()
	return nil
}

// SetField replaces one value in the working copy. Input that does not parse
// is stored as zero and is not an error.
func (e *Editor[V]) SetField(field string, index int, raw string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.editing {
		return ErrNotEditing
	}
	updated, err := e.group.Set(e.working, field, index, raw)
	if err != nil {
		return err
	}
	e.working = updated
	return nil
}

// CancelEdit discards the working copy and leaves edit mode.
func (e *Editor[V]) CancelEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.editing = false
	e.clearWorking()
}

// Save merges the working copy into the stored record for id. The record is
// read first so fields owned by other groups survive the upsert; fields that
// were never saved get their defaults. On success the working copy becomes
// the displayed values.
func (e *Editor[V]) Save(ctx context.Context, id model.Identity) error {
	if id.IsZero() {
		return ErrEmptyIdentity
	}

	e.mu.Lock()
	switch {
	case !e.editing:
		e.mu.Unlock()
		return ErrNotEditing
	case e.busy:
		e.mu.Unlock()
		return ErrBusy
	}
	e.busy = true
	values := e.group.Clone(e.working)
	e.mu.Unlock()

	err := e.write(ctx, id, values)

	e.mu.Lock()
	e.busy = false
	e.editing = e.opts.RetainOnWriteFailure && err != nil
	if err == nil {
		e.displayed = values
	}
	if !e.editing {
		e.clearWorking()
	}
	e.mu.Unlock()

	if err != nil {
		common.LogError(err, "Failed to save metrics", common.Fields{"group": e.group.Name(), "identity": id})
		e.notify(e.group.SaveError(), notify.KindError)
		return &WriteError{Identity: id, Group: e.group.Name(), Err: err}
	}

	common.LogInfo("Metrics saved", common.Fields{"group": e.group.Name(), "identity": id})
	e.notify(e.group.SaveSuccess(), notify.KindSuccess)
	return nil
}

// Reset returns to the defaults and drops any edit in progress.
func (e *Editor[V]) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.displayed = e.group.Default()
	e.editing = false
	e.clearWorking()
	e.clearPending()
}

// Displayed returns a copy of the values currently shown.
func (e *Editor[V]) Displayed() V {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.group.Clone(e.displayed)
}

// Working returns a copy of the working copy while editing.
func (e *Editor[V]) Working() (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		var zero V
		return zero, false
	}
	return e.group.Clone(e.working), true
}

// Pending returns the values awaiting confirmation.
func (e *Editor[V]) Pending() (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hasPending {
		var zero V
		return zero, false
	}
	return e.group.Clone(e.pending), true
}

// Editing reports whether edit mode is on.
func (e *Editor[V]) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// Busy reports whether a remote call is in flight.
func (e *Editor[V]) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// acquire marks the editor busy. When starting an edit it also rejects
// calls while editing or while a confirmation is pending.
func (e *Editor[V]) acquire(startingEdit bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.busy:
		return ErrBusy
	case startingEdit && e.editing:
		return ErrAlreadyEditing
	case startingEdit && e.hasPending:
		return ErrConfirmationPending
	}
	e.busy = true
	return nil
}

// fetch reads the record. A missing record is (nil, nil).
func (e *Editor[V]) fetch(ctx context.Context, id model.Identity) (*model.MetricRecord, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	record, err := e.store.GetMetrics(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return record, err
}

func (e *Editor[V]) write(ctx context.Context, id model.Identity, values V) error {
	existing, err := e.fetch(ctx, id)
	if err != nil {
		return err
	}

	record := existing.Clone()
	if record == nil {
		record = &model.MetricRecord{}
	}
	e.group.Apply(record, values)
	record.FillDefaults()
	record.Identity = id
	record.UpdatedAt = e.opts.Clock()

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.store.UpsertMetrics(ctx, record)
}

func (e *Editor[V]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.opts.Timeout)
}

func (e *Editor[V]) notify(message string, kind notify.Kind) {
	if e.notifier != nil {
		e.notifier.Notify(message, kind)
	}
}

func (e *Editor[V]) clearWorking() {
	var zero V
	e.working = zero
}

func (e *Editor[V]) clearPending() {
	var zero V
	e.pending = zero
	e.hasPending = false
}
