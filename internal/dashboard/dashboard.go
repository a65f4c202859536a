// Package dashboard wires identity, notices and one editor per chart into
// the hooks a presentation layer calls.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/voiq/internal/editor"
	"github.com/Veraticus/voiq/internal/model"
	"github.com/Veraticus/voiq/internal/notify"
	"github.com/Veraticus/voiq/internal/service"
)

// Chart identifies one editable chart.
type Chart int

// Charts on the dashboard.
const (
	ChartCalls Chart = iota
	ChartResolution
)

// Charts lists every chart in display order.
var Charts = []Chart{ChartCalls, ChartResolution}

func (c Chart) String() string {
	switch c {
	case ChartCalls:
		return "calls"
	case ChartResolution:
		return "resolution"
	default:
		return fmt.Sprintf("chart(%d)", int(c))
	}
}

// Title is the heading shown above the chart.
func (c Chart) Title() string {
	switch c {
	case ChartCalls:
		return "Call Volume vs Failures"
	case ChartResolution:
		return "Resolution Time vs SLA"
	default:
		return c.String()
	}
}

// Controller errors.
var (
	ErrUnknownChart     = errors.New("unknown chart")
	ErrIdentityResolved = errors.New("identity already resolved")
)

// ParseChart resolves a chart name as used on the command line.
func ParseChart(name string) (Chart, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "calls", "call", "call-volume":
		return ChartCalls, nil
	case "resolution", "resolution-time", "sla":
		return ChartResolution, nil
	default:
		return 0, fmt.Errorf("%w: %q (want calls or resolution)", ErrUnknownChart, name)
	}
}

// Outcome tells the presentation layer what to show after StartEdit.
type Outcome int

// Outcomes of StartEdit and SubmitIdentity.
const (
	// OutcomeNeedIdentity means the email prompt must be shown.
	OutcomeNeedIdentity Outcome = iota
	// OutcomeAwaitConfirmation means the overwrite prompt must be shown.
	OutcomeAwaitConfirmation
	// OutcomeEditing means the chart is in edit mode.
	OutcomeEditing
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNeedIdentity:
		return "need-identity"
	case OutcomeAwaitConfirmation:
		return "await-confirmation"
	case OutcomeEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Notice texts not tied to a single group.
const (
	MsgLoadFailed = "Error loading saved metrics"
)

// session is the chart-agnostic view of an editor.
type session interface {
	begin(ctx context.Context, id model.Identity) (editor.DecisionKind, error)
	Hydrate(ctx context.Context, id model.Identity) error
	Confirm() error
	Decline() error
	SetField(field string, index int, raw string) error
	CancelEdit()
	Save(ctx context.Context, id model.Identity) error
	Reset()
	Editing() bool
	Busy() bool
}

type chartSession[V any] struct {
	*editor.Editor[V]
}

func (s chartSession[V]) begin(ctx context.Context, id model.Identity) (editor.DecisionKind, error) {
	d, err := s.BeginEdit(ctx, id)
	return d.Kind, err
}

// Controller owns the dashboard's workflow state.
type Controller struct {
	resolver   *editor.Resolver
	notifier   *notify.Notifier
	calls      *editor.Editor[model.CallMetrics]
	resolution *editor.Editor[model.ResolutionMetrics]
	sessions   map[Chart]session
	identity   model.Identity
	mu         sync.Mutex
}

// New creates a Controller. Both editors share store and notifier.
func New(store service.MetricsStore, cache service.Cache, notifier *notify.Notifier, opts editor.Options) *Controller {
	if notifier == nil {
		notifier = notify.New()
	}
	c := &Controller{
		resolver:   editor.NewResolver(cache),
		notifier:   notifier,
		calls:      editor.New[model.CallMetrics](editor.CallGroup{}, store, notifier, opts),
		resolution: editor.New[model.ResolutionMetrics](editor.ResolutionGroup{}, store, notifier, opts),
	}
	c.sessions = map[Chart]session{
		ChartCalls:      chartSession[model.CallMetrics]{c.calls},
		ChartResolution: chartSession[model.ResolutionMetrics]{c.resolution},
	}
	return c
}

// Calls returns the call volume editor.
func (c *Controller) Calls() *editor.Editor[model.CallMetrics] {
	return c.calls
}

// Resolution returns the resolution time editor.
func (c *Controller) Resolution() *editor.Editor[model.ResolutionMetrics] {
	return c.resolution
}

// Notifier returns the shared notifier.
func (c *Controller) Notifier() *notify.Notifier {
	return c.notifier
}

// Identity returns the current identity.
func (c *Controller) Identity() (model.Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity, !c.identity.IsZero()
}

// Load resolves a remembered identity and hydrates both charts. Missing
// identity is not an error; the charts keep their defaults.
func (c *Controller) Load(ctx context.Context) error {
	id, ok, err := c.resolver.Resolve()
	if err != nil {
		return err
	}
	if !ok {
		slog.Debug("No remembered identity")
		return nil
	}
	c.setIdentity(id)
	return c.hydrate(ctx, id)
}

// StartEdit begins editing chart. Without an identity it asks for one.
func (c *Controller) StartEdit(ctx context.Context, chart Chart) (Outcome, error) {
	s, err := c.session(chart)
	if err != nil {
		return 0, err
	}

	id, ok := c.Identity()
	if !ok {
		return OutcomeNeedIdentity, nil
	}

	kind, err := s.begin(ctx, id)
	if err != nil {
		if errors.Is(err, editor.ErrFetch) {
			c.notifier.Error(MsgLoadFailed)
		}
		return 0, err
	}
	if kind == editor.AwaitConfirmation {
		return OutcomeAwaitConfirmation, nil
	}
	return OutcomeEditing, nil
}

// SubmitIdentity remembers raw as the identity and continues the edit of
// chart that asked for it. Rejected input leaves the prompt open. It only
// answers the email gate: once an identity is resolved it returns
// ErrIdentityResolved and nothing changes.
func (c *Controller) SubmitIdentity(ctx context.Context, chart Chart, raw string) (Outcome, error) {
	if _, err := c.session(chart); err != nil {
		return 0, err
	}
	if current, ok := c.Identity(); ok {
		return 0, fmt.Errorf("%w: %s", ErrIdentityResolved, current)
	}

	id, err := c.resolver.Submit(raw)
	if err != nil {
		return OutcomeNeedIdentity, err
	}
	c.setIdentity(id)

	return c.StartEdit(ctx, chart)
}

// UseIdentity switches this controller to raw for the rest of the session
// without remembering it. Both charts drop back to their defaults and are
// hydrated from raw's saved record, so nothing shown for the previous
// identity can reach the new one.
func (c *Controller) UseIdentity(ctx context.Context, raw string) (model.Identity, error) {
	id, err := editor.ParseIdentity(raw)
	if err != nil {
		return "", err
	}
	if c.Busy() {
		return "", editor.ErrBusy
	}

	for _, s := range c.sessions {
		s.Reset()
	}
	c.setIdentity(id)
	return id, c.hydrate(ctx, id)
}

// Confirm accepts the previously saved values for chart.
func (c *Controller) Confirm(chart Chart) error {
	s, err := c.session(chart)
	if err != nil {
		return err
	}
	return s.Confirm()
}

// Decline keeps the displayed values for chart.
func (c *Controller) Decline(chart Chart) error {
	s, err := c.session(chart)
	if err != nil {
		return err
	}
	return s.Decline()
}

// SetField edits one value of chart's working copy.
func (c *Controller) SetField(chart Chart, field string, index int, raw string) error {
	s, err := c.session(chart)
	if err != nil {
		return err
	}
	return s.SetField(field, index, raw)
}

// CancelEdit leaves edit mode on chart without saving.
func (c *Controller) CancelEdit(chart Chart) error {
	s, err := c.session(chart)
	if err != nil {
		return err
	}
	s.CancelEdit()
	return nil
}

// Save commits chart's working copy for the current identity.
func (c *Controller) Save(ctx context.Context, chart Chart) error {
	s, err := c.session(chart)
	if err != nil {
		return err
	}
	id, ok := c.Identity()
	if !ok {
		return editor.ErrEmptyIdentity
	}
	return s.Save(ctx, id)
}

// Editing reports whether chart is in edit mode.
func (c *Controller) Editing(chart Chart) bool {
	s, err := c.session(chart)
	return err == nil && s.Editing()
}

// Busy reports whether any chart has a remote call in flight.
func (c *Controller) Busy() bool {
	for _, s := range c.sessions {
		if s.Busy() {
			return true
		}
	}
	return false
}

// Logout forgets the identity and returns both charts to their defaults.
func (c *Controller) Logout() error {
	if err := c.resolver.Forget(); err != nil {
		return err
	}
	c.setIdentity("")
	for _, s := range c.sessions {
		s.Reset()
	}
	return nil
}

// Summary computes the KPI strip from the displayed values.
func (c *Controller) Summary() model.Summary {
	return model.Summarize(c.calls.Displayed(), c.resolution.Displayed())
}

func (c *Controller) hydrate(ctx context.Context, id model.Identity) error {
	var errs []error
	for _, chart := range Charts {
		if err := c.sessions[chart].Hydrate(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		c.notifier.Error(MsgLoadFailed)
		return errors.Join(errs...)
	}
	return nil
}

func (c *Controller) session(chart Chart) (session, error) {
	s, ok := c.sessions[chart]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChart, int(chart))
	}
	return s, nil
}

func (c *Controller) setIdentity(id model.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = id
}
