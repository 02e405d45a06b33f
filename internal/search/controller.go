package search

import (
	"context"
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a Controller.
type Options struct {
	Params     ParamStore
	Capability Capability
	Assembler  *Assembler
	View       View
	// RefreshDirtyOnly re-renders only the regions whose data changed.
	RefreshDirtyOnly bool
}

// Controller owns the query and decides when and what to publish. All
// methods must be called from the Bubble Tea update loop; only the returned
// commands run elsewhere.
type Controller struct {
	params           ParamStore
	capability       Capability
	assembler        *Assembler
	view             View
	refreshDirtyOnly bool

	query Query
	ctx   context.Context

	generation uint64
	cancel     context.CancelFunc
	last       Result

	binder       EventBinder
	clearVisible bool
}

// New derives the initial query from the navigation parameters.
func New(opts Options) *Controller {
	return &Controller{
		params:           opts.Params,
		capability:       opts.Capability,
		assembler:        opts.Assembler,
		view:             opts.View,
		refreshDirtyOnly: opts.RefreshDirtyOnly,
		query:            DeriveQuery(opts.Params, opts.Capability),
		ctx:              context.Background(),
	}
}

// Query returns the current query.
func (c *Controller) Query() Query { return c.query }

// Generation returns the token of the most recently started cycle.
func (c *Controller) Generation() uint64 { return c.generation }

// Last returns the most recently published result.
func (c *Controller) Last() Result { return c.last }

// ClearVisible reports whether the clear affordance is shown.
func (c *Controller) ClearVisible() bool { return c.clearVisible }

// CreateView populates the view before it is shown. The first assembly runs
// synchronously and is published without region refreshes. A failed fetch
// still publishes empty lists with the error set.
func (c *Controller) CreateView(ctx context.Context) error {
	if ctx != nil {
		c.ctx = ctx
	}
	c.generation++
	q := c.effectiveQuery()

	res, err := c.assembler.Assemble(c.ctx, q)
	if err != nil {
		log.Printf("initial assembly: %v", err)
		res = Result{SearchText: q.SearchText, SortByDistance: q.SortByDistance, Err: err}
	}
	res.Generation = c.generation

	c.view.SetSearchText(q.SearchText)
	Publish(c.view, res)
	c.last = res
	return err
}

// BindListeners wires user events to transitions. The sort toggle is hidden
// when distance sorting is unavailable.
func (c *Controller) BindListeners(b EventBinder) {
	c.binder = b

	c.view.SetSortToggleVisible(enabled(c.capability))
	c.view.SetSortIndicator(c.effectiveQuery().SortByDistance)
	c.view.SetClearVisible(false)

	edit := func(t Trigger) tea.Cmd { return c.TextEdited(t.Text) }
	b.Bind(ElementSearchInput, EventKeyUp, edit)
	b.Bind(ElementSearchIcon, EventActivate, edit)
	b.Bind(ElementSortToggle, EventActivate, func(Trigger) tea.Cmd { return c.ToggleSort() })
	b.Bind(ElementClear, EventActivate, func(Trigger) tea.Cmd { return c.Clear() })
	b.Bind(ElementSearchInput, EventFocus, func(Trigger) tea.Cmd {
		c.InputFocused()
		return nil
	})
	b.Bind(ElementBody, EventActivate, func(t Trigger) tea.Cmd {
		c.BodyActivated(t.Target)
		return nil
	})
}

// DestroyView cancels the in-flight cycle, invalidates any pending result and
// releases the bindings.
func (c *Controller) DestroyView() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	if c.binder != nil {
		c.binder.UnbindAll()
		c.binder = nil
	}
}

// TextEdited stores text as the search and starts a cycle.
func (c *Controller) TextEdited(text string) tea.Cmd {
	c.query.SearchText = text
	c.params.SetParameter(ParamSearch, text)
	return c.startCycle()
}

// ToggleSort flips distance sorting. It does nothing while the capability is
// disabled.
func (c *Controller) ToggleSort() tea.Cmd {
	if !enabled(c.capability) {
		return nil
	}
	c.query.SortByDistance = !c.query.SortByDistance
	c.view.SetSortIndicator(c.query.SortByDistance)
	c.params.SetParameter(ParamSortByDistance, c.query.SortByDistance)
	return c.startCycle()
}

// Clear empties the search field and lists everything again.
func (c *Controller) Clear() tea.Cmd {
	c.view.SetSearchText("")
	c.query.SearchText = ""
	c.params.SetParameter(ParamSearch, "")
	return c.startCycle()
}

// InputFocused shows the clear affordance.
func (c *Controller) InputFocused() {
	c.setClearVisible(true)
}

// BodyActivated hides the clear affordance unless the activation hit the
// search input or the clear affordance itself.
func (c *Controller) BodyActivated(target Element) {
	if target == ElementSearchInput || target == ElementClear {
		return
	}
	c.setClearVisible(false)
}

func (c *Controller) setClearVisible(visible bool) {
	if c.clearVisible == visible {
		return
	}
	c.clearVisible = visible
	c.view.SetClearVisible(visible)
}

// Complete publishes msg if it belongs to the latest cycle and reports
// whether it did. A failed cycle keeps the previous lists and sets Err.
func (c *Controller) Complete(msg CycleDoneMsg) bool {
	if msg.Generation != c.generation {
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	res := msg.Result
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return false
		}
		log.Printf("assembly %d (%q): %v", msg.Generation, res.SearchText, msg.Err)
		res.Stations = c.last.Stations
		res.Broadcasts = c.last.Broadcasts
		res.Stale = c.last.Stale
		res.Err = msg.Err
	}
	res.Generation = msg.Generation

	regions := ListRegions
	if c.refreshDirtyOnly {
		regions = DirtyRegions(c.last, res)
	}
	Publish(c.view, res)
	RefreshRegions(c.view, regions...)
	c.last = res
	return true
}

// Refresh re-runs the cycle for the current query.
func (c *Controller) Refresh() tea.Cmd {
	return c.startCycle()
}

func (c *Controller) startCycle() tea.Cmd {
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation
	q := c.effectiveQuery()
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancel = cancel
	asm := c.assembler

	return func() tea.Msg {
		res, err := asm.Assemble(ctx, q)
		res.Generation = gen
		return CycleDoneMsg{Generation: gen, Result: res, Err: err}
	}
}

// effectiveQuery re-applies the capability gate, which may have been turned
// off since the query was derived.
func (c *Controller) effectiveQuery() Query {
	q := c.query
	q.SortByDistance = q.SortByDistance && enabled(c.capability)
	return q
}
