package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultPollInterval is how often the wait loop checks on the runtime.
const DefaultPollInterval = 100 * time.Millisecond

// Elements is the element tree accumulated for the next window.
type Elements struct {
	Visible   []fyne.CanvasObject
	Invisible []fyne.CanvasObject
	AppBar    *AppBar
}

func (e Elements) clone() Elements {
	return Elements{
		Visible:   append([]fyne.CanvasObject(nil), e.Visible...),
		Invisible: append([]fyne.CanvasObject(nil), e.Invisible...),
		AppBar:    e.AppBar,
	}
}

// Option configures a Client.
type Option func(*Client)

// WithPollInterval sets the wait loop tick.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// Client builds a page tree, shows it in a window and collects the values
// of named elements. One Client drives one window session at a time.
type Client struct {
	logger       *zap.Logger
	runtime      Runtime
	pollInterval time.Duration

	mu        sync.Mutex
	state     State
	sessionID string
	page      Page
	results   map[string]any
	elements  Elements
	toDisable []fyne.Disableable
	stack     []Layout

	// pending is the one-slot mailbox drained by the wait loop.
	pending chan func()
}

// NewClient creates a client that opens its windows on runtime.
func NewClient(logger *zap.Logger, runtime Runtime, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		logger:       logger,
		runtime:      runtime,
		pollInterval: DefaultPollInterval,
		results:      make(map[string]any),
		pending:      make(chan func(), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddElement adds a visible element to the currently open layout, or to the
// top level when no layout is open. A named element records its value in
// the results on every change, after calling extra if given.
// An element that cannot be placed is not bound.
func (c *Client) AddElement(element fyne.CanvasObject, name string, extra ChangeHandler) error {
	var install func(ChangeHandler)
	if name != "" {
		hook, err := changeHook(element, name)
		if err != nil {
			return err
		}
		install = hook
	}

	c.mu.Lock()
	err := c.place(element)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	if install != nil {
		install(c.makeChangeListener(name, extra))
	}
	return nil
}

// AddInvisibleElement adds an overlay element, which is never part of a layout.
func (c *Client) AddInvisibleElement(element fyne.CanvasObject, name string) error {
	if name != "" {
		if err := c.Bind(element, name, nil); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements.Invisible = append(c.elements.Invisible, element)
	return nil
}

// Bind records the value of input under name on every change without placing
// it. Use it for inputs wrapped in a larger element, which is then added unnamed.
func (c *Client) Bind(input fyne.CanvasObject, name string, extra ChangeHandler) error {
	return bindChange(input, name, c.makeChangeListener(name, extra))
}

// place must be called with c.mu held.
func (c *Client) place(element fyne.CanvasObject) error {
	if len(c.stack) == 0 {
		c.elements.Visible = append(c.elements.Visible, withMargin(element))
		return nil
	}
	return c.stack[len(c.stack)-1].accept(element)
}

// OpenLayout adds layout to the currently open layout and makes it the
// target of following AddElement calls. App bars are opened with SetAppBar.
func (c *Client) OpenLayout(layout Layout) error {
	if layout.Kind() == KindAppBar {
		return fmt.Errorf("%w: Cannot open %s as a layout, use SetAppBar", ErrLayout, KindAppBar)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.place(layout.Object()); err != nil {
		return err
	}
	c.stack = append(c.stack, layout)
	return nil
}

// CloseLayout closes the most recently opened layout, which must be of kind.
func (c *Client) CloseLayout(kind LayoutKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.stack) == 0 {
		return fmt.Errorf("%w: Cannot close %s, no layout is open", ErrLayout, kind)
	}
	top := c.stack[len(c.stack)-1]
	if top.Kind() != kind {
		return fmt.Errorf("%w: Cannot close %s, last opened layout is %s", ErrLayout, kind, top.Kind())
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

// SetAppBar sets the window's app bar and opens it as the current layout.
func (c *Client) SetAppBar(bar *AppBar) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.elements.AppBar != nil {
		return fmt.Errorf("%w: Only one navigation may be defined at a time", ErrLayout)
	}
	c.elements.AppBar = bar
	c.stack = append(c.stack, bar)
	return nil
}

// AddToDisableList marks element to be disabled while an operation runs.
func (c *Client) AddToDisableList(element fyne.Disableable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toDisable = append(c.toDisable, element)
}

// Elements returns a copy of the accumulated element tree.
func (c *Client) Elements() Elements {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elements.clone()
}

// Results returns a copy of the values recorded for named elements.
// Results are kept across window sessions.
func (c *Client) Results() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]any, len(c.results))
	for k, v := range c.results {
		out[k] = v
	}
	return out
}

// SetResult records value under name as if a named element had changed.
func (c *Client) SetResult(name string, value any) {
	c.record(name, value)
}

func (c *Client) record(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[name] = value
}

// State returns the lifecycle state of the current window session.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Display opens a window with the accumulated elements and blocks until the
// window is closed. If it is still open after opts.Timeout, the window is
// closed and ErrTimeout returned. Cancelling ctx closes the window the same
// way and returns the context error. The element tree and disable-list are
// cleared when Display returns, whatever the outcome.
func (c *Client) Display(ctx context.Context, opts WindowOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.state != StateClosed {
		c.mu.Unlock()
		return ErrSessionActive
	}
	c.state = StateOpening
	c.sessionID = uuid.NewString()
	logger := c.logger.With(zap.String("session", c.sessionID))
	c.mu.Unlock()

	defer c.teardown(logger)

	logger.Info("Opening window",
		zap.String("title", opts.Title),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Duration("timeout", opts.Timeout))

	started := time.Now()
	if err := c.runtime.Start(c.initPage(opts, logger)); err != nil {
		return fmt.Errorf("start runtime: %w", err)
	}

	return c.wait(ctx, started, opts.Timeout, logger)
}

// initPage returns the one-shot callback run by the runtime on its own
// context once the window exists.
func (c *Client) initPage(opts WindowOptions, logger *zap.Logger) func(Page) {
	return func(page Page) {
		page.SetTitle(opts.Title)
		page.Resize(opts.Width, opts.Height)
		page.SetAlwaysOnTop(opts.OnTop)

		if loc := opts.Location; loc != nil {
			if loc.Anchor == AnchorCenter {
				page.Center()
			} else if x, y, err := ResolvePosition(*loc); err != nil {
				logger.Warn("Ignoring window location", zap.Error(err))
			} else {
				page.Move(x, y)
			}
		}
		page.SetAutoScroll(true)
		page.OnDisconnect(c.runtime.Close)

		c.mu.Lock()
		if state := c.state; state != StateOpening {
			c.mu.Unlock()
			logger.Debug("Window opened after session ended", zap.Stringer("state", state))
			return
		}
		c.page = page
		c.state = StateOpen
		elements := c.elements.clone()
		c.mu.Unlock()

		flush(page, elements)
		logger.Debug("Window open",
			zap.Int("visible", len(elements.Visible)),
			zap.Int("invisible", len(elements.Invisible)))
	}
}

func (c *Client) wait(ctx context.Context, started time.Time, timeout time.Duration, logger *zap.Logger) error {
	limiter := rate.NewLimiter(rate.Every(c.pollInterval), 1)

	for {
		if code, exited := c.runtime.Poll(); exited {
			logger.Info("Window closed", zap.Int("code", code), zap.Duration("elapsed", time.Since(started)))
			return nil
		}

		select {
		case op := <-c.pending:
			op()
		default:
		}

		if time.Since(started) >= timeout {
			c.closeAndWait(logger)
			logger.Warn("Window timed out", zap.Duration("timeout", timeout))
			return fmt.Errorf("%w: Reached timeout while waiting for Assistant Dialog", ErrTimeout)
		}

		tick := time.NewTimer(limiter.Reserve().Delay())
		select {
		case <-ctx.Done():
			tick.Stop()
			c.closeAndWait(logger)
			logger.Warn("Window wait cancelled", zap.Error(ctx.Err()))
			return fmt.Errorf("wait for window: %w", ctx.Err())
		case <-tick.C:
		}
	}
}

// CloseGrace bounds how long Display waits for the runtime to confirm a
// close it forced on timeout or cancellation.
const CloseGrace = 2 * time.Second

// closeAndWait closes the window and polls until the runtime reports it
// exited, so the next Display finds the runtime idle. It gives up after
// CloseGrace.
func (c *Client) closeAndWait(logger *zap.Logger) {
	c.runtime.Close()

	deadline := time.Now().Add(CloseGrace)
	for {
		if _, exited := c.runtime.Poll(); exited {
			return
		}
		if time.Now().After(deadline) {
			logger.Warn("Window still running after close", zap.Duration("grace", CloseGrace))
			return
		}
		time.Sleep(c.pollInterval)
	}
}

// teardown resets the session. Controls cannot be shown on another window,
// so the element tree is dropped together with the page.
func (c *Client) teardown(logger *zap.Logger) {
	c.mu.Lock()
	c.state = StateClosing
	c.page = nil
	c.elements = Elements{}
	c.toDisable = nil
	c.stack = nil
	c.mu.Unlock()

	select {
	case <-c.pending:
		logger.Debug("Dropped pending operation")
	default:
	}

	c.mu.Lock()
	c.state = StateClosed
	c.mu.Unlock()
}

// Queue hands op to the wait loop, which runs it on the caller's context.
// Only one operation may be outstanding at a time.
func (c *Client) Queue(op func()) error {
	select {
	case c.pending <- op:
		return nil
	default:
		return ErrOperationPending
	}
}

// RunLocked queues fn to run with the disable-list locked. The page is
// refreshed once fn returns.
func (c *Client) RunLocked(fn func()) error {
	return c.Queue(func() {
		c.LockElements()
		defer func() {
			c.UnlockElements()
			if err := c.Refresh(); err != nil {
				c.logger.Debug("Skipping refresh after operation", zap.Error(err))
			}
		}()
		fn()
	})
}

// CloseWindow asks the runtime to close the open window.
func (c *Client) CloseWindow() {
	c.runtime.Close()
}

func (c *Client) LockElements() {
	c.setDisabled(true)
}

func (c *Client) UnlockElements() {
	c.setDisabled(false)
}

func (c *Client) setDisabled(disabled bool) {
	c.mu.Lock()
	targets := append([]fyne.Disableable(nil), c.toDisable...)
	page := c.page
	c.mu.Unlock()

	apply := func() {
		for _, t := range targets {
			if disabled {
				t.Disable()
			} else {
				t.Enable()
			}
		}
	}
	if page == nil {
		apply()
		return
	}
	page.Do(apply)
}

// UpdateElements shows the accumulated element tree on the open page.
func (c *Client) UpdateElements() error {
	c.mu.Lock()
	page := c.page
	elements := c.elements.clone()
	c.mu.Unlock()

	if page == nil {
		return fmt.Errorf("%w: No page open when update_elements was called", ErrPageNotOpen)
	}
	page.Do(func() {
		flush(page, elements)
	})
	return nil
}

// flush replaces the page content with elements. It runs on the toolkit context.
func flush(page Page, elements Elements) {
	page.Clear()
	page.Add(elements.Visible...)
	for _, obj := range elements.Invisible {
		page.AddOverlay(obj)
	}
	if elements.AppBar != nil {
		page.SetAppBar(elements.AppBar.Object())
	}
	page.Refresh()
}

// ClearElements drops the element tree and empties the open page, if any.
func (c *Client) ClearElements() {
	c.mu.Lock()
	c.elements = Elements{}
	c.stack = nil
	page := c.page
	c.mu.Unlock()

	if page != nil {
		page.Do(func() {
			page.Clear()
			page.Refresh()
		})
	}
}

// Refresh redraws the open page after elements changed.
func (c *Client) Refresh() error {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()

	if page == nil {
		return fmt.Errorf("%w: Update called when page is not open", ErrPageNotOpen)
	}
	page.Do(page.Refresh)
	return nil
}

// SetTitle changes the title of the open window.
func (c *Client) SetTitle(title string) error {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()

	if page == nil {
		return fmt.Errorf("%w: Set title called when page is not open", ErrPageNotOpen)
	}
	page.Do(func() {
		page.SetTitle(title)
	})
	return nil
}
