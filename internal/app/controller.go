// Package app owns the client-side state and maps user actions to collaborator calls.
//
// All mutation happens on the caller's event loop: action methods change state
// synchronously and return a tea.Cmd that performs the call off-loop; the
// command's message comes back through Settle. Overlapping calls are not
// sequenced, so the last response to settle wins.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/remote"
)

// Operation names passed to the failure hook.
const (
	OpCheckHealth = "check health"
	OpListItems   = "list items"
	OpCreateItem  = "create item"
)

// State is everything the view renders.
type State struct {
	Items   []model.Item
	Loading bool
	Counter int
}

// ItemsFetchedMsg settles a RefreshItems call.
type ItemsFetchedMsg struct {
	Items []model.Item
	Err   error
}

// ItemCreatedMsg settles a CreateRandomItem call.
type ItemCreatedMsg struct {
	Draft model.Draft
	Item  model.Item
	Err   error
}

// HealthCheckedMsg settles a CheckHealth call.
type HealthCheckedMsg struct {
	Health remote.Health
	Err    error
}

// Controller is the single owner of State.
type Controller struct {
	remote   remote.Remote
	log      *zap.Logger
	newDraft DraftSource
	onFail   func(op string, err error)
	onHealth func(remote.Health)
	onCreate func(model.Item)
	ctx      context.Context

	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithDraftSource replaces RandomDraft.
func WithDraftSource(src DraftSource) Option {
	return func(c *Controller) { c.newDraft = src }
}

// WithFailureHook is called with every absorbed failure, after it is logged.
func WithFailureHook(fn func(op string, err error)) Option {
	return func(c *Controller) { c.onFail = fn }
}

// WithHealthHook receives every successful health payload, after it is logged.
func WithHealthHook(fn func(remote.Health)) Option {
	return func(c *Controller) { c.onHealth = fn }
}

// WithCreatedHook receives every item echoed by a successful create, before
// the follow-up refresh is issued.
func WithCreatedHook(fn func(model.Item)) Option {
	return func(c *Controller) { c.onCreate = fn }
}

// New returns a controller in the initial state: no items, idle, counter 0.
func New(r remote.Remote, opts ...Option) *Controller {
	c := &Controller{
		remote:   r,
		log:      zap.NewNop(),
		newDraft: RandomDraft,
		onFail:   func(string, error) {},
		onHealth: func(remote.Health) {},
		onCreate: func(model.Item) {},
		ctx:      context.Background(),
		state:    State{Items: []model.Item{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	s.Items = make([]model.Item, len(c.state.Items))
	copy(s.Items, c.state.Items)
	return s
}

// Mount fires the health check and the first fetch without ordering them.
func (c *Controller) Mount() tea.Cmd {
	return tea.Batch(c.CheckHealth(), c.RefreshItems())
}

// RefreshItems marks the controller as loading and fetches the collection.
func (c *Controller) RefreshItems() tea.Cmd {
	c.state.Loading = true
	r, ctx := c.remote, c.ctx
	return func() tea.Msg {
		items, err := r.ListItems(ctx)
		return ItemsFetchedMsg{Items: items, Err: err}
	}
}

// CreateRandomItem posts a generated draft. Local items change only through
// the refresh that follows a successful create.
func (c *Controller) CreateRandomItem() tea.Cmd {
	draft := c.newDraft()
	r, ctx := c.remote, c.ctx
	return func() tea.Msg {
		it, err := r.CreateItem(ctx, draft)
		return ItemCreatedMsg{Draft: draft, Item: it, Err: err}
	}
}

// CheckHealth asks the collaborator for its health payload, which is only logged.
func (c *Controller) CheckHealth() tea.Cmd {
	r, ctx := c.remote, c.ctx
	return func() tea.Msg {
		h, err := r.CheckHealth(ctx)
		return HealthCheckedMsg{Health: h, Err: err}
	}
}

// IncrementCounter bumps the local counter.
func (c *Controller) IncrementCounter() {
	c.state.Counter++
}

// Settle applies a settlement message. It reports whether msg was one of
// the controller's and returns any follow-up command.
func (c *Controller) Settle(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ItemsFetchedMsg:
		if msg.Err != nil {
			c.log.Error("Error fetching items", zap.Error(msg.Err))
			c.onFail(OpListItems, msg.Err)
		} else {
			c.log.Info("Fetched items from API", zap.Int("count", len(msg.Items)))
			c.state.Items = msg.Items
		}
		c.state.Loading = false
		return nil, true

	case ItemCreatedMsg:
		if msg.Err != nil {
			c.log.Error("Error creating item", zap.String("name", msg.Draft.Name), zap.Error(msg.Err))
			c.onFail(OpCreateItem, msg.Err)
			return nil, true
		}
		c.log.Info("Created new item",
			zap.Int64("id", msg.Item.ID),
			zap.String("name", msg.Item.Name),
			zap.Float64("price", msg.Item.Price),
		)
		c.onCreate(msg.Item)
		return c.RefreshItems(), true

	case HealthCheckedMsg:
		if msg.Err != nil {
			c.log.Error("Error fetching health status", zap.Error(msg.Err))
			c.onFail(OpCheckHealth, msg.Err)
		} else {
			c.log.Info("API Health Status", zap.ByteString("payload", msg.Health))
			c.onHealth(msg.Health)
		}
		return nil, true
	}
	return nil, false
}

// Await runs cmd and every follow-up on the calling goroutine, settling each
// message as it arrives. Batched commands run in order. It serves one-shot
// callers that have no event loop.
func (c *Controller) Await(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			c.Await(sub)
		}
		return
	}
	next, _ := c.Settle(msg)
	c.Await(next)
}
