// Package tui renders the deal feed in the terminal.
package tui

import (
	"context"

	"dealfeed/client"
	"dealfeed/feedstore"
	"dealfeed/projector"
	"dealfeed/session"
	"dealfeed/types"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Feed is the session surface the UI reads
type Feed interface {
	Store() *feedstore.Store
	Status() session.Status
	Changes() <-chan struct{}
	Reload(ctx context.Context) error
}

// PreferenceSubmitter sends preferences to the server
type PreferenceSubmitter interface {
	SetPreferences(ctx context.Context, prefs types.Preferences) (*client.PreferencesAck, error)
}

// Model represents the TUI client state
type Model struct {
	ctx       context.Context
	feed      Feed
	submitter PreferenceSubmitter
	prefs     types.Preferences

	search    textinput.Model
	selectors []string
	typeIdx   int
	offset    int

	status   session.Status
	items    []types.DealItem
	notice   string
	noticeOK bool
	busy     bool

	width  int
	height int
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, feed Feed, submitter PreferenceSubmitter, prefs types.Preferences) Model {
	search := textinput.New()
	search.Placeholder = TextSearchPlaceholder
	search.Prompt = "🔍 "
	search.CharLimit = 120

	m := Model{
		ctx:       ctx,
		feed:      feed,
		submitter: submitter,
		prefs:     prefs,
		search:    search,
		selectors: projector.Selectors(),
		width:     100,
		height:    40,
	}
	return m.refresh()
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return waitForChange(m.ctx, m.feed)
}

// Criteria returns the current filter state
func (m Model) Criteria() projector.Criteria {
	return projector.Criteria{
		Query:     m.search.Value(),
		EventType: m.selectors[m.typeIdx],
	}
}

// Visible returns the projected items
func (m Model) Visible() []types.DealItem {
	return m.items
}

// refresh re-reads the store and status and re-projects
func (m Model) refresh() Model {
	m.status = m.feed.Status()
	m.items = projector.Project(m.feed.Store().Snapshot(), m.Criteria())
	if m.offset >= len(m.items) {
		m.offset = max(0, len(m.items)-1)
	}
	return m
}

// pageSize is how many cards fit on screen
func (m Model) pageSize() int {
	return max(1, (m.height-10)/8)
}
