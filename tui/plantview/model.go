// Package plantview is the interactive plant dashboard: a board of module
// blocks with hover details, right-click action menus and live status.
package plantview

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/plantview/config"
	"github.com/grovetools/plantview/pkg/dashboard"
	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/plantapi"
	"github.com/grovetools/plantview/tui/components/help"
	"github.com/grovetools/plantview/tui/theme"
)

// Options configures the dashboard model.
type Options struct {
	// ServerURL is shown in the header.
	ServerURL string
	Interval  time.Duration
	Keys      config.KeybindingConfig
	Mouse     bool
	Theme     *theme.Theme
	Logger    *logrus.Entry
	// Focus is a block id to focus once it appears on the board.
	Focus string
}

// Model represents the state of the dashboard TUI.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctrl    *dashboard.Controller
	notices []dashboard.Notice // notices[0] is on screen

	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	theme   *theme.Theme
	logger  *logrus.Entry

	serverURL string
	interval  time.Duration
	mouse     bool
	tickSeq   int

	layout       boardLayout
	focusID      string
	pendingFocus string
	menuHot      int
	offset       int
	width        int
	height       int
}

// New creates the dashboard model. initial may be nil; the first poll is
// then issued immediately.
func New(ctx context.Context, client plantapi.Client, initial *plant.Dataset, opts Options) *Model {
	ctx, cancel := context.WithCancel(ctx)

	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}
	th := opts.Theme
	if th == nil {
		th = theme.DefaultTheme
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = dashboard.DefaultInterval
	}

	m := &Model{
		ctx:       ctx,
		cancel:    cancel,
		theme:     th,
		logger:    logger,
		serverURL: opts.ServerURL,
		interval:  interval,
		mouse:     opts.Mouse,
		menuHot:   -1,

		pendingFocus: opts.Focus,
	}

	keys, unknown := DefaultKeyMap(opts.Keys)
	if len(unknown) > 0 {
		logger.WithField("keys", unknown).Warn("Ignoring unknown keybinding overrides")
	}
	m.keys = keys
	m.help = help.New(keys)
	m.help.Theme = th
	m.help.Title = "Plant Dashboard Keys"

	m.spinner = spinner.New(spinner.WithSpinner(spinner.MiniDot))
	m.spinner.Style = th.Info

	m.ctrl = dashboard.New(client, initial,
		dashboard.WithLogger(logger),
		dashboard.WithNotifier(dashboard.NotifierFunc(func(n dashboard.Notice) {
			m.notices = append(m.notices, n)
		})),
	)
	m.relayout()
	return m
}

// Controller exposes the underlying dashboard controller.
func (m *Model) Controller() *dashboard.Controller {
	return m.ctrl
}

// Focused returns the id of the keyboard-focused block, if any.
func (m *Model) Focused() string {
	return m.focusID
}

// Interval returns the current poll interval.
func (m *Model) Interval() time.Duration {
	return m.interval
}

// Init schedules the poll ticker and, with no data yet, an immediate poll.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.scheduleTick()}
	if m.ctrl.Dataset().Len() == 0 {
		cmds = append(cmds, m.pollNow())
	}
	return tea.Batch(cmds...)
}

func (m *Model) scheduleTick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return pollTickMsg{seq: seq}
	})
}

// pollNow starts a fetch unless one is in flight.
func (m *Model) pollNow() tea.Cmd {
	if !m.ctrl.BeginPoll() {
		m.logger.Debug("Skipping poll, previous one still in flight")
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return pollResultMsg(ctrl.FetchPlantData(ctx))
	}
}

// dispatch sends req in the background.
func (m *Model) dispatch(req dashboard.DispatchRequest) tea.Cmd {
	if req.Skip {
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return dispatchResultMsg(ctrl.PerformAction(ctx, req))
	}
}

func (m *Model) relayout() {
	width := m.width - 1 // scrollbar column
	if m.width <= 0 {
		width = 80
	}
	m.layout = layoutBoard(m.ctrl.Blocks(), width)
	if m.pendingFocus != "" {
		if _, _, ok := m.layout.find(m.pendingFocus); ok {
			m.focusID = m.pendingFocus
			m.pendingFocus = ""
		}
	}
	if m.focusID != "" {
		if _, _, ok := m.layout.find(m.focusID); !ok {
			m.focusID = ""
		}
	}
	m.clampOffset()
}

func (m *Model) boardHeight() int {
	if m.height <= 0 {
		return m.layout.height
	}
	return max(m.height-headerLines-footerLines, 1)
}

func (m *Model) clampOffset() {
	maxOffset := max(m.layout.height-m.boardHeight(), 0)
	m.offset = min(max(m.offset, 0), maxOffset)
}

// ensureVisible scrolls so the block at r is on screen.
func (m *Model) ensureVisible(r rect) {
	h := m.boardHeight()
	if r.y < m.offset {
		m.offset = r.y
	} else if r.y+blockHeight > m.offset+h {
		m.offset = r.y + blockHeight - h
	}
	m.clampOffset()
}

// toBoard converts a screen position to board coordinates.
func (m *Model) toBoard(x, y int) (int, int, bool) {
	if y < headerLines || y >= headerLines+m.boardHeight() {
		return 0, 0, false
	}
	return x, y - headerLines + m.offset, true
}

// toScreen converts a board position to screen coordinates.
func (m *Model) toScreen(x, y int) (int, int) {
	return x, y - m.offset + headerLines
}

// applyConfig takes a reloaded configuration: poll interval, theme and
// key overrides change live.
func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	var cmds []tea.Cmd
	if d := cfg.Poll.Interval.D(); d > 0 && d != m.interval {
		m.logger.WithField("interval", d.String()).Info("Poll interval changed")
		m.interval = d
		m.tickSeq++
		cmds = append(cmds, m.scheduleTick())
	}

	if cfg.TUI.Theme != "" && cfg.TUI.Theme != m.theme.Name {
		m.theme = theme.NewThemeWithName(cfg.TUI.Theme)
		m.help.Theme = m.theme
		m.spinner.Style = m.theme.Info
	}

	keys, unknown := DefaultKeyMap(cfg.TUI.Keybindings)
	if len(unknown) > 0 {
		m.logger.WithField("keys", unknown).Warn("Ignoring unknown keybinding overrides")
	}
	m.keys = keys
	m.help.Keys = keys

	if mouse := cfg.TUI.MouseEnabled(); mouse != m.mouse {
		m.mouse = mouse
		if mouse {
			cmds = append(cmds, tea.EnableMouseAllMotion)
		} else {
			m.ctrl.Leave()
			m.ctrl.DismissMenu()
			cmds = append(cmds, tea.DisableMouse)
		}
	}
	return tea.Batch(cmds...)
}
