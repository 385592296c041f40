package plantview

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/plantview/pkg/dashboard"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if !m.mouse {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case pollTickMsg:
		if msg.seq != m.tickSeq {
			return m, nil
		}
		return m, tea.Batch(m.scheduleTick(), m.pollNow())

	case pollResultMsg:
		changes := m.ctrl.ApplyPoll(dashboard.PollResult(msg))
		for _, c := range changes {
			m.logger.WithField("module", c.BlockID).
				WithField("from", c.From).
				WithField("to", c.To).
				Debug("Module status changed")
		}
		m.relayout()
		return m, nil

	case dispatchResultMsg:
		m.ctrl.ApplyDispatch(dashboard.DispatchResult(msg))
		// The board draws from the layout's block copies.
		m.relayout()
		return m, nil

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.logger.WithError(msg.Err).Warn("Ignoring invalid configuration change")
			return m, nil
		}
		cmd := m.applyConfig(msg.Config)
		m.relayout()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// The notice is modal: it must be acknowledged first.
	if len(m.notices) > 0 {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			m.notices = m.notices[1:]
		}
		return nil
	}

	if m.help.ShowAll {
		if key.Matches(msg, m.keys.Help, m.keys.Dismiss, m.keys.Quit) {
			m.help.Toggle()
		}
		return nil
	}

	menu := m.ctrl.Menu()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()

	case key.Matches(msg, m.keys.Dismiss):
		if menu.Visible {
			m.ctrl.DismissMenu()
		} else {
			m.ctrl.Leave()
			m.focusID = ""
		}

	case menu.Visible && key.Matches(msg, m.keys.MenuItem):
		if i, ok := menuIndex(msg.String()); ok {
			if req, ok := m.ctrl.SelectMenuItem(i); ok {
				return m.dispatch(req)
			}
		}

	case key.Matches(msg, m.keys.OpenMenu):
		r, ok := m.focused()
		if !ok {
			return nil
		}
		x, y := m.toScreen(r.x+2, r.y+blockHeight-1)
		m.ctrl.OpenMenu(r.id, x, y)
		m.menuHot = -1

	case key.Matches(msg, m.keys.Refresh):
		return m.pollNow()

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(1, 0)

	case key.Matches(msg, m.keys.ScrollUp):
		m.offset -= m.boardHeight() / 2
		m.clampOffset()
	case key.Matches(msg, m.keys.ScrollDown):
		m.offset += m.boardHeight() / 2
		m.clampOffset()
	}
	return nil
}

// focused returns the focused block, focusing the first one if none is.
func (m *Model) focused() (rect, bool) {
	if r, _, ok := m.layout.find(m.focusID); ok {
		return r, true
	}
	if len(m.layout.rects) == 0 {
		return rect{}, false
	}
	r := m.layout.rects[0]
	m.setFocus(r)
	return r, true
}

// moveFocus moves the keyboard cursor; the focused block shows its
// tooltip as if hovered.
func (m *Model) moveFocus(dx, dy int) {
	_, i, ok := m.layout.find(m.focusID)
	if !ok {
		i = -1
	}
	r, ok := m.layout.neighbor(i, dx, dy)
	if !ok {
		return
	}
	m.setFocus(r)
}

func (m *Model) setFocus(r rect) {
	m.focusID = r.id
	m.ensureVisible(r)
	x, y := m.toScreen(r.x+1, r.y+blockHeight-2)
	m.ctrl.Hover(r.id, x, y)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	// Pointer motion with no button held: hover.
	if msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonNone {
		m.menuHot = m.menuItemAt(msg.X, msg.Y)
		if r, ok := m.blockAt(msg.X, msg.Y); ok {
			m.focusID = r.id
			m.ctrl.Hover(r.id, msg.X, msg.Y)
		} else {
			m.ctrl.Leave()
		}
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.offset--
		m.clampOffset()

	case tea.MouseButtonWheelDown:
		m.offset++
		m.clampOffset()

	case tea.MouseButtonRight:
		if msg.Action != tea.MouseActionRelease {
			return nil
		}
		if r, ok := m.blockAt(msg.X, msg.Y); ok {
			m.ctrl.OpenMenu(r.id, msg.X, msg.Y)
			m.menuHot = -1
		}

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		if len(m.notices) > 0 {
			m.notices = m.notices[1:]
			return nil
		}
		if i := m.menuItemAt(msg.X, msg.Y); i >= 0 {
			if req, ok := m.ctrl.SelectMenuItem(i); ok {
				return m.dispatch(req)
			}
		}
		m.ctrl.DismissMenu()
	}
	return nil
}

// blockAt returns the block under a screen position.
func (m *Model) blockAt(x, y int) (rect, bool) {
	bx, by, ok := m.toBoard(x, y)
	if !ok {
		return rect{}, false
	}
	return m.layout.hit(bx, by)
}

// menuItemAt returns the index of the menu item under a screen position,
// or -1.
func (m *Model) menuItemAt(x, y int) int {
	menu := m.ctrl.Menu()
	if !menu.Visible || len(menu.Items) == 0 {
		return -1
	}
	mx, my, w, _ := m.menuFrame(menu)
	if x <= mx || x >= mx+w-1 {
		return -1
	}
	i := y - my - 1
	if i < 0 || i >= len(menu.Items) {
		return -1
	}
	return i
}

func (m *Model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}
