package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	virtuallist "github.com/wippyai/virtual-list"
	"github.com/wippyai/virtual-list/config"
	"github.com/wippyai/virtual-list/viewport"
)

// lines taken by title, status and help
const chromeLines = 3

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	GoTo     key.Binding
	Align    key.Binding
	Shuffle  key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "left", "h"), key.WithHelp("↑/k", "back")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "right", "l"), key.WithHelp("↓/j", "forward")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page back")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page forward")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "start")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "end")),
		GoTo:     key.NewBinding(key.WithKeys("g", ":"), key.WithHelp("g", "go to index")),
		Align:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "alignment")),
		Shuffle:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reshuffle sizes")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.GoTo, k.Align, k.Shuffle, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.GoTo},
		{k.Align, k.Shuffle, k.Quit},
	}
}

type interactiveModel struct {
	err    error
	list   *viewport.List
	data   *dataset
	log    *zap.Logger
	cfg    *config.Config
	input  textinput.Model
	help   help.Model
	keys   keyMap
	align  virtuallist.Alignment
	scroll viewport.Scroll
	width  int
	height int
	goTo   bool
}

func newInteractiveModel(cfg *config.Config, log *zap.Logger, width, height int) (*interactiveModel, error) {
	list, data, err := newList(cfg, float64(width), float64(max(0, height-chromeLines)), log)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Prompt = "go to index: "
	ti.Placeholder = fmt.Sprintf("0..%d", list.Cache().TotalItemCount()-1)
	ti.CharLimit = 12
	ti.Width = 20

	return &interactiveModel{
		list:   list,
		data:   data,
		log:    log,
		cfg:    cfg,
		input:  ti,
		help:   help.New(),
		keys:   newKeyMap(),
		align:  cfg.List.Alignment,
		width:  width,
		height: height,
	}, nil
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.goTo {
			return m.updateGoTo(msg)
		}

		page := max(1, m.list.ContainerSize()-1)
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.scrollTo(m.list.Offset() - 1)
		case key.Matches(msg, m.keys.Down):
			m.scrollTo(m.list.Offset() + 1)
		case key.Matches(msg, m.keys.PageUp):
			m.scrollTo(m.list.Offset() - page)
		case key.Matches(msg, m.keys.PageDown):
			m.scrollTo(m.list.Offset() + page)
		case key.Matches(msg, m.keys.Home):
			m.scrollTo(0)
		case key.Matches(msg, m.keys.End):
			m.scrollTo(math.Inf(1))
		case key.Matches(msg, m.keys.Align):
			m.align = m.align.Next()
		case key.Matches(msg, m.keys.Shuffle):
			m.reshuffle()
		case key.Matches(msg, m.keys.GoTo):
			m.goTo = true
			m.err = nil
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m *interactiveModel) updateGoTo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.goTo = false
		m.input.Blur()
		return m, nil

	case "enter":
		m.goTo = false
		m.input.Blur()
		index, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil {
			m.err = fmt.Errorf("not an index: %q", m.input.Value())
			return m, nil
		}
		offset, err := m.list.ScrollToIndex(index, m.align)
		m.err = err
		m.scroll = viewport.Scroll{Reason: m.list.Reason(), Offset: offset, Changed: true}
		m.log.Debug("scrolled to index", zap.Int("index", index), zap.String("align", string(m.align)), zap.Float64("offset", offset))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// scrollTo reports a user scroll to the list, clamped to the scrollable
// extent the way a real scroll container clamps it. Measuring the rows
// that come into view replaces estimates, so the clamp is repeated until
// the total size settles.
func (m *interactiveModel) scrollTo(offset float64) {
	for first := true; ; first = false {
		total := m.list.TotalSize()
		limit := max(0, total-m.list.ContainerSize())
		if s := m.list.Observe(max(0, min(limit, offset))); first || s.Changed {
			m.scroll = s
		}
		if _, err := m.list.VisibleRange(); err != nil {
			m.err = err
			return
		}
		if m.list.TotalSize() == total {
			return
		}
	}
}

func (m *interactiveModel) reshuffle() {
	r, err := m.list.VisibleRange()
	if err != nil {
		m.err = err
		return
	}
	from := max(0, r.Start)
	m.data.reshuffle(from)
	m.list.RecomputeSizes(from)
	m.log.Debug("sizes reshuffled", zap.Int("from", from))
}

func (m *interactiveModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	w, h := m.cfg.List.Width, m.cfg.List.Height
	if w == 0 {
		w = float64(width)
	}
	if h == 0 {
		h = float64(max(0, height-chromeLines))
	}
	if err := m.list.Resize(w, h); err != nil {
		m.err = err
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	stats := m.list.Cache().Stats()
	b.WriteString(titleStyle.Render("vlist"))
	b.WriteString(fmt.Sprintf(" %d items in %d sections, %s", stats.ItemCount, len(m.list.Sections()), m.list.Direction()))
	b.WriteString("\n")

	area := max(0, m.height-chromeLines)
	entries, err := m.list.Items()
	if err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		b.WriteString(strings.Repeat("\n", area))
	} else {
		b.WriteString(strings.Join(paint(entries, m.list.Direction(), m.list.Offset(), m.width, area), "\n"))
		b.WriteString("\n")
	}

	r, _ := m.list.VisibleRange()
	status := fmt.Sprintf("range %s  offset %.0f/%.0f  measured %d/%d  align %s  %s",
		r, m.list.Offset(), m.list.TotalSize(), stats.Measured, stats.ItemCount, m.align, m.list.Reason())
	if m.scroll.ReachedUpper {
		status += "  ▲ top"
	}
	if m.scroll.ReachedLower {
		status += "  ▼ bottom"
	}
	b.WriteString(statusStyle.Render(fit(status, m.width)))
	b.WriteString("\n")

	switch {
	case m.goTo:
		b.WriteString(m.input.View())
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	default:
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}
	return b.String()
}

func runInteractive(ctx context.Context, _ *cli.Command) error {
	env := envFromContext(ctx)

	width, height, ok := config.TerminalSize(os.Stdout)
	if !ok {
		width, height = 80, 24
	}

	m, err := newInteractiveModel(env.Cfg, env.Log, width, height)
	if err != nil {
		return fmt.Errorf("unable to build list: %w", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
