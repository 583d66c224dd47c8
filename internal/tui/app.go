package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/routefinder/internal/controller"
	"github.com/jask/routefinder/internal/locations"
	"github.com/jask/routefinder/internal/present"
	"github.com/jask/routefinder/internal/routing"
)

// App is the route finder screen. It is the single owner of the controller:
// network calls run in commands and their outcomes come back as messages.
type App struct {
	ctx       context.Context
	client    routing.Client
	ctrl      *controller.Controller
	presenter present.Presenter
	logger    *slog.Logger
	keys      keyMap

	inputs  [2]textinput.Model
	focus   int
	spinner spinner.Model
	width   int

	server   serverStatus
	graph    *present.GraphView
	graphErr error
	known    locations.Known
	// rejected is set when the current Failed state came from the service
	rejected bool
}

type serverStatus string

const (
	serverChecking serverStatus = "Checking"
	serverLive     serverStatus = "Live"
	serverOffline  serverStatus = "Offline"
)

const (
	fieldStart = iota
	fieldEnd
)

// New wires the screen to a routing client and the controller that uses it.
func New(ctx context.Context, client routing.Client, ctrl *controller.Controller, presenter present.Presenter, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &App{
		ctx:       ctx,
		client:    client,
		ctrl:      ctrl,
		presenter: presenter,
		logger:    logger,
		keys:      defaultKeyMap(),
		server:    serverChecking,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(pendingStyle)),
	}
	a.inputs[fieldStart] = newInput("Start location", "e.g. Warehouse")
	a.inputs[fieldEnd] = newInput("Destination", "e.g. CustomerF")
	a.setFocus(fieldStart)
	return a
}

func newInput(prompt, placeholder string) textinput.Model {
	inp := textinput.New()
	inp.Prompt = prompt + ": "
	inp.Placeholder = placeholder
	inp.CharLimit = 64
	inp.ShowSuggestions = true
	return inp
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.checkHealth(), a.loadGraph())
}

func (a *App) checkHealth() tea.Cmd {
	return func() tea.Msg {
		return healthMsg{err: a.client.Health(a.ctx)}
	}
}

func (a *App) loadGraph() tea.Cmd {
	return func() tea.Msg {
		info, err := a.client.Graph(a.ctx)
		return graphMsg{info: info, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case routeDoneMsg:
		if !a.ctrl.Complete(controller.Completion(m)) {
			a.logger.Debug("ignored superseded route result", "seq", m.Seq)
			return a, nil
		}
		var rej *routing.ServiceRejection
		a.rejected = errors.As(m.Err, &rej)
		return a, nil
	case healthMsg:
		if m.err != nil {
			a.server = serverOffline
			a.logger.Warn("routing service offline", "err", m.err)
		} else {
			a.server = serverLive
		}
		return a, nil
	case graphMsg:
		if m.err != nil {
			a.graph, a.graphErr = nil, m.err
			a.logger.Warn("load graph info", "err", m.err)
			return a, nil
		}
		view := present.PresentGraph(m.info)
		a.graph, a.graphErr = &view, nil
		a.known = locations.NewKnown(m.info.Nodes)
		for i := range a.inputs {
			a.inputs[i].SetSuggestions(a.known.Names())
		}
		return a, nil
	case spinner.TickMsg:
		if !a.ctrl.State().IsLoading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return a, cmd
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Submit):
		return a, a.submit()
	case key.Matches(m, a.keys.Reset):
		a.reset()
		return a, nil
	case key.Matches(m, a.keys.Refresh):
		a.server = serverChecking
		return a, tea.Batch(a.checkHealth(), a.loadGraph())
	case key.Matches(m, a.keys.Next):
		a.setFocus((a.focus + 1) % len(a.inputs))
		return a, nil
	case key.Matches(m, a.keys.Prev):
		a.setFocus((a.focus + len(a.inputs) - 1) % len(a.inputs))
		return a, nil
	case key.Matches(m, a.keys.Complete):
		in := a.inputs[a.focus]
		if s := in.CurrentSuggestion(); s == "" || s == in.Value() {
			a.setFocus((a.focus + 1) % len(a.inputs))
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(m)
	return a, cmd
}

// submit hands the inputs to the controller. A submit while a route is
// loading replaces it; the controller discards the older result.
func (a *App) submit() tea.Cmd {
	a.rejected = false
	fetch := a.ctrl.Submit(a.ctx, a.inputs[fieldStart].Value(), a.inputs[fieldEnd].Value())
	if fetch == nil {
		return nil
	}
	return tea.Batch(
		a.spinner.Tick,
		func() tea.Msg { return routeDoneMsg(fetch()) },
	)
}

// reset clears the form and the controller, then focuses the start input.
func (a *App) reset() {
	for i := range a.inputs {
		a.inputs[i].Reset()
	}
	a.ctrl.Reset()
	a.rejected = false
	a.setFocus(fieldStart)
}

func (a *App) setFocus(i int) {
	a.focus = i
	for j := range a.inputs {
		if j == i {
			a.inputs[j].Focus()
			a.inputs[j].PromptStyle = focusedPrompt
		} else {
			a.inputs[j].Blur()
			a.inputs[j].PromptStyle = blurredPrompt
		}
	}
}

func (a *App) View() string {
	state := a.ctrl.State()

	header := titleStyle.Render("Route Finder") + "  " + a.renderServer()
	form := lipgloss.JoinVertical(lipgloss.Left,
		a.inputs[fieldStart].View(),
		a.inputs[fieldEnd].View(),
		"",
		a.renderButton(state),
	)
	result := RenderState(state, a.presenter, a.spinner.View())
	if hint := a.suggestion(state); hint != "" {
		result += "\n" + hintStyle.Render(hint)
	}

	sections := []string{
		header,
		panelStyle.Render(form),
		panelStyle.Render(result),
		panelStyle.Render(RenderGraph(a.graph, a.graphErr)),
		footerStyle.Render(a.keys.help()),
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderServer() string {
	switch a.server {
	case serverLive:
		return liveStyle.Render("● " + string(a.server))
	case serverOffline:
		return offlineStyle.Render("● " + string(a.server))
	default:
		return dimStyle.Render("● " + string(a.server))
	}
}

func (a *App) renderButton(state controller.State) string {
	if state.IsLoading() {
		return busyStyle.Render("Calculating...")
	}
	return buttonStyle.Render("Find route")
}

// suggestion offers a close known name for an input the service does not
// know, once the service has rejected a query.
func (a *App) suggestion(state controller.State) string {
	if !a.rejected || state.Status() != controller.StatusFailed || a.known.Len() == 0 {
		return ""
	}
	for _, in := range a.inputs {
		if s, ok := a.known.Suggest(in.Value()); ok {
			return "Did you mean " + s + "?"
		}
	}
	return ""
}

type routeDoneMsg controller.Completion

type healthMsg struct{ err error }

type graphMsg struct {
	info routing.GraphInfo
	err  error
}
