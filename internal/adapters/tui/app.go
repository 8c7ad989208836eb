package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fabmap/internal/adapters/editor"
	"fabmap/internal/adapters/tui/styles"
	"fabmap/internal/adapters/tui/views"
	"fabmap/internal/application/commands"
	"fabmap/internal/domain"
	"fabmap/internal/engine"
	"fabmap/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewMap ViewState = iota
	ViewSearch
	ViewConfirm
	ViewHelp
)

// mapTop is the number of rows above the map (the search line)
const mapTop = 1

const requestTimeout = 15 * time.Second

// MapKeyMap defines key bindings for the map
type MapKeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Search    key.Binding
	Placement key.Binding
	TogglePin key.Binding
	Reload    key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	SignOut   key.Binding
	Cancel    key.Binding
}

var MapKeys = MapKeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Placement: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "place")),
	TogglePin: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "pins")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Up:        key.NewBinding(key.WithKeys("up", "k")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	Left:      key.NewBinding(key.WithKeys("left", "h")),
	Right:     key.NewBinding(key.WithKeys("right", "l")),
	ZoomIn:    key.NewBinding(key.WithKeys("+", "=")),
	ZoomOut:   key.NewBinding(key.WithKeys("-", "_")),
	SignOut:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "sign out")),
	Cancel:    key.NewBinding(key.WithKeys("esc")),
}

// Async results delivered back to Update
type (
	outcomeMsg struct {
		out engine.Outcome
		err error
	}
	searchResultsMsg struct {
		seq    uint64
		places []domain.Place
		err    error
	}
	editorFinishedMsg struct {
		pinID string
		path  string
		err   error
	}
	signedOutMsg struct{ err error }
	openedMsg    struct{ err error }
)

// App is the main TUI application model
type App struct {
	eng      *engine.Engine
	geocoder ports.Geocoder
	session  ports.Session
	editor   ports.EditorOpener
	links    ports.MapLinkOpener
	log      *slog.Logger

	state   ViewState
	panel   *views.PanelModel
	search  *views.SearchModel
	confirm *views.ConfirmationModel
	help    *views.HelpModel
	status  views.ViewState
	canvas  *views.Canvas

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(eng *engine.Engine, geocoder ports.Geocoder, session ports.Session, ed ports.EditorOpener, links ports.MapLinkOpener, log *slog.Logger) *App {
	return &App{
		eng:      eng,
		geocoder: geocoder,
		session:  session,
		editor:   ed,
		links:    links,
		log:      log,
		state:    ViewMap,
		panel:    views.NewPanelModel(eng),
		search:   views.NewSearchModel(eng),
		confirm:  views.NewConfirmationModel(),
		help:     views.NewHelpModel(),
	}
}

// Init loads the pins
func (a *App) Init() tea.Cmd {
	return a.reload()
}

func (a *App) reload() tea.Cmd {
	p := a.eng.Pipeline()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		out, err := p.Reload(ctx)
		return outcomeMsg{out: out, err: err}
	}
}

// run executes a pipeline call off the event loop
func run(fn func(ctx context.Context) (engine.Outcome, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		out, err := fn(ctx)
		return outcomeMsg{out: out, err: err}
	}
}

func (a *App) lookup(seq uint64, query string) tea.Cmd {
	g := a.geocoder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		places, err := commands.NewSearchLocationCommand(g, query).Execute(ctx)
		return searchResultsMsg{seq: seq, places: places, err: err}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.status.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case outcomeMsg:
		return a, a.applyOutcome(msg)

	case searchResultsMsg:
		if msg.err != nil {
			if a.eng.Search().Fail(msg.seq) {
				a.status.SetError(msg.err)
			}
			return a, nil
		}
		if a.eng.Search().Apply(msg.seq, msg.places) {
			a.search.ResetCursor()
		} else {
			a.log.Debug("stale_search_results", "seq", msg.seq)
		}
		return a, nil

	case editorFinishedMsg:
		text, err := editor.ReadScratch(msg.path)
		if msg.err != nil {
			a.status.SetError(msg.err)
			return a, nil
		}
		if err != nil {
			a.status.SetError(err)
			return a, nil
		}
		if a.eng.Panel().ActiveID() == msg.pinID {
			a.eng.Edits().SetDescription(msg.pinID, text)
			a.panel.Load()
			a.status.SetMessage("Notes updated, ctrl+s to save", false)
		}
		return a, nil

	case signedOutMsg:
		if msg.err != nil {
			a.status.SetError(msg.err)
			return a, nil
		}
		return a, tea.Quit

	// View switching messages
	case views.SwitchToMapMsg:
		a.state = ViewMap
		a.search.Blur()
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		return a, a.search.Focus()

	// Search messages
	case views.SearchQueryMsg:
		if seq, ok := a.eng.Search().Begin(msg.Query); ok {
			return a, a.lookup(seq, msg.Query)
		}
		return a, nil

	case views.SearchSelectMsg:
		if a.eng.SelectSearchResult(msg.Index) {
			a.search.Clear()
			a.search.Blur()
			a.state = ViewMap
		}
		return a, nil

	// Placement messages
	case views.ConfirmPlacementMsg:
		a.state = ViewMap
		pos, err := a.eng.TakePlacement()
		if err != nil {
			return a, nil
		}
		p := a.eng.Pipeline()
		return a, run(func(ctx context.Context) (engine.Outcome, error) {
			return p.CreatePin(ctx, pos.Lat, pos.Lng, true)
		})

	case views.CancelPlacementMsg:
		a.state = ViewMap
		a.eng.CancelPlacement()
		return a, nil

	// Panel messages
	case views.SavePinMsg:
		id, title, desc, err := a.eng.SaveRequest()
		if err != nil {
			return a, nil
		}
		a.status.SetMessage("Saving...", false)
		p := a.eng.Pipeline()
		return a, run(func(ctx context.Context) (engine.Outcome, error) {
			return p.UpdatePin(ctx, id, title, desc)
		})

	case views.AddFabricatorMsg:
		id := a.eng.Panel().ActiveID()
		if id == "" {
			return a, nil
		}
		draft := a.eng.Drafts().Draft(id)
		p := a.eng.Pipeline()
		return a, run(func(ctx context.Context) (engine.Outcome, error) {
			return p.AddFabricator(ctx, id, draft)
		})

	case views.ClosePanelMsg:
		a.eng.ClosePanel()
		a.panel.Load()
		return a, nil

	case views.CopyCoordsMsg:
		if pin, ok := a.eng.ActivePin(); ok {
			if err := clipboard.WriteAll(pin.Position().String()); err != nil {
				a.status.SetError(err)
			} else {
				a.status.SetMessage("Copied "+pin.Position().String(), false)
			}
		}
		return a, nil

	case views.EditDescriptionMsg:
		return a, a.openEditor()

	case views.OpenInBrowserMsg:
		pin, ok := a.eng.ActivePin()
		if !ok || a.links == nil {
			return a, nil
		}
		links, zoom := a.links, max(a.eng.Zoom(), 15)
		return a, func() tea.Msg {
			return openedMsg{err: links.Open(pin.Position(), zoom)}
		}

	case openedMsg:
		if msg.err != nil {
			a.status.SetError(msg.err)
		}
		return a, nil

	case tea.MouseMsg:
		if a.state == ViewMap {
			a.handleMouse(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewConfirm:
		if km, ok := msg.(tea.KeyMsg); ok {
			cmd = a.confirm.Update(km)
		}
	default:
		if km, ok := msg.(tea.KeyMsg); ok {
			cmd = a.handleMapKey(km)
		}
	}
	return a, cmd
}

func (a *App) applyOutcome(msg outcomeMsg) tea.Cmd {
	if msg.err == nil || msg.out.Committed {
		a.eng.Apply(msg.out)
		a.panel.Load()
	}
	if msg.err != nil {
		a.status.SetError(msg.err)
		return nil
	}
	if msg.out.Message != "" {
		a.status.SetMessage(msg.out.Message, false)
	}
	return nil
}

func (a *App) handleMapKey(msg tea.KeyMsg) tea.Cmd {
	if a.eng.Panel().IsOpen() && a.panel.Handles(msg) {
		return a.panel.Update(msg)
	}

	vp := a.viewport()
	switch {
	case key.Matches(msg, MapKeys.Quit):
		return tea.Quit
	case key.Matches(msg, MapKeys.Help):
		a.state = ViewHelp
	case key.Matches(msg, MapKeys.Search):
		a.state = ViewSearch
		return a.search.Focus()
	case key.Matches(msg, MapKeys.Placement):
		if a.eng.TogglePlacement() {
			a.status.SetMessage("Placement on: click the map to place a pin", false)
		} else {
			a.status.SetMessage("Placement off", false)
		}
	case key.Matches(msg, MapKeys.TogglePin):
		if a.eng.TogglePins() {
			a.status.SetMessage("Pins shown", false)
		} else {
			a.panel.Load()
			a.status.SetMessage("Pins hidden", false)
		}
	case key.Matches(msg, MapKeys.Reload):
		return a.reload()
	case key.Matches(msg, MapKeys.Up):
		a.eng.SetView(vp.Pan(0, -vp.Height/4), a.eng.Zoom())
	case key.Matches(msg, MapKeys.Down):
		a.eng.SetView(vp.Pan(0, vp.Height/4), a.eng.Zoom())
	case key.Matches(msg, MapKeys.Left):
		a.eng.SetView(vp.Pan(-vp.Width/4, 0), a.eng.Zoom())
	case key.Matches(msg, MapKeys.Right):
		a.eng.SetView(vp.Pan(vp.Width/4, 0), a.eng.Zoom())
	case key.Matches(msg, MapKeys.ZoomIn):
		a.eng.SetView(a.eng.Center(), a.eng.Zoom()+1)
	case key.Matches(msg, MapKeys.ZoomOut):
		a.eng.SetView(a.eng.Center(), a.eng.Zoom()-1)
	case key.Matches(msg, MapKeys.SignOut):
		s := a.session
		return func() tea.Msg { return signedOutMsg{err: s.SignOut()} }
	case key.Matches(msg, MapKeys.Cancel):
		a.status.ClearMessage()
	}
	return nil
}

// handleMouse routes presses to the panel, a marker, or the map.
// Drag motion is tracked across the whole screen.
func (a *App) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y-mapTop

	switch msg.Action {
	case tea.MouseActionMotion:
		if pos, ok := a.eng.Drag().PointerMove(x, y); ok {
			a.eng.Panel().SetPosition(pos)
		}
		return
	case tea.MouseActionRelease:
		a.eng.Drag().PointerUp()
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.eng.SetView(a.eng.Center(), a.eng.Zoom()+1)
		return
	case tea.MouseButtonWheelDown:
		a.eng.SetView(a.eng.Center(), a.eng.Zoom()-1)
		return
	case tea.MouseButtonLeft:
	default:
		return
	}
	if y < 0 || y >= a.mapHeight() || x < 0 || x >= a.width {
		return
	}
	// A press during a drag means the release was lost; end the drag.
	if a.eng.Drag().Active() {
		a.eng.Drag().PointerUp()
		return
	}

	layout := a.panel.Layout()
	if a.eng.Panel().IsOpen() && layout.Contains(x, y) {
		if layout.OnClose(x, y) {
			a.eng.ClosePanel()
			a.panel.Load()
			return
		}
		a.eng.Drag().PointerDown(layout.OnHandle(x, y), x, y, engine.Position{X: layout.X, Y: layout.Y})
		return
	}

	if a.canvas != nil {
		if id, ok := a.canvas.PinAt(x, y); ok {
			if err := a.eng.MarkerClick(id); err != nil {
				a.status.SetError(err)
				return
			}
			a.panel.Load()
			return
		}
	}

	c := a.viewport().Unproject(x, y)
	if err := a.eng.MapClick(c.Lat, c.Lng); err != nil {
		a.status.SetError(err)
		return
	}
	a.confirm.SetTarget(c)
	a.state = ViewConfirm
}

func (a *App) openEditor() tea.Cmd {
	pin, ok := a.eng.ActivePin()
	if !ok || a.editor == nil {
		return nil
	}
	path, err := editor.WriteScratch(a.eng.Edits().DisplayDescription(pin))
	if err != nil {
		a.status.SetError(err)
		return nil
	}
	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{pinID: pin.ID, path: path, err: err}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{pinID: pin.ID, path: path, err: err}
	})
}

func (a *App) mapHeight() int {
	return max(a.height-mapTop-2, 0)
}

func (a *App) viewport() views.Viewport {
	return views.Viewport{
		Center: a.eng.Center(),
		Zoom:   a.eng.Zoom(),
		Width:  a.width,
		Height: a.mapHeight(),
	}
}

// View renders the current view
func (a *App) View() string {
	if a.state == ViewHelp {
		return a.help.View()
	}
	if a.width == 0 {
		return "Loading..."
	}

	var pending *domain.Coordinate
	if p, ok := a.eng.PendingPlacement(); ok {
		pending = &p
	}
	canvas := views.NewCanvas(a.viewport(), a.eng.Markers(), pending)

	if a.eng.Panel().IsOpen() {
		box := a.panel.View(a.eng.Panel().Position())
		l := a.panel.Layout()
		x := min(max(l.X, 0), max(a.width-l.W, 0))
		y := min(max(l.Y, 0), max(a.mapHeight()-l.H, 0))
		a.panel.Place(x, y)
		canvas.Overlay(box, x, y)
	}
	if a.state == ViewSearch {
		if results := a.search.ResultsView(); results != "" {
			canvas.Overlay(results, 2, 0)
		}
	}
	a.canvas = canvas

	var b strings.Builder
	b.WriteString(a.search.View())
	b.WriteString("\n")
	b.WriteString(canvas.String())
	b.WriteString("\n")
	b.WriteString(a.statusBar())
	b.WriteString("\n")
	if a.state == ViewConfirm {
		b.WriteString(a.confirm.View())
	} else {
		b.WriteString(views.RenderMessage(a.status.Message, a.status.MessageErr))
	}
	return b.String()
}

func (a *App) statusBar() string {
	placement := styles.StatusKey.Render("place: off")
	if a.eng.PlacementMode() {
		placement = styles.StatusOn.Render("place: on")
	}
	pins := fmt.Sprintf("%d pins", len(a.eng.Pins()))
	if !a.eng.PinsVisible() {
		pins += " (hidden)"
	}
	c := a.eng.Center()
	info := styles.StatusText.Render(fmt.Sprintf("%s · z%d · %.4f, %.4f", pins, a.eng.Zoom(), c.Lat, c.Lng))
	hint := views.RenderHelpLine(MapKeys.Search, MapKeys.Placement, MapKeys.Help)
	return styles.StatusBar.Width(a.width).Render(placement + info + "  " + hint)
}
