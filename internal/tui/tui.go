// Package tui provides a Bubble Tea terminal user interface for adding
// albums to the catalog page.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/consumethetangible/music-2025/internal/admin"
	"github.com/consumethetangible/music-2025/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// Workflow is the part of the request surface the add flow uses.
type Workflow interface {
	Genres() []model.Section
	Scrape(ctx context.Context, url string) (model.AlbumInfo, error)
	DownloadArtwork(ctx context.Context, url, artist, album string) (model.Artwork, error)
	AddEntry(ctx context.Context, key string, entry model.Entry) (model.Entry, error)
}

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScraping
	StateGenre
	StateAdding
	StateComplete
	StateError
)

// the add flow has three steps: scrape, artwork, add
const totalSteps = 3

var errCancelled = errors.New("cancelled by user")

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   admin.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	logs      []LogEntry
	err       error

	workflow Workflow
	events   <-chan admin.ProgressEvent
	genres   []model.Section
	cursor   int

	ctx    context.Context
	cancel context.CancelFunc

	info    model.AlbumInfo
	artwork model.Artwork
	added   model.Entry
	steps   int

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. events may be nil; when set, the
// progress events sent on it are shown in the log pane.
func NewModel(wf Workflow, events <-chan admin.ProgressEvent) Model {
	ti := textinput.New()
	ti.Placeholder = "https://artist.bandcamp.com/album/name"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		workflow:  wf,
		events:    events,
		genres:    wf.Genres(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.waitForEvent())
}

// Message types
type (
	// ProgressMsg carries a progress event from the workflow.
	ProgressMsg struct {
		Event admin.ProgressEvent
	}

	// ScrapeDoneMsg is sent when the album page has been scraped.
	ScrapeDoneMsg struct {
		Info model.AlbumInfo
		Err  error
	}

	// ArtworkDoneMsg is sent when the artwork files have been written.
	ArtworkDoneMsg struct {
		Artwork model.Artwork
		Err     error
	}

	// AddDoneMsg is sent when the entry has been added to the page.
	AddDoneMsg struct {
		Entry model.Entry
		Err   error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StateGenre:
				m.state = StateInput
				m.textInput.Focus()
				return m, nil
			case StateScraping, StateAdding:
				m.cancel()
				m.fail(errCancelled)
			}

		case "tab":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "up", "k":
			if m.state == StateGenre && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.state == StateGenre && m.cursor < len(m.genres)-1 {
				m.cursor++
			}

		case "enter":
			switch {
			case m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "":
				m.state = StateScraping
				m.steps = 0
				return m, tea.Batch(m.scrape(strings.TrimSpace(m.textInput.Value())), m.spinner.Tick, m.progress.SetPercent(0))
			case m.state == StateGenre && len(m.genres) > 0:
				m.state = StateAdding
				return m, tea.Batch(m.downloadArtwork(), m.spinner.Tick)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		if msg.Event.Level == admin.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case ScrapeDoneMsg:
		if m.state != StateScraping {
			break
		}
		if msg.Err != nil {
			m.fail(msg.Err)
			break
		}
		m.info = msg.Info
		m.state = StateGenre
		m.textInput.Blur()
		cmds = append(cmds, m.step())

	case ArtworkDoneMsg:
		if m.state != StateAdding {
			break
		}
		if msg.Err != nil {
			m.fail(msg.Err)
			break
		}
		m.artwork = msg.Artwork
		cmds = append(cmds, m.step(), m.addEntry())

	case AddDoneMsg:
		if m.state != StateAdding {
			break
		}
		if msg.Err != nil {
			m.fail(msg.Err)
			break
		}
		m.added = msg.Entry
		m.state = StateComplete
		cmds = append(cmds, m.step())

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) fail(err error) {
	if m.ctx.Err() != nil {
		err = errCancelled
	}
	m.state = StateError
	m.err = err
}

func (m *Model) step() tea.Cmd {
	m.steps++
	return m.progress.SetPercent(float64(m.steps) / totalSteps)
}

func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.info = model.AlbumInfo{}
	m.artwork = model.Artwork{}
	m.added = model.Entry{}
	m.steps = 0
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
}

// SelectedGenre returns the genre under the cursor.
func (m Model) SelectedGenre() model.Section {
	if len(m.genres) == 0 {
		return model.Section{}
	}
	return m.genres[m.cursor]
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Err returns the error shown in StateError.
func (m Model) Err() error {
	return m.err
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ Catalog"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Add Bandcamp albums to the collection page"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScraping:
		b.WriteString(m.viewWorking("Fetching album info..."))
	case StateGenre:
		b.WriteString(m.viewGenre())
	case StateAdding:
		b.WriteString(m.viewWorking("Downloading artwork and adding album..."))
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter Bandcamp URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (tab)\n", verboseCheck))

	return b.String()
}

func (m Model) viewWorking(label string) string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("\n\n")
	if m.info.Artist != "" {
		b.WriteString(albumStyle.Render(fmt.Sprintf("  ♪ %s - %s", m.info.Artist, m.info.Album)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.progress.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewGenre() string {
	var b strings.Builder

	b.WriteString(successStyle.Render("Found:"))
	b.WriteString("\n")
	b.WriteString(albumStyle.Render(fmt.Sprintf("  ♪ %s - %s", m.info.Artist, m.info.Album)))
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Choose a section:"))
	b.WriteString("\n")
	for i, g := range m.genres {
		cursor := "  "
		line := fmt.Sprintf("%s (%s)", g.Name, g.Key)
		if i == m.cursor {
			cursor = "› "
			line = infoStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	return b.String()
}

func (m Model) viewComplete() string {
	box := boxStyle.Render(fmt.Sprintf(
		"✨ Album added!\n\n"+
			"%s - %s\n"+
			"Section: %s\n"+
			"Artwork: %s, %s",
		m.added.Artist,
		m.added.Album,
		m.SelectedGenre().Name,
		m.added.Artwork.JPEG,
		m.added.Artwork.WebP,
	))
	return box + "\n\n" + m.renderLogs()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case admin.LevelError:
			style = errorStyle
			prefix = "✗"
		case admin.LevelWarning:
			style = warningStyle
			prefix = "!"
		case admin.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case admin.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: fetch • tab: verbose • esc: quit"
	case StateGenre:
		return "↑/↓: choose • enter: add • esc: back"
	case StateScraping, StateAdding:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: add another • q: quit"
	}
	return ""
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

func (m Model) scrape(url string) tea.Cmd {
	ctx, wf := m.ctx, m.workflow
	return func() tea.Msg {
		info, err := wf.Scrape(ctx, url)
		return ScrapeDoneMsg{Info: info, Err: err}
	}
}

func (m Model) downloadArtwork() tea.Cmd {
	ctx, wf, info := m.ctx, m.workflow, m.info
	return func() tea.Msg {
		art, err := wf.DownloadArtwork(ctx, info.ArtworkURL, info.Artist, info.Album)
		return ArtworkDoneMsg{Artwork: art, Err: err}
	}
}

func (m Model) addEntry() tea.Cmd {
	ctx, wf, info, art, key := m.ctx, m.workflow, m.info, m.artwork, m.SelectedGenre().Key
	return func() tea.Msg {
		entry, err := wf.AddEntry(ctx, key, model.Entry{
			Artist:  info.Artist,
			Album:   info.Album,
			Link:    info.URL,
			Artwork: art,
		})
		return AddDoneMsg{Entry: entry, Err: err}
	}
}

// Run starts the TUI application.
func Run(wf Workflow, events <-chan admin.ProgressEvent) error {
	p := tea.NewProgram(NewModel(wf, events), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
