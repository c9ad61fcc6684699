// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for PolkaGuard.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/polkaguard/internal/app"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMainMenu appState = iota // Main menu with "Submit Proof", etc.
	stateWizard                   // Walking through the submission wizard
)

const logPanelLines = 6

const (
	menuSubmitProof = "Submit ZK Proof"
	menuCouncil     = "View PolkaGuard Council"
	menuExit        = "Exit"
)

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state  appState
	deps   *app.App
	wizard *wizardView

	// UI components
	mainMenu      list.Model
	statusMsg     string
	lastLogStatus string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance around already wired dependencies.
func NewApp(deps *app.App) *App {
	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "⬡ POLKAGUARD"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	a := &App{
		state:    stateMainMenu,
		deps:     deps,
		mainMenu: mainMenu,
	}
	a.logInfo("Session opened · project %s", deps.Config.ProjectDir)
	return a
}

func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: menuSubmitProof, desc: "Upload a zero-knowledge proof for community review"},
		menuItem{title: menuCouncil, desc: "Browse proposals awaiting DAO review"},
		menuItem{title: menuExit, desc: "Quit PolkaGuard"},
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.deps == nil || a.deps.Logbook == nil {
		return
	}
	a.deps.Logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.deps == nil || a.deps.Logbook == nil {
		return
	}
	a.deps.Logbook.Warn(format, args...)
}

func (a *App) logProgress(status string) {
	status = strings.TrimSpace(status)
	if status == "" || status == a.lastLogStatus {
		return
	}
	a.lastLogStatus = status
	a.logInfo(status)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case wizardFinishedMsg:
		return a.handleWizardFinished(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateMainMenu {
				return a, tea.Quit
			}
		case "esc":
			if a.state != stateMainMenu {
				a.logWarn("Wizard · abandoned at %s", a.wizard.ctrl.Stage())
				return a.returnToMainMenu("Submission discarded")
			}
		case "enter":
			if a.state == stateMainMenu {
				return a.handleMainMenuSelection()
			}
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case stateMainMenu:
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	case stateWizard:
		if a.wizard != nil {
			cmd = a.wizard.Update(msg)
		}
	}
	return a, cmd
}

// handleMainMenuSelection processes menu item selection
func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}

	switch item.title {
	case menuSubmitProof:
		a.logInfo("Menu · Submit ZK Proof selected")
		return a.startWizard()

	case menuCouncil:
		a.logInfo("Menu · Council selected")
		a.statusMsg = fmt.Sprintf("Council view (%s) is not part of this terminal yet", a.deps.Config.CouncilView())
		return a, nil

	case menuExit:
		a.logInfo("Menu · Exit selected")
		return a, tea.Quit
	}

	return a, nil
}

// startWizard opens a fresh submission session.
func (a *App) startWizard() (tea.Model, tea.Cmd) {
	a.state = stateWizard
	a.wizard = newWizardView(a, a.deps.NewWizard())
	a.statusMsg = "Connect your wallet to begin"
	return a, a.wizard.Init()
}

func (a *App) handleWizardFinished(msg wizardFinishedMsg) (tea.Model, tea.Cmd) {
	a.logInfo("Wizard · %s done, directing to %s", msg.SubmissionID, msg.NextHint)
	return a.returnToMainMenu(fmt.Sprintf("Proof %s registered · continue in the council (%s)", msg.SubmissionID, msg.NextHint))
}

// returnToMainMenu transitions back to the main menu, discarding the session.
func (a *App) returnToMainMenu(status string) (tea.Model, tea.Cmd) {
	a.state = stateMainMenu
	a.wizard = nil
	a.statusMsg = status
	a.logProgress("Returned to main menu")
	return a, nil
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	var content string
	switch a.state {
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateWizard:
		if a.wizard != nil {
			content = a.wizard.View()
		}
	}
	return a.renderBoard(content, width-4)
}

func (a *App) renderBoard(mainContent string, width int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#E6007A")).
		MarginBottom(1).
		Render("⬡ POLKAGUARD · zero-knowledge audit registry")
	if strings.TrimSpace(mainContent) == "" {
		mainContent = "Ready to submit a proof."
	}
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, width)).
		Render(mainContent)
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	if a.deps == nil || a.deps.Logbook == nil {
		return ""
	}
	lines, total := a.deps.Logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.deps.Logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s (%d)", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
