package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/polkaguard/internal/address"
	"github.com/kingrea/polkaguard/internal/wizard"
)

var (
	stepStyleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6007A")).Bold(true)
	stepStyleCurrent = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6007A")).Underline(true)
	stepStylePending = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	titleStyle       = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	okStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	idStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6007A")).Bold(true)
	noticeStyleOK    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#4CAF50")).Padding(0, 1)
	noticeStyleError = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#FF6B6B")).Padding(0, 1)
)

// input slots on the upload stage, in tab order
const (
	inputProof = iota
	inputContract
	inputExploit
	inputCount
)

var inputFields = [inputCount]wizard.Field{
	wizard.FieldProofArtifact,
	wizard.FieldContractAddress,
	wizard.FieldExploitType,
}

type wizardFinishedMsg struct {
	SubmissionID string
	NextHint     string
}

type notice struct {
	title string
	body  string
	err   bool
}

type wizardKeyMap struct {
	Next key.Binding
	Back key.Binding
	Tab  key.Binding
	Quit key.Binding
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Back, k.Tab, k.Quit}
}

func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newWizardKeyMap() wizardKeyMap {
	return wizardKeyMap{
		Next: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		Back: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "previous")),
		Tab:  key.NewBinding(key.WithKeys("tab", "shift+tab", "down", "up"), key.WithHelp("tab", "switch field")),
		Quit: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
	}
}

type wizardView struct {
	app    *App
	ctrl   *wizard.Controller
	inputs [inputCount]textinput.Model
	focus  int
	keys   wizardKeyMap
	help   help.Model
	notice *notice

	// proof path last handed to the controller
	resolvedProof string
	now           func() time.Time
}

func newWizardView(a *App, ctrl *wizard.Controller) *wizardView {
	v := &wizardView{
		app:  a,
		ctrl: ctrl,
		keys: newWizardKeyMap(),
		help: help.New(),
		now:  time.Now,
	}
	placeholders := [inputCount]string{
		"./proof.json or ./proof.zip",
		"5D34dL5prEUaGNQtPiwd9u9NiPL5xDjql...",
		"e.g., Reentrancy, Integer Overflow",
	}
	for i := range v.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = "› "
		in.CharLimit = 256
		in.Width = 56
		v.inputs[i] = in
	}
	v.syncKeys()
	return v
}

func (v *wizardView) Init() tea.Cmd {
	return nil
}

func (v *wizardView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if v.ctrl.Stage() == wizard.StageUpload {
			return v.updateFocusedInput(msg)
		}
		return nil
	}
	switch {
	case key.Matches(keyMsg, v.keys.Next):
		return v.advance()
	case key.Matches(keyMsg, v.keys.Back):
		return v.back()
	case key.Matches(keyMsg, v.keys.Tab) && v.ctrl.Stage() == wizard.StageUpload:
		step := 1
		if s := keyMsg.String(); s == "shift+tab" || s == "up" {
			step = inputCount - 1
		}
		return v.focusInput((v.focus + step) % inputCount)
	}
	if v.ctrl.Stage() == wizard.StageUpload {
		return v.updateFocusedInput(msg)
	}
	return nil
}

func (v *wizardView) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	switch v.focus {
	case inputContract:
		_ = v.ctrl.SetContractAddress(v.inputs[inputContract].Value())
	case inputExploit:
		_ = v.ctrl.SetExploitType(v.inputs[inputExploit].Value())
	}
	v.syncKeys()
	return cmd
}

func (v *wizardView) focusInput(idx int) tea.Cmd {
	if v.focus == inputProof && idx != inputProof {
		v.resolveProof()
	}
	v.inputs[v.focus].Blur()
	v.focus = idx
	v.syncKeys()
	return v.inputs[v.focus].Focus()
}

// resolveProof hands the typed path to the controller once per distinct value.
func (v *wizardView) resolveProof() {
	path := strings.TrimSpace(v.inputs[inputProof].Value())
	if path == v.resolvedProof {
		return
	}
	v.resolvedProof = path
	err := v.ctrl.Apply(context.Background(), wizard.FieldEditEvent(wizard.FieldProofArtifact, path))
	if err != nil {
		v.notice = &notice{title: "Proof package unavailable", body: err.Error(), err: true}
		return
	}
	v.notice = nil
}

func (v *wizardView) advance() tea.Cmd {
	ctx := context.Background()
	switch v.ctrl.Stage() {
	case wizard.StageConnect:
		if err := v.ctrl.ConnectWallet(ctx); err != nil {
			v.notice = &notice{title: "Wallet Unavailable", body: err.Error(), err: true}
			return nil
		}
		v.notice = &notice{title: "Wallet Connected", body: "Successfully connected to Polkadot.js"}
		v.app.statusMsg = "Upload your proof package"
		v.syncKeys()
		return v.focusInput(v.focus)
	case wizard.StageUpload:
		v.resolveProof()
		if err := v.ctrl.AdvanceFromUpload(); err != nil {
			v.reportAdvanceError(err)
			return nil
		}
		v.notice = nil
		v.inputs[v.focus].Blur()
		v.app.statusMsg = "Review the information before submitting"
	case wizard.StageReview:
		if err := v.ctrl.AdvanceFromReview(ctx); err != nil {
			v.notice = &notice{title: "Submission Failed", body: err.Error(), err: true}
			return nil
		}
		v.notice = &notice{title: "Proof Submitted", body: "Your ZK proof has been registered successfully"}
		v.app.statusMsg = "Proof registered"
	case wizard.StageConfirm:
		view := v.ctrl.View()
		return func() tea.Msg {
			return wizardFinishedMsg{SubmissionID: view.SubmissionID, NextHint: view.NextHint}
		}
	}
	v.syncKeys()
	return nil
}

func (v *wizardView) reportAdvanceError(err error) {
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		names := make([]string, len(verr.Missing))
		for i, f := range verr.Missing {
			names[i] = f.Label()
		}
		v.notice = &notice{
			title: "Missing Information",
			body:  "Please fill in all required fields: " + strings.Join(names, ", "),
			err:   true,
		}
		v.app.logWarn("Upload · validation failed (%s)", strings.Join(names, ", "))
		return
	}
	v.notice = &notice{title: "Cannot continue", body: err.Error(), err: true}
}

func (v *wizardView) back() tea.Cmd {
	if v.ctrl.Stage() == wizard.StageUpload {
		v.resolveProof()
		v.inputs[v.focus].Blur()
	}
	if !v.ctrl.Back() {
		return nil
	}
	v.notice = nil
	v.syncKeys()
	if v.ctrl.Stage() == wizard.StageUpload {
		return v.inputs[v.focus].Focus()
	}
	return nil
}

func (v *wizardView) syncKeys() {
	view := v.ctrl.View()
	v.keys.Back.SetEnabled(view.CanGoBack)
	v.keys.Tab.SetEnabled(view.Stage == wizard.StageUpload)
	switch view.Stage {
	case wizard.StageConnect:
		if view.WalletConnected {
			v.keys.Next.SetHelp("enter", "next")
		} else {
			v.keys.Next.SetHelp("enter", "connect Polkadot.js")
		}
	case wizard.StageUpload:
		v.keys.Next.SetHelp("enter", "validate proof")
	case wizard.StageReview:
		v.keys.Next.SetHelp("enter", "submit to registry")
	case wizard.StageConfirm:
		v.keys.Next.SetHelp("enter", "view in PolkaGuard Council")
	}
}

func (v *wizardView) View() string {
	view := v.ctrl.View()
	sections := []string{
		renderSteps(view.Steps),
		"",
		titleStyle.Render(view.Title),
	}
	switch view.Stage {
	case wizard.StageConnect:
		sections = append(sections, v.renderConnect(view))
	case wizard.StageUpload:
		sections = append(sections, v.renderUpload(view))
	case wizard.StageReview:
		sections = append(sections, v.renderReview(view))
	case wizard.StageConfirm:
		sections = append(sections, v.renderConfirm(view))
	}
	if v.notice != nil {
		style := noticeStyleOK
		if v.notice.err {
			style = noticeStyleError
		}
		sections = append(sections, "", style.Render(fmt.Sprintf("%s\n%s", v.notice.title, v.notice.body)))
	}
	sections = append(sections, "", v.help.View(v.keys))
	return strings.Join(sections, "\n")
}

func renderSteps(steps []wizard.Step) string {
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		label := fmt.Sprintf("%d %s", step.Stage.Number(), step.Title)
		switch step.State {
		case wizard.StepDone:
			parts = append(parts, stepStyleDone.Render("✓ "+label))
		case wizard.StepCurrent:
			parts = append(parts, stepStyleCurrent.Render("● "+label))
		default:
			parts = append(parts, stepStylePending.Render("○ "+label))
		}
	}
	return strings.Join(parts, stepStylePending.Render(" ── "))
}

func (v *wizardView) renderConnect(view wizard.View) string {
	lines := []string{
		"Connect Your Polkadot Wallet",
		labelStyle.Render("Connect your Polkadot.js wallet to submit zero-knowledge proofs"),
		"",
	}
	if view.WalletConnected {
		lines = append(lines, okStyle.Render("✓ Wallet Connected: "+view.Account))
	} else {
		lines = append(lines, "Press enter to connect Polkadot.js")
	}
	return strings.Join(lines, "\n")
}

func (v *wizardView) renderUpload(view wizard.View) string {
	limits := v.app.deps.Config.Artifact()
	proofLabel := fmt.Sprintf("ZK Proof Package (%s, up to %s)",
		strings.ToUpper(strings.ReplaceAll(strings.Join(limits.Extensions, ", "), ".", "")),
		humanBytes(limits.MaxBytes))
	lines := []string{
		labelStyle.Render(proofLabel),
		v.inputs[inputProof].View(),
	}
	if a := view.Submission.Artifact; a != nil {
		lines = append(lines, okStyle.Render(fmt.Sprintf("✓ %s", a.Name)))
	}
	lines = append(lines,
		"",
		labelStyle.Render("Contract Address"),
		v.inputs[inputContract].View(),
		"",
		labelStyle.Render("Exploit Type"),
		v.inputs[inputExploit].View(),
	)
	if len(view.Missing) > 0 {
		names := make([]string, len(view.Missing))
		for i, f := range view.Missing {
			names[i] = f.Label()
		}
		lines = append(lines, "", labelStyle.Render("Still needed: "+strings.Join(names, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (v *wizardView) renderReview(view wizard.View) string {
	sub := view.Submission
	size := "-"
	if sub.Artifact != nil {
		size = sub.Artifact.SizeLabel()
	}
	addrInfo := address.Inspect(sub.ContractAddress)
	rows := [][2]string{
		{"Contract", fmt.Sprintf("%s (%s)", sub.ContractAddress, addrInfo.Label())},
		{"Exploit Type", sub.ExploitType},
		{"Timestamp", v.now().Format("2006-01-02 15:04:05")},
		{"Proof Size", size},
	}
	lines := []string{okStyle.Render("✓ Proof Validation Results")}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-13s", row[0]+":")), row[1]))
	}
	lines = append(lines, "", labelStyle.Render("Review the information above before submitting to the registry"))
	return strings.Join(lines, "\n")
}

func (v *wizardView) renderConfirm(view wizard.View) string {
	lines := []string{
		okStyle.Render("✓ Proof Successfully Registered!"),
		"Your zero-knowledge proof has been submitted to the registry and is now available for DAO review.",
		"",
		labelStyle.Render("Proof ID:"),
		idStyle.Render(view.SubmissionID),
	}
	if view.NextHint != "" {
		lines = append(lines, "", labelStyle.Render("Next: PolkaGuard Council "+view.NextHint))
	}
	return strings.Join(lines, "\n")
}

func humanBytes(n int64) string {
	switch {
	case n <= 0:
		return "any size"
	case n >= 1<<20:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
