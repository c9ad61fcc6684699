package wizard

// StepState is how a stage appears in the progress header.
type StepState string

const (
	StepDone    StepState = "done"
	StepCurrent StepState = "current"
	StepPending StepState = "pending"
)

// Step is one entry of the progress header.
type Step struct {
	Stage Stage     `yaml:"stage"`
	Title string    `yaml:"title"`
	State StepState `yaml:"state"`
}

// View is the read-only projection handed to the presentation layer.
type View struct {
	SessionID       string     `yaml:"session_id"`
	Stage           Stage      `yaml:"stage"`
	Title           string     `yaml:"title"`
	Steps           []Step     `yaml:"steps"`
	WalletConnected bool       `yaml:"wallet_connected"`
	Account         string     `yaml:"account,omitempty"`
	Submission      Submission `yaml:"submission"`
	SubmissionID    string     `yaml:"submission_id,omitempty"`
	CanGoBack       bool       `yaml:"can_go_back"`
	CanGoForward    bool       `yaml:"can_go_forward"`
	Missing         []Field    `yaml:"missing,omitempty"`
	NextHint        string     `yaml:"next_hint,omitempty"`
}

// View projects the session. It never mutates the controller.
func (c *Controller) View() View {
	s := c.session
	v := View{
		SessionID:       s.ID,
		Stage:           s.Stage,
		Title:           s.Stage.Title(),
		Steps:           make([]Step, 0, len(Stages)),
		WalletConnected: s.WalletConnected,
		Account:         s.Account,
		Submission:      s.Submission.clone(),
		SubmissionID:    s.SubmissionID,
		CanGoBack:       c.canGoBack(),
		CanGoForward:    c.CanAdvance(),
	}
	for _, stage := range Stages {
		state := StepPending
		switch {
		case stage < s.Stage:
			state = StepDone
		case stage == s.Stage:
			state = StepCurrent
		}
		v.Steps = append(v.Steps, Step{Stage: stage, Title: stage.Title(), State: state})
	}
	if s.Stage == StageUpload {
		v.Missing = s.Submission.Missing()
	}
	if s.Stage.IsTerminal() {
		v.NextHint = c.nextHint
	}
	return v
}
