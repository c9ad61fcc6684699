package wizard

import "fmt"

// Stage is one step of the submission flow.
type Stage int

const (
	StageConnect Stage = iota
	StageUpload
	StageReview
	StageConfirm
)

// Stages lists every stage in flow order.
var Stages = []Stage{StageConnect, StageUpload, StageReview, StageConfirm}

// String returns the short machine name of the stage.
func (s Stage) String() string {
	switch s {
	case StageConnect:
		return "connect"
	case StageUpload:
		return "upload"
	case StageReview:
		return "review"
	case StageConfirm:
		return "confirm"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Title returns the heading shown for the stage.
func (s Stage) Title() string {
	switch s {
	case StageConnect:
		return "Connect Wallet"
	case StageUpload:
		return "Upload ZK Proof"
	case StageReview:
		return "Validate & Review"
	case StageConfirm:
		return "Submit to Registry"
	default:
		return s.String()
	}
}

// Valid reports whether s is one of the four known stages.
func (s Stage) Valid() bool {
	return s >= StageConnect && s <= StageConfirm
}

// Number is the 1-based position used in progress displays.
func (s Stage) Number() int {
	return int(s) + 1
}

// Next returns the following stage; Confirm is terminal.
func (s Stage) Next() Stage {
	if s >= StageConfirm {
		return StageConfirm
	}
	return s + 1
}

// Prev returns the preceding stage; Connect is initial.
func (s Stage) Prev() Stage {
	if s <= StageConnect {
		return StageConnect
	}
	return s - 1
}

// IsTerminal reports whether the flow has finished.
func (s Stage) IsTerminal() bool {
	return s == StageConfirm
}

// MarshalYAML renders the stage by name.
func (s Stage) MarshalYAML() (any, error) {
	return s.String(), nil
}
