// Package script replays a recorded list of wizard input events without a
// terminal, e.g.
//
//	events:
//	  - connect_wallet
//	  - field_edit: {field: contractAddress, value: 5Grw...}
//	  - advance
//
// Validation failures are recorded against the step and the replay carries
// on, the same way a user would fix the form and press next again.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/polkaguard/internal/wizard"
)

// Script is a parsed replay file.
type Script struct {
	StopOnError bool   `yaml:"stop_on_error"`
	Events      []Step `yaml:"events"`
}

// Step wraps one wizard event.
type Step struct {
	Event wizard.Event
}

type fieldEdit struct {
	Field string `yaml:"field"`
	Value string `yaml:"value"`
}

// UnmarshalYAML accepts either a bare event name or a single-key mapping.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return s.fromKind(node.Value, nil)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: event must have exactly one key", node.Line)
		}
		return s.fromKind(node.Content[0].Value, node.Content[1])
	default:
		return fmt.Errorf("line %d: unsupported event shape", node.Line)
	}
}

func (s *Step) fromKind(kind string, body *yaml.Node) error {
	switch wizard.EventKind(strings.TrimSpace(kind)) {
	case wizard.EventConnectWallet:
		s.Event = wizard.ConnectWalletEvent()
	case wizard.EventAdvance:
		s.Event = wizard.AdvanceEvent()
	case wizard.EventBack:
		s.Event = wizard.BackEvent()
	case wizard.EventFieldEdit:
		if body == nil {
			return fmt.Errorf("field_edit requires field and value")
		}
		var edit fieldEdit
		if err := body.Decode(&edit); err != nil {
			return fmt.Errorf("line %d: %w", body.Line, err)
		}
		field, err := wizard.ParseField(edit.Field)
		if err != nil {
			return fmt.Errorf("line %d: %w", body.Line, err)
		}
		s.Event = wizard.FieldEditEvent(field, edit.Value)
	default:
		return fmt.Errorf("unknown event %q", kind)
	}
	return nil
}

// Parse decodes a replay script.
func Parse(data []byte) (Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Script{}, fmt.Errorf("script: parse: %w", err)
	}
	if len(sc.Events) == 0 {
		return Script{}, fmt.Errorf("script: no events")
	}
	return sc, nil
}

// Load reads and parses the replay file at path.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Parse(data)
}

// StepResult records what happened for one event.
type StepResult struct {
	Index   int            `yaml:"index"`
	Event   string         `yaml:"event"`
	Stage   wizard.Stage   `yaml:"stage"`
	Error   string         `yaml:"error,omitempty"`
	Missing []wizard.Field `yaml:"missing,omitempty"`
}

// Report is the outcome of a replay.
type Report struct {
	Steps []StepResult `yaml:"steps"`
	Final wizard.View  `yaml:"final"`
}

// Failed reports whether any step returned an error.
func (r Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Error != "" {
			return true
		}
	}
	return false
}

// Run applies every event in order to c.
func Run(ctx context.Context, c *wizard.Controller, sc Script) (Report, error) {
	var report Report
	for i, step := range sc.Events {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		err := c.Apply(ctx, step.Event)
		res := StepResult{Index: i, Event: describe(step.Event), Stage: c.Stage()}
		if err != nil {
			res.Error = err.Error()
			var verr *wizard.ValidationError
			if errors.As(err, &verr) {
				res.Missing = verr.Missing
			}
		}
		report.Steps = append(report.Steps, res)
		if err != nil && sc.StopOnError {
			break
		}
	}
	report.Final = c.View()
	return report, nil
}

func describe(ev wizard.Event) string {
	if ev.Kind == wizard.EventFieldEdit {
		return fmt.Sprintf("%s %s=%q", ev.Kind, ev.Field, ev.Value)
	}
	return string(ev.Kind)
}
