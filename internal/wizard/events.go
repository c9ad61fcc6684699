package wizard

import (
	"context"
	"fmt"
)

// EventKind names the input events the presentation layer can deliver.
type EventKind string

const (
	EventConnectWallet EventKind = "connect_wallet"
	EventFieldEdit     EventKind = "field_edit"
	EventAdvance       EventKind = "advance"
	EventBack          EventKind = "back"
)

// Event is a single user action.
type Event struct {
	Kind  EventKind
	Field Field
	Value string
}

// ConnectWalletEvent builds an EventConnectWallet.
func ConnectWalletEvent() Event { return Event{Kind: EventConnectWallet} }

// FieldEditEvent builds an EventFieldEdit.
func FieldEditEvent(field Field, value string) Event {
	return Event{Kind: EventFieldEdit, Field: field, Value: value}
}

// AdvanceEvent builds an EventAdvance.
func AdvanceEvent() Event { return Event{Kind: EventAdvance} }

// BackEvent builds an EventBack.
func BackEvent() Event { return Event{Kind: EventBack} }

// Apply dispatches ev to the matching operation.
func (c *Controller) Apply(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case EventConnectWallet:
		return c.ConnectWallet(ctx)
	case EventFieldEdit:
		return c.editField(ev.Field, ev.Value)
	case EventAdvance:
		return c.Advance(ctx)
	case EventBack:
		c.Back()
		return nil
	default:
		return fmt.Errorf("wizard: unknown event %q", ev.Kind)
	}
}

func (c *Controller) editField(field Field, value string) error {
	switch field {
	case FieldProofArtifact:
		if c.session.Stage != StageUpload {
			return ErrStageMismatch
		}
		if value == "" {
			return c.SetProofArtifact(nil)
		}
		a, err := c.resolver(value)
		if err != nil {
			// a failed path must not leave an earlier package in place
			_ = c.SetProofArtifact(nil)
			return fmt.Errorf("wizard: resolve proof artifact: %w", err)
		}
		return c.SetProofArtifact(a)
	case FieldContractAddress:
		return c.SetContractAddress(value)
	case FieldExploitType:
		return c.SetExploitType(value)
	default:
		return fmt.Errorf("wizard: unknown field %q", field)
	}
}
