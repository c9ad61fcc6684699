package wizard

import (
	"context"
	"time"

	"github.com/kingrea/polkaguard/internal/artifact"
)

// WalletConnector performs the wallet handshake for the Connect stage and
// returns the account label to display.
type WalletConnector interface {
	Connect(ctx context.Context) (account string, err error)
}

// Receipt is what gets handed to the registry when Confirm is entered.
type Receipt struct {
	SessionID    string     `yaml:"session_id"`
	SubmissionID string     `yaml:"submission_id"`
	Account      string     `yaml:"account"`
	Submission   Submission `yaml:"submission"`
	SubmittedAt  time.Time  `yaml:"submitted_at"`
}

// SubmissionRegistry records confirmed submissions.
type SubmissionRegistry interface {
	Register(ctx context.Context, receipt Receipt) error
}

// WalletFunc adapts a function into a WalletConnector.
type WalletFunc func(ctx context.Context) (string, error)

// Connect executes f(ctx).
func (f WalletFunc) Connect(ctx context.Context) (string, error) {
	if f == nil {
		return "", nil
	}
	return f(ctx)
}

// RegistryFunc adapts a function into a SubmissionRegistry.
type RegistryFunc func(ctx context.Context, receipt Receipt) error

// Register executes f(ctx, receipt).
func (f RegistryFunc) Register(ctx context.Context, receipt Receipt) error {
	if f == nil {
		return nil
	}
	return f(ctx, receipt)
}

// ArtifactResolver turns the text entered for the proof package field into an
// artifact reference. Failures belong to the resolver; the controller only
// passes them through.
type ArtifactResolver func(value string) (*artifact.Artifact, error)
