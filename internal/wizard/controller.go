package wizard

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kingrea/polkaguard/internal/artifact"
)

// Transition is reported to observers whenever the stage changes.
type Transition struct {
	SessionID string
	From      Stage
	To        Stage
	At        time.Time
}

// Controller drives a single Session through the flow.
type Controller struct {
	session Session

	wallet     WalletConnector
	registry   SubmissionRegistry
	ids        IDGenerator
	resolver   ArtifactResolver
	clock      func() time.Time
	regenerate bool
	nextHint   string
	observers  []func(Transition)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithWallet overrides the wallet connector. The default succeeds with an
// empty account label.
func WithWallet(w WalletConnector) Option {
	return func(c *Controller) {
		if w != nil {
			c.wallet = w
		}
	}
}

// WithRegistry overrides the submission registry. The default accepts everything.
func WithRegistry(r SubmissionRegistry) Option {
	return func(c *Controller) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithIDGenerator overrides how submission ids are minted.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *Controller) {
		if g != nil {
			c.ids = g
		}
	}
}

// WithArtifactResolver sets how FieldEdit events for the proof package are
// turned into artifact references.
func WithArtifactResolver(r ArtifactResolver) Option {
	return func(c *Controller) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithClock allows tests to control timestamps.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRegeneratingIDs mints a new submission id every time the review
// advance runs, even when already at Confirm. Off by default, in which case
// the id is assigned once and never changes.
func WithRegeneratingIDs(enabled bool) Option {
	return func(c *Controller) {
		c.regenerate = enabled
	}
}

// WithCompletionHint sets where the user is sent once the flow completes.
func WithCompletionHint(hint string) Option {
	return func(c *Controller) {
		c.nextHint = hint
	}
}

// WithObserver registers a callback for stage transitions.
func WithObserver(fn func(Transition)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// NewController starts a fresh session at Connect.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		session:  Session{ID: uuid.NewString(), Stage: StageConnect},
		wallet:   WalletFunc(func(context.Context) (string, error) { return "", nil }),
		registry: RegistryFunc(func(context.Context, Receipt) error { return nil }),
		ids:      ClockIDs{Prefix: DefaultIDPrefix, Digits: DefaultIDDigits},
		resolver: nameOnlyArtifact,
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	s := c.session
	s.Submission = c.session.Submission.clone()
	return s
}

// Stage returns the current stage.
func (c *Controller) Stage() Stage {
	return c.session.Stage
}

// ConnectWallet performs the wallet handshake and moves Connect to Upload.
// Outside Connect it does nothing. A connector failure leaves the session
// unchanged.
func (c *Controller) ConnectWallet(ctx context.Context) error {
	if c.session.Stage != StageConnect {
		return nil
	}
	if !c.session.WalletConnected {
		account, err := c.wallet.Connect(ctx)
		if err != nil {
			return fmt.Errorf("wizard: connect wallet: %w", err)
		}
		c.session.WalletConnected = true
		c.session.Account = account
	}
	c.moveTo(StageUpload)
	return nil
}

// SetProofArtifact stores the proof package reference. nil clears it.
func (c *Controller) SetProofArtifact(a *artifact.Artifact) error {
	if c.session.Stage != StageUpload {
		return ErrStageMismatch
	}
	if a == nil {
		c.session.Submission.Artifact = nil
		return nil
	}
	clone := *a
	c.session.Submission.Artifact = &clone
	return nil
}

// SetContractAddress stores the audited contract address verbatim.
func (c *Controller) SetContractAddress(value string) error {
	if c.session.Stage != StageUpload {
		return ErrStageMismatch
	}
	c.session.Submission.ContractAddress = value
	return nil
}

// SetExploitType stores the exploit classification verbatim.
func (c *Controller) SetExploitType(value string) error {
	if c.session.Stage != StageUpload {
		return ErrStageMismatch
	}
	c.session.Submission.ExploitType = value
	return nil
}

// AdvanceFromUpload moves Upload to Review once every field is present.
// Otherwise it returns a *ValidationError naming the missing fields.
func (c *Controller) AdvanceFromUpload() error {
	if c.session.Stage != StageUpload {
		return ErrStageMismatch
	}
	if missing := c.session.Submission.Missing(); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	c.moveTo(StageReview)
	return nil
}

// AdvanceFromReview moves Review to Confirm, mints the submission id and
// hands the receipt to the registry. At Confirm it keeps the existing id
// unless regenerating ids is enabled, in which case the new id is registered
// as well and replaces the old one only once the registry accepts it.
func (c *Controller) AdvanceFromReview(ctx context.Context) error {
	switch c.session.Stage {
	case StageConfirm:
		if !c.regenerate {
			return nil
		}
	case StageReview:
	default:
		return ErrStageMismatch
	}
	if err := c.submit(ctx); err != nil {
		return err
	}
	c.moveTo(StageConfirm)
	return nil
}

func (c *Controller) submit(ctx context.Context) error {
	now := c.clock()
	id := c.ids.SubmissionID(now)
	receipt := Receipt{
		SessionID:    c.session.ID,
		SubmissionID: id,
		Account:      c.session.Account,
		Submission:   c.session.Submission.clone(),
		SubmittedAt:  now,
	}
	if err := c.registry.Register(ctx, receipt); err != nil {
		return fmt.Errorf("wizard: register submission: %w", err)
	}
	c.session.SubmissionID = id
	c.session.SubmittedAt = now
	return nil
}

// Advance runs the forward action for the current stage.
func (c *Controller) Advance(ctx context.Context) error {
	switch c.session.Stage {
	case StageConnect:
		if !c.session.WalletConnected {
			return ErrWalletNotConnected
		}
		return c.ConnectWallet(ctx)
	case StageUpload:
		return c.AdvanceFromUpload()
	case StageReview:
		return c.AdvanceFromReview(ctx)
	default:
		return ErrStageMismatch
	}
}

// Back moves one stage back from Upload or Review, keeping everything that
// was entered. It reports whether the stage changed.
func (c *Controller) Back() bool {
	if !c.canGoBack() {
		return false
	}
	c.moveTo(c.session.Stage.Prev())
	return true
}

// CanAdvance reports whether the guard for the current stage holds.
func (c *Controller) CanAdvance() bool {
	switch c.session.Stage {
	case StageConnect:
		return c.session.WalletConnected
	case StageUpload:
		return c.session.Submission.Complete()
	case StageReview:
		return true
	default:
		return false
	}
}

func (c *Controller) canGoBack() bool {
	return c.session.Stage == StageUpload || c.session.Stage == StageReview
}

func (c *Controller) moveTo(next Stage) {
	prev := c.session.Stage
	if prev == next {
		return
	}
	c.session.Stage = next
	t := Transition{SessionID: c.session.ID, From: prev, To: next, At: c.clock()}
	for _, fn := range c.observers {
		fn(t)
	}
}

func nameOnlyArtifact(value string) (*artifact.Artifact, error) {
	return &artifact.Artifact{Name: filepath.Base(value), Path: value}, nil
}
