package wizard

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/polkaguard/internal/artifact"
)

var submissionIDPattern = regexp.MustCompile(`^PG-2024-001-\d{6}$`)

type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func newTestClock() *stepClock {
	return &stepClock{now: time.UnixMilli(1718035200123), step: 1234 * time.Millisecond}
}

func proofFile() *artifact.Artifact {
	return &artifact.Artifact{Name: "proof.json", Path: "/tmp/proof.json", Size: 2458}
}

func connected(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c := NewController(opts...)
	require.NoError(t, c.ConnectWallet(context.Background()))
	return c
}

func atReview(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c := connected(t, opts...)
	require.NoError(t, c.SetProofArtifact(proofFile()))
	require.NoError(t, c.SetContractAddress("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"))
	require.NoError(t, c.SetExploitType("Reentrancy"))
	require.NoError(t, c.AdvanceFromUpload())
	require.Equal(t, StageReview, c.Stage())
	return c
}

func TestInitialSession(t *testing.T) {
	c := NewController()
	s := c.Session()
	assert.Equal(t, StageConnect, s.Stage)
	assert.False(t, s.WalletConnected)
	assert.Nil(t, s.Submission.Artifact)
	assert.Empty(t, s.Submission.ContractAddress)
	assert.Empty(t, s.Submission.ExploitType)
	assert.Empty(t, s.SubmissionID)
	assert.NotEmpty(t, s.ID)

	v := c.View()
	assert.False(t, v.CanGoBack)
	assert.False(t, v.CanGoForward)
	assert.Equal(t, "Connect Wallet", v.Title)
	require.Len(t, v.Steps, 4)
	assert.Equal(t, StepCurrent, v.Steps[0].State)
	assert.Equal(t, StepPending, v.Steps[3].State)
}

func TestConnectWalletAdvancesOnce(t *testing.T) {
	calls := 0
	wallet := WalletFunc(func(context.Context) (string, error) {
		calls++
		return "5D34...8f2a", nil
	})
	c := NewController(WithWallet(wallet))
	require.NoError(t, c.ConnectWallet(context.Background()))
	assert.Equal(t, StageUpload, c.Stage())
	assert.True(t, c.Session().WalletConnected)
	assert.Equal(t, "5D34...8f2a", c.Session().Account)

	require.NoError(t, c.ConnectWallet(context.Background()))
	assert.Equal(t, StageUpload, c.Stage())
	assert.Equal(t, 1, calls)
}

func TestConnectWalletFailureLeavesSession(t *testing.T) {
	boom := errors.New("extension not found")
	c := NewController(WithWallet(WalletFunc(func(context.Context) (string, error) {
		return "", boom
	})))
	err := c.ConnectWallet(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StageConnect, c.Stage())
	assert.False(t, c.Session().WalletConnected)
}

func TestAdvanceFromUploadReportsMissingFields(t *testing.T) {
	cases := []struct {
		name     string
		artifact bool
		address  string
		exploit  string
		missing  []Field
	}{
		{"nothing", false, "", "", []Field{FieldProofArtifact, FieldContractAddress, FieldExploitType}},
		{"artifact only", true, "", "", []Field{FieldContractAddress, FieldExploitType}},
		{"address only", false, "5Grw...", "", []Field{FieldProofArtifact, FieldExploitType}},
		{"exploit only", false, "", "Reentrancy", []Field{FieldProofArtifact, FieldContractAddress}},
		{"no artifact", false, "5Grw...", "Reentrancy", []Field{FieldProofArtifact}},
		{"no address", true, "", "Reentrancy", []Field{FieldContractAddress}},
		{"no exploit", true, "5Grw...", "", []Field{FieldExploitType}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := connected(t)
			if tc.artifact {
				require.NoError(t, c.SetProofArtifact(proofFile()))
			}
			require.NoError(t, c.SetContractAddress(tc.address))
			require.NoError(t, c.SetExploitType(tc.exploit))

			err := c.AdvanceFromUpload()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.missing, verr.Missing)
			assert.Equal(t, StageUpload, c.Stage())
			assert.Equal(t, tc.missing, c.View().Missing)
			assert.False(t, c.View().CanGoForward)
		})
	}
}

func TestOnlyContractAddressScenario(t *testing.T) {
	c := connected(t)
	require.NoError(t, c.SetContractAddress("5Grw..."))

	err := c.Advance(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has(FieldProofArtifact))
	assert.True(t, verr.Has(FieldExploitType))
	assert.False(t, verr.Has(FieldContractAddress))
	assert.EqualError(t, err, "wizard: missing required fields: proofArtifact, exploitType")
	assert.Equal(t, StageUpload, c.Stage())
}

func TestReviewRoundTripKeepsFields(t *testing.T) {
	c := atReview(t)
	before := c.Session().Submission

	require.True(t, c.Back())
	assert.Equal(t, StageUpload, c.Stage())
	assert.Equal(t, before, c.Session().Submission)
	assert.True(t, c.Session().WalletConnected)

	require.NoError(t, c.AdvanceFromUpload())
	assert.Equal(t, StageReview, c.Stage())
	assert.Equal(t, before, c.Session().Submission)
}

func TestBackFromUploadKeepsWallet(t *testing.T) {
	c := connected(t)
	require.NoError(t, c.SetExploitType("Integer Overflow"))
	require.True(t, c.Back())
	assert.Equal(t, StageConnect, c.Stage())
	assert.True(t, c.Session().WalletConnected)
	assert.Equal(t, "Integer Overflow", c.Session().Submission.ExploitType)
	assert.True(t, c.View().CanGoForward)

	require.NoError(t, c.Advance(context.Background()))
	assert.Equal(t, StageUpload, c.Stage())
}

func TestBackDisallowedAtEnds(t *testing.T) {
	c := NewController()
	assert.False(t, c.Back())
	assert.Equal(t, StageConnect, c.Stage())

	c = atReview(t)
	require.NoError(t, c.AdvanceFromReview(context.Background()))
	assert.False(t, c.Back())
	assert.Equal(t, StageConfirm, c.Stage())
	assert.False(t, c.View().CanGoBack)
	assert.False(t, c.View().CanGoForward)
}

func TestFullScenarioAssignsSubmissionID(t *testing.T) {
	var receipts []Receipt
	registry := RegistryFunc(func(_ context.Context, r Receipt) error {
		receipts = append(receipts, r)
		return nil
	})
	c := atReview(t, WithRegistry(registry), WithCompletionHint("/council"))

	require.NoError(t, c.Advance(context.Background()))
	v := c.View()
	assert.Equal(t, StageConfirm, v.Stage)
	assert.Regexp(t, submissionIDPattern, v.SubmissionID)
	assert.Equal(t, "/council", v.NextHint)
	assert.Equal(t, "Reentrancy", v.Submission.ExploitType)
	require.Len(t, receipts, 1)
	assert.Equal(t, v.SubmissionID, receipts[0].SubmissionID)
	assert.Equal(t, v.SessionID, receipts[0].SessionID)
}

func TestSubmissionIDKeptByDefault(t *testing.T) {
	clock := newTestClock()
	c := atReview(t, WithClock(clock.Now))
	require.NoError(t, c.AdvanceFromReview(context.Background()))
	first := c.Session().SubmissionID
	require.NotEmpty(t, first)

	require.NoError(t, c.AdvanceFromReview(context.Background()))
	assert.Equal(t, first, c.Session().SubmissionID)
	assert.Equal(t, StageConfirm, c.Stage())
}

func TestSubmissionIDMayChangeWhenRegenerating(t *testing.T) {
	clock := newTestClock()
	c := atReview(t, WithClock(clock.Now), WithRegeneratingIDs(true))
	require.NoError(t, c.AdvanceFromReview(context.Background()))
	first := c.Session().SubmissionID

	require.NoError(t, c.AdvanceFromReview(context.Background()))
	second := c.Session().SubmissionID
	assert.Regexp(t, submissionIDPattern, first)
	assert.Regexp(t, submissionIDPattern, second)
	assert.NotEqual(t, first, second)
	assert.Equal(t, StageConfirm, c.Stage())
}

func TestRegeneratedIDIsRegistered(t *testing.T) {
	var registered []string
	fail := false
	registry := RegistryFunc(func(_ context.Context, r Receipt) error {
		if fail {
			return errors.New("registry offline")
		}
		registered = append(registered, r.SubmissionID)
		return nil
	})
	clock := newTestClock()
	c := atReview(t, WithClock(clock.Now), WithRegeneratingIDs(true), WithRegistry(registry))
	require.NoError(t, c.AdvanceFromReview(context.Background()))
	firstAt := c.Session().SubmittedAt

	require.NoError(t, c.AdvanceFromReview(context.Background()))
	s := c.Session()
	require.Len(t, registered, 2)
	assert.Equal(t, registered[1], s.SubmissionID)
	assert.True(t, s.SubmittedAt.After(firstAt))

	fail = true
	require.Error(t, c.AdvanceFromReview(context.Background()))
	assert.Equal(t, registered[1], c.Session().SubmissionID)
	assert.Equal(t, StageConfirm, c.Stage())
}

func TestRegistryFailureStaysInReview(t *testing.T) {
	boom := errors.New("registry offline")
	c := atReview(t, WithRegistry(RegistryFunc(func(context.Context, Receipt) error { return boom })))
	err := c.AdvanceFromReview(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StageReview, c.Stage())
	assert.Empty(t, c.Session().SubmissionID)
}

func TestOperationsOutsideTheirStage(t *testing.T) {
	c := NewController()
	assert.ErrorIs(t, c.SetContractAddress("x"), ErrStageMismatch)
	assert.ErrorIs(t, c.SetExploitType("x"), ErrStageMismatch)
	assert.ErrorIs(t, c.SetProofArtifact(proofFile()), ErrStageMismatch)
	assert.ErrorIs(t, c.AdvanceFromUpload(), ErrStageMismatch)
	assert.ErrorIs(t, c.AdvanceFromReview(context.Background()), ErrStageMismatch)
	assert.ErrorIs(t, c.Advance(context.Background()), ErrWalletNotConnected)
	assert.Equal(t, StageConnect, c.Stage())

	c = connected(t)
	assert.ErrorIs(t, c.AdvanceFromReview(context.Background()), ErrStageMismatch)
	assert.Equal(t, StageUpload, c.Stage())
}

func TestObserverSeesEveryTransition(t *testing.T) {
	var seen []Transition
	c := atReview(t, WithObserver(func(tr Transition) { seen = append(seen, tr) }))
	c.Back()
	require.Len(t, seen, 3)
	assert.Equal(t, StageConnect, seen[0].From)
	assert.Equal(t, StageUpload, seen[0].To)
	assert.Equal(t, StageReview, seen[2].From)
	assert.Equal(t, StageUpload, seen[2].To)
}

func TestSessionCopyIsDetached(t *testing.T) {
	c := connected(t)
	require.NoError(t, c.SetProofArtifact(proofFile()))
	s := c.Session()
	s.Submission.Artifact.Name = "tampered"
	assert.Equal(t, "proof.json", c.Session().Submission.Artifact.Name)
}

func TestClockIDs(t *testing.T) {
	g := ClockIDs{Prefix: "PG-2024-001-", Digits: 6}
	assert.Equal(t, "PG-2024-001-200123", g.SubmissionID(time.UnixMilli(1718035200123)))
	assert.Equal(t, "X-42", ClockIDs{Prefix: "X-", Digits: 6}.SubmissionID(time.UnixMilli(42)))
}
