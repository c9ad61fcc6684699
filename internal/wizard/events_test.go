package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/polkaguard/internal/artifact"
)

func TestApplyDrivesWholeFlow(t *testing.T) {
	ctx := context.Background()
	c := NewController()
	events := []Event{
		ConnectWalletEvent(),
		FieldEditEvent(FieldContractAddress, "5Grw..."),
		FieldEditEvent(FieldExploitType, "Reentrancy"),
		FieldEditEvent(FieldProofArtifact, "proofs/proof.json"),
		AdvanceEvent(),
		BackEvent(),
		AdvanceEvent(),
		AdvanceEvent(),
	}
	for _, ev := range events {
		require.NoError(t, c.Apply(ctx, ev), "event %s", ev.Kind)
	}
	v := c.View()
	assert.Equal(t, StageConfirm, v.Stage)
	require.NotNil(t, v.Submission.Artifact)
	assert.Equal(t, "proof.json", v.Submission.Artifact.Name)
	assert.Regexp(t, submissionIDPattern, v.SubmissionID)
}

func TestApplyFieldEditUsesResolver(t *testing.T) {
	ctx := context.Background()
	unreadable := errors.New("permission denied")
	resolver := func(value string) (*artifact.Artifact, error) {
		if value == "locked.zip" {
			return nil, unreadable
		}
		return &artifact.Artifact{Name: value, Size: 10}, nil
	}
	c := NewController(WithArtifactResolver(resolver))
	require.NoError(t, c.Apply(ctx, ConnectWalletEvent()))

	err := c.Apply(ctx, FieldEditEvent(FieldProofArtifact, "locked.zip"))
	require.ErrorIs(t, err, unreadable)
	assert.Nil(t, c.Session().Submission.Artifact)

	require.NoError(t, c.Apply(ctx, FieldEditEvent(FieldProofArtifact, "proof.zip")))
	require.NotNil(t, c.Session().Submission.Artifact)
	assert.Equal(t, int64(10), c.Session().Submission.Artifact.Size)

	require.NoError(t, c.Apply(ctx, FieldEditEvent(FieldProofArtifact, "")))
	assert.Nil(t, c.Session().Submission.Artifact)
}

func TestApplyFailedProofEditClearsEarlierArtifact(t *testing.T) {
	ctx := context.Background()
	gone := errors.New("file not found")
	resolver := func(value string) (*artifact.Artifact, error) {
		if value == "missing.json" {
			return nil, gone
		}
		return &artifact.Artifact{Name: value}, nil
	}
	c := NewController(WithArtifactResolver(resolver))
	require.NoError(t, c.Apply(ctx, ConnectWalletEvent()))
	require.NoError(t, c.Apply(ctx, FieldEditEvent(FieldProofArtifact, "good.json")))
	require.NoError(t, c.Apply(ctx, FieldEditEvent(FieldContractAddress, "5Grw...")))
	require.NoError(t, c.Apply(ctx, FieldEditEvent(FieldExploitType, "Reentrancy")))

	err := c.Apply(ctx, FieldEditEvent(FieldProofArtifact, "missing.json"))
	require.ErrorIs(t, err, gone)
	assert.Nil(t, c.Session().Submission.Artifact)

	err = c.Apply(ctx, AdvanceEvent())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []Field{FieldProofArtifact}, verr.Missing)
	assert.Equal(t, StageUpload, c.Stage())
}

func TestApplyRejectsUnknownInput(t *testing.T) {
	c := NewController()
	require.Error(t, c.Apply(context.Background(), Event{Kind: "teleport"}))
	require.NoError(t, c.Apply(context.Background(), ConnectWalletEvent()))
	require.Error(t, c.Apply(context.Background(), FieldEditEvent("colour", "red")))
}

func TestParseField(t *testing.T) {
	for input, want := range map[string]Field{
		"proofArtifact":    FieldProofArtifact,
		"proof_artifact":   FieldProofArtifact,
		"contract-address": FieldContractAddress,
		"ContractAddress":  FieldContractAddress,
		"exploit":          FieldExploitType,
		" exploit_type ":   FieldExploitType,
	} {
		got, err := ParseField(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	_, err := ParseField("wallet")
	require.Error(t, err)
}

func TestStageNavigationHelpers(t *testing.T) {
	assert.Equal(t, StageConnect, StageConnect.Prev())
	assert.Equal(t, StageConfirm, StageConfirm.Next())
	assert.Equal(t, StageReview, StageUpload.Next())
	assert.Equal(t, 4, StageConfirm.Number())
	assert.False(t, Stage(9).Valid())
	assert.Equal(t, "stage(9)", Stage(9).String())
}
