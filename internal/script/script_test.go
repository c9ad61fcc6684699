package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/polkaguard/internal/wizard"
)

const happyPath = `
events:
  - connect_wallet
  - field_edit: {field: contractAddress, value: "5Grw..."}
  - advance
  - field_edit: {field: exploit_type, value: Reentrancy}
  - field_edit: {field: proofArtifact, value: proof.json}
  - advance: {}
  - back
  - advance
  - advance
`

func TestParseAcceptsBothShapes(t *testing.T) {
	sc, err := Parse([]byte(happyPath))
	require.NoError(t, err)
	require.Len(t, sc.Events, 9)
	assert.Equal(t, wizard.EventConnectWallet, sc.Events[0].Event.Kind)
	assert.Equal(t, wizard.FieldContractAddress, sc.Events[1].Event.Field)
	assert.Equal(t, wizard.FieldExploitType, sc.Events[3].Event.Field)
	assert.Equal(t, wizard.EventAdvance, sc.Events[5].Event.Kind)
	assert.False(t, sc.StopOnError)
}

func TestParseRejectsBadScripts(t *testing.T) {
	for name, body := range map[string]string{
		"empty":         "events: []",
		"unknown event": "events: [teleport]",
		"unknown field": "events:\n  - field_edit: {field: colour, value: red}",
		"two keys":      "events:\n  - {advance: {}, back: {}}",
	} {
		_, err := Parse([]byte(body))
		assert.Error(t, err, name)
	}
}

func TestRunRecordsValidationAndFinishes(t *testing.T) {
	sc, err := Parse([]byte(happyPath))
	require.NoError(t, err)
	report, err := Run(context.Background(), wizard.NewController(), sc)
	require.NoError(t, err)

	require.Len(t, report.Steps, 9)
	early := report.Steps[2]
	assert.Equal(t, wizard.StageUpload, early.Stage)
	assert.Equal(t, []wizard.Field{wizard.FieldProofArtifact, wizard.FieldExploitType}, early.Missing)
	assert.True(t, report.Failed())

	assert.Equal(t, wizard.StageConfirm, report.Final.Stage)
	assert.Regexp(t, `^PG-2024-001-\d{6}$`, report.Final.SubmissionID)

	out, err := yaml.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "stage: confirm")
}

func TestRunStopsOnErrorWhenAsked(t *testing.T) {
	sc, err := Parse([]byte("stop_on_error: true\nevents: [connect_wallet, advance, advance]"))
	require.NoError(t, err)
	report, err := Run(context.Background(), wizard.NewController(), sc)
	require.NoError(t, err)
	assert.Len(t, report.Steps, 2)
	assert.Equal(t, wizard.StageUpload, report.Final.Stage)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(happyPath), 0o644))
	sc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sc.Events, 9)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
