package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/kingrea/polkaguard/internal/artifact"
)

// Field names one of the three values collected during Upload.
type Field string

const (
	FieldProofArtifact   Field = "proofArtifact"
	FieldContractAddress Field = "contractAddress"
	FieldExploitType     Field = "exploitType"
)

// Fields lists the submission fields in canonical order.
var Fields = []Field{FieldProofArtifact, FieldContractAddress, FieldExploitType}

// Label is the human readable field name.
func (f Field) Label() string {
	switch f {
	case FieldProofArtifact:
		return "ZK proof package"
	case FieldContractAddress:
		return "Contract address"
	case FieldExploitType:
		return "Exploit type"
	default:
		return string(f)
	}
}

// ParseField accepts camelCase, snake_case or kebab-case field names.
func ParseField(value string) (Field, error) {
	normalized := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(value)))
	for _, f := range Fields {
		if strings.ToLower(string(f)) == normalized {
			return f, nil
		}
	}
	switch normalized {
	case "proof", "artifact", "prooffile":
		return FieldProofArtifact, nil
	case "contract", "address":
		return FieldContractAddress, nil
	case "exploit":
		return FieldExploitType, nil
	}
	return "", fmt.Errorf("wizard: unknown field %q", value)
}

// Submission is the payload carried through the flow.
type Submission struct {
	Artifact        *artifact.Artifact `yaml:"proof_artifact,omitempty"`
	ContractAddress string             `yaml:"contract_address"`
	ExploitType     string             `yaml:"exploit_type"`
}

// Missing returns the fields that would fail the Upload guard, in canonical order.
func (s Submission) Missing() []Field {
	var missing []Field
	if s.Artifact == nil {
		missing = append(missing, FieldProofArtifact)
	}
	if s.ContractAddress == "" {
		missing = append(missing, FieldContractAddress)
	}
	if s.ExploitType == "" {
		missing = append(missing, FieldExploitType)
	}
	return missing
}

// Complete reports whether every field is present.
func (s Submission) Complete() bool {
	return len(s.Missing()) == 0
}

func (s Submission) clone() Submission {
	out := s
	if s.Artifact != nil {
		a := *s.Artifact
		out.Artifact = &a
	}
	return out
}

// Session is the state owned by a Controller for one pass through the flow.
type Session struct {
	ID              string
	Stage           Stage
	WalletConnected bool
	Account         string
	Submission      Submission
	SubmissionID    string
	SubmittedAt     time.Time
}
