// Package registry holds the stand-in proof registry. Receipts live only as
// long as the process; nothing is written to disk or to a chain.
package registry

import (
	"context"
	"sync"

	"github.com/kingrea/polkaguard/internal/wizard"
)

// Logger records registry activity. It matches logbook.Logbook's signature.
type Logger interface {
	Info(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}

// Memory is an in-process SubmissionRegistry.
type Memory struct {
	mu       sync.Mutex
	receipts []wizard.Receipt
	logger   Logger
}

// NewMemory builds an empty registry.
func NewMemory(logger Logger) *Memory {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Memory{logger: logger}
}

// Register implements wizard.SubmissionRegistry.
func (m *Memory) Register(ctx context.Context, receipt wizard.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.receipts = append(m.receipts, receipt)
	m.mu.Unlock()
	m.logger.Info("Registry · %s submitted (%s, %s)",
		receipt.SubmissionID, receipt.Submission.ExploitType, receipt.Submission.ContractAddress)
	return nil
}

// Receipts returns every receipt registered so far, oldest first.
func (m *Memory) Receipts() []wizard.Receipt {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]wizard.Receipt, len(m.receipts))
	copy(out, m.receipts)
	return out
}

// Lookup finds a receipt by submission id.
func (m *Memory) Lookup(submissionID string) (wizard.Receipt, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.receipts) - 1; i >= 0; i-- {
		if m.receipts[i].SubmissionID == submissionID {
			return m.receipts[i], true
		}
	}
	return wizard.Receipt{}, false
}
