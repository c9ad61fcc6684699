// Package wallet provides the stand-in Polkadot.js connector. No extension is
// contacted; the handshake always succeeds with the configured account label.
package wallet

import (
	"context"
	"strings"
)

// Logger records connector activity. It matches logbook.Logbook's signature.
type Logger interface {
	Info(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}

// Stub is a WalletConnector that never fails.
type Stub struct {
	account string
	logger  Logger
}

// NewStub builds a connector reporting account once connected.
func NewStub(account string, logger Logger) *Stub {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Stub{account: strings.TrimSpace(account), logger: logger}
}

// Connect implements wizard.WalletConnector.
func (s *Stub) Connect(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.logger.Info("Wallet · connecting Polkadot.js")
	s.logger.Info("Wallet · connected %s", s.account)
	return s.account, nil
}
