package app

import (
	"fmt"

	"github.com/kingrea/polkaguard/internal/artifact"
	"github.com/kingrea/polkaguard/internal/config"
	"github.com/kingrea/polkaguard/internal/logbook"
	"github.com/kingrea/polkaguard/internal/registry"
	"github.com/kingrea/polkaguard/internal/wallet"
	"github.com/kingrea/polkaguard/internal/wizard"
)

// App bundles the project-scoped collaborators shared by every wizard session.
type App struct {
	Config    *config.Config
	Logbook   *logbook.Logbook
	Registry  *registry.Memory
	Artifacts *artifact.Loader
	Wallet    *wallet.Stub
}

// New prepares the .polkaguard directory under projectDir and loads its configuration.
func New(projectDir string) (*App, error) {
	if err := config.InitDir(projectDir); err != nil {
		return nil, fmt.Errorf("app: init %s: %w", config.Dir, err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.JourneyLogPath())
	if err != nil {
		return nil, fmt.Errorf("app: open logbook: %w", err)
	}
	limits := cfg.Artifact()
	return &App{
		Config:   cfg,
		Logbook:  lb,
		Registry: registry.NewMemory(lb),
		Artifacts: artifact.NewLoader(cfg.ProjectDir, artifact.Limits{
			Extensions: limits.Extensions,
			MaxBytes:   limits.MaxBytes,
		}),
		Wallet: wallet.NewStub(cfg.WalletAccount(), lb),
	}, nil
}

// NewWizard starts a fresh submission session. Extra options are applied
// after the configured ones.
func (a *App) NewWizard(opts ...wizard.Option) *wizard.Controller {
	ids := a.Config.SubmissionID()
	base := []wizard.Option{
		wizard.WithWallet(a.Wallet),
		wizard.WithRegistry(a.Registry),
		wizard.WithIDGenerator(wizard.ClockIDs{Prefix: ids.Prefix, Digits: ids.Digits}),
		wizard.WithRegeneratingIDs(ids.Regenerate),
		wizard.WithCompletionHint(a.Config.CouncilView()),
		wizard.WithArtifactResolver(a.ResolveArtifact),
		wizard.WithObserver(a.logTransition),
	}
	c := wizard.NewController(append(base, opts...)...)
	a.Logbook.Info("Wizard · session %s opened", c.Session().ID)
	return c
}

// ResolveArtifact loads a proof package and logs any warnings about it.
func (a *App) ResolveArtifact(path string) (*artifact.Artifact, error) {
	res, err := a.Artifacts.Load(path)
	if err != nil {
		a.Logbook.Warn("Upload · %v", err)
		return nil, err
	}
	for _, w := range res.Warnings {
		a.Logbook.Warn("Upload · %s", w)
	}
	a.Logbook.Info("Upload · proof package %s (%s)", res.Artifact.Name, res.Artifact.SizeLabel())
	return &res.Artifact, nil
}

func (a *App) logTransition(t wizard.Transition) {
	a.Logbook.Info("Wizard · %s → %s (session %s)", t.From, t.To, shortID(t.SessionID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
