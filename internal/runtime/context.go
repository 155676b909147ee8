package runtime

import (
	"context"
	"fmt"
	"os"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/config"
	"shipit.dev/shipit/internal/forge"
	"shipit.dev/shipit/internal/git"
	"shipit.dev/shipit/internal/output"
)

// Context provides access to the resolved adapter, configuration, and output
// for commands. Commands receive it by reference, there is no ambient global
// adapter state.
type Context struct {
	Adapter  adapter.Adapter
	Config   *config.Store
	Registry *adapter.Registry
	Splog    *output.Splog
	WorkDir  string

	// Owner and Repo identify the repository commands operate on, parsed
	// from the origin remote during Prepare. Commands may override them
	// from flags before use.
	Owner string
	Repo  string
}

// Options configure a new Context. Tests and embedding callers use them to
// pre-bind an adapter, supply a pre-loaded store, or swap the registry.
type Options struct {
	Adapter  adapter.Adapter
	Config   *config.Store
	Registry *adapter.Registry
	WorkDir  string
}

// NewContext creates a context from the given options. Resolution of any
// unset pieces is deferred to Prepare.
func NewContext(opts Options) *Context {
	workDir := opts.WorkDir
	if workDir == "" {
		if wd, err := os.Getwd(); err == nil {
			workDir = wd
		}
	}

	// Console output plus a debug log file under ~/.shipit/logs.
	splog := output.NewSplogWithConfig(output.LogFilePath())

	return &Context{
		Adapter:  opts.Adapter,
		Config:   opts.Config,
		Registry: opts.Registry,
		Splog:    splog,
		WorkDir:  workDir,
	}
}

// IsDemoMode returns true if the SHIPIT_DEMO environment variable is set.
func IsDemoMode() bool {
	return os.Getenv("SHIPIT_DEMO") != ""
}

// DemoAdapterFactory is a function that creates the in-memory demo adapter.
// This is set by the demo package to avoid circular imports.
var DemoAdapterFactory func() adapter.Adapter

// DemoOwner and DemoRepo name the pretend repository used while demo mode
// is active. The demo package sets them alongside DemoAdapterFactory.
var DemoOwner, DemoRepo string

// Prepare resolves everything a command needs: it loads configuration,
// resolves a provider identifier (explicit config value, else remote
// detection), builds and authenticates the adapter, and records the origin
// owner and repository.
//
// Prepare is idempotent. Once an adapter is bound, later calls are no-ops
// and the bound instance is reused for the rest of the process.
func (c *Context) Prepare(ctx context.Context) error {
	if c.Config == nil {
		if err := c.loadConfig(); err != nil {
			return err
		}
	}

	if c.WorkDir != "" {
		git.SetWorkingDir(c.WorkDir)
	}

	if c.Adapter != nil {
		return nil
	}

	if IsDemoMode() && DemoAdapterFactory != nil {
		c.Adapter = DemoAdapterFactory()
		c.Owner = DemoOwner
		c.Repo = DemoRepo
		return nil
	}

	if c.Registry == nil {
		reg := adapter.NewRegistry()
		if err := forge.Builtins(reg); err != nil {
			return err
		}
		c.Registry = reg
	}

	identifier := c.Config.GetString("adapter")
	if identifier == "" {
		detected, err := forge.Detect(ctx, c.WorkDir)
		if err != nil {
			return err
		}
		identifier = detected
	}

	instance, err := adapter.Build(ctx, c.Registry, c.Config, identifier)
	if err != nil {
		return err
	}
	c.Adapter = instance

	// Best effort. Commands that need a repository take --org and --repo
	// flags, so a missing origin remote is not fatal here.
	if info, err := git.OriginInfo(ctx, c.WorkDir); err == nil {
		c.Owner = info.Owner
		c.Repo = info.Repo
	}

	return nil
}

func (c *Context) loadConfig() error {
	if IsDemoMode() {
		// Demo mode must work outside any real setup, so skip the files.
		c.Config = config.FromTree(map[string]any{})
		return nil
	}

	store, err := config.Load(c.WorkDir)
	if err != nil {
		return err
	}
	c.Config = store
	return nil
}

// RequireRepo returns the owner and repository for the current invocation.
func (c *Context) RequireRepo() (string, string, error) {
	if c.Owner == "" || c.Repo == "" {
		return "", "", fmt.Errorf("could not determine the target repository, pass --org and --repo or add an origin remote")
	}
	return c.Owner, c.Repo, nil
}

// processContext is the one prepared context for this process. Commands in
// a scripted batch share it, so the adapter is never rebuilt once bound.
var processContext *Context

// GetContext returns the process-wide context, creating and preparing it on
// first use.
func GetContext(ctx context.Context) (*Context, error) {
	if processContext == nil {
		processContext = NewContext(Options{})
	}
	if err := processContext.Prepare(ctx); err != nil {
		return nil, err
	}
	return processContext, nil
}

// SetContext replaces the process-wide context. Tests and embedding callers
// use it to inject a context with a pre-bound adapter.
func SetContext(c *Context) {
	processContext = c
}

// ResetContext forgets the process-wide context so the next GetContext
// resolves from scratch.
func ResetContext() {
	processContext = nil
}
