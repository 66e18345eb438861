package container

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	adapters "github.com/inference-gateway/toolgate/internal/infra/adapters"
	storage "github.com/inference-gateway/toolgate/internal/infra/storage"
	logger "github.com/inference-gateway/toolgate/internal/logger"
	hooks "github.com/inference-gateway/toolgate/internal/services/hooks"
	integrity "github.com/inference-gateway/toolgate/internal/services/integrity"
	policy "github.com/inference-gateway/toolgate/internal/services/policy"
	scheduler "github.com/inference-gateway/toolgate/internal/services/scheduler"
	steering "github.com/inference-gateway/toolgate/internal/services/steering"
	tools "github.com/inference-gateway/toolgate/internal/services/tools"
)

// settingsIdentifier names the global layer built from inline config rules
const settingsIdentifier = "settings"

// Frontend answers tool confirmations and policy reviews
type Frontend interface {
	domain.ConfirmationHandler
	domain.PolicyUpdateConfirmer
}

// Options controls how the container is wired
type Options struct {
	WorkspaceRoot string
	// Frontend is nil for non-interactive runs
	Frontend Frontend
	// Store overrides the configured integrity store
	Store domain.IntegrityStore
}

// PolicyTarget is a policy directory gated by the integrity manager
type PolicyTarget = integrity.WatchTarget

// PolicyLoad reports the integrity gate result for one policy directory
type PolicyLoad struct {
	Target PolicyTarget
	Result integrity.LoadResult
	Err    error
}

// ServiceContainer manages all application dependencies
type ServiceContainer struct {
	config        *config.Config
	workspaceRoot string
	interactive   bool
	frontend      Frontend

	// Persistence
	store domain.IntegrityStore

	// Policy
	rules     *policy.RuleStore
	checkers  *policy.CheckerRegistry
	engine    *policy.Engine
	trust     *policy.TrustResolver
	integrity *integrity.Manager
	watcher   *integrity.Watcher

	// Execution
	hooks     *hooks.Runtime
	tools     *tools.Registry
	queue     *scheduler.ConfirmationQueue
	scheduler *scheduler.Scheduler
	steering  *steering.Controller
}

// NewServiceContainer creates a new service container with all dependencies
func NewServiceContainer(cfg *config.Config, opts Options) (*ServiceContainer, error) {
	root := opts.WorkspaceRoot
	if root == "" {
		root = cfg.Tools.WorkspaceRoot
	}
	absRoot, err := filepath.Abs(config.ExpandPath(root))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	c := &ServiceContainer{
		config:        cfg,
		workspaceRoot: absRoot,
		frontend:      opts.Frontend,
		interactive:   cfg.Scheduler.Interactive && opts.Frontend != nil,
		store:         opts.Store,
	}

	if err := c.initializeStorage(); err != nil {
		return nil, err
	}
	c.initializePolicy()
	if err := c.initializeExecution(); err != nil {
		_ = c.store.Close()
		return nil, err
	}

	logger.Debug("Service container ready",
		"workspace", c.workspaceRoot,
		"interactive", c.interactive,
		"storage", cfg.Storage.Type,
		"tools", len(c.tools.List()),
	)
	return c, nil
}

func (c *ServiceContainer) initializeStorage() error {
	if c.store != nil {
		return nil
	}
	store, err := storage.NewStorage(c.config.Storage)
	if err != nil {
		return fmt.Errorf("failed to open integrity store: %w", err)
	}
	c.store = store
	return nil
}

func (c *ServiceContainer) initializePolicy() {
	c.rules = policy.NewRuleStore()
	c.checkers = policy.NewDefaultCheckerRegistry()
	c.engine = policy.NewEngine(c.rules, c.checkers)
	c.trust = policy.NewTrustResolver(c.store, c.config.Policy)

	var confirmer domain.PolicyUpdateConfirmer
	if c.frontend != nil {
		confirmer = c.frontend
	}
	c.integrity = integrity.NewManager(c.store, c.rules, confirmer, c.interactive, c.config.Integrity)
}

func (c *ServiceContainer) initializeExecution() error {
	c.hooks = hooks.NewRuntime()
	if err := c.hooks.ReloadConfigHooks(c.config.Hooks); err != nil {
		return fmt.Errorf("invalid hook configuration: %w", err)
	}

	toolsCfg := c.config.Tools
	toolsCfg.WorkspaceRoot = c.workspaceRoot
	c.tools = tools.NewRegistry(toolsCfg)

	c.queue = scheduler.NewConfirmationQueue()

	opts := scheduler.OptionsFromConfig(c.config.Scheduler)
	opts.Interactive = c.interactive

	var handler domain.ConfirmationHandler
	if c.frontend != nil {
		handler = c.frontend
	}
	c.scheduler = scheduler.NewScheduler(c.engine, c.tools, c.hooks, c.queue, handler, opts)
	c.scheduler.SetTrustFunc(func(ctx context.Context) domain.TrustState {
		return c.trust.Resolve(ctx, c.workspaceRoot)
	})

	c.steering = steering.NewController(c.queue, c.config.Steering)
	c.scheduler.SetHintSource(c.steering)
	return nil
}

// PolicyTargets lists the policy directories in scope precedence order
func (c *ServiceContainer) PolicyTargets() []PolicyTarget {
	targets := []PolicyTarget{{
		Scope:      domain.ScopeGlobal,
		Identifier: domain.GlobalIdentifier,
		Dir:        config.ExpandPath(c.config.Policy.GlobalDir),
	}}

	for _, dir := range c.config.Policy.ExtensionDirs {
		abs, err := filepath.Abs(config.ExpandPath(dir))
		if err != nil {
			logger.Warn("Skipping extension policy directory", "dir", dir, "error", err)
			continue
		}
		targets = append(targets, PolicyTarget{Scope: domain.ScopeExtension, Identifier: abs, Dir: abs})
	}

	return append(targets, PolicyTarget{
		Scope:      domain.ScopeWorkspace,
		Identifier: c.workspaceRoot,
		Dir:        c.config.WorkspacePolicyDir(c.workspaceRoot),
	})
}

// LoadPolicies publishes the inline settings rules and runs the integrity
// gate for every policy directory. Settings rules rank ahead of the global
// directory, and directories rank in PolicyTargets order. Directories that fail the gate keep
// their previous layer and are reported, not returned as an error.
func (c *ServiceContainer) LoadPolicies(ctx context.Context) ([]PolicyLoad, error) {
	settings, err := policy.RulesFromConfig(c.config.Policy.Rules)
	if err != nil {
		return nil, fmt.Errorf("invalid policy rules in settings: %w", err)
	}
	targets := c.PolicyTargets()
	c.rules.SetOrder(domain.ScopeGlobal, settingsIdentifier, 0)
	for i, target := range targets {
		c.rules.SetOrder(target.Scope, target.Identifier, i+1)
	}
	c.rules.ReplaceLayer(policy.Layer{Scope: domain.ScopeGlobal, Identifier: settingsIdentifier, Rules: settings})

	var loads []PolicyLoad
	for _, target := range targets {
		result, err := c.integrity.LoadPolicies(ctx, target.Scope, target.Identifier, target.Dir)
		if err != nil && !errors.Is(err, domain.ErrIntegrityBlocked) {
			logger.Error("Policy directory not loaded", "scope", target.Scope, "dir", target.Dir, "error", err)
		}
		loads = append(loads, PolicyLoad{Target: target, Result: result, Err: err})
	}

	logger.Info("Policy rules active", "rules", c.rules.Current().Len())
	return loads, nil
}

// StartWatcher re-runs the integrity gate when a policy directory changes.
// It is a no-op unless integrity.watch is enabled.
func (c *ServiceContainer) StartWatcher(ctx context.Context) error {
	if !c.config.Integrity.Watch || c.watcher != nil {
		return nil
	}

	debounce := time.Duration(c.config.Integrity.WatchDebounceMs) * time.Millisecond
	w, err := integrity.NewWatcher(c.PolicyTargets(), debounce, integrity.LoaderReload(c.integrity))
	if err != nil {
		return fmt.Errorf("failed to start policy watcher: %w", err)
	}
	w.Start(ctx)
	c.watcher = w
	return nil
}

// NewLoop creates a turn loop over transport and registers it as the
// scheduler's wave observer
func (c *ServiceContainer) NewLoop(transport domain.ModelTransport) *steering.Loop {
	loop := steering.NewLoop(transport, c.scheduler, c.steering, c.tools.Definitions(), c.config.Agent)
	c.scheduler.SetObserver(loop)
	return loop
}

// NewGatewayTransport creates the model transport for the configured gateway
func (c *ServiceContainer) NewGatewayTransport() (domain.ModelTransport, error) {
	if c.config.Agent.Model == "" {
		return nil, fmt.Errorf("no model configured (set agent.model or TOOLGATE_AGENT_MODEL)")
	}
	return adapters.NewGatewayTransport(c.config.Gateway, c.config.Agent.Model), nil
}

// Close stops the watcher and releases the integrity store
func (c *ServiceContainer) Close() error {
	if c.watcher != nil {
		c.watcher.Stop()
		c.watcher = nil
	}
	return c.store.Close()
}

func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

func (c *ServiceContainer) WorkspaceRoot() string {
	return c.workspaceRoot
}

func (c *ServiceContainer) Interactive() bool {
	return c.interactive
}

func (c *ServiceContainer) GetStore() domain.IntegrityStore {
	return c.store
}

func (c *ServiceContainer) GetRuleStore() *policy.RuleStore {
	return c.rules
}

func (c *ServiceContainer) GetEngine() *policy.Engine {
	return c.engine
}

func (c *ServiceContainer) GetTrustResolver() *policy.TrustResolver {
	return c.trust
}

func (c *ServiceContainer) GetIntegrityManager() *integrity.Manager {
	return c.integrity
}

func (c *ServiceContainer) GetHooks() *hooks.Runtime {
	return c.hooks
}

func (c *ServiceContainer) GetToolRegistry() *tools.Registry {
	return c.tools
}

func (c *ServiceContainer) GetScheduler() *scheduler.Scheduler {
	return c.scheduler
}

func (c *ServiceContainer) GetSteering() *steering.Controller {
	return c.steering
}
