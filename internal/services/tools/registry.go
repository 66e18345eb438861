package tools

import (
	"fmt"
	"sort"
	"sync"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
)

// Registry resolves tool executors by name
type Registry struct {
	mu        sync.RWMutex
	executors map[string]domain.ToolExecutor
}

// NewRegistry creates a registry with the reference executors
func NewRegistry(cfg config.ToolsConfig) *Registry {
	r := NewEmptyRegistry()
	r.registerTools(cfg)
	return r
}

// NewEmptyRegistry creates a registry without any executors
func NewEmptyRegistry() *Registry {
	return &Registry{executors: make(map[string]domain.ToolExecutor)}
}

func (r *Registry) registerTools(cfg config.ToolsConfig) {
	for _, exec := range []domain.ToolExecutor{
		NewReadFileTool(cfg),
		NewListDirectoryTool(cfg),
		NewWriteFileTool(cfg),
		NewShellTool(cfg),
	} {
		r.executors[exec.Name()] = exec
	}
}

// Register adds an executor; names must be unique
func (r *Registry) Register(exec domain.ToolExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executors[exec.Name()]; exists {
		return fmt.Errorf("tool %s already registered", exec.Name())
	}
	r.executors[exec.Name()] = exec
	return nil
}

// Get retrieves an executor by name
func (r *Registry) Get(name string) (domain.ToolExecutor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exec, ok := r.executors[name]
	return exec, ok
}

// EffectOf returns the declared effect of a tool. Unknown tools are treated
// as mutating so they are never batched with read-only calls.
func (r *Registry) EffectOf(name string) domain.Effect {
	exec, ok := r.Get(name)
	if !ok {
		return domain.EffectMutating
	}
	return exec.Effect()
}

// List returns the registered tool names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.executors))
	for name := range r.executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns the model-facing definitions of every executor that has one
func (r *Registry) Definitions() []domain.ToolDefinition {
	var defs []domain.ToolDefinition
	for _, name := range r.List() {
		exec, _ := r.Get(name)
		if d, ok := exec.(domain.DescribedTool); ok {
			defs = append(defs, d.Definition())
		}
	}
	return defs
}
