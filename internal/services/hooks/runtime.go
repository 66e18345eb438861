package hooks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	logger "github.com/inference-gateway/toolgate/internal/logger"
)

// Runtime holds hook registrations and fires them synchronously in
// registration order. Runtime-registered hooks survive ReloadConfigHooks;
// config hooks are replaced wholesale.
type Runtime struct {
	mu    sync.RWMutex
	hooks []domain.HookRegistration
	seq   uint64

	runProcess func(ctx context.Context, action domain.ProcessAction, input domain.HookInput) (*domain.HookOutput, error)
}

// NewRuntime creates an empty hook runtime
func NewRuntime() *Runtime {
	return &Runtime{runProcess: runProcess}
}

// RegisterHook adds a runtime-owned hook and returns its id
func (r *Runtime) RegisterHook(action domain.HookAction, event domain.HookEvent, matcher string) (string, error) {
	return r.register(action, event, matcher, domain.HookSourceRuntime)
}

func (r *Runtime) register(action domain.HookAction, event domain.HookEvent, matcher string, source domain.HookSource) (string, error) {
	if action == nil {
		return "", fmt.Errorf("hook action is required")
	}
	if event != domain.HookBeforeTool && event != domain.HookAfterTool {
		return "", fmt.Errorf("unsupported hook event %q", event)
	}
	if err := ValidateMatcher(matcher); err != nil {
		return "", err
	}
	if ra, ok := action.(domain.RuntimeAction); ok && ra.Callback == nil {
		return "", fmt.Errorf("runtime hook %q has no callback", ra.Name)
	}
	if pa, ok := action.(domain.ProcessAction); ok && pa.Command == "" {
		return "", fmt.Errorf("process hook has no command")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	reg := domain.HookRegistration{
		ID:       uuid.New().String(),
		Event:    event,
		Matcher:  matcher,
		Action:   action,
		Source:   source,
		Sequence: r.seq,
	}
	r.hooks = append(r.hooks, reg)

	logger.Debug("Hook registered", "id", reg.ID, "event", event, "matcher", matcher, "action", action.Describe(), "source", source)
	return reg.ID, nil
}

// Unregister removes a hook by id
func (r *Runtime) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, h := range r.hooks {
		if h.ID == id {
			r.hooks = append(r.hooks[:i:i], r.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// ReloadConfigHooks replaces every config-sourced hook with defs. When any
// definition is invalid nothing is replaced.
func (r *Runtime) ReloadConfigHooks(defs config.HooksConfig) error {
	type pending struct {
		event domain.HookEvent
		def   config.HookConfig
	}
	var all []pending
	for _, d := range defs.BeforeTool {
		all = append(all, pending{domain.HookBeforeTool, d})
	}
	for _, d := range defs.AfterTool {
		all = append(all, pending{domain.HookAfterTool, d})
	}

	for _, p := range all {
		if p.def.Command == "" {
			return fmt.Errorf("%s hook for %q has no command", p.event, p.def.Matcher)
		}
		if err := ValidateMatcher(p.def.Matcher); err != nil {
			return err
		}
	}

	r.mu.Lock()
	kept := r.hooks[:0:0]
	for _, h := range r.hooks {
		if h.Source != domain.HookSourceConfig {
			kept = append(kept, h)
		}
	}
	r.hooks = kept
	r.mu.Unlock()

	for _, p := range all {
		action := domain.ProcessAction{
			Command: p.def.Command,
			Args:    p.def.Args,
			Timeout: time.Duration(p.def.Timeout) * time.Second,
		}
		if _, err := r.register(action, p.event, p.def.Matcher, domain.HookSourceConfig); err != nil {
			return err
		}
	}

	logger.Info("Config hooks reloaded", "before_tool", len(defs.BeforeTool), "after_tool", len(defs.AfterTool))
	return nil
}

// List returns all registrations in firing order
func (r *Runtime) List() []domain.HookRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]domain.HookRegistration(nil), r.hooks...)
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

func (r *Runtime) matching(event domain.HookEvent, toolName, qualifiedName string) []domain.HookRegistration {
	var out []domain.HookRegistration
	for _, h := range r.List() {
		if h.Event == event && MatchTool(h.Matcher, toolName, qualifiedName) {
			out = append(out, h)
		}
	}
	return out
}

// FireBeforeToolEvent runs the BeforeTool hooks matching name. The first deny
// short-circuits the rest. Hook errors are logged and ignored.
func (r *Runtime) FireBeforeToolEvent(ctx context.Context, name string, input domain.HookInput) domain.BeforeToolResult {
	input.Event = domain.HookBeforeTool
	if input.ToolName == "" {
		input.ToolName = name
	}

	var result domain.BeforeToolResult
	var messages []string

	for _, h := range r.matching(domain.HookBeforeTool, input.ToolName, name) {
		out := r.invoke(ctx, h, input)
		if out == nil {
			continue
		}
		if out.SystemMessage != "" {
			messages = append(messages, out.SystemMessage)
		}
		if out.Decision == domain.HookDecisionDeny {
			result.Decision = domain.HookDecisionDeny
			result.Reason = out.Reason
			if result.Reason == "" {
				result.Reason = fmt.Sprintf("denied by hook %s", h.Action.Describe())
			}
			result.HookID = h.ID
			logger.Info("Tool call denied by hook", "tool", name, "hook", h.ID, "reason", result.Reason)
			break
		}
		if out.Decision == domain.HookDecisionAllow && result.Decision == domain.HookDecisionNone {
			result.Decision = domain.HookDecisionAllow
		}
	}

	result.SystemMessage = joinMessages(messages)
	return result
}

// FireAfterToolEvent runs the AfterTool hooks matching name and returns any
// system messages they produced. Decisions are ignored after execution.
func (r *Runtime) FireAfterToolEvent(ctx context.Context, name string, input domain.HookInput, output string) string {
	input.Event = domain.HookAfterTool
	input.Output = output
	if input.ToolName == "" {
		input.ToolName = name
	}

	var messages []string
	for _, h := range r.matching(domain.HookAfterTool, input.ToolName, name) {
		out := r.invoke(ctx, h, input)
		if out != nil && out.SystemMessage != "" {
			messages = append(messages, out.SystemMessage)
		}
	}
	return joinMessages(messages)
}

// invoke runs one hook, converting errors and panics into logged HookErrors
func (r *Runtime) invoke(ctx context.Context, h domain.HookRegistration, input domain.HookInput) (out *domain.HookOutput) {
	defer func() {
		if p := recover(); p != nil {
			logHookError(&domain.HookError{HookID: h.ID, Event: h.Event, Err: fmt.Errorf("panic: %v", p)})
			out = nil
		}
	}()

	var err error
	switch action := h.Action.(type) {
	case domain.RuntimeAction:
		out, err = action.Callback(ctx, input)
	case domain.ProcessAction:
		out, err = r.runProcess(ctx, action, input)
	default:
		err = fmt.Errorf("unsupported hook action %T", h.Action)
	}
	if err != nil {
		logHookError(&domain.HookError{HookID: h.ID, Event: h.Event, Err: err})
		return nil
	}
	return out
}

func logHookError(err *domain.HookError) {
	logger.Warn("Hook failed, continuing", "hook", err.HookID, "event", err.Event, "error", err)
}

func joinMessages(messages []string) string {
	return strings.Join(messages, "\n")
}
