package scheduler

import (
	"context"

	domain "github.com/inference-gateway/toolgate/internal/domain"
)

// plannedCall is a request with the decision computed for its wave
type plannedCall struct {
	req      domain.ToolCallRequest
	decision domain.ToolCallDecision
	effect   domain.Effect
}

// plannedWave is a wave together with the decisions computed while building it
type plannedWave struct {
	index    int
	parallel bool
	calls    []plannedCall
	// denied read-only calls resolve immediately without executing
	denied []plannedCall
}

func (p *plannedWave) members() int {
	return len(p.calls) + len(p.denied)
}

func (p *plannedWave) domainWave() domain.Wave {
	w := domain.Wave{Index: p.index, Parallel: p.parallel}
	for _, c := range p.calls {
		w.Requests = append(w.Requests, c.req)
	}
	return w
}

// nextWave consumes requests from the head of pending until the current wave
// must close. A mutating request that closes a non-empty wave is left
// unevaluated, and a read-only ASK_USER that closes a wave is evaluated again
// when its own wave starts. Trust is resolved for every request, so a trust
// change made during an earlier wave applies to the next one.
func (s *Scheduler) nextWave(ctx context.Context, index int, pending []domain.ToolCallRequest) (*plannedWave, []domain.ToolCallRequest) {
	p := &plannedWave{index: index}

	i := 0
	for ; i < len(pending); i++ {
		req := pending[i]
		effect := s.effectOf(req)

		if effect == domain.EffectMutating && p.members() > 0 {
			break
		}

		call := plannedCall{req: req, effect: effect, decision: s.engine.Decide(req, effect, s.trust(ctx))}

		if call.decision.Decision == domain.DecisionDeny && effect == domain.EffectReadOnly {
			p.denied = append(p.denied, call)
			continue
		}

		if effect == domain.EffectMutating || call.decision.Decision != domain.DecisionAllow {
			if p.members() > 0 {
				break
			}
			p.calls = []plannedCall{call}
			i++
			break
		}

		p.calls = append(p.calls, call)
		p.parallel = true
	}

	return p, pending[i:]
}

// effectOf classifies a request by its qualified name, so MCP tools are
// never mistaken for a local tool of the same name
func (s *Scheduler) effectOf(req domain.ToolCallRequest) domain.Effect {
	return s.tools.EffectOf(req.QualifiedName())
}
