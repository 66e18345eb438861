package policy

import (
	"sort"
	"sync"
	"sync/atomic"

	domain "github.com/inference-gateway/toolgate/internal/domain"
)

// Layer is the set of rules contributed by one scope+identifier
type Layer struct {
	Scope      domain.PolicyScope
	Identifier string
	Rules      []domain.PolicyRule
	// Order ranks layers of the same scope, lowest first
	Order int
}

// RuleSet is an immutable, ordered collection of rules.
// Rules are ordered by scope precedence (global, extension, workspace),
// then layer order, then file order.
type RuleSet struct {
	rules []domain.PolicyRule
}

// EmptyRuleSet has no rules; every evaluation falls through to the defaults
var EmptyRuleSet = &RuleSet{}

// NewRuleSet merges layers into a single ordered rule set
func NewRuleSet(layers ...Layer) *RuleSet {
	ordered := append([]Layer(nil), layers...)
	sortLayers(ordered)

	var rules []domain.PolicyRule
	for _, layer := range ordered {
		rules = append(rules, layer.Rules...)
	}
	return &RuleSet{rules: rules}
}

func sortLayers(layers []Layer) {
	sort.SliceStable(layers, func(i, j int) bool {
		pi, pj := layers[i].Scope.Precedence(), layers[j].Scope.Precedence()
		if pi != pj {
			return pi < pj
		}
		if layers[i].Order != layers[j].Order {
			return layers[i].Order < layers[j].Order
		}
		return layers[i].Identifier < layers[j].Identifier
	})
}

// Rules returns a copy of the ordered rules
func (s *RuleSet) Rules() []domain.PolicyRule {
	if s == nil {
		return nil
	}
	return append([]domain.PolicyRule(nil), s.rules...)
}

// Len returns the number of rules
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Match returns the first matching rule at the highest specificity
func (s *RuleSet) Match(req domain.ToolCallRequest) (domain.PolicyRule, bool) {
	if s == nil {
		return domain.PolicyRule{}, false
	}

	var (
		best  domain.PolicyRule
		found bool
	)
	for _, rule := range s.rules {
		if !rule.Matches(req) {
			continue
		}
		if !found || rule.Kind() > best.Kind() {
			best = rule
			found = true
			if best.Kind() == domain.MatchExact {
				break
			}
		}
	}
	return best, found
}

// RuleStore publishes the active rule set with copy-on-write semantics.
// Readers call Current and never observe a partially applied reload.
type RuleStore struct {
	current atomic.Pointer[RuleSet]

	mu     sync.Mutex
	layers map[string]Layer
	orders map[string]int
}

// NewRuleStore creates a store whose active set is empty
func NewRuleStore() *RuleStore {
	s := &RuleStore{layers: make(map[string]Layer), orders: make(map[string]int)}
	s.current.Store(EmptyRuleSet)
	return s
}

// Current returns the active rule set
func (s *RuleStore) Current() *RuleSet {
	return s.current.Load()
}

// ReplaceLayer swaps the rules of one scope+identifier and publishes a new merged set
func (s *RuleStore) ReplaceLayer(layer Layer) *RuleSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	layer.Rules = append([]domain.PolicyRule(nil), layer.Rules...)
	s.layers[domain.IntegrityKey(layer.Scope, layer.Identifier)] = layer
	return s.publish()
}

// SetOrder fixes the rank of a layer within its scope. It applies to the
// layer whenever it is replaced, so reloads keep their place.
func (s *RuleStore) SetOrder(scope domain.PolicyScope, identifier string, order int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.IntegrityKey(scope, identifier)
	s.orders[key] = order
	if _, ok := s.layers[key]; ok {
		s.publish()
	}
}

// RemoveLayer drops a layer and publishes a new merged set
func (s *RuleStore) RemoveLayer(scope domain.PolicyScope, identifier string) *RuleSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.layers, domain.IntegrityKey(scope, identifier))
	return s.publish()
}

// Layers returns a snapshot of the loaded layers in precedence order
func (s *RuleStore) Layers() []Layer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.ordered()
	sortLayers(out)
	return out
}

func (s *RuleStore) ordered() []Layer {
	layers := make([]Layer, 0, len(s.layers))
	for key, l := range s.layers {
		if order, ok := s.orders[key]; ok {
			l.Order = order
		}
		layers = append(layers, l)
	}
	return layers
}

func (s *RuleStore) publish() *RuleSet {
	set := NewRuleSet(s.ordered()...)
	s.current.Store(set)
	return set
}
