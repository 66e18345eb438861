package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	config "github.com/inference-gateway/toolgate/config"
	domain "github.com/inference-gateway/toolgate/internal/domain"
	yaml "gopkg.in/yaml.v3"
)

// RuleFile is the raw content of one policy file
type RuleFile struct {
	// Path is relative to the policy directory
	Path string
	Data []byte
}

type ruleFileDocument struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Tool     string `yaml:"tool"`
	Server   string `yaml:"server"`
	Decision string `yaml:"decision"`
}

// LoadRules parses every file of a layer. Any malformed rule fails the whole load.
func LoadRules(scope domain.PolicyScope, files []RuleFile) ([]domain.PolicyRule, error) {
	var rules []domain.PolicyRule
	for _, f := range files {
		parsed, err := ParseRuleFile(scope, f.Path, f.Data)
		if err != nil {
			return nil, err
		}
		rules = append(rules, parsed...)
	}
	return rules, nil
}

// ParseRuleFile parses a single YAML policy file
func ParseRuleFile(scope domain.PolicyScope, source string, data []byte) ([]domain.PolicyRule, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc ruleFileDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &domain.PolicyLoadError{Source: source, Index: -1, Err: err}
	}

	rules := make([]domain.PolicyRule, 0, len(doc.Rules))
	for i, entry := range doc.Rules {
		rule, err := buildRule(scope, source, entry.Tool, entry.Server, entry.Decision)
		if err != nil {
			return nil, &domain.PolicyLoadError{Source: source, Index: i, Err: err}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// RulesFromConfig converts the inline settings rules into global rules
func RulesFromConfig(entries []config.RuleConfig) ([]domain.PolicyRule, error) {
	const source = "settings"

	rules := make([]domain.PolicyRule, 0, len(entries))
	for i, entry := range entries {
		rule, err := buildRule(domain.ScopeGlobal, source, entry.Tool, entry.Server, entry.Decision)
		if err != nil {
			return nil, &domain.PolicyLoadError{Source: source, Index: i, Err: err}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func buildRule(scope domain.PolicyScope, source, tool, server, decision string) (domain.PolicyRule, error) {
	if err := validatePattern("tool", tool); err != nil {
		return domain.PolicyRule{}, err
	}
	if server != "" {
		if tool == domain.WildcardTool {
			return domain.PolicyRule{}, fmt.Errorf("server %q cannot qualify a wildcard tool", server)
		}
		if server == domain.WildcardTool {
			return domain.PolicyRule{}, fmt.Errorf("server must be a concrete name")
		}
		if err := validatePattern("server", server); err != nil {
			return domain.PolicyRule{}, err
		}
	}

	d, err := domain.ParseDecision(decision)
	if err != nil {
		return domain.PolicyRule{}, err
	}

	return domain.PolicyRule{
		ToolName:   tool,
		ServerName: server,
		Decision:   d,
		Scope:      scope,
		Source:     source,
	}, nil
}

// validatePattern rejects anything outside the closed set of match kinds
func validatePattern(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if value == domain.WildcardTool {
		return nil
	}
	if strings.ContainsAny(value, "*?[]{}") {
		return fmt.Errorf("%s %q: only a lone %q is supported as a pattern", field, value, domain.WildcardTool)
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%s %q must not contain whitespace", field, value)
	}
	return nil
}
