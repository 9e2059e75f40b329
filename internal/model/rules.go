package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CategoryRule maps a category name to the keywords that select it.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// RuleSet is an ordered list of category rules. Order is the classifier's
// precedence: the first category with a matching keyword wins, so two rule
// sets with the same rules in different orders are different rule sets.
type RuleSet struct {
	Rules []CategoryRule
}

// UnmarshalJSON decodes a JSON object of the form
// {"Revenue": ["stripe"], "Tech": ["github"]} preserving key order.
// encoding/json maps would lose declaration order, which the classifier
// depends on, so the object is walked token by token instead.
func (rs *RuleSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected JSON object, got %v", tok)
	}

	rs.Rules = rs.Rules[:0]
	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return keyErr
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categories: expected string key, got %v", keyTok)
		}

		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return fmt.Errorf("categories[%s]: %w", name, err)
		}

		for i, kw := range keywords {
			keywords[i] = strings.ToLower(kw)
		}
		rs.Rules = append(rs.Rules, CategoryRule{Name: name, Keywords: keywords})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON renders the rule set back to the object form it was read from.
func (rs RuleSet) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, rule := range rs.Rules {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(rule.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(rule.Keywords)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// Names returns the category names in declaration order.
func (rs RuleSet) Names() []string {
	names := make([]string, len(rs.Rules))
	for i, rule := range rs.Rules {
		names[i] = rule.Name
	}
	return names
}

// Len reports the number of rules.
func (rs RuleSet) Len() int {
	return len(rs.Rules)
}
