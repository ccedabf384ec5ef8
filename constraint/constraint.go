package constraint

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// RuleType is the type of a constraint rule.
type RuleType int8

// Types of constraint rules.
const (
	LHS RuleType = iota
	RHS
	RULE
)

func (t RuleType) String() string {
	switch t {
	case LHS:
		return "LHS"
	case RHS:
		return "RHS"
	case RULE:
		return "RULE"
	}
	return fmt.Sprintf("RuleType(%d)", int8(t))
}

// MarshalText renders a rule type as its name.
func (t RuleType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a rule type name, ignoring case.
func (t *RuleType) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "LHS":
		*t = LHS
	case "RHS":
		*t = RHS
	case "RULE":
		*t = RULE
	default:
		return fmt.Errorf("unknown constraint type '%s'", text)
	}
	return nil
}

// ConstraintRule is a single constraint of a span. Which fields are used depends on
// its type: LHS constraints use LHS, RHS constraints use Target, RULE constraints
// use all fields. Source and Target are white space separated words.
type ConstraintRule struct {
	Type     RuleType  `json:"type"`
	LHS      string    `json:"lhs,omitempty"`
	Source   string    `json:"source,omitempty"`
	Target   string    `json:"target,omitempty"`
	Features []float32 `json:"features,omitempty"`
}

// ConstraintSpan is a user supplied override for the input range [Start, End).
type ConstraintSpan struct {
	Start int              `json:"start"`
	End   int              `json:"end"`
	Hard  bool             `json:"hard"`
	Rules []ConstraintRule `json:"rules"`
}

// DecodeSpans reads a JSON list of constraint spans, e.g.
//
//   [{"start": 0, "end": 2, "hard": true, "rules": [
//       {"type": "RULE", "lhs": "[X]", "source": "el gato", "target": "the cat",
//        "features": [0.3, -1.1]}]}]
//
func DecodeSpans(r io.Reader) ([]ConstraintSpan, error) {
	var spans []ConstraintSpan
	if err := json.NewDecoder(r).Decode(&spans); err != nil {
		return nil, fmt.Errorf("decoding constraint spans: %w", err)
	}
	for i, s := range spans {
		if s.Start < 0 || s.End <= s.Start {
			return nil, fmt.Errorf("constraint span #%d: invalid range [%d,%d)", i, s.Start, s.End)
		}
		for j, c := range s.Rules {
			if (c.Type == LHS || c.Type == RULE) && strings.TrimSpace(c.LHS) == "" {
				return nil, fmt.Errorf("constraint span #%d, rule #%d: %s constraint without lhs", i, j, c.Type)
			}
		}
	}
	return spans, nil
}
