package scfg

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// OwnerID identifies the grammar (or translation table) a rule belongs to.
// Dense feature scores of a rule are named after its owner.
type OwnerID string

// DefaultOwner is used for rules of grammars which did not specify an owner.
const DefaultOwner OwnerID = "pt"

// Rule is a synchronous grammar production. Rules are immutable once
// constructed; the slices handed out by Source and Target must not be modified
// by clients.
//
// Source tokens are positive vocabulary ids, where nonterminals are represented by
// their bare label. Target tokens are positive vocabulary ids for terminals and
// negative slot indices -k for nonterminals, with k referring to the k-th nonterminal
// of the source side.
type Rule struct {
	owner     OwnerID
	lhs       int
	source    []int
	target    []int
	arity     int
	features  string    // raw feature text, parsed on demand
	scores    []float32 // pre-computed scores of manual rules, nil otherwise
	alignment string

	once     sync.Once
	parsed   FeatureVector
	parseErr error
}

// NewRule creates a rule as read from a grammar source. features is the raw text of the
// feature field and will be parsed lazily. An empty alignment denotes a rule without
// word alignment.
func NewRule(owner OwnerID, lhs int, source, target []int, arity int, features, alignment string) *Rule {
	return &Rule{
		owner:     owner,
		lhs:       lhs,
		source:    source,
		target:    target,
		arity:     arity,
		features:  features,
		alignment: alignment,
	}
}

// NewManualRule creates a rule from pre-computed dense feature scores. Rules of this
// kind are synthesized from user constraints rather than read from a grammar.
func NewManualRule(owner OwnerID, lhs int, source, target []int, scores []float32, arity int) *Rule {
	sc := make([]float32, len(scores))
	copy(sc, scores)
	return &Rule{
		owner:    owner,
		lhs:      lhs,
		source:   source,
		target:   target,
		arity:    arity,
		features: formatScores(sc),
		scores:   sc,
	}
}

// Owner returns the identity of the grammar this rule belongs to.
func (r *Rule) Owner() OwnerID { return r.owner }

// LHS returns the vocabulary id of the left hand side label.
func (r *Rule) LHS() int { return r.lhs }

// Source returns the source-side tokens.
func (r *Rule) Source() []int { return r.source }

// Target returns the target-side tokens.
func (r *Rule) Target() []int { return r.target }

// Arity is the number of nonterminal slots of r.
func (r *Rule) Arity() int { return r.arity }

// FeatureString returns the raw text of the feature field.
func (r *Rule) FeatureString() string { return r.features }

// IsManual is true for rules synthesized from pre-computed scores.
func (r *Rule) IsManual() bool { return r.scores != nil }

// Alignment returns the word alignment annotation of a rule, if present.
func (r *Rule) Alignment() (string, bool) {
	return r.alignment, r.alignment != ""
}

// Features returns the feature vector of r. The feature text is parsed on first call
// and cached; subsequent calls return the same vector (and error).
func (r *Rule) Features() (FeatureVector, error) {
	r.once.Do(func() {
		if r.scores != nil {
			r.parsed = denseVector(r.owner, r.scores)
			return
		}
		r.parsed, r.parseErr = ParseFeatures(r.owner, r.features)
		if r.parseErr != nil {
			CT().Errorf("rule features: %v", r.parseErr)
		}
	})
	return r.parsed, r.parseErr
}

// DenseScores returns the unnamed feature scores of r in order of appearance.
// Sparse (named) features are not included.
func (r *Rule) DenseScores() ([]float32, error) {
	if r.scores != nil {
		sc := make([]float32, len(r.scores))
		copy(sc, r.scores)
		return sc, nil
	}
	var scores []float32
	for _, f := range strings.Fields(r.features) {
		if strings.ContainsRune(f, '=') {
			continue
		}
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("rule feature %q: %w", f, err)
		}
		scores = append(scores, float32(v))
	}
	return scores, nil
}

func (r *Rule) String() string {
	return fmt.Sprintf("rule[%d → %v | %v, arity=%d, owner=%s]", r.lhs, r.source, r.target,
		r.arity, r.owner)
}

func formatScores(scores []float32) string {
	var sb strings.Builder
	for i, s := range scores {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(float64(s), 'g', -1, 32))
	}
	return sb.String()
}
