package constraint

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/scfg"
	"github.com/npillmayer/scfg/vocab"
)

// SourcePath accumulates the cost of the input arcs an axiom spans. For plain
// sentence input (as opposed to lattices) it is zero.
type SourcePath struct {
	Cost float32
}

// AxiomSink is implemented by a decoder's search structure. Manual rules are handed
// to it as derivation seeds for a span.
type AxiomSink interface {
	AddAxiom(start, end int, rule *scfg.Rule, path SourcePath)
}

// ManualOwner is the default owner identity of rules synthesized from constraints.
const ManualOwner scfg.OwnerID = "custom"

// Handler holds the manual constraints of a sentence.
type Handler struct {
	vocab        *vocab.Vocabulary
	sink         AxiomSink
	owner        scfg.OwnerID
	featureCount int                           // 0: take feature scores as given
	filtering    map[scfg.Span]*ConstraintSpan // spans with LHS or RHS constraints
	hardSpans    *arraylist.List               // spans with a hard RULE constraint
	interned     map[*ConstraintRule]internedConstraint
}

// internedConstraint holds the vocabulary ids of an LHS or RHS constraint.
type internedConstraint struct {
	lhs    int
	target []int
}

// Option configures a Handler.
type Option func(*Handler)

// WithOwner sets the owner identity of manual rules.
func WithOwner(owner scfg.OwnerID) Option {
	return func(h *Handler) {
		h.owner = owner
	}
}

// WithFeatureCount sets the number of dense features a grammar rule carries.
// The feature scores of RULE constraints are padded with zeros or truncated to
// this length. Without this option, scores are taken as given.
func WithFeatureCount(n int) Option {
	return func(h *Handler) {
		h.featureCount = n
	}
}

// NewHandler creates a handler for the constraint spans of a sentence. spans may be
// empty. RULE constraints are injected into sink right away, in input order.
// Spans are not copied and must not be modified while the handler is in use.
func NewHandler(v *vocab.Vocabulary, sink AxiomSink, spans []ConstraintSpan, opts ...Option) *Handler {
	h := &Handler{
		vocab:     v,
		sink:      sink,
		owner:     ManualOwner,
		filtering: make(map[scfg.Span]*ConstraintSpan),
		hardSpans: arraylist.New(),
		interned:  make(map[*ConstraintRule]internedConstraint),
	}
	for _, opt := range opts {
		opt(h)
	}
	for i := range spans {
		h.initSpan(&spans[i])
	}
	return h
}

// initSpan adds manual rules of a span into the search structure, registers the span
// for filtering if it has LHS or RHS constraints, and remembers it if it has a hard
// RULE constraint.
func (h *Handler) initSpan(cspan *ConstraintSpan) {
	span := scfg.Span{Start: cspan.Start, End: cspan.End}
	filterable := false
	for i := range cspan.Rules {
		crule := &cspan.Rules[i]
		if crule.Type != RULE {
			filterable = true
			h.interned[crule] = h.intern(crule)
			continue
		}
		rule := scfg.NewManualRule(h.owner,
			h.vocab.Nonterminal(crule.LHS),
			h.vocab.AddAll(crule.Source),
			h.vocab.AddAll(crule.Target),
			h.scores(crule, cspan.Hard),
			0) // manual rules are flat
		if cspan.Hard {
			h.hardSpans.Add(span)
		}
		if h.sink == nil {
			tracer().Errorf("no search structure to add RULE constraint for span %v", span)
			continue
		}
		h.sink.AddAxiom(cspan.Start, cspan.End, rule, SourcePath{})
		tracer().Infof("adding RULE constraint for span %v; hard=%v, lhs=%s",
			span, cspan.Hard, h.vocab.Word(rule.LHS()))
	}
	if filterable {
		if _, ok := h.filtering[span]; ok {
			tracer().Infof("LHS/RHS constraints for span %v replace earlier ones", span)
		}
		tracer().Infof("adding LHS or RHS constraint for span %v", span)
		h.filtering[span] = cspan
	}
}

// scores prepares the feature scores of a manual rule. Hard constraints get zero
// cost for every feature.
func (h *Handler) scores(crule *ConstraintRule, hard bool) []float32 {
	n := len(crule.Features)
	if h.featureCount > 0 && n != h.featureCount {
		tracer().Infof("RULE constraint '%s' has %d feature scores, adjusting to %d",
			crule.Target, n, h.featureCount)
		n = h.featureCount
	}
	scores := make([]float32, n)
	if !hard {
		copy(scores, crule.Features)
	}
	return scores
}

// FilterRules filters the grammar rules proposed for span [start, end). If no LHS or
// RHS constraints are registered for this span, rules is returned unchanged.
// Otherwise the result contains every rule which at least one constraint lets
// survive, in input order.
func (h *Handler) FilterRules(start, end int, rules []*scfg.Rule) []*scfg.Rule {
	cspan, ok := h.filtering[scfg.Span{Start: start, End: end}]
	if !ok {
		return rules
	}
	survivors := make([]*scfg.Rule, 0, len(rules))
	for _, g := range rules {
		for i := range cspan.Rules {
			if h.ShouldSurvive(&cspan.Rules[i], g) {
				survivors = append(survivors, g)
				break
			}
		}
	}
	tracer().Debugf("constraints for [%d,%d) keep %d of %d rules", start, end,
		len(survivors), len(rules))
	return survivors
}

// intern resolves the words of an LHS or RHS constraint to vocabulary ids.
func (h *Handler) intern(c *ConstraintRule) internedConstraint {
	ic := internedConstraint{}
	switch c.Type {
	case LHS:
		ic.lhs = h.vocab.Nonterminal(c.LHS)
	case RHS:
		ic.target = h.vocab.AddAll(c.Target)
	}
	return ic
}

// lookup resolves the words of a constraint without interning them. Words
// missing from the vocabulary resolve to vocab.Unknown.
func (h *Handler) lookup(c *ConstraintRule) internedConstraint {
	ic, ok := h.interned[c]
	if ok {
		return ic
	}
	switch c.Type {
	case LHS:
		ic.lhs = h.vocab.Lookup("[" + vocab.Label(c.LHS) + "]")
	case RHS:
		words := strings.Fields(c.Target)
		ic.target = make([]int, len(words))
		for i, w := range words {
			ic.target[i] = h.vocab.Lookup(w)
		}
	}
	return ic
}

// ShouldSurvive is true if constraint c lets grammar rule g survive.
// RULE constraints never let a rule survive. ShouldSurvive does not modify the
// vocabulary.
func (h *Handler) ShouldSurvive(c *ConstraintRule, g *scfg.Rule) bool {
	ic := h.lookup(c)
	switch c.Type {
	case LHS:
		return ic.lhs != vocab.Unknown && g.LHS() == ic.lhs
	case RHS:
		if len(ic.target) != len(g.Target()) {
			return false
		}
		for i, t := range g.Target() {
			if ic.target[i] == vocab.Unknown || t != ic.target[i] {
				return false
			}
		}
		return true
	}
	return false
}

// ContainHardRuleConstraint is true if span [start, end) is nested in (or equal to)
// a span with a hard RULE constraint. Decoders should derive such spans from manual
// rules only.
func (h *Handler) ContainHardRuleConstraint(start, end int) bool {
	query := scfg.Span{Start: start, End: end}
	return h.hardSpans.Any(func(_ int, value interface{}) bool {
		return value.(scfg.Span).Contains(query)
	})
}

// HasConstraints is false if the handler neither filters nor holds hard spans.
func (h *Handler) HasConstraints() bool {
	return len(h.filtering) > 0 || !h.hardSpans.Empty()
}
