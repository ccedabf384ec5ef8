package constraint

import "github.com/npillmayer/scfg"

// Axiom is a manual rule added to a search structure for a span.
type Axiom struct {
	Span scfg.Span
	Rule *scfg.Rule
	Path SourcePath
}

// AxiomRecorder is an AxiomSink which keeps axioms in the order they are added.
// It is useful for inspecting constraint files without running a decoder.
type AxiomRecorder struct {
	Axioms []Axiom
}

// AddAxiom is part of interface AxiomSink.
func (rec *AxiomRecorder) AddAxiom(start, end int, rule *scfg.Rule, path SourcePath) {
	rec.Axioms = append(rec.Axioms, Axiom{
		Span: scfg.Span{Start: start, End: end},
		Rule: rule,
		Path: path,
	})
}

var _ AxiomSink = &AxiomRecorder{}
