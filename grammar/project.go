package grammar

import (
	"errors"

	"github.com/npillmayer/gorgo/lr"
	"github.com/npillmayer/scfg"
	"github.com/npillmayer/scfg/vocab"
)

// terminalOffset shifts vocabulary ids into the token value range of terminals;
// smaller token values are reserved by package lr.
const terminalOffset = 1000

// Project builds the context-free grammar spanned by the source sides of a set of
// synchronous rules and runs the LR analysis on it (FIRST and FOLLOW sets). The left
// hand side of the first rule becomes the start symbol.
//
// Projection is a diagnostic tool: clients may dump the grammar or inspect its
// symbols, e.g., to detect nonterminals without any derivation.
func Project(name string, rules []*scfg.Rule, v *vocab.Vocabulary) (*lr.LRAnalysis, error) {
	if len(rules) == 0 {
		return nil, errors.New("cannot project an empty set of rules")
	}
	b := lr.NewGrammarBuilder(name)
	for _, r := range rules {
		rb := b.LHS(v.Label(r.LHS()))
		if len(r.Source()) == 0 {
			rb.Epsilon()
			continue
		}
		for _, id := range r.Source() {
			if v.IsNonterminal(id) {
				rb = rb.N(v.Label(id))
			} else {
				rb = rb.T(terminal(id, v))
			}
		}
		rb.End()
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	tracer().Infof("projected %d rules onto context-free grammar '%s'", len(rules), name)
	return lr.Analysis(g), nil
}

func terminal(id int, v *vocab.Vocabulary) (string, int) {
	return ":" + v.Word(id), id + terminalOffset
}
