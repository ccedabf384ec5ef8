/*
Package constraint lets users override automatic decoding in regions of the input.

A ConstraintSpan covers a half-open range [start, end) of input positions and lists
one or more constraint rules:

  LHS    only grammar rules with this left hand side may be used for the span
  RHS    only grammar rules with exactly this target side may be used for the span
  RULE   a flat rule (no nonterminals) given by the user, added to the search space

LHS and RHS constraints act as filters on the rules a decoder proposes for exactly
the constrained span. RULE constraints never filter; they are injected into the
decoder's search structure as axioms. A hard RULE constraint has all its feature
costs forced to zero, and the decoder is expected to derive its span (and every span
nested in it) from manual rules only; see Handler.ContainHardRuleConstraint.

Only one ConstraintSpan per span may act as filter. If the input lists more than one
span with LHS or RHS constraints for the same [start, end), the last one wins.

A Handler is created per sentence, before the decoder starts applying rules, and is
read-only afterwards.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package constraint

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scfg.constraint'.
func tracer() tracing.Trace {
	return tracing.Select("scfg.constraint")
}
