/*
Package scfg is about synchronous context-free grammars as used by hierarchical
phrase-based machine translation decoders.

Description

A synchronous grammar pairs every production of a source-language grammar with a
production of a target-language grammar. Nonterminals of the two sides are linked:
the k-th nonterminal occurrence on the source side corresponds to exactly one
nonterminal occurrence on the target side, possibly at a different position. This
linkage is what lets a decoder reorder phrases while it parses the input.

An example rule in Hiero notation:

   [X] ||| ne [X,1] pas ||| does not [X,1] ||| 0.5 1.2 ||| 0-0 2-1

The left hand side is [X], the source side reads "ne [X,1] pas", the target side
reads "does not [X,1]". Fields four and five carry feature scores and a word
alignment, both optional.

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

Contents

Base package scfg holds the data model shared by all sub-packages: rules, spans
and feature vectors. Sub-packages implement the actual machinery:

  vocab        the interning table for words and nonterminal labels
  grammar      readers turning grammar text into rules (Hiero and Moses formats)
  constraint   manual constraints over input spans, injected as parser axioms
  translation  extraction of a structured translation from a finished derivation

Package scfg does not contain a chart parser. Decoders plug their search
structure into package constraint through interface constraint.AxiomSink and hand
their finished derivation graph to package translation through interface
translation.Derivation.

Tokens

Words are interned to positive integers by a vocab.Vocabulary. On the source side of
a rule nonterminals are stored as the id of their bare label (e.g. "[X]"), with the
arity position stripped. On the target side nonterminals are stored as negative
numbers: -k denotes the target slot linked to the k-th nonterminal of the source side.
Terminal tokens are always positive on both sides.
*/
package scfg

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}
