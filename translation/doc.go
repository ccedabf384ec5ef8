/*
Package translation builds structured translations from finished derivations.

After a decoder's search has finished for a sentence, its derivation graph holds the
best (Viterbi) derivation. A StructuredTranslation is a read-only snapshot of what
downstream consumers need from it: the translation text and tokens, the score, the
feature values and the word alignment of the best derivation.

The derivation graph itself is not part of this package; decoders hand it in through
interface Derivation. A missing derivation (the search did not find any) is not an
error; it results in an empty translation with score 0.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package translation

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scfg.translation'.
func tracer() tracing.Trace {
	return tracing.Select("scfg.translation")
}
