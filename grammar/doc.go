/*
Package grammar reads synchronous grammars from text.

A grammar file holds one rule per line. Fields are separated by a format-specific
delimiter, for both formats supported here the token "|||" surrounded by white space.
The first three fields are mandatory, further fields are optional.

Hiero format (names "hiero" and "thrax"):

   [X] ||| el [X,1] ||| the [X,1] ||| 0.5 1.2 ||| 0-0 1-1

Moses hierarchical format (name "moses"); the left hand side is the last token of
the source side, nonterminals carry a source and a target label, and scores are
probabilities:

   el [X][X] [X] ||| the [X][X] [X] ||| 0.6 0.3 ||| 0-0 1-1

Typical Usage

Readers are created for a format name and an input source. Successive calls to
Next step through the rules of the input, similar to bufio.Scanner:

  reader, err := grammar.Open("hiero", "grammar.txt", vocabulary)
  if err != nil {
      ... // unknown format or file not readable
  }
  for reader.Next() {
      rule := reader.Rule()
      ...
  }
  if reader.Status() == grammar.Failed {
      ... // reader.Err() tells a malformed line from a read failure
  }

Reaching the end of input closes the underlying source automatically.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scfg.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("scfg.grammar")
}
