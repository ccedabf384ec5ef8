/*
Package vocab implements the interning table for words and nonterminal labels.

A Vocabulary maps surface strings to stable positive integers and back. Surface
strings are normalized to Unicode NFC before interning, so canonically equivalent
spellings share one id. Id 0 is reserved and never handed out.

Nonterminals are strings enclosed in brackets, e.g. "[X]" or "[NP,2]". For decorated
nonterminals the vocabulary records the decoration in its reordering table: the id of
"[NP,2]" maps to slot 2. Readers use this table to encode target-side nonterminals.

A Vocabulary is safe for concurrent use. Its lifecycle is explicit: clients create
one per decoding run and hand it to grammar readers and constraint handlers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package vocab

import (
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'scfg.vocab'.
func tracer() tracing.Trace {
	return tracing.Select("scfg.vocab")
}

// Unknown is the id returned for words not present in a vocabulary.
const Unknown = 0

// Vocabulary is a bidirectional string ↔ integer interning table.
type Vocabulary struct {
	mu    sync.RWMutex
	ids   map[string]int
	words []string    // words[id]; words[0] is a placeholder for Unknown
	nts   map[int]int // nonterminal id → reordering slot (0 = undecorated)
}

// New creates an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{
		ids:   make(map[string]int),
		words: []string{"<unk>"},
		nts:   make(map[int]int),
	}
}

// ID interns word and returns its id.
func (v *Vocabulary) ID(word string) int {
	word = norm.NFC.String(word)
	v.mu.RLock()
	id, ok := v.ids[word]
	v.mu.RUnlock()
	if ok {
		return id
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if id, ok = v.ids[word]; ok { // interned concurrently
		return id
	}
	id = len(v.words)
	v.words = append(v.words, word)
	v.ids[word] = id
	if IsNonterminal(word) {
		v.nts[id] = decoration(word)
	}
	return id
}

// IDs interns a sequence of words.
func (v *Vocabulary) IDs(words []string) []int {
	ids := make([]int, len(words))
	for i, w := range words {
		ids[i] = v.ID(w)
	}
	return ids
}

// AddAll splits text at white space and interns every word.
func (v *Vocabulary) AddAll(text string) []int {
	return v.IDs(strings.Fields(text))
}

// Lookup returns the id of word without interning it. If word is not present,
// Unknown is returned.
func (v *Vocabulary) Lookup(word string) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.ids[norm.NFC.String(word)]
}

// Word returns the surface string for id. Unknown ids map to "<unk>".
func (v *Vocabulary) Word(id int) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if id <= 0 || id >= len(v.words) {
		return v.words[Unknown]
	}
	return v.words[id]
}

// Words returns the surface strings for ids, separated by a single blank.
func (v *Vocabulary) Words(ids []int) string {
	ws := make([]string, len(ids))
	for i, id := range ids {
		ws[i] = v.Word(id)
	}
	return strings.Join(ws, " ")
}

// Size returns the number of interned words.
func (v *Vocabulary) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.words) - 1
}

// Nonterminal interns a nonterminal label. Bare labels like "X" are wrapped in
// brackets; decorated labels like "[X,1]" lose their decoration.
func (v *Vocabulary) Nonterminal(label string) int {
	return v.ID("[" + Label(label) + "]")
}

// IsNonterminal is true if id denotes a nonterminal.
func (v *Vocabulary) IsNonterminal(id int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.nts[id]
	return ok
}

// TargetNonterminalIndex looks up the reordering slot of a nonterminal id, i.e. the
// decoration of "[X,k]". It returns 0 for undecorated nonterminals and for terminals.
func (v *Vocabulary) TargetNonterminalIndex(id int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.nts[id]
}

// Label returns the label of id with brackets and decoration removed, e.g. "X" for
// "[X,1]". For terminals the surface string is returned unchanged.
func (v *Vocabulary) Label(id int) string {
	w := v.Word(id)
	if !IsNonterminal(w) {
		return w
	}
	return Label(w)
}

// --- Surface forms ---------------------------------------------------------

// IsNonterminal is true if word has the surface form of a nonterminal.
func IsNonterminal(word string) bool {
	return len(word) > 2 && word[0] == '[' && word[len(word)-1] == ']'
}

// Label strips brackets and positional decoration from a nonterminal surface
// string. Strings without brackets are taken to be labels already.
func Label(word string) string {
	w := strings.TrimSuffix(strings.TrimPrefix(word, "["), "]")
	if i := strings.LastIndexByte(w, ','); i >= 0 {
		if _, err := strconv.Atoi(strings.TrimSpace(w[i+1:])); err == nil {
			w = w[:i]
		}
	}
	return w
}

// Decorate returns the surface string "[label,k]".
func Decorate(label string, k int) string {
	return "[" + label + "," + strconv.Itoa(k) + "]"
}

func decoration(word string) int {
	w := word[1 : len(word)-1]
	i := strings.LastIndexByte(w, ',')
	if i < 0 {
		return 0
	}
	k, err := strconv.Atoi(strings.TrimSpace(w[i+1:]))
	if err != nil || k < 0 {
		tracer().Debugf("nonterminal %q has no numeric decoration", word)
		return 0
	}
	return k
}
