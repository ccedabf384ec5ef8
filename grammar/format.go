package grammar

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/npillmayer/scfg"
	"github.com/npillmayer/scfg/vocab"
)

// Format is the per-format part of a grammar reader: how to split a line into
// fields, how to recognize nonterminals, and how to render a rule as text.
// The iteration skeleton is shared by all formats (see Reader).
type Format interface {
	Name() string
	Description() string
	// ParseLine converts a single line of grammar text into a rule. Malformed lines
	// result in a *FormatError.
	ParseLine(line string, v *vocab.Vocabulary, owner scfg.OwnerID) (*scfg.Rule, error)
	// IsNonterminal checks a surface token against the format's nonterminal pattern.
	IsNonterminal(token string) bool
	ToWords(r *scfg.Rule, v *vocab.Vocabulary) string
	ToWordsWithoutFeatureScores(r *scfg.Rule, v *vocab.Vocabulary) string
}

// ErrUnknownFormat is returned for grammar format names without an implementation.
var ErrUnknownFormat = errors.New("unknown grammar format")

// NewFormat resolves a format name to its implementation.
// "hiero" and "thrax" denote the Hiero format, "moses" the Moses hierarchical format.
func NewFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hiero", "thrax":
		return HieroFormat{}, nil
	case "moses":
		return MosesFormat{}, nil
	}
	tracer().Errorf("FATAL: unknown grammar format '%s'", name)
	return nil, fmt.Errorf("%w '%s'", ErrUnknownFormat, name)
}

// FormatError flags a grammar line which could not be parsed.
type FormatError struct {
	Source string // name of the grammar source, if known
	Line   int    // line number within the source, if known
	Text   string // the offending line
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("grammar %s, line %d: %s: '%s'", e.Source, e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("grammar rule %s: '%s'", e.Reason, e.Text)
}

// ReadError flags a failure of the underlying input while reading grammar lines.
type ReadError struct {
	Source string
	Line   int // number of lines successfully read before the failure
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading grammar %s after line %d: %v", e.Source, e.Line, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// splitFields splits line at delimiter and trims the fields. Lines with fewer than
// min fields are rejected.
func splitFields(line string, delimiter *regexp.Regexp, min int) ([]string, error) {
	fields := delimiter.Split(line, -1)
	if len(fields) < min {
		return nil, &FormatError{
			Text:   line,
			Reason: fmt.Sprintf("does not have at least %d fields", min),
		}
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// optionalField returns fields[i] or the empty string.
func optionalField(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// slotAssigner hands out the arity positions of source nonterminals to target
// nonterminals which are not linked explicitly. Explicit links are reserved first.
type slotAssigner struct {
	arity int
	used  map[int]bool
}

func newSlotAssigner(arity int) *slotAssigner {
	return &slotAssigner{arity: arity, used: make(map[int]bool, arity)}
}

func (s *slotAssigner) reserve(k int) {
	if k > 0 {
		s.used[k] = true
	}
}

// next returns the lowest arity position not yet used.
func (s *slotAssigner) next() (int, bool) {
	for k := 1; k <= s.arity; k++ {
		if !s.used[k] {
			s.used[k] = true
			return k, true
		}
	}
	return 0, false
}
