package grammar

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/scfg"
	"github.com/npillmayer/scfg/vocab"
)

// Status is the state of a Reader.
type Status int8

// A reader is Reading as long as rules may follow. Done signals that the input was
// consumed completely, Failed that reading stopped early, either because of a malformed
// line or because the underlying input failed.
const (
	Reading Status = iota
	Done
	Failed
)

func (s Status) String() string {
	switch s {
	case Reading:
		return "reading"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return "?"
}

// progressStep is the number of rules between two progress messages.
const progressStep = 100000

// Reader is a forward-only reader for grammar rules. It reads one line ahead,
// so HasNext can be answered without consuming a rule.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	format    Format
	vocab     *vocab.Vocabulary
	owner     scfg.OwnerID
	name      string
	lines     *bufio.Reader
	closer    io.Closer // nil if input is not closable or already closed
	lookahead string
	hasLA     bool
	lineNo    int // line number of lookahead
	rule      *scfg.Rule
	rulesRead int
	parseErr  error // malformed line
	readErr   error // failure of underlying input
}

// Option configures a Reader.
type Option func(*Reader)

// WithOwner sets the owner identity stamped onto every rule read.
func WithOwner(owner scfg.OwnerID) Option {
	return func(r *Reader) {
		r.owner = owner
	}
}

// WithName sets the name of the grammar source used in messages.
func WithName(name string) Option {
	return func(r *Reader) {
		r.name = name
	}
}

// NewReader creates a reader for grammar rules in a given format. If input implements
// io.Closer, it will be closed when the end of input is reached or when the reader
// is closed.
func NewReader(format Format, input io.Reader, v *vocab.Vocabulary, opts ...Option) *Reader {
	r := &Reader{
		format: format,
		vocab:  v,
		owner:  scfg.DefaultOwner,
		name:   "<input>",
	}
	for _, opt := range opts {
		opt(r)
	}
	if input == nil {
		input = strings.NewReader("")
	}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	r.lines = bufio.NewReader(input)
	tracer().Infof("reading grammar from %s (%s)", r.name, format.Description())
	r.advance()
	return r
}

// Open resolves a format name and opens a grammar file. An unknown format name is
// reported before the file is touched.
func Open(formatName, path string, v *vocab.Vocabulary, opts ...Option) (*Reader, error) {
	format, err := NewFormat(formatName)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithName(path)}, opts...)
	return NewReader(format, f, v, opts...), nil
}

// Format returns the format of the reader.
func (r *Reader) Format() Format {
	return r.format
}

// HasNext is true if another line is waiting to be parsed.
func (r *Reader) HasNext() bool {
	return r.hasLA
}

// Next parses the next rule, which is then available through Rule. It returns
// false if no more rules are available, either because the end of input has been
// reached or because of an error. Clients should consult Status or Err to tell
// these cases apart.
func (r *Reader) Next() bool {
	if !r.hasLA || r.parseErr != nil {
		r.rule = nil
		return false
	}
	line, lineNo := r.lookahead, r.lineNo
	r.advance()
	rule, err := r.ParseLine(line)
	if err != nil {
		var ferr *FormatError
		if errors.As(err, &ferr) {
			ferr.Source, ferr.Line = r.name, lineNo
		}
		tracer().Errorf("%v", err)
		r.parseErr = err
		r.rule = nil
		r.hasLA = false
		_ = r.Close()
		return false
	}
	r.rule = rule
	r.rulesRead++
	if r.rulesRead%progressStep == 0 {
		tracer().Infof("%s: %d rules read", r.name, r.rulesRead)
	}
	return true
}

// Rule returns the rule produced by the most recent call to Next.
func (r *Reader) Rule() *scfg.Rule {
	return r.rule
}

// ParseLine converts a single line of grammar text into a rule, using the format,
// vocabulary and owner of r. It does not affect iteration.
func (r *Reader) ParseLine(line string) (*scfg.Rule, error) {
	return r.format.ParseLine(line, r.vocab, r.owner)
}

// ToWords renders a rule in the format of r.
func (r *Reader) ToWords(rule *scfg.Rule) string {
	return r.format.ToWords(rule, r.vocab)
}

// ToWordsWithoutFeatureScores renders a rule in the format of r, omitting features
// and alignment.
func (r *Reader) ToWordsWithoutFeatureScores(rule *scfg.Rule) string {
	return r.format.ToWordsWithoutFeatureScores(rule, r.vocab)
}

// RulesRead returns the number of rules read so far.
func (r *Reader) RulesRead() int {
	return r.rulesRead
}

// Status reports whether more rules may follow, or why iteration ended.
func (r *Reader) Status() Status {
	switch {
	case r.parseErr != nil:
		return Failed
	case r.hasLA:
		return Reading
	case r.readErr != nil:
		return Failed
	}
	return Done
}

// Err returns the error which ended iteration, if any: a *FormatError for a
// malformed line, a *ReadError for a failure of the underlying input.
func (r *Reader) Err() error {
	if r.parseErr != nil {
		return r.parseErr
	}
	if !r.hasLA {
		return r.readErr
	}
	return nil
}

// All reads the remaining rules.
func (r *Reader) All() ([]*scfg.Rule, error) {
	var rules []*scfg.Rule
	for r.Next() {
		rules = append(rules, r.rule)
	}
	return rules, r.Err()
}

// Close closes the underlying input. It is safe to call Close more than once.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	if err := c.Close(); err != nil {
		tracer().Errorf("error closing grammar source %s: %v", r.name, err)
		return err
	}
	return nil
}

// advance reads the next non-blank line into the lookahead. At end of input, or if
// reading fails, the input is closed.
func (r *Reader) advance() {
	r.hasLA = false
	for r.readErr == nil {
		line, err := r.lines.ReadString('\n')
		if err != nil && err != io.EOF {
			tracer().Errorf("error reading grammar from %s: %v", r.name, err)
			r.readErr = &ReadError{Source: r.name, Line: r.lineNo, Err: err}
			break
		}
		if line == "" && err == io.EOF {
			break
		}
		r.lineNo++
		if line = strings.TrimRight(line, "\r\n"); strings.TrimSpace(line) != "" {
			r.lookahead, r.hasLA = line, true
			return
		}
		if err == io.EOF {
			break
		}
	}
	_ = r.Close()
}
