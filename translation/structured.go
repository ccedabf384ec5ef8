package translation

import (
	"reflect"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/npillmayer/scfg"
)

// Sentence is an input sentence.
type Sentence struct {
	ID   int
	Text string
}

// Words splits the sentence at white space.
func (s *Sentence) Words() []string {
	return strings.Fields(s.Text)
}

// FeatureFunction is a scoring function of the decoder. Extraction only needs to know
// its name; scores are aggregated by the derivation.
type FeatureFunction interface {
	Name() string
}

// Derivation is the finished derivation graph of a sentence. All methods refer to
// the best (Viterbi) derivation.
type Derivation interface {
	// ViterbiString returns the target string, including sentence markers.
	ViterbiString() string
	// GoalScore is the accumulated score of the best derivation.
	GoalScore() float32
	// ViterbiFeatures aggregates feature values along the best derivation.
	ViterbiFeatures(ffs []FeatureFunction, src *Sentence) scfg.FeatureVector
	// ViterbiWordAlignments lists, for every target token, the source positions
	// it is aligned to.
	ViterbiWordAlignments() [][]int
}

// Sentence boundary markers.
const (
	BeginOfSentence = "<s>"
	EndOfSentence   = "</s>"
)

// StructuredTranslation is the translation of a sentence, extracted from the best
// derivation. It is immutable.
type StructuredTranslation struct {
	source     *Sentence
	text       string
	tokens     []string
	score      float32
	alignments [][]int
	features   scfg.FeatureVector
	extraction time.Duration
}

// New extracts a structured translation from a finished derivation. d may be nil,
// or hold a nil pointer, if the search did not find a derivation.
func New(src *Sentence, d Derivation, ffs []FeatureFunction) *StructuredTranslation {
	start := time.Now()
	st := &StructuredTranslation{source: src}
	if isNil(d) {
		tracer().Infof("no derivation for sentence %d", st.SentenceID())
		st.tokens = []string{}
		st.alignments = [][]int{}
		st.features = scfg.FeatureVector{}
	} else {
		st.text = RemoveSentenceMarkers(d.ViterbiString())
		st.tokens = strings.Fields(st.text)
		st.score = d.GoalScore()
		st.features = copyFeatures(d.ViterbiFeatures(ffs, src))
		st.alignments = copyAlignments(d.ViterbiWordAlignments())
	}
	st.extraction = time.Since(start)
	tracer().Debugf("extracted translation of sentence %d in %v", st.SentenceID(), st.extraction)
	return st
}

// RemoveSentenceMarkers removes sentence boundary tokens from s.
func RemoveSentenceMarkers(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if w != BeginOfSentence && w != EndOfSentence {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// SourceSentence returns the sentence which has been translated.
func (st *StructuredTranslation) SourceSentence() *Sentence {
	return st.source
}

// SentenceID returns the id of the source sentence, or -1 if there is none.
func (st *StructuredTranslation) SentenceID() int {
	if st.source == nil {
		return -1
	}
	return st.source.ID
}

// TranslationString returns the translation text.
func (st *StructuredTranslation) TranslationString() string {
	return st.text
}

// TranslationTokens returns the words of the translation.
func (st *StructuredTranslation) TranslationTokens() []string {
	tokens := make([]string, len(st.tokens))
	copy(tokens, st.tokens)
	return tokens
}

// TranslationScore returns the score of the best derivation.
func (st *StructuredTranslation) TranslationScore() float32 {
	return st.score
}

// TranslationWordAlignments returns target to source alignments: for every target
// token the list of source positions it is aligned to.
func (st *StructuredTranslation) TranslationWordAlignments() [][]int {
	return copyAlignments(st.alignments)
}

// TranslationFeatures returns the feature values of the best derivation.
func (st *StructuredTranslation) TranslationFeatures() scfg.FeatureVector {
	return copyFeatures(st.features)
}

// ExtractionTime is the time it took to build st from the derivation.
func (st *StructuredTranslation) ExtractionTime() time.Duration {
	return st.extraction
}

type jsonTranslation struct {
	SentenceID   int                `json:"sentence_id"`
	Translation  string             `json:"translation"`
	Tokens       []string           `json:"tokens"`
	Score        float32            `json:"score"`
	Features     map[string]float32 `json:"features"`
	Alignments   [][]int            `json:"alignments"`
	ExtractionMS float64            `json:"extraction_time_ms"`
}

// MarshalJSON renders st as a JSON object.
func (st *StructuredTranslation) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonTranslation{
		SentenceID:   st.SentenceID(),
		Translation:  st.text,
		Tokens:       st.tokens,
		Score:        st.score,
		Features:     st.features,
		Alignments:   st.alignments,
		ExtractionMS: float64(st.extraction) / float64(time.Millisecond),
	})
}

func isNil(d Derivation) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func copyFeatures(fv scfg.FeatureVector) scfg.FeatureVector {
	c := make(scfg.FeatureVector, len(fv))
	for k, v := range fv {
		c[k] = v
	}
	return c
}

func copyAlignments(al [][]int) [][]int {
	c := make([][]int, len(al))
	for i, a := range al {
		c[i] = append([]int{}, a...)
	}
	return c
}
