package translation

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/scfg"
)

// fakeDerivation stands in for a decoder's finished derivation graph.
type fakeDerivation struct {
	text       string
	score      float32
	alignments [][]int
	calls      int // calls to ViterbiFeatures
}

func (d *fakeDerivation) ViterbiString() string { return d.text }
func (d *fakeDerivation) GoalScore() float32    { return d.score }

func (d *fakeDerivation) ViterbiFeatures(ffs []FeatureFunction, src *Sentence) scfg.FeatureVector {
	d.calls++
	fv := scfg.FeatureVector{}
	for i, ff := range ffs {
		fv[ff.Name()] = float32(i) + 0.5
	}
	return fv
}

func (d *fakeDerivation) ViterbiWordAlignments() [][]int { return d.alignments }

type namedFF string

func (ff namedFF) Name() string { return string(ff) }

func TestExtraction(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	src := &Sentence{ID: 7, Text: "el gato negro"}
	d := &fakeDerivation{
		text:       "<s> the black cat </s>",
		score:      -3.25,
		alignments: [][]int{{0}, {2}, {1}},
	}
	st := New(src, d, []FeatureFunction{namedFF("lm_0"), namedFF("tm_pt_0")})
	if st.TranslationString() != "the black cat" {
		t.Errorf("expected 'the black cat', have %q", st.TranslationString())
	}
	if tokens := st.TranslationTokens(); len(tokens) != 3 || tokens[2] != "cat" {
		t.Errorf("unexpected tokens %v", tokens)
	}
	if st.TranslationScore() != -3.25 {
		t.Errorf("expected score -3.25, have %v", st.TranslationScore())
	}
	if f := st.TranslationFeatures(); len(f) != 2 || f["tm_pt_0"] != 1.5 {
		t.Errorf("unexpected features %v", f)
	}
	if al := st.TranslationWordAlignments(); len(al) != 3 || al[1][0] != 2 {
		t.Errorf("unexpected alignments %v", al)
	}
	if st.SentenceID() != 7 || st.SourceSentence() != src {
		t.Errorf("expected reference to source sentence 7")
	}
	if d.calls != 1 {
		t.Errorf("expected features to be aggregated exactly once, have %d calls", d.calls)
	}
	if st.ExtractionTime() < 0 {
		t.Errorf("negative extraction time")
	}
}

func TestImmutability(t *testing.T) {
	d := &fakeDerivation{text: "the cat", alignments: [][]int{{0}, {1}}}
	st := New(&Sentence{ID: 1, Text: "el gato"}, d, nil)
	d.alignments[0][0] = 42
	st.TranslationTokens()[0] = "a"
	st.TranslationWordAlignments()[1][0] = 42
	st.TranslationFeatures()["x"] = 1
	if st.TranslationTokens()[0] != "the" {
		t.Errorf("tokens have been modified from outside")
	}
	if al := st.TranslationWordAlignments(); al[0][0] != 0 || al[1][0] != 1 {
		t.Errorf("alignments have been modified from outside: %v", al)
	}
	if len(st.TranslationFeatures()) != 0 {
		t.Errorf("features have been modified from outside")
	}
}

func TestNoDerivation(t *testing.T) {
	st := New(&Sentence{ID: 3, Text: "hola"}, nil, nil)
	if st.TranslationString() != "" {
		t.Errorf("expected empty translation, have %q", st.TranslationString())
	}
	if tokens := st.TranslationTokens(); tokens == nil || len(tokens) != 0 {
		t.Errorf("expected empty token list, have %#v", tokens)
	}
	if st.TranslationScore() != 0 {
		t.Errorf("expected score 0, have %v", st.TranslationScore())
	}
	if al := st.TranslationWordAlignments(); al == nil || len(al) != 0 {
		t.Errorf("expected empty alignments, have %#v", al)
	}
	if len(st.TranslationFeatures()) != 0 {
		t.Errorf("expected no features")
	}
}

func TestEmptyViterbiString(t *testing.T) {
	st := New(&Sentence{}, &fakeDerivation{text: "<s> </s>"}, nil)
	if st.TranslationString() != "" || len(st.TranslationTokens()) != 0 {
		t.Errorf("expected empty translation, have %q / %v", st.TranslationString(), st.TranslationTokens())
	}
}

func TestRemoveSentenceMarkers(t *testing.T) {
	cases := map[string]string{
		"<s> the cat </s>": "the cat",
		"the cat":          "the cat",
		"<s>":              "",
		"":                 "",
		"a <s>b </s>":      "a <s>b",
	}
	for in, want := range cases {
		if got := RemoveSentenceMarkers(in); got != want {
			t.Errorf("RemoveSentenceMarkers(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestJSON(t *testing.T) {
	d := &fakeDerivation{text: "<s> the cat </s>", score: -1, alignments: [][]int{{0}, {1}}}
	st := New(&Sentence{ID: 4, Text: "el gato"}, d, []FeatureFunction{namedFF("lm_0")})
	b, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("json = %s", b)
	var out map[string]interface{}
	if err = json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out["translation"] != "the cat" || out["sentence_id"] != float64(4) {
		t.Errorf("unexpected JSON %s", b)
	}
	if !strings.Contains(string(b), `"lm_0":0.5`) {
		t.Errorf("expected feature lm_0 in JSON %s", b)
	}
}

func TestNilPointerDerivation(t *testing.T) {
	var graph *fakeDerivation
	st := New(&Sentence{ID: 1, Text: "hola"}, graph, nil)
	if st.TranslationString() != "" || st.TranslationScore() != 0 {
		t.Errorf("expected empty translation, have %q / %v", st.TranslationString(), st.TranslationScore())
	}
	if len(st.TranslationTokens()) != 0 || len(st.TranslationWordAlignments()) != 0 {
		t.Errorf("expected empty tokens and alignments")
	}
}
