package scfg

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseFeatures(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	fv, err := ParseFeatures("pt", "0.5 lex=-1.25 1.2")
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("features = %s", fv)
	if len(fv) != 3 {
		t.Fatalf("expected 3 features, have %d", len(fv))
	}
	if fv["tm_pt_0"] != 0.5 || fv["tm_pt_1"] != 1.2 {
		t.Errorf("dense features not named by position: %v", fv)
	}
	if fv["lex"] != -1.25 {
		t.Errorf("expected sparse feature lex=-1.25, have %v", fv["lex"])
	}
	if _, err = ParseFeatures("pt", "0.5 abc"); err == nil {
		t.Errorf("expected error for non-numeric feature")
	}
}

func TestRuleLazyFeatures(t *testing.T) {
	r := NewRule("pt", 1, []int{2, 3}, []int{4, 5}, 0, "0.5 1.2", "0-0 1-1")
	if r.FeatureString() != "0.5 1.2" {
		t.Errorf("expected raw feature text to be kept, have %q", r.FeatureString())
	}
	fv, err := r.Features()
	if err != nil {
		t.Fatal(err)
	}
	if fv["tm_pt_1"] != 1.2 {
		t.Errorf("expected tm_pt_1=1.2, have %v", fv)
	}
	if a, ok := r.Alignment(); !ok || a != "0-0 1-1" {
		t.Errorf("expected alignment '0-0 1-1', have %q (%v)", a, ok)
	}
	r = NewRule("pt", 1, []int{2}, []int{3}, 0, "", "")
	if _, ok := r.Alignment(); ok {
		t.Errorf("expected rule without alignment")
	}
	if fv, _ = r.Features(); len(fv) != 0 {
		t.Errorf("expected empty feature vector, have %v", fv)
	}
}

func TestManualRuleScores(t *testing.T) {
	scores := []float32{0.3, -1.1}
	r := NewManualRule("custom", 1, []int{2}, []int{3}, scores, 0)
	scores[0] = 99 // must not leak into the rule
	dense, err := r.DenseScores()
	if err != nil {
		t.Fatal(err)
	}
	if len(dense) != 2 || dense[0] != 0.3 || dense[1] != -1.1 {
		t.Errorf("expected scores [0.3 -1.1], have %v", dense)
	}
	if !r.IsManual() {
		t.Errorf("expected rule to be flagged as manual")
	}
	fv, _ := r.Features()
	if fv["tm_custom_1"] != -1.1 {
		t.Errorf("expected tm_custom_1=-1.1, have %v", fv)
	}
}

func TestSpanContains(t *testing.T) {
	hard := Span{2, 6}
	cases := []struct {
		s    Span
		want bool
	}{
		{Span{3, 4}, true},
		{Span{2, 6}, true},
		{Span{1, 2}, false},
		{Span{6, 8}, false},
		{Span{1, 4}, false},
	}
	for _, c := range cases {
		if hard.Contains(c.s) != c.want {
			t.Errorf("%v contains %v: expected %v", hard, c.s, c.want)
		}
	}
}

func TestParseAlignment(t *testing.T) {
	points, err := ParseAlignment("0-0 1-2 2-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 3 || points[1] != (AlignmentPoint{1, 2}) {
		t.Errorf("unexpected alignment points %v", points)
	}
	if _, err = ParseAlignment("0-"); err == nil {
		t.Errorf("expected error for malformed alignment")
	}
}
