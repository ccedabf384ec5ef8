package vocab

import (
	"sync"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestInterning(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	v := New()
	cat := v.ID("cat")
	if cat == Unknown {
		t.Fatalf("interned word must not get id 0")
	}
	if v.ID("cat") != cat {
		t.Errorf("expected stable id for 'cat'")
	}
	if v.Word(cat) != "cat" {
		t.Errorf("expected 'cat', have %q", v.Word(cat))
	}
	if v.Lookup("dog") != Unknown {
		t.Errorf("lookup must not intern")
	}
	if v.Size() != 1 {
		t.Errorf("expected vocabulary size 1, have %d", v.Size())
	}
	ids := v.AddAll(" the  cat ")
	if len(ids) != 2 || ids[1] != cat {
		t.Errorf("unexpected ids for 'the cat': %v", ids)
	}
	if v.Words(ids) != "the cat" {
		t.Errorf("expected 'the cat', have %q", v.Words(ids))
	}
}

func TestNormalization(t *testing.T) {
	v := New()
	composed := v.ID("caf\u00e9")
	decomposed := v.ID("cafe\u0301")
	if composed != decomposed {
		t.Errorf("expected canonically equivalent words to share an id")
	}
}

func TestNonterminals(t *testing.T) {
	v := New()
	x1 := v.ID("[X,1]")
	x := v.ID("[X]")
	w := v.ID("gato")
	if !v.IsNonterminal(x1) || !v.IsNonterminal(x) {
		t.Errorf("expected [X,1] and [X] to be nonterminals")
	}
	if v.IsNonterminal(w) {
		t.Errorf("expected 'gato' to be a terminal")
	}
	if k := v.TargetNonterminalIndex(v.ID("[NP,2]")); k != 2 {
		t.Errorf("expected reordering slot 2, have %d", k)
	}
	if k := v.TargetNonterminalIndex(x); k != 0 {
		t.Errorf("expected slot 0 for undecorated nonterminal, have %d", k)
	}
	if v.Label(x1) != "X" {
		t.Errorf("expected label X, have %q", v.Label(x1))
	}
	if v.Nonterminal("X") != x || v.Nonterminal("[X]") != x || v.Nonterminal("[X,3]") != x {
		t.Errorf("expected all spellings of X to map to [X]")
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"[X,1]":    "X",
		"[X]":      "X",
		"X":        "X",
		"[NP,12]":  "NP",
		"[S/NP,1]": "S/NP",
		"[A,B]":    "A,B",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, expected %q", in, got, want)
		}
	}
	if Decorate("X", 2) != "[X,2]" {
		t.Errorf("expected [X,2], have %q", Decorate("X", 2))
	}
}

func TestConcurrentInterning(t *testing.T) {
	v := New()
	words := []string{"a", "b", "c", "d", "e", "f", "g"}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range words {
				v.ID(w)
			}
		}()
	}
	wg.Wait()
	if v.Size() != len(words) {
		t.Errorf("expected %d words, have %d", len(words), v.Size())
	}
}
