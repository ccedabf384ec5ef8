package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scfg/constraint"
	"github.com/npillmayer/scfg/grammar"
	"github.com/npillmayer/scfg/vocab"
)

const hieroGrammar = `[X] ||| el [X,1] ||| the [X,1] ||| 0.5 1.2
[X] ||| gato ||| cat ||| 0.1 0.3 ||| 0-0
[NP] ||| gato negro ||| black cat ||| 0.2 0.7
`

func writeGrammar(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "grammar.hiero")
	if err := os.WriteFile(path, []byte(hieroGrammar), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigMerge(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.PersistentFlags().Set("owner", "manual"); err != nil {
		t.Fatal(err)
	}
	conf := defaultConfig()
	conf.Owner = "manual"
	yml := "format: moses\nowner: pt2\nfeature_count: 4\ngrammar: g.txt\n"
	if err := conf.parse([]byte(yml), cmd.PersistentFlags()); err != nil {
		t.Fatal(err)
	}
	if conf.Format != "moses" || conf.FeatureCount != 4 || conf.Grammar != "g.txt" {
		t.Errorf("expected file values to be taken, have %+v", conf)
	}
	if conf.Owner != "manual" {
		t.Errorf("expected flag to override config file, have owner %q", conf.Owner)
	}
	if conf.Trace != "E" {
		t.Errorf("expected default trace level to be kept, have %q", conf.Trace)
	}
	if err := conf.parse([]byte("format: [unclosed"), nil); err == nil {
		t.Errorf("expected error for malformed YAML")
	}
}

func TestPrintRules(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	var out bytes.Buffer
	if err := printRules(&out, defaultConfig(), writeGrammar(t), true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 3 rules and a summary, have %q", out.String())
	}
	if lines[0] != "[X] ||| el [X,1] ||| the [X,1]" {
		t.Errorf("unexpected first rule %q", lines[0])
	}
	if lines[3] != "# 3 rules, status done" {
		t.Errorf("unexpected summary %q", lines[3])
	}
}

func TestApplyConstraints(t *testing.T) {
	conf := defaultConfig()
	conf.FeatureCount = 2
	v := vocab.New()
	rules, err := loadRules(conf, writeGrammar(t), v)
	if err != nil {
		t.Fatal(err)
	}
	spans, err := constraint.DecodeSpans(strings.NewReader(`[
	  {"start": 0, "end": 2, "hard": true, "rules": [
	    {"type": "RULE", "lhs": "X", "source": "el gato", "target": "the cat"}]},
	  {"start": 1, "end": 3, "rules": [{"type": "LHS", "lhs": "NP"}]}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	format, _ := grammar.NewFormat("hiero")
	var out bytes.Buffer
	if err = applyConstraints(&out, conf, format, v, spans, rules); err != nil {
		t.Fatal(err)
	}
	t.Logf("output:\n%s", out.String())
	if !strings.Contains(out.String(), "[0,2) (hard)\t[X] ||| el gato ||| the cat ||| 0 0") {
		t.Errorf("expected hard manual rule in output")
	}
	if !strings.Contains(out.String(), "[1,3)\t1 of 3 rules survive") {
		t.Errorf("expected LHS filter to keep one rule")
	}
}
