package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/scfg"
	"github.com/npillmayer/scfg/constraint"
	"github.com/npillmayer/scfg/grammar"
	"github.com/npillmayer/scfg/vocab"
	"github.com/spf13/cobra"
)

func newRulesCmd(conf *config) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "rules [grammar-file]",
		Short: "Read a grammar and print its rules in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := conf.grammarFile(args)
			if err != nil {
				return err
			}
			return printRules(cmd.OutOrStdout(), conf, path, plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "omit feature scores and alignments")
	return cmd
}

func printRules(w io.Writer, conf *config, path string, plain bool) error {
	r, err := grammar.Open(conf.Format, path, vocab.New(), grammar.WithOwner(scfg.OwnerID(conf.Owner)))
	if err != nil {
		return err
	}
	defer r.Close()
	for r.Next() {
		if plain {
			fmt.Fprintln(w, r.ToWordsWithoutFeatureScores(r.Rule()))
		} else {
			fmt.Fprintln(w, r.ToWords(r.Rule()))
		}
	}
	if err = r.Err(); err != nil {
		return err
	}
	fmt.Fprintf(w, "# %d rules, status %s\n", r.RulesRead(), r.Status())
	return nil
}

func newCFGCmd(conf *config) *cobra.Command {
	return &cobra.Command{
		Use:   "cfg [grammar-file]",
		Short: "Project the source sides of a grammar onto a CFG and dump it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := conf.grammarFile(args)
			if err != nil {
				return err
			}
			v := vocab.New()
			rules, err := loadRules(conf, path, v)
			if err != nil {
				return err
			}
			ga, err := grammar.Project(path, rules, v)
			if err != nil {
				return err
			}
			ga.Grammar().Dump()
			fmt.Fprintf(cmd.OutOrStdout(), "# projected %d rules, vocabulary size %d\n", len(rules), v.Size())
			return nil
		},
	}
}

func newConstrainCmd(conf *config) *cobra.Command {
	return &cobra.Command{
		Use:   "constrain <constraints.json> [grammar-file]",
		Short: "Apply manual constraints and list injected rules and filter results",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rules []*scfg.Rule
			v := vocab.New()
			if path, err := conf.grammarFile(args[1:]); err == nil {
				if rules, err = loadRules(conf, path, v); err != nil {
					return err
				}
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			spans, err := constraint.DecodeSpans(f)
			if err != nil {
				return err
			}
			format, err := grammar.NewFormat(conf.Format)
			if err != nil {
				return err
			}
			return applyConstraints(cmd.OutOrStdout(), conf, format, v, spans, rules)
		},
	}
}

func applyConstraints(w io.Writer, conf *config, format grammar.Format, v *vocab.Vocabulary,
	spans []constraint.ConstraintSpan, rules []*scfg.Rule) error {
	//
	rec := &constraint.AxiomRecorder{}
	h := constraint.NewHandler(v, rec, spans, constraint.WithFeatureCount(conf.FeatureCount))
	for _, ax := range rec.Axioms {
		hard := ""
		if h.ContainHardRuleConstraint(ax.Span.Start, ax.Span.End) {
			hard = " (hard)"
		}
		fmt.Fprintf(w, "%v%s\t%s\n", ax.Span, hard, format.ToWords(ax.Rule, v))
	}
	if len(rules) == 0 {
		return nil
	}
	for _, cspan := range spans {
		kept := h.FilterRules(cspan.Start, cspan.End, rules)
		fmt.Fprintf(w, "%v\t%d of %d rules survive\n",
			scfg.Span{Start: cspan.Start, End: cspan.End}, len(kept), len(rules))
	}
	return nil
}

func loadRules(conf *config, path string, v *vocab.Vocabulary) ([]*scfg.Rule, error) {
	r, err := grammar.Open(conf.Format, path, v, grammar.WithOwner(scfg.OwnerID(conf.Owner)))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.All()
}
