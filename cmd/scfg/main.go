/*
Command scfg loads and inspects synchronous grammars and applies manual
constraint files to them.

	scfg rules   [--format hiero] <grammar-file>      print rules in canonical form
	scfg cfg     [--format hiero] <grammar-file>      dump the source-side CFG
	scfg constrain <constraints.json>                 list rules injected by constraints

Defaults are read from a YAML configuration file (flag --config, default
"scfg.yaml" if present); command line flags override the file.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	conf := defaultConfig()
	var configPath string
	root := &cobra.Command{
		Use:           "scfg",
		Short:         "Inspect synchronous grammars and manual constraints",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.load(configPath, cmd.Flags()); err != nil {
				return err
			}
			setupTracing(conf.Trace)
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "configuration file (YAML)")
	flags.StringVarP(&conf.Format, "format", "f", conf.Format, "grammar format: hiero, thrax or moses")
	flags.StringVar(&conf.Owner, "owner", conf.Owner, "owner identity of rules")
	flags.StringVarP(&conf.Trace, "trace", "t", conf.Trace, "trace level: D, I or E")
	flags.IntVar(&conf.FeatureCount, "feature-count", conf.FeatureCount, "dense feature count of manual rules (0: as given)")
	root.AddCommand(
		newRulesCmd(conf),
		newCFGCmd(conf),
		newConstrainCmd(conf),
	)
	return root
}

func setupTracing(level string) {
	logAdapter := gologadapter.GetAdapter()
	trace := logAdapter()
	trace.SetTraceLevel(traceLevel(level))
	gtrace.CoreTracer = trace
	tracing.SetTraceSelector(mytrace{tracer: trace})
}

func traceLevel(l string) tracing.TraceLevel {
	switch l {
	case "D":
		return tracing.LevelDebug
	case "I":
		return tracing.LevelInfo
	case "E":
		return tracing.LevelError
	}
	return tracing.LevelError
}

// mytrace routes every trace key to a single tracer.
type mytrace struct {
	tracer tracing.Trace
}

func (t mytrace) Select(string) tracing.Trace {
	return t.tracer
}
