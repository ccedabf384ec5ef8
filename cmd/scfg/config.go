package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "scfg.yaml"

// config holds the settings shared by all sub-commands.
type config struct {
	Format       string `yaml:"format"`
	Grammar      string `yaml:"grammar"`
	Owner        string `yaml:"owner"`
	Trace        string `yaml:"trace"`
	FeatureCount int    `yaml:"feature_count"`
}

func defaultConfig() *config {
	return &config{
		Format: "hiero",
		Owner:  "pt",
		Trace:  "E",
	}
}

// load reads the configuration file at path. Without a path, the default file is
// read if it exists. Flags set on the command line win over file values.
func (c *config) load(path string, flags *pflag.FlagSet) error {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading configuration: %w", err)
	}
	return c.parse(data, flags)
}

func (c *config) parse(data []byte, flags *pflag.FlagSet) error {
	var file config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing configuration: %w", err)
	}
	c.merge(&file, flags)
	return nil
}

// merge copies non-zero values of file into c, unless the corresponding flag has
// been changed on the command line.
func (c *config) merge(file *config, flags *pflag.FlagSet) {
	set := func(name string) bool {
		return flags != nil && flags.Changed(name)
	}
	if file.Format != "" && !set("format") {
		c.Format = file.Format
	}
	if file.Grammar != "" {
		c.Grammar = file.Grammar
	}
	if file.Owner != "" && !set("owner") {
		c.Owner = file.Owner
	}
	if file.Trace != "" && !set("trace") {
		c.Trace = file.Trace
	}
	if file.FeatureCount != 0 && !set("feature-count") {
		c.FeatureCount = file.FeatureCount
	}
}

// grammarFile selects the grammar file from the command line or the configuration.
func (c *config) grammarFile(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if c.Grammar == "" {
		return "", errors.New("no grammar file given")
	}
	return c.Grammar, nil
}
