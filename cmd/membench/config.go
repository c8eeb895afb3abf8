// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"code.hybscloud.com/membench"
)

// runOptions holds everything the run command needs. The YAML keys match
// the flag names.
type runOptions struct {
	Threads   int                `yaml:"threads"`
	Passes    int                `yaml:"passes"`
	Memory    byteSize           `yaml:"memory"`
	Operation membench.Operation `yaml:"operation"`
	Init      membench.InitType  `yaml:"init"`
	Strategy  membench.Strategy  `yaml:"strategy"`
	JSON      bool               `yaml:"json"`
	Progress  bool               `yaml:"progress"`
}

func defaultOptions() runOptions {
	return runOptions{
		Threads:   runtime.NumCPU(),
		Passes:    2,
		Memory:    256 << 20,
		Operation: membench.Read,
		Init:      membench.Zeros,
		Strategy:  membench.Bytewise,
		Progress:  true,
	}
}

func (o *runOptions) addFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&o.Threads, "threads", "t", o.Threads,
		"Number of worker threads")
	flags.IntVarP(&o.Passes, "passes", "p", o.Passes,
		"Number of timed passes over each buffer")
	flags.VarP(&o.Memory, "memory", "m",
		"Total memory across all threads (e.g. 512MiB, 2GB)")
	flags.VarP(textValue{&o.Operation, "operation"}, "operation", "o",
		"Operation: read, write, copy")
	flags.Var(textValue{&o.Init, "init"}, "init",
		"Initial buffer contents: zeros, ones, random")
	flags.VarP(textValue{&o.Strategy, "strategy"}, "strategy", "s",
		"Access strategy, see 'membench strategies'")
	flags.BoolVar(&o.JSON, "json", o.JSON,
		"Output results as JSON instead of a table")
	flags.BoolVar(&o.Progress, "progress", o.Progress,
		"Draw a live progress line when stderr is a terminal")
}

// config returns the benchmark configuration described by o.
func (o runOptions) config() membench.Config {
	return membench.Config{
		Threads:    o.Threads,
		Passes:     o.Passes,
		MemorySize: int(o.Memory),
		Operation:  o.Operation,
		Init:       o.Init,
		Strategy:   o.Strategy,
	}
}

// loadOptions reads a YAML file over the defaults, then applies every flag
// the user set explicitly on top of it.
func loadOptions(path string, flags *pflag.FlagSet, fromFlags runOptions) (runOptions, error) {
	if path == "" {
		return fromFlags, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return runOptions{}, fmt.Errorf("read config: %w", err)
	}

	merged := defaultOptions()
	if err := decodeOptions(bytes.NewReader(data), &merged); err != nil {
		return runOptions{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	flags.Visit(func(f *pflag.Flag) {
		merged.override(f.Name, fromFlags)
	})

	return merged, nil
}

func decodeOptions(r io.Reader, o *runOptions) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (o *runOptions) override(flag string, from runOptions) {
	switch flag {
	case "threads":
		o.Threads = from.Threads
	case "passes":
		o.Passes = from.Passes
	case "memory":
		o.Memory = from.Memory
	case "operation":
		o.Operation = from.Operation
	case "init":
		o.Init = from.Init
	case "strategy":
		o.Strategy = from.Strategy
	case "json":
		o.JSON = from.JSON
	case "progress":
		o.Progress = from.Progress
	}
}
