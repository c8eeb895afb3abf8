// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"code.hybscloud.com/membench"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func parseRunFlags(t *testing.T, args ...string) (*pflag.FlagSet, runOptions) {
	t.Helper()
	opts := defaultOptions()
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	opts.addFlags(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return flags, opts
}

func TestLoadOptionsFile(t *testing.T) {
	path := writeConfig(t, `
threads: 6
passes: 9
memory: 96MiB
operation: write
init: ones
strategy: 64-bit
json: true
`)
	flags, fromFlags := parseRunFlags(t)

	got, err := loadOptions(path, flags, fromFlags)
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}

	want := runOptions{
		Threads:   6,
		Passes:    9,
		Memory:    96 << 20,
		Operation: membench.Write,
		Init:      membench.Ones,
		Strategy:  membench.Int64,
		JSON:      true,
		Progress:  true,
	}
	if got != want {
		t.Errorf("loadOptions = %+v, want %+v", got, want)
	}
}

func TestLoadOptionsFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "threads: 6\npasses: 9\nstrategy: int32\n")
	flags, fromFlags := parseRunFlags(t, "--passes", "1", "--strategy", "bytewise")

	got, err := loadOptions(path, flags, fromFlags)
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	if got.Threads != 6 {
		t.Errorf("threads = %d, want 6 from file", got.Threads)
	}
	if got.Passes != 1 {
		t.Errorf("passes = %d, want 1 from flag", got.Passes)
	}
	if got.Strategy != membench.Bytewise {
		t.Errorf("strategy = %v, want Bytewise from flag", got.Strategy)
	}
}

func TestLoadOptionsDefaultsWithoutFile(t *testing.T) {
	flags, fromFlags := parseRunFlags(t, "-p", "4")
	got, err := loadOptions("", flags, fromFlags)
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	if got != fromFlags {
		t.Errorf("loadOptions = %+v, want flags unchanged %+v", got, fromFlags)
	}
}

func TestLoadOptionsEmptyFile(t *testing.T) {
	path := writeConfig(t, "")
	flags, fromFlags := parseRunFlags(t)
	got, err := loadOptions(path, flags, fromFlags)
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	if got != defaultOptions() {
		t.Errorf("loadOptions = %+v, want defaults", got)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "treads: 4\n", "treads"},
		{"bad strategy", "strategy: mmx\n", "mmx"},
		{"bad size", "memory: lots\n", "lots"},
	}

	for _, tt := range tests {
		path := writeConfig(t, tt.content)
		flags, fromFlags := parseRunFlags(t)
		_, err := loadOptions(path, flags, fromFlags)
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: got %v, want error mentioning %q", tt.name, err, tt.wantErr)
		}
	}

	flags, fromFlags := parseRunFlags(t)
	if _, err := loadOptions(filepath.Join(t.TempDir(), "missing.yaml"), flags, fromFlags); err == nil {
		t.Error("missing file: expected error")
	}
}
