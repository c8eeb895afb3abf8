// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"code.hybscloud.com/membench"
)

func execute(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestStrategiesCommand(t *testing.T) {
	out, _, err := execute(t, context.Background(), "strategies")
	if err != nil {
		t.Fatalf("strategies: %v", err)
	}
	for _, s := range membench.Strategies() {
		if !strings.Contains(out, s.Key()) || !strings.Contains(out, s.String()) {
			t.Errorf("missing %s in output:\n%s", s.Key(), out)
		}
	}
}

func TestWriteStrategiesStatus(t *testing.T) {
	var buf bytes.Buffer
	if err := writeStrategies(&buf, membench.Features{SSE41: true}); err != nil {
		t.Fatalf("writeStrategies: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(membench.Strategies())+1 {
		t.Fatalf("got %d lines, want %d", len(lines), len(membench.Strategies())+1)
	}
	for _, line := range lines[1:] {
		supported := strings.Contains(line, "available")
		vectorNeedingMore := strings.Contains(line, "avx2") || strings.Contains(line, "avx512")
		if supported == vectorNeedingMore {
			t.Errorf("wrong status: %q", line)
		}
	}
}

func TestPlatformCommand(t *testing.T) {
	var buf bytes.Buffer
	p := membench.Platform{PageSize: 4096, Features: membench.Features{AVX2: true}}
	if err := writePlatform(&buf, p); err != nil {
		t.Fatalf("writePlatform: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"4.0 KiB", "16 KiB", "avx2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	if _, _, err := execute(t, context.Background(), "platform"); err != nil {
		t.Fatalf("platform: %v", err)
	}
}

func TestRunCommandJSON(t *testing.T) {
	if membench.RaceEnabled {
		t.Skip("skip: atomix ordering is invisible to the race detector")
	}

	page := membench.DetectPlatform().PageSize
	out, _, err := execute(t, context.Background(), "run",
		"--threads", "2",
		"--passes", "2",
		"--memory", fmt.Sprint(8*page),
		"--operation", "copy",
		"--json",
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var decoded struct {
		Operation string `json:"operation"`
		Cancelled bool   `json:"cancelled"`
		Results   []struct {
			MemoryProcessed int `json:"memory_processed"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if decoded.Operation != "copy" || decoded.Cancelled {
		t.Fatalf("got operation %q cancelled %v", decoded.Operation, decoded.Cancelled)
	}
	if len(decoded.Results) != 2 {
		t.Fatalf("results: got %d, want 2", len(decoded.Results))
	}
	for _, r := range decoded.Results {
		if r.MemoryProcessed != 4*page*2 {
			t.Errorf("processed %d, want %d", r.MemoryProcessed, 4*page*2)
		}
	}
}

func TestRunCommandCancelled(t *testing.T) {
	if membench.RaceEnabled {
		t.Skip("skip: atomix ordering is invisible to the race detector")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := execute(t, ctx, "run", "--threads", "2", "--passes", "1000", "--memory", "32MiB")
	if !errors.Is(err, errCancelled) {
		t.Fatalf("run: got %v, want errCancelled", err)
	}
	if !strings.Contains(out, "Cancelled") {
		t.Errorf("expected Cancelled in report:\n%s", out)
	}
}

func TestRunCommandRejectsInvalidConfig(t *testing.T) {
	_, _, err := execute(t, context.Background(), "run", "--threads", "0")
	if !errors.Is(err, membench.ErrInvalidConfig) {
		t.Fatalf("run: got %v, want ErrInvalidConfig", err)
	}
}
