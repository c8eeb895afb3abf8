// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// byteSize is a byte count written the way humans write it:
// "64MiB", "1.5 GB", "4096".
type byteSize int

var (
	_ pflag.Value      = (*byteSize)(nil)
	_ yaml.Unmarshaler = (*byteSize)(nil)
)

func parseByteSize(s string) (byteSize, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n == 0 || n > math.MaxInt {
		return 0, fmt.Errorf("size %q out of range", s)
	}
	return byteSize(n), nil
}

func (b *byteSize) Set(s string) error {
	v, err := parseByteSize(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b *byteSize) String() string {
	return humanize.IBytes(uint64(*b))
}

func (b *byteSize) Type() string {
	return "size"
}

func (b *byteSize) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return b.Set(s)
}

// textVar is an enum that parses and prints itself as text.
type textVar interface {
	encoding.TextUnmarshaler
	fmt.Stringer
}

// textValue adapts a textVar to pflag.Value.
type textValue struct {
	v    textVar
	kind string
}

func (t textValue) Set(s string) error {
	return t.v.UnmarshalText([]byte(s))
}

func (t textValue) String() string {
	if t.v == nil {
		return ""
	}
	return t.v.String()
}

func (t textValue) Type() string {
	return t.kind
}
