// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package benchmark compares the grammar compressor with general-purpose
// codecs with respect to encode speed and ratio. Individual implementations
// are referred to as codecs.
package benchmark

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"

	"github.com/alancleary/mr-cfg/cfg"
	"github.com/alancleary/mr-cfg/csa"
	"github.com/alancleary/mr-cfg/interval"
)

// Encoder compresses input in one shot and returns the encoded bytes.
type Encoder func(input []byte) ([]byte, error)

var Encoders = map[string]Encoder{}

func registerEncoder(name string, enc Encoder) {
	Encoders[name] = enc
}

func init() {
	registerEncoder("mrcfg", func(input []byte) ([]byte, error) {
		idx := csa.New(input)
		g, err := cfg.Build(idx, interval.Fast)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := cfg.Encode(&buf, g, idx.Alphabet()); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	registerEncoder("flate", func(input []byte) ([]byte, error) {
		var buf bytes.Buffer
		zw, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return nil, err
		}
		if err := writeAll(zw, input); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	registerEncoder("xz", func(input []byte) ([]byte, error) {
		var buf bytes.Buffer
		zw, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if err := writeAll(zw, input); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

func writeAll(zw io.WriteCloser, input []byte) error {
	if _, err := zw.Write(input); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
