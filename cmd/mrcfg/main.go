// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// mrcfg compresses a file into a maximal-repeat context-free grammar.
//
// Usage:
//
//	mrcfg {OPTIMAL|ONLINE|FAST} <file>
//
// The selector picks the nested-interval stabbing structure used during
// grammar construction; all three produce grammars deriving the same text.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alancleary/mr-cfg/cfg"
	"github.com/alancleary/mr-cfg/csa"
	"github.com/alancleary/mr-cfg/interval"
)

func main() {
	var (
		output string
		verify bool
		emit   bool
		quiet  bool
	)
	cmd := &cobra.Command{
		Use:          "mrcfg {OPTIMAL|ONLINE|FAST} <file>",
		Short:        "grammar-compress a file by its maximal repeats",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], output, verify, emit, quiet)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the serialized grammar to this path")
	cmd.Flags().BoolVar(&verify, "verify", false, "expand the grammar and compare against the input")
	cmd.Flags().BoolVar(&emit, "print", false, "write the expanded grammar to standard error")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(selector, path, output string, verify, emit, quiet bool) error {
	variant, err := interval.ParseVariant(selector)
	if err != nil {
		return errors.Wrapf(err, "bad algorithm selector %q", selector)
	}

	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	start := time.Now()
	text, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}
	log.Info("loaded file",
		"path", path,
		"size", humanize.IBytes(uint64(len(text))),
		"elapsed", time.Since(start))

	start = time.Now()
	idx := csa.New(text)
	log.Info("built CSA",
		"size", humanize.Comma(int64(idx.Size())),
		"alphabet", idx.Sigma(),
		"elapsed", time.Since(start))

	start = time.Now()
	g, err := cfg.Build(idx, variant)
	if err != nil {
		return errors.Wrap(err, "computing CFG")
	}
	stats := g.Stats()
	log.Info("computed CFG",
		"algorithm", variant.String(),
		"rules", stats.Rules,
		"startLen", stats.StartLen,
		"nonStartSize", stats.NonStartSize,
		"totalSize", stats.TotalSize,
		"elapsed", time.Since(start))

	if verify {
		start = time.Now()
		want := xxhash.Sum64(text)
		h := xxhash.New()
		if err := g.Regenerate(idx.Alphabet(), h); err != nil {
			return errors.Wrap(err, "expanding grammar")
		}
		if h.Sum64() != want {
			return errors.Errorf("grammar expansion does not match %s", path)
		}
		log.Info("verified grammar", "digest", h.Sum64(), "elapsed", time.Since(start))
	}

	if emit {
		if err := g.Regenerate(idx.Alphabet(), os.Stderr); err != nil {
			return errors.Wrap(err, "printing grammar")
		}
	}

	if output != "" {
		start = time.Now()
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrapf(err, "creating %s", output)
		}
		if err := cfg.Encode(f, g, idx.Alphabet()); err != nil {
			f.Close()
			return errors.Wrapf(err, "writing %s", output)
		}
		if err := f.Close(); err != nil {
			return errors.Wrapf(err, "writing %s", output)
		}
		size := int64(0)
		if fi, err := os.Stat(output); err == nil {
			size = fi.Size()
		}
		log.Info("wrote grammar",
			"path", output,
			"size", humanize.IBytes(uint64(size)),
			"ratio", ratio(size, int64(len(text))),
			"elapsed", time.Since(start))
	}
	return nil
}

func ratio(out, in int64) float64 {
	if in == 0 {
		return 0
	}
	return float64(out) / float64(in)
}
