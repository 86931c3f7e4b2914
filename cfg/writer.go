// Copyright 2022, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package cfg

import (
	"bufio"
	"encoding/binary"
	"io"
	"sort"

	"github.com/dsnet/golib/errs"
	"github.com/klauspost/compress/flate"
)

// The serialized form is a DEFLATE-wrapped record stream:
//
//	magic, format version
//	sigma, alphabet bytes for symbols 1..sigma-1
//	rule count, start rule ID
//	per rule in ascending ID order: ID, production length, symbols
//
// All integers are unsigned varints. Rule IDs are ascending and
// productions index earlier rules, so the residual stream is small and the
// DEFLATE layer compresses the varint runs further.

const (
	hdrMagic   = "mrcfg"
	fmtVersion = 1
)

// Encode writes the grammar to w. The alphabet table is indexed by compact
// symbol, as returned by csa.Alphabet.
func Encode(w io.Writer, g *Grammar, alphabet []byte) (err error) {
	defer errs.Recover(&err)

	zw, err := flate.NewWriter(w, flate.DefaultCompression)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(zw)

	writeString(bw, hdrMagic)
	writeUvarint(bw, fmtVersion)
	writeUvarint(bw, uint64(g.Sigma))
	for k := 1; k < g.Sigma; k++ {
		writeByte(bw, alphabet[k])
	}

	rids := make([]ID, 0, len(g.Rules))
	for id := range g.Rules {
		rids = append(rids, id)
	}
	sort.Slice(rids, func(i, j int) bool { return rids[i] < rids[j] })

	writeUvarint(bw, uint64(len(rids)))
	writeUvarint(bw, uint64(g.Start))
	for _, id := range rids {
		p := g.Rules[id]
		writeUvarint(bw, uint64(id))
		writeUvarint(bw, uint64(len(p)))
		for _, sym := range p {
			writeUvarint(bw, uint64(sym))
		}
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	return zw.Close()
}

// Decode reads a grammar written by Encode, returning the grammar and its
// alphabet table.
func Decode(r io.Reader) (g *Grammar, alphabet []byte, err error) {
	defer errs.Recover(&err)

	br := bufio.NewReader(flate.NewReader(r))

	magic := make([]byte, len(hdrMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, nil, ErrCorrupt
	}
	errs.Assert(string(magic) == hdrMagic, ErrCorrupt)
	errs.Assert(readUvarint(br) == fmtVersion, ErrCorrupt)

	sigma := int(readUvarint(br))
	errs.Assert(sigma >= 1 && sigma <= 257, ErrCorrupt)
	alphabet = make([]byte, sigma)
	for k := 1; k < sigma; k++ {
		alphabet[k] = readByte(br)
	}

	numRules := int(readUvarint(br))
	g = &Grammar{
		Rules: make(map[ID]Production, numRules),
		Start: ID(readUvarint(br)),
		Sigma: sigma,
	}
	for i := 0; i < numRules; i++ {
		id := ID(readUvarint(br))
		errs.Assert(int(id) >= sigma, ErrCorrupt)
		n := int(readUvarint(br))
		p := make(Production, n)
		for j := range p {
			p[j] = ID(readUvarint(br))
		}
		g.Rules[id] = p
	}
	_, ok := g.Rules[g.Start]
	errs.Assert(ok, ErrCorrupt)
	return g, alphabet, nil
}

func writeString(bw *bufio.Writer, s string) {
	_, err := bw.WriteString(s)
	errs.Panic(err)
}

func writeByte(bw *bufio.Writer, b byte) {
	errs.Panic(bw.WriteByte(b))
}

func writeUvarint(bw *bufio.Writer, v uint64) {
	var arr [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(arr[:], v)
	_, err := bw.Write(arr[:n])
	errs.Panic(err)
}

func readByte(br *bufio.Reader) byte {
	b, err := br.ReadByte()
	if err != nil {
		errs.Panic(ErrCorrupt)
	}
	return b
}

func readUvarint(br *bufio.Reader) uint64 {
	v, err := binary.ReadUvarint(br)
	if err != nil {
		errs.Panic(ErrCorrupt)
	}
	return v
}
