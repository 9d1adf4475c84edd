package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/glz"
	"github.com/arloliu/glz/archive"
	"github.com/arloliu/glz/format"
)

func cmdEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	k := fs.Int("k", -1, "Golomb-Rice parameter (fitted when negative)")
	l := fs.Int("l", glz.DefaultL, "reference length exponent")
	m := fs.Int("m", glz.DefaultM, "offset chunk width in bits")
	table := fs.String("table", "", "comma separated decode table")
	passes := fs.Int("passes", glz.DefaultPasses, "training passes")
	names := fs.Bool("archive", false, "store file names")
	comp := fs.String("compress", "none", "index compression: none, zstd, s2 or lz4")
	varint := fs.Bool("varint", false, "store index fields as varints")
	checksum := fs.Bool("checksum", false, "store entry checksums")
	bigEndian := fs.Bool("bigendian", false, "store fixed index fields big-endian")
	quiet := fs.Bool("q", false, "do not print statistics")
	drawHist := fs.Bool("hist", false, "draw the operation symbol histogram")
	out := fs.String("o", "", "output container path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		return errors.New("encode: missing -o")
	}
	if fs.NArg() == 0 {
		return errors.New("encode: no input files")
	}

	opts := []archive.EncoderOption{archive.WithL(*l), archive.WithM(*m), archive.WithPasses(*passes)}
	if *k >= 0 {
		opts = append(opts, archive.WithK(*k))
	}
	if *table != "" {
		t, err := parseTable(*table)
		if err != nil {
			return err
		}
		opts = append(opts, archive.WithTable(t))
	}
	if *names {
		opts = append(opts, archive.WithArchiveNames())
	}
	ct, ok := format.ParseCompressionType(*comp)
	if !ok {
		return fmt.Errorf("encode: unknown compression %q", *comp)
	}
	opts = append(opts, archive.WithIndexCompression(ct))
	if *varint {
		opts = append(opts, archive.WithVarintIndex())
	}
	if *checksum {
		opts = append(opts, archive.WithChecksums())
	}
	if *bigEndian {
		opts = append(opts, archive.WithBigEndian())
	}

	files := make([]archive.File, 0, fs.NArg())
	total := 0
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, archive.File{Name: path, Data: data})
		total += len(data)
	}

	enc, err := archive.NewEncoder(opts...)
	if err != nil {
		return err
	}
	container, err := enc.Encode(files)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, container, 0o644); err != nil { //nolint:gosec
		return err
	}

	if !*quiet {
		g := enc.Engine()
		printer.Fprintf(os.Stderr, "%d files, %d bytes -> %d bytes", len(files), total, len(container))
		if total > 0 {
			printer.Fprintf(os.Stderr, " (%.2f%%)", 100*float64(len(container))/float64(total))
		}
		printer.Fprintf(os.Stderr, "\n%s, table %d symbols, index %d bytes\n",
			g, len(g.DecodeTable()), enc.IndexStats().CompressedSize)
	}

	if *drawHist {
		return drawHistogram(container)
	}

	return nil
}

func drawHistogram(container []byte) error {
	dec, err := archive.NewDecoder(container)
	if err != nil {
		return err
	}

	h, err := dec.Engine().Histogram(dec.Blob())
	if err != nil {
		return err
	}

	return h.Draw(os.Stderr, 64, 16)
}

func parseTable(s string) ([]uint32, error) {
	fields := strings.Split(s, ",")
	table := make([]uint32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("table: %w", err)
		}
		table = append(table, uint32(v))
	}

	return table, nil
}
