package main

import (
	"errors"
	"flag"
	"os"
	"text/tabwriter"

	"github.com/arloliu/glz/archive"
	"github.com/arloliu/glz/endian"
)

func cmdList(args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("ls: expected one container path")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	dec, err := archive.NewDecoder(data)
	if err != nil {
		return err
	}

	h := dec.Header()
	printer.Printf("version %d.%d, %s, k=%d l=%d m=%d\n", h.VersionMajor, h.VersionMinor, h.Flag.Kind, h.K, h.L, h.M)
	printer.Printf("index %s %s %s, %d bytes, checksums %t\n",
		endian.Name(h.Flag.GetEndianEngine()), h.Flag.IndexEncoding(), h.Flag.IndexCompression,
		h.IndexSize, h.Flag.HasChecksums())
	printer.Printf("table %d symbols, blob %d bits, %d entries\n", h.TableLen, h.BlobBits, h.EntryCount)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	names := dec.Names()
	printer.Fprintln(tw, "#\toffset\tlength\tname")
	for i, e := range dec.Entries() {
		name := ""
		if names != nil {
			name = names[i]
		}
		printer.Fprintf(tw, "%d\t%d\t%d\t%s\n", i, e.Offset, e.Length, name)
	}

	return tw.Flush()
}
