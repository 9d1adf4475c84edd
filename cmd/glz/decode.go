package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/arloliu/glz/archive"
)

func cmdDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	index := fs.Int("i", -1, "entry position")
	name := fs.String("file", "", "entry name (archives)")
	off := fs.Int("off", -1, "bit offset to decode from")
	n := fs.Int("len", -1, "number of bytes to decode with -off")
	out := fs.String("o", "", "output path (stdout when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return errors.New("decode: expected one container path")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	dec, err := archive.NewDecoder(data)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	var content [][]byte
	switch {
	case *index >= 0:
		b, err := dec.ReadAt(*index)
		if err != nil {
			return err
		}
		content = [][]byte{b}
	case *name != "":
		b, err := dec.ReadFile(*name)
		if err != nil {
			return err
		}
		content = [][]byte{b}
	case *off >= 0:
		if *n < 0 {
			return errors.New("decode: -off requires -len")
		}
		b, err := dec.ReadRange(*off, *n)
		if err != nil {
			return err
		}
		content = [][]byte{b}
	default:
		if content, err = dec.ReadAll(context.Background(), 0); err != nil {
			return err
		}
	}

	for _, b := range content {
		if _, err := w.Write(b); err != nil {
			return err
		}
	}

	return nil
}
