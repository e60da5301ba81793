// Command zcview maps a binary file and views it through a YAML layout
// schema, printing the decoded fields.
//
//	zcview -schema packet.yaml -file capture.bin -mode prefix
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/rawbytedev/zerocast"
	"github.com/rawbytedev/zerocast/buffer"
	"github.com/rawbytedev/zerocast/schema"
	"github.com/rawbytedev/zerocast/zc"
)

type options struct {
	schema  string
	file    string
	mode    zc.Mode
	elems   int
	json    bool
	verbose bool
	styled  bool
}

func main() {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(os.Args[1:], os.Stdout, os.Stderr, styled); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "zcview: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("zcview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		schemaPath = fs.String("schema", "", "Path to the YAML layout schema")
		file       = fs.String("file", "", "Binary file to view")
		mode       = fs.String("mode", "exact", "Which part of the file to cast: exact, prefix or suffix")
		elems      = fs.Int("elems", -1, "Trailing element count (default: as many as fit)")
		asJSON     = fs.Bool("json", false, "Print JSON instead of a table")
		verbose    = fs.Bool("v", false, "Verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *schemaPath == "" || *file == "" {
		fs.Usage()
		return nil, errors.New("both -schema and -file are required")
	}
	m, err := parseMode(*mode)
	if err != nil {
		return nil, err
	}
	return &options{
		schema:  *schemaPath,
		file:    *file,
		mode:    m,
		elems:   *elems,
		json:    *asJSON,
		verbose: *verbose,
	}, nil
}

func parseMode(s string) (zc.Mode, error) {
	for _, m := range []zc.Mode{zc.Exact, zc.Prefix, zc.Suffix} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func run(args []string, stdout, stderr io.Writer, styled bool) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	opts.styled = styled

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	defer logger.Sync() //nolint:errcheck
	zerocast.SetLogger(logger)
	defer zerocast.SetLogger(nil)

	s, err := schema.Load(opts.schema)
	if err != nil {
		return err
	}
	c, err := s.Compile()
	if err != nil {
		return err
	}

	mapping, err := buffer.Map(opts.file, false)
	if err != nil {
		return err
	}
	defer mapping.Close()
	logger.Debug("mapped file", zap.String("path", opts.file), zap.Int("len", mapping.Len()))

	m, err := c.Cast(mapping.Shared(), opts.mode, opts.elems)
	if err != nil {
		if k := zc.KindOf(err); k != 0 {
			return fmt.Errorf("%s error: %w", k, err)
		}
		return err
	}
	logger.Debug("cast",
		zap.Stringer("mode", opts.mode),
		zap.Int("elems", m.Elems),
		zap.Int("rest", len(m.Rest)),
	)

	v, err := c.Decode(m.Region, m.Elems)
	if err != nil {
		return err
	}
	if opts.json {
		return writeJSON(stdout, v)
	}
	return writeTable(stdout, v, len(m.Rest), opts.styled)
}
