// Copyright 2017-2026 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/db47h/munch"
	"github.com/db47h/munch/basic"
	"github.com/db47h/munch/report"
	"github.com/db47h/munch/token"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

type options struct {
	format      string
	errors      bool
	splitErrors bool
	debug       bool
}

type yamlToken struct {
	Kind  string `yaml:"kind"`
	First int    `yaml:"first"`
	Last  int    `yaml:"last"`
	Text  string `yaml:"text"`
}

type yamlFile struct {
	File   string      `yaml:"file"`
	Tokens []yamlToken `yaml:"tokens"`
}

// result holds the output of a single file.
type result struct {
	out    bytes.Buffer
	diag   bytes.Buffer
	errors int
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:          "munch [flags] <file|pattern>...",
		Short:        "Print the tokens of source files",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&o.format, "format", "f", formatText, "output format: text or yaml")
	flags.BoolVarP(&o.errors, "errors", "e", false, "report unrecognized input on stderr and fail if any")
	flags.BoolVar(&o.splitErrors, "split-errors", false, "emit one error token per unrecognized character")
	flags.BoolVar(&o.debug, "debug", false, "trace lexer activity on stderr")
	return cmd
}

func (o *options) run(stdout, stderr io.Writer, args []string) error {
	if o.format != formatText && o.format != formatYAML {
		return fmt.Errorf("unsupported format %q", o.format)
	}
	files, err := expand(args)
	if err != nil {
		return err
	}

	var opts []munch.Option
	if o.splitErrors {
		opts = append(opts, munch.SplitErrors())
	}
	if o.debug {
		opts = append(opts, munch.Logger(newLogger(stderr)))
	}

	results := make([]result, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range files {
		g.Go(func() error {
			return o.lexFile(&results[i], name, len(files) > 1, opts)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	n := 0
	for i := range results {
		r := &results[i]
		if _, err := r.out.WriteTo(stdout); err != nil {
			return err
		}
		if _, err := r.diag.WriteTo(stderr); err != nil {
			return err
		}
		n += r.errors
	}
	if o.errors && n > 0 {
		return fmt.Errorf("found %d unrecognized token(s)", n)
	}
	return nil
}

func (o *options) lexFile(r *result, name string, header bool, opts []munch.Option) error {
	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	f := token.NewFile(name, src)
	l := basic.New(src, opts...)
	doc := yamlFile{File: name}

	if header && o.format == formatText {
		fmt.Fprintf(&r.out, "==> %s <==\n", name)
	}
	for {
		t := l.Next()
		if t.Kind == basic.Error {
			r.errors++
			if o.errors {
				if err = report.Fprint(&r.diag, f, t.First, t.Last, "unrecognized input"); err != nil {
					return err
				}
			}
		}
		switch o.format {
		case formatText:
			fmt.Fprintf(&r.out, "%s: %s\n", l.Name(t.Kind), l.Bytes(t))
		case formatYAML:
			doc.Tokens = append(doc.Tokens, yamlToken{
				Kind:  l.Name(t.Kind),
				First: t.First,
				Last:  t.Last,
				Text:  string(l.Bytes(t)),
			})
		}
		if t.Kind == token.NIL {
			break
		}
	}

	if o.format == formatYAML {
		r.out.WriteString("---\n")
		enc := yaml.NewEncoder(&r.out)
		enc.SetIndent(2)
		if err = enc.Encode(&doc); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return enc.Close()
	}
	return nil
}

// expand expands glob patterns in args. Arguments without glob meta
// characters are returned as is.
func expand(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			files = append(files, arg)
			continue
		}
		m, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("%s: no matching files", arg)
		}
		files = append(files, m...)
	}
	return files, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}
