// Command scaffoldmapper aligns a scaffold mesh to measured data by rigid
// rotation and translation, driven from a console or over HTTP.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/seqsense/scaffoldmapper/config"
	"github.com/seqsense/scaffoldmapper/logx"
	"github.com/seqsense/scaffoldmapper/mapper"
	"github.com/seqsense/scaffoldmapper/server"
)

type options struct {
	config   string
	scaffold string
	data     string
	serve    bool
	addr     string
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "YAML config file")
	flag.StringVar(&opts.scaffold, "scaffold", "", "scaffold YAML document")
	flag.StringVar(&opts.data, "data", "", "data PCD file or YAML document")
	flag.BoolVar(&opts.serve, "serve", false, "serve HTTP instead of reading commands from stdin")
	flag.StringVar(&opts.addr, "addr", "", "listen address, overrides server.addr")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	c := config.Default()
	if opts.config != "" {
		var err error
		if c, err = config.Load(opts.config); err != nil {
			return err
		}
	}
	level, err := logx.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	m := mapper.New(mapper.OptionsFromConfig(c))
	if opts.scaffold != "" {
		if err := m.LoadScaffold(opts.scaffold); err != nil {
			return err
		}
	}
	if opts.data != "" {
		if err := m.LoadData(opts.data); err != nil {
			return err
		}
	}

	if opts.serve {
		addr := c.Server.Addr
		if opts.addr != "" {
			addr = opts.addr
		}
		s := server.New(m, server.Options{
			TranslationRate: c.TranslationRate,
			AccessLog:       os.Stderr,
		})
		return s.ListenAndServe(ctx, addr)
	}

	cs := &console{cmd: newCommandContext(m, c.TranslationRate)}
	return cs.Serve(ctx, in, out)
}

// Serve runs one command per input line until in is exhausted or ctx is
// canceled. Command errors are printed and do not stop the loop.
func (c *console) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := c.Run(sc.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if res != "" {
			fmt.Fprintln(out, res)
		}
	}
	return sc.Err()
}
