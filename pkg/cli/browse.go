/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/cdda-json-browser/pkg/browser"
	"github.com/NVIDIA/cdda-json-browser/pkg/category"
	"github.com/NVIDIA/cdda-json-browser/pkg/defaults"
	"github.com/NVIDIA/cdda-json-browser/pkg/serializer"
	"github.com/NVIDIA/cdda-json-browser/pkg/watch"
)

const browseHelp = `Type a name or key:value attributes to search the current category.
  :category <name>   switch category (:c for short)
  :categories        list categories
  :craft <item>      show how an item is crafted
  :reload            load the data directory again
  :help              show this help
  :quit              leave (or end input)`

func browseCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the data interactively.",
		Description: `Read queries line by line and print the results. With --watch the
data directory is reloaded when its JSON files change; searches always
see either the old or the new data, never a mix.`,
		Flags: []cli.Flag{
			categoryFlag(category.Item),
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "reload the data directory when files change",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := a.load(ctx, cmd); err != nil {
				return err
			}
			c, err := a.browser.Category(cmd.String(flagCategory))
			if err != nil {
				return err
			}
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			out := stdout(cmd)
			in := cmd.Root().Reader
			if in == nil {
				in = os.Stdin
			}
			r := &repl{browser: a.browser, category: c, format: format, out: out}

			if !cmd.Bool("watch") {
				return r.run(ctx, in)
			}

			w, err := watch.New(a.browser.Root(),
				watch.WithDebounce(a.settings.WatchDebounce),
				watch.WithMinInterval(a.settings.ReloadEvery))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return w.Run(gctx, r.reload)
			})
			g.Go(func() error {
				defer cancel()
				return r.run(gctx, in)
			})
			return g.Wait()
		},
	}
}

// repl is the interactive browse loop.
type repl struct {
	browser  *browser.Browser
	format   serializer.Format
	category category.Category

	mu  sync.Mutex
	out io.Writer
}

// run reads commands from in until input ends, :quit or ctx is done.
func (r *repl) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("failed to read input", "error", err)
		}
	}()

	r.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := r.handle(ctx, strings.TrimSpace(line)); quit {
				return nil
			}
			r.prompt()
		}
	}
}

// handle runs one input line and reports whether the loop should end.
// Failures are printed and do not end the loop.
func (r *repl) handle(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ":") {
		r.search(ctx, line)
		return false
	}

	verb, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch verb {
	case "q", "quit", "exit":
		return true
	case "h", "help":
		r.print(browseHelp)
	case "c", "category":
		c, err := r.browser.Category(arg)
		if err != nil {
			r.print(err.Error())
			return false
		}
		r.category = c
		r.print(fmt.Sprintf("searching %s", c))
	case "categories":
		for _, c := range r.browser.Categories() {
			r.print(c.String())
		}
	case "craft":
		r.craft(ctx, arg)
	case "reload":
		if err := r.reload(ctx, nil); err != nil {
			r.print(err.Error())
		}
	default:
		r.print(fmt.Sprintf("unknown command %q, type :help", verb))
	}
	return false
}

func (r *repl) search(ctx context.Context, text string) {
	result, err := r.browser.Search(text, r.category)
	if err != nil {
		r.print(err.Error())
		return
	}
	if !result.Definitive() {
		r.emit(ctx, result.Names())
		return
	}
	out, err := r.browser.Translate(result.Record, r.category)
	if err != nil {
		r.print(err.Error())
	}
	r.emit(ctx, out)
}

func (r *repl) craft(ctx context.Context, item string) {
	result, err := r.browser.Craft(item)
	if err != nil {
		r.print(err.Error())
		return
	}
	if !result.Definitive() {
		r.print(fmt.Sprintf("no recipe makes %q", item))
		return
	}
	out, err := r.browser.Translate(result.Record, category.Recipe)
	if err != nil {
		r.print(err.Error())
	}
	r.emit(ctx, out)
}

// reload loads the data directory again. It is also the watcher callback.
func (r *repl) reload(ctx context.Context, paths []string) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.ReloadTimeout)
	defer cancel()

	report, err := r.browser.Reload(ctx)
	if err != nil {
		return err
	}
	slog.Info("data reloaded", "changed", len(paths), "records", report.RecordsLoaded)
	r.print(fmt.Sprintf("reloaded %d records", report.RecordsLoaded))
	return nil
}

func (r *repl) prompt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s[%s]> ", name, r.category)
}

func (r *repl) print(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, msg)
}

func (r *repl) emit(ctx context.Context, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := serializer.NewWriter(r.format, r.out).Serialize(ctx, data); err != nil {
		fmt.Fprintln(r.out, err)
	}
}
