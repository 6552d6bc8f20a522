package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/fsnotify/fsnotify"
	"github.com/soypat/glgl/math/ms3"

	"github.com/mgomes/sdfscript/script"
)

func watchCommand(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var at vec3Flag
	fs.Var(&at, "at", "point to evaluate after each change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("sdfscript watch: scene path required")
	}
	path, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("resolve scene path: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watchFile(ctx, path, at.v, os.Stdout)
}

// watchFile rechecks path once up front and again whenever it is written.
// It watches the parent directory so editors that replace the file on save
// are still seen.
func watchFile(ctx context.Context, path string, at ms3.Vec, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	engine := script.MustNewEngine(script.Config{})
	checkFile(engine, path, at, out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			checkFile(engine, path, at, out)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "watch error: %v\n", err)
		}
	}
}

func checkFile(engine *script.Engine, path string, at ms3.Vec, out io.Writer) {
	input, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", filepath.Base(path), err)
		return
	}
	fmt.Fprintln(out, checkSource(engine, filepath.Base(path), string(input), at))
}

// checkSource compiles and evaluates source once and summarizes the outcome
// in a single report.
func checkSource(engine *script.Engine, name, source string, at ms3.Vec) string {
	prog, err := engine.Compile(source)
	if err != nil {
		return fmt.Sprintf("%s: %v", name, err)
	}
	d, err := prog.Eval(context.Background(), at, 0, 0, script.EvalOptions{})
	if err != nil {
		return fmt.Sprintf("%s: %v", name, err)
	}
	return fmt.Sprintf("%s: ok, distance %s at %s", name, strconv.FormatFloat(float64(d), 'g', -1, 32), (&vec3Flag{v: at}).String())
}
