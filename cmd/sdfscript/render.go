package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/mgomes/sdfscript/render"
)

func renderCommand(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var src sourceFlags
	src.register(fs)
	output := fs.String("o", "out.png", "output PNG path")
	configPath := fs.String("config", "", "TOML render settings")
	width := fs.Int("width", 0, "image width in pixels")
	height := fs.Int("height", 0, "image height in pixels")
	aa := fs.Int("aa", 0, "anti-aliasing samples per axis")
	ascii := fs.Bool("ascii", false, "draw to the terminal instead of a PNG")
	quiet := fs.Bool("q", false, "suppress progress output")
	var a0, a1 float32Flag
	fs.Var(&a0, "a0", "first animation angle in turns")
	fs.Var(&a1, "a1", "second animation angle in turns")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := src.load("render", fs.Args())
	if err != nil {
		return err
	}
	prog, err := compileInput(in)
	if err != nil {
		return err
	}

	cfg := render.DefaultConfig()
	if in.view != nil {
		cfg = in.view.Apply(cfg)
	}
	if *configPath != "" {
		cfg, err = render.LoadConfig(*configPath, cfg)
		if err != nil {
			return err
		}
	}
	if *ascii {
		cols, rows := terminalSize()
		cfg.Width = cols
		cfg.Height = (rows - 1) * 2
		cfg.AA = 1
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *aa > 0 {
		cfg.AA = *aa
	}
	if a0.set {
		cfg.A0 = a0.v
	}
	if a1.set {
		cfg.A1 = a1.v
	}
	if !*quiet && !*ascii {
		cfg.Progress = func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rrendering %3d%%", done*100/total)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	start := time.Now()
	frame, err := render.Render(ctx, prog.Func(cfg.A0, cfg.A1), cfg)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if *ascii {
		fmt.Print(frame.ASCII())
		return nil
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "\rrendered %dx%d in %s\n", cfg.Width, cfg.Height, time.Since(start).Round(time.Millisecond))
	}
	return writePNG(*output, frame, cfg.Palette)
}

func writePNG(path string, frame *render.Frame, palette render.Palette) error {
	img, err := frame.Image(palette)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
