package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/mgomes/sdfscript/render"
)

const (
	fallbackCols = 80
	fallbackRows = 24
)

// terminalSize reports the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (int, int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return fallbackCols, fallbackRows
	}
	return cols, rows
}

func sliceCommand(args []string) error {
	fs := flag.NewFlagSet("slice", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var src sourceFlags
	src.register(fs)
	axisName := fs.String("axis", "z", "axis held fixed: x, y or z")
	var at, size float32Flag
	size.v = 20
	fs.Var(&at, "at", "coordinate of the slice plane")
	fs.Var(&size, "size", "half width of the sampled window")
	cols := fs.Int("cols", 0, "columns (default: terminal width)")
	rows := fs.Int("rows", 0, "rows (default: half the columns, capped at the terminal height)")
	var a0, a1 float32Flag
	fs.Var(&a0, "a0", "first animation angle in turns")
	fs.Var(&a1, "a1", "second animation angle in turns")
	if err := fs.Parse(args); err != nil {
		return err
	}

	axis, err := render.ParseAxis(*axisName)
	if err != nil {
		return err
	}
	in, err := src.load("slice", fs.Args())
	if err != nil {
		return err
	}
	prog, err := compileInput(in)
	if err != nil {
		return err
	}

	termCols, termRows := terminalSize()
	if *cols <= 0 {
		*cols = termCols
	}
	if *rows <= 0 {
		*rows = min(*cols/2, termRows-1)
	}
	angle0, angle1 := angles(in, &a0, &a1)
	grid, err := render.Slice(context.Background(), prog.Func(angle0, angle1), render.SliceSpec{
		Axis: axis,
		At:   at.v,
		Size: size.v,
		Cols: *cols,
		Rows: *rows,
	})
	if err != nil {
		return fmt.Errorf("slice failed: %w", err)
	}
	fmt.Print(grid.ASCII())
	return nil
}
