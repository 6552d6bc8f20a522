package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/mgomes/sdfscript/script"
)

func evalCommand(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var src sourceFlags
	src.register(fs)
	var at vec3Flag
	fs.Var(&at, "at", "point to evaluate as x,y,z")
	var a0, a1 float32Flag
	fs.Var(&a0, "a0", "first animation angle in turns")
	fs.Var(&a1, "a1", "second animation angle in turns")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := src.load("eval", fs.Args())
	if err != nil {
		return err
	}
	prog, err := compileInput(in)
	if err != nil {
		return err
	}
	angle0, angle1 := angles(in, &a0, &a1)
	d, err := prog.Eval(context.Background(), at.v, angle0, angle1, script.EvalOptions{})
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	fmt.Println(strconv.FormatFloat(float64(d), 'g', -1, 32))
	return nil
}

func genCommand(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var src sourceFlags
	src.register(fs)
	width := fs.Int("width", script.DefaultWidth, "line width of the generated code")
	name := fs.String("name", "", "name of the generated function")
	var a0, a1 float32Flag
	fs.Var(&a0, "a0", "value bound to a0")
	fs.Var(&a1, "a1", "value bound to a1")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *width <= 0 {
		return fmt.Errorf("sdfscript gen: width must be positive, got %d", *width)
	}

	in, err := src.load("gen", fs.Args())
	if err != nil {
		return err
	}
	prog, err := compileInput(in)
	if err != nil {
		return err
	}
	angle0, angle1 := angles(in, &a0, &a1)
	fmt.Print(prog.Generate(script.GenerateOptions{
		Width:    *width,
		A0:       angle0,
		A1:       angle1,
		FuncName: *name,
	}))
	return nil
}
