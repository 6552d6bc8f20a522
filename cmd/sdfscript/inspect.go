package main

import (
	"flag"
	"fmt"

	"github.com/sanity-io/litter"

	"github.com/mgomes/sdfscript/script"
)

var dumpOptions = litter.Options{
	HidePrivateFields: true,
	StripPackageNames: true,
}

func expandCommand(args []string) error {
	fs := flag.NewFlagSet("expand", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var src sourceFlags
	src.register(fs)
	tree := fs.Bool("tree", false, "dump the macro tree instead of the expansion")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := src.load("expand", fs.Args())
	if err != nil {
		return err
	}
	if *tree {
		seq, err := script.ExpandTree(in.source)
		if err != nil {
			return err
		}
		fmt.Println(dumpOptions.Sdump(seq))
		return nil
	}
	expanded, err := script.Expand(in.source)
	if err != nil {
		return err
	}
	fmt.Println(expanded)
	return nil
}

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var src sourceFlags
	src.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := src.load("tokens", fs.Args())
	if err != nil {
		return err
	}
	prog, err := compileInput(in)
	if err != nil {
		return err
	}
	for _, tok := range prog.Tokens() {
		fmt.Printf("%d:%d\t%s\n", tok.Pos.Line, tok.Pos.Column, tok)
	}
	return nil
}

func astCommand(args []string) error {
	fs := flag.NewFlagSet("ast", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var src sourceFlags
	src.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := src.load("ast", fs.Args())
	if err != nil {
		return err
	}
	prog, err := compileInput(in)
	if err != nil {
		return err
	}
	fmt.Println(dumpOptions.Sdump(prog.AST()))
	return nil
}
