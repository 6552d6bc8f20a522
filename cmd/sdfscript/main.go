package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soypat/glgl/math/ms3"

	"github.com/mgomes/sdfscript/scenes"
	"github.com/mgomes/sdfscript/script"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "eval":
		return evalCommand(args[2:])
	case "gen":
		return genCommand(args[2:])
	case "expand":
		return expandCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "ast":
		return astCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "slice":
		return sliceCommand(args[2:])
	case "render":
		return renderCommand(args[2:])
	case "scenes":
		return scenesCommand(args[2:])
	case "watch":
		return watchCommand(args[2:])
	case "repl":
		return runREPL()
	case "lsp":
		return runLSP()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [file]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  eval     print the distance at a point (-at x,y,z -a0 -a1)")
	fmt.Fprintln(os.Stderr, "  gen      print the scene as a Rhai function (-width -name -a0 -a1)")
	fmt.Fprintln(os.Stderr, "  expand   print the macro-expanded source (-tree)")
	fmt.Fprintln(os.Stderr, "  tokens   print the token stream")
	fmt.Fprintln(os.Stderr, "  ast      dump the syntax tree")
	fmt.Fprintln(os.Stderr, "  fmt      format .sdf files (-w -check)")
	fmt.Fprintln(os.Stderr, "  analyze  report unused and overwritten assignments")
	fmt.Fprintln(os.Stderr, "  slice    draw a planar slice (-axis -at -size)")
	fmt.Fprintln(os.Stderr, "  render   sphere-trace to PNG (-o -config -width -height -aa -ascii -q)")
	fmt.Fprintln(os.Stderr, "  scenes   list bundled scenes, or `scenes show NAME`")
	fmt.Fprintln(os.Stderr, "  watch    recheck a file whenever it changes")
	fmt.Fprintln(os.Stderr, "  repl     start an interactive session")
	fmt.Fprintln(os.Stderr, "  lsp      serve the language server protocol on stdio")
	fmt.Fprintln(os.Stderr, "Source flags:")
	fmt.Fprintln(os.Stderr, "  -e string")
	fmt.Fprintln(os.Stderr, "    inline scene source instead of a file")
	fmt.Fprintln(os.Stderr, "  -scene string")
	fmt.Fprintln(os.Stderr, "    bundled scene name instead of a file")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

// sourceFlags selects where a command reads its scene from: -e, -scene or
// the first positional argument.
type sourceFlags struct {
	expr  string
	scene string
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.expr, "e", "", "inline scene source")
	fs.StringVar(&s.scene, "scene", "", "bundled scene name")
}

type sceneInput struct {
	name   string
	source string
	// view is set for bundled scenes.
	view *scenes.Scene
}

func (s *sourceFlags) load(command string, args []string) (sceneInput, error) {
	switch {
	case s.expr != "":
		return sceneInput{name: "<expr>", source: s.expr}, nil
	case s.scene != "":
		scene, err := scenes.Get(s.scene)
		if err != nil {
			return sceneInput{}, err
		}
		return sceneInput{name: scene.Name, source: scene.Source, view: &scene}, nil
	case len(args) == 0:
		return sceneInput{}, fmt.Errorf("sdfscript %s: scene path required", command)
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		return sceneInput{}, fmt.Errorf("resolve scene path: %w", err)
	}
	input, err := os.ReadFile(path)
	if err != nil {
		return sceneInput{}, fmt.Errorf("read scene: %w", err)
	}
	return sceneInput{name: path, source: string(input)}, nil
}

func compileInput(in sceneInput) (*script.Program, error) {
	engine := script.MustNewEngine(script.Config{})
	prog, err := engine.Compile(in.source)
	if err != nil {
		return nil, fmt.Errorf("compile failed: %w", err)
	}
	return prog, nil
}

// vec3Flag parses "x,y,z".
type vec3Flag struct {
	v ms3.Vec
}

func (f *vec3Flag) String() string {
	return fmt.Sprintf("%g,%g,%g", f.v.X, f.v.Y, f.v.Z)
}

func (f *vec3Flag) Set(value string) error {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected x,y,z, got %q", value)
	}
	var xyz [3]float32
	for i, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", part, err)
		}
		xyz[i] = float32(n)
	}
	f.v = ms3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

// float32Flag records whether it was set, so file and scene values survive
// unless overridden.
type float32Flag struct {
	v   float32
	set bool
}

func (f *float32Flag) String() string {
	return strconv.FormatFloat(float64(f.v), 'g', -1, 32)
}

func (f *float32Flag) Set(value string) error {
	n, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return err
	}
	f.v = float32(n)
	f.set = true
	return nil
}

// angles resolves a0 and a1: flags win over the scene's own view.
func angles(in sceneInput, a0, a1 *float32Flag) (float32, float32) {
	var base0, base1 float32
	if in.view != nil {
		base0, base1 = in.view.A0, in.view.A1
	}
	if a0.set {
		base0 = a0.v
	}
	if a1.set {
		base1 = a1.v
	}
	return base0, base1
}
