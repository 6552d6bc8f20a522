package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mgomes/sdfscript/scenes"
)

func scenesCommand(args []string) error {
	if len(args) == 0 {
		list, err := scenes.List()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, scene := range list {
			fmt.Fprintf(w, "%s\t%s\n", scene.Name, scene.Description)
		}
		return w.Flush()
	}
	switch args[0] {
	case "show":
		if len(args) != 2 {
			return errors.New("sdfscript scenes show: scene name required")
		}
		scene, err := scenes.Get(args[1])
		if err != nil {
			return err
		}
		fmt.Println(scene.Source)
		return nil
	default:
		return fmt.Errorf("sdfscript scenes: unknown subcommand %q", args[0])
	}
}
