// Package scenes bundles example scene sources with the camera settings
// they were composed for.
package scenes

import (
	"embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/mgomes/sdfscript/render"
)

//go:embed *.sdf catalog.toml
var files embed.FS

// Scene is one catalog entry.
type Scene struct {
	Name        string     `toml:"-"`
	Source      string     `toml:"-"`
	Description string     `toml:"description"`
	Camera      [3]float32 `toml:"camera"`
	LookAt      [3]float32 `toml:"look_at"`
	A0          float32    `toml:"a0"`
	A1          float32    `toml:"a1"`
}

// Apply copies the scene's view onto cfg.
func (s Scene) Apply(cfg render.Config) render.Config {
	cfg.Camera = s.Camera
	cfg.LookAt = s.LookAt
	cfg.A0 = s.A0
	cfg.A1 = s.A1
	return cfg
}

var loadCatalog = sync.OnceValues(func() ([]Scene, error) {
	var entries map[string]Scene
	if _, err := toml.DecodeFS(files, "catalog.toml", &entries); err != nil {
		return nil, fmt.Errorf("decode scene catalog: %w", err)
	}
	list := make([]Scene, 0, len(entries))
	for name, scene := range entries {
		src, err := files.ReadFile(name + ".sdf")
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", name, err)
		}
		scene.Name = name
		scene.Source = strings.TrimSpace(string(src))
		list = append(list, scene)
	}
	slices.SortFunc(list, func(a, b Scene) int { return strings.Compare(a.Name, b.Name) })
	return list, nil
})

// List returns every scene sorted by name.
func List() ([]Scene, error) {
	list, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	return slices.Clone(list), nil
}

// Names returns the scene names in sorted order.
func Names() ([]string, error) {
	list, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	return names, nil
}

// Get looks a scene up by name.
func Get(name string) (Scene, error) {
	list, err := loadCatalog()
	if err != nil {
		return Scene{}, err
	}
	i, found := slices.BinarySearchFunc(list, name, func(s Scene, target string) int {
		return strings.Compare(s.Name, target)
	})
	if !found {
		return Scene{}, fmt.Errorf("unknown scene %q", name)
	}
	return list[i], nil
}
