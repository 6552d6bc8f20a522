package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/soypat/glgl/math/ms3"
)

// Light is a point light. Intensity scales its contribution.
type Light struct {
	Position  [3]float32 `toml:"position"`
	Intensity float32    `toml:"intensity"`
}

// Material holds Phong coefficients applied to every surface.
type Material struct {
	Ambient   float32 `toml:"ambient"`
	Diffuse   float32 `toml:"diffuse"`
	Specular  float32 `toml:"specular"`
	Shininess float32 `toml:"shininess"`
}

// Config describes one rendering. Field names follow the TOML keys a scene
// file may set; anything left out keeps the value of the base config.
type Config struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	AA         int        `toml:"aa"`
	Camera     [3]float32 `toml:"camera"`
	LookAt     [3]float32 `toml:"look_at"`
	Background float32    `toml:"background"`
	A0         float32    `toml:"a0"`
	A1         float32    `toml:"a1"`
	Lights     []Light    `toml:"lights"`
	Material   Material   `toml:"material"`
	Palette    Palette    `toml:"palette"`
	MaxSteps   int        `toml:"max_steps"`
	MaxDist    float32    `toml:"max_dist"`
	Epsilon    float32    `toml:"epsilon"`

	// Progress is called after each finished row. Calls are serialized.
	Progress func(done, total int) `toml:"-"`
}

// DefaultConfig returns the settings used when no scene file is given.
func DefaultConfig() Config {
	return Config{
		Width:      1024,
		Height:     768,
		AA:         3,
		Camera:     [3]float32{0, 0, -20},
		Background: 0.75,
		Lights: []Light{
			{Position: [3]float32{0, 0, -50}, Intensity: 1},
			{Position: [3]float32{0, 10, 40}, Intensity: 1},
		},
		Material: Material{Ambient: 0.1, Diffuse: 0.6, Specular: 0.3, Shininess: 5},
		MaxSteps: 512,
		MaxDist:  100,
		Epsilon:  1e-4,
	}
}

// LoadConfig decodes the TOML file at path on top of base. Keys the config
// does not know are an error.
func LoadConfig(path string, base Config) (Config, error) {
	cfg := base
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load render config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("load render config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate reports the first setting a render cannot proceed with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.AA <= 0:
		return fmt.Errorf("anti-aliasing factor must be positive, got %d", c.AA)
	case c.MaxSteps <= 0:
		return fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps)
	case c.MaxDist <= 0 || c.Epsilon <= 0:
		return errors.New("max_dist and epsilon must be positive")
	case c.Camera == c.LookAt:
		return errors.New("camera and look_at must differ")
	}
	return c.Palette.validate()
}

func vec(a [3]float32) ms3.Vec {
	return ms3.Vec{X: a[0], Y: a[1], Z: a[2]}
}
