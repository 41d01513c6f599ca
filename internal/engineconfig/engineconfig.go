package engineconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"roomview/internal/env"
	"roomview/internal/scenegraph"
)

// EngineConfigPath is the default preferences file, relative to the process working directory.
const EngineConfigPath = "config/roomview.yaml"

// Environment variables that override the preferences file.
const (
	EnvConfig    = "ROOMVIEW_CONFIG"
	EnvModel     = "ROOMVIEW_MODEL"
	EnvHighlight = "ROOMVIEW_HIGHLIGHT"
	EnvTags      = "ROOMVIEW_TAGS"
	EnvDebug     = "ROOMVIEW_DEBUG"
)

// WindowPrefs sizes and titles the viewer window.
type WindowPrefs struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
	Resizable bool   `yaml:"resizable"`
}

// CameraPrefs is the initial camera pose and the controls that move it.
type CameraPrefs struct {
	Position [3]float32 `yaml:"position,flow"`
	Target   [3]float32 `yaml:"target,flow"`
	FovY     float32    `yaml:"fovy"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Damping  float32    `yaml:"damping"`

	Bob          bool    `yaml:"bob"`
	BobFrequency float32 `yaml:"bob_frequency"`
	BobAmplitude float32 `yaml:"bob_amplitude"`
}

// CubePrefs describes the spinning test cube.
type CubePrefs struct {
	Enabled  bool       `yaml:"enabled"`
	Size     float32    `yaml:"size"`
	Color    string     `yaml:"color"`
	Position [3]float32 `yaml:"position,flow"`
	Spin     float32    `yaml:"spin"`
}

// Prefs holds viewer preferences. Persisted across runs.
type Prefs struct {
	Window     WindowPrefs `yaml:"window"`
	Background string      `yaml:"background"`
	Model      string      `yaml:"model"`
	Tags       []string    `yaml:"tags"`
	Highlight  string      `yaml:"highlight"`
	Camera     CameraPrefs `yaml:"camera"`
	TestCube   CubePrefs   `yaml:"test_cube"`

	GridVisible  bool `yaml:"grid_visible"`
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowHover    bool `yaml:"show_hover"`
	ShowLog      bool `yaml:"show_log"`
}

// Default returns the reference room setup: overlays off, grid off, test cube on.
func Default() Prefs {
	return Prefs{
		Window: WindowPrefs{
			Width:     1280,
			Height:    720,
			Title:     "roomview",
			TargetFPS: 60,
			Resizable: true,
		},
		Background: "#050509",
		Model:      "assets/room.glb",
		Tags:       []string{"CHART_MY_WORK", "CHART_ABOUT", "CHART_CONTACT"},
		Highlight:  "#ff0000",
		Camera: CameraPrefs{
			Position:     [3]float32{-0.04307105681398, 0.426049991084538, 0.07353198720262494},
			Target:       [3]float32{1.086376205707433, 1.1808734984911493, 1.5432228011158056},
			FovY:         45,
			Near:         0.1,
			Far:          1000,
			Damping:      0.05,
			Bob:          true,
			BobFrequency: 0.2,
			BobAmplitude: 0.0005,
		},
		TestCube: CubePrefs{
			Enabled:  true,
			Size:     1,
			Color:    "#00ff00",
			Position: [3]float32{-2, 1, 0},
			Spin:     0.01,
		},
	}
}

// Path returns the preferences file to use: $ROOMVIEW_CONFIG if set, otherwise EngineConfigPath.
func Path() string {
	return env.String(EnvConfig, EngineConfigPath)
}

// Load reads preferences from path. Keys missing from the file keep their Default() value.
// A missing file yields Default() and no error; an unreadable or invalid file yields
// Default() and the error so the caller can report it.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("engineconfig: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides p with the ROOMVIEW_* environment variables that are set.
func (p *Prefs) ApplyEnv() {
	p.Model = env.String(EnvModel, p.Model)
	p.Highlight = env.String(EnvHighlight, p.Highlight)
	p.Tags = env.List(EnvTags, p.Tags)
	if env.Bool(EnvDebug, false) {
		p.ShowFPS, p.ShowMemAlloc, p.ShowHover, p.ShowLog = true, true, true, true
	}
}

// Validate checks the fields that cannot be fixed up silently.
func (p Prefs) Validate() error {
	if _, err := scenegraph.ParseColor(p.Highlight); err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	if _, err := scenegraph.ParseColor(p.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if p.TestCube.Enabled {
		if _, err := scenegraph.ParseColor(p.TestCube.Color); err != nil {
			return fmt.Errorf("test_cube.color: %w", err)
		}
	}
	if p.Window.Width <= 0 || p.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", p.Window.Width, p.Window.Height)
	}
	c := p.Camera
	if c.FovY <= 0 || c.FovY >= 180 || c.Near <= 0 || c.Far <= c.Near {
		return fmt.Errorf("camera projection fovy=%g near=%g far=%g", c.FovY, c.Near, c.Far)
	}
	if c.Position == c.Target {
		return errors.New("camera position equals target")
	}
	return nil
}

// HighlightColor returns the parsed highlight color, or red if it is invalid.
func (p Prefs) HighlightColor() scenegraph.Color {
	return parseOr(p.Highlight, scenegraph.Hex(0xff0000))
}

// BackgroundColor returns the parsed background color, or the default if it is invalid.
func (p Prefs) BackgroundColor() scenegraph.Color {
	return parseOr(p.Background, scenegraph.Hex(0x050509))
}

// CubeColor returns the parsed test cube color, or green if it is invalid.
func (p Prefs) CubeColor() scenegraph.Color {
	return parseOr(p.TestCube.Color, scenegraph.Hex(0x00ff00))
}

func parseOr(s string, fallback scenegraph.Color) scenegraph.Color {
	c, err := scenegraph.ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// Vec3 converts a YAML triple to a vector.
func Vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3(v)
}
