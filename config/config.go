// Package config holds the tunable settings of the prototype and loads them from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plus3/fpsproto/input"
)

// Config is the root of the YAML document. Every section has working defaults,
// so a config file only needs to name the values it overrides.
type Config struct {
	Window   WindowConfig      `yaml:"window"`
	Player   PlayerConfig      `yaml:"player"`
	Weapon   WeaponConfig      `yaml:"weapon"`
	Physics  PhysicsConfig     `yaml:"physics"`
	UI       UIConfig          `yaml:"ui"`
	Audio    AudioConfig       `yaml:"audio"`
	Bindings map[string]string `yaml:"bindings"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"targetFps"`
	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float32 `yaml:"fieldOfView"`
}

type PlayerConfig struct {
	// YawSensitivity and PitchSensitivity are radians per pixel of mouse motion.
	YawSensitivity   float32 `yaml:"yawSensitivity"`
	PitchSensitivity float32 `yaml:"pitchSensitivity"`
	// MoveStep is the distance covered per tick for each held movement key.
	MoveStep        float32    `yaml:"moveStep"`
	JumpImpulse     float32    `yaml:"jumpImpulse"`
	RequireGrounded bool       `yaml:"requireGrounded"`
	Mass            float32    `yaml:"mass"`
	Radius          float32    `yaml:"radius"`
	HalfHeight      float32    `yaml:"halfHeight"`
	EyeHeight       float32    `yaml:"eyeHeight"`
	Spawn           [3]float32 `yaml:"spawn"`
}

type WeaponConfig struct {
	RayDistance      float32 `yaml:"rayDistance"`
	ProjectileSpeed  float32 `yaml:"projectileSpeed"`
	ProjectileRadius float32 `yaml:"projectileRadius"`
	// Lifetime is the number of seconds a projectile lives before it is despawned.
	Lifetime     float32 `yaml:"lifetime"`
	ArenaBound   float32 `yaml:"arenaBound"`
	DespawnOnHit bool    `yaml:"despawnOnHit"`
	Sound        string  `yaml:"sound"`
}

type PhysicsConfig struct {
	Gravity float32 `yaml:"gravity"`
}

type UIConfig struct {
	// FPSRefresh is the interval in seconds between FPS readout updates. Zero updates every tick.
	FPSRefresh    float32 `yaml:"fpsRefresh"`
	BoldFont      string  `yaml:"boldFont"`
	MediumFont    string  `yaml:"mediumFont"`
	FPSFontSize   float32 `yaml:"fpsFontSize"`
	ColorText     string  `yaml:"colorText"`
	ColorFontSize float32 `yaml:"colorFontSize"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
	// Volume is a base-2 gain exponent: 0 plays clips unchanged, -1 halves amplitude.
	Volume float64           `yaml:"volume"`
	Clips  map[string]string `yaml:"clips"`
}

// Default returns the settings the prototype ships with.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:       1280,
			Height:      720,
			Title:       "fpsproto",
			TargetFPS:   60,
			FieldOfView: 45,
		},
		Player: PlayerConfig{
			YawSensitivity:   0.002,
			PitchSensitivity: 0.002,
			MoveStep:         0.1,
			JumpImpulse:      80,
			Mass:             1,
			Radius:           0.5,
			HalfHeight:       0.5,
			EyeHeight:        0.6,
			Spawn:            [3]float32{0, 1, 10},
		},
		Weapon: WeaponConfig{
			RayDistance:      100,
			ProjectileSpeed:  40,
			ProjectileRadius: 0.5,
			Lifetime:         5,
			ArenaBound:       200,
			DespawnOnHit:     true,
			Sound:            "queef",
		},
		Physics: PhysicsConfig{
			Gravity: 9.81,
		},
		UI: UIConfig{
			FPSRefresh:    0,
			BoldFont:      "assets/fonts/FiraSans-Bold.ttf",
			MediumFont:    "assets/fonts/FiraMono-Medium.ttf",
			FPSFontSize:   60,
			ColorText:     "hello\nfpsproto!",
			ColorFontSize: 100,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0,
			Clips: map[string]string{
				"lazer": "assets/sounds/lazer.ogg",
				"queef": "assets/sounds/queef.ogg",
			},
		},
		Bindings: DefaultBindings(),
	}
}

// DefaultBindings maps every input action to its default key name.
func DefaultBindings() map[string]string {
	return map[string]string{
		"forward": "W",
		"back":    "S",
		"left":    "A",
		"right":   "D",
		"jump":    "Space",
		"exit":    "Escape",
		"debug":   "F1",
		"fire":    "MouseLeft",
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Partial bindings override individual actions; the rest keep their defaults.
	if cfg.Bindings == nil {
		cfg.Bindings = make(map[string]string)
	}
	for action, key := range DefaultBindings() {
		if _, ok := cfg.Bindings[action]; !ok {
			cfg.Bindings[action] = key
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// KeyMap resolves the configured bindings. It assumes Validate has passed.
func (c *Config) KeyMap() input.KeyMap {
	keys := make(input.KeyMap, len(c.Bindings))
	for name, keyName := range c.Bindings {
		action, err := input.ParseAction(name)
		if err != nil {
			continue
		}
		key, err := input.ParseKey(keyName)
		if err != nil {
			continue
		}
		keys[action] = key
	}
	return keys
}

// Validate reports every out-of-range value at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.TargetFPS >= 0, "window.targetFps must not be negative")
	check(c.Window.FieldOfView > 0 && c.Window.FieldOfView < 180, "window.fieldOfView must be in (0, 180), got %v", c.Window.FieldOfView)
	check(c.Player.Mass > 0, "player.mass must be positive, got %v", c.Player.Mass)
	check(c.Player.MoveStep >= 0, "player.moveStep must not be negative")
	check(c.Player.Radius > 0, "player.radius must be positive")
	check(c.Player.HalfHeight >= 0, "player.halfHeight must not be negative")
	check(c.Weapon.ProjectileSpeed > 0, "weapon.projectileSpeed must be positive, got %v", c.Weapon.ProjectileSpeed)
	check(c.Weapon.RayDistance > 0, "weapon.rayDistance must be positive")
	check(c.Weapon.ProjectileRadius > 0, "weapon.projectileRadius must be positive")
	check(c.Weapon.Lifetime > 0, "weapon.lifetime must be positive")
	check(c.Weapon.ArenaBound > 0, "weapon.arenaBound must be positive")
	check(c.Physics.Gravity >= 0, "physics.gravity must not be negative")
	check(c.UI.FPSRefresh >= 0, "ui.fpsRefresh must not be negative")

	for action, key := range c.Bindings {
		if _, err := input.ParseAction(action); err != nil {
			errs = append(errs, err)
		}
		if _, err := input.ParseKey(key); err != nil {
			errs = append(errs, fmt.Errorf("binding %q: %w", action, err))
		}
	}

	return errors.Join(errs...)
}
