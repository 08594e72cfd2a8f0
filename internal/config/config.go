package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/experiment"
)

const (
	DefaultInterval    = 40 * time.Millisecond
	DefaultDt          = 0.04
	DefaultImpactHold  = 600 * time.Millisecond
	DefaultPauseWindow = 5 * time.Second
	DefaultTrack       = anim.DefaultTrackLength
	DefaultAddr        = "localhost:8080"
	DefaultDiagram     = experiment.CollisionElastic
)

var validate = validator.New()

type Config struct {
	LogLevel  string               `mapstructure:"log_level" yaml:"log_level" validate:"required,oneof=debug info warn error"`
	DataDir   string               `mapstructure:"data_dir" yaml:"data_dir" validate:"required"`
	Database  string               `mapstructure:"database" yaml:"database" validate:"required"`
	Diagram   string               `mapstructure:"diagram" yaml:"diagram" validate:"required"`
	Server    ServerConfig         `mapstructure:"server" yaml:"server"`
	Animation AnimationConfig      `mapstructure:"animation" yaml:"animation"`
	Collision anim.CollisionParams `mapstructure:"collision" yaml:"collision"`
	Light     anim.LightParams     `mapstructure:"light" yaml:"light"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr" yaml:"addr" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gt=0"`
}

type AnimationConfig struct {
	Interval    time.Duration `mapstructure:"interval" yaml:"interval" validate:"gte=16ms,lte=80ms"`
	Dt          float64       `mapstructure:"dt" yaml:"dt" validate:"gt=0,lte=0.2"`
	ImpactHold  time.Duration `mapstructure:"impact_hold" yaml:"impact_hold" validate:"gte=0"`
	PauseWindow time.Duration `mapstructure:"pause_window" yaml:"pause_window" validate:"gte=0,lte=30s"`
	Loop        bool          `mapstructure:"loop" yaml:"loop"`
	Track       float64       `mapstructure:"track" yaml:"track" validate:"gte=5,lte=50"`
}

func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".physlab")
	return &Config{
		LogLevel: "info",
		DataDir:  dataDir,
		Database: filepath.Join(dataDir, "physlab.db"),
		Diagram:  DefaultDiagram,
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Animation: AnimationConfig{
			Interval:    DefaultInterval,
			Dt:          DefaultDt,
			ImpactHold:  DefaultImpactHold,
			PauseWindow: DefaultPauseWindow,
			Loop:        true,
			Track:       DefaultTrack,
		},
		Collision: anim.DefaultCollisionParams(),
		Light:     anim.DefaultLightParams(),
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("database", d.Database)
	v.SetDefault("diagram", d.Diagram)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("animation.interval", d.Animation.Interval)
	v.SetDefault("animation.dt", d.Animation.Dt)
	v.SetDefault("animation.impact_hold", d.Animation.ImpactHold)
	v.SetDefault("animation.pause_window", d.Animation.PauseWindow)
	v.SetDefault("animation.loop", d.Animation.Loop)
	v.SetDefault("animation.track", d.Animation.Track)
	v.SetDefault("collision.mass1", d.Collision.Mass1)
	v.SetDefault("collision.velocity1", d.Collision.Velocity1)
	v.SetDefault("collision.mass2", d.Collision.Mass2)
	v.SetDefault("collision.velocity2", d.Collision.Velocity2)
	v.SetDefault("light.distance", d.Light.Distance)
}

// Load reads defaults, then the optional YAML file at path, then PHYSLAB_*
// environment variables, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("PHYSLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Params returns the slider values in the shape the diagram registry takes.
func (c *Config) Params() experiment.Params {
	return experiment.Params{
		Collision: c.Collision,
		Light:     c.Light,
		Track:     c.Animation.Track,
	}
}

func (c *Config) AnimConfig() anim.Config {
	return anim.Config{
		Interval:    c.Animation.Interval,
		Dt:          c.Animation.Dt,
		ImpactHold:  c.Animation.ImpactHold,
		PauseWindow: c.Animation.PauseWindow,
		Loop:        c.Animation.Loop,
	}
}
