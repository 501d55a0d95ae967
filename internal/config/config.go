// Package config loads blackjack settings from an optional HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete blackjack configuration
type Config struct {
	Game       GameSettings
	UI         UISettings
	Simulation SimulationSettings
}

// file mirrors Config with every block optional
type file struct {
	Game       *GameSettings       `hcl:"game,block"`
	UI         *UISettings         `hcl:"ui,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// GameSettings contains table settings for interactive play
type GameSettings struct {
	PlayerName     string `hcl:"player_name,optional"`
	StartingTokens int    `hcl:"starting_tokens,optional"`
	DealerName     string `hcl:"dealer_name,optional"`
	Seed           int64  `hcl:"seed,optional"`
}

// UISettings contains terminal and logging settings
type UISettings struct {
	Color    *bool  `hcl:"color,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// SimulationSettings contains defaults for headless simulation runs
type SimulationSettings struct {
	Rounds  int `hcl:"rounds,optional"`
	Workers int `hcl:"workers,optional"`
	Bet     int `hcl:"bet,optional"`
	StandOn int `hcl:"stand_on,optional"`
}

// Default returns default configuration
func Default() *Config {
	color := true
	return &Config{
		Game: GameSettings{
			PlayerName:     "",
			StartingTokens: 100,
			DealerName:     "Dealer",
			Seed:           0,
		},
		UI: UISettings{
			Color:    &color,
			LogLevel: "warn",
			LogFile:  "blackjack.log",
		},
		Simulation: SimulationSettings{
			Rounds:  10000,
			Workers: 4,
			Bet:     10,
			StandOn: 17,
		},
	}
}

// Load loads configuration from an HCL file. An empty name or a missing
// file is not an error and yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	return decode(f.Body)
}

// Parse decodes configuration from HCL source held in memory
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	return decode(f.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var raw file
	if diags := gohcl.DecodeBody(body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	config := Default()

	if g := raw.Game; g != nil {
		if g.PlayerName != "" {
			config.Game.PlayerName = g.PlayerName
		}
		if g.StartingTokens != 0 {
			config.Game.StartingTokens = g.StartingTokens
		}
		if g.DealerName != "" {
			config.Game.DealerName = g.DealerName
		}
		config.Game.Seed = g.Seed
	}

	if u := raw.UI; u != nil {
		if u.Color != nil {
			config.UI.Color = u.Color
		}
		if u.LogLevel != "" {
			config.UI.LogLevel = u.LogLevel
		}
		if u.LogFile != "" {
			config.UI.LogFile = u.LogFile
		}
	}

	if s := raw.Simulation; s != nil {
		if s.Rounds != 0 {
			config.Simulation.Rounds = s.Rounds
		}
		if s.Workers != 0 {
			config.Simulation.Workers = s.Workers
		}
		if s.Bet != 0 {
			config.Simulation.Bet = s.Bet
		}
		if s.StandOn != 0 {
			config.Simulation.StandOn = s.StandOn
		}
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.StartingTokens <= 0 {
		return fmt.Errorf("starting tokens must be positive")
	}

	if c.Game.DealerName == "" {
		return fmt.Errorf("dealer name is required")
	}

	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("simulation rounds must be positive")
	}

	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation workers must be positive")
	}

	if c.Simulation.Bet <= 0 {
		return fmt.Errorf("simulation bet must be positive")
	}

	if c.Simulation.StandOn < 2 || c.Simulation.StandOn > 21 {
		return fmt.Errorf("stand_on must be between 2 and 21, got %d", c.Simulation.StandOn)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	return nil
}

// ColorEnabled returns whether styled output is on
func (c *Config) ColorEnabled() bool {
	return c.UI.Color == nil || *c.UI.Color
}

// SetColor overrides the color setting
func (c *Config) SetColor(on bool) {
	c.UI.Color = &on
}

// LogLevel returns the configured level, falling back to warn
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return level
}
