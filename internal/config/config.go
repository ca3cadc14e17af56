// Package config loads the cabinet's HCL configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/moleattack/internal/link"
	"github.com/lox/moleattack/internal/player"
)

// Config is the complete process configuration. Game timing and scoring are
// fixed and not configurable.
type Config struct {
	LogLevel string           `hcl:"log_level,optional"`
	LogFile  string           `hcl:"log_file,optional"`
	Seed     *int64           `hcl:"seed,optional"`
	Display  *DisplaySettings `hcl:"display,block"`
	Players  []PlayerConfig   `hcl:"player,block"`
}

// DisplaySettings says how the controller reaches the display, and where the
// display emulator listens.
type DisplaySettings struct {
	Transport     string `hcl:"transport,optional"`
	URL           string `hcl:"url,optional"`
	Device        string `hcl:"device,optional"`
	Address       string `hcl:"address,optional"`
	Listen        string `hcl:"listen,optional"`
	HighScoreFile string `hcl:"high_score_file,optional"`
}

// PlayerConfig wires one player to board channels.
type PlayerConfig struct {
	Name       string `hcl:"name,label"`
	Input      int    `hcl:"input"`
	Lights     []int  `hcl:"lights"`
	Diagnostic bool   `hcl:"diagnostic,optional"`
}

// DefaultPlayers matches the wiring of the physical cabinet.
func DefaultPlayers() [2]PlayerConfig {
	return [2]PlayerConfig{
		{Name: "p1", Input: 14, Lights: []int{2, 3, 4, 5, 6}},
		{Name: "p2", Input: 15, Lights: []int{7, 8, 9, 10, 11}},
	}
}

const (
	defaultLogLevel = "info"
	defaultLogFile  = "moleattack.log"
	defaultURL      = "ws://localhost:8080/ws"
	defaultListen   = ":8080"
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename. A missing file yields DefaultConfig.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	diags = gohcl.DecodeBody(file.Body, nil, &c)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	if c.Display == nil {
		c.Display = &DisplaySettings{}
	}
	if c.Display.Transport == "" {
		c.Display.Transport = link.KindWebSocket
	}
	if c.Display.URL == "" {
		c.Display.URL = defaultURL
	}
	if c.Display.Listen == "" {
		c.Display.Listen = defaultListen
	}
	if len(c.Players) == 0 {
		defaults := DefaultPlayers()
		c.Players = defaults[:]
	}
}

// Validate checks the player wiring, transport and log level.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	switch c.Display.Transport {
	case link.KindWebSocket, link.KindSerial, link.KindTCP:
	default:
		return fmt.Errorf("invalid display transport %q", c.Display.Transport)
	}
	if c.Display.Target() == "" {
		return fmt.Errorf("display transport %s needs a target", c.Display.Transport)
	}

	if len(c.Players) != 2 {
		return fmt.Errorf("need exactly 2 players, got %d", len(c.Players))
	}

	used := make(map[int]string)
	claim := func(ch int, what string) error {
		if ch < 0 {
			return fmt.Errorf("%s: negative channel %d", what, ch)
		}
		if prev, ok := used[ch]; ok {
			return fmt.Errorf("%s: channel %d already used by %s", what, ch, prev)
		}
		used[ch] = what
		return nil
	}

	names := make(map[string]bool)
	for _, p := range c.Players {
		if names[p.Name] {
			return fmt.Errorf("duplicate player %q", p.Name)
		}
		names[p.Name] = true

		if len(p.Lights) != player.NumLights {
			return fmt.Errorf("player %s: need %d lights, got %d", p.Name, player.NumLights, len(p.Lights))
		}
		if err := claim(p.Input, "player "+p.Name+" input"); err != nil {
			return err
		}
		for _, ch := range p.Lights {
			if err := claim(ch, "player "+p.Name+" light"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Target returns the address for the configured transport.
func (d *DisplaySettings) Target() string {
	switch d.Transport {
	case link.KindSerial:
		return d.Device
	case link.KindTCP:
		return d.Address
	default:
		return d.URL
	}
}

// PlayerPair returns copies of the two player blocks.
func (c *Config) PlayerPair() [2]PlayerConfig {
	var pair [2]PlayerConfig
	for i := 0; i < len(pair) && i < len(c.Players); i++ {
		pair[i] = c.Players[i]
		pair[i].Lights = append([]int(nil), c.Players[i].Lights...)
	}
	return pair
}
