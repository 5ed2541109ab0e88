// Package config loads session settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-knockout/internal/bot"
	"github.com/lox/holdem-knockout/internal/game"
	"github.com/lox/holdem-knockout/internal/randutil"
)

// Agent kinds a player block may name
const (
	AgentHuman  = "human"
	AgentScript = "script"
)

// Config represents the complete session configuration
type Config struct {
	Session *SessionSettings `hcl:"session,block"`
	Players []PlayerConfig   `hcl:"player,block"`
	Log     *LogSettings     `hcl:"log,block"`
	Display *DisplaySettings `hcl:"display,block"`
	History *HistorySettings `hcl:"history,block"`
}

// SessionSettings contains the rules of the game
type SessionSettings struct {
	StartingChips int   `hcl:"starting_chips,optional"`
	Seed          int64 `hcl:"seed,optional"`
	MaxHands      int   `hcl:"max_hands,optional"`
	MaxRetries    int   `hcl:"max_retries,optional"`
}

// PlayerConfig seats one player. Players are seated in file order.
type PlayerConfig struct {
	Name   string `hcl:"name,label"`
	Agent  string `hcl:"agent,optional"`
	Script string `hcl:"script,optional"`
}

// LogSettings contains logging configuration
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// DisplaySettings contains console presentation settings
type DisplaySettings struct {
	Pause       string `hcl:"pause,optional"`
	ClearScreen *bool  `hcl:"clear_screen,optional"`
}

// HistorySettings controls hand history files. An empty dir disables them.
type HistorySettings struct {
	Dir string `hcl:"dir,optional"`
}

// Default returns the configuration used when no file is present: one human
// against a calling bot
func Default() *Config {
	cfg := &Config{
		Players: []PlayerConfig{
			{Name: "Player 1", Agent: AgentHuman},
			{Name: "Player 2", Agent: "call"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from an HCL file, returning defaults when the
// file does not exist
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in missing values
func (c *Config) applyDefaults() {
	if c.Session == nil {
		c.Session = &SessionSettings{}
	}
	if c.Session.StartingChips == 0 {
		c.Session.StartingChips = game.DefaultStartingChips
	}
	for i := range c.Players {
		if c.Players[i].Agent == "" {
			c.Players[i].Agent = AgentHuman
		}
		c.Players[i].Agent = strings.ToLower(c.Players[i].Agent)
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "holdem.log"
	}
	if c.Display == nil {
		c.Display = &DisplaySettings{}
	}
	if c.Display.Pause == "" {
		c.Display.Pause = "1s"
	}
	if c.Display.ClearScreen == nil {
		on := true
		c.Display.ClearScreen = &on
	}
	if c.History == nil {
		c.History = &HistorySettings{}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.SessionConfig().Validate(); err != nil {
		return err
	}

	known := append([]string{AgentHuman, AgentScript}, bot.Kinds...)
	for _, p := range c.Players {
		if !slices.Contains(known, p.Agent) {
			return fmt.Errorf("%w: player %q has unknown agent %q (want one of %s)",
				game.ErrInvalidConfiguration, p.Name, p.Agent, strings.Join(known, ", "))
		}
		if p.Agent == AgentScript {
			if _, err := bot.ParseScript(p.Script); err != nil {
				return fmt.Errorf("%w: player %q: %v", game.ErrInvalidConfiguration, p.Name, err)
			}
		} else if p.Script != "" {
			return fmt.Errorf("%w: player %q sets a script but agent is %q", game.ErrInvalidConfiguration, p.Name, p.Agent)
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", game.ErrInvalidConfiguration, err)
	}
	if d, err := time.ParseDuration(c.Display.Pause); err != nil || d < 0 {
		return fmt.Errorf("%w: invalid pause %q", game.ErrInvalidConfiguration, c.Display.Pause)
	}
	return nil
}

// SessionConfig converts the file into the engine's session configuration
func (c *Config) SessionConfig() game.SessionConfig {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return game.SessionConfig{
		PlayerNames:   names,
		StartingChips: c.Session.StartingChips,
		Seed:          c.Session.Seed,
		MaxHands:      c.Session.MaxHands,
		MaxRetries:    c.Session.MaxRetries,
	}
}

// LogLevel returns the configured log level, or info if it does not parse
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// PauseDuration returns the delay between phases
func (c *Config) PauseDuration() time.Duration {
	d, _ := time.ParseDuration(c.Display.Pause)
	return d
}

// ClearScreen reports whether the console is wiped between hands
func (c *Config) ClearScreen() bool {
	return c.Display.ClearScreen == nil || *c.Display.ClearScreen
}

// HasHumans reports whether any seat needs terminal input
func (c *Config) HasHumans() bool {
	for _, p := range c.Players {
		if p.Agent == AgentHuman {
			return true
		}
	}
	return false
}

// Agents builds the agent for every player. human is called for seats
// played from the terminal. Random bots draw from seed so a session can be
// replayed.
func (c *Config) Agents(seed int64, human func(name string) game.Agent, logger *log.Logger) (map[string]game.Agent, error) {
	agents := make(map[string]game.Agent, len(c.Players))
	for i, p := range c.Players {
		switch p.Agent {
		case AgentHuman:
			agents[p.Name] = human(p.Name)
		case AgentScript:
			script, err := bot.ParseScript(p.Script)
			if err != nil {
				return nil, fmt.Errorf("player %q: %w", p.Name, err)
			}
			agents[p.Name] = bot.NewScriptedBot(script...).WithFallback(bot.NewCallBot(logger))
		default:
			agent, err := bot.New(p.Agent, randutil.Derive(seed, i), logger)
			if err != nil {
				return nil, fmt.Errorf("player %q: %w", p.Name, err)
			}
			agents[p.Name] = agent
		}
	}
	return agents, nil
}
