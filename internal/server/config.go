package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/finnb0y/virtualchips/internal/state"
)

// Config is the complete server configuration, loaded from an HCL file.
type Config struct {
	Server     ServerSettings   `hcl:"server,block"`
	Tournament TournamentConfig `hcl:"tournament,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address      string `hcl:"address,optional"`
	Port         int    `hcl:"port,optional"`
	LogLevel     string `hcl:"log_level,optional"`
	SnapshotPath string `hcl:"snapshot_path,optional"`
	RedisAddr    string `hcl:"redis_addr,optional"`
}

// TournamentConfig defines the tournament the server hosts.
type TournamentConfig struct {
	Name          string             `hcl:"name,label"`
	StartingStack int                `hcl:"starting_stack"`
	MaxRebuys     int                `hcl:"max_rebuys,optional"`
	RebuyChips    int                `hcl:"rebuy_chips,optional"`
	AddonChips    int                `hcl:"addon_chips,optional"`
	BuyInCost     int                `hcl:"buy_in_cost,optional"`
	RebuyCost     int                `hcl:"rebuy_cost,optional"`
	Levels        []state.BlindLevel `hcl:"level,block"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:      "localhost",
			Port:         8080,
			LogLevel:     "info",
			SnapshotPath: "virtualchips-state.json",
		},
		Tournament: TournamentConfig{
			Name:          "main",
			StartingStack: 10000,
			Levels: []state.BlindLevel{
				{SmallBlind: 25, BigBlind: 50, DurationMinutes: 20},
				{SmallBlind: 50, BigBlind: 100, DurationMinutes: 20},
				{SmallBlind: 100, BigBlind: 200, DurationMinutes: 20},
			},
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.SnapshotPath == "" && config.Server.RedisAddr == "" {
		config.Server.SnapshotPath = "virtualchips-state.json"
	}

	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Tournament.StartingStack <= 0 {
		return fmt.Errorf("tournament %s: starting stack must be positive", c.Tournament.Name)
	}
	if len(c.Tournament.Levels) == 0 {
		return fmt.Errorf("tournament %s: at least one blind level must be configured", c.Tournament.Name)
	}
	for i, level := range c.Tournament.Levels {
		if level.SmallBlind <= 0 {
			return fmt.Errorf("tournament %s level %d: small blind must be positive", c.Tournament.Name, i+1)
		}
		if level.BigBlind <= level.SmallBlind {
			return fmt.Errorf("tournament %s level %d: big blind must be greater than small blind", c.Tournament.Name, i+1)
		}
		if level.Ante < 0 {
			return fmt.Errorf("tournament %s level %d: ante cannot be negative", c.Tournament.Name, i+1)
		}
	}
	if c.Tournament.MaxRebuys < 0 {
		return fmt.Errorf("tournament %s: max rebuys cannot be negative", c.Tournament.Name)
	}
	return nil
}

// ListenAddress returns the full listen address.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// NewTournament builds the tournament aggregate root from the configuration.
func (c *Config) NewTournament(id string) *state.Tournament {
	return &state.Tournament{
		ID:   id,
		Name: c.Tournament.Name,
		Config: state.TournamentConfig{
			StartingStack:  c.Tournament.StartingStack,
			MaxRebuys:      c.Tournament.MaxRebuys,
			RebuyChips:     c.Tournament.RebuyChips,
			AddonChips:     c.Tournament.AddonChips,
			BuyInCost:      c.Tournament.BuyInCost,
			RebuyCost:      c.Tournament.RebuyCost,
			BlindStructure: c.Tournament.Levels,
		},
	}
}
