package config

import "github.com/jmalhotra/rekindle/internal/scoring"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Goals    GoalsConfig    `toml:"goals"`
	Weights  *WeightsConfig `toml:"weights,omitempty"`
	Logging  LoggingConfig  `toml:"logging"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// GoalsConfig is the user's career targeting profile. Empty goals mean the
// user has not set targets yet; relevance scoring then returns its neutral
// default.
type GoalsConfig struct {
	TargetIndustries   []string `toml:"target_industries"`
	DreamRoles         []string `toml:"dream_roles"`
	PreferredLocations []string `toml:"preferred_locations"`
	WishlistCompanies  []string `toml:"wishlist_companies"`
	TargetSkills       []string `toml:"target_skills"`
	WeeklyCapacity     int      `toml:"weekly_capacity"`
}

// IsSet reports whether the user has configured any targeting criteria.
func (g GoalsConfig) IsSet() bool {
	return len(g.TargetIndustries) > 0 || len(g.DreamRoles) > 0 ||
		len(g.PreferredLocations) > 0 || len(g.WishlistCompanies) > 0 ||
		len(g.TargetSkills) > 0
}

// GoalProfile converts the config section to the scorer's input, or nil when
// no goals are set.
func (g GoalsConfig) GoalProfile() *scoring.GoalProfile {
	if !g.IsSet() {
		return nil
	}
	return &scoring.GoalProfile{
		TargetIndustries:   g.TargetIndustries,
		DreamRoles:         g.DreamRoles,
		PreferredLocations: g.PreferredLocations,
		WishlistCompanies:  g.WishlistCompanies,
		TargetSkills:       g.TargetSkills,
		WeeklyCapacity:     g.WeeklyCapacity,
	}
}

// WeightsConfig is an optional per-factor relevance weighting override
type WeightsConfig struct {
	Industry float64 `toml:"industry"`
	Role     float64 `toml:"role"`
	Location float64 `toml:"location"`
	Company  float64 `toml:"company"`
	Skills   float64 `toml:"skills"`
}

// RelevanceWeights converts the override to the scorer's weights, or nil when
// the section is absent so the scorer falls back to its defaults.
func (c *Config) RelevanceWeights() *scoring.Weights {
	if c.Weights == nil {
		return nil
	}
	return &scoring.Weights{
		Industry: c.Weights.Industry,
		Role:     c.Weights.Role,
		Location: c.Weights.Location,
		Company:  c.Weights.Company,
		Skills:   c.Weights.Skills,
	}
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/rekindle/rekindle.db",
		},
		Goals: GoalsConfig{
			WeeklyCapacity: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
