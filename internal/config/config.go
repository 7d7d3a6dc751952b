// Package config holds every tunable the valuation engine exposes. Components
// never read process-wide state; a Config value is threaded into each call.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Analysis controls comp selection and valuation.
type Analysis struct {
	RadiusMiles         float64 `yaml:"radius_miles"`
	MonthsBack          int     `yaml:"months_back"`
	MinComps            int     `yaml:"min_comps"`
	MaxComps            int     `yaml:"max_comps"` // 0 = unlimited
	OutlierStdDev       float64 `yaml:"outlier_std_dev"`
	SpreadFactor        float64 `yaml:"spread_factor"`
	HighConfidenceComps int     `yaml:"high_confidence_comps"`
}

// Similarity weights the absolute attribute differences in the comp score.
type Similarity struct {
	SquareFootage float64 `yaml:"square_footage"`
	Bedroom       float64 `yaml:"bedroom"`
	Bathroom      float64 `yaml:"bathroom"`
	Condition     float64 `yaml:"condition"`
}

// Renovation is the line-item unit-cost catalog. CostPerSqft is keyed by cost
// category, ConditionMultipliers by the provider's condition tag.
type Renovation struct {
	ContingencyRate      float64            `yaml:"contingency_rate"`
	CostPerSqft          map[string]float64 `yaml:"cost_per_sqft"`
	ConditionMultipliers map[string]float64 `yaml:"condition_multipliers"`
	DefaultMultiplier    float64            `yaml:"default_multiplier"`
	PermitFee            float64            `yaml:"permit_fee"`
	HoldingCost          float64            `yaml:"holding_cost"`
}

// Risk weights the three risk-score components. Weights should sum to 100;
// each component is normalized to [0,1] before weighting.
type Risk struct {
	PriceRatio float64 `yaml:"price_ratio"`
	Confidence float64 `yaml:"confidence"`
	SampleSize float64 `yaml:"sample_size"`
}

// Database holds the Oracle comp-source connection settings. Credentials come
// from the environment (.env overlay), not the YAML file.
type Database struct {
	Host           string `yaml:"host"`
	Port           string `yaml:"port"`
	Service        string `yaml:"service"`
	Username       string `yaml:"-"`
	Password       string `yaml:"-"`
	WalletLocation string `yaml:"-"`
	SalesTable     string `yaml:"sales_table"`
}

// Cache configures the Redis result cache. Disabled when Addr is empty.
type Cache struct {
	Addr     string `yaml:"addr"`
	TTLHours int    `yaml:"ttl_hours"`
}

// TTL returns the configured entry lifetime.
func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// ZoningLayer points at one shapefile layer. Projection is empty for WGS-84
// lon/lat shapefiles or "epsg:2276" for Texas North-Central state-plane feet.
type ZoningLayer struct {
	Path       string `yaml:"path"`
	Projection string `yaml:"projection"`
}

// Config is the full configuration surface.
type Config struct {
	Analysis   Analysis      `yaml:"analysis"`
	Similarity Similarity    `yaml:"similarity"`
	Renovation Renovation    `yaml:"renovation"`
	Risk       Risk          `yaml:"risk"`
	Database   Database      `yaml:"database"`
	Cache      Cache         `yaml:"cache"`
	Zoning     []ZoningLayer `yaml:"zoning"`
}

// Default returns the compiled-in configuration. The renovation unit costs
// and condition multipliers mirror a mid-range single-family rehab catalog.
func Default() Config {
	return Config{
		Analysis: Analysis{
			RadiusMiles:         2.0,
			MonthsBack:          6,
			MinComps:            3,
			MaxComps:            0,
			OutlierStdDev:       2.0,
			SpreadFactor:        1.0,
			HighConfidenceComps: 5,
		},
		Similarity: Similarity{
			SquareFootage: 1.0,
			Bedroom:       0.35,
			Bathroom:      0.25,
			Condition:     0.5,
		},
		Renovation: Renovation{
			ContingencyRate: 0.15,
			CostPerSqft: map[string]float64{
				"structural": 18,
				"cosmetic":   12,
				"systems":    9,
			},
			ConditionMultipliers: map[string]float64{
				"excellent": 0.2,
				"good":      0.5,
				"fair":      1.0,
				"poor":      1.5,
			},
			DefaultMultiplier: 1.0,
			PermitFee:         2500,
			HoldingCost:       5000,
		},
		Risk: Risk{
			PriceRatio: 50,
			Confidence: 30,
			SampleSize: 20,
		},
		Database: Database{
			Port:       "1521",
			Service:    "XE",
			SalesTable: "PROPERTY_SALES",
		},
		Cache: Cache{
			TTLHours: 24,
		},
	}
}

// Load reads the YAML file at path over the defaults, then overlays
// environment variables (including a .env file if one exists in the working
// directory). An empty path skips the file and returns defaults + env.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	loadEnvFile(".env")
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Database.Host, "DB_HOST")
	set(&c.Database.Port, "DB_PORT")
	set(&c.Database.Service, "DB_SERVICE")
	set(&c.Database.Username, "DB_USERNAME")
	set(&c.Database.Password, "DB_PASSWORD")
	set(&c.Database.WalletLocation, "DB_WALLET_LOCATION")
	set(&c.Cache.Addr, "REDIS_ADDR")
}

// loadEnvFile reads KEY=VALUE pairs from a .env file into the environment,
// skipping keys that are already set.
func loadEnvFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err // file doesn't exist, which is okay
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}
