package certify

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"randcert-go/pkg/congruential"
)

// GeneratorSettings are the recurrence parameters applied to every count.
// A zero PoolSize derives the pool from the count.
type GeneratorSettings struct {
	Multiplier  uint64 `mapstructure:"multiplier" json:"multiplier"`
	Increment   uint64 `mapstructure:"increment" json:"increment"`
	Modulus     uint64 `mapstructure:"modulus" json:"modulus"`
	PoolSize    int    `mapstructure:"pool_size" json:"pool_size"`
	InitialSeed int    `mapstructure:"initial_seed" json:"initial_seed"`
}

// For returns the generator configuration for count elements.
func (g GeneratorSettings) For(count int) congruential.Config {
	cfg := congruential.NewConfig(count)
	cfg.Multiplier = g.Multiplier
	cfg.Increment = g.Increment
	cfg.Modulus = g.Modulus
	cfg.InitialSeed = g.InitialSeed
	if g.PoolSize > 0 {
		cfg.PoolSize = g.PoolSize
	}
	return cfg
}

type Config struct {
	Generator             GeneratorSettings `mapstructure:"generator"`
	StorePath             string            `mapstructure:"store_path"`
	StoreCompression      string            `mapstructure:"store_compression"`
	StoreCompressionLevel int               `mapstructure:"store_compression_level"`
	StorePassphrase       string            `mapstructure:"store_passphrase"`
	LogDB                 string            `mapstructure:"log_db"`
	ConsoleLog            bool              `mapstructure:"console_log"`
	APIListenAddr         string            `mapstructure:"api_listen_address"`
}

func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorSettings{
			Multiplier:  congruential.DefaultMultiplier,
			Increment:   congruential.DefaultIncrement,
			Modulus:     congruential.DefaultModulus,
			InitialSeed: congruential.DefaultInitialSeed,
		},
		StorePath:        "reports.db",
		StoreCompression: "zstd",
		LogDB:            "logs.db",
		APIListenAddr:    ":7780",
	}
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("generator.multiplier", cfg.Generator.Multiplier)
	v.SetDefault("generator.increment", cfg.Generator.Increment)
	v.SetDefault("generator.modulus", cfg.Generator.Modulus)
	v.SetDefault("generator.pool_size", cfg.Generator.PoolSize)
	v.SetDefault("generator.initial_seed", cfg.Generator.InitialSeed)
	v.SetDefault("store_path", cfg.StorePath)
	v.SetDefault("store_compression", cfg.StoreCompression)
	v.SetDefault("store_compression_level", cfg.StoreCompressionLevel)
	v.SetDefault("store_passphrase", cfg.StorePassphrase)
	v.SetDefault("log_db", cfg.LogDB)
	v.SetDefault("console_log", cfg.ConsoleLog)
	v.SetDefault("api_listen_address", cfg.APIListenAddr)
}

// LoadConfig reads defaults, then the config file, then RANDCERT_*
// environment variables (RANDCERT_GENERATOR_MODULUS for generator.modulus).
// An empty file searches randcert.yaml in the usual places and tolerates its
// absence; an explicit file must exist.
func LoadConfig(file string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("randcert")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/randcert/")
		v.AddConfigPath("$HOME/.randcert")
	}
	v.SetEnvPrefix("RANDCERT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
