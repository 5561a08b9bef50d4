package config

import (
	"log"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Init loads config.yaml (optional) and then applies environment overrides.
// Environment variables win so deployments can keep the YAML generic.
func Init() {
	once.Do(func() {
		cfg := defaultConfig()

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				log.Fatalf("read config file: %v", err)
			}
		} else if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("unmarshal config file: %v", err)
		}

		if err := envconfig.Process("CC", cfg); err != nil {
			log.Fatalf("process env config: %v", err)
		}

		instance = cfg
	})
}

func defaultConfig() *Config {
	return &Config{
		Host:   "0.0.0.0",
		Port:   "8080",
		Prefix: "api",
		Mode:   ModeDebug,
		JWT: JWT{
			AccessExpire: 72 * 3600,
		},
		Redis: Redis{
			CacheTTLSeconds: 300,
		},
		Gemini: Gemini{
			Endpoint:   "https://generativelanguage.googleapis.com/v1beta",
			FlashModel: "gemini-2.5-flash",
			ProModel:   "gemini-2.5-pro",
		},
		Log: Log{
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
		},
		OTel: OTel{
			ServiceName: "campus-connect",
		},
	}
}

// Get returns the loaded config. Init must run first.
func Get() *Config {
	if instance == nil {
		Init()
	}
	return instance
}
