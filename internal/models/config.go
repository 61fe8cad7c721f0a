package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RetryInterval  time.Duration `mapstructure:"retry_interval"`
	MaxRetries     int           `mapstructure:"max_retries"`

	StorePath string        `mapstructure:"store_path"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`

	PageSize     int `mapstructure:"page_size"`
	MaxScanPages int `mapstructure:"max_scan_pages"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`
	KafkaGroupID    string `mapstructure:"kafka_group_id"`

	WebhookEnabled bool   `mapstructure:"webhook_enabled"`
	WebhookAddr    string `mapstructure:"webhook_addr"`

	LogLevel string `mapstructure:"log_level"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("taskrr")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("taskrr")
	viper.AutomaticEnv()

	viper.SetDefault("request_timeout", "15s")
	viper.SetDefault("retry_interval", "500ms")
	viper.SetDefault("max_retries", 2)
	viper.SetDefault("cache_ttl", "5m")
	viper.SetDefault("page_size", 50)
	viper.SetDefault("max_scan_pages", 5)
	viper.SetDefault("kafka_topic", "taskrr.push")
	viper.SetDefault("kafka_group_id", "taskrr-client")
	viper.SetDefault("webhook_addr", "127.0.0.1:8977")
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if config.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url must be set")
	}

	return &config, nil
}
