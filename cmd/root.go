package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "taskrr",
	Short: "Services-marketplace client for customers and providers",
	Long: `taskrr is the terminal client for the taskrr services marketplace.
Customers build carts and place orders; providers track incoming orders
through their lifecycle and receive push notifications.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./taskrr.yaml)")

	rootCmd.PersistentFlags().String("api-base-url", "", "Base URL of the marketplace API")
	rootCmd.PersistentFlags().String("store-path", defaultStorePath(), "Path of the local key-value store file")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "Consume the push feed from Kafka")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.PersistentFlags().Bool("webhook-enabled", false, "Accept push callbacks over local HTTP")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	viper.BindPFlag("api_base_url", rootCmd.PersistentFlags().Lookup("api-base-url"))
	viper.BindPFlag("store_path", rootCmd.PersistentFlags().Lookup("store-path"))
	viper.BindPFlag("kafka_enabled", rootCmd.PersistentFlags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", rootCmd.PersistentFlags().Lookup("kafka-broker-list"))
	viper.BindPFlag("webhook_enabled", rootCmd.PersistentFlags().Lookup("webhook-enabled"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// .env is optional; flags and taskrr.yaml take precedence via viper.
	_ = godotenv.Load()
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskrr-store.json"
	}
	return home + "/.taskrr/store.json"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
