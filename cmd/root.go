package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talent-scout"
)

type Config struct {
	Source   *SourceConfig `mapstructure:"source"`
	Search   *SearchConfig `mapstructure:"search"`
	AI       *AIConfig     `mapstructure:"ai"`
	PageSize int           `mapstructure:"page-size"`
}

type SourceConfig struct {
	File  string       `mapstructure:"file"`
	Mongo *MongoConfig `mapstructure:"mongo"`
}

type MongoConfig struct {
	URIFile    string `mapstructure:"uri-file"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// SearchConfig holds the manual filter fields. Flags override these.
type SearchConfig struct {
	JobTitle      string   `mapstructure:"job-title"`
	Education     string   `mapstructure:"education"`
	Location      string   `mapstructure:"location"`
	Skills        []string `mapstructure:"skills"`
	MinExperience *float64 `mapstructure:"min-experience"`
	MaxExperience *float64 `mapstructure:"max-experience"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-scout is a simple cli for searching a candidate pool with fuzzy filters and job-description queries",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("mongo-uri-file", "MONGO_URI_FILE"); err != nil {
		log.Fatalf("binding MONGO_URI_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("gemini-api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for search command now. If there is no config, we can skip initialization
	if searchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
