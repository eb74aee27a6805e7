package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds defaults the CLI falls back to when a flag is omitted,
// sourced from a config file, the environment, and .env/.env.local.
type Config struct {
	SchemaPath  string
	OutputPath  string
	DatabaseURL string
	Backend     string
}

// LoadConfig loads configuration from various sources.
func LoadConfig() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".dbschema")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "dbschema"))

	viper.SetEnvPrefix("DBSCHEMA")
	viper.AutomaticEnv()

	// DATABASE_URL is read without the DBSCHEMA_ prefix for consistency
	// with the convention every Postgres client tool already follows.
	viper.BindEnv("database_url", "DATABASE_URL")

	viper.SetDefault("schema_path", ".")
	viper.SetDefault("output_path", "")
	viper.SetDefault("backend", "postgres")

	_ = viper.ReadInConfig()

	if data, err := afero.ReadFile(AppFs, ".env"); err == nil {
		if envMap, err := godotenv.Unmarshal(string(data)); err == nil {
			for k, v := range envMap {
				os.Setenv(k, v)
			}
		}
	}

	if data, err := afero.ReadFile(AppFs, ".env.local"); err == nil {
		if envMap, err := godotenv.Unmarshal(string(data)); err == nil {
			for k, v := range envMap {
				os.Setenv(k, v)
			}
		}
	}

	return &Config{
		SchemaPath:  viper.GetString("schema_path"),
		OutputPath:  viper.GetString("output_path"),
		DatabaseURL: viper.GetString("database_url"),
		Backend:     viper.GetString("backend"),
	}, nil
}

// SaveConfig persists cfg's schema path, output path and backend to
// $HOME/.config/dbschema/.dbschema.yaml; DatabaseURL is not written.
func SaveConfig(cfg *Config) error {
	viper.Set("schema_path", cfg.SchemaPath)
	viper.Set("output_path", cfg.OutputPath)
	viper.Set("backend", cfg.Backend)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".config", "dbschema")
	if err := AppFs.MkdirAll(configPath, 0o755); err != nil {
		return err
	}

	configFile := filepath.Join(configPath, ".dbschema.yaml")
	return viper.WriteConfigAs(configFile)
}
