package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Parse reads .env when present, then the YAML file named by CONFIG_PATH if
// set, and finally the environment, which wins over the file.
func Parse() (Config, error) {
	godotenv.Load()

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse cfg file %s: %v", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse cfg: %v", err)
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("parse cfg: unknown db driver %q", cfg.Database.Driver)
	}

	return cfg, nil
}

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}
