package paysync

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is built once at startup and passed explicitly, nothing in the
// library reads the environment on its own.
type Config struct {
	DBPath      string `env:"DB_PATH" envDefault:"company.db"`
	LogFilePath string `env:"LOG_FILE_PATH" envDefault:"application.log"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"error"`
}

// LoadConfig loads any of the given dotenv files that exist, then parses the
// environment into a Config.
func LoadConfig(envFiles ...string) (Config, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Logger builds the structured log sink for a run: a file appender at the
// configured level. Validation detail goes here while the terminal only
// sees generic messages.
func (c Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(c.LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(file)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	return log, nil
}
