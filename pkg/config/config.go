package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"lintang/gcjwgs/pkg/geo"

	"github.com/joho/godotenv"
)

// Config is shared by cmd/server and cmd/batch. Precedence: flags, then environment,
// then a .env file, then the defaults below.
type Config struct {
	ListenAddr    string
	DefaultRegion string
	H3Resolution  int
	LogLevel      string
	LogJSON       bool
	BatchWorkers  int
}

func defaults() Config {
	return Config{
		ListenAddr:    ":5000",
		DefaultRegion: "CN",
		H3Resolution:  9,
		LogLevel:      "info",
		LogJSON:       false,
		BatchWorkers:  4,
	}
}

// FromEnv reads GCJWGS_* variables over the defaults.
func FromEnv() (Config, error) {
	c := defaults()
	if v, ok := os.LookupEnv("GCJWGS_LISTEN_ADDR"); ok {
		c.ListenAddr = v
	}
	if v, ok := os.LookupEnv("GCJWGS_DEFAULT_REGION"); ok {
		c.DefaultRegion = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("GCJWGS_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	var err error
	if c.H3Resolution, err = envInt("GCJWGS_H3_RESOLUTION", c.H3Resolution); err != nil {
		return Config{}, err
	}
	if c.BatchWorkers, err = envInt("GCJWGS_BATCH_WORKERS", c.BatchWorkers); err != nil {
		return Config{}, err
	}
	if v, ok := os.LookupEnv("GCJWGS_LOG_JSON"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("GCJWGS_LOG_JSON: %w", err)
		}
		c.LogJSON = b
	}
	return c, nil
}

func envInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.ListenAddr, "listenaddr", c.ListenAddr, "server listen address")
	flags.StringVar(&c.DefaultRegion, "region", c.DefaultRegion, "region code used when a request has none, CN enables the gcj-02 correction")
	flags.IntVar(&c.H3Resolution, "h3res", c.H3Resolution, "h3 resolution of the cell returned with every conversion")
	flags.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "log level: debug, info, warn or error")
	flags.BoolVar(&c.LogJSON, "logjson", c.LogJSON, "log in json")
	flags.IntVar(&c.BatchWorkers, "workers", c.BatchWorkers, "number of batch conversion workers")
}

func (c Config) Validate() error {
	if c.H3Resolution < geo.MinH3Resolution || c.H3Resolution > geo.MaxH3Resolution {
		return fmt.Errorf("h3 resolution must be between %d and %d, got %d", geo.MinH3Resolution, geo.MaxH3Resolution, c.H3Resolution)
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.BatchWorkers)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Load reads envFile (a missing file is fine), the environment and then args parsed
// with flags. Callers may register their own flags before calling Load.
func Load(flags *flag.FlagSet, args []string, envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	c, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	c.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
