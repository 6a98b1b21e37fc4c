package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config is read from the environment, optionally seeded from a .env file.
// Tags used:
//   - mapstructure: environment variable name
//   - default: value used when the variable is unset
type Config struct {
	HTTPPort        string        `mapstructure:"HTTP_PORT" default:"8080"`
	LogLevel        string        `mapstructure:"LOG_LEVEL" default:"info"`
	LogFormat       string        `mapstructure:"LOG_FORMAT" default:"text"`
	RateLimit       float64       `mapstructure:"RATE_LIMIT" default:"20"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Storage selects where parcel records are snapshotted: file or postgres.
	Storage     string `mapstructure:"STORAGE" default:"file"`
	RecordsPath string `mapstructure:"RECORDS_PATH" default:"data/parcels.txt"`

	DBHost     string `mapstructure:"DB_HOST" default:"localhost"`
	DBPort     string `mapstructure:"DB_PORT" default:"5432"`
	DBUser     string `mapstructure:"DB_USER" default:"postgres"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME" default:"parceltrack"`
	DBSslMode  string `mapstructure:"DB_SSLMODE" default:"disable"`

	// RedisURL enables the tracking cache when set.
	RedisURL string        `mapstructure:"REDIS_URL"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL" default:"10s"`

	// NetworkFile replaces the built-in network with a YAML definition.
	NetworkFile string `mapstructure:"NETWORK_FILE"`
	Hub         string `mapstructure:"HUB"`
	// Riders is a comma separated list of rider names.
	Riders     string `mapstructure:"RIDERS"`
	RandomSeed uint64 `mapstructure:"RANDOM_SEED"`

	TickSchedule     string `mapstructure:"TICK_SCHEDULE" default:"* * * * * *"`
	SnapshotSchedule string `mapstructure:"SNAPSHOT_SCHEDULE" default:"0 * * * * *"`

	StoreCapacity    int `mapstructure:"STORE_CAPACITY"`
	StoreMaxCapacity int `mapstructure:"STORE_MAX_CAPACITY"`
}

// LoadConfig reads dir/.env when present and then the environment. Variables
// already set in the environment win over the file.
func LoadConfig(dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	var config Config
	bindTags(v, reflect.TypeOf(config))

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks enumerated values and the settings each storage needs.
func (c Config) Validate() error {
	var errList []error

	switch c.Storage {
	case StorageFile:
		if strings.TrimSpace(c.RecordsPath) == "" {
			errList = append(errList, errors.New("RECORDS_PATH is required for file storage"))
		}
	case StoragePostgres:
		if strings.TrimSpace(c.DBHost) == "" || strings.TrimSpace(c.DBName) == "" {
			errList = append(errList, errors.New("DB_HOST and DB_NAME are required for postgres storage"))
		}
	default:
		errList = append(errList, fmt.Errorf("STORAGE must be %q or %q, got %q", StorageFile, StoragePostgres, c.Storage))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errList = append(errList, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if c.CacheTTL <= 0 {
		errList = append(errList, errors.New("CACHE_TTL must be positive"))
	}
	if c.StoreCapacity < 0 || c.StoreMaxCapacity < 0 {
		errList = append(errList, errors.New("store capacities must not be negative"))
	}

	return errors.Join(errList...)
}

// PostgresDSN builds the connection string for the gorm postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// RiderNames splits Riders, dropping blanks. Nil means the default roster.
func (c Config) RiderNames() []string {
	var names []string
	for _, n := range strings.Split(c.Riders, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// bindTags registers every mapstructure key with viper, plus its default.
// AutomaticEnv alone does not make Unmarshal see unset keys.
func bindTags(v *viper.Viper, t reflect.Type) {
	for i := range t.NumField() {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}
		_ = v.BindEnv(key)
		if def := field.Tag.Get("default"); def != "" {
			v.SetDefault(key, def)
		}
	}
}
