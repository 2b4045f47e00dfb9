package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Tracker  TrackerConfig  `mapstructure:"tracker"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// S3Config points at the bucket that stores profile avatars.
// An empty bucket name disables avatar uploads.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// TrackerConfig controls how log entries are aggregated.
type TrackerConfig struct {
	// Timezone is the IANA zone used for day-of-week bucketing and "today".
	Timezone string `mapstructure:"timezone"`
	// GenderPolicy selects BMR/ideal-weight coefficients for genders other
	// than male and female: "female" or "average".
	GenderPolicy     string        `mapstructure:"gender_policy"`
	WaterGoalGlasses float64       `mapstructure:"water_goal_glasses"`
	RefreshInterval  time.Duration `mapstructure:"refresh_interval"`
}

// Location resolves Timezone, falling back to UTC when it is empty.
func (t TrackerConfig) Location() (*time.Location, error) {
	if t.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(t.Timezone)
}

// LoadConfig reads config.yaml from path, then applies environment
// overrides such as SERVER_ADDRESS or TRACKER_TIMEZONE.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "wellnest")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("tracker.timezone", "UTC")
	v.SetDefault("tracker.gender_policy", "female")
	v.SetDefault("tracker.water_goal_glasses", 8)
	v.SetDefault("tracker.refresh_interval", "30s")

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}
