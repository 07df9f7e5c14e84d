package config

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterValidation("identifier", ValidateIdentifier)

	if err := validate.Struct(c); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the YAML config file, applies MECHTRON_* environment
// overrides, resolves the media strategy, and validates the result.
// The strategy decision is taken exactly once here; nothing re-reads the
// environment per request.
func LoadConfig(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	applyDefaults(v)
	bindEnvironment(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Media.Strategy = MediaStrategyLocal
	if cfg.Media.S3.Configured() {
		cfg.Media.Strategy = MediaStrategyS3
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.limits.max_file_size", 10<<20)
	v.SetDefault("server.limits.max_files", 10)
	v.SetDefault("server.limits.max_multipart_mem", 32<<20)
	v.SetDefault("auth.token_ttl_minutes", 720)
	v.SetDefault("media.local.uploads_dir", "uploads")
	v.SetDefault("media.local.public_path", "/uploads")
}

func bindEnvironment(v *viper.Viper) {
	v.SetEnvPrefix("MECHTRON")

	// Credentials and secrets come from the environment in deployments; the
	// yaml file only carries the non-sensitive settings there.
	for key, env := range map[string]string{
		"auth.jwt_secret":          "MECHTRON_JWT_SECRET",
		"auth.admin_username":      "MECHTRON_ADMIN_USERNAME",
		"auth.admin_password_hash": "MECHTRON_ADMIN_PASSWORD_HASH",
		"content.dsn":              "MECHTRON_CONTENT_DSN",
		"media.s3.access_key_id":   "MECHTRON_S3_ACCESS_KEY_ID",
		"media.s3.secret_key_id":   "MECHTRON_S3_SECRET_KEY_ID",
		"media.s3.bucket":          "MECHTRON_S3_BUCKET",
		"media.s3.region":          "MECHTRON_S3_REGION",
		"media.s3.endpoint":        "MECHTRON_S3_ENDPOINT",
		"media.s3.public_url":      "MECHTRON_S3_PUBLIC_URL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			log.Printf("bind env %s: %v", env, err)
		}
	}
}
