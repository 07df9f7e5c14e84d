package config

// Strategy names for the media store. Exactly one is active per process.
const (
	MediaStrategyLocal = "local"
	MediaStrategyS3    = "s3"
)

type Config struct {
	Debug   bool    `mapstructure:"debug"`
	Server  Server  `mapstructure:"server"`
	Auth    Auth    `mapstructure:"auth"`
	Content Content `mapstructure:"content"`
	Media   Media   `mapstructure:"media"`
}

type Server struct {
	Address        string       `mapstructure:"address" validate:"required,hostname|ip"`
	Port           int          `mapstructure:"port" validate:"required,min=1,max=65535"`
	PublicUrl      string       `mapstructure:"public_url" validate:"required,url"`
	AllowedOrigins []string     `mapstructure:"allowed_origins" validate:"dive,url"`
	Limits         ServerLimits `mapstructure:"limits"`
}

type ServerLimits struct {
	MaxFileSize     int64 `mapstructure:"max_file_size" validate:"required"`
	MaxFiles        int   `mapstructure:"max_files" validate:"required,min=1"`
	MaxMultipartMem int64 `mapstructure:"max_multipart_mem" validate:"required"`
}

type Auth struct {
	JwtSecret         string `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTLMinutes   int    `mapstructure:"token_ttl_minutes" validate:"required,min=1"`
	AdminUsername     string `mapstructure:"admin_username" validate:"required"`
	AdminPasswordHash string `mapstructure:"admin_password_hash" validate:"required"`
}

type Content struct {
	Driver      string  `mapstructure:"driver" validate:"required,oneof=postgres mysql"`
	DSN         string  `mapstructure:"dsn" validate:"required"`
	TablePrefix *string `mapstructure:"table_prefix" validate:"omitempty,identifier"`
}

type Media struct {
	// Strategy is derived in Load from the presence of the three S3
	// credentials. It is never read from the config file directly.
	Strategy string              `mapstructure:"-" validate:"required,oneof=local s3"`
	Local    *LocalMediaStrategy `mapstructure:"local" validate:"required_if=Strategy local"`
	S3       *S3MediaStrategy    `mapstructure:"s3"`
}

type LocalMediaStrategy struct {
	UploadsDir string `mapstructure:"uploads_dir" validate:"required"`
	PublicPath string `mapstructure:"public_path" validate:"required"`
}

type S3MediaStrategy struct {
	AccessKeyId string `mapstructure:"access_key_id"`
	SecretKeyId string `mapstructure:"secret_key_id"`
	Bucket      string `mapstructure:"bucket"`
	Region      string `mapstructure:"region"`
	Endpoint    string `mapstructure:"endpoint"`
	PublicUrl   string `mapstructure:"public_url"`
}

// Configured reports whether all three required credentials are present.
// Partial credentials are treated the same as none: the local strategy wins.
func (s *S3MediaStrategy) Configured() bool {
	if s == nil {
		return false
	}

	return s.AccessKeyId != "" && s.SecretKeyId != "" && s.Bucket != ""
}
