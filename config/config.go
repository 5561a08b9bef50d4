package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host   string `envconfig:"HOST"`
	Port   string `envconfig:"PORT"`
	Domain string `envconfig:"DOMAIN"`
	Prefix string `envconfig:"PREFIX"`
	Mode   Mode   `envconfig:"MODE"`
	Mysql  Mysql
	Redis  Redis
	JWT    JWT
	Log    Log `mapstructure:"Log"`
	Gemini Gemini
	S3     S3
	Sentry Sentry
	OTel   OTel
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type Redis struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// CacheTTLSeconds controls how long analytics responses stay cached.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds" envconfig:"CACHE_TTL_SECONDS"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"`
}

type Gemini struct {
	APIKey     string `mapstructure:"api_key" envconfig:"API_KEY"`
	Endpoint   string `mapstructure:"endpoint"`
	FlashModel string `mapstructure:"flash_model" envconfig:"FLASH_MODEL"`
	ProModel   string `mapstructure:"pro_model" envconfig:"PRO_MODEL"`
}

type S3 struct {
	Endpoint        string `mapstructure:"endpoint"`
	BaseURL         string `mapstructure:"base_url"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_key"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `mapstructure:"path_style"`
}

type Sentry struct {
	Dsn         string  `envconfig:"DSN"`
	Environment string  `envconfig:"ENVIRONMENT"`
	SampleRate  float64 `mapstructure:"sample_rate" envconfig:"SAMPLE_RATE"`
	Tracing     SentryTracing
}

type SentryTracing struct {
	RedisSlowThresholdMs int `mapstructure:"redis_slow_threshold_ms" envconfig:"REDIS_SLOW_THRESHOLD_MS"`
	HTTPSlowThresholdMs  int `mapstructure:"http_slow_threshold_ms" envconfig:"HTTP_SLOW_THRESHOLD_MS"`
}

type OTel struct {
	Enable      bool   `envconfig:"ENABLE"`
	ServiceName string `mapstructure:"service_name" envconfig:"SERVICE_NAME"`
	AgentHost   string `mapstructure:"agent_host" envconfig:"AGENT_HOST"`
	AgentPort   string `mapstructure:"agent_port" envconfig:"AGENT_PORT"`
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"`
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`
}
