package config

import "time"

type Config struct {
	App      AppConfig      `yaml:"app" env-prefix:"APP_"`
	HTTP     HTTPConfig     `yaml:"http" env-prefix:"HTTP_"`
	GRPC     GRPCConfig     `yaml:"grpc" env-prefix:"GRPC_"`
	Database DatabaseConfig `yaml:"db" env-prefix:"DB_"`
	Web      WebConfig      `yaml:"web" env-prefix:"WEB_"`
}

type AppConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Pretty    bool   `yaml:"pretty" env:"PRETTY" env-default:"false"`
	LogSource bool   `yaml:"log_source" env:"LOG_SOURCE" env-default:"false"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"ADDR" env-default:":8080"`
}

type GRPCConfig struct {
	Addr                 string        `yaml:"addr" env:"ADDR" env-default:":50051"`
	KeepaliveTime        time.Duration `yaml:"keepalive_time" env:"KEEPALIVE_TIME" env-default:"60s"`
	KeepaliveTimeout     time.Duration `yaml:"keepalive_timeout" env:"KEEPALIVE_TIMEOUT" env-default:"30s"`
	MaxConcurrentStreams uint32        `yaml:"max_concurrent_streams" env:"MAX_CONCURRENT_STREAMS" env-default:"50"`
	HealthInterval       time.Duration `yaml:"health_interval" env:"HEALTH_INTERVAL" env-default:"10s"`
	Reflection           bool          `yaml:"reflection" env:"REFLECTION" env-default:"false"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver      string `yaml:"driver" env:"DRIVER" env-default:"sqlite"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"AUTO_MIGRATE" env-default:"true"`

	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"notes.db"`

	Port          string `yaml:"port" env:"PORT" env-default:"5432"`
	Host          string `yaml:"host" env:"HOST" env-default:"localhost"`
	Name          string `yaml:"name" env:"NAME" env-default:"postgres"`
	User          string `yaml:"user" env:"USER" env-default:"user"`
	Password      string `yaml:"password" env:"PASSWORD"`
	SSLMode       string `yaml:"ssl_mode" env:"SSL_MODE" env-default:"disable"`
	MaxConns      int32  `yaml:"max_conns" env:"MAX_CONNS" env-default:"5"`
	RetryAttempts uint   `yaml:"retry_attempts" env:"RETRY_ATTEMPTS" env-default:"5"`
}

type WebConfig struct {
	// SessionSecret signs the session cookie. A random one is generated on
	// start when empty, which logs everybody out on restart.
	SessionSecret string `yaml:"session_secret" env:"SESSION_SECRET"`
	SecureCookie  bool   `yaml:"secure_cookie" env:"SECURE_COOKIE" env-default:"false"`
	CSRF          bool   `yaml:"csrf" env:"CSRF" env-default:"true"`
	BcryptCost    int    `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}
