package config

import (
	"time"
)

type DB struct {
	Driver string `envconfig:"DRIVER" default:"memory"`
	Url    string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"pesaflow:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type Kafka struct {
	Brokers       []string `envconfig:"BROKERS" default:"localhost:9092"`
	GroupID       string   `envconfig:"GROUP_ID" default:"pesaflow"`
	TopicPrefix   string   `envconfig:"TOPIC_PREFIX" default:"pesaflow."`
	SASLUsername  string   `envconfig:"SASL_USERNAME"`
	SASLPassword  string   `envconfig:"SASL_PASSWORD"`
	EnableTLS     bool     `envconfig:"ENABLE_TLS" default:"false"`
	SkipTLSVerify bool     `envconfig:"SKIP_TLS_VERIFY" default:"false"`
}

type EventBus struct {
	Driver string `envconfig:"DRIVER" default:"memory"`
	Async  bool   `envconfig:"ASYNC" default:"false"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Currency struct {
	Code     string `envconfig:"CODE" default:"KES"`
	Decimals int    `envconfig:"DECIMALS" default:"2"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[pesaflow]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	Kafka     *Kafka     `envconfig:"KAFKA"`
	EventBus  *EventBus  `envconfig:"EVENT_BUS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Currency  *Currency  `envconfig:"CURRENCY"`
}

// IsDevelopment reports whether the app runs in the development environment.
func (a *App) IsDevelopment() bool {
	return a.Env == "development"
}
