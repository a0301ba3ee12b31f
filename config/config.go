package config

import (
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/seminarroom/bookdesk/pkg/logger"
	"github.com/seminarroom/bookdesk/pkg/mailer"
	"github.com/seminarroom/bookdesk/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

type Auth struct {
	JWTKey        string        `envconfig:"JWT_KEY" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	EmailTokenTTL time.Duration `envconfig:"EMAIL_TOKEN_TTL" default:"10m"`
}

type OTP struct {
	TTL           time.Duration `envconfig:"OTP_TTL" default:"5m"`
	MaxAttempts   int           `envconfig:"OTP_MAX_ATTEMPTS" default:"3"`
	SweepInterval time.Duration `envconfig:"OTP_SWEEP_INTERVAL" default:"60s"`
}

// Policy carries registry behavior knobs.
type Policy struct {
	// PreserveHistory keeps a deleted book's issue logs instead of
	// cascading the delete onto them.
	PreserveHistory bool `envconfig:"PRESERVE_HISTORY" default:"false"`
}

type Reminder struct {
	Enabled  bool          `envconfig:"REMINDER_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"REMINDER_INTERVAL" default:"24h"`
}

type Config struct {
	Server   HTTPServer    `yaml:"server"`
	Database postgres.DB   `yaml:"db"`
	SMTP     mailer.Config `yaml:"smtp"`
	Auth     Auth          `yaml:"auth"`
	OTP      OTP           `yaml:"otp"`
	Policy   Policy        `yaml:"policy"`
	Reminder Reminder      `yaml:"reminder"`
	Log      logger.Log    `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
