package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug bool `envconfig:"DEBUG" default:"false"`

	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8004"`

	SessionSecret string `envconfig:"SESSION_SECRET" default:"dev-only-session-secret"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER" default:"assessment"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"assessment"`
	DBName     string `envconfig:"DB_NAME" default:"llm_assessment"`

	SMTPIdentity string `envconfig:"EMAIL_SMTP_IDENTITY" default:""`
	SMTPHost     string `envconfig:"EMAIL_SMTP_HOST" default:""`
	SMTPPort     int    `envconfig:"EMAIL_SMTP_PORT" default:"25"`
	SMTPUserName string `envconfig:"EMAIL_SMTP_USERNAME" default:""`
	SMTPPassword string `envconfig:"EMAIL_SMTP_PASSWORD" default:""`

	CriteriaPath string `envconfig:"CRITERIA_PATH" default:"criteria.json"`
}

// MailEnabled 表示是否配置了SMTP，未配置时跳过上传回执邮件。
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
