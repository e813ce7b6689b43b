package email

type SMTPConfig struct {
	Identity string
	Host     string
	Port     int
	UserName string
	Password string
}

type Config struct {
	SMTP SMTPConfig
}

var globalConfig = Config{}

func Init(config *Config) {
	globalConfig = *config
}

// Enabled 未配置SMTP主机时视为关闭，调用方应跳过发信。
func Enabled() bool {
	return globalConfig.SMTP.Host != ""
}

func GenerateTestConfig() *Config {
	return &Config{SMTP: SMTPConfig{
		Identity: "assessment_sender@example.com",
		Host:     "localhost",
		Port:     2525,
		UserName: "assessment_sender@example.com",
		Password: "test-password",
	}}
}
