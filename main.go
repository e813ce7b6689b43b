package main

import (
	"llm-assessment-backend/config"
	"llm-assessment-backend/domain/aggregate"
	"llm-assessment-backend/domain/ingest"
	"llm-assessment-backend/domain/progress"
	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/server/handler"
	"llm-assessment-backend/utils/email"

	"github.com/sirupsen/logrus"
)

func loggingConf(cfg *config.Config) *logging.Config {
	consoleLevel := logrus.InfoLevel
	if cfg.Debug {
		consoleLevel = logrus.DebugLevel
	}

	return &logging.Config{
		FileLevel:      logrus.DebugLevel,
		ConsoleLevel:   consoleLevel,
		FileDir:        "logs",
		DisableConsole: false,
	}
}

func emailConf(cfg *config.Config) *email.Config {
	if !cfg.MailEnabled() {
		return email.GenerateTestConfig()
	}

	return &email.Config{SMTP: email.SMTPConfig{
		Identity: cfg.SMTPIdentity,
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		UserName: cfg.SMTPUserName,
		Password: cfg.SMTPPassword,
	}}
}

func reviewdataConf(cfg *config.Config) *reviewdata.Config {
	if cfg.Debug {
		return reviewdata.GenerateTestConfig()
	}

	return &reviewdata.Config{
		MySQL: reviewdata.MySQLConfig{
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Host:     cfg.DBHost,
			Database: cfg.DBName,
		},
		CheckMigration: true,
	}
}

func ingestConf() *ingest.Setting {
	return &ingest.Setting{
		GetDatabase: reviewdata.DatabaseRaw,
		Logger:      logging.NewLogger(),
	}
}

func progressConf() *progress.Setting {
	return &progress.Setting{
		GetDatabase: reviewdata.DatabaseRaw,
		Logger:      logging.NewLogger(),
	}
}

func aggregateConf() *aggregate.Setting {
	return &aggregate.Setting{
		GetDatabase: reviewdata.DatabaseRaw,
		Logger:      logging.NewLogger(),
	}
}

func handlerConf(cfg *config.Config) *handler.Setting {
	return &handler.Setting{
		Criteria: config.LoadCriteria(cfg.CriteriaPath),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logging.SetDefaultConfig(loggingConf(cfg))
	logger := logging.NewLogger()

	email.Init(emailConf(cfg))

	reviewdata.Init(reviewdataConf(cfg))

	ingest.Init(ingestConf())

	progress.Init(progressConf())

	aggregate.Init(aggregateConf())

	handler.Init(handlerConf(cfg))

	common.InitSession(cfg.SessionSecret)

	s := server.New(&server.Config{
		Host:      cfg.HTTPHost,
		Port:      cfg.HTTPPort,
		DebugMode: cfg.Debug,
	})
	err = s.RunServer()
	if err != nil {
		logger.WithError(err).Errorf("run server error=\n%v", err)
	}
}
