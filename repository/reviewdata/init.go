package reviewdata

import (
	"fmt"
	"sync/atomic"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/utils"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type MySQLConfig struct {
	User     string
	Password string
	Host     string
	Database string
}

func (c *MySQLConfig) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Database)
}

/*
Config 数据库配置。SQLiteDSN 非空时使用SQLite（测试用），否则连接MySQL。
*/
type Config struct {
	MySQL          MySQLConfig
	SQLiteDSN      string
	CheckMigration bool
}

func (c *Config) dialector() gorm.Dialector {
	if c.SQLiteDSN != "" {
		return sqlite.Open(c.SQLiteDSN)
	}
	return mysql.Open(c.MySQL.dsn())
}

var testDatabaseSeq uint64

// GenerateTestConfig 每次返回独立的内存库，避免测试之间互相污染。
func GenerateTestConfig() *Config {
	seq := atomic.AddUint64(&testDatabaseSeq, 1)
	return &Config{
		SQLiteDSN:      fmt.Sprintf("file:reviewdata_test_%d?mode=memory&cache=shared", seq),
		CheckMigration: true,
	}
}

var db *gorm.DB

func CreateDatabase(config *Config) (*gorm.DB, error) {
	database, err := gorm.Open(config.dialector(), &gorm.Config{
		Logger: logger.New(&sqlLogger{logger: logging.NewLogger()}, logger.Config{LogLevel: logger.Warn}),
	})
	if err != nil {
		return nil, utils.WrapError(err, "db connection fail")
	}

	if config.CheckMigration {
		err = migration(database, config.SQLiteDSN == "")
		if err != nil {
			return nil, utils.WrapError(err, "migration fail")
		}
	}

	return database, nil
}

func migration(db *gorm.DB, isMySQL bool) error {
	tables := []interface{}{
		&Reviewer{}, &Batch{}, &Record{}, &Assessment{},
	}

	migrator := db
	if isMySQL {
		migrator = db.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci")
	}

	if err := migrator.AutoMigrate(tables...); err != nil {
		return utils.WrapError(err, "AutoMigrate fail")
	}

	return nil
}

func Init(config *Config) {
	database, err := CreateDatabase(config)
	if err != nil {
		panic(err)
	}

	db = database
}

func DatabaseRaw() *gorm.DB {
	return db
}
