package logging

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	FileLevel      logrus.Level
	ConsoleLevel   logrus.Level
	FileDir        string
	DisableConsole bool
}

var (
	defaultConfig = &Config{
		FileLevel:      logrus.DebugLevel,
		ConsoleLevel:   logrus.InfoLevel,
		FileDir:        "logs",
		DisableConsole: false,
	}

	defaultLogger     *logrus.Logger
	defaultLoggerOnce sync.Once
)

func SetDefaultConfig(config *Config) {
	defaultConfig = config
}

func GenerateTestConfig(t *testing.T) *Config {
	return &Config{
		FileLevel:      logrus.DebugLevel,
		ConsoleLevel:   logrus.DebugLevel,
		FileDir:        t.TempDir(),
		DisableConsole: false,
	}
}

/*
NewLogger 按照默认配置构造一个logger。控制台与文件的日志级别相互独立，文件按天滚动。
*/
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(maxLevel(defaultConfig.FileLevel, defaultConfig.ConsoleLevel))

	// 控制台与文件通过hook分别过滤级别，logger本体不直接输出
	logger.SetOutput(ioutil.Discard)

	if !defaultConfig.DisableConsole {
		logger.AddHook(&writerHook{
			writer:    os.Stderr,
			levels:    levelsUpTo(defaultConfig.ConsoleLevel),
			formatter: &logrus.TextFormatter{},
		})
	}

	if file, err := openLogFile(defaultConfig.FileDir); err == nil {
		logger.AddHook(&writerHook{
			writer:    file,
			levels:    levelsUpTo(defaultConfig.FileLevel),
			formatter: &logrus.TextFormatter{DisableColors: true},
		})
	} else {
		fmt.Fprintf(os.Stderr, "logging: open log file fail: %v\n", err)
	}

	return logger
}

// Default 返回全局共享的logger，首次调用时构造。
func Default() *logrus.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewLogger()
	})
	return defaultLogger
}

func maxLevel(a, b logrus.Level) logrus.Level {
	if a > b {
		return a
	}
	return b
}

func levelsUpTo(level logrus.Level) []logrus.Level {
	levels := make([]logrus.Level, 0, int(level)+1)
	for l := logrus.PanicLevel; l <= level; l++ {
		levels = append(levels, l)
	}
	return levels
}

func openLogFile(dir string) (io.Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	name := path.Join(dir, fmt.Sprintf("app_%s.log", time.Now().Format("20060102")))
	return os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type writerHook struct {
	mu        sync.Mutex
	writer    io.Writer
	levels    []logrus.Level
	formatter logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level {
	return h.levels
}

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.writer.Write(line)
	return err
}
