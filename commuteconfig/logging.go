package commuteconfig

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ConfigureLogging points logger at the console and, optionally, a rotated
// log file. Each sink has its own level and format.
func ConfigureLogging(logger *logrus.Logger, settings LoggerSettings) error {
	logger.SetOutput(ioutil.Discard)
	logger.ReplaceHooks(make(logrus.LevelHooks))

	level := logrus.PanicLevel

	if settings.EnableConsole {
		consoleLevel, err := logrus.ParseLevel(settings.ConsoleLevel)
		if err != nil {
			return errors.Wrap(err, "invalid console log level")
		}
		logger.AddHook(newSinkHook(os.Stderr, formatter(settings.ConsoleJson), consoleLevel))
		level = maxLevel(level, consoleLevel)
	}

	if settings.EnableFile {
		fileLevel, err := logrus.ParseLevel(settings.FileLevel)
		if err != nil {
			return errors.Wrap(err, "invalid file log level")
		}
		writer := &lumberjack.Logger{
			Filename:   settings.FileLocation,
			MaxSize:    100,
			MaxBackups: 3,
		}
		logger.AddHook(newSinkHook(writer, formatter(settings.FileJson), fileLevel))
		level = maxLevel(level, fileLevel)
	}

	logger.SetLevel(level)

	return nil
}

func formatter(json bool) logrus.Formatter {
	if json {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func maxLevel(a, b logrus.Level) logrus.Level {
	if a > b {
		return a
	}
	return b
}

// sinkHook writes entries at or above its level to a writer.
type sinkHook struct {
	writer    io.Writer
	formatter logrus.Formatter
	levels    []logrus.Level
}

func newSinkHook(writer io.Writer, formatter logrus.Formatter, level logrus.Level) *sinkHook {
	levels := []logrus.Level{}
	for _, l := range logrus.AllLevels {
		if l <= level {
			levels = append(levels, l)
		}
	}

	return &sinkHook{
		writer:    writer,
		formatter: formatter,
		levels:    levels,
	}
}

func (h *sinkHook) Levels() []logrus.Level {
	return h.levels
}

func (h *sinkHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	_, err = h.writer.Write(line)
	return err
}
