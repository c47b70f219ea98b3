package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"order_desk/internal/infrastructure/config"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the package logger. Output goes to a rotating file when a path is
// configured and to stdout otherwise. The returned writer is handed to gin as well.
func Setup(conf config.Config) io.Writer {
	var out io.Writer = os.Stdout
	if conf.Logging.Path != "" {
		out = &lumberjack.Logger{
			Filename:   conf.Logging.Path,
			MaxSize:    32, // megabytes
			MaxBackups: 2,
			MaxAge:     28, //days
			Compress:   true,
		}
	}
	log.SetOutput(out)
	log.SetLevel(ParseLevel(conf.Logging.LogLevel))
	log.SetFormatter(&log.TextFormatter{
		PadLevelText:    true,
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	return out
}

// ParseLevel falls back to info for names config.Validate would reject.
func ParseLevel(name string) log.Level {
	switch strings.ToLower(name) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	case "panic":
		return log.PanicLevel
	default:
		return log.InfoLevel
	}
}
