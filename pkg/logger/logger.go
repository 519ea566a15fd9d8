package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/natefinch/lumberjack"
	log "github.com/sirupsen/logrus"
)

const (
	FormatJSON = "json"
	FormatText = "text"

	timestampFormat = "2006-01-02 15:04:05"
)

type Options struct {
	Level  string
	Format string
	// File, when set, receives a copy of every entry and is rotated by size.
	File string
}

func callerPrettyfier(frame *runtime.Frame) (function string, file string) {
	return "", fmt.Sprintf("%s:%d", path.Base(frame.File), frame.Line)
}

// SetupLogger configures the global logrus logger and returns a closer for
// the log file, if any.
func SetupLogger(opts Options) io.Closer {
	log.SetReportCaller(true)

	if opts.Format == FormatText {
		log.SetFormatter(&log.TextFormatter{
			CallerPrettyfier: callerPrettyfier,
			TimestampFormat:  timestampFormat,
			FullTimestamp:    true,
		})
	} else {
		log.SetFormatter(&log.JSONFormatter{
			CallerPrettyfier: callerPrettyfier,
			TimestampFormat:  timestampFormat,
		})
	}

	var closer io.Closer = io.NopCloser(nil)
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		}
		log.SetOutput(io.MultiWriter(os.Stderr, rotator))
		closer = rotator
	} else {
		log.SetOutput(os.Stderr)
	}

	loggerLevel, err := log.ParseLevel(opts.Level)
	if err != nil {
		log.Infof("Level setup default INFO, err: %v", err)
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(loggerLevel)
	}

	return closer
}
