// Package logging owns the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is shared by every package; commands print results to stdout, the logger
// writes diagnostics to stderr or the rotated log file.
var Log = logrus.New()

type Params struct {
	Level    string
	FileName string
	ToStderr bool
	JSON     bool
}

func Setup(p Params) {
	if p.JSON {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: p.FileName == ""})
	}
	Log.SetLevel(ParseLevel(p.Level))

	if p.FileName == "" {
		Log.SetOutput(os.Stderr)
		return
	}

	if !strings.HasSuffix(p.FileName, ".log") {
		p.FileName += ".log"
	}
	rotated := &lumberjack.Logger{
		Filename:   p.FileName,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	if p.ToStderr {
		Log.SetOutput(io.MultiWriter(os.Stderr, rotated))
		return
	}
	Log.SetOutput(rotated)
}

// ParseLevel maps a config string to a logrus level; unknown values fall back
// to warn so a typo never floods the terminal.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warning", "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.WarnLevel
	}
}
