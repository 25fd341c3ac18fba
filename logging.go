package gtfsrtsink

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogging configures the process-wide logger. A configured file path
// adds a size/age-rotated file next to stdout; that file is the operator
// error channel for fire-and-forget failures.
func InitLogging(cfg LogConfig) error {
	lvl, err := log.ParseLevel(cfg.Level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)

	if cfg.FilePath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return err
	}
	rotated := &lumberjack.Logger{
		Filename: cfg.FilePath,
		MaxSize:  100, // MB
		MaxAge:   cfg.MaxAgeDays,
		Compress: true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotated))
	return nil
}
