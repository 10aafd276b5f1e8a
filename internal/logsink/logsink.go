// Package logsink routes the standard logger to stderr or to a size-rotated
// log file.
package logsink

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log destination. An empty File logs to stderr.
type Options struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	Verbose    bool
}

// Writer resolves the destination and returns it with its closer.
func Writer(opts Options) (io.Writer, func() error, error) {
	path := strings.TrimSpace(opts.File)
	if path == "" {
		return os.Stderr, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 3),
	}
	return rot, rot.Close, nil
}

// Setup points the standard logger at the destination in opts. The returned
// function restores stderr and closes the file.
func Setup(opts Options) (func() error, error) {
	w, closeFn, err := Writer(opts)
	if err != nil {
		return nil, err
	}
	flags := log.LstdFlags
	if opts.Verbose {
		flags |= log.Lshortfile
	}
	log.SetOutput(w)
	log.SetFlags(flags)
	return func() error {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
		return closeFn()
	}, nil
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
