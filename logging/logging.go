package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	logger    atomic.Pointer[slog.Logger]
	debugMode atomic.Bool
)

func init() {
	logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetupLogging configures logging.
// If filename is empty, logging is disabled (except log.Fatal/panic).
// If filename is set, logs go to that file and Bubble Tea logs are enabled too.
func SetupLogging(filename string) (cleanup func(), err error) {
	if filename == "" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(io.Discard)
		logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
		debugMode.Store(false)
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	// configure stdlib logger
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// configure Bubble Tea logger
	tf, err := tea.LogToFile(filename, "debug")
	if err != nil {
		f.Close()
		return nil, err
	}

	logger.Store(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	debugMode.Store(true)

	// cleanup closes both files
	cleanup = func() {
		debugMode.Store(false)
		logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// SetOutput points the structured logger at w. Tests use it to capture output.
func SetOutput(w io.Writer, level slog.Level) {
	logger.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	debugMode.Store(level <= slog.LevelDebug)
}

// IsDebugMode reports whether a debug log file is active.
func IsDebugMode() bool { return debugMode.Load() }

func Debug(msg string) { logger.Load().Debug(msg) }

func Debugf(format string, args ...any) { logger.Load().Debug(fmt.Sprintf(format, args...)) }

func Infof(format string, args ...any) { logger.Load().Info(fmt.Sprintf(format, args...)) }

func Warnf(format string, args ...any) { logger.Load().Warn(fmt.Sprintf(format, args...)) }

func Errorf(format string, args ...any) { logger.Load().Error(fmt.Sprintf(format, args...)) }
