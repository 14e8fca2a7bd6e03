package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/KarthikMohan7639/linkedin-xray-scraper/pkg/xray"
)

const (
	ansiReset = "\033[0m"
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
)

// StatusLog prints timestamped status lines for people and mirrors them into
// a structured logger. It implements xray.Reporter and is safe for
// concurrent use.
type StatusLog struct {
	mu       sync.Mutex
	out      io.Writer
	logger   *slog.Logger
	colorize bool
	now      func() time.Time
}

// NewStatusLog writes lines to out. A nil logger disables mirroring.
func NewStatusLog(out io.Writer, logger *slog.Logger) *StatusLog {
	if logger == nil {
		logger = NewNop()
	}
	return &StatusLog{
		out:      out,
		logger:   logger,
		colorize: ShouldColorize(out),
		now:      time.Now,
	}
}

// Emit writes "[HH:MM:SS] message".
func (s *StatusLog) Emit(level xray.Level, message string) {
	s.mu.Lock()
	line := fmt.Sprintf("[%s] %s", s.now().Format("15:04:05"), message)
	if s.colorize {
		line = colorFor(level) + line + ansiReset
	}
	fmt.Fprintln(s.out, line)
	s.mu.Unlock()

	switch level {
	case xray.LevelError:
		s.logger.Error(message)
	case xray.LevelSuccess:
		s.logger.Info(message, "status", string(xray.LevelSuccess))
	default:
		s.logger.Info(message)
	}
}

func colorFor(level xray.Level) string {
	switch level {
	case xray.LevelSuccess:
		return ansiGreen
	case xray.LevelError:
		return ansiRed
	default:
		return ansiCyan
	}
}

// ShouldColorize reports whether writer is an interactive terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
