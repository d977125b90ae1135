// Package logging builds the process-wide zap logger. Logs go to a file
// under the user's skillsport directory rather than stderr: the TUI owns
// the terminal, and stray writes would corrupt the alternate screen.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens the log file and builds the logger. verbose switches the level
// to debug. The returned func flushes and closes the file; call it on exit.
func New(dir string, verbose bool) (*zap.Logger, func(), error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve log dir: %w", err)
		}
		dir = filepath.Join(home, ".skillsport", "logs")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	// Date-stamped files make rotation a matter of deleting old days.
	name := time.Now().Format("2006-01-02") + ".log"
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level)

	log := zap.New(core)
	cleanup := func() {
		_ = log.Sync()
		_ = file.Close()
	}
	return log, cleanup, nil
}
