package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/codeblocks/internal/core/logging"
	"github.com/colonyops/codeblocks/pkg/logutils"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	APIURL     string

	logCloser func()
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "codeblocks", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "codeblocks")
}

// DefaultLogFile is where logs go when --log-file is not set.
func (f *Flags) DefaultLogFile() string {
	return filepath.Join(f.DataDir, "codeblocks.log")
}

// SetupLogging points the global logger at file, or at stderr when file is
// empty, closing whatever the previous call opened. Request and block ids
// carried by an event's context are added as fields.
func (f *Flags) SetupLogging(file string) error {
	logger, closer, err := logutils.New(f.LogLevel, file)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	f.CloseLogging()
	log.Logger = logger.Hook(logging.ContextHook{})
	f.logCloser = closer
	return nil
}

// CloseLogging closes the log file, if one is open.
func (f *Flags) CloseLogging() {
	if f.logCloser != nil {
		f.logCloser()
		f.logCloser = nil
	}
}
