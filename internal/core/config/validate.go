package config

import (
	"fmt"
	"net"
	"net/url"
	"os"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// URL syntax, listen addresses, and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("api.base_url", c.API.BaseURL, isHTTPURL),
		criterio.Run("server.addr", c.Server.Addr, isListenAddr),
		c.validateOrigins(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if len(c.Server.CORSOrigins) == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Server",
			Item:     "cors_origins",
			Message:  "no origins allowed, browser clients will be rejected",
		})
	}

	if c.API.Timeout == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "API",
			Item:     "timeout",
			Message:  "requests never time out",
		})
	}

	if c.Server.Storage == StorageSQLite && c.Server.DataFile != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Server",
			Item:     "data_file",
			Message:  "data_file is ignored when storage is sqlite",
		})
	}

	return warnings
}

// validateFileAccess checks config file, data directory, and export directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("export.dir", c.Export.Dir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func isListenAddr(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}
	return nil
}

func (c *Config) validateOrigins() error {
	var errs criterio.FieldErrorsBuilder
	for i, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			continue
		}
		if err := isHTTPURL(origin); err != nil {
			errs = errs.Append(fmt.Sprintf("server.cors_origins[%d]", i), err)
		}
	}
	return errs.ToError()
}
