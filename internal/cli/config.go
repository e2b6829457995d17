package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/ralt/fdindex/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables overriding flags, e.g.
// FDINDEX_AAPT_PATH
const EnvPrefix = "fdindex"

// loadConfig merges flags, environment and the optional config file into a
// RepositoryConfig. Flags set on the command line win over the environment,
// which wins over the file.
func loadConfig(cmd *cobra.Command) (*models.RepositoryConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, &models.RepoGenError{Type: models.ErrInvalidConfig, Err: err}
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, &models.RepoGenError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("failed to read config file: %w", err),
			}
		}
	}

	config := &models.RepositoryConfig{
		RepoDir:          v.GetString("repo-dir"),
		MetadataDir:      v.GetString("metadata-dir"),
		IconDir:          v.GetString("icon-dir"),
		AAPTPath:         v.GetString("aapt-path"),
		InspectorTimeout: v.GetDuration("inspector-timeout"),
		CreateMeta:       v.GetBool("create-meta"),
		Verbose:          v.GetBool("verbose"),
		SoftIconFailures: v.GetBool("soft-icon-failures"),
		Jobs:             v.GetInt("jobs"),
		Compress:         v.GetStringSlice("compress"),
		GPGKeyPath:       v.GetString("gpg-key"),
		GPGPassphrase:    v.GetString("gpg-passphrase"),
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *models.RepositoryConfig) error {
	var errs *multierror.Error

	if config.RepoDir == "" {
		errs = multierror.Append(errs, fmt.Errorf("repo-dir is required"))
	}
	if config.MetadataDir == "" {
		errs = multierror.Append(errs, fmt.Errorf("metadata-dir is required"))
	}
	if config.AAPTPath == "" {
		errs = multierror.Append(errs, fmt.Errorf("aapt-path is required"))
	}
	if config.Jobs < 1 {
		errs = multierror.Append(errs, fmt.Errorf("jobs must be at least 1, got %d", config.Jobs))
	}
	if config.InspectorTimeout < 0 {
		errs = multierror.Append(errs, fmt.Errorf("inspector-timeout must not be negative"))
	}
	for _, format := range config.Compress {
		if format != "gz" && format != "xz" {
			errs = multierror.Append(errs, fmt.Errorf("unsupported compression %q (use gz or xz)", format))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return &models.RepoGenError{Type: models.ErrInvalidConfig, Err: err}
	}

	if config.IconDir == "" {
		config.IconDir = filepath.Join(config.RepoDir, "icons")
	}

	return nil
}

// defaultInspectorTimeout bounds a single aapt run
const defaultInspectorTimeout = 2 * time.Minute
