package cli

import (
	"context"
	"fmt"

	"github.com/ralt/fdindex/internal/generator/fdroid"
	"github.com/ralt/fdindex/internal/inspector"
	"github.com/ralt/fdindex/internal/metadata"
	"github.com/ralt/fdindex/internal/models"
	"github.com/ralt/fdindex/internal/scanner"
	"github.com/ralt/fdindex/internal/signer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the repository index",
		Long: `Inspects every .apk in the repository directory, extracts the icons,
matches the packages with the application metadata and writes index.xml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if config.Verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}

			logrus.Info("Starting index generation...")
			logrus.Debugf("Configuration: %+v", redact(*config))

			return runGeneration(cmd.Context(), config)
		},
	}

	cmd.Flags().BoolP("create-meta", "c", false, "Create skeleton metadata files that are missing")

	cmd.Flags().String("repo-dir", "repo", "Repository directory holding the .apk files")
	cmd.Flags().String("metadata-dir", "metadata", "Directory holding the application metadata")
	cmd.Flags().String("icon-dir", "", "Icon output directory (defaults to <repo-dir>/icons)")

	cmd.Flags().String("aapt-path", "aapt", "Path to the aapt binary")
	cmd.Flags().Duration("inspector-timeout", defaultInspectorTimeout, "Timeout for a single aapt invocation (0 disables)")
	cmd.Flags().Int("jobs", 1, "Number of packages inspected concurrently")
	cmd.Flags().Bool("soft-icon-failures", false, "Warn instead of failing when a package icon cannot be extracted")

	cmd.Flags().StringSlice("compress", nil, "Also write compressed copies of the index (gz, xz)")

	cmd.Flags().StringP("gpg-key", "k", "", "Path to GPG private key used to sign index.xml")
	cmd.Flags().StringP("gpg-passphrase", "p", "", "GPG key passphrase")

	return cmd
}

func redact(config models.RepositoryConfig) models.RepositoryConfig {
	if config.GPGPassphrase != "" {
		config.GPGPassphrase = "***"
	}
	return config
}

func runGeneration(ctx context.Context, config *models.RepositoryConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Scan for packages
	logrus.Infof("Scanning directory: %s", config.RepoDir)
	sc := scanner.NewFileSystemScanner()
	scanned, err := sc.Scan(ctx, config.RepoDir)
	if err != nil {
		return &models.RepoGenError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to scan directory: %w", err),
		}
	}

	if len(scanned) == 0 {
		logrus.Warn("No packages found in repository directory")
	}

	// Step 2: Initialize signer before any output is touched
	var gpgSigner signer.Signer
	if config.GPGKeyPath != "" {
		gpgSigner, err = signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
		if err != nil {
			return &models.RepoGenError{
				Type: models.ErrSigning,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		logrus.Info("GPG signer initialized")
	}

	// Step 3: Inspect packages and extract icons
	insp := inspector.NewAAPT(config.AAPTPath,
		inspector.WithTimeout(config.InspectorTimeout),
		inspector.WithVerbose(config.Verbose),
	)
	packages, warnings, err := fdroid.NewExtractor(insp, config).Extract(ctx, scanned)
	if err != nil {
		return err
	}

	// Step 4: Build the index
	gen := fdroid.NewGenerator(metadata.NewStore(config.MetadataDir), gpgSigner)

	if err := gen.ValidatePackages(packages); err != nil {
		return &models.RepoGenError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("package validation failed: %w", err),
		}
	}

	result, err := gen.Generate(ctx, config, packages)
	if err != nil {
		return err
	}

	warnings = append(warnings, result.Warnings...)

	logrus.Info("Finished.")
	logrus.Infof("%d apps in repo", result.InRepo)
	logrus.Infof("%d disabled", result.Disabled)
	if len(warnings) > 0 {
		logrus.Warnf("%d warnings", len(warnings))
	}

	return nil
}
