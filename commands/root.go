package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sb25/REST-Web-Services-interaction/contexts"
	"github.com/sb25/REST-Web-Services-interaction/models"
	"github.com/sb25/REST-Web-Services-interaction/utils"
)

func NewRootCommand() *cobra.Command {
	var sc *contexts.SyncContext

	rootCmd := &cobra.Command{
		Use:          "targrep",
		Short:        "Synchronize alleles and products with a targeting repository",
		SilenceUsage: true,
		Long: `targrep talks to the web services of a targeting repository.

It looks alleles and their ES cell products up by natural key and only
creates the ones the repository does not know yet, so a sync can be run
any number of times. Configuration is read from a ./.env file and the
TARGREP_* environment variables; flags take precedence.`,
		Example: `  # Import the records of a YAML file
  targrep sync --file alleles.yml

  # Keep importing every night, skipping records that fail
  targrep sync --file alleles.yml --every 24h --continue-on-error

  # Inspect the repository
  targrep pipelines
  targrep alleles get 1`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := utils.LoadConfig()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}

			utils.InitLogger(cfg.Debug)
			slog.Debug(utils.DescribeConfig(cfg))

			sc = contexts.NewSyncContext(cfg)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("url", "", "Base url of the repository (TARGREP_URL)")
	flags.String("username", "", "Basic auth username (TARGREP_USERNAME)")
	flags.String("password", "", "Basic auth password (TARGREP_PASSWORD)")
	flags.Duration("timeout", 0, "Timeout of a single request (TARGREP_TIMEOUT)")
	flags.Bool("insecure", false, "Skip TLS certificate verification (TARGREP_INSECURE_SKIP_VERIFY)")
	flags.Bool("debug", false, "Log every request (TARGREP_DEBUG)")

	getContext := func() *contexts.SyncContext { return sc }

	rootCmd.AddCommand(
		newSyncCommand(getContext),
		newPipelinesCommand(getContext),
		newAllelesCommand(getContext),
		newProductsCommand(getContext),
	)

	return rootCmd
}

// applyFlags overrides the environment configuration with the flags that
// were set explicitly.
func applyFlags(cmd *cobra.Command, cfg *models.Config) error {
	flags := cmd.Flags()

	var err error
	if flags.Changed("url") {
		if cfg.Repository.Url, err = flags.GetString("url"); err != nil {
			return err
		}
	}
	if flags.Changed("username") {
		if cfg.Repository.Username, err = flags.GetString("username"); err != nil {
			return err
		}
	}
	if flags.Changed("password") {
		if cfg.Repository.Password, err = flags.GetString("password"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Repository.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("insecure") {
		if cfg.Repository.InsecureSkipVerify, err = flags.GetBool("insecure"); err != nil {
			return err
		}
	}
	if flags.Changed("debug") {
		if cfg.Debug, err = flags.GetBool("debug"); err != nil {
			return err
		}
	}
	if flags.Lookup("continue-on-error") != nil && flags.Changed("continue-on-error") {
		if cfg.Sync.ContinueOnError, err = flags.GetBool("continue-on-error"); err != nil {
			return err
		}
	}
	if flags.Lookup("every") != nil && flags.Changed("every") {
		if cfg.Sync.Every, err = flags.GetDuration("every"); err != nil {
			return err
		}
	}

	if cfg.Repository.Url == "" {
		return fmt.Errorf("no repository url configured")
	}
	return nil
}

func printJson(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
