package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vodadmin/internal/api"
	"vodadmin/internal/config"
	"vodadmin/pkg/logger"
)

// TokenEnvVar supplies the bearer token for the read-only commands.
const TokenEnvVar = "VODADMIN_TOKEN"

// commandContext carries what every subcommand shares once the root has
// loaded the configuration.
type commandContext struct {
	configPath string
	cfg        *config.Config
	log        zerolog.Logger
}

func (c *commandContext) load() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.NewWithWriter(os.Stderr, cfg.Log.Level, cfg.Log.JSON)
	return nil
}

func (c *commandContext) client() *api.Client {
	b := c.cfg.Backend
	return api.New(api.Options{
		BaseURL:         b.BaseURL,
		Timeout:         b.Timeout,
		BreakerFailures: b.BreakerFailures,
		BreakerTimeout:  b.BreakerTimeout,
		Logger:          c.log,
	})
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "vodadmin",
		Short:         "Admin panel for the VOD catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return cc.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configPath, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newServeCommand(cc))
	rootCmd.AddCommand(newHealthCommand(cc))
	rootCmd.AddCommand(newListCommand(cc))
	rootCmd.AddCommand(newStatsCommand(cc))

	return rootCmd
}

// tokenFlag registers --token on a command that calls the backend
// directly, falling back to VODADMIN_TOKEN.
func tokenFlag(cmd *cobra.Command, token *string) {
	cmd.Flags().StringVar(token, "token", "", "Admin bearer token (default $"+TokenEnvVar+")")
}

func resolveToken(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(TokenEnvVar)
}
