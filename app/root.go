// Package app implements the main application commands.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crowdlink/crowdlink/internal/config"
	"github.com/crowdlink/crowdlink/internal/daemon"
	"github.com/crowdlink/crowdlink/internal/logger"
)

const (
	envPrefix = "CROWDLINK"

	flagConfig = "config"
	flagDev    = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "crowdlink",
	Short: "crowdlink links Atlassian Crowd identities to local forum accounts",
	Long: `crowdlink resolves Crowd authentication events to local forum accounts
and mirrors Crowd group memberships onto local groups.`,
	Args:         cobra.OnlyValidArgs,
	SilenceUsage: true,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringP(flagConfig, "c", "./etc/", "Directory containing main.toml")
	if err := viper.BindPFlag(flagConfig, rootCmd.PersistentFlags().Lookup(flagConfig)); err != nil {
		log.Error().Err(err).Msg("error binding config flag")
	}

	rootCmd.PersistentFlags().Bool(flagDev, false, "Enable dev mode")
	if err := viper.BindPFlag(flagDev, rootCmd.PersistentFlags().Lookup(flagDev)); err != nil {
		log.Error().Err(err).Msg("error binding dev flag")
	}

	// CROWDLINK_CONFIG_PATH and CROWDLINK_DEV
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := viper.BindEnv(flagConfig, envPrefix+"_CONFIG_PATH"); err != nil {
		log.Error().Err(err).Msg("error binding config env")
	}

	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// configDir returns the configured directory with a trailing slash.
func configDir() string {
	return withTrailingSlash(viper.GetString(flagConfig))
}

func withTrailingSlash(dir string) string {
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	return dir
}

// loadConfig reads the configuration and initializes the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.ReadConfig(configDir())
	if err != nil {
		return nil, err
	}

	if viper.GetBool(flagDev) {
		cfg.DevMode = true
	}

	if err = logger.Init(cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &cfg, nil
}

// withCore runs fn with an initialized core and closes it afterwards.
func withCore(cmd *cobra.Command, fn func(ctx context.Context, core *daemon.Core) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	core, err := daemon.NewCore(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() {
		if err := core.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close stores")
		}
	}()

	return fn(ctx, core)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v) //nolint:wrapcheck
}
