/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/macrofitas/internal/iofs"
	"github.com/gnames/macrofitas/internal/iologger"
	app "github.com/gnames/macrofitas/pkg"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd creates the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "macrofitas",
		Short:   "Cross-reference plant names with taxonomic and occurrence databases",
		Long: `Macrofitas checks a list of plant names against the Flora do Brasil
registry and The Plant List checklist, then collects occurrence records
of accepted names from GBIF and speciesLink. Results go to three
spreadsheets:

  Planilha 1.xlsx  comparison of the taxonomic sources
  Planilha 2.xlsx  detailed records of accepted names
  Planilha 3.xlsx  occurrence geodata

Every remote answer is cached in ~/.cache/macrofitas, so repeated runs
only ask for names that were not found before.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (MACROFITAS_*)
  3. Config file (~/.config/macrofitas/config.yaml)
  4. Built-in defaults

Environment variables examples:
  MACROFITAS_HTTP_TIMEOUT           Per-request timeout in seconds
  MACROFITAS_JOURNAL_DRIVER         sqlite, postgres or none
  MACROFITAS_LOG_LEVEL              Log level (debug/info/warn/error)
  MACROFITAS_OCCURRENCE_LIMIT       Occurrences per name (0 = all)`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "macrofitas version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for macrofitas")

	rootCmd.AddCommand(getRunCmd())
	rootCmd.AddCommand(getLookupCmd())
	rootCmd.AddCommand(getCacheCmd())
	rootCmd.AddCommand(getJournalCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureSourcesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keeping bootstrap records
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("MACROFITAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// HTTP configuration
	v.BindEnv("http.timeout", "MACROFITAS_HTTP_TIMEOUT")
	v.BindEnv("http.retries", "MACROFITAS_HTTP_RETRIES")
	v.BindEnv("http.user_agent", "MACROFITAS_HTTP_USER_AGENT")

	// Journal configuration
	v.BindEnv("journal.driver", "MACROFITAS_JOURNAL_DRIVER")
	v.BindEnv("journal.database.host", "MACROFITAS_JOURNAL_DATABASE_HOST")
	v.BindEnv("journal.database.port", "MACROFITAS_JOURNAL_DATABASE_PORT")
	v.BindEnv("journal.database.user", "MACROFITAS_JOURNAL_DATABASE_USER")
	v.BindEnv("journal.database.password", "MACROFITAS_JOURNAL_DATABASE_PASSWORD")
	v.BindEnv("journal.database.database", "MACROFITAS_JOURNAL_DATABASE_DATABASE")
	v.BindEnv("journal.database.ssl_mode", "MACROFITAS_JOURNAL_DATABASE_SSL_MODE")

	// Log configuration
	v.BindEnv("log.level", "MACROFITAS_LOG_LEVEL")
	v.BindEnv("log.format", "MACROFITAS_LOG_FORMAT")
	v.BindEnv("log.destination", "MACROFITAS_LOG_DESTINATION")

	// General configuration
	v.BindEnv("output_dir", "MACROFITAS_OUTPUT_DIR")
	v.BindEnv("occurrence_limit", "MACROFITAS_OCCURRENCE_LIMIT")
	v.BindEnv("no_progress", "MACROFITAS_NO_PROGRESS")

	v.AutomaticEnv()
}
