// Package cmd implements the passfold command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	// Register export format readers.
	_ "github.com/passfold/passfold/internal/sources/bitwarden"
	_ "github.com/passfold/passfold/internal/sources/protonpass"
	"github.com/passfold/passfold/pkg/logging"
)

var (
	configFile string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "passfold",
	Short: "Password vault deduplication CLI",
	Long: `Passfold normalizes password-vault export files from different password
managers into one unified entry model, merges duplicate entries field by
field favoring the more recently modified side, and writes the canonical
set back out.

Supported inputs: Bitwarden JSON exports, Proton Pass export zips, and
plain Proton Pass data.json files.`,
	PersistentPreRun: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithLogger(ctx, logging.Default())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.passfold.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "auto", "log format (auto, console, json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress all but error output")

	for _, flag := range []string{"log-level", "log-format", "verbose", "quiet"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(configFile)
	} else {
		// Search config in home directory with name ".passfold" (without extension)
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".passfold")
		}
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix("PASSFOLD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// loadEnvFiles loads .env files from the working directory, most specific
// first so earlier files win.
func loadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// setupLogging configures the default logger from flags and environment.
func setupLogging(_ *cobra.Command, _ []string) {
	level := viper.GetString("log-level")
	if viper.GetBool("verbose") {
		level = "debug"
	}
	if viper.GetBool("quiet") {
		level = "error"
	}
	logging.SetDefault(logging.NewLoggerFromConfig(&logging.Config{
		Level:  level,
		Format: viper.GetString("log-format"),
	}))
}
