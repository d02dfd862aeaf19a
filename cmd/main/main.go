package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"acf/localization/internal/config"
	"acf/localization/internal/container"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "acfl",
	Short:         "Generate translation connector field rules from ACF definitions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and publish field rules once",
	RunE:  runGenerate,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate field rules whenever local definitions change",
	RunE:  runWatch,
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that local definitions match the ones stored in the database",
	RunE:  runVerify,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml)")
	generateCmd.Flags().Bool("print", false, "print the generated rules as JSON")

	rootCmd.AddCommand(generateCmd, watchCmd, verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func setup(ctx context.Context) (*container.Container, error) {
	// Load configuration using viper
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := configureLogging(cfg.Log); err != nil {
		return nil, err
	}
	log.Debug("Configuration loaded successfully")

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}

	return app, nil
}

func configureLogging(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := setup(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Run(ctx)
	if err != nil {
		return fmt.Errorf("rule generation failed: %w", err)
	}

	if printRules, _ := cmd.Flags().GetBool("print"); printRules {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.RuleSet())
	}

	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := setup(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Watch(ctx)
}

func runVerify(cmd *cobra.Command, args []string) error {
	app, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	ok, mismatches, err := app.Service.Verify(cmd.Context())
	if err != nil {
		return err
	}

	if ok {
		log.Info("✅ Local and database definitions match")
		return nil
	}

	for _, m := range mismatches {
		fmt.Fprintln(cmd.OutOrStdout(), m.String())
	}
	return fmt.Errorf("%d definitions differ between code and database", len(mismatches))
}
