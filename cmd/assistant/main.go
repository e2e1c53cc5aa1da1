package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trade-engine/assistant/internal/assistant"
	"github.com/trade-engine/assistant/internal/config"
	"github.com/trade-engine/assistant/internal/dialog"
	"github.com/trade-engine/assistant/internal/gui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "assistant",
		Short:        "Show declarative dialogs and print what the user entered",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")

	root.AddCommand(&cobra.Command{
		Use:   "show <dialog.yml>",
		Short: "Open a dialog and print its results as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, configPath, args[0])
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "validate <dialog.yml>",
		Short: "Check a dialog definition without opening it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := dialog.Load(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	})

	return root
}

func runShow(cmd *cobra.Command, configPath, dialogPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg.Application.LogLevel, cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	def, err := dialog.Load(dialogPath)
	if err != nil {
		return err
	}

	fyneApp, err := newFyneApp()
	if err != nil {
		return err
	}

	runtime := gui.NewRuntime(logger.Named("gui"), fyneApp)
	client := assistant.NewClient(logger.Named("assistant"), runtime,
		assistant.WithPollInterval(cfg.Session.PollInterval))

	if err := dialog.NewBuilder(logger.Named("dialog"), client).Build(def); err != nil {
		return fmt.Errorf("build dialog: %w", err)
	}

	logger.Info("Showing dialog",
		zap.String("app", cfg.Application.Name),
		zap.String("version", cfg.Application.Version),
		zap.String("dialog", dialogPath))

	// fyne's Run loop owns the main goroutine, the dialog waits beside it
	errc := make(chan error, 1)
	go func() {
		defer runtime.Quit()
		errc <- client.Display(cmd.Context(), def.WindowOptions(cfg.Window))
	}()
	fyneApp.Run()

	if err := <-errc; err != nil {
		return err
	}
	return writeResults(cmd.OutOrStdout(), client.Results())
}

func writeResults(w io.Writer, results map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
