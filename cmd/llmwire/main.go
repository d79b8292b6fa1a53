// Package main is the entry point for the llmwire CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/llmwire/llmwire/chat"
	"github.com/llmwire/llmwire/internal/config"
	"github.com/llmwire/llmwire/provider"
	"github.com/llmwire/llmwire/provider/openaicompat"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "llmwire",
		Short:         "Talk to any OpenAI-compatible chat completion API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), chatCmd(), configCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("llmwire %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Send a prompt and print the completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			}))
			client, err := openaicompat.New(cfg, openaicompat.WithLogger(logger))
			if err != nil {
				return err
			}

			system, _ := cmd.Flags().GetString("system")
			var turns []chat.Turn
			if system != "" {
				turns = append(turns, chat.System(system))
			}
			turns = append(turns, chat.Human(args[0]))

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			stop, _ := cmd.Flags().GetStringArray("stop")
			opts := []provider.CallOption{provider.WithStop(stop...)}

			if streaming, _ := cmd.Flags().GetBool("stream"); streaming {
				deltas, err := client.Stream(ctx, turns, opts...)
				if err != nil {
					return err
				}
				for d := range deltas {
					if d.Err != nil {
						fmt.Println()
						return d.Err
					}
					fmt.Print(d.Text)
				}
				fmt.Println()
				return nil
			}

			text, err := client.Complete(ctx, turns, opts...)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	cmd.Flags().String("system", "", "System prompt to prepend")
	cmd.Flags().Bool("stream", false, "Stream the response as it is generated")
	cmd.Flags().StringArray("stop", nil, "Stop sequence (repeatable)")
	cmd.Flags().String("model", "", "Override the configured model")
	cmd.Flags().String("base-url", "", "Override the configured base URL")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			client, err := openaicompat.New(cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Configuration OK (model: %s)\n", client.ModelName())
			return nil
		},
	})
	return cmd
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (openaicompat.Config, error) {
	var cfg openaicompat.Config

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Model = model
	}
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return cfg, nil
}
