package commands

// Root command for Cobra CLI
// chart-render <config_path> <output_path> renders a Chart.js file to PNG
// and, when Telegram settings are present, sends the image to a chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"chart-render/internal/config"
	"chart-render/internal/delivery/telegram"
	"chart-render/internal/features/chart_render"
	logging "chart-render/internal/infra/log"
	"chart-render/internal/plot"
	"chart-render/internal/plot/raster"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const usageLine = "Usage: chart-render <config_path> <output_path>"

// errReported marks failures whose message was already printed.
var errReported = errors.New("failure already reported")

// NewRootCmd builds the command. Result lines go to stdout, usage and errors to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:   "chart-render <config_path> <output_path>",
		Short: "Render a Chart.js configuration file to a PNG image",
		Long: `chart-render reads a Chart.js JSON configuration (bar, line, scatter or pie),
draws it as a 1200x800 PNG in a white plot theme and writes it to the output path.
With a Telegram bot token and chat id configured, the image is also sent to that chat.`,
		Version:       "1.0.0",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				fmt.Fprintln(stderr, usageLine)
				return errReported
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logging.Init(logging.Options{
				File:    loaded.Log.File,
				Verbose: loaded.Log.Verbose,
				Console: stderr,
			}); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logging.Sync()
			return run(cmd.Context(), cfg, args[0], args[1], stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func run(ctx context.Context, cfg *config.Config, inputPath, outputPath string, stdout, stderr io.Writer) error {
	fonts, err := raster.LoadFonts(cfg.Render.FontPaths)
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering chart: %v\n", err)
		return errReported
	}
	fontPath := fonts.Path()
	if fontPath == "" {
		fontPath = "embedded"
	}
	logging.LogDebug("Renderer ready",
		zap.String("font", fontPath),
		zap.Float64("scale", cfg.Render.Scale))

	rr, err := raster.New(raster.Options{Scale: cfg.Render.Scale, Fonts: fonts})
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering chart: %v\n", err)
		return errReported
	}

	fig, err := chart_render.NewRenderer(rr, stdout, stderr).Export(inputPath, outputPath)
	if err != nil {
		return errReported
	}

	if !cfg.Telegram.Enabled() {
		return nil
	}
	if err := deliver(ctx, cfg.Telegram, fig, outputPath); err != nil {
		fmt.Fprintf(stderr, "Error delivering chart: %v\n", err)
		return errReported
	}
	return nil
}

func deliver(ctx context.Context, cfg config.TelegramConfig, fig *plot.Figure, path string) error {
	bot, err := telegram.NewBot(cfg)
	if err != nil {
		return err
	}
	client, err := telegram.NewClient(bot, cfg)
	if err != nil {
		return err
	}

	caption := cfg.Caption
	if caption == "" {
		caption = fig.Layout.Title
	}
	return client.SendChart(ctx, path, caption)
}

// ExecuteArgs runs the command with args (without the program name) and returns the exit code.
func ExecuteArgs(args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// cobra falls back to os.Args for a nil slice
	if args == nil {
		args = []string{}
	}

	cmd := NewRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			logging.LogInfo("Command failed", zap.Error(err))
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func Execute() int {
	return ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr)
}
