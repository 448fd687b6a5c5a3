package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sanalabo-jp/script-to-slides/analyze"
	"github.com/sanalabo-jp/script-to-slides/config"
	"github.com/sanalabo-jp/script-to-slides/deck"
	"github.com/sanalabo-jp/script-to-slides/pptx"
	"github.com/sanalabo-jp/script-to-slides/script"
	"github.com/sanalabo-jp/script-to-slides/server"
	"github.com/sanalabo-jp/script-to-slides/template"
)

var (
	configPath string
	listenAddr string
	appVersion = "0.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "script-to-slides",
	Short: "script-to-slides – turn dialogue scripts into styled PowerPoint decks",
	Long: "Script-to-slides serves an HTTP API that extracts slide templates from\n" +
		"uploaded .pptx files and renders dialogue scripts into presentations.",
	RunE: runServe,
}

var extractCmd = &cobra.Command{
	Use:   "extract <file.pptx>",
	Short: "Extract a slide template from a pptx file and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var generateCmd = &cobra.Command{
	Use:   "generate <script file>",
	Short: "Generate a pptx deck from a script file",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var (
	generateOut      string
	generateTemplate string
)

func init() {
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides config)")

	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "deck.pptx", "Output file path")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", "blank", "Preset template id (blank, modern-dark, soft-blue)")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(generateCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		cfg.Listen = listenAddr
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var analyzer server.Analyzer
	if cfg.Analysis.Enabled {
		key := cfg.APIKey()
		if key == "" {
			logger.Warn("analysis enabled but OPENAI_API_KEY is not set, disabling")
			cfg.Analysis.Enabled = false
		} else {
			analyzer = analyze.NewClient(key, cfg.Analysis.Model)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger, analyzer).Start(ctx)
}

func runExtract(cmd *cobra.Command, args []string) error {
	result, err := pptx.ExtractFile(args[0])
	if err != nil {
		return err
	}

	if result.IsPartial {
		fmt.Fprintf(os.Stderr, "warning: partial extraction: %s\n", pptx.FormatWarnings(result.Warnings))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	parsed := script.Parse(string(content))
	if !parsed.IsValid {
		var lines []string
		for _, e := range parsed.Errors {
			lines = append(lines, fmt.Sprintf("  line %d: %s", e.Line, e.Message))
		}
		return fmt.Errorf("script did not parse (%d of %d lines valid)\n%s",
			parsed.ValidLines, parsed.TotalLines, strings.Join(lines, "\n"))
	}

	tpl := template.ByID(generateTemplate)
	if tpl == nil {
		return fmt.Errorf("unknown template id %q", generateTemplate)
	}

	data, err := deck.Generate(parsed, tpl)
	if err != nil {
		return err
	}
	if err := os.WriteFile(generateOut, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d slides)\n", generateOut, len(parsed.Slides)+1)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
