package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"boxlayout/internal/config"
	"boxlayout/pkg/boxlayout"
)

// options holds the values of the persistent flags
type options struct {
	configFile string
	htmlFile   string
	cssFile    string

	fragment       bool
	keepWhitespace bool
	logLevel       string
	logFile        string
	format         string

	x, y, width, height float64
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "boxlayout",
		Short:         "Style an HTML document with CSS and compute its block layout",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	def := config.Default()
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file")
	pf.StringVar(&opts.htmlFile, "html", "-", "HTML input file, - for stdin")
	pf.StringVar(&opts.cssFile, "css", "", "CSS input file (default: the document's <style> elements)")
	pf.BoolVar(&opts.fragment, "fragment", def.Input.Fragment, "Parse the input as an HTML fragment")
	pf.BoolVar(&opts.keepWhitespace, "keep-whitespace", def.Input.KeepWhitespace, "Keep whitespace-only text nodes")
	pf.StringVar(&opts.logLevel, "log-level", def.Logging.Level, "Log level (none, normal, debug)")
	pf.StringVar(&opts.logFile, "log-file", def.Logging.File, "Also write JSON logs to this file")
	pf.StringVarP(&opts.format, "format", "f", def.Output.Format, "Output format (text, json)")
	pf.Float64Var(&opts.x, "x", def.Viewport.X, "Viewport x")
	pf.Float64Var(&opts.y, "y", def.Viewport.Y, "Viewport y")
	pf.Float64Var(&opts.width, "width", def.Viewport.Width, "Viewport width")
	pf.Float64Var(&opts.height, "height", def.Viewport.Height, "Viewport height")

	root.AddCommand(
		newLayoutCommand(opts),
		newPaintCommand(opts),
		newStylesCommand(opts),
	)
	return root
}

// buildConfig loads the configuration file, if any, and applies the flags the
// user set explicitly on top of it.
func (o *options) buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		loaded, err := config.Load(o.configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fragment") {
		cfg.Input.Fragment = o.fragment
	}
	if flags.Changed("keep-whitespace") {
		cfg.Input.KeepWhitespace = o.keepWhitespace
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = o.logFile
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("x") {
		cfg.Viewport.X = o.x
	}
	if flags.Changed("y") {
		cfg.Viewport.Y = o.y
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = o.height
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// render builds the configuration and logger and runs the pipeline over the inputs
func (o *options) render(cmd *cobra.Command) (*boxlayout.Result, config.Config, error) {
	cfg, err := o.buildConfig(cmd)
	if err != nil {
		return nil, config.Config{}, err
	}

	log, err := cfg.Logging.Prepare()
	if err != nil {
		return nil, config.Config{}, err
	}
	defer func() { _ = log.Sync() }()

	htmlSrc, err := readInput(cmd.InOrStdin(), o.htmlFile)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("failed to read HTML: %w", err)
	}
	var cssSrc string
	if o.cssFile != "" {
		if cssSrc, err = readInput(cmd.InOrStdin(), o.cssFile); err != nil {
			return nil, config.Config{}, fmt.Errorf("failed to read CSS: %w", err)
		}
	}

	log.Debug("Rendering", zap.String("html", o.htmlFile), zap.String("css", o.cssFile),
		zap.Float64("width", cfg.Viewport.Width), zap.Float64("height", cfg.Viewport.Height))

	result, err := boxlayout.New(cfg, log).Render(htmlSrc, cssSrc)
	if err != nil {
		return nil, config.Config{}, err
	}
	return result, cfg, nil
}

// readInput reads a named file, or stdin when name is "-"
func readInput(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}
