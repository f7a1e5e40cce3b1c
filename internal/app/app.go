// Package app provides the translate command: argument handling, language
// validation, and printing of translated segments.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalyx/translate/internal/language"
	"github.com/robalyx/translate/internal/setup"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var (
	// ErrValidation is returned when the arguments are rejected before any request is sent.
	ErrValidation = errors.New("invalid arguments")
	// ErrTextRequired is returned when no text is given and --list is not set.
	ErrTextRequired = fmt.Errorf("%w: text to translate is required", ErrValidation)
)

// Options configures the command.
type Options struct {
	Out     io.Writer // Translations and the language table
	Err     io.Writer // Log output
	Factory Factory   // Translator constructor, nil to build from config
	Setup   setup.Options
}

// NewCommand builds the translate command.
func NewCommand(opts Options) *cli.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	return &cli.Command{
		Name:            "translate",
		Usage:           "Translate text with Google Translate",
		ArgsUsage:       "TEXT...",
		Writer:          opts.Out,
		ErrWriter:       opts.Err,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Value:   language.Auto,
				Usage:   "Source language used when re-translating (e.g. en, zh-CN, auto)",
			},
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Value:   language.Auto,
				Usage:   "Target language (e.g. en, zh-CN, auto)",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List supported languages",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Directory containing translate.toml",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout, overrides the config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error), overrides the config file",
			},
			&cli.StringFlag{
				Name:  "log-dir",
				Usage: "Directory for session log files",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(ctx, c, opts)
		},
	}
}

// run executes the command once flags are parsed.
func run(ctx context.Context, c *cli.Command, opts Options) error {
	if c.Bool("list") {
		return language.WriteTable(opts.Out)
	}

	if c.Args().Len() == 0 {
		return ErrTextRequired
	}

	req := Request{
		Text:   strings.Join(c.Args().Slice(), " "),
		Source: c.String("source"),
		Target: c.String("target"),
	}

	// Reject bad language codes before any request is sent
	if err := language.Validate(req.Target, "target"); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := language.Validate(req.Source, "source"); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	setupOpts := opts.Setup
	setupOpts.Console = opts.Err
	if dir := c.String("config"); dir != "" {
		setupOpts.ConfigDir = dir
	}
	if timeout := c.Duration("timeout"); timeout > 0 {
		setupOpts.Timeout = timeout
	}
	if level := c.String("log-level"); level != "" {
		setupOpts.LogLevel = level
	}
	if dir := c.String("log-dir"); dir != "" {
		setupOpts.LogDir = dir
	}

	app, err := setup.InitializeApp(setupOpts)
	if err != nil {
		return err
	}
	defer app.Cleanup()

	factory := opts.Factory
	if factory == nil {
		factory = func(lang string) Translator {
			return app.NewTranslator(lang)
		}
	}

	result, err := Translate(ctx, factory, PolicyFromConfig(app.Config), req, app.Logger)
	if err != nil {
		app.Logger.Debug("Translation failed", zap.Error(err))
		return err
	}

	for _, segment := range result.Segments {
		if _, err := fmt.Fprintln(opts.Out, segment); err != nil {
			return err
		}
	}

	return nil
}
