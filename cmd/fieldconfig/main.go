package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	fieldconfig "github.com/goliatone/go-fieldconfig"
	"github.com/goliatone/go-fieldconfig/pkg/appcontext"
	"github.com/goliatone/go-fieldconfig/pkg/defaults"
	"github.com/goliatone/go-fieldconfig/pkg/entity"
	"github.com/goliatone/go-fieldconfig/pkg/i18n"
	"github.com/goliatone/go-fieldconfig/pkg/logger"
	"github.com/goliatone/go-fieldconfig/pkg/property"
)

type options struct {
	openapi      string
	schema       string
	record       string
	translations string
	config       string
	action       string
	verbose      bool
}

// selectSchema asks the user to pick a schema. Replaced in tests.
var selectSchema = func(names []string) (string, error) {
	var out string
	prompt := &survey.Select{
		Message: "Schema:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

// interactive reports whether stdin is a terminal. Replaced in tests.
var interactive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("fieldconfig: %v", err)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("fieldconfig", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.openapi, "openapi", "", "OpenAPI document describing the entities")
	fs.StringVar(&opts.schema, "schema", "", "component schema to configure (prompted when empty)")
	fs.StringVar(&opts.record, "record", "", "JSON record used as the entity instance")
	fs.StringVar(&opts.translations, "translations", "", "directory of <domain>.<locale>.yaml catalogs")
	fs.StringVar(&opts.config, "config", "", "YAML/JSON application config with property overrides")
	fs.StringVar(&opts.action, "action", property.ActionIndex, "action being rendered (index, detail, edit, new)")
	fs.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if strings.TrimSpace(opts.openapi) == "" {
		return opts, errors.New("-openapi is required")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logCfg := logger.Config{Level: "warn"}
	if opts.verbose {
		logCfg = logger.Config{Level: "debug", Development: true}
	}
	lg, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	md, err := loadEntity(ctx, opts)
	if err != nil {
		return err
	}

	app, overrides, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	lg.Debug("application context ready",
		zap.String("domain", app.TranslationDomain()),
		zap.String("locale", app.Locale()),
		zap.Strings("templates", app.TemplateKeys()),
	)

	resolverOpts := []defaults.Option{
		defaults.WithAppContext(app),
		defaults.WithLogger(lg),
		defaults.WithHelpSanitizer(defaults.HTMLHelpSanitizer()),
	}
	if opts.translations != "" {
		catalog, err := i18n.LoadFS(os.DirFS(opts.translations), app.Locale())
		if err != nil {
			return err
		}
		lg.Debug("translations loaded", zap.String("locale", catalog.Locale()), zap.Strings("domains", catalog.Domains()))
		resolverOpts = append(resolverOpts, defaults.WithTranslator(catalog))
	}

	configs, err := fieldconfig.ConfigureEntity(ctx, opts.action, md, overrides, resolverOpts...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(configs)
}

func loadEntity(ctx context.Context, opts options) (*entity.Dto, error) {
	data, err := os.ReadFile(opts.openapi)
	if err != nil {
		return nil, fmt.Errorf("read openapi: %w", err)
	}
	doc, err := entity.LoadOpenAPI(ctx, data)
	if err != nil {
		return nil, err
	}

	schema := strings.TrimSpace(opts.schema)
	if schema == "" {
		names := doc.SchemaNames()
		if len(names) == 0 {
			return nil, errors.New("openapi document has no component schemas")
		}
		if !interactive() {
			return nil, fmt.Errorf("-schema is required (available: %s)", strings.Join(names, ", "))
		}
		if schema, err = selectSchema(names); err != nil {
			return nil, fmt.Errorf("select schema: %w", err)
		}
	}

	var instance any
	if opts.record != "" {
		raw, err := os.ReadFile(opts.record)
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		var record map[string]any
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		instance = record
	}
	return doc.Entity(schema, instance)
}

func loadConfig(path string) (*appcontext.App, property.Overrides, error) {
	if path == "" {
		app, err := appcontext.New()
		return app, nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := appcontext.LoadConfig(raw)
	if err != nil {
		return nil, nil, err
	}
	app, err := appcontext.FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	overrides, err := property.LoadOverrides(raw)
	if err != nil {
		return nil, nil, err
	}
	return app, overrides, nil
}
