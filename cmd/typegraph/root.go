package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/mod/modfile"

	"typegraph/internal/analyze"
	"typegraph/internal/common"
	"typegraph/internal/config"
	"typegraph/internal/introspect"
)

// options holds the command-line flags.
type options struct {
	configPath string
	packages   []string
	manifest   string
	dir        string
	shallow    bool
	logLevel   string
	format     string
	short      bool
	trimModule bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "typegraph [ROOT...]",
		Short: "Analyse the type graph reachable from root types",
		Long: `Analyse classes and interfaces reachable from the given root types and
print one descriptor per discovered type.

Types come from Go packages (structs are classes, exported fields are
properties) or from a YAML manifest. Doc comment tags (@property, @var,
@param, @return, @link) take precedence over structural types.

Examples:
  typegraph --pkg ./examples/... geometry.Polygon
  typegraph --pkg ./examples/graph --shallow --format yaml graph.Node
  typegraph --manifest types.yaml Point
  typegraph --config typegraph.yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}

			return run(cmd, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringSliceVarP(&opts.packages, "pkg", "p", nil, "Go package patterns to load")
	flags.StringVarP(&opts.manifest, "manifest", "m", "", "YAML type manifest to load instead of packages")
	flags.StringVar(&opts.dir, "dir", "", "directory package patterns are resolved from")
	flags.BoolVar(&opts.shallow, "shallow", false, "do not analyse member types")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&opts.format, "format", "f", "", "output format (text, yaml)")
	flags.BoolVar(&opts.short, "short", false, "print package aliases instead of import paths")
	flags.BoolVar(&opts.trimModule, "trim-module", false, "strip the module path read from go.mod")

	return cmd
}

// resolve loads the configuration file, if any, and applies flag overrides.
func (o *options) resolve(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if o.configPath != "" {
		loaded, err := config.LoadFile(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("pkg") {
		cfg.Packages = o.packages
	}
	if flags.Changed("manifest") {
		cfg.Manifest = o.manifest
	}
	if flags.Changed("dir") {
		cfg.Dir = o.dir
	}
	if flags.Changed("shallow") {
		deep := !o.shallow
		cfg.Deep = &deep
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if len(args) > 0 {
		cfg.Roots = args
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	src, err := openSource(cfg)
	if err != nil {
		return err
	}

	logger.Info("analysing",
		slog.Int("roots", len(cfg.Roots)),
		slog.Bool("deep", cfg.IsDeep()))

	a := analyze.New(src, analyze.WithLogger(logger))

	var analyseErr error
	if cfg.IsDeep() {
		analyseErr = a.Analyse(cfg.Roots...)
	} else {
		analyseErr = a.AnalyseShallow(cfg.Roots...)
	}

	rename, err := opts.renamer(cfg)
	if err != nil {
		return err
	}

	descs, err := renameAll(a.Descriptors(), rename)
	if err != nil {
		return err
	}

	switch cfg.Format {
	case config.FormatYAML:
		err = printYAML(cmd.OutOrStdout(), descs)
	default:
		printText(cmd.OutOrStdout(), descs)
	}
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), a.Diagnostics())

	return analyseErr
}

// openSource builds the introspection host named by cfg.
func openSource(cfg *config.Config) (analyze.Source, error) {
	if cfg.Manifest != "" {
		return introspect.LoadManifest(cfg.Manifest)
	}

	return introspect.LoadPackagesFrom(cfg.Dir, cfg.Packages...)
}

// renamer returns the function applied to every type name before printing.
func (o *options) renamer(cfg *config.Config) (func(string) string, error) {
	if o.short {
		return common.ShortName, nil
	}

	if !o.trimModule {
		return nil, nil
	}

	module, err := readModulePath(filepath.Join(cfg.Dir, "go.mod"))
	if err != nil {
		return nil, err
	}

	return func(name string) string { return common.TrimModule(name, module) }, nil
}

// readModulePath returns the module path declared by a go.mod file.
func readModulePath(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod file: %w", err)
	}

	module := modfile.ModulePath(content)
	if module == "" {
		return "", fmt.Errorf("no module declaration found in %s", path)
	}

	return module, nil
}
