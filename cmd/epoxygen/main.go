// epoxygen generates JSON binders for the annotated struct types of a Go package.
//
// Usage:
//
//	epoxygen [flags] [package directory]
//
// Every struct with at least one `epoxy` tagged field gets a <type>_epoxy.go file
// with a binder registered with the epoxy runtime; enum registrations go to enums_epoxy.go.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/viant/epoxy/codegen"
	"github.com/viant/epoxy/codegen/loader"
)

// errGenerate signals that diagnostics were already reported.
var errGenerate = errors.New("generation failed")

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, errGenerate) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	var (
		configPath string
		verbose    bool
		dryRun     bool
		overrides  codegen.Config
	)
	flagSet := pflag.NewFlagSet("epoxygen", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flagSet.StringVar(&overrides.Tag, "tag", "", "struct tag key marking bound fields (default epoxy)")
	flagSet.StringSliceVar(&overrides.OptionalMarkers, "optional", nil, "names marking a field optional (default optional,nullable)")
	flagSet.StringVar(&overrides.CaseFormat, "case-format", "", "case format of JSON keys of untagged names, e.g. lowerCamel")
	flagSet.StringVar(&overrides.Suffix, "suffix", "", "binder type name suffix (default JSONBinder)")
	flagSet.StringVar(&overrides.FileSuffix, "file-suffix", "", "generated file name suffix (default _epoxy.go)")
	flagSet.StringSliceVar(&overrides.Types, "types", nil, "host types to generate, all annotated types when empty")
	flagSet.IntVar(&overrides.Workers, "workers", 0, "concurrent file emitters")
	flagSet.BoolVar(&dryRun, "dry-run", false, "report generated files without writing them")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log every generated file")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flagSet.NArg() > 1 {
		return fmt.Errorf("expected at most one package directory but had %d", flagSet.NArg())
	}
	dir := "."
	if flagSet.NArg() == 1 {
		dir = flagSet.Arg(0)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	config, err := loadConfig(configPath, &overrides)
	if err != nil {
		return err
	}
	source, err := loader.Load(dir, config)
	if err != nil {
		return err
	}
	generator := codegen.New(config, logger)
	result := generator.Generate(source)
	for _, diagnostic := range result.Diagnostics {
		logger.Error("failed to bind", "host", diagnostic.Host, "field", diagnostic.Field, "error", diagnostic.Message)
	}
	if dryRun {
		for _, file := range result.Files {
			logger.Warn("dry run", "file", file.Name, "bytes", len(file.Content))
		}
	} else {
		result.Diagnostics = append(result.Diagnostics, generator.Write(result, codegen.DirWriter(source.Dir))...)
	}
	if result.HasErrors() {
		return errGenerate
	}
	return nil
}

// loadConfig reads the configuration file, if any, and applies flag overrides.
func loadConfig(location string, overrides *codegen.Config) (*codegen.Config, error) {
	config := &codegen.Config{}
	if location != "" {
		var err error
		if config, err = codegen.LoadConfig(location); err != nil {
			return nil, err
		}
	}
	if overrides.Tag != "" {
		config.Tag = overrides.Tag
	}
	if len(overrides.OptionalMarkers) > 0 {
		config.OptionalMarkers = overrides.OptionalMarkers
	}
	if overrides.CaseFormat != "" {
		config.CaseFormat = overrides.CaseFormat
	}
	if overrides.Suffix != "" {
		config.Suffix = overrides.Suffix
	}
	if overrides.FileSuffix != "" {
		config.FileSuffix = overrides.FileSuffix
		config.EnumFile = ""
	}
	if len(overrides.Types) > 0 {
		config.Types = overrides.Types
	}
	if overrides.Workers > 0 {
		config.Workers = overrides.Workers
	}
	config.Init()
	return config, config.Validate()
}
