package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/danmuck/stompframe/internal/config"
	"github.com/danmuck/stompframe/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("configgen", pflag.ContinueOnError)
	format := flagSet.String("format", config.FormatTOML, "template format: toml|yaml|json")
	output := flagSet.String("output", "", "output path for shape template")
	validate := flagSet.Bool("validate", false, "validate an existing shape file")
	input := flagSet.String("input", "", "shape file path for validation (defaults to shapes.<format>)")
	force := flagSet.Bool("force", false, "overwrite existing shape file")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *validate {
		path := *input
		if path == "" {
			path = "shapes." + *format
		}
		shapes, err := config.LoadShapes(path)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Int("shapes", len(shapes)).Msg("validated shape file")
		return nil
	}

	target := *output
	if target == "" {
		target = "shapes." + *format
	}
	if err := config.WriteTemplate(target, *format, *force); err != nil {
		return err
	}
	log.Info().Str("path", target).Str("format", *format).Msg("wrote shape template")
	return nil
}
