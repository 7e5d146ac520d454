// framectl builds, encodes, decodes and validates STOMP frames.
//
//	framectl encode   --frame send.toml [--escape] [--shapes shapes.toml]
//	framectl validate --frame send.toml [--shapes shapes.toml]
//	framectl decode   [--unescape] [--validate] < frames.bin
//
// Without --shapes, frames are checked against the built-in STOMP 1.2
// shapes for their command.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/danmuck/stompframe/internal/config"
	"github.com/danmuck/stompframe/internal/logging"
	"github.com/danmuck/stompframe/internal/protocol/frame"
	"github.com/danmuck/stompframe/internal/protocol/schema"
	"github.com/rs/zerolog/log"
)

type exitError struct {
	code int
	msg  string
}

func (e exitError) Error() string { return e.msg }
func (e exitError) ExitCode() int { return e.code }

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: framectl encode|decode|validate [flags]")
	}
	switch args[0] {
	case "encode":
		return runEncode(args[1:], stdout)
	case "decode":
		return runDecode(args[1:], stdin, stdout)
	case "validate":
		return runValidate(args[1:], stdout)
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

type shapeFlags struct {
	path   string
	shapes map[string]schema.Shape
}

func (s *shapeFlags) add(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&s.path, "shapes", "", "shape description file (toml, yaml or jsonc)")
}

func (s *shapeFlags) load() error {
	if s.path == "" {
		return nil
	}
	shapes, err := config.LoadShapes(s.path)
	if err != nil {
		return err
	}
	s.shapes = shapes
	return nil
}

func (s *shapeFlags) validate(fr *frame.Frame) schema.Result {
	if s.shapes == nil {
		return schema.ValidateStandard(fr)
	}
	shape, ok := s.shapes[fr.Command]
	if !ok {
		// Commands without a configured shape carry no header constraints.
		return schema.Validate(fr, schema.Shape{})
	}
	return schema.Validate(fr, shape)
}

func runEncode(args []string, stdout io.Writer) error {
	var (
		framePath string
		escape    bool
		skipCheck bool
		shapes    shapeFlags
	)
	flagSet := pflag.NewFlagSet("framectl encode", pflag.ContinueOnError)
	flagSet.StringVar(&framePath, "frame", "", "frame description file (toml, yaml or jsonc)")
	flagSet.BoolVar(&escape, "escape", false, "escape header names and values (STOMP 1.2)")
	flagSet.BoolVar(&skipCheck, "no-validate", false, "encode without validating")
	shapes.add(flagSet)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if framePath == "" {
		return errors.New("encode: --frame is required")
	}
	if err := shapes.load(); err != nil {
		return err
	}
	fr, err := config.LoadFrame(framePath)
	if err != nil {
		return err
	}
	if !skipCheck {
		if res := shapes.validate(fr); !res.Valid {
			return exitError{code: 2, msg: res.Message}
		}
	}

	var opts []frame.EncoderOption
	if escape {
		opts = append(opts, frame.WithEscaping())
	}
	w := bufio.NewWriter(stdout)
	if err := frame.NewEncoder(w, opts...).Encode(fr); err != nil {
		return err
	}
	return w.Flush()
}

func runValidate(args []string, stdout io.Writer) error {
	var (
		framePath string
		shapes    shapeFlags
	)
	flagSet := pflag.NewFlagSet("framectl validate", pflag.ContinueOnError)
	flagSet.StringVar(&framePath, "frame", "", "frame description file (toml, yaml or jsonc)")
	shapes.add(flagSet)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if framePath == "" {
		return errors.New("validate: --frame is required")
	}
	if err := shapes.load(); err != nil {
		return err
	}
	fr, err := config.LoadFrame(framePath)
	if err != nil {
		return err
	}
	res := shapes.validate(fr)
	if !res.Valid {
		return exitError{code: 2, msg: res.Message}
	}
	fmt.Fprintf(stdout, "valid %s\n", fr)
	return nil
}

func runDecode(args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		unescape bool
		check    bool
		shapes   shapeFlags
	)
	flagSet := pflag.NewFlagSet("framectl decode", pflag.ContinueOnError)
	flagSet.BoolVar(&unescape, "unescape", false, "decode STOMP 1.2 header escapes")
	flagSet.BoolVar(&check, "validate", false, "validate each decoded frame")
	shapes.add(flagSet)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if err := shapes.load(); err != nil {
		return err
	}

	var opts []frame.ReaderOption
	if unescape {
		opts = append(opts, frame.WithUnescaping())
	}
	reader := frame.NewReader(stdin, opts...)
	invalid := 0
	for n := 0; ; n++ {
		fr, err := reader.Read()
		if errors.Is(err, io.EOF) {
			log.Info().Int("frames", n).Int("invalid", invalid).Msg("framectl decode done")
			break
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", n, err)
		}
		fmt.Fprintln(stdout, fr)
		if check {
			if res := shapes.validate(fr); !res.Valid {
				invalid++
				fmt.Fprintf(stdout, "  invalid: %s\n", res.Violation)
			}
		}
	}
	if invalid > 0 {
		return exitError{code: 2, msg: fmt.Sprintf("%d invalid frame(s)", invalid)}
	}
	return nil
}
