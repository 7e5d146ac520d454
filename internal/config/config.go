package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Supported description file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var ErrUnknownFormat = errors.New("config: unknown file format")

// FormatOf picks the format from the file extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

func loadFile(path string, out any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := decode(format, data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func decode(format string, data []byte, out any) error {
	switch format {
	case FormatTOML:
		return toml.Unmarshal(data, out)
	case FormatYAML:
		return yaml.Unmarshal(data, out)
	case FormatJSON:
		// Accepts // and /* */ comments and trailing commas.
		return json.Unmarshal(jsonc.ToJSON(data), out)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func encode(format string, in any) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf strings.Builder
		if err := toml.NewEncoder(&buf).Encode(in); err != nil {
			return nil, err
		}
		return []byte(buf.String()), nil
	case FormatYAML:
		return yaml.Marshal(in)
	case FormatJSON:
		out, err := json.MarshalIndent(in, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
