package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/stompframe/internal/protocol/schema"
)

// StandardShapeFile returns the built-in STOMP 1.2 shapes in file form.
func StandardShapeFile() ShapeFile {
	file := ShapeFile{}
	for _, cmd := range schema.StandardCommands() {
		shape, _ := schema.Standard(cmd)
		file.Shapes = append(file.Shapes, FromShape(cmd, shape))
	}
	return file
}

func Template(format string) ([]byte, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "yml" {
		format = FormatYAML
	}
	out, err := encode(format, StandardShapeFile())
	if err != nil {
		return nil, fmt.Errorf("shape template (%s): %w", format, err)
	}
	return out, nil
}

func WriteTemplate(path, format string, overwrite bool) error {
	template, err := Template(format)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, template, 0o600)
}
