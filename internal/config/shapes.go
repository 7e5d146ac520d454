package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/danmuck/stompframe/internal/protocol/schema"
)

// ShapeFile is the on-disk form of a set of shapes. Rule order in the
// file is the validation order.
type ShapeFile struct {
	Shapes []ShapeConfig `toml:"shape" yaml:"shape" json:"shape"`
}

type ShapeConfig struct {
	Command string       `toml:"command" yaml:"command" json:"command"`
	Headers []RuleConfig `toml:"header" yaml:"header" json:"header"`
}

type RuleConfig struct {
	Name     string `toml:"name" yaml:"name" json:"name"`
	Required bool   `toml:"required" yaml:"required" json:"required"`
	Pattern  string `toml:"pattern,omitempty" yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// LoadShapes reads, checks and compiles a shape file into shapes keyed
// by command.
func LoadShapes(path string) (map[string]schema.Shape, error) {
	var file ShapeFile
	if err := loadFile(path, &file); err != nil {
		return nil, err
	}
	if err := ValidateShapeFile(file); err != nil {
		return nil, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return CompileShapes(file)
}

// CompileShapes converts file into schema shapes. It assumes file has
// passed ValidateShapeFile; pattern errors are still reported.
func CompileShapes(file ShapeFile) (map[string]schema.Shape, error) {
	out := make(map[string]schema.Shape, len(file.Shapes))
	for _, sc := range file.Shapes {
		rules := make([]schema.Rule, 0, len(sc.Headers))
		for _, rc := range sc.Headers {
			rule := schema.Rule{Name: rc.Name, Required: rc.Required}
			if rc.Pattern != "" {
				re, err := regexp.Compile(rc.Pattern)
				if err != nil {
					return nil, fmt.Errorf("shape %s header %s: %w", sc.Command, rc.Name, err)
				}
				rule.Pattern = re
			}
			rules = append(rules, rule)
		}
		out[sc.Command] = schema.NewShape(rules...)
	}
	return out, nil
}

func ValidateShapeFile(file ShapeFile) error {
	commands := make(map[string]struct{}, len(file.Shapes))
	for i, sc := range file.Shapes {
		if strings.TrimSpace(sc.Command) == "" {
			return fmt.Errorf("shape[%d] missing command", i)
		}
		if _, dup := commands[sc.Command]; dup {
			return fmt.Errorf("shape[%d] duplicate command %s", i, sc.Command)
		}
		commands[sc.Command] = struct{}{}
		if err := ValidateShapeEntry(sc); err != nil {
			return fmt.Errorf("shape[%d] %s invalid: %w", i, sc.Command, err)
		}
	}
	return nil
}

func ValidateShapeEntry(sc ShapeConfig) error {
	names := make(map[string]struct{}, len(sc.Headers))
	for i, rc := range sc.Headers {
		if strings.TrimSpace(rc.Name) == "" {
			return fmt.Errorf("header[%d] name is required", i)
		}
		if _, dup := names[rc.Name]; dup {
			return fmt.Errorf("header[%d] duplicate name %s", i, rc.Name)
		}
		names[rc.Name] = struct{}{}
		if rc.Pattern != "" {
			if _, err := regexp.Compile(rc.Pattern); err != nil {
				return fmt.Errorf("header[%d] %s pattern: %w", i, rc.Name, err)
			}
		}
	}
	return nil
}

// FromShape renders a compiled shape back into its file form.
func FromShape(command string, shape schema.Shape) ShapeConfig {
	sc := ShapeConfig{Command: command, Headers: make([]RuleConfig, 0, len(shape.Rules))}
	for _, rule := range shape.Rules {
		rc := RuleConfig{Name: rule.Name, Required: rule.Required}
		if rule.Pattern != nil {
			rc.Pattern = rule.Pattern.String()
		}
		sc.Headers = append(sc.Headers, rc)
	}
	return sc
}
