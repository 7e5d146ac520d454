package config

import (
	"fmt"
	"strings"

	"github.com/danmuck/stompframe/internal/protocol/frame"
)

// FrameFile describes one frame to build. Header order in the file is
// the wire order.
type FrameFile struct {
	Command string         `toml:"command" yaml:"command" json:"command"`
	Headers []HeaderConfig `toml:"header" yaml:"header" json:"header"`
	Body    string         `toml:"body" yaml:"body" json:"body"`
}

type HeaderConfig struct {
	Name  string `toml:"name" yaml:"name" json:"name"`
	Value string `toml:"value" yaml:"value" json:"value"`
}

func LoadFrame(path string) (*frame.Frame, error) {
	var file FrameFile
	if err := loadFile(path, &file); err != nil {
		return nil, err
	}
	if err := ValidateFrameFile(file); err != nil {
		return nil, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return file.Frame(), nil
}

func ValidateFrameFile(file FrameFile) error {
	if strings.TrimSpace(file.Command) == "" {
		return fmt.Errorf("frame missing command")
	}
	for i, h := range file.Headers {
		if h.Name == "" {
			return fmt.Errorf("header[%d] name is required", i)
		}
	}
	return nil
}

func (f FrameFile) Frame() *frame.Frame {
	header := frame.NewHeader()
	for _, h := range f.Headers {
		header.Set(h.Name, h.Value)
	}
	return frame.New(f.Command, header, []byte(f.Body))
}
