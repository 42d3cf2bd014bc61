package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects one of the script serialization front-ends.
type Format int

const (
	FormatTOML Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("format %d", int(f))
}

// ParseFormat maps a format name (as given on the command line) to a
// Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("invalid script format %q", name)
}

// DetectFormat infers the script format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unknown script file extension %q", filepath.Ext(path))
}

// Load reads a script file, inferring the format from its extension.
func Load(path string) (*Script, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return LoadFormat(path, format)
}

// LoadFormat reads a script file in the given format.
func LoadFormat(path string, format Format) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script file: %w", err)
	}

	m := map[string]any{}
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	case FormatJSON:
		err = json.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("invalid script format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s script %s: %w", format, path, err)
	}
	return FromMap(m)
}

// Save writes the script to path, inferring the format from its extension.
func (s *Script) Save(path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	return s.SaveFormat(path, format)
}

// SaveFormat writes the script to path in the given format.
func (s *Script) SaveFormat(path string, format Format) error {
	m := s.toMap()

	var data []byte
	var err error
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(m)
		data = buf.Bytes()
	case FormatJSON:
		data, err = json.MarshalIndent(m, "", "    ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(m)
	default:
		return fmt.Errorf("invalid script format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s script: %w", format, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing script file: %w", err)
	}
	return nil
}
