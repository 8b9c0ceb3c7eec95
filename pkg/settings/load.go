package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/roadmap/pkg/errors"
)

// FileNames are the settings files [Find] looks for, in order.
var FileNames = []string{
	"roadmap.toml",
	"roadmap.yaml",
	"roadmap.yml",
	"roadmap.jsonc",
	"roadmap.json",
}

// Find returns the first settings file from [FileNames] present in dir.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load reads a settings file over [Default]. The format follows the file
// extension: .toml, .yaml/.yml, or .json/.jsonc (comments and trailing
// commas allowed).
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Settings{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	s, err := Decode(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "settings file %s", path)
	}
	return s, nil
}

// Decode parses data in the format named by ext (".toml", ".yaml", ".json"
// and their variants) over [Default].
func Decode(data []byte, ext string) (Settings, error) {
	s := Default()
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &s); err != nil {
			return Settings{}, fmt.Errorf("invalid TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("invalid YAML: %w", err)
		}
	case ".json", ".jsonc", "":
		std, err := hujson.Standardize(data)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid JSONC: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(std))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return Settings{}, fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", ext)
	}
	return s, nil
}

// Encode writes s in the format named by ext.
func Encode(s Settings, ext string) ([]byte, error) {
	switch ext {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case ".yaml", ".yml":
		return yaml.Marshal(s)
	case ".json", ".jsonc", "":
		return json.MarshalIndent(s, "", "  ")
	}
	return nil, fmt.Errorf("unsupported settings format %q", ext)
}
