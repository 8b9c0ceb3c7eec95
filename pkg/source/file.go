package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/errors"
)

// File reads items from a snapshot file.
type File struct {
	Path string
}

// NewFile returns a file source.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Name returns the file path.
func (f *File) Name() string { return f.Path }

// Load reads and decodes the file.
func (f *File) Load(ctx context.Context) ([]item.Item, error) {
	recs, err := f.Records()
	if err != nil {
		return nil, err
	}
	return item.Items(recs), nil
}

// Records reads the file without converting records to items.
func (f *File) Records() ([]item.Record, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "items file %s", f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	recs, err := Decode(data, filepath.Ext(f.Path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "items file %s", f.Path)
	}
	return recs, nil
}

// Close does nothing for files.
func (f *File) Close() error { return nil }

var _ Source = (*File)(nil)

// envelope is the object form of an item file.
type envelope struct {
	Items []item.Record `json:"items" yaml:"items" toml:"items"`
}

// Decode parses records in the format named by ext.
func Decode(data []byte, ext string) ([]item.Record, error) {
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".toml":
		var env envelope
		if _, err := toml.Decode(string(data), &env); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		return env.Items, nil
	case ".csv":
		return decodeCSV(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

func decodeJSON(data []byte) ([]item.Record, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	std = bytes.TrimSpace(std)
	if len(std) > 0 && std[0] == '{' {
		var env envelope
		if err := json.Unmarshal(std, &env); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return env.Items, nil
	}
	var recs []item.Record
	if err := json.Unmarshal(std, &recs); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return recs, nil
}

func decodeYAML(data []byte) ([]item.Record, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.MappingNode {
		var env envelope
		if err := node.Decode(&env); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return env.Items, nil
	}
	var recs []item.Record
	if err := node.Decode(&recs); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return recs, nil
}

// csvColumns maps normalized header names to record setters.
var csvColumns = map[string]func(*item.Record, string){
	"id": func(r *item.Record, v string) {
		r.ID, _ = strconv.Atoi(strings.TrimSpace(v))
	},
	"title":         func(r *item.Record, v string) { r.Title = v },
	"type":          func(r *item.Record, v string) { r.Type = v },
	"workitemtype":  func(r *item.Record, v string) { r.Type = v },
	"state":         func(r *item.Record, v string) { r.State = v },
	"startdate":     func(r *item.Record, v string) { r.StartDate = v },
	"start":         func(r *item.Record, v string) { r.StartDate = v },
	"targetdate":    func(r *item.Record, v string) { r.TargetDate = v },
	"target":        func(r *item.Record, v string) { r.TargetDate = v },
	"parentid":      func(r *item.Record, v string) { r.ParentID = v },
	"parent":        func(r *item.Record, v string) { r.ParentID = v },
	"predecessorid": func(r *item.Record, v string) { r.Predecessor = v },
	"predecessor":   func(r *item.Record, v string) { r.Predecessor = v },
	"area":          func(r *item.Record, v string) { r.Area = v },
	"areapath":      func(r *item.Record, v string) { r.Area = v },
	"iteration":     func(r *item.Record, v string) { r.Iteration = v },
	"iterationpath": func(r *item.Record, v string) { r.Iteration = v },
	"assignedto":    func(r *item.Record, v string) { r.AssignedTo = v },
	"assignee":      func(r *item.Record, v string) { r.AssignedTo = v },
	"priority":      func(r *item.Record, v string) { r.Priority = v },
	"tags": func(r *item.Record, v string) {
		if v != "" {
			r.Tags = []string{v}
		}
	},
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(h)
}

func decodeCSV(r io.Reader) ([]item.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}
	setters := make([]func(*item.Record, string), len(header))
	for i, h := range header {
		setters[i] = csvColumns[normalizeHeader(h)]
	}

	var recs []item.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid CSV: %w", err)
		}
		var rec item.Record
		for i, v := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&rec, v)
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Encode writes records in the format named by ext. CSV is not supported
// for output.
func Encode(recs []item.Record, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		return json.MarshalIndent(recs, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(envelope{Items: recs})
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(envelope{Items: recs}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}
