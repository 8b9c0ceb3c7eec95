package frame

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
)

// Marshal serializes a Frame to pretty-printed JSON bytes.
func Marshal(f Frame) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Frame.
// Frames from a newer format version are rejected.
func Unmarshal(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("unmarshal frame: %w", err)
	}
	if f.Version == 0 {
		f.Version = Version
	}
	if f.Version > Version {
		return Frame{}, fmt.Errorf("frame version %d is newer than supported version %d", f.Version, Version)
	}
	return f, nil
}

// Write writes a Frame as JSON to w.
func Write(f Frame, w io.Writer) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Read reads a Frame from r.
func Read(r io.Reader) (Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Frame{}, err
	}
	return Unmarshal(data)
}

// WriteFile writes a Frame to a JSON file. The file is replaced atomically,
// so readers see either the old frame or the new one.
func WriteFile(f Frame, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(append(data, '\n')))
}

// ReadFile reads a Frame from a JSON file.
func ReadFile(path string) (Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Frame{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
