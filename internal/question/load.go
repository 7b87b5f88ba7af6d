package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a question bank.
type File struct {
	MultipleChoice []MultipleChoice `json:"multiple-choice" yaml:"multiple-choice"`
	Hotspot        []Hotspot        `json:"hotspot" yaml:"hotspot"`
	DragDrop       []DragDrop       `json:"drag-drop" yaml:"drag-drop"`
}

// Sets converts the file into the map accepted by NewBank.
func (f File) Sets() map[Kind][]Question {
	sets := make(map[Kind][]Question, len(AllKinds))
	for _, q := range f.MultipleChoice {
		sets[KindMultipleChoice] = append(sets[KindMultipleChoice], q)
	}
	for _, q := range f.Hotspot {
		sets[KindHotspot] = append(sets[KindHotspot], q)
	}
	for _, q := range f.DragDrop {
		sets[KindDragDrop] = append(sets[KindDragDrop], q)
	}
	return sets
}

// LoadFile reads a YAML or JSON bank file and validates it into a Bank.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	file, err := ParseFile(data, path)
	if err != nil {
		return nil, err
	}
	return NewBank(file.Sets())
}

// ParseFile decodes data, choosing the format from the path extension.
func ParseFile(data []byte, path string) (File, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSON(data)
	}
	return parseYAML(data)
}

func parseJSON(data []byte) (File, error) {
	var f File
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	return f, nil
}

func parseYAML(data []byte) (File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f, nil
}
