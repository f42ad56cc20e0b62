package repositoryimpl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// record is one task as persisted. ID is only written with stable identifiers.
type record struct {
	ID          int    `json:"id,omitempty" yaml:"id,omitempty"`
	Time        int64  `json:"time" yaml:"time"`
	Description string `json:"description" yaml:"description"`
	Status      string `json:"status" yaml:"status"`
}

type codec interface {
	decode(data []byte) ([]record, error)
	encode(records []record) ([]byte, error)
}

// codecFor picks the file format from the extension of path. JSON is the
// default.
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

const tasksSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["time", "description", "status"],
		"properties": {
			"id": {"type": "integer", "minimum": 1},
			"time": {"type": "integer"},
			"description": {"type": "string"},
			"status": {"enum": [" ", "✓"]}
		}
	}
}`

var schema = jsonschema.MustCompileString("mem://tasktrack/tasks.schema.json", tasksSchema)

type jsonCodec struct{}

func (jsonCodec) decode(data []byte) ([]record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after task list")
	}
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return records, nil
}

func (jsonCodec) encode(records []record) ([]byte, error) {
	if records == nil {
		records = []record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

type yamlCodec struct{}

// decode converts the YAML document to JSON so that it goes through the same
// schema validation as the JSON codec.
func (yamlCodec) decode(data []byte) ([]record, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML: %w", err)
	}
	return jsonCodec{}.decode(converted)
}

func (yamlCodec) encode(records []record) ([]byte, error) {
	if records == nil {
		records = []record{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}
