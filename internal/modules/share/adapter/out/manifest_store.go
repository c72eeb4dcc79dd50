package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"audiomark/internal/modules/share/domain"
	shareout "audiomark/internal/modules/share/port/out"
)

const manifestSchemaURL = "plugins.schema.json"

const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "additionalProperties": false,
    "required": ["name", "version", "binary", "sha256", "enabled"],
    "properties": {
      "name": {"type": "string", "pattern": "^[a-z0-9][a-z0-9_-]*$"},
      "version": {"type": "string", "minLength": 1},
      "binary": {"type": "string", "minLength": 1},
      "sha256": {"type": "string", "pattern": "^[a-f0-9]{64}$"},
      "enabled": {"type": "boolean"},
      "label": {"type": "string"}
    }
  }
}`

type FileManifestStore struct {
	dir    string
	path   string
	schema *jsonschema.Schema
}

func NewFileManifestStore(pluginsDir string) (shareout.ManifestStore, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(manifestSchemaURL, strings.NewReader(manifestSchema)); err != nil {
		return nil, fmt.Errorf("add manifest schema: %w", err)
	}
	schema, err := compiler.Compile(manifestSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}
	return &FileManifestStore{dir: pluginsDir, path: filepath.Join(pluginsDir, "plugins.json"), schema: schema}, nil
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugin manifest store: %w", err)
	}
	var instance any
	if err := json.Unmarshal(b, &instance); err != nil {
		return nil, fmt.Errorf("parse plugin manifests: %w", err)
	}
	if err := s.schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("plugin manifests do not match schema: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.dir, manifests[i].Binary))
		}
	}
	return manifests, nil
}
