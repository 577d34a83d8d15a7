package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed save.schema.json
var saveSchemaJSON string

var saveSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("save.schema.json", bytes.NewReader([]byte(saveSchemaJSON))); err != nil {
		panic(fmt.Sprintf("snapshot: add schema resource: %v", err))
	}
	return c.MustCompile("save.schema.json")
}

// Encode renders a save as indented JSON, the shape the "download as JSON"
// collaborator ships to the player.
func Encode(save SaveV1) ([]byte, error) {
	return json.MarshalIndent(save, "", "  ")
}

// Decode parses and schema-validates a save file. Saves are user-supplied
// input, so structural garbage is rejected here before the engine ever sees
// it; rule-level consistency (occupancy, ownership) is the restore path's
// job.
func Decode(raw []byte) (SaveV1, error) {
	var save SaveV1

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return save, fmt.Errorf("save file is not valid JSON: %w", err)
	}
	if err := saveSchema.Validate(doc); err != nil {
		return save, fmt.Errorf("save file rejected by schema: %w", err)
	}
	if err := json.Unmarshal(raw, &save); err != nil {
		return save, err
	}
	return save, nil
}

// WriteFile writes a save to disk, creating parent directories as needed.
func WriteFile(path string, save SaveV1) error {
	raw, err := Encode(save)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// ReadFile loads and validates a save from disk.
func ReadFile(path string) (SaveV1, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SaveV1{}, err
	}
	return Decode(raw)
}
