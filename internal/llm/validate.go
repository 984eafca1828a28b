package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemas holds compiled schemas by Schema.Name.
var schemas = struct {
	sync.Mutex
	byName map[string]*jsonschema.Schema
}{byName: make(map[string]*jsonschema.Schema)}

// decodeStructured checks model output against schema and returns the JSON
// document it carries. Models sometimes wrap the object in a markdown code
// fence or a sentence; only the outermost {...} is kept. Output without a
// schema is returned unchanged.
func decodeStructured(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	if schema == nil {
		return raw, nil
	}

	doc := extractObject(raw)
	var parsed any
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("does not match %s: %w", schema.Name, err)}
	}
	return doc, nil
}

func extractObject(raw []byte) []byte {
	start := bytes.IndexByte(raw, '{')
	end := bytes.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return bytes.TrimSpace(raw)
	}
	return raw[start : end+1]
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	schemas.Lock()
	defer schemas.Unlock()

	if s, ok := schemas.byName[schema.Name]; ok {
		return s, nil
	}
	if schema.Name == "" {
		return nil, errors.New("schema has no name")
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	var doc any
	if err := json.Unmarshal(def, &doc); err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}

	url := "mem://prepdeck/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	schemas.byName[schema.Name] = s
	return s, nil
}
