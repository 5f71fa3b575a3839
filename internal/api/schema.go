package api

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const schemaBaseURL = "https://achievediary.local/schemas/"

// Response contracts the client checks before decoding.
const (
	schemaAchievement = "achievement.schema.json"
	schemaPage        = "page.schema.json"
	schemaAwards      = "awards.schema.json"
	schemaStats       = "stats.schema.json"
	schemaLevel       = "level.schema.json"
	schemaExists      = "exists.schema.json"
)

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		entries, err := schemaFS.ReadDir("schemas")
		if err != nil {
			schemasErr = fmt.Errorf("failed to read embedded schemas: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		for _, e := range entries {
			data, err := schemaFS.ReadFile("schemas/" + e.Name())
			if err != nil {
				schemasErr = fmt.Errorf("failed to read schema %s: %w", e.Name(), err)
				return
			}
			if err := c.AddResource(schemaBaseURL+e.Name(), bytes.NewReader(data)); err != nil {
				schemasErr = fmt.Errorf("failed to add schema %s: %w", e.Name(), err)
				return
			}
		}

		compiled := make(map[string]*jsonschema.Schema, len(entries))
		for _, e := range entries {
			s, err := c.Compile(schemaBaseURL + e.Name())
			if err != nil {
				schemasErr = fmt.Errorf("compile %s: %w", e.Name(), err)
				return
			}
			compiled[e.Name()] = s
		}
		schemas = compiled
	})
	return schemas, schemasErr
}

// validateBody checks a raw response body against the named contract.
func validateBody(name string, body []byte) error {
	all, err := loadSchemas()
	if err != nil {
		return err
	}
	s, ok := all[name]
	if !ok {
		return fmt.Errorf("unknown schema %s", name)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("response violates %s: %w", name, err)
	}
	return nil
}
