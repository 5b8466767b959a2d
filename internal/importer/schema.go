package importer

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// wordListSchema describes a vocabulary JSON file: an array of word
// records as produced by the wordlist extractor.
var wordListSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":            map[string]any{"type": "string"},
			"word":          map[string]any{"type": "string", "minLength": 1},
			"translation":   map[string]any{"type": "string", "minLength": 1},
			"pos":           map[string]any{"type": "string"},
			"pronunciation": map[string]any{"type": "string"},
			"example":       map[string]any{"type": "string"},
			"unit":          map[string]any{"type": "string"},
			"section":       map[string]any{"type": "string"},
			"lang":          map[string]any{"type": "string"},
		},
		"required":             []any{"word", "translation"},
		"additionalProperties": false,
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateWordList checks raw JSON against the word list schema.
func validateWordList(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return errors.Wrap(err, "invalid JSON")
	}

	compiled, err := getCompiledSchema()
	if err != nil {
		return err
	}
	if err := compiled.Validate(parsed); err != nil {
		return errors.Wrap(err, "word list does not match schema")
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not raw
		// bytes. Marshal then unmarshal to get a clean representation.
		defBytes, err := json.Marshal(wordListSchema)
		if err != nil {
			compileErr = errors.Wrap(err, "marshal schema")
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = errors.Wrap(err, "parse schema")
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://wordlist.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = errors.Wrap(err, "add schema resource")
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
