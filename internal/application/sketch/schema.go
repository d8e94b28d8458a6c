package sketch

import (
	"strings"
	"sync"

	domainSketch "github.com/turtacn/molsketch/internal/domain/sketch"
	"github.com/turtacn/molsketch/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes an importable node/link document. Bond orders
// are only required to be integers; the editor skips out-of-range links.
func documentSchema() map[string]interface{} {
	symbols := make([]string, 0, len(domainSketch.Elements()))
	for _, el := range domainSketch.Elements() {
		symbols = append(symbols, string(el))
	}
	return map[string]interface{}{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []string{"nodes", "links"},
		"properties": map[string]interface{}{
			"nodes": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":     "object",
					"required": []string{"id", "atom", "x", "y"},
					"properties": map[string]interface{}{
						"id":   map[string]interface{}{"type": "integer", "minimum": 1},
						"atom": map[string]interface{}{"type": "string", "enum": symbols},
						"x":    map[string]interface{}{"type": "number"},
						"y":    map[string]interface{}{"type": "number"},
					},
				},
			},
			"links": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":     "object",
					"required": []string{"id", "source", "target", "bond"},
					"properties": map[string]interface{}{
						"id":     map[string]interface{}{"type": "integer", "minimum": 1},
						"source": map[string]interface{}{"type": "integer"},
						"target": map[string]interface{}{"type": "integer"},
						"bond":   map[string]interface{}{"type": "integer"},
					},
				},
			},
		},
	}
}

var (
	compiledSchema     *gojsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

func loadSchema() (*gojsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiledSchema, compiledSchemaErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(documentSchema()))
	})
	return compiledSchema, compiledSchemaErr
}

// DecodeDocument validates raw JSON against the document schema and decodes
// it. Every schema violation is listed in the error detail.
func DecodeDocument(data []byte) (domainSketch.Document, error) {
	schema, err := loadSchema()
	if err != nil {
		return domainSketch.Document{}, errors.Wrap(err, errors.ErrCodeInternal, "document schema failed to compile")
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return domainSketch.Document{}, errors.Wrap(err, errors.ErrCodeInvalidDocument, "document is not valid JSON")
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return domainSketch.Document{}, errors.New(errors.ErrCodeInvalidDocument, "document does not match the structure schema").
			WithDetail(strings.Join(msgs, "; "))
	}
	return domainSketch.ParseDocument(data)
}

//Personal.AI order the ending
