package content

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// JSON schemas for model output. Generated JSON is validated before it is
// merged into a plan document, so a malformed model response degrades to the
// fallback content instead of corrupting the store.

const planStructureSchema = `{
	"type": "object",
	"required": ["planStructure"],
	"properties": {
		"planStructure": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["month", "title", "topics"],
				"properties": {
					"month": {"type": "integer", "minimum": 1},
					"title": {"type": "string", "minLength": 1},
					"topics": {
						"type": "array",
						"items": {"type": "string"}
					}
				}
			}
		}
	}
}`

const videosSchema = `{
	"type": "object",
	"required": ["videos"],
	"properties": {
		"videos": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["title", "url"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"url": {"type": "string", "minLength": 1},
					"description": {"type": "string"}
				}
			}
		}
	}
}`

const booksSchema = `{
	"type": "object",
	"required": ["books", "interviewPdfs"],
	"properties": {
		"books": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["title", "author"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"author": {"type": "string", "minLength": 1},
					"description": {"type": "string"}
				}
			}
		},
		"interviewPdfs": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"description": {"type": "string"}
				}
			}
		}
	}
}`

const linksSchema = `{
	"type": "object",
	"required": ["topic", "links"],
	"properties": {
		"topic": {"type": "string"},
		"links": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["platform", "title", "url"],
				"properties": {
					"platform": {"type": "string", "minLength": 1},
					"title": {"type": "string", "minLength": 1},
					"url": {"type": "string", "minLength": 1},
					"description": {"type": "string"}
				}
			}
		}
	}
}`

// validateJSON checks doc against schema and returns a descriptive error
// listing every violation.
func validateJSON(schema, doc string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		msg := ""
		for _, e := range result.Errors() {
			if msg != "" {
				msg += "; "
			}
			msg += e.String()
		}
		return fmt.Errorf("generated JSON does not match schema: %s", msg)
	}
	return nil
}
