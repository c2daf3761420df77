package bank

// Mandatory block sizes every variant must supply.
const (
	ReadingLiteracyCount = 15
	MathLiteracyCount    = 15
	HistoryCount         = 20
)

// bankSchema is the JSON schema a bank file must satisfy before decoding.
const bankSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["variants", "pools"],
  "properties": {
    "variants": {
      "type": "array",
      "minItems": 1,
      "items": { "$ref": "#/$defs/variant" }
    },
    "pools": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": { "$ref": "#/$defs/question" }
      }
    }
  },
  "$defs": {
    "question": {
      "type": "object",
      "required": ["id", "text", "options", "correct", "topic", "difficulty"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "text": { "type": "string", "minLength": 1 },
        "options": {
          "type": "array",
          "minItems": 4,
          "maxItems": 4,
          "items": { "type": "string", "minLength": 1 }
        },
        "correct": { "type": "integer", "minimum": 0, "maximum": 3 },
        "explanation": { "type": "string" },
        "topic": { "type": "string", "minLength": 1 },
        "difficulty": { "enum": ["easy", "medium", "hard"] }
      }
    },
    "variant": {
      "type": "object",
      "required": ["id", "title", "reading_literacy", "math_literacy", "history"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "title": { "type": "string", "minLength": 1 },
        "reading_literacy": {
          "type": "array", "minItems": 15, "maxItems": 15,
          "items": { "$ref": "#/$defs/question" }
        },
        "math_literacy": {
          "type": "array", "minItems": 15, "maxItems": 15,
          "items": { "$ref": "#/$defs/question" }
        },
        "history": {
          "type": "array", "minItems": 20, "maxItems": 20,
          "items": { "$ref": "#/$defs/question" }
        }
      }
    }
  }
}`
