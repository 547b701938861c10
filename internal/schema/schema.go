// Package schema validates traffic log records against the event
// record schema. Useful for debugging hand-edited or foreign logs
// before analysis.
package schema

// eventSchema is the JSON Schema for one traffic log record. Requests
// and responses share the envelope fields; the conditional branches
// pin down the type-specific ones.
const eventSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["timestamp", "session_id", "type"],
  "properties": {
    "entry_id": {"type": "string"},
    "timestamp": {"type": "string"},
    "session_id": {"type": "string"},
    "type": {"enum": ["request", "response"]}
  },
  "allOf": [
    {
      "if": {"properties": {"type": {"const": "request"}}},
      "then": {
        "required": ["method", "url"],
        "properties": {
          "method": {"type": "string", "minLength": 1},
          "url": {"type": "string", "minLength": 1},
          "domain": {"type": "string"},
          "path": {"type": "string"},
          "scheme": {"type": "string"},
          "headers": {"type": "object", "additionalProperties": {"type": "string"}},
          "params": {"type": "object", "additionalProperties": {"type": "string"}},
          "query_type": {"type": "string"},
          "query_text": {"type": "string"},
          "data_size": {"type": "integer", "minimum": 0},
          "params_size": {"type": "integer", "minimum": 0},
          "is_localhost": {"type": "boolean"},
          "headers_redacted": {"type": "object", "additionalProperties": {"type": "string"}}
        }
      }
    },
    {
      "if": {"properties": {"type": {"const": "response"}}},
      "then": {
        "required": ["status_code"],
        "properties": {
          "request_id": {"type": "integer", "minimum": 0},
          "status_code": {"type": "integer", "minimum": 100, "maximum": 599},
          "headers": {"type": "object", "additionalProperties": {"type": "string"}},
          "response_size": {"type": "integer", "minimum": 0},
          "response_time": {"type": "number", "minimum": 0},
          "url": {"type": "string"},
          "domain": {"type": "string"}
        }
      }
    }
  ]
}`
