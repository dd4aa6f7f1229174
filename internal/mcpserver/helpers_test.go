package mcpserver

import "testing"

// storeSchema is a small schema with one definition, used across tool tests.
const storeSchema = `{
  "title": "Store",
  "type": "object",
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "pets": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}
  },
  "required": ["name"],
  "definitions": {
    "Pet": {
      "type": "object",
      "properties": {
        "id": {"type": "integer", "minimum": 1},
        "name": {"type": "string", "description": "Call name."}
      },
      "required": ["id"]
    }
  }
}`

// cyclicSchema has two objects that refer to each other.
const cyclicSchema = `{
  "title": "Person",
  "type": "object",
  "properties": {
    "pet": {"$ref": "#/definitions/Pet"}
  },
  "definitions": {
    "Pet": {
      "type": "object",
      "properties": {"owner": {"$ref": "#"}}
    }
  }
}`

// withConfig swaps the active configuration for the duration of a test.
func withConfig(t *testing.T, mutate func(c *serverConfig)) {
	t.Helper()
	saved := *cfg
	mutate(cfg)
	t.Cleanup(func() { *cfg = saved })
}
