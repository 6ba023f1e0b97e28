package ruleset

// overlaySchema validates ruleset overlay files before they are merged.
// Kept strict: unknown top-level keys are rejected so a typo in a rule file
// fails at startup instead of being silently ignored.
const overlaySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string"},
    "characters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to", "contexts"],
        "additionalProperties": false,
        "properties": {
          "from": {"type": "string", "minLength": 1, "maxLength": 3},
          "to": {"type": "string", "minLength": 1, "maxLength": 3},
          "contexts": {
            "type": "array",
            "minItems": 1,
            "items": {"enum": ["quantity", "price", "product_name", "total"]}
          }
        }
      }
    },
    "words": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to", "confidence"],
        "additionalProperties": false,
        "properties": {
          "from": {"type": "string", "minLength": 2},
          "to": {"type": "string", "minLength": 1},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "context_rules": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["label", "value_shape", "correction", "confidence"],
        "additionalProperties": false,
        "properties": {
          "label": {"type": "string", "minLength": 1},
          "value_shape": {"type": "string", "minLength": 1},
          "correction": {"type": "string", "minLength": 1},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "vendors": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "keywords"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "keywords": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 2}},
          "character_map": {
            "type": "object",
            "additionalProperties": {"type": "string", "minLength": 1, "maxLength": 3}
          },
          "line_patterns": {"type": "array", "items": {"type": "string", "minLength": 1}}
        }
      }
    },
    "vocabulary": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["canonical"],
        "additionalProperties": false,
        "properties": {
          "canonical": {"type": "string", "minLength": 2},
          "variants": {"type": "array", "items": {"type": "string", "minLength": 2}}
        }
      }
    },
    "noise": {"type": "array", "items": {"type": "string", "minLength": 1, "maxLength": 4}},
    "scoring": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "fuzzy_similarity_weight": {"type": "number", "minimum": 0, "maximum": 1},
        "fuzzy_quantity_weight": {"type": "number", "minimum": 0, "maximum": 1},
        "fuzzy_price_weight": {"type": "number", "minimum": 0, "maximum": 1},
        "fuzzy_keyword_weight": {"type": "number", "minimum": 0, "maximum": 1},
        "fuzzy_shape_weight": {"type": "number", "minimum": 0, "maximum": 1},
        "fuzzy_word_threshold": {"type": "number", "minimum": 0, "maximum": 1},
        "fuzzy_coverage_ratio": {"type": "number", "minimum": 0, "maximum": 1},
        "structured_base": {"type": "number", "minimum": 0, "maximum": 1},
        "two_line_confidence": {"type": "number", "minimum": 0, "maximum": 1},
        "merged_base": {"type": "number", "minimum": 0, "maximum": 1},
        "vendor_base": {"type": "number", "minimum": 0, "maximum": 1},
        "fuzzy_floor": {"type": "number", "minimum": 0, "maximum": 1},
        "min_rule_confidence": {"type": "number", "minimum": 0, "maximum": 1},
        "overall_engine_weight": {"type": "number", "minimum": 0, "maximum": 1}
      }
    }
  }
}`
