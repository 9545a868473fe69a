package riskdata

// JSON Schemas the data files are checked against before unmarshalling.
// Range invariants (rates in [0,1], positive earnings) are enforced here
// and re-checked when the tables are built, so a table constructed in
// code goes through the same validation as one loaded from disk.

const fieldRiskSchema = `{
  "type": "object",
  "required": ["field_risk"],
  "properties": {
    "metadata": {"type": "object"},
    "field_risk": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["field", "median_earnings", "underemployment_proxy"],
        "properties": {
          "field": {"type": "string", "minLength": 1},
          "median_earnings": {"type": "number", "exclusiveMinimum": 0},
          "underemployment_proxy": {"type": "number", "minimum": 0, "maximum": 1},
          "completion_rate": {"type": "number", "minimum": 0, "maximum": 1},
          "pell_percentage": {"type": "number", "minimum": 0, "maximum": 1},
          "n_institutions": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

const graduateProgramsSchema = `{
  "type": "object",
  "required": ["graduate_programs"],
  "properties": {
    "graduate_programs": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["program", "median_earnings", "median_debt", "underemployment_proxy", "typical_duration"],
        "properties": {
          "program": {"type": "string", "minLength": 1},
          "median_earnings": {"type": "number", "exclusiveMinimum": 0},
          "median_debt": {"type": "number", "exclusiveMinimum": 0},
          "underemployment_proxy": {"type": "number", "minimum": 0, "maximum": 1},
          "typical_duration": {"type": "number", "exclusiveMinimum": 0}
        }
      }
    }
  }
}`

const institutionAdjustmentsSchema = `{
  "type": "object",
  "properties": {
    "carnegie_classification": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["risk_multiplier"],
        "properties": {"risk_multiplier": {"type": "number", "exclusiveMinimum": 0}}
      }
    },
    "selectivity_tiers": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["admission_rate_max", "risk_multiplier"],
        "properties": {
          "admission_rate_max": {"type": "number", "minimum": 0, "maximum": 1},
          "risk_multiplier": {"type": "number", "exclusiveMinimum": 0}
        }
      }
    },
    "institution_type": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["risk_multiplier"],
        "properties": {"risk_multiplier": {"type": "number", "exclusiveMinimum": 0}}
      }
    },
    "combination_rules": {
      "type": "object",
      "properties": {
        "caps": {
          "type": "object",
          "properties": {
            "min_multiplier": {"type": "number", "exclusiveMinimum": 0},
            "max_multiplier": {"type": "number", "exclusiveMinimum": 0}
          }
        }
      }
    }
  }
}`
