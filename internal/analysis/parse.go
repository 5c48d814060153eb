package analysis

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed analysis_result.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("analysis_result.schema.json", strings.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("analysis_result.schema.json")
	})
	return schema, schemaErr
}

// Parse extracts the structured verdict from a model response. The model is
// asked for bare JSON but responses wrapped in markdown fences or prose are
// handled too. Any response that cannot be validated against the schema
// degrades to the unparsed fallback; Parse never fails.
func Parse(raw string) Result {
	payload, ok := extractJSON(raw)
	if !ok {
		return fallback(raw)
	}

	sch, err := compiledSchema()
	if err != nil {
		return fallback(raw)
	}

	var generic any
	if err := json.Unmarshal(payload, &generic); err != nil {
		return fallback(raw)
	}
	if err := sch.Validate(generic); err != nil {
		return fallback(raw)
	}

	var res Result
	if err := json.Unmarshal(payload, &res); err != nil {
		return fallback(raw)
	}
	res.Risk = ParseRiskLevel(string(res.Risk))
	res.Raw = raw
	return res
}

func fallback(raw string) Result {
	return Result{Risk: RiskLow, Raw: raw, Unparsed: true}
}

// extractJSON finds the verdict object in the response: a ```json fence
// first, then the outermost brace-delimited span.
func extractJSON(raw string) ([]byte, bool) {
	if idx := strings.Index(raw, "```json"); idx >= 0 {
		rest := raw[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			candidate := []byte(strings.TrimSpace(rest[:end]))
			if json.Valid(candidate) {
				return candidate, true
			}
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	candidate := []byte(raw[start : end+1])
	if !json.Valid(candidate) {
		return nil, false
	}
	return candidate, true
}
