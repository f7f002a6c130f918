// Package schema holds the JSON schemas of the cookbook request bodies and
// validates documents against them.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Request body schemas.
var (
	User = mustCompile("user", `{
		"type": "object",
		"properties": {
			"username": {"type": "string", "description": "Unique username"},
			"email": {"type": "string", "description": "Unique email address"},
			"password": {"type": "string"}
		},
		"required": ["username", "email", "password"]
	}`)

	Ingredient = mustCompile("ingredient", `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "description": "Unique ingredient name"},
			"description": {"type": "string"}
		},
		"required": ["name"]
	}`)

	Recipe = mustCompile("recipe", `{
		"type": "object",
		"properties": {
			"user_id": {"type": ["integer", "null"], "description": "Author, ignored on update"},
			"title": {"type": "string"},
			"description": {"type": "string"},
			"steps": {"type": "string"},
			"preparation_time": {"type": "string"},
			"cooking_time": {"type": "string"},
			"serving": {"type": "integer"}
		},
		"required": ["title", "steps", "preparation_time", "cooking_time", "serving"]
	}`)

	Review = mustCompile("review", `{
		"type": "object",
		"properties": {
			"user_id": {"type": ["integer", "null"]},
			"rating": {"type": "integer"},
			"feedback": {"type": "string"}
		},
		"required": ["rating"]
	}`)

	// QuantityCreate defaults a missing metric to grams.
	QuantityCreate = mustCompile("quantity-create", `{
		"type": "object",
		"properties": {
			"ingredient_id": {"type": "integer"},
			"qty": {"type": "number"},
			"metric": {"type": "string", "default": "g"}
		},
		"required": ["ingredient_id", "qty"]
	}`)

	QuantityUpdate = mustCompile("quantity-update", `{
		"type": "object",
		"properties": {
			"ingredient_id": {"type": "integer"},
			"qty": {"type": "number"},
			"metric": {"type": "string"}
		},
		"required": ["ingredient_id", "qty", "metric"]
	}`)

	QuantityKey = mustCompile("quantity-key", `{
		"type": "object",
		"properties": {
			"ingredient_id": {"type": "integer"}
		},
		"required": ["ingredient_id"]
	}`)
)

// Schema is a compiled JSON schema.
type Schema struct {
	raw      json.RawMessage
	compiled *jsonschema.Schema
}

// Compile parses and compiles the JSON schema document src under name.
func Compile(name, src string) (*Schema, error) {
	var raw bytes.Buffer
	if err := json.Compact(&raw, []byte(src)); err != nil {
		return nil, fmt.Errorf("invalid %s schema: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("invalid %s schema: %w", name, err)
	}
	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("failed to add %s schema: %w", name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", name, err)
	}
	return &Schema{raw: raw.Bytes(), compiled: compiled}, nil
}

func mustCompile(name, src string) *Schema {
	s, err := Compile(name, src)
	if err != nil {
		panic(err)
	}
	return s
}

// Raw returns the compact schema document, suitable for embedding in
// hypermedia controls.
func (s *Schema) Raw() json.RawMessage {
	return s.raw
}

// Validate checks that body is a JSON document matching s. The returned error
// is either a [*SyntaxError] or a [*jsonschema.ValidationError].
func (s *Schema) Validate(body []byte) error {
	_, err := s.instance(body)
	return err
}

// Decode validates body against s and unmarshals it into dst. Numbers with an
// integral value, such as 2.0 or 1e3, decode into integer fields.
func (s *Schema) Decode(body []byte, dst any) error {
	inst, err := s.instance(body)
	if err != nil {
		return err
	}
	normalized, err := json.Marshal(normalize(inst))
	if err != nil {
		return err
	}
	if err = json.Unmarshal(normalized, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &RangeError{Field: typeErr.Field, Value: typeErr.Value, cause: err}
		}
		return err
	}
	return nil
}

func (s *Schema) instance(body []byte) (any, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, &SyntaxError{cause: err}
	}
	return inst, s.compiled.Validate(inst)
}

// maxExactInt is the largest magnitude below which every integer is exactly
// representable as a float64.
const maxExactInt = 1 << 53

// normalize rewrites integral numbers of a decoded instance in integer form.
func normalize(inst any) any {
	switch val := inst.(type) {
	case map[string]any:
		for key, elem := range val {
			val[key] = normalize(elem)
		}
	case []any:
		for i, elem := range val {
			val[i] = normalize(elem)
		}
	case json.Number:
		if !strings.ContainsAny(val.String(), ".eE") {
			return val
		}
		f, err := val.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) >= maxExactInt {
			return val
		}
		return json.Number(strconv.FormatInt(int64(f), 10))
	}
	return inst
}

// RangeError reports a number that matches the schema but does not fit the
// field it decodes into.
type RangeError struct {
	// Field is the dotted path of the offending field.
	Field string
	// Value describes the rejected JSON value.
	Value string
	cause error
}

// Error satisfies [error].
func (e *RangeError) Error() string {
	return fmt.Sprintf("at '/%s': %s is out of range", strings.ReplaceAll(e.Field, ".", "/"), e.Value)
}

// Unwrap returns the decoder error.
func (e *RangeError) Unwrap() error {
	return e.cause
}

// SyntaxError reports a body that is not a JSON document.
type SyntaxError struct {
	cause error
}

// Error satisfies [error].
func (e *SyntaxError) Error() string {
	return "invalid JSON: " + strings.TrimSpace(e.cause.Error())
}

// Unwrap returns the decoder error.
func (e *SyntaxError) Unwrap() error {
	return e.cause
}
