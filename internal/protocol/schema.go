package protocol

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed world.schema.json
var worldSchemaJSON string

const worldSchemaURL = "swarmisle://world.schema.json"

var (
	worldSchemaOnce sync.Once
	worldSchema     *jsonschema.Schema
	worldSchemaErr  error
)

func compiledWorldSchema() (*jsonschema.Schema, error) {
	worldSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(worldSchemaURL, bytes.NewReader([]byte(worldSchemaJSON))); err != nil {
			worldSchemaErr = err
			return
		}
		worldSchema, worldSchemaErr = c.Compile(worldSchemaURL)
	})
	return worldSchema, worldSchemaErr
}

// ValidateWorldJSON checks a raw world document against the embedded schema.
// It catches shape errors with a JSON path before the engine sees the record.
func ValidateWorldJSON(raw []byte) error {
	s, err := compiledWorldSchema()
	if err != nil {
		return newError(ErrInternal, fmt.Errorf("compile world schema: %w", err))
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return newError(ErrBadRequest, err)
	}
	if err := s.Validate(doc); err != nil {
		return newError(ErrSchema, err)
	}
	return nil
}

// Reject wraps an engine initialization error for tools that report codes.
func Reject(err error) *Error {
	if err == nil {
		return nil
	}
	return newError(ErrRejected, err)
}
