package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Names of the JSON documents stored in JSONB columns.
const (
	BlobSiteAuthData        = "site_auth_data"
	BlobServerAuthorization = "server_authorization"
)

var builtinBlobSchemas = map[string]string{
	BlobSiteAuthData: `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"db_name":        { "type": "string", "pattern": "^[A-Za-z0-9]*$" },
			"db_username":    { "type": "string", "pattern": "^[A-Za-z0-9]*$" },
			"db_password":    { "type": "string" },
			"admin_user":     { "type": "string", "pattern": "^[A-Za-z0-9]*$" },
			"admin_password": { "type": "string" }
		},
		"additionalProperties": false
	}`,
	BlobServerAuthorization: `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"auth_type":   { "type": "string", "enum": ["ssh_key", "password", "api_token"] },
			"auth_source": { "type": "string", "minLength": 1 }
		},
		"required": ["auth_type", "auth_source"],
		"additionalProperties": false
	}`,
}

// BlobValidator checks JSONB payloads against the embedded JSON Schemas before
// they are written. Compiled schemas are cached.
type BlobValidator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewBlobValidator returns a validator with an empty schema cache.
func NewBlobValidator() *BlobValidator {
	return &BlobValidator{
		cache: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures payload matches the named blob schema.
func (v *BlobValidator) Validate(name string, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is required for validation")
	}

	compiled, err := v.getOrCompile(name)
	if err != nil {
		return err
	}

	var document any
	if err := json.Unmarshal(payload, &document); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	if err := compiled.Validate(document); err != nil {
		return fmt.Errorf("%s validation: %w", name, err)
	}

	return nil
}

// MarshalValidated encodes value as JSON and validates it against the named schema.
func (v *BlobValidator) MarshalValidated(name string, value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	if err := v.Validate(name, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (v *BlobValidator) getOrCompile(name string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	compiled, ok := v.cache[name]
	v.mu.RUnlock()
	if ok {
		return compiled, nil
	}

	definition, ok := builtinBlobSchemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown blob schema %q", name)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// another goroutine may have populated the cache while we were waiting
	if compiled, ok = v.cache[name]; ok {
		return compiled, nil
	}

	key := fmt.Sprintf("memory://blobs/%s.json", name)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(key, bytes.NewReader([]byte(definition))); err != nil {
		return nil, fmt.Errorf("register schema %s: %w", name, err)
	}

	newCompiled, err := compiler.Compile(key)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	v.cache[name] = newCompiled
	return newCompiled, nil
}
