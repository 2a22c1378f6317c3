package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled schemas keyed by Format.Name.
var compiledFormats sync.Map

// validateOutput checks raw against the format's schema. A nil format
// accepts anything.
func validateOutput(f *Format, raw json.RawMessage) error {
	if f == nil {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalidOutput(raw, fmt.Errorf("invalid JSON: %w", err))
	}

	sch, err := compileFormat(f)
	if err != nil {
		return invalidOutput(raw, err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalidOutput(raw, fmt.Errorf("schema %q: %w", f.Name, err))
	}
	return nil
}

// ValidateJSON checks raw against f the same way providers do. Callers that
// receive JSON from elsewhere use it to apply a Format without a provider.
func ValidateJSON(f *Format, raw []byte) error {
	return validateOutput(f, raw)
}

func compileFormat(f *Format) (*jsonschema.Schema, error) {
	if cached, ok := compiledFormats.Load(f.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// Round-trip through JSON so Go-typed values ([]string, int) become the
	// generic forms the compiler expects.
	b, err := json.Marshal(f.Schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", f.Name, err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", f.Name, err)
	}

	url := "schema://formats/" + f.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", f.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", f.Name, err)
	}

	compiledFormats.Store(f.Name, sch)
	return sch, nil
}
