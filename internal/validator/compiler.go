// Package validator provides interfaces and types for JSON Schema validation.
package validator

// A JSONDocument is a valid parsed JSON document - i.e. the result of unmarshalling.
type JSONDocument interface{}

// A JSONSchema is a valid parsed JSON document representing a JSON Schema.
// A Compiler must compile the JSONSchema before use, which surfaces any schema issues.
type JSONSchema JSONDocument

// Validator represents something which can be used to validate a JSON document.
type Validator interface {
	// Validate validates a JSON document.
	Validate(v JSONDocument) error
}

// Compiler defines a JSON Schema compiler. Schemas are registered under an ID
// and then compiled into Validators.
type Compiler interface {
	// AddSchema registers a JSONSchema with the compiler under the given ID.
	AddSchema(id string, data JSONSchema) error

	// Compile creates a Validator from the JSONSchema previously added with the given ID.
	Compile(id string) (Validator, error)
}
