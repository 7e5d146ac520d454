// Package protocol owns the STOMP wire vocabulary.
//
// Ownership boundary:
// - command and header name constants
// - frame entity, encoder and decoder (frame)
// - declarative header shapes and validation (schema)
package protocol
