// Package provider implements the external model backends used by the
// translation gateway.
package provider

import "github.com/inglify/inglify"

// ModelProvider is the interface for text-generation backends.
// This is an alias to the main package interface for convenience.
type ModelProvider = inglify.ModelProvider

// GenerateRequest is an alias to the main package type.
type GenerateRequest = inglify.GenerateRequest
