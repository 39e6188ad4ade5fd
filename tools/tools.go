//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// They are installed with `go install` and are not tracked in go.mod.
package tools

// Development tools:
//
// mockgen - regenerates internal/mocks (go generate ./internal/mocks/...)
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//
// Air - live reload for cmd/cipms with DEV=true
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
