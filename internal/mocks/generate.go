// Package mocks provides mock implementations for testing the placement dashboard services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the repository and port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	catalog := mocks.NewMockCatalogRepository(ctrl)
//	catalog.EXPECT().ListInternships(gomock.Any()).Return(internships, nil)
//
// Hand-written fakes for the auth ports live in the auth subpackage.
package mocks

// Generate mock for CatalogRepository interface from internal/core package.
// This creates MockCatalogRepository with methods for all CatalogRepository interface methods:
// ListInternships, ListApplications, ListInterviews, Directory
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=catalog_repository_mock.go github.com/target/cipms/internal/core CatalogRepository

// Generate mock for CredentialSource interface from internal/ports package.
// This creates MockCredentialSource with methods for all CredentialSource interface methods:
// Lookup
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_source_mock.go github.com/target/cipms/internal/ports CredentialSource

// Generate mock for PasswordVerifier interface from internal/ports package.
// This creates MockPasswordVerifier with methods for all PasswordVerifier interface methods:
// Verify
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=password_verifier_mock.go github.com/target/cipms/internal/ports PasswordVerifier

// Generate mock for KeyValueStore interface from internal/ports package.
// This creates MockKeyValueStore with methods for all KeyValueStore interface methods:
// Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=key_value_store_mock.go github.com/target/cipms/internal/ports KeyValueStore
