// Package mocks provides mock implementations for testing the portal controller and session store.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockPortalAPI(ctrl)
//	api.EXPECT().ListBooks(gomock.Any()).Return(books, nil)
package mocks

// Generate mock for PortalAPI interface from internal/ports package.
// This creates MockPortalAPI with methods for every gateway operation:
// Login, Register, Me, ListBooks, GetBook, CreateBook, UpdateBook, DeleteBook, BuildBook, UploadBook,
// ListUsers, CreateUser, UpdateUser, DeleteUser, ContentURL
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=portal_api_mock.go github.com/target/mdbook-portal/internal/ports PortalAPI

// Generate mock for CredentialBackend interface from internal/ports package.
// This creates MockCredentialBackend with methods: Load, Save, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_backend_mock.go github.com/target/mdbook-portal/internal/ports CredentialBackend
