// ABOUTME: Package documentation for api
// ABOUTME: Describes the HTTP surface: router wiring, auth protection, and resource handlers

// Package api assembles the HTTP surface of the calibration backend.
//
// The router exposes three layers:
//
//   - public routes: /health and the /auth endpoints
//   - authenticated routes under /api, behind the session gate
//   - admin routes, additionally behind the role gate
//
// Every protected handler reads the requesting account from the request
// context, where the gate placed it after re-resolving the account from
// the store. Handlers respond with JSON; errors use the uniform
// {"error": "..."} shape and never leak internals.
package api
