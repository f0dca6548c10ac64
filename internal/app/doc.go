// Package app provides application initialization and lifecycle management.
//
// The App type wires all dependencies together and manages:
// - Configuration loading
// - Client adapter creation
// - Service creation
// - HTTP server lifecycle
// - Graceful shutdown
package app
