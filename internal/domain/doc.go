// Package domain defines the core business entities and interfaces for jellysook.
//
// This package contains the media event model with its classification rule,
// the structured provider identifier, resolved metadata types, and the
// client interfaces that define the contract for external services.
// All interfaces accept context for cancellation and timeout support.
package domain
