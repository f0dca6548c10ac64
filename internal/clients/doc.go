// Package clients provides adapters for external services.
//
// This package contains adapters that implement domain interfaces for:
// - TMDB metadata provider (details, videos, images)
// - TMDB image CDN poster download
// - WhatsApp HTTP gateway message delivery
//
// All adapters support context for cancellation and timeout handling.
package clients
