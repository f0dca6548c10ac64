// Package handler implements HTTP request handlers.
//
// This package provides HTTP endpoints for:
// - /api/jellyseerr: webhook for media request notifications
// - /health: health check endpoint
// - /metrics: Prometheus scrape endpoint
//
// The webhook handler maps core error kinds to HTTP responses: malformed
// payloads get a client error, upstream and delivery failures a gateway
// error. All handlers pass the request context to the service layer.
package handler
