// Package service contains the media-enrichment and notification pipeline.
//
// NotificationService orchestrates one webhook event end-to-end:
// - classification into movie, season or episode
// - metadata resolution through the provider in the primary language
// - trailer search per configured language against the series-level id
// - poster download into a transient file, released after dispatch
// - template-based message formatting and gateway dispatch
//
// Trailer and poster absence are soft; a missing title, an unreachable
// provider or a rejected dispatch surface as errors to the caller.
package service
