package domain

import (
	"fmt"
	"strconv"
)

// MediaID identifies a media item at the metadata provider. It replaces
// string-spliced "kind/id/season/n" identifiers with an explicit structure
// so season ids canonicalize to their owning series without regex work.
type MediaID struct {
	Kind   string
	ID     int64
	Season int64
}

// ParseMediaID builds a MediaID from the webhook's media type and raw id.
func ParseMediaID(kind, rawID string) (MediaID, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return MediaID{}, fmt.Errorf("parsing media id %q: %w", rawID, ErrMalformedEvent)
	}
	return MediaID{Kind: kind, ID: id}, nil
}

// WithSeason returns a season-qualified copy of the id.
func (m MediaID) WithSeason(season int64) MediaID {
	m.Season = season
	return m
}

// SeriesID strips any season qualifier. The provider indexes videos and
// images at the series level, never at the season level.
func (m MediaID) SeriesID() MediaID {
	m.Season = 0
	return m
}

// Path renders the provider URL path for the id.
func (m MediaID) Path() string {
	if m.Season > 0 {
		return fmt.Sprintf("%s/%d/season/%d", m.Kind, m.ID, m.Season)
	}
	return fmt.Sprintf("%s/%d", m.Kind, m.ID)
}
