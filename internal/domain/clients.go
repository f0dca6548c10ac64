package domain

import "context"

// MetadataProvider resolves titles, synopses, posters and trailer videos
// for a media id, in a single language per call.
type MetadataProvider interface {
	Details(ctx context.Context, id MediaID, language string) (*MediaDetails, error)
	Videos(ctx context.Context, id MediaID, language string) ([]Video, error)
	Posters(ctx context.Context, id MediaID, language string) ([]string, error)
}

// PosterDownloader fetches an image URL into a transient local file and
// returns its path. The caller owns the file and must remove it.
type PosterDownloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// Messenger delivers a formatted notification to a chat recipient.
type Messenger interface {
	SendText(ctx context.Context, phone, message string) error
	SendImage(ctx context.Context, phone, caption, imagePath string) error
}
