package domain

// MediaKind is the pipeline branch selected for an inbound event.
type MediaKind string

const (
	KindMovie   MediaKind = "movie"
	KindSeason  MediaKind = "season"
	KindEpisode MediaKind = "episode"
)

const (
	mediaTypeMovie = "movie"
	mediaTypeTV    = "tv"
)

// MediaEvent is the parsed webhook payload for one requested or newly
// available media item. It is immutable once decoded.
type MediaEvent struct {
	MediaType    string `json:"media_type"`
	TMDBID       string `json:"tmdbid"`
	TVDBID       string `json:"tvdbid"`
	Title        string `json:"title"`
	Overview     string `json:"overview"`
	RequestedBy  string `json:"requestedBy_username"`
	MediaStatus  string `json:"media_status"`
	SeasonNumber string `json:"season_number"`
	SerieName    string `json:"serie_name"`
	ImageURL     string `json:"image_url"`
}

// Classify picks exactly one pipeline branch. Season requires both a tv
// media type and a season number; movie requires the movie media type;
// everything else, including a missing media type, is an episode.
func (e *MediaEvent) Classify() MediaKind {
	switch {
	case e.MediaType == mediaTypeTV && e.SeasonNumber != "":
		return KindSeason
	case e.MediaType == mediaTypeMovie:
		return KindMovie
	default:
		return KindEpisode
	}
}

// MediaDetails holds the fields resolved from the metadata provider.
// Any of them may be empty when the provider omits the field.
type MediaDetails struct {
	Title     string
	Overview  string
	PosterRef string
}

// Video is one entry of the provider's video listing.
type Video struct {
	Key  string
	Name string
}
