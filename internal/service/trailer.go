package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/amaumene/jellysook/internal/domain"
	"github.com/amaumene/jellysook/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const trailerURLFormat = "https://youtu.be/%s"

const (
	lookupFound  = "found"
	lookupAbsent = "absent"
	lookupError  = "error"
)

// Trailer names vary with the listing language; French uploads say
// "bande-annonce" (hyphen and space both occur), everything else is
// matched on the literal word.
var trailerPatterns = map[string]*regexp.Regexp{
	"fr": regexp.MustCompile(`(?i)bande[-\s]?annonce`),
	"en": regexp.MustCompile(`(?i)trailer`),
}

var trailerDefaultPattern = regexp.MustCompile(`(?i)trailer`)

func trailerPattern(language string) *regexp.Regexp {
	if pattern, ok := trailerPatterns[languageCode(language)]; ok {
		return pattern
	}
	return trailerDefaultPattern
}

func languageCode(language string) string {
	if len(language) > 2 {
		return strings.ToLower(language[:2])
	}
	return strings.ToLower(language)
}

func languageLabel(language string) string {
	return strings.ToUpper(languageCode(language))
}

// findTrailer returns the key of the first listed video whose name
// matches the language's trailer wording, or empty when nothing matches.
// A failed listing is absorbed; a missing trailer never aborts an event.
func (s *NotificationService) findTrailer(ctx context.Context, id domain.MediaID, language string) string {
	videos, err := s.provider.Videos(ctx, id, language)
	if err != nil {
		metrics.TrailerLookups.WithLabelValues(lookupError).Inc()
		log.WithFields(log.Fields{
			"id":       id.Path(),
			"language": language,
			"error":    err,
		}).Warn("trailer search failed, continuing without")
		return ""
	}

	pattern := trailerPattern(language)
	for _, video := range videos {
		if pattern.MatchString(video.Name) {
			metrics.TrailerLookups.WithLabelValues(lookupFound).Inc()
			return video.Key
		}
	}

	metrics.TrailerLookups.WithLabelValues(lookupAbsent).Inc()
	return ""
}

// resolveTrailerLinks searches once per configured language against the
// series-level id and renders the trailer block: two labeled lines when
// both languages match, one unlabeled line for a single match, empty
// when none do.
func (s *NotificationService) resolveTrailerLinks(ctx context.Context, id domain.MediaID) string {
	languages := []string{s.cfg.Language, s.cfg.Language2}

	var links, labels []string
	for _, language := range languages {
		key := s.findTrailer(ctx, id.SeriesID(), language)
		if key == "" {
			continue
		}
		links = append(links, fmt.Sprintf(trailerURLFormat, key))
		labels = append(labels, languageLabel(language))
	}

	switch len(links) {
	case 2:
		return fmt.Sprintf("• Trailer %s: %s\n• Trailer %s: %s", labels[0], links[0], labels[1], links[1])
	case 1:
		return fmt.Sprintf("• Trailer: %s", links[0])
	default:
		return ""
	}
}
