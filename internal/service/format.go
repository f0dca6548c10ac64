package service

import (
	"fmt"
	"strings"

	"github.com/amaumene/jellysook/internal/domain"
)

// formatMessage renders the fixed notification template. The overview
// block only appears when an overview exists, the trailer block only
// when one was resolved. The output is opaque text for the gateway; no
// escaping is applied.
func formatMessage(title, requestedBy, overview, mediaLink, trailerBlock string) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("*%s*\n", title))
	builder.WriteString(fmt.Sprintf("  → added by %s\n", requestedBy))

	if overview != "" {
		builder.WriteString(fmt.Sprintf("```%s```\n", overview))
	}

	builder.WriteString(mediaLink)
	builder.WriteString("\n")

	if trailerBlock != "" {
		builder.WriteString(trailerBlock)
	}

	return builder.String()
}

func tmdbLink(id domain.MediaID) string {
	return fmt.Sprintf("● TMDb: %s", shortenLink("https://www.themoviedb.org/"+id.Path()))
}

func tvdbLink(serieName, seasonNumber string) string {
	return fmt.Sprintf("● TVDb: https://thetvdb.com/series/%s/seasons/official/%s", serieName, seasonNumber)
}

// shortenLink strips the www prefix form of the two link hosts the bridge
// emits; unrecognized hosts pass through untouched.
func shortenLink(link string) string {
	replacements := map[string]string{
		"https://www.themoviedb.org/": "https://tmdb.org/",
		"https://www.imdb.com/":       "https://imdb.com/",
	}

	for prefix, short := range replacements {
		if strings.HasPrefix(link, prefix) {
			return short + strings.TrimPrefix(link, prefix)
		}
	}
	return link
}
