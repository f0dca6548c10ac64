package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/amaumene/jellysook/internal/config"
	"github.com/amaumene/jellysook/internal/domain"
	"github.com/amaumene/jellysook/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const posterSize = "w342"

type NotificationService struct {
	cfg       *config.Config
	provider  domain.MetadataProvider
	posters   domain.PosterDownloader
	messenger domain.Messenger
}

func NewNotificationService(cfg *config.Config, provider domain.MetadataProvider, posters domain.PosterDownloader, messenger domain.Messenger) *NotificationService {
	return &NotificationService{
		cfg:       cfg,
		provider:  provider,
		posters:   posters,
		messenger: messenger,
	}
}

// Process runs one event end-to-end: classify, resolve metadata, format
// and dispatch. It is synchronous and request-scoped; the transient poster
// file never outlives the call.
func (s *NotificationService) Process(ctx context.Context, event *domain.MediaEvent) error {
	kind := event.Classify()
	metrics.EventsProcessed.WithLabelValues(string(kind)).Inc()

	log.WithFields(log.Fields{
		"kind":      kind,
		"tmdbID":    event.TMDBID,
		"user":      event.RequestedBy,
		"mediaType": event.MediaType,
	}).Info("processing media event")

	switch kind {
	case domain.KindMovie:
		return s.processMovie(ctx, event)
	case domain.KindSeason:
		return s.processSeason(ctx, event)
	default:
		return s.processEpisode(ctx, event)
	}
}

func (s *NotificationService) processMovie(ctx context.Context, event *domain.MediaEvent) error {
	id, err := domain.ParseMediaID("movie", event.TMDBID)
	if err != nil {
		return fmt.Errorf("parsing movie id: %w", err)
	}

	details, err := s.provider.Details(ctx, id, s.cfg.Language)
	if err != nil {
		return fmt.Errorf("resolving movie details: %w", err)
	}

	title, err := pickTitle(details.Title, event.Title)
	if err != nil {
		return err
	}

	trailerBlock := s.resolveTrailerLinks(ctx, id)
	message := formatMessage(title, event.RequestedBy, details.Overview, tmdbLink(id), trailerBlock)

	posterPath, err := s.fetchPoster(ctx, event, id, details.PosterRef)
	if err != nil {
		return err
	}

	return s.dispatch(ctx, message, posterPath)
}

func (s *NotificationService) processSeason(ctx context.Context, event *domain.MediaEvent) error {
	seriesID, err := domain.ParseMediaID("tv", event.TMDBID)
	if err != nil {
		return fmt.Errorf("parsing series id: %w", err)
	}

	seasonNumber, err := strconv.ParseInt(event.SeasonNumber, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing season number %q: %w", event.SeasonNumber, domain.ErrMalformedEvent)
	}
	seasonID := seriesID.WithSeason(seasonNumber)

	details, err := s.provider.Details(ctx, seasonID, s.cfg.Language)
	if err != nil {
		return fmt.Errorf("resolving season details: %w", err)
	}

	title, err := pickTitle(details.Title, event.Title)
	if err != nil {
		return err
	}

	// videos and images are indexed at the series level
	trailerBlock := s.resolveTrailerLinks(ctx, seasonID.SeriesID())
	link := tvdbLink(event.SerieName, event.SeasonNumber)
	message := formatMessage(title, event.RequestedBy, details.Overview, link, trailerBlock)

	posterPath, err := s.fetchPoster(ctx, event, seasonID.SeriesID(), details.PosterRef)
	if err != nil {
		return err
	}

	return s.dispatch(ctx, message, posterPath)
}

// processEpisode is the fallback branch: no poster, no trailer, overview
// only when the provider has one. The provider lookup is keyed by the tv
// id; the webhook's raw title is preferred for the message.
func (s *NotificationService) processEpisode(ctx context.Context, event *domain.MediaEvent) error {
	kind := event.MediaType
	if kind == "" {
		kind = "tv"
	}

	id, err := domain.ParseMediaID(kind, event.TMDBID)
	if err != nil {
		return fmt.Errorf("parsing episode id: %w", err)
	}

	details, err := s.provider.Details(ctx, id, s.cfg.Language)
	if err != nil {
		return fmt.Errorf("resolving episode details: %w", err)
	}

	title, err := pickTitle(event.Title, details.Title)
	if err != nil {
		return err
	}

	message := formatMessage(title, event.RequestedBy, details.Overview, tmdbLink(id), "")
	return s.dispatch(ctx, message, "")
}

// fetchPoster resolves a poster URL and downloads it into a transient
// file. Absence of a poster is soft; a failed download is not.
func (s *NotificationService) fetchPoster(ctx context.Context, event *domain.MediaEvent, id domain.MediaID, posterRef string) (string, error) {
	posterURL, err := s.posterURL(ctx, event, id, posterRef)
	if errors.Is(err, domain.ErrNoPosterFound) {
		log.WithField("tmdbID", event.TMDBID).Warn("no poster found, sending text notification")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolving poster url: %w", err)
	}

	path, err := s.posters.Download(ctx, posterURL)
	if err != nil {
		return "", fmt.Errorf("downloading poster: %w", err)
	}
	return path, nil
}

// posterURL prefers the webhook-supplied image, then the reference from
// the details response, then the provider image listing in the primary
// language with a languageless fallback.
func (s *NotificationService) posterURL(ctx context.Context, event *domain.MediaEvent, id domain.MediaID, posterRef string) (string, error) {
	if event.ImageURL != "" {
		return event.ImageURL, nil
	}
	if posterRef != "" {
		return s.cdnURL(posterRef), nil
	}

	for _, language := range []string{s.cfg.ImageCode(), ""} {
		refs, err := s.provider.Posters(ctx, id.SeriesID(), language)
		if err != nil {
			return "", fmt.Errorf("listing posters: %w", err)
		}
		if len(refs) > 0 {
			return s.cdnURL(refs[0]), nil
		}
	}
	return "", domain.ErrNoPosterFound
}

func (s *NotificationService) cdnURL(posterRef string) string {
	return fmt.Sprintf("%s/%s%s", s.cfg.ImageCDNBaseURL, posterSize, posterRef)
}

// dispatch sends the notification and releases the poster file exactly
// once after the gateway call returns, on every path.
func (s *NotificationService) dispatch(ctx context.Context, message, posterPath string) error {
	if posterPath != "" {
		defer s.releasePoster(posterPath)

		if err := s.messenger.SendImage(ctx, s.cfg.WhatsAppPhone, message, posterPath); err != nil {
			metrics.DispatchFailures.Inc()
			return fmt.Errorf("sending image message: %w", err)
		}
		return nil
	}

	if err := s.messenger.SendText(ctx, s.cfg.WhatsAppPhone, message); err != nil {
		metrics.DispatchFailures.Inc()
		return fmt.Errorf("sending text message: %w", err)
	}
	return nil
}

func (s *NotificationService) releasePoster(path string) {
	if err := os.Remove(path); err != nil {
		log.WithFields(log.Fields{
			"path":  path,
			"error": err,
		}).Error("failed to remove transient poster file")
	}
}

// pickTitle returns the first non-empty candidate. The message template
// cannot render without a title, so exhausting all candidates is an error.
func pickTitle(candidates ...string) (string, error) {
	for _, candidate := range candidates {
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", domain.ErrTitleNotFound
}
