package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/amaumene/jellysook/internal/config"
	"github.com/amaumene/jellysook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	details    map[string]*domain.MediaDetails
	detailsErr error
	videos     map[string][]domain.Video
	videosErr  error
	posters    map[string][]string
	postersErr error

	videoCalls  []string
	posterCalls []string
}

func (f *fakeProvider) Details(ctx context.Context, id domain.MediaID, language string) (*domain.MediaDetails, error) {
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	if details, ok := f.details[id.Path()]; ok {
		return details, nil
	}
	return &domain.MediaDetails{}, nil
}

func (f *fakeProvider) Videos(ctx context.Context, id domain.MediaID, language string) ([]domain.Video, error) {
	f.videoCalls = append(f.videoCalls, id.Path())
	if f.videosErr != nil {
		return nil, f.videosErr
	}
	return f.videos[id.Path()], nil
}

func (f *fakeProvider) Posters(ctx context.Context, id domain.MediaID, language string) ([]string, error) {
	f.posterCalls = append(f.posterCalls, id.Path())
	if f.postersErr != nil {
		return nil, f.postersErr
	}
	return f.posters[id.Path()], nil
}

type fakeDownloader struct {
	err   error
	calls []string
	paths []string
}

func (f *fakeDownloader) Download(ctx context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return "", f.err
	}

	file, err := os.CreateTemp("", "notify_test_poster_*")
	if err != nil {
		return "", err
	}
	file.Close()
	f.paths = append(f.paths, file.Name())
	return file.Name(), nil
}

type fakeMessenger struct {
	textErr  error
	imageErr error

	texts      []string
	captions   []string
	imagePaths []string
	phones     []string
}

func (f *fakeMessenger) SendText(ctx context.Context, phone, message string) error {
	f.phones = append(f.phones, phone)
	f.texts = append(f.texts, message)
	return f.textErr
}

func (f *fakeMessenger) SendImage(ctx context.Context, phone, caption, imagePath string) error {
	f.phones = append(f.phones, phone)
	f.captions = append(f.captions, caption)
	f.imagePaths = append(f.imagePaths, imagePath)
	return f.imageErr
}

func testConfig() *config.Config {
	return &config.Config{
		Language:        "fr-FR",
		Language2:       "en-US",
		ImageCDNBaseURL: "https://image.tmdb.org/t/p",
		WhatsAppPhone:   "12345@s.whatsapp.net",
	}
}

func newTestService(provider *fakeProvider, posters *fakeDownloader, messenger *fakeMessenger) *NotificationService {
	return NewNotificationService(testConfig(), provider, posters, messenger)
}

func TestProcess_MovieEndToEnd(t *testing.T) {
	provider := &fakeProvider{
		details: map[string]*domain.MediaDetails{
			"movie/603": {
				Title:     "The Matrix",
				Overview:  "A hacker discovers...",
				PosterRef: "/poster.jpg",
			},
		},
		videos: map[string][]domain.Video{
			"movie/603": {
				{Key: "abc123", Name: "Bande-annonce officielle"},
				{Key: "def456", Name: "Official Trailer"},
			},
		},
	}
	posters := &fakeDownloader{}
	messenger := &fakeMessenger{}
	svc := newTestService(provider, posters, messenger)

	event := &domain.MediaEvent{
		MediaType:   "movie",
		TMDBID:      "603",
		RequestedBy: "alice",
	}

	err := svc.Process(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, messenger.captions, 1, "movie with poster must go out as an image message")
	caption := messenger.captions[0]
	assert.Contains(t, caption, "*The Matrix*\n")
	assert.Contains(t, caption, "  → added by alice\n")
	assert.Contains(t, caption, "```A hacker discovers...```\n")
	assert.Contains(t, caption, "● TMDb: https://tmdb.org/movie/603")
	assert.Contains(t, caption, "• Trailer FR: https://youtu.be/abc123")
	assert.Contains(t, caption, "• Trailer EN: https://youtu.be/def456")

	assert.Equal(t, []string{"12345@s.whatsapp.net"}, messenger.phones)
	assert.Equal(t, []string{"https://image.tmdb.org/t/p/w342/poster.jpg"}, posters.calls)

	require.Len(t, messenger.imagePaths, 1)
	_, statErr := os.Stat(messenger.imagePaths[0])
	assert.True(t, os.IsNotExist(statErr), "transient poster file must not survive dispatch")
}

func TestProcess_EpisodeNoOverview(t *testing.T) {
	provider := &fakeProvider{
		details: map[string]*domain.MediaDetails{
			"tv/1396": {Title: "Breaking Bad"},
		},
	}
	posters := &fakeDownloader{}
	messenger := &fakeMessenger{}
	svc := newTestService(provider, posters, messenger)

	event := &domain.MediaEvent{
		MediaType:   "tv",
		TMDBID:      "1396",
		RequestedBy: "bob",
		Title:       "Episode added • Breaking Bad S05E14",
	}

	err := svc.Process(context.Background(), event)
	require.NoError(t, err)

	assert.Empty(t, posters.calls, "episode branch must not fetch posters")
	assert.Empty(t, provider.videoCalls, "episode branch must not search trailers")
	assert.Empty(t, messenger.captions)

	require.Len(t, messenger.texts, 1)
	message := messenger.texts[0]
	assert.Contains(t, message, "*Episode added • Breaking Bad S05E14*\n")
	assert.NotContains(t, message, "```", "no overview block when the provider overview is empty")
	assert.Contains(t, message, "● TMDb: https://tmdb.org/tv/1396")
	assert.NotContains(t, message, "Trailer")
}

func TestProcess_SeasonCanonicalizesToSeries(t *testing.T) {
	provider := &fakeProvider{
		details: map[string]*domain.MediaDetails{
			"tv/1234/season/2": {Title: "Season 2", Overview: "The story continues."},
		},
		videos: map[string][]domain.Video{
			"tv/1234": {{Key: "xyz789", Name: "Trailer"}},
		},
		posters: map[string][]string{
			"tv/1234": {"/season-poster.jpg"},
		},
	}
	posters := &fakeDownloader{}
	messenger := &fakeMessenger{}
	svc := newTestService(provider, posters, messenger)

	event := &domain.MediaEvent{
		MediaType:    "tv",
		TMDBID:       "1234",
		SeasonNumber: "2",
		SerieName:    "some-show",
		RequestedBy:  "carol",
	}

	err := svc.Process(context.Background(), event)
	require.NoError(t, err)

	for _, call := range provider.videoCalls {
		assert.Equal(t, "tv/1234", call, "trailer search must use the series id, not the season id")
	}
	for _, call := range provider.posterCalls {
		assert.Equal(t, "tv/1234", call, "poster lookup must use the series id, not the season id")
	}

	require.Len(t, messenger.captions, 1)
	assert.Contains(t, messenger.captions[0], "● TVDb: https://thetvdb.com/series/some-show/seasons/official/2")
	assert.Contains(t, messenger.captions[0], "• Trailer: https://youtu.be/xyz789")
}

func TestProcess_PosterReleasedWhenDispatchFails(t *testing.T) {
	provider := &fakeProvider{
		details: map[string]*domain.MediaDetails{
			"movie/603": {Title: "The Matrix", PosterRef: "/poster.jpg"},
		},
	}
	posters := &fakeDownloader{}
	messenger := &fakeMessenger{imageErr: errors.New("gateway rejected message with status 500")}
	svc := newTestService(provider, posters, messenger)

	event := &domain.MediaEvent{MediaType: "movie", TMDBID: "603", RequestedBy: "alice"}

	err := svc.Process(context.Background(), event)
	require.Error(t, err)

	require.Len(t, posters.paths, 1)
	_, statErr := os.Stat(posters.paths[0])
	assert.True(t, os.IsNotExist(statErr), "poster must be released even when dispatch fails")
}

func TestProcess_NoPosterFallsBackToText(t *testing.T) {
	provider := &fakeProvider{
		details: map[string]*domain.MediaDetails{
			"movie/603": {Title: "The Matrix"},
		},
	}
	posters := &fakeDownloader{}
	messenger := &fakeMessenger{}
	svc := newTestService(provider, posters, messenger)

	event := &domain.MediaEvent{MediaType: "movie", TMDBID: "603", RequestedBy: "alice"}

	err := svc.Process(context.Background(), event)
	require.NoError(t, err)

	assert.Empty(t, posters.calls, "no poster reference anywhere means no download")
	assert.Empty(t, messenger.captions)
	assert.Len(t, messenger.texts, 1)
}

func TestProcess_WebhookImageURLWins(t *testing.T) {
	provider := &fakeProvider{
		details: map[string]*domain.MediaDetails{
			"movie/603": {Title: "The Matrix", PosterRef: "/poster.jpg"},
		},
	}
	posters := &fakeDownloader{}
	messenger := &fakeMessenger{}
	svc := newTestService(provider, posters, messenger)

	event := &domain.MediaEvent{
		MediaType:   "movie",
		TMDBID:      "603",
		RequestedBy: "alice",
		ImageURL:    "https://example.com/override.jpg",
	}

	err := svc.Process(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/override.jpg"}, posters.calls)
}

func TestProcess_UpstreamFailurePropagates(t *testing.T) {
	provider := &fakeProvider{detailsErr: errors.New("did not receive a 200 OK status, received 503")}
	posters := &fakeDownloader{}
	messenger := &fakeMessenger{}
	svc := newTestService(provider, posters, messenger)

	event := &domain.MediaEvent{MediaType: "movie", TMDBID: "603", RequestedBy: "alice"}

	err := svc.Process(context.Background(), event)
	require.Error(t, err)
	assert.Empty(t, messenger.texts, "no partial notification on upstream failure")
	assert.Empty(t, messenger.captions)
}

func TestProcess_MalformedID(t *testing.T) {
	svc := newTestService(&fakeProvider{}, &fakeDownloader{}, &fakeMessenger{})

	event := &domain.MediaEvent{MediaType: "movie", TMDBID: "not-a-number"}

	err := svc.Process(context.Background(), event)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedEvent))
}

func TestProcess_MissingTitleIsHardFailure(t *testing.T) {
	provider := &fakeProvider{
		details: map[string]*domain.MediaDetails{
			"movie/603": {Overview: "An overview without a title."},
		},
	}
	messenger := &fakeMessenger{}
	svc := newTestService(provider, &fakeDownloader{}, messenger)

	event := &domain.MediaEvent{MediaType: "movie", TMDBID: "603", RequestedBy: "alice"}

	err := svc.Process(context.Background(), event)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTitleNotFound))
	assert.Empty(t, messenger.texts)
	assert.Empty(t, messenger.captions)
}
