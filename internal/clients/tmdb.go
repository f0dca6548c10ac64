package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/amaumene/jellysook/internal/domain"
)

type tmdbDetailsResponse struct {
	Title      string `json:"title"`
	Name       string `json:"name"`
	Overview   string `json:"overview"`
	PosterPath string `json:"poster_path"`
}

type tmdbVideosResponse struct {
	Results []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"results"`
}

type tmdbImagesResponse struct {
	Posters []struct {
		FilePath string `json:"file_path"`
	} `json:"posters"`
}

type tmdbClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTMDBClient returns a metadata provider backed by the TMDB HTTP API.
// Every request is bounded by the given timeout.
func NewTMDBClient(baseURL, apiKey string, timeout time.Duration) domain.MetadataProvider {
	return &tmdbClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *tmdbClient) Details(ctx context.Context, id domain.MediaID, language string) (*domain.MediaDetails, error) {
	var decoded tmdbDetailsResponse
	if err := c.get(ctx, id.Path(), language, &decoded); err != nil {
		return nil, fmt.Errorf("fetching details: %w", err)
	}

	title := decoded.Title
	if title == "" {
		title = decoded.Name
	}

	return &domain.MediaDetails{
		Title:     title,
		Overview:  decoded.Overview,
		PosterRef: decoded.PosterPath,
	}, nil
}

func (c *tmdbClient) Videos(ctx context.Context, id domain.MediaID, language string) ([]domain.Video, error) {
	var decoded tmdbVideosResponse
	if err := c.get(ctx, id.Path()+"/videos", language, &decoded); err != nil {
		return nil, fmt.Errorf("fetching videos: %w", err)
	}

	videos := make([]domain.Video, 0, len(decoded.Results))
	for _, result := range decoded.Results {
		videos = append(videos, domain.Video{Key: result.Key, Name: result.Name})
	}
	return videos, nil
}

func (c *tmdbClient) Posters(ctx context.Context, id domain.MediaID, language string) ([]string, error) {
	var decoded tmdbImagesResponse
	if err := c.get(ctx, id.Path()+"/images", language, &decoded); err != nil {
		return nil, fmt.Errorf("fetching images: %w", err)
	}

	refs := make([]string, 0, len(decoded.Posters))
	for _, poster := range decoded.Posters {
		refs = append(refs, poster.FilePath)
	}
	return refs, nil
}

func (c *tmdbClient) get(ctx context.Context, path, language string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if language != "" {
		params.Set("language", language)
	}
	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("did not receive a 200 OK status, received %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
