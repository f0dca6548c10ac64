package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/amaumene/jellysook/internal/domain"
)

const (
	sendMessagePath = "/send/message"
	sendImagePath   = "/send/image"
	imageFieldName  = "image"
	imageMIMEType   = "image/png"
)

type whatsAppClient struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewWhatsAppClient returns a messenger backed by a WhatsApp HTTP gateway
// using basic authentication. The gateway handles its own delivery
// semantics; a non-2xx response is surfaced, never retried.
func NewWhatsAppClient(baseURL, username, password string, timeout time.Duration) domain.Messenger {
	return &whatsAppClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *whatsAppClient) SendText(ctx context.Context, phone, message string) error {
	form := url.Values{}
	form.Set("phone", phone)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendMessagePath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req)
}

func (c *whatsAppClient) SendImage(ctx context.Context, phone, caption, imagePath string) error {
	body, contentType, err := buildImageBody(phone, caption, imagePath)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendImagePath, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.send(req)
}

func buildImageBody(phone, caption, imagePath string) (*bytes.Buffer, string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"phone":    phone,
		"caption":  caption,
		"compress": "true",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", name, err)
		}
	}

	part, err := createImagePart(writer)
	if err != nil {
		return nil, "", fmt.Errorf("creating image part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copying image: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

func createImagePart(writer *multipart.Writer) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, imageFieldName, imageFieldName))
	header.Set("Content-Type", imageMIMEType)
	return writer.CreatePart(header)
}

func (c *whatsAppClient) send(req *http.Request) error {
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("gateway rejected message with status %d", resp.StatusCode)
	}
	return nil
}
