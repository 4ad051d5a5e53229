// Package bucket implementa files.Uploader contra el blob store externo
// (API estilo storage de objetos: POST /object/{bucket}/{key}, lectura
// pública vía /object/public/{bucket}/{key}).
package bucket

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-market/internal/platform/httpclient"
)

var ErrNotConfigured = errors.New("bucket client not configured")

type Config struct {
	BaseURL string
	APIKey  string
	Bucket  string
	Timeout time.Duration
}

type Client struct {
	http   *httpclient.Client
	apiKey string
	bucket string
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		bucket = "pet-images"
	}
	return &Client{
		http:   hc,
		apiKey: strings.TrimSpace(cfg.APIKey),
		bucket: bucket,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// Upload sube el objeto y devuelve su URL pública durable.
func (c *Client) Upload(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return "", errors.New("bucket: empty object key")
	}

	err := c.http.DoRaw(ctx, "POST", "/object/"+c.bucket+"/"+key, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, contentType, data, nil)
	if err != nil {
		return "", err
	}

	return c.http.BaseURL + "/object/public/" + c.bucket + "/" + key, nil
}
