package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gortyum/feriadigital/pkg/config"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
)

const (
	defaultBaseURL             = "https://api.openweathermap.org/data/2.5"
	defaultTimeout             = 10 * time.Second
	responseBodyLimit    int64 = 1024
	openWeatherUnits           = "metric"
	defaultCountryCode         = "CL"
	defaultLanguage            = "es"
)

var errAPIKeyRequired = errors.New("openweathermap api key is required")

// Client wraps the OpenWeatherMap current-conditions API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	countryCode string
	language    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the OpenWeatherMap client from config.
func NewClient(cfg config.WeatherConfig, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimSpace(cfg.BaseURL),
		countryCode: strings.TrimSpace(cfg.CountryCode),
		language:    strings.TrimSpace(cfg.Language),
		httpClient:  &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.countryCode == "" {
		client.countryCode = defaultCountryCode
	}
	if client.language == "" {
		client.language = defaultLanguage
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// observation mirrors the fields of the OpenWeatherMap response the app uses.
type observation struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility *int `json:"visibility"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

// CurrentByCity fetches current conditions for the named city, scoped to the
// configured country code.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*Snapshot, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "weather client not configured")
	}
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}

	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s,%s", trimmed, c.countryCode))
	return c.fetch(ctx, query)
}

// CurrentByCoords fetches current conditions for a latitude/longitude pair.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "weather client not configured")
	}
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%g", lat))
	query.Set("lon", fmt.Sprintf("%g", lon))
	return c.fetch(ctx, query)
}

func (c *Client) fetch(ctx context.Context, query url.Values) (*Snapshot, error) {
	query.Set("appid", c.apiKey)
	query.Set("units", openWeatherUnits)
	query.Set("lang", c.language)

	endpoint := fmt.Sprintf("%s/weather?%s", strings.TrimRight(c.baseURL, "/"), query.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build weather request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute weather request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "weather request failed")
	}

	var obs observation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode weather response")
	}

	return newSnapshot(obs), nil
}
