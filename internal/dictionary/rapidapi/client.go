package rapidapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/wordbank/internal/dictionary"
	"github.com/at-ishikawa/wordbank/internal/review"
)

type Config struct {
	Host           string
	Key            string
	CacheDirectory string
}

// Client looks words up in WordsAPI and caches every response on disk.
type Client struct {
	httpClient *resty.Client
	fileCache  *dictionary.FileCache
	retry      dictionary.RetryConfig
	logger     *slog.Logger
}

func NewClient(config Config, retry dictionary.RetryConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := resty.New().
		SetBaseURL(fmt.Sprintf("https://%s", config.Host)).
		SetHeader("x-rapidapi-host", config.Host).
		SetHeader("x-rapidapi-key", config.Key).
		SetTimeout(10 * time.Second)

	return &Client{
		httpClient: httpClient,
		fileCache:  dictionary.NewFileCache(config.CacheDirectory),
		retry:      retry,
		logger:     logger.With(slog.String("component", "rapidapi")),
	}
}

func (c *Client) lookupAPI(ctx context.Context, word string) ([]byte, error) {
	res, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("word", word).
		Get("/words/{word}")
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return res.Body(), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", dictionary.ErrWordNotFound, word)
	}
	return nil, &dictionary.StatusError{StatusCode: res.StatusCode(), Body: string(res.Body())}
}

// Lookup returns the dictionary entry of word.
func (c *Client) Lookup(ctx context.Context, word string) (review.Word, error) {
	contents, err := c.fileCache.Fetch(word, func() ([]byte, error) {
		var body []byte
		err := dictionary.Retry(ctx, c.retry, c.logger, func() error {
			b, err := c.lookupAPI(ctx, word)
			if err != nil {
				return err
			}
			// only complete bodies go into the cache
			var probe json.RawMessage
			if err := json.Unmarshal(b, &probe); err != nil {
				return fmt.Errorf("json.Unmarshal > %w", err)
			}
			body = b
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("c.lookupAPI(%s) > %w", word, err)
		}
		return body, nil
	})
	if err != nil {
		return review.Word{}, fmt.Errorf("fileCache.Fetch > %w", err)
	}

	var resp Response
	if err := json.Unmarshal(contents, &resp); err != nil {
		return review.Word{}, fmt.Errorf("json.Unmarshal > %w", err)
	}
	if len(resp.Results) == 0 {
		return review.Word{}, fmt.Errorf("%w: %s has no definitions", dictionary.ErrWordNotFound, word)
	}
	c.logger.Debug("looked up word", slog.String("word", word), slog.Int("results", len(resp.Results)))
	return resp.ToWord(), nil
}
