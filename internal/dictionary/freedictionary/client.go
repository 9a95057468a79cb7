// Package freedictionary looks words up in the Free Dictionary API (https://dictionaryapi.dev).
package freedictionary

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/at-ishikawa/wordbank/internal/dictionary"
	"github.com/at-ishikawa/wordbank/internal/review"
)

const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

type Entry struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic"`
	Phonetics []Phonetic `json:"phonetics"`
	Meanings  []Meaning  `json:"meanings"`
}

type Phonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms"`
}

type Definition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
}

// ToWord merges the entries of one lookup. The API returns one entry per etymology.
func ToWord(word string, entries []Entry) review.Word {
	result := review.Word{Text: word}
	for _, entry := range entries {
		if result.Pronunciation == "" {
			result.Pronunciation = pronunciation(entry)
		}
		for _, meaning := range entry.Meanings {
			for _, d := range meaning.Definitions {
				definition := review.Definition{
					PartOfSpeech: meaning.PartOfSpeech,
					Meaning:      d.Definition,
					Synonyms:     d.Synonyms,
				}
				if len(definition.Synonyms) == 0 {
					definition.Synonyms = meaning.Synonyms
				}
				if d.Example != "" {
					definition.Examples = []string{d.Example}
				}
				result.Definitions = append(result.Definitions, definition)
			}
		}
	}
	return result
}

func pronunciation(entry Entry) string {
	text := entry.Phonetic
	if text == "" {
		for _, p := range entry.Phonetics {
			if p.Text != "" {
				text = p.Text
				break
			}
		}
	}
	return strings.Trim(text, "/")
}

type Client struct {
	httpClient *resty.Client
	retry      dictionary.RetryConfig
	logger     *slog.Logger
}

func NewClient(baseURL string, retry dictionary.RetryConfig, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(10 * time.Second)

	return &Client{
		httpClient: client,
		retry:      retry,
		logger:     logger.With(slog.String("component", "freedictionary")),
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Lookup returns the dictionary entry of word.
func (client *Client) Lookup(ctx context.Context, word string) (review.Word, error) {
	var entries []Entry
	if err := dictionary.Retry(ctx, client.retry, client.logger, func() error {
		response, err := client.lookup(ctx, word)
		if err != nil {
			return err
		}
		entries = response
		return nil
	}); err != nil {
		return review.Word{}, fmt.Errorf("client.lookup(%s) > %w", word, err)
	}

	result := ToWord(word, entries)
	if len(result.Definitions) == 0 {
		return review.Word{}, fmt.Errorf("%w: %s has no definitions", dictionary.ErrWordNotFound, word)
	}
	client.logger.Debug("looked up word", slog.String("word", word), slog.Int("definitions", len(result.Definitions)))
	return result, nil
}

func (client *Client) lookup(ctx context.Context, word string) ([]Entry, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetPathParam("word", word).
		SetResult(&[]Entry{}).
		Get("/{word}")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", dictionary.ErrWordNotFound, word)
	}
	if response.IsError() {
		return nil, &dictionary.StatusError{StatusCode: response.StatusCode(), Body: response.String()}
	}

	entries, ok := response.Result().(*[]Entry)
	if !ok || entries == nil {
		return nil, fmt.Errorf("unexpected response body: %s", response.String())
	}
	return *entries, nil
}
