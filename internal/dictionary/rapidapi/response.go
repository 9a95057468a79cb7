// https://rapidapi.com/dpventures/api/wordsapi
package rapidapi

import (
	"encoding/json"
	"fmt"

	"github.com/at-ishikawa/wordbank/internal/review"
)

type Response struct {
	Word          string        `json:"word"`
	Syllables     Syllable      `json:"syllables"`
	Frequency     float64       `json:"frequency"`
	Pronunciation Pronunciation `json:"pronunciation"`
	Results       []Result      `json:"results"`
}

type Syllable struct {
	Count int      `json:"count"`
	List  []string `json:"list"`
}

type Pronunciation struct {
	All string `json:"all"`
}

func (p *Pronunciation) UnmarshalJSON(data []byte) error {
	// pronunciation can be either a struct or a simple string
	if len(data) > 0 && data[0] == '{' {
		var all struct {
			All string `json:"all"`
		}
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		p.All = all.All
		return nil
	}
	if err := json.Unmarshal(data, &p.All); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	return nil
}

type Result struct {
	Definition   string   `json:"definition"`
	Derivation   []string `json:"derivation,omitempty"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Synonyms     []string `json:"synonyms"`
	SimilarTo    []string `json:"similarTo,omitempty"`
	TypeOf       []string `json:"typeOf,omitempty"`
	Examples     []string `json:"examples"`
}

// ToWord converts the response into the word stored on a review card.
func (r Response) ToWord() review.Word {
	definitions := make([]review.Definition, 0, len(r.Results))
	for _, result := range r.Results {
		synonyms := result.Synonyms
		if len(synonyms) == 0 {
			synonyms = result.SimilarTo
		}
		definitions = append(definitions, review.Definition{
			PartOfSpeech: result.PartOfSpeech,
			Meaning:      result.Definition,
			Examples:     result.Examples,
			Synonyms:     synonyms,
		})
	}
	return review.Word{
		Text:          r.Word,
		Pronunciation: r.Pronunciation.All,
		Definitions:   definitions,
	}
}
