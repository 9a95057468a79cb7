package wordbank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/wordbank/internal/review"
)

type yamlWordBank struct {
	Cards []review.ReviewCard `yaml:"cards"`
}

// YAMLRepository implements Repository on a single YAML file.
// The file is read on every call so edits made by hand are picked up.
type YAMLRepository struct {
	path string
	mu   sync.Mutex
}

// NewYAMLRepository creates a YAMLRepository. The file is created on the first save.
func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

func (r *YAMLRepository) GetReviewCard(_ context.Context, word string) (*review.ReviewCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, card := range cards {
		if card.Word.Text == word {
			return &card, nil
		}
	}
	return nil, nil
}

func (r *YAMLRepository) SaveReviewCard(_ context.Context, card review.ReviewCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range cards {
		if cards[i].Word.Text == card.Word.Text {
			cards[i] = card
			replaced = true
			break
		}
	}
	if !replaced {
		cards = append(cards, card)
	}
	return r.write(cards)
}

func (r *YAMLRepository) GetDueReviewCards(_ context.Context, now time.Time) ([]review.ReviewCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.load()
	if err != nil {
		return nil, err
	}
	due := make([]review.ReviewCard, 0, len(cards))
	for _, card := range cards {
		if card.Metadata.IsDue(now) {
			due = append(due, card)
		}
	}
	return due, nil
}

func (r *YAMLRepository) FindAll(_ context.Context) ([]review.ReviewCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *YAMLRepository) DeleteReviewCard(_ context.Context, word string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cards, err := r.load()
	if err != nil {
		return err
	}
	kept := cards[:0]
	for _, card := range cards {
		if card.Word.Text != word {
			kept = append(kept, card)
		}
	}
	if len(kept) == len(cards) {
		return nil
	}
	return r.write(kept)
}

func (r *YAMLRepository) load() ([]review.ReviewCard, error) {
	contents, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}

	var bank yamlWordBank
	if err := yaml.Unmarshal(contents, &bank); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err)
	}
	return bank.Cards, nil
}

// write replaces the file through a rename so a crash never leaves half a file behind.
func (r *YAMLRepository) write(cards []review.ReviewCard) error {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Word.Text < cards[j].Word.Text
	})

	contents, err := yaml.Marshal(yamlWordBank{Cards: cards})
	if err != nil {
		return fmt.Errorf("yaml.Marshal > %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(contents); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file.Write > %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", r.path, err)
	}
	return nil
}
