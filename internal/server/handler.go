// Package server exposes the word bank over a JSON HTTP API.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/wordbank/internal/config"
	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/statistics"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

// Handler serves the word bank endpoints.
type Handler struct {
	repo       wordbank.Repository
	scheduler  *review.Scheduler
	addWord    *wordbank.AddWordUseCase
	removeWord *wordbank.RemoveWordUseCase
	reviewWord *wordbank.ReviewWordUseCase
	dueCards   *wordbank.GetDueReviewCardsUseCase
	validate   *validator.Validate
	translator ut.Translator
	logger     *slog.Logger
}

func NewHandler(repo wordbank.Repository, lookuper wordbank.Lookuper, scheduler *review.Scheduler, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	validate, trans, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("config.NewValidator() > %w", err)
	}
	return &Handler{
		repo:       repo,
		scheduler:  scheduler,
		addWord:    wordbank.NewAddWordUseCase(repo, lookuper, scheduler, logger),
		removeWord: wordbank.NewRemoveWordUseCase(repo),
		reviewWord: wordbank.NewReviewWordUseCase(repo, scheduler, logger),
		dueCards:   wordbank.NewGetDueReviewCardsUseCase(repo, scheduler.Now),
		validate:   validate,
		translator: trans,
		logger:     logger.With(slog.String("component", "server")),
	}, nil
}

type addWordRequest struct {
	Word string `json:"word" validate:"required,max=100"`
}

type reviewWordRequest struct {
	Rating review.ReviewRating `json:"rating" validate:"required"`
}

type dueCardsResponse struct {
	Cards []review.ReviewCard `json:"cards"`
}

type previewResponse struct {
	Word    string                           `json:"word"`
	Ratings map[string]review.ReviewMetadata `json:"ratings"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetDueCards lists the due cards, oldest first. ?limit=N truncates the list.
func (h *Handler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.respondError(w, r, http.StatusBadRequest, "limit must be a non-negative integer", err)
			return
		}
		limit = n
	}

	cards, err := h.dueCards.DueCards(r.Context(), limit)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	if cards == nil {
		cards = []review.ReviewCard{}
	}
	h.respondJSON(w, http.StatusOK, dueCardsResponse{Cards: cards})
}

func (h *Handler) AddWord(w http.ResponseWriter, r *http.Request) {
	var req addWordRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	card, err := h.addWord.Add(r.Context(), req.Word)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, card)
}

func (h *Handler) GetWord(w http.ResponseWriter, r *http.Request) {
	card, ok := h.findCard(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, card)
}

func (h *Handler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	if err := h.removeWord.Remove(r.Context(), chi.URLParam(r, "word")); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewWord returns the metadata each rating would produce right now, without saving.
func (h *Handler) PreviewWord(w http.ResponseWriter, r *http.Request) {
	card, ok := h.findCard(w, r)
	if !ok {
		return
	}
	preview := h.scheduler.Preview(card.Metadata, h.scheduler.Now())
	response := previewResponse{
		Word:    card.Word.Text,
		Ratings: make(map[string]review.ReviewMetadata, len(preview)),
	}
	for rating, metadata := range preview {
		response.Ratings[rating.String()] = metadata
	}
	h.respondJSON(w, http.StatusOK, response)
}

func (h *Handler) ReviewWord(w http.ResponseWriter, r *http.Request) {
	var req reviewWordRequest
	if !h.decodeRequest(w, r, &req) {
		return
	}
	card, err := h.reviewWord.Review(r.Context(), chi.URLParam(r, "word"), req.Rating)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, card)
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	cards, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, statistics.Calculate(cards, h.scheduler.Now()))
}

func (h *Handler) findCard(w http.ResponseWriter, r *http.Request) (*review.ReviewCard, bool) {
	word := review.NormalizeWord(chi.URLParam(r, "word"))
	card, err := h.repo.GetReviewCard(r.Context(), word)
	if err != nil {
		h.respondDomainError(w, r, fmt.Errorf("repo.GetReviewCard(%s) > %w", word, err))
		return nil, false
	}
	if card == nil {
		h.respondDomainError(w, r, fmt.Errorf("%w: %s", wordbank.ErrWordNotFound, word))
		return nil, false
	}
	return card, true
}
