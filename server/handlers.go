package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/mathops"
	"github.com/poiesic/librarian/recommend"
)

const maxBodyBytes = 1 << 16

type booksResponse struct {
	Titles []string `json:"titles"`
	Count  int      `json:"count"`
}

type summaryResponse struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type healthResponse struct {
	Status string                `json:"status"`
	Books  int                   `json:"books"`
	Caches recommend.CacheReport `json:"caches"`
}

type historyResponse struct {
	Entries []*core.RequestLogEntry `json:"entries"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Books:  len(s.service.Titles()),
		Caches: s.service.CacheStats(),
	})
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	titles := s.service.Titles()
	respondJSON(w, http.StatusOK, booksResponse{Titles: titles, Count: len(titles)})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, describeValidation(err))
		return
	}

	result, err := s.service.Recommend(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			respondError(w, http.StatusBadRequest, CodeEmptyQuery, core.EmptyQueryPrompt)
			return
		}
		s.logger.Error("recommendation failed", "err", err)
		respondError(w, http.StatusInternalServerError, CodeInternal, "recommendation failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	req := SummaryRequest{Title: r.URL.Query().Get("title")}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, describeValidation(err))
		return
	}

	summary := s.service.Summary(r.Context(), req.Title)
	respondJSON(w, http.StatusOK, summaryResponse{Title: req.Title, Summary: summary})
}

func (s *Server) handleMath(w http.ResponseWriter, r *http.Request) {
	op, err := mathops.ParseOperation(chi.URLParam(r, "operation"))
	if err != nil {
		respondError(w, http.StatusNotFound, CodeUnknownOperation, err.Error())
		return
	}

	var body MathRequest
	if !s.decode(w, r, &body) {
		return
	}

	req := mathops.Request{Operation: op, Log: true}
	if body.Log != nil {
		req.Log = *body.Log
	}
	switch op {
	case mathops.OpPower:
		operands := powerOperands{Base: body.Base, Exponent: body.Exponent}
		if err := s.validate.Struct(&operands); err != nil {
			respondError(w, http.StatusBadRequest, CodeValidation, describeValidation(err))
			return
		}
		req.Base, req.Exponent = *body.Base, *body.Exponent
	default:
		operand := countOperand{N: body.N}
		if err := s.validate.Struct(&operand); err != nil {
			respondError(w, http.StatusBadRequest, CodeValidation, describeValidation(err))
			return
		}
		req.N = *body.N
	}

	outcome, err := s.service.Compute(r.Context(), req)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, outcome)
	case errors.Is(err, mathops.ErrNegativeInput), errors.Is(err, mathops.ErrInputTooLarge):
		respondError(w, http.StatusUnprocessableEntity, CodeOutOfRange, err.Error())
	case errors.Is(err, mathops.ErrUnknownOperation):
		respondError(w, http.StatusNotFound, CodeUnknownOperation, err.Error())
	default:
		s.logger.Error("math operation failed", "operation", op, "err", err)
		respondError(w, http.StatusInternalServerError, CodeInternal, "computation failed")
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	req := HistoryRequest{Limit: DefaultHistoryLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, CodeValidation, "limit must be an integer")
			return
		}
		req.Limit = limit
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, describeValidation(err))
		return
	}

	entries, err := s.service.History(r.Context(), req.Limit)
	if err != nil {
		s.logger.Error("history lookup failed", "err", err)
		respondError(w, http.StatusInternalServerError, CodeInternal, "history unavailable")
		return
	}
	if entries == nil {
		entries = []*core.RequestLogEntry{}
	}
	respondJSON(w, http.StatusOK, historyResponse{Entries: entries})
}

// decode reads a JSON body into v, responding with 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidJSON, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
