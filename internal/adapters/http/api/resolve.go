package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/internal/domain/types"
	"github.com/xentee/skinticket/pkg/logger"
)

// Searcher resolves and ranks item queries.
type Searcher interface {
	Search(ctx context.Context, query string) []model.Candidate
}

// ResolveHandler lets operators run the bot's item search directly.
type ResolveHandler struct {
	searcher Searcher
	maxLen   int
	logger   logger.Logger
}

// NewResolveHandler creates a resolve handler accepting queries of at most
// maxLen characters.
func NewResolveHandler(searcher Searcher, maxLen int, l logger.Logger) *ResolveHandler {
	return &ResolveHandler{searcher: searcher, maxLen: maxLen, logger: l}
}

// HandleResolve handles GET /resolve?q=<query> requests.
func (h *ResolveHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, ErrMissingQuery)
		return
	}
	if utf8.RuneCountInString(q) > h.maxLen {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: at most %d characters", ErrQueryTooLong, h.maxLen))
		return
	}

	start := time.Now()
	cands := h.searcher.Search(r.Context(), q)
	h.logger.Debug(r.Context(), "operator resolve",
		logger.String("query", q),
		logger.Int("candidates", len(cands)),
		logger.Duration("took", time.Since(start)))

	writeJSON(w, http.StatusOK, types.ResolveResponse{
		Query:      q,
		Count:      len(cands),
		Candidates: types.FromCandidates(cands),
	})
}
