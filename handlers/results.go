package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comment-board/logger"
	"comment-board/tally"
)

// ResultsHandler serves the board-wide vote tally.
type ResultsHandler struct {
	store tally.VoteStore
}

// NewResultsHandler creates a new ResultsHandler instance
func NewResultsHandler(s tally.VoteStore) *ResultsHandler {
	return &ResultsHandler{store: s}
}

func (h *ResultsHandler) Results(c *gin.Context) {
	counts, err := h.store.Counts(c.Request.Context())
	if err != nil {
		logger.For(c.Request.Context()).WithError(err).Error("Failed to get results")
		c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to get results"})
		return
	}
	c.JSON(http.StatusOK, counts)
}
