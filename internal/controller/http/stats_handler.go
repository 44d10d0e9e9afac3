package http

import (
	"errors"
	"net/http"
	"strconv"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsUseCase usecase.StatsUseCase
	logger       *logger.Logger
}

func NewStatsHandler(statsUseCase usecase.StatsUseCase, logger *logger.Logger) *StatsHandler {
	return &StatsHandler{statsUseCase: statsUseCase, logger: logger}
}

func (h *StatsHandler) respondError(c *gin.Context, err error, what string) {
	if errors.Is(err, usecase.ErrStoreUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats store is not configured"})
		return
	}
	h.logger.Error("Failed to build %s report: %v", what, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build " + what + " report"})
}

// Dashboard godoc
// @Summary      Admin dashboard headline numbers
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  usecase.DashboardStats
// @Router       /admin/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsUseCase.Dashboard(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// APIStats godoc
// @Summary      Daily API call counts
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        days query int false "Window in days (max 30, default 7)"
// @Success      200  {object}  usecase.APIStatsReport
// @Router       /admin/api-stats [get]
func (h *StatsHandler) APIStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	report, err := h.statsUseCase.APIStats(c.Request.Context(), days)
	if err != nil {
		h.respondError(c, err, "api stats")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *StatsHandler) Activity(c *gin.Context) {
	report, err := h.statsUseCase.Activity(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "activity")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *StatsHandler) KVInfo(c *gin.Context) {
	report, err := h.statsUseCase.KVInfo(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "kv info")
		return
	}
	c.JSON(http.StatusOK, report)
}
