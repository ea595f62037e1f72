package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindfit/internal/domain"
	"mindfit/internal/service"
)

// DailyHandler expone la recomendación diaria y el historial.
type DailyHandler struct {
	logger  *zap.Logger
	state   *service.StateService
	stylist *service.StylistService
}

func NewDailyHandler(logger *zap.Logger, state *service.StateService, stylist *service.StylistService) *DailyHandler {
	return &DailyHandler{logger: logger, state: state, stylist: stylist}
}

// Options maneja GET /daily/options: vocabularios fijos para los selects.
func (h *DailyHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"moods":    domain.Moods(),
		"goals":    domain.GoalMoods(),
		"contexts": domain.Contexts(),
		"weathers": domain.Weathers(),
	})
}

// GenerateLook maneja POST /daily/look.
func (h *DailyHandler) GenerateLook(c *gin.Context) {
	var req struct {
		Goal    string `json:"goal" binding:"required"`
		Context string `json:"context" binding:"required"`
		Weather string `json:"weather" binding:"required"`
		Temp    *int   `json:"temp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	look, err := h.stylist.GenerateLook(c.Request.Context(), service.LookRequest{
		GoalMood: req.Goal,
		Context:  req.Context,
		Weather:  req.Weather,
		TempC:    *req.Temp,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMoodNotSet):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "select your current mood first"})
		case errors.Is(err, service.ErrLookInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "a look is already being generated"})
		case errors.Is(err, service.ErrLookRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many looks, slow down"})
		default:
			h.logger.Warn("generate look failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "generation failed, please try again"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"look": look})
}

// History maneja GET /history?limit=N, más recientes primero.
func (h *DailyHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, gin.H{"history": h.state.History(limit)})
}
