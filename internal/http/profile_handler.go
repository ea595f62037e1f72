package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindfit/internal/service"
)

// ProfileHandler cubre estado, ánimo, cuestionario, preferencias y tutorial.
type ProfileHandler struct {
	logger *zap.Logger
	state  *service.StateService
	scorer service.QuestionnaireScorer
}

func NewProfileHandler(logger *zap.Logger, state *service.StateService) *ProfileHandler {
	return &ProfileHandler{logger: logger, state: state}
}

// GetState maneja GET /state.
func (h *ProfileHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.state.Snapshot()})
}

// SetMood maneja PUT /mood. mood null limpia la selección.
func (h *ProfileHandler) SetMood(c *gin.Context) {
	var req struct {
		Mood *string `json:"mood"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.state.SetMood(req.Mood)
	c.JSON(http.StatusOK, gin.H{"mood": h.state.Mood()})
}

// GetQuestionnaire maneja GET /questionnaire.
func (h *ProfileHandler) GetQuestionnaire(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.scorer.Questions()})
}

// SubmitQuestionnaire maneja POST /questionnaire: puntúa y persiste los
// rasgos completos. El contrato de entrada se valida acá, no en el scorer.
func (h *ProfileHandler) SubmitQuestionnaire(c *gin.Context) {
	var req struct {
		Answers []int `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.Answers) != service.ResponseCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly 10 answers required"})
		return
	}
	for _, a := range req.Answers {
		if a < 0 || a > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "answers must be between 0 and 10"})
			return
		}
	}

	traits := h.scorer.Score(req.Answers)
	if err := h.state.SaveTraits(c.Request.Context(), traits); err != nil {
		h.logger.Error("save traits failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save traits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"traits": traits})
}

// UpdatePreferences maneja PATCH /preferences con merge campo por campo.
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	var patch service.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	prefs, err := h.state.UpdatePreferences(c.Request.Context(), patch)
	if err != nil {
		h.logger.Error("update preferences failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// GetTutorial maneja GET /tutorial.
func (h *ProfileHandler) GetTutorial(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"seen": h.state.TutorialSeen(c.Request.Context())})
}

// MarkTutorialSeen maneja POST /tutorial/seen.
func (h *ProfileHandler) MarkTutorialSeen(c *gin.Context) {
	if err := h.state.MarkTutorialSeen(c.Request.Context()); err != nil {
		h.logger.Error("mark tutorial failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save flag"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"seen": true})
}
