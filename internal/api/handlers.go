package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/claude-memory/claude-memory/internal/engine"
)

func (s *Server) handleHealth(c *gin.Context) {
	SuccessResponse(c, "ok", gin.H{"store_path": s.eng.Root()})
}

func (s *Server) handleRemember(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
		Gate    string `json:"gate" binding:"required"`
		Person  string `json:"person"`
		Project string `json:"project"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequestError(c, err.Error())
		return
	}

	result, err := s.eng.Remember(c.Request.Context(), req.Content, req.Gate, req.Person, req.Project)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidGate) {
			BadRequestError(c, err.Error())
		} else {
			InternalError(c, err.Error())
		}
		return
	}
	SuccessResponse(c, result, nil)
}

func (s *Server) handleRecall(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequestError(c, err.Error())
		return
	}

	result, err := s.eng.Recall(c.Request.Context(), req.Query)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	SuccessResponse(c, result, nil)
}

func (s *Server) handleReflect(c *gin.Context) {
	result, err := s.eng.Reflect(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	SuccessResponse(c, result, nil)
}

func (s *Server) handleIdentity(c *gin.Context) {
	result, err := s.eng.Identity(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	SuccessResponse(c, result, nil)
}

func (s *Server) handleForget(c *gin.Context) {
	var req struct {
		MemoryID string `json:"memory_id" binding:"required"`
		Reason   string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequestError(c, err.Error())
		return
	}

	result, err := s.eng.Forget(c.Request.Context(), req.MemoryID, req.Reason)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	SuccessResponse(c, result, nil)
}

func (s *Server) handleAutoExtract(c *gin.Context) {
	var req struct {
		Transcript string `json:"transcript" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequestError(c, err.Error())
		return
	}

	result, err := s.eng.AutoExtract(c.Request.Context(), req.Transcript)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	SuccessResponse(c, result, nil)
}

func (s *Server) handleFading(c *gin.Context) {
	fading, err := s.eng.FadingMemories()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	SuccessResponse(c, "ok", gin.H{"count": len(fading), "memories": fading})
}
