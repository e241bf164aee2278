package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/ledger/reflection"
)

type answerRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) listReflections(c *gin.Context) {
	list, err := s.ledger.Reflections(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, list, map[string]any{"total": len(list)})
}

// createReflection answers the current prompt; the client never picks the
// prompt itself.
func (s *Server) createReflection(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	r, next, err := s.ledger.SaveReflection(c.Request.Context(), req.Answer)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, apiResponse{
		Code:    0,
		Message: "created",
		Data:    r,
		Meta:    map[string]any{"nextPrompt": next},
	})
}

func (s *Server) updateReflection(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	r, err := s.ledger.UpdateReflection(c.Request.Context(), c.Param("id"), req.Answer)
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, r, nil)
}

func (s *Server) deleteReflection(c *gin.Context) {
	if err := s.ledger.DeleteReflection(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, gin.H{"id": c.Param("id")}, nil)
}

func (s *Server) currentPrompt(c *gin.Context) {
	p, err := s.ledger.CurrentPrompt(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, p, nil)
}

func (s *Server) skipPrompt(c *gin.Context) {
	p, err := s.ledger.SkipPrompt(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, p, nil)
}

func (s *Server) getPromptState(c *gin.Context) {
	st, err := s.ledger.PromptState(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, st, nil)
}

func (s *Server) putPromptState(c *gin.Context) {
	var st reflection.State
	if err := c.ShouldBindJSON(&st); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := s.ledger.SetPromptState(c.Request.Context(), st); err != nil {
		s.fail(c, err)
		return
	}
	Ok(c, st, nil)
}
