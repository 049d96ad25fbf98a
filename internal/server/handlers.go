package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/h2hsecure/usercards/internal/domain"
	"github.com/h2hsecure/usercards/internal/view"
)

const ViewIdHeader = "X-View-Id"

func viewPath(id string) string {
	return "/views/" + id
}

// mountHandler activates a new view and renders its first state.
func (s *Server) mountHandler(c *gin.Context) {
	v, err := s.svc.Mount(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("mount view")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Header(ViewIdHeader, v.Id)
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, view.PageTemplate, view.NewPage(v.Id, v.State, viewPath(v.Id), s.cfg.Views.Refresh))
}

func (s *Server) viewHandler(c *gin.Context) {
	v, ok := s.lookup(c)
	if !ok {
		return
	}

	c.Header(ViewIdHeader, v.Id)
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, view.PageTemplate, view.NewPage(v.Id, v.State, viewPath(v.Id), s.cfg.Views.Refresh))
}

func (s *Server) stateHandler(c *gin.Context) {
	v, ok := s.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, v.State)
}

func (s *Server) unmountHandler(c *gin.Context) {
	err := s.svc.Unmount(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.String(http.StatusNotFound, "view not found")
	case err != nil:
		log.Error().Err(err).Msg("unmount view")
		c.String(http.StatusInternalServerError, "internal server error")
	default:
		c.Status(http.StatusNoContent)
	}
}

func (s *Server) lookup(c *gin.Context) (domain.View, bool) {
	v, err := s.svc.View(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.String(http.StatusNotFound, "view not found")
		return domain.View{}, false
	case err != nil:
		log.Error().Err(err).Msg("load view")
		c.String(http.StatusInternalServerError, "internal server error")
		return domain.View{}, false
	}

	return v, true
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.closing.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
