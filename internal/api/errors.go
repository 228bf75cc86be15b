package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sky-flux/quota"
	"github.com/sky-flux/quota/store/boltstore"
)

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, quota.ErrInvalidSettings),
		errors.Is(err, quota.ErrInvalidSubject),
		errors.Is(err, quota.ErrInvalidLevel),
		errors.Is(err, boltstore.ErrInvalidRecord):
		return http.StatusBadRequest
	case errors.Is(err, boltstore.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
