package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sky-flux/quota"
)

// GetSettings returns the stored settings.
func (s *Server) GetSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := s.store.Settings()
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// UpdateSettings applies a partial update to the stored settings.
func (s *Server) UpdateSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body quota.SettingsOverrides
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
			return
		}
		current, err := s.store.Settings()
		if err != nil {
			s.fail(c, err)
			return
		}
		updated := current.Apply(body)
		if err := s.store.SaveSettings(updated); err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
