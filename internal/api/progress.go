package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sky-flux/quota"
)

type progressRequest struct {
	SubjectID       string     `json:"subject_id" binding:"required"`
	Units           int        `json:"units" binding:"ne=0"` // negative values correct earlier entries.
	RecordedAt      *time.Time `json:"recorded_at"`
	DurationMinutes float64    `json:"duration_minutes" binding:"min=0"`
}

// CreateProgress appends an entry to a subject's progress log.
func (s *Server) CreateProgress() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body progressRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		r := quota.ProgressRecord{
			ID:         uuid.NewString(),
			SubjectID:  body.SubjectID,
			Units:      body.Units,
			RecordedAt: s.clock(),
		}
		if body.RecordedAt != nil {
			r.RecordedAt = *body.RecordedAt
		}
		if body.DurationMinutes > 0 {
			d := time.Duration(body.DurationMinutes * float64(time.Minute))
			r.Duration = &d
		}

		stored, err := s.store.AddProgress(r)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, stored)
	}
}
