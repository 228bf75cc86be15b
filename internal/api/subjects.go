package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sky-flux/quota"
)

type subjectRequest struct {
	Name           string      `json:"name" binding:"required"`
	TotalUnits     int         `json:"total_units" binding:"min=0"`
	CompletedUnits int         `json:"completed_units" binding:"min=0,ltefield=TotalUnits"`
	ExamDate       *time.Time  `json:"exam_date"`
	ReportDeadline *time.Time  `json:"report_deadline"`
	BufferDays     *int        `json:"buffer_days" binding:"omitempty,min=0"`
	Priority       quota.Level `json:"priority"`
	Importance     quota.Level `json:"importance"`
}

func (r subjectRequest) subject(id string) quota.Subject {
	return quota.Subject{
		ID:             id,
		Name:           r.Name,
		TotalUnits:     r.TotalUnits,
		CompletedUnits: r.CompletedUnits,
		ExamDate:       r.ExamDate,
		ReportDeadline: r.ReportDeadline,
		BufferDays:     r.BufferDays,
		Priority:       r.Priority,
		Importance:     r.Importance,
	}
}

// GetSubjects lists stored subjects.
func (s *Server) GetSubjects() gin.HandlerFunc {
	return func(c *gin.Context) {
		subjects, err := s.store.Subjects()
		if err != nil {
			s.fail(c, err)
			return
		}
		if subjects == nil {
			subjects = []quota.Subject{}
		}
		c.JSON(http.StatusOK, subjects)
	}
}

// PutSubject creates or replaces the subject named in the path.
func (s *Server) PutSubject() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body subjectRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		subject := body.subject(c.Param("id"))
		if err := s.store.SaveSubject(subject); err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, subject)
	}
}

// DeleteSubject removes a subject and its progress log.
func (s *Server) DeleteSubject() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.DeleteSubject(c.Param("id")); err != nil {
			s.fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
