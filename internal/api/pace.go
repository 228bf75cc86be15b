package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sky-flux/quota/pace"
)

type paceResponse struct {
	UnitTime   float64            `json:"unit_time"`
	Sufficient bool               `json:"sufficient"` // false → UnitTime is the default.
	PerSubject map[string]float64 `json:"per_subject"`
}

// GetPace estimates minutes per unit from the progress log.
func (s *Server) GetPace() gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := s.store.Progress()
		if err != nil {
			s.fail(c, err)
			return
		}

		resp := paceResponse{PerSubject: map[string]float64{}}
		ctx := c.Request.Context()
		unitTime, err := s.estimator.EstimateUnitTime(ctx, records)
		switch {
		case err == nil:
			resp.UnitTime, resp.Sufficient = unitTime, true
		case errors.Is(err, pace.ErrEmptyRecords), errors.Is(err, pace.ErrInsufficientData):
			settings, serr := s.store.Settings()
			if serr != nil {
				s.fail(c, serr)
				return
			}
			resp.UnitTime = settings.AverageUnitTime
			c.JSON(http.StatusOK, resp)
			return
		default:
			s.fail(c, err)
			return
		}

		perSubject, err := s.estimator.EstimatePerSubject(ctx, records)
		if err != nil {
			s.fail(c, err)
			return
		}
		resp.PerSubject = perSubject
		c.JSON(http.StatusOK, resp)
	}
}
