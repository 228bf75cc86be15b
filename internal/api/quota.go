package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/sky-flux/quota"
)

// inputs is what one quota computation reads from the store.
type inputs struct {
	subjects []quota.Subject
	settings quota.Settings
}

// loadInputs reads subjects and settings concurrently.
func (s *Server) loadInputs(ctx context.Context) (inputs, error) {
	var in inputs
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.subjects, err = s.store.Subjects()
		return err
	})
	g.Go(func() error {
		var err error
		in.settings, err = s.store.Settings()
		return err
	})
	return in, g.Wait()
}

// now returns the request's reference time: the clock, or midnight of the
// ?date=YYYY-MM-DD query parameter in the server's location.
func (s *Server) now(c *gin.Context) (time.Time, bool) {
	d := c.Query("date")
	if d == "" {
		return s.clock().In(s.loc), true
	}
	t, err := time.ParseInLocation(time.DateOnly, d, s.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// GetQuota returns the quota for one period.
func (s *Server) GetQuota(p quota.Period) gin.HandlerFunc {
	compute := s.engine.ComputeDailyQuota
	if p == quota.Weekly {
		compute = s.engine.ComputeWeeklyQuota
	}
	return func(c *gin.Context) {
		now, ok := s.now(c)
		if !ok {
			return
		}
		in, err := s.loadInputs(c.Request.Context())
		if err != nil {
			s.fail(c, err)
			return
		}
		q, err := compute(in.subjects, in.settings, s.store, now)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, q)
	}
}

// GetQuotas returns the daily and weekly quotas together.
func (s *Server) GetQuotas() gin.HandlerFunc {
	return func(c *gin.Context) {
		now, ok := s.now(c)
		if !ok {
			return
		}
		in, err := s.loadInputs(c.Request.Context())
		if err != nil {
			s.fail(c, err)
			return
		}
		daily, weekly, err := s.engine.ComputeAll(in.subjects, in.settings, s.store, now)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"daily": daily, "weekly": weekly})
	}
}
