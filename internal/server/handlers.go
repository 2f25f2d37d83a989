package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iris/internal/observability"
	"iris/internal/recommend"
	"iris/internal/session"
)

// handleRecommend is the stateless decision endpoint: the caller owns
// the session context and ships it inline. Nothing is stored.
func (s *Server) handleRecommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("invalid request: %v", err),
		})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "message is required",
		})
		return
	}

	sess := req.Session.ToContext()
	res := s.engine.Recommend(c.Request.Context(), req.Message, sess)

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    buildRecommendResponse("", sess.CurrentTurn, res, req.Debug),
	})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("invalid request: %v", err),
		})
		return
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "session_id is required",
		})
		return
	}

	if _, err := s.store.Get(req.SessionID); err == nil {
		c.JSON(http.StatusConflict, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("session %q already exists", req.SessionID),
		})
		return
	}

	s.store.GetOrCreate(req.SessionID)
	s.metrics.IncrementActiveSessions(c.Request.Context())
	s.logger.Info("created session %s", req.SessionID)

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    gin.H{"session_id": req.SessionID},
	})
}

func (s *Server) handleListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    gin.H{"sessions": s.store.IDs()},
	})
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, err := s.store.Get(c.Param("id"))
	if err != nil {
		s.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    NewSessionDocument(sess),
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if _, err := s.store.Get(c.Param("id")); err != nil {
		s.sessionError(c, err)
		return
	}
	s.store.Delete(c.Param("id"))
	s.metrics.DecrementActiveSessions(c.Request.Context())
	c.JSON(http.StatusOK, APIResponse{Success: true})
}

// handleSessionMessage runs the decision for one turn of a stored
// session, then advances the session history with the outcome.
func (s *Server) handleSessionMessage(c *gin.Context) {
	sessionID := c.Param("id")
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("invalid request: %v", err),
		})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "message is required",
		})
		return
	}

	sess, err := s.store.Get(sessionID)
	if err != nil {
		s.sessionError(c, err)
		return
	}

	ctx := observability.ContextWithSessionID(c.Request.Context(), sessionID)
	res := s.engine.Recommend(ctx, req.Message, sess)
	turn := sess.CurrentTurn

	s.store.Update(sessionID, func(stored *session.Context) {
		stored.Advance(req.Message, res.Debug.Signals.Primary(), res.RecommendedIDs())
	})
	for _, rec := range res.Recommendations {
		s.telemetry.RecordShown(sessionID, rec.LensID, turn, string(res.Debug.Trigger.Reason))
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    buildRecommendResponse(sessionID, turn, res, req.Debug),
	})
}

// handleSessionEvent records user feedback on a surfaced
// recommendation: opened, dismissed, and optionally how long it took.
func (s *Server) handleSessionEvent(c *gin.Context) {
	sessionID := c.Param("id")
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("invalid request: %v", err),
		})
		return
	}
	if req.LensID == "" {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "lens_id is required",
		})
		return
	}

	sess, err := s.store.Get(sessionID)
	if err != nil {
		s.sessionError(c, err)
		return
	}

	switch req.Event {
	case "opened":
		s.store.Update(sessionID, func(stored *session.Context) {
			stored.MarkOpened(req.LensID)
		})
		s.telemetry.RecordOpened(sessionID, req.LensID, sess.CurrentTurn)
	case "dismissed":
		s.store.Update(sessionID, func(stored *session.Context) {
			stored.MarkDismissed(req.LensID)
		})
		s.telemetry.RecordDismissed(sessionID, req.LensID, sess.CurrentTurn)
	default:
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("unknown event %q", req.Event),
		})
		return
	}
	s.metrics.RecordLensEvent(c.Request.Context(), req.LensID, req.Event)

	if req.TimeToActionMS > 0 {
		s.telemetry.RecordTimeToAction(sessionID, time.Duration(req.TimeToActionMS)*time.Millisecond)
	}

	c.JSON(http.StatusOK, APIResponse{Success: true})
}

func (s *Server) handleSessionTelemetry(c *gin.Context) {
	sessionID := c.Param("id")
	if _, err := s.store.Get(sessionID); err != nil {
		s.sessionError(c, err)
		return
	}
	snapshot, _ := s.telemetry.Snapshot(sessionID)
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    snapshot,
	})
}

func (s *Server) handleListLenses(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    gin.H{"lenses": s.catalog.Entries()},
	})
}

func (s *Server) handleGetLens(c *gin.Context) {
	entry, ok := s.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("lens %q not found", c.Param("id")),
		})
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    entry,
	})
}

func (s *Server) sessionError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, session.ErrNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func buildRecommendResponse(sessionID string, turn int, res recommend.Result, withDebug bool) RecommendResponse {
	out := RecommendResponse{
		SessionID:       sessionID,
		Turn:            turn,
		Recommendations: res.Recommendations,
	}
	if withDebug {
		debug := res.Debug
		out.Debug = &debug
	}
	return out
}
