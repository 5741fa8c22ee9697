package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/session"
)

type mapEvent int

const (
	eventClick mapEvent = iota
	eventDrag
)

type createSessionRequest struct {
	Location *geo.Coordinate `json:"location"`
}

func (s *Server) handleTiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Tiles)
}

func (s *Server) handleCreateMapSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Location != nil {
		if err := geo.ValidateCoordinate(*req.Location); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	sess, err := s.deps.Sessions.Create(r.Context(), req.Location)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error creating map session")
		writeError(w, http.StatusInternalServerError, "Error creating map session")
		return
	}
	s.deps.Metrics.MapSessions.Set(float64(s.deps.Sessions.Len()))

	hlog.FromRequest(r).Debug().Str("sessionId", sess.ID).Msg("Map session created")
	writeJSON(w, http.StatusCreated, sess.View())
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := s.deps.Sessions.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "Map session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetMapSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteMapSession(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Sessions.Delete(mux.Vars(r)["id"]) {
		writeError(w, http.StatusNotFound, "Map session not found")
		return
	}
	s.deps.Metrics.MapSessions.Set(float64(s.deps.Sessions.Len()))
	w.WriteHeader(http.StatusNoContent)
}

// handleMapEvent feeds a browser click or marker drag into the session's
// renderer. The renderer reports it back to the session, which redraws.
func (s *Server) handleMapEvent(ev mapEvent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.lookupSession(w, r)
		if !ok {
			return
		}

		var c geo.Coordinate
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := geo.ValidateCoordinate(c); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		switch ev {
		case eventClick:
			sess.Renderer().HandleClick(c)
		case eventDrag:
			sess.Renderer().HandleDragEnd(c)
		}

		writeJSON(w, http.StatusOK, sess.View())
	}
}
