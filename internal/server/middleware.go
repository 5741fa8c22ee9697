package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type key int

const requestIDKey key = 0

const (
	requestIDHeader = "X-Request-Id"
	visitorCookie   = "visitor"
)

func (s *Server) middleware() []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		hlog.NewHandler(log.Logger),
		requestIDMiddleware,
		visitorMiddleware,
		hlog.AccessHandler(s.observeRequest),
	}
}

// requestIDMiddleware keeps a caller supplied UUID and mints one otherwise.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("requestId", id)
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func visitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var visitorID string
		if cookie, err := r.Cookie(visitorCookie); err == nil && cookie.Value != "" {
			visitorID = cookie.Value
		} else {
			visitorID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     visitorCookie,
				Value:    visitorID,
				Path:     "/",
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("visitor", visitorID)
		})
		next.ServeHTTP(w, r)
	})
}

func (s *Server) observeRequest(r *http.Request, status, size int, duration time.Duration) {
	route := "unmatched"
	if current := mux.CurrentRoute(r); current != nil {
		if tpl, err := current.GetPathTemplate(); err == nil {
			route = tpl
		}
	}

	s.deps.Metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	s.deps.Metrics.HTTPDuration.WithLabelValues(route).Observe(duration.Seconds())

	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("route", route).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("Request served")
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
