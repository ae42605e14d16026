package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDMiddleware tags every request with a generated id, echoes it in
// the X-Request-ID response header and logs the request with it.
type RequestIDMiddleware struct {
	log *logrus.Logger
}

func NewRequestIDMiddleware(log *logrus.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{log: log}
}

func (m *RequestIDMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := req.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     req.Method,
			"path":       req.URL.Path,
		}).Info("Handling request")

		next.ServeHTTP(w, req)
	})
}
