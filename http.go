package main

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// loggingTransport logs Lunch Money requests at debug level, including the
// date window a report asked for.
type loggingTransport struct {
	next   http.RoundTripper
	logger *log.Logger
}

func (l *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	query := req.URL.Query()
	l.logger.Debug("HTTP Request",
		"method", req.Method,
		"path", req.URL.Path,
		"start_date", query.Get("start_date"),
		"end_date", query.Get("end_date"),
	)

	startTime := time.Now()
	resp, err := l.next.RoundTrip(req)
	if err != nil {
		l.logger.Error("HTTP Request failed", "path", req.URL.Path, "error", err)
		return nil, err
	}

	l.logger.Debug("HTTP Response",
		"status", resp.StatusCode,
		"duration", time.Since(startTime),
		"path", req.URL.Path,
	)

	return resp, nil
}

func newLoggingTransport(next http.RoundTripper, logger *log.Logger) http.RoundTripper {
	return &loggingTransport{next: next, logger: logger}
}
