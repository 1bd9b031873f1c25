package dispatch

import (
	"errors"
	"log/slog"
	"net/http"
)

// Handler adapts a Table to net/http. It owns the boundary concerns the
// engine itself stays out of: turning ErrNoRoute into 404, binding
// failures into 400, and recovered panics into 500.
// ErrorHandler turns a dispatch error other than ErrNoRoute into a wire
// response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type Handler struct {
	table    *Table
	logger   *slog.Logger
	notFound http.Handler
	onError  ErrorHandler
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the structured logger used for dispatch failures and
// recovered panics. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithNotFoundHandler sets the handler invoked when no route matches.
// If nil, http.NotFoundHandler() is used.
func WithNotFoundHandler(handler http.Handler) Option {
	return func(h *Handler) {
		h.notFound = handler
	}
}

// WithErrorHandler replaces the default error mapping (400 for parameter
// errors, logged 500 for the rest) for errors other than ErrNoRoute.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(h *Handler) {
		h.onError = fn
	}
}

// NewHandler returns an http.Handler dispatching through the table.
func NewHandler(table *Table, opts ...Option) *Handler {
	h := &Handler{
		table:    table,
		logger:   slog.Default(),
		notFound: http.NotFoundHandler(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("dispatch panic",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("panic", rec),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}()

	resp, err := h.table.Dispatch(r.Context(), FromHTTP(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	for key, vals := range resp.Header {
		for _, v := range vals {
			w.Header().Add(key, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(resp.Body) > 0 {
		w.Write(resp.Body) //nolint:errcheck // nothing useful to do with a write error here
	}
}

// writeError maps dispatch errors to wire responses. Parameter errors are
// the client's fault (400); anything unrecognized is logged and reported
// as a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoRoute):
		h.notFound.ServeHTTP(w, r)
	case h.onError != nil:
		h.onError(w, r, err)
	case errors.Is(err, ErrMissingParam), errors.Is(err, ErrInvalidParam):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("dispatch failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
