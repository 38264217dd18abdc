package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/courier/pkg/logger"
	"github.com/dmitrymomot/courier/pkg/message"
	"github.com/dmitrymomot/courier/pkg/transport/recorder"
)

// Response formats selected with the ?format query parameter.
const (
	FormatHTML = "html"
	FormatText = "text"
	FormatJSON = "json"
)

// Summary describes a recorded message.
type Summary struct {
	Index     int      `json:"index"`
	MessageID string   `json:"message_id,omitempty"`
	Subject   string   `json:"subject"`
	From      []string `json:"from"`
	To        []string `json:"to"`
	Cc        []string `json:"cc,omitempty"`
	Bcc       []string `json:"bcc,omitempty"`
	HasText   bool     `json:"has_text"`
	HasHTML   bool     `json:"has_html"`
}

// Detail is a Summary with both bodies.
type Detail struct {
	Summary
	Text string `json:"text"`
	HTML string `json:"html"`
}

// List is the response of GET /.
type List struct {
	Count    int       `json:"count"`
	Messages []Summary `json:"messages"`
}

// Option configures the handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMount registers an extra handler on the preview router,
// e.g. the metrics endpoint.
func WithMount(pattern string, handler http.Handler) Option {
	return func(h *Handler) {
		h.mounts = append(h.mounts, mount{pattern: pattern, handler: handler})
	}
}

type mount struct {
	pattern string
	handler http.Handler
}

// Handler serves recorded messages.
type Handler struct {
	rec    *recorder.Transport
	logger *slog.Logger
	router chi.Router
	mounts []mount
}

// New creates a preview handler for rec.
func New(rec *recorder.Transport, opts ...Option) *Handler {
	h := &Handler{
		rec:    rec,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	for _, m := range h.mounts {
		r.Handle(m.pattern, m.handler)
	}
	r.Get("/", h.list)
	r.Delete("/", h.clear)
	r.Get("/last", h.last)
	r.Get("/{index}", h.show)
	h.router = r

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	msgs := h.rec.Messages()
	resp := List{Count: len(msgs), Messages: make([]Summary, 0, len(msgs))}
	for i, msg := range msgs {
		resp.Messages = append(resp.Messages, summarize(i, msg.MIME()))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	n := h.rec.Len()
	h.rec.Clear()
	h.logger.DebugContext(r.Context(), "preview cleared", slog.Int("messages", n))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) last(w http.ResponseWriter, r *http.Request) {
	n := h.rec.Len()
	if n == 0 {
		writeError(w, http.StatusNotFound, ErrNotFound)
		return
	}
	h.serve(w, r, n-1)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, ErrInvalidIndex)
		return
	}
	h.serve(w, r, index)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, index int) {
	msgs := h.rec.Messages()
	if index >= len(msgs) {
		writeError(w, http.StatusNotFound, ErrNotFound)
		return
	}
	m := msgs[index].MIME()

	text := message.Body(m, mail.TypeTextPlain)
	html := message.Body(m, mail.TypeTextHTML)

	switch strings.ToLower(r.URL.Query().Get("format")) {
	case FormatJSON:
		writeJSON(w, http.StatusOK, Detail{Summary: summarize(index, m), Text: text, HTML: html})
	case FormatText:
		writeBody(w, "text/plain; charset=utf-8", text)
	case "", FormatHTML:
		if html == "" {
			writeBody(w, "text/plain; charset=utf-8", text)
			return
		}
		writeBody(w, "text/html; charset=utf-8", html)
	default:
		writeError(w, http.StatusBadRequest, ErrInvalidFormat)
	}
}

func summarize(index int, m *mail.Msg) Summary {
	s := Summary{
		Index:   index,
		Subject: message.Subject(m),
		From:    message.HeaderValues(m, "From"),
		To:      message.HeaderValues(m, "To"),
		Cc:      message.HeaderValues(m, "Cc"),
		Bcc:     message.HeaderValues(m, "Bcc"),
		HasText: message.Body(m, mail.TypeTextPlain) != "",
		HasHTML: message.Body(m, mail.TypeTextHTML) != "",
	}
	if ids := m.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 {
		s.MessageID = strings.Trim(ids[0], "<>")
	}
	return s
}

func writeBody(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
