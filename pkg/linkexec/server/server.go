// Package server exposes plan processing over HTTP: upload a plan, read its
// execution summary, download the generated workbook.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ukaji3/linkexec-go/pkg/linkexec"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/render"
	"go.uber.org/zap"
)

const (
	sessionCookie = "linkexec_session"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var allowedExt = map[string]bool{".xlsx": true, ".xlsm": true, ".csv": true}

// download is a generated workbook kept for the session that uploaded it.
type download struct {
	data []byte
}

// session is one browser's latest upload.
type session struct {
	tracker  *linkexec.Tracker[download]
	lastSeen time.Time
}

// Server serves the plan upload API. One Tracker per session keeps the
// latest generated workbook. Sessions are created by a successful upload
// and dropped once idle for the configured TTL or when the cap is reached.
type Server struct {
	cfg  *linkexec.Config
	opts linkexec.Options
	log  *zap.Logger
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a Server. A nil logger disables logging.
func New(cfg *linkexec.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	opts := cfg.Options()
	opts.Logger = log
	return &Server{
		cfg:      cfg,
		opts:     opts,
		log:      log,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/", s.handleIndex)
	r.Post("/plan", s.handlePlan)
	r.Get("/download", s.handleDownload)
	r.Get("/template", s.handleTemplate)
	return r
}

// lookup returns the caller's live tracker and marks the session as used.
func (s *Server) lookup(r *http.Request) (*linkexec.Tracker[download], bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.evictIdleLocked(now)
	sess, ok := s.sessions[c.Value]
	if !ok {
		return nil, false
	}
	sess.lastSeen = now
	return sess.tracker, true
}

// register stores t under a new session id, making room under the cap,
// and returns the id.
func (s *Server) register(t *linkexec.Tracker[download]) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.evictIdleLocked(now)
	for len(s.sessions) >= s.cfg.MaxSessions {
		s.evictOldestLocked()
	}
	id := uuid.NewString()
	s.sessions[id] = &session{tracker: t, lastSeen: now}
	return id
}

func (s *Server) evictIdleLocked(now time.Time) {
	ttl := s.cfg.SessionTTL()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *Server) evictOldestLocked() {
	var (
		oldest string
		seen   time.Time
	)
	for id, sess := range s.sessions {
		if oldest == "" || sess.lastSeen.Before(seen) {
			oldest, seen = id, sess.lastSeen
		}
	}
	delete(s.sessions, oldest)
}

type statEntry struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}

type planResponse struct {
	RequestID string      `json:"request_id"`
	Status    string      `json:"status"`
	Reason    string      `json:"reason,omitempty"`
	Message   string      `json:"message"`
	Stats     []statEntry `json:"stats,omitempty"`
	Total     int         `json:"total,omitempty"`
}

func statEntries(stats *models.Stats) []statEntry {
	var out []statEntry
	for _, a := range stats.Activities() {
		out = append(out, statEntry{Activity: a, Count: stats.Get(a)})
	}
	return out
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	tracker, known := s.lookup(r)
	if !known {
		tracker = &linkexec.Tracker[download]{}
	}
	reqID := tracker.Begin()
	log := s.log.With(zap.String("request_id", reqID))

	fail := func(code int, reason linkexec.Reason, msg string) {
		writeJSON(w, code, planResponse{RequestID: reqID, Status: "error", Reason: string(reason), Message: msg})
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes()); err != nil {
		fail(http.StatusBadRequest, "", "File too large or malformed upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		fail(http.StatusBadRequest, "", "Failed to read file")
		return
	}
	defer file.Close()

	if !allowedExt[strings.ToLower(filepath.Ext(header.Filename))] {
		fail(http.StatusBadRequest, "", "Invalid file type")
		return
	}
	log.Info("Processing plan", zap.String("file", header.Filename), zap.Int64("size", header.Size))

	var buf bytes.Buffer
	res, err := linkexec.Generate(file, header.Filename, &buf, s.opts)
	if err != nil {
		var pe *linkexec.PlanError
		switch {
		case errors.As(err, &pe):
			log.Info("Plan rejected", zap.String("reason", string(pe.Reason)), zap.Error(err))
			fail(http.StatusUnprocessableEntity, pe.Reason, messageFor(pe.Reason))
		case errors.Is(err, linkexec.ErrUnsupportedFormat):
			fail(http.StatusBadRequest, "", "Unsupported spreadsheet format")
		default:
			log.Warn("Plan processing failed", zap.Error(err))
			fail(http.StatusUnprocessableEntity, linkexec.ReasonInternal, "Could not read the spreadsheet")
		}
		return
	}

	if !tracker.Complete(reqID, download{data: buf.Bytes()}) {
		log.Info("Dropping stale plan result", zap.String("current", tracker.Current()))
		writeJSON(w, http.StatusConflict, planResponse{RequestID: reqID, Status: "stale", Message: "A newer upload replaced this one."})
		return
	}
	if !known {
		id := s.register(tracker)
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	}
	writeJSON(w, http.StatusOK, planResponse{
		RequestID: reqID,
		Status:    "success",
		Message:   "Processing Complete.",
		Stats:     statEntries(&res.Stats),
		Total:     res.Stats.Total(),
	})
}

// messageFor returns the user-facing message of a failure reason.
func messageFor(reason linkexec.Reason) string {
	switch reason {
	case linkexec.ReasonEmptyInput:
		return "The Excel file seems empty."
	case linkexec.ReasonColumnNotFound:
		return "Error: 'Keyword' or 'URL' column not found in Excel."
	case linkexec.ReasonEmptyResult:
		return "Processed file, but no rows were generated."
	case linkexec.ReasonTooManyTasks:
		return "The plan asks for more tasks than one sheet can hold."
	default:
		return "Could not process the spreadsheet."
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookup(r)
	if !ok {
		http.Error(w, "no plan uploaded", http.StatusNotFound)
		return
	}
	d, ok := t.Latest()
	if !ok {
		http.Error(w, "no plan ready", http.StatusNotFound)
		return
	}
	writeAttachment(w, s.cfg.OutputName, d.data)
}

func (s *Server) handleTemplate(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := render.WriteSampleTemplate(&buf); err != nil {
		s.log.Warn("Sample template failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, render.SampleTemplateName, buf.Bytes())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if err := indexTemplate.Execute(w, s.cfg); err != nil {
		s.log.Warn("Template error", zap.Error(err))
	}
}

func writeAttachment(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Link Execution Generator</title></head>
<body>
<h1>Link Execution Generator</h1>
<p>Transform raw outreach plans into prioritized execution lists.</p>
<p><a href="/template">Download Sample Template</a></p>
<form id="plan" method="post" action="/plan" enctype="multipart/form-data">
<input type="file" name="file" accept=".xlsx,.xlsm,.csv">
<button type="submit">Generate</button>
</form>
<p>Up to {{.MaxUploadMB}} MB. The result downloads as {{.OutputName}} from <a href="/download">/download</a>.</p>
</body>
</html>
`))
