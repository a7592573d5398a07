package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sightline/pkg/buildinfo"
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/httputil"
	"github.com/matzehuels/sightline/pkg/pipeline"
	"github.com/matzehuels/sightline/pkg/seating"
	"github.com/matzehuels/sightline/pkg/session"
	"github.com/matzehuels/sightline/pkg/sightline"
	"github.com/matzehuels/sightline/pkg/venue"
)

// =============================================================================
// Request and response bodies
// =============================================================================

// analyzeRequest is the body of POST /api/v1/analyze. Screen, when present,
// is applied on top of the named standard's screen.
type analyzeRequest struct {
	Rows     []sightline.SeatingRow `json:"rows"`
	Standard string                 `json:"standard,omitempty"`
	Screen   json.RawMessage        `json:"screen,omitempty"`
	SVG      *svgRequest            `json:"svg,omitempty"`
	Refresh  bool                   `json:"refresh,omitempty"`
}

type svgRequest struct {
	Width float64 `json:"width,omitempty"`
	Theme string  `json:"theme,omitempty"`
	Title string  `json:"title,omitempty"`
	Grid  bool    `json:"grid,omitempty"`
}

type analyzeResponse struct {
	Standard string            `json:"standard"`
	Report   *sightline.Report `json:"report"`
	SVG      string            `json:"svg,omitempty"`
	Cached   bool              `json:"cached"`
}

// createSessionRequest is the body of POST /api/v1/sessions. Without rows
// the session starts with a single default row.
type createSessionRequest struct {
	Standard string                 `json:"standard,omitempty"`
	Screen   json.RawMessage        `json:"screen,omitempty"`
	Rows     []sightline.SeatingRow `json:"rows,omitempty"`
}

// sessionResponse pairs a session with the analysis of its current rows.
type sessionResponse struct {
	Session *session.Session  `json:"session"`
	Report  *sightline.Report `json:"report"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleStandards(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, venue.All())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	std, err := resolveStandard(req.Standard, req.Screen)
	if err != nil {
		s.fail(w, err)
		return
	}

	opts := pipeline.Options{
		Rows:     req.Rows,
		Standard: std.Name,
		Screen:   &std.Screen,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	}
	if req.SVG != nil {
		opts.Formats = []string{pipeline.FormatSVG}
		opts.Width = req.SVG.Width
		opts.Theme = req.SVG.Theme
		opts.Title = req.SVG.Title
		opts.Grid = req.SVG.Grid
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, analyzeResponse{
		Standard: std.Name,
		Report:   res.Report,
		SVG:      string(res.Artifacts[pipeline.FormatSVG]),
		Cached:   res.CacheInfo.AnalyzeHit,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	std, err := resolveStandard(req.Standard, req.Screen)
	if err != nil {
		s.fail(w, err)
		return
	}
	rows := req.Rows
	if len(rows) == 0 {
		rows = seating.Default()
	}

	report, err := s.runner.Analyze(r.Context(), rows, std.Screen)
	if err != nil {
		s.fail(w, err)
		return
	}
	sess := session.New(std, rows, s.cfg.SessionTTL)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Debug("session created", "id", sess.ID, "standard", std.Name, "rows", len(rows))
	httputil.WriteJSON(w, http.StatusCreated, sessionResponse{Session: sess, Report: report})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := session.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionAnalysis returns the report for the session's rows, or the
// SVG section view with ?format=svg.
func (s *Server) handleSessionAnalysis(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	report, err := s.runner.Analyze(r.Context(), sess.Rows, sess.Screen)
	if err != nil {
		s.fail(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", pipeline.FormatJSON:
		httputil.WriteJSON(w, http.StatusOK, report)
	case pipeline.FormatSVG:
		opts := pipeline.Options{
			Formats: []string{pipeline.FormatSVG},
			Theme:   r.URL.Query().Get("theme"),
			Title:   r.URL.Query().Get("title"),
			Logger:  s.logger,
		}
		artifacts, err := s.runner.Render(r.Context(), report, sess.Rows, sess.Screen, opts)
		if err != nil {
			s.fail(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(artifacts[pipeline.FormatSVG])
	default:
		s.fail(w, pipeline.ValidateFormat(format))
	}
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	s.editSession(w, r, http.StatusCreated, func(rows []sightline.SeatingRow) ([]sightline.SeatingRow, error) {
		return seating.Add(rows), nil
	})
}

// handleUpdateRow applies a body of field values such as {"dist": 14,
// "riser": 16} to one row.
func (s *Server) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	rowID, err := rowIDParam(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var changes map[string]float64
	if err := httputil.DecodeJSON(w, r, &changes); err != nil {
		s.fail(w, err)
		return
	}
	if len(changes) == 0 {
		s.fail(w, httputil.Errorf("no fields to update"))
		return
	}
	names := make([]string, 0, len(changes))
	for name := range changes {
		names = append(names, name)
	}
	slices.Sort(names)

	s.editSession(w, r, http.StatusOK, func(rows []sightline.SeatingRow) ([]sightline.SeatingRow, error) {
		for _, name := range names {
			field, err := seating.ParseField(name)
			if err != nil {
				return nil, err
			}
			if rows, err = seating.Update(rows, rowID, field, changes[name]); err != nil {
				return nil, err
			}
		}
		return rows, nil
	})
}

func (s *Server) handleRemoveRow(w http.ResponseWriter, r *http.Request) {
	rowID, err := rowIDParam(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.editSession(w, r, http.StatusOK, func(rows []sightline.SeatingRow) ([]sightline.SeatingRow, error) {
		return seating.Remove(rows, rowID)
	})
}

// =============================================================================
// Helpers
// =============================================================================

// editSession applies edit to the session's rows. The edit is saved only if
// the resulting rows pass validation; the response carries the new analysis.
func (s *Server) editSession(w http.ResponseWriter, r *http.Request, status int, edit func([]sightline.SeatingRow) ([]sightline.SeatingRow, error)) {
	id, err := session.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}

	var report *sightline.Report
	sess, err := s.sessions.Update(r.Context(), id, func(sess *session.Session) error {
		rows, err := edit(sess.Rows)
		if err != nil {
			return err
		}
		if report, err = s.runner.Analyze(r.Context(), rows, sess.Screen); err != nil {
			return err
		}
		sess.Rows = rows
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	httputil.WriteJSON(w, status, sessionResponse{Session: sess, Report: report})
}

func (s *Server) loadSession(r *http.Request) (*session.Session, error) {
	id, err := session.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(r.Context(), id)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	httputil.WriteError(w, s.logger, err)
}

func rowIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "rowID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, httputil.Errorf("row id %q is not an integer", raw)
	}
	return id, nil
}

// resolveStandard looks up the named standard and applies a partial screen
// override given as JSON. Setting height without top switches the screen
// to the height and center form.
func resolveStandard(name string, override json.RawMessage) (venue.Standard, error) {
	std, err := pipeline.ResolveStandard(pipeline.Options{Standard: name})
	if err != nil {
		return venue.Standard{}, err
	}
	if len(override) == 0 || bytes.Equal(override, []byte("null")) {
		return std, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(override, &keys); err != nil {
		return venue.Standard{}, errors.Wrap(errors.ErrCodeInvalidScreen, err, "screen")
	}
	screen := std.Screen
	dec := json.NewDecoder(bytes.NewReader(override))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&screen); err != nil {
		return venue.Standard{}, errors.Wrap(errors.ErrCodeInvalidScreen, err, "screen")
	}
	_, hasHeight := keys["height"]
	_, hasTop := keys["top"]
	if hasHeight && !hasTop {
		screen.Top = 0
	}

	screen = screen.Normalize()
	if err := screen.Validate(); err != nil {
		return venue.Standard{}, err
	}
	std.Screen = screen
	std.Description = "custom screen"
	return std, nil
}
