package http

import (
	"net/http"

	"github.com/fwojciec/veritas"
	"github.com/fwojciec/veritas/log"
	"github.com/gorilla/mux"
)

// checkedDiffer is implemented by differs that can refuse oversized input
// instead of allocating without bound.
type checkedDiffer interface {
	DiffChecked(original, revised string) ([]veritas.DiffSegment, error)
}

type diffRequest struct {
	Original string `json:"original"`
	Revised  string `json:"revised"`
	Coalesce bool   `json:"coalesce"`
}

type diffResponse struct {
	Segments []veritas.DiffSegment `json:"segments"`
	Stats    veritas.DiffStats     `json:"stats"`
}

type highlightRequest struct {
	Source  string   `json:"source"`
	Phrases []string `json:"phrases"`
}

type highlightResponse struct {
	Segments []veritas.HighlightSegment `json:"segments"`
}

type textRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Result   *veritas.DetectionResult   `json:"result"`
	Segments []veritas.HighlightSegment `json:"segments"`
	ID       string                     `json:"id,omitempty"`
}

type humanizeResponse struct {
	Result   *veritas.HumanizeResult `json:"result"`
	Segments []veritas.DiffSegment   `json:"segments"`
	ID       string                  `json:"id,omitempty"`
}

type historyResponse struct {
	Items []veritas.HistoryItem `json:"items"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	if err := veritas.ValidateText("original", req.Original); err != nil {
		Error(w, r, err)
		return
	}
	if err := veritas.ValidateText("revised", req.Revised); err != nil {
		Error(w, r, err)
		return
	}

	segs, err := s.diff(req.Original, req.Revised)
	if err != nil {
		Error(w, r, err)
		return
	}
	// Stats count tokens, so they are taken before coalescing.
	stats := veritas.DiffStatsOf(segs)
	if req.Coalesce {
		segs = veritas.CoalesceDiff(segs)
	}
	writeJSON(w, http.StatusOK, diffResponse{Segments: nonNil(segs), Stats: stats})
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	if err := veritas.ValidateText("source", req.Source); err != nil {
		Error(w, r, err)
		return
	}
	if err := veritas.ValidatePhrases(req.Phrases); err != nil {
		Error(w, r, err)
		return
	}

	segs := s.Highlighter.Highlight(req.Source, req.Phrases)
	writeJSON(w, http.StatusOK, highlightResponse{Segments: nonNil(segs)})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if s.Detector == nil {
		Error(w, r, veritas.Errorf(veritas.EUNAVAILABLE, "detection is not configured"))
		return
	}
	text, settings, ok := s.readText(w, r)
	if !ok {
		return
	}

	result, err := s.Detector.Detect(r.Context(), text, settings)
	if err != nil {
		Error(w, r, err)
		return
	}

	resp := detectResponse{
		Result:   result,
		Segments: nonNil(s.Highlighter.Highlight(text, result.Phrases)),
	}
	resp.ID = s.record(r, settings, veritas.HistoryItem{
		Mode:      veritas.ModeDetect,
		Input:     text,
		Detection: result,
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHumanize(w http.ResponseWriter, r *http.Request) {
	if s.Humanizer == nil {
		Error(w, r, veritas.Errorf(veritas.EUNAVAILABLE, "humanizing is not configured"))
		return
	}
	text, settings, ok := s.readText(w, r)
	if !ok {
		return
	}

	result, err := s.Humanizer.Humanize(r.Context(), text, settings)
	if err != nil {
		Error(w, r, err)
		return
	}
	segs, err := s.diff(result.OriginalText, result.HumanizedText)
	if err != nil {
		Error(w, r, err)
		return
	}

	resp := humanizeResponse{Result: result, Segments: nonNil(segs)}
	resp.ID = s.record(r, settings, veritas.HistoryItem{
		Mode:     veritas.ModeHumanize,
		Input:    text,
		Humanize: result,
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistoryIndex(w http.ResponseWriter, r *http.Request) {
	if s.HistoryStore == nil {
		writeJSON(w, http.StatusOK, historyResponse{Items: []veritas.HistoryItem{}})
		return
	}
	items, err := s.HistoryStore.Load(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Items: nonNil(items)})
}

func (s *Server) handleHistoryShow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if s.HistoryStore == nil {
		Error(w, r, veritas.Errorf(veritas.ENOTFOUND, "history item %q not found", id))
		return
	}
	item, err := s.HistoryStore.Get(r.Context(), id)
	if err != nil {
		Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if s.HistoryStore != nil {
		if err := s.HistoryStore.Clear(r.Context()); err != nil {
			Error(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// readText decodes a {text} body and loads the current settings. It writes
// the error response and reports false when the request cannot proceed.
func (s *Server) readText(w http.ResponseWriter, r *http.Request) (string, veritas.Settings, bool) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return "", veritas.Settings{}, false
	}
	if err := veritas.ValidateText("text", req.Text); err != nil {
		Error(w, r, err)
		return "", veritas.Settings{}, false
	}
	if veritas.IsBlank(req.Text) {
		Error(w, r, veritas.Errorf(veritas.EINVALID, "text is required"))
		return "", veritas.Settings{}, false
	}

	settings := veritas.DefaultSettings()
	if s.SettingsStore != nil {
		var err error
		if settings, err = s.SettingsStore.Load(); err != nil {
			Error(w, r, err)
			return "", veritas.Settings{}, false
		}
	}
	return req.Text, settings, true
}

// record appends item to history when enabled and returns its ID. A failed
// write is logged; the result is still returned to the client.
func (s *Server) record(r *http.Request, settings veritas.Settings, item veritas.HistoryItem) string {
	if s.HistoryStore == nil || !settings.EnableHistory {
		return ""
	}
	item.ID = s.NewID()
	item.Timestamp = s.Now().UTC()
	if err := s.HistoryStore.Append(r.Context(), item); err != nil {
		log.Warnf("recording history: %s\n", err)
		return ""
	}
	return item.ID
}

func (s *Server) diff(original, revised string) ([]veritas.DiffSegment, error) {
	if d, ok := s.Differ.(checkedDiffer); ok {
		return d.DiffChecked(original, revised)
	}
	return s.Differ.Diff(original, revised), nil
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
