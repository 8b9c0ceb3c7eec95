package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/roadmap/pkg/buildinfo"
	"github.com/matzehuels/roadmap/pkg/core/item"
	"github.com/matzehuels/roadmap/pkg/errors"
	"github.com/matzehuels/roadmap/pkg/frame"
	"github.com/matzehuels/roadmap/pkg/pipeline"
)

var errMissingRunner = stderrors.New("server: missing runner")

// CacheHeader reports whether a frame was served from cache.
const CacheHeader = "X-Frame-Cache"

// FrameRequest is the body of POST /v1/frame.
type FrameRequest struct {
	// Items is the snapshot to lay out. When empty the configured
	// source is loaded instead.
	Items []item.Record `json:"items,omitempty"`

	pipeline.Options

	// Save stores the computed frame under this name.
	Save string `json:"save,omitempty"`
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error struct {
		Code      errors.Code `json:"code"`
		Message   string      `json:"message"`
		RequestID string      `json:"requestId,omitempty"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := FrameRequest{Options: pipeline.DefaultOptions()}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if req.Save != "" {
		if err := errors.ValidateFrameName(req.Save); err != nil {
			s.writeError(w, r, err)
			return
		}
		if s.cfg.Store == nil {
			s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no frame store configured"))
			return
		}
	}
	req.Options.Logger = s.logger.With("request", RequestID(ctx))

	var (
		f   *frame.Frame
		hit bool
		err error
	)
	switch {
	case len(req.Items) > 0:
		f, hit, err = s.cfg.Runner.ComputeWithCacheInfo(ctx, item.Items(req.Items), req.Options)
	case s.cfg.Source != nil:
		var res *pipeline.Result
		res, err = s.cfg.Runner.Execute(ctx, s.cfg.Source, req.Options)
		if err == nil {
			f, hit = res.Frame, res.CacheInfo.FrameHit
		}
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "request carries no items and no source is configured")
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if req.Save != "" {
		if err := s.cfg.Store.Save(ctx, req.Save, *f); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	w.Header().Set(CacheHeader, cacheStatus(hit))
	w.Header().Set("Content-Type", "application/json")
	if err := frame.Write(*f, w); err != nil {
		s.logger.Warn("write frame", "err", err)
	}
}

func (s *Server) handleListFrames(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		writeJSON(w, http.StatusOK, map[string][]string{"frames": {}})
		return
	}
	names, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"frames": names})
}

func (s *Server) handleGetFrame(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateFrameName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.cfg.Store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeFrameNotFound, "frame %q not found", name))
		return
	}
	f, err := s.cfg.Store.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := frame.Write(f, w); err != nil {
		s.logger.Warn("write frame", "err", err)
	}
}

// writeError maps err to a status code and writes the error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= 500 {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}

	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	body.Error.RequestID = RequestID(r.Context())
	writeJSON(w, status, body)
}

func statusOf(err error) int {
	switch {
	case errors.IsClientError(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, errors.ErrCodeSourceUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
