package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/matzehuels/influencegraph/pkg/buildinfo"
	"github.com/matzehuels/influencegraph/pkg/errors"
	"github.com/matzehuels/influencegraph/pkg/pipeline"
	"github.com/matzehuels/influencegraph/pkg/quote"
	"github.com/matzehuels/influencegraph/pkg/render"
	"github.com/matzehuels/influencegraph/pkg/report"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// handleStockPrice answers with the lookup shape; failures are reported in
// the body with success=false, never through the status code.
func (s *Server) handleStockPrice(w http.ResponseWriter, r *http.Request) {
	company := r.URL.Query().Get("company")
	writeJSON(w, http.StatusOK, quote.Respond(s.opts.Book, company))
}

// handleGraph renders the configured input in format f.
func (s *Server) handleGraph(f render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.graphOptions(r, f)
		if err != nil {
			s.writeError(w, err)
			return
		}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, err)
			return
		}
		for _, issue := range result.Issues {
			s.logger.Debug("Graph issue", "issue", issue.String())
		}

		w.Header().Set("Content-Type", f.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[string(f)])
	}
}

// graphOptions builds pipeline options from the query string.
func (s *Server) graphOptions(r *http.Request, f render.Format) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Input:    s.opts.Input,
		Book:     s.opts.Book,
		VizType:  q.Get("type"),
		Selected: q.Get("selected"),
		Formats:  []string{string(f)},
		Logger:   s.logger,
	}
	if opts.Input == "" {
		data, err := report.Marshal(report.Sample())
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInternal, err, "encode sample report")
		}
		opts.InputData = data
	}

	var err error
	if opts.Width, err = floatParam(q.Get("width")); err != nil {
		return opts, err
	}
	if opts.ViewportWidth, err = floatParam(q.Get("vw")); err != nil {
		return opts, err
	}
	if opts.ViewportHeight, err = floatParam(q.Get("vh")); err != nil {
		return opts, err
	}
	if opts.Static, err = boolParam(q.Get("static")); err != nil {
		return opts, err
	}
	if opts.Compact, err = boolParam(q.Get("compact")); err != nil {
		return opts, err
	}
	return opts, nil
}

func floatParam(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, errors.New(errors.ErrCodeInvalidViewport, "invalid dimension: %q", v)
	}
	return f, nil
}

func boolParam(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "", "0", "false", "no":
		return false, nil
	case "1", "true", "yes":
		return true, nil
	default:
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid boolean: %q", v)
	}
}

// errorResponse is the body of failed graph requests.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
