package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/dom/htmldoc"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/openapi"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/synth"
)

type kindResponse struct {
	Kind string `json:"kind"`
}

type generateResponse struct {
	Kind   string   `json:"kind"`
	Values []string `json:"values"`
}

type classifyResponse struct {
	Kind       string                `json:"kind"`
	Rule       string                `json:"rule,omitempty"`
	Descriptor model.FieldDescriptor `json:"descriptor"`
}

type fillResponse struct {
	HTML    string                `json:"html"`
	Reports []orchestrator.Report `json:"reports"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleKinds(w http.ResponseWriter, _ *http.Request) {
	kinds := s.synth.Kinds()
	out := make([]kindResponse, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, kindResponse{Kind: kind.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "kind")
	kind, ok := model.ParseKind(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown kind %q", name))
		return
	}

	query := r.URL.Query()
	count := 1
	if raw := query.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid count %q", raw))
			return
		}
		count = min(n, maxGenerateCount)
	}

	constraints := queryConstraints(query.Get)
	values := make([]string, 0, count)
	for range count {
		value, err := s.synth.Generate(kind, constraints)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, synth.ErrUnknownKind) {
				status = http.StatusNotFound
			}
			writeError(w, status, err)
			return
		}
		values = append(values, value)
	}
	writeJSON(w, http.StatusOK, generateResponse{Kind: kind.String(), Values: values})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("name")
	if strings.TrimSpace(name) == "" && strings.TrimSpace(query.Get("id")) == "" {
		writeError(w, http.StatusBadRequest, errors.New("name or id is required"))
		return
	}
	attrs := map[string]string{}
	for _, key := range []string{"id", "minlength", "maxlength", "min", "max", "value"} {
		if v := query.Get(key); v != "" {
			attrs[key] = v
		}
	}
	desc := dom.DescribeAttrs(query.Get("tag"), query.Get("type"), name, attrs)
	kind, rule := s.classifier.Explain(desc)
	writeJSON(w, http.StatusOK, classifyResponse{Kind: kind.String(), Rule: rule, Descriptor: desc})
}

func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	doc, err := htmldoc.Parse(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeError(w, statusForBodyErr(err), err)
		return
	}

	var reports []orchestrator.Report
	if raw := r.URL.Query().Get("form"); raw != "" {
		idx, convErr := strconv.Atoi(raw)
		if convErr != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid form index %q", raw))
			return
		}
		form, formErr := doc.Form(idx)
		if formErr != nil {
			writeError(w, http.StatusUnprocessableEntity, formErr)
			return
		}
		report, fillErr := s.orchestrator.Fill(r.Context(), form)
		if fillErr != nil {
			writeError(w, http.StatusServiceUnavailable, fillErr)
			return
		}
		reports = []orchestrator.Report{report}
	} else {
		reports, err = s.orchestrator.FillAll(r.Context(), doc)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
	}

	for _, report := range reports {
		s.logger.Info("form filled",
			zap.String("report", report.ID),
			zap.Int("filled", report.Filled),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", report.Failed),
		)
	}

	markup, err := doc.RenderSanitized()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, fillResponse{HTML: markup, Reports: reports})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, markup)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeError(w, statusForBodyErr(err), err)
		return
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("openapi document is required"))
		return
	}

	doc, err := openapi.NewDocument(nil, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	op, err := openapi.FindOperation(r.Context(), doc, chi.URLParam(r, "operationId"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, openapi.ErrOperationNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}

	payload, err := s.filler.Payload(op)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, openapi.ErrNoRequestBody) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func queryConstraints(get func(string) string) model.Constraints {
	var c model.Constraints
	if v, err := strconv.Atoi(get("minlength")); err == nil && v >= 0 {
		c.MinLength = model.IntPtr(v)
	}
	if v, err := strconv.Atoi(get("maxlength")); err == nil && v >= 0 {
		c.MaxLength = model.IntPtr(v)
	}
	if v, err := strconv.ParseFloat(get("min"), 64); err == nil {
		c.Min = model.FloatPtr(v)
	}
	if v, err := strconv.ParseFloat(get("max"), 64); err == nil {
		c.Max = model.FloatPtr(v)
	}
	return c
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func statusForBodyErr(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
