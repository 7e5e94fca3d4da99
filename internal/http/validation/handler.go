package validation

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/invoiceqc/internal/batch"
	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
)

var contentTypes = map[report.Format]string{
	report.FormatJSON: "application/json",
	report.FormatYAML: "application/yaml",
}

type Handler struct {
	svc            *batch.Service
	maxUploadBytes int64
}

func NewHandler(svc *batch.Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.AllowContentType("application/json")).Post("/validate-json", h.validateJSON)
	r.Post("/validate-file", h.validateFile)
}

func (h *Handler) validateJSON(w http.ResponseWriter, r *http.Request) {
	raws, err := invoice.Decode(http.MaxBytesReader(w, r.Body, h.maxUploadBytes))
	if err != nil {
		http.Error(w, decodeErrorMessage(err), decodeStatus(err))
		return
	}

	h.validate(w, r, raws)
}

func (h *Handler) validateFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), decodeStatus(err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raws, err := invoice.Load(file)
	if err != nil {
		http.Error(w, decodeErrorMessage(err), decodeStatus(err))
		return
	}

	h.validate(w, r, raws)
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request, raws []invoice.RawInvoice) {
	result, err := h.svc.Validate(r.Context(), raws)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	rep := report.New(result)

	slog.Info("batch validated",
		"run_id", rep.RunID,
		"total", rep.Summary.Total,
		"valid", rep.Summary.ValidCount,
		"invalid", rep.Summary.InvalidCount,
	)

	format := report.FormatJSON
	if r.URL.Query().Get("format") == string(report.FormatYAML) {
		format = report.FormatYAML
	}

	w.Header().Set("Content-Type", contentTypes[format])

	if err := rep.Write(w, format); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeStatus maps a body read or decode failure to a response status.
func decodeStatus(err error) int {
	if errors.As(err, new(*http.MaxBytesError)) {
		return http.StatusRequestEntityTooLarge
	}

	return http.StatusBadRequest
}

func decodeErrorMessage(err error) string {
	if errors.Is(err, invoice.ErrInputShape) {
		return err.Error()
	}

	return "invalid request body: " + err.Error()
}
