package ui

import (
	"errors"
	"html/template"
	"io"
	"net/http"

	"mining-cost-calculator/internal/estimator"
	"mining-cost-calculator/internal/handlers"
	"mining-cost-calculator/internal/jsonx"
	"mining-cost-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("ui")

// maxRequestBytes bounds JSON and form bodies.
const maxRequestBytes = 64 << 10

// Handler serves the calculator page and its JSON counterpart.
type Handler struct {
	sessions *SessionStore
	calc     estimator.Calculator
	tmpl     *template.Template
}

func NewHandler(sessions *SessionStore, calc estimator.Calculator) (*Handler, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{sessions: sessions, calc: calc, tmpl: tmpl}, nil
}

// Page handles GET /.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.Controller(w, r)
	h.render(w, r, http.StatusOK, ctrl.Snapshot())
}

// Submit handles POST /: every posted field is applied as a change, then the
// form is submitted and the page re-rendered with the outcome.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.Controller(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseForm(); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	for _, f := range estimator.Fields {
		if vals, ok := r.PostForm[string(f)]; ok && len(vals) > 0 {
			_ = ctrl.Change(string(f), vals[0])
		}
	}

	state, err := ctrl.Submit(r.Context())

	status := http.StatusOK
	if errors.Is(err, estimator.ErrSubmitInFlight) {
		status = http.StatusConflict
	}
	h.render(w, r, status, state)
}

// ChangeField handles POST /fields/{field}. The raw value is stored as-is;
// an empty value is a change, a missing one is a bad request.
func (h *Handler) ChangeField(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.Controller(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseForm(); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	vals, ok := r.PostForm["value"]
	if !ok || len(vals) == 0 {
		handlers.WriteError(w, http.StatusBadRequest, "missing value")
		return
	}

	name := chi.URLParam(r, "field")
	if err := ctrl.Change(name, vals[0]); err != nil {
		handlers.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Calculate handles POST /api/calculate. The body carries the four raw
// input strings; each call runs its own submission cycle.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "ui.api_calculate",
		trace.WithAttributes(attribute.String("request.id", observability.RequestIDFromContext(ctx))),
	)
	defer span.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		observability.RecordError(ctx, span, logger, apiErrorCounter, "api_calculate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	var in estimator.InputData
	if err := jsonx.Unmarshal(body, &in); err != nil {
		observability.RecordError(ctx, span, logger, apiErrorCounter, "api_calculate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	ctrl := estimator.NewController(h.calc)
	for _, f := range estimator.Fields {
		_ = ctrl.Change(string(f), in.Get(f))
	}

	state, err := ctrl.Submit(ctx)
	switch {
	case err == nil:
		handlers.WriteJSON(w, http.StatusOK, state.Result)
	case state.Err != nil && state.Err.Kind == estimator.KindValidation:
		handlers.WriteFieldError(w, http.StatusBadRequest, state.Err.Message, string(state.Err.Field))
	default:
		handlers.WriteError(w, http.StatusBadGateway, estimator.GenericErrorMessage)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, s estimator.State) {
	if err := renderPage(w, h.tmpl, status, s); err != nil {
		observability.LoggerWithTrace(r.Context()).Error("page render failed",
			zap.Error(err),
			zap.String("request_id", observability.RequestIDFromContext(r.Context())),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
