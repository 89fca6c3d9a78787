package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/schedule"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/loans"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/rate"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the amortization API.
// Cross-origin requests are allowed only from allowedOrigins.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string, allowedOrigins []string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/health", h.handleHealth)
		r.Post("/schedule", h.handleSchedule)
		r.Post("/rate", h.handleRate)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				logger.Info("handled request",
					zap.String("op", "server.requestLogger"),
					zap.String("requestID", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

type scheduleResponse struct {
	Loan             config.Loan        `json:"loan"`
	Payment          float64            `json:"payment"`
	NumPeriods       int                `json:"numPeriods"`
	EffectivePeriods int                `json:"effectivePeriods"`
	Rate             rateResponse       `json:"rate"`
	Savings          savingsResponse    `json:"savings"`
	Summary          []string           `json:"summary"`
	Cumulative       cumulativeResponse `json:"cumulative"`
	Periodic         periodicResponse   `json:"periodic"`
	Duration         string             `json:"duration"`
}

type rateResponse struct {
	AveragePayment float64 `json:"averagePayment"`
	PeriodicRate   float64 `json:"periodicRate"`
	APR            float64 `json:"apr"`
	EAR            float64 `json:"ear"`
	Iterations     int     `json:"iterations"`
}

type savingsResponse struct {
	Interest        float64 `json:"interest"`
	InterestPercent float64 `json:"interestPercent"`
	Periods         int     `json:"periods"`
}

type cumulativeResponse struct {
	Standard cumulativeSeries `json:"standard"`
	Adjusted cumulativeSeries `json:"adjusted"`
}

type cumulativeSeries struct {
	Interest  []float64 `json:"interest"`
	Principal []float64 `json:"principal"`
	TotalPaid []float64 `json:"totalPaid"`
	Balance   []float64 `json:"balance"`
}

type periodicResponse struct {
	Standard periodicSeries `json:"standard"`
	Adjusted periodicSeries `json:"adjusted"`
}

type periodicSeries struct {
	Interest  []float64 `json:"interest"`
	Principal []float64 `json:"principal"`
	Total     []float64 `json:"total"`
}

type rateRequest struct {
	EffectivePeriods int     `json:"effectivePeriods"`
	TotalInterest    float64 `json:"totalInterest"`
	TotalPrincipal   float64 `json:"totalPrincipal"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	start := time.Now()

	var loan config.Loan
	if err := h.decodeBody(w, r, &loan); err != nil {
		h.respondDecodeError(w, err, op)
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = "loan"
	}

	result, err := schedule.Calculate(h.logger, name, loan)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to compute schedule: %v", err), op)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), constants.OutputFormatCSV) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(output.CsvString([]schedule.Schedule{result}))); err != nil {
			h.logger.Error("failed to write CSV response", zap.String("op", op), zap.Error(err))
		}
		return
	}

	h.writeJSON(w, http.StatusOK, buildScheduleResponse(result, time.Since(start)))
}

func (h *handler) handleRate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRate"

	var req rateRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		h.respondDecodeError(w, err, op)
		return
	}

	result, err := rate.Solve(req.EffectivePeriods, req.TotalInterest, req.TotalPrincipal)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to solve rate: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, toRateResponse(result))
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func (h *handler) respondDecodeError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
}

// statusFor maps computation errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, config.ErrInvalidInput),
		errors.Is(err, loans.ErrInvalidLoanTerms),
		errors.Is(err, rate.ErrInvalidRateInput):
		return http.StatusBadRequest
	case errors.Is(err, rate.ErrNumericConvergence):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func buildScheduleResponse(s schedule.Schedule, elapsed time.Duration) scheduleResponse {
	return scheduleResponse{
		Loan:             s.Loan,
		Payment:          s.Payment,
		NumPeriods:       s.Terms.NumPeriods,
		EffectivePeriods: s.EffectivePeriods,
		Rate:             toRateResponse(s.Rate),
		Savings: savingsResponse{
			Interest:        s.Savings.Interest,
			InterestPercent: s.Savings.InterestPercent,
			Periods:         s.Savings.Periods,
		},
		Summary: output.Summary(s),
		Cumulative: cumulativeResponse{
			Standard: toCumulativeSeries(s.Cumulative.Standard),
			Adjusted: toCumulativeSeries(s.Cumulative.Adjusted),
		},
		Periodic: periodicResponse{
			Standard: toPeriodicSeries(s.Periodic.Standard),
			Adjusted: toPeriodicSeries(s.Periodic.Adjusted),
		},
		Duration: elapsed.String(),
	}
}

func toRateResponse(r rate.Result) rateResponse {
	return rateResponse{
		AveragePayment: r.AveragePayment,
		PeriodicRate:   r.PeriodicRate,
		APR:            r.APR,
		EAR:            r.EAR,
		Iterations:     r.Iterations,
	}
}

func toCumulativeSeries(s loans.CumulativeSeries) cumulativeSeries {
	return cumulativeSeries{
		Interest:  s.Interest,
		Principal: s.Principal,
		TotalPaid: s.TotalPaid,
		Balance:   s.Balance,
	}
}

func toPeriodicSeries(s loans.PeriodicSeries) periodicSeries {
	return periodicSeries{
		Interest:  s.Interest,
		Principal: s.Principal,
		Total:     s.Total,
	}
}
