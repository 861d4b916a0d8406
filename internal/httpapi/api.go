package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yuqie6/stresssense/internal/bootstrap"
	"github.com/yuqie6/stresssense/internal/dto"
	"github.com/yuqie6/stresssense/internal/observability"
	"github.com/yuqie6/stresssense/internal/pkg/buildinfo"
	"github.com/yuqie6/stresssense/internal/schema"
	"github.com/yuqie6/stresssense/internal/service"
)

const metricsNamespace = "stresssense"

type apiServer struct {
	core      *bootstrap.Core
	metrics   *observability.Metrics
	startTime time.Time

	// 存储只支持单写者，进程内串行化追加
	saveMu sync.Mutex
}

func newAPI(core *bootstrap.Core) *apiServer {
	return &apiServer{
		core:      core,
		metrics:   observability.NewMetrics(metricsNamespace),
		startTime: time.Now(),
	}
}

// ========== routes ==========

func (a *apiServer) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(a.metrics))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.allowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/api/health", a.handleHealth)
	router.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/history", a.getHistory)
		r.Post("/evaluate", a.evaluate)
		r.Post("/save", a.save)
	})
	return router
}

func (a *apiServer) allowedOrigins() []string {
	if a.core != nil && a.core.Cfg != nil && len(a.core.Cfg.Server.AllowedOrigins) > 0 {
		return a.core.Cfg.Server.AllowedOrigins
	}
	return []string{"http://localhost:5000", "http://127.0.0.1:5000"}
}

// ========== handlers ==========

func (a *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := dto.HealthDTO{
		OK:        true,
		Version:   buildinfo.Version,
		StartedAt: a.startTime.Format(time.RFC3339),
		UptimeSec: int64(time.Since(a.startTime).Seconds()),
	}
	if a.core != nil && a.core.Cfg != nil {
		resp.Name = a.core.Cfg.App.Name
		resp.Storage.Backend = a.core.Cfg.Storage.Backend
	}
	if a.core != nil && a.core.Store != nil {
		resp.Storage.Path = a.core.Store.Path()
	}
	if a.core != nil {
		resp.Storage.Records = len(a.core.History.History(ctx))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *apiServer) getHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := dto.HistoryQueryDTO{Date: r.URL.Query().Get("date")}
	if err := validate.Struct(query); err != nil {
		writeError(w, http.StatusBadRequest, formatValidationError(err).Error())
		return
	}

	var log schema.HistoryLog
	if a.core != nil {
		if query.Date != "" {
			log = a.core.History.OnDate(ctx, query.Date)
		} else {
			log = a.core.History.History(ctx)
		}
	}

	resp := dto.HistoryResponseDTO{
		Records: make([]dto.DailyRecordDTO, 0, len(log)),
		Series:  make([]dto.SeriesPointDTO, 0, len(log)),
	}
	for _, rec := range log {
		resp.Records = append(resp.Records, toRecordDTO(rec))
		resp.Series = append(resp.Series, dto.SeriesPointDTO{Date: rec.Date, Stress: rec.Stress})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *apiServer) evaluate(w http.ResponseWriter, r *http.Request) {
	ledger, _, ok := decodeLedgerRequest(w, r)
	if !ok {
		return
	}

	formula := a.formula()
	ev := service.Evaluate(formula, ledger)
	a.metrics.ObserveEvaluation(string(formula), string(ev.Advice.Status), ev.Score)
	writeJSON(w, http.StatusOK, toEvaluationDTO(formula, ev))
}

func (a *apiServer) save(w http.ResponseWriter, r *http.Request) {
	if a.core == nil || a.core.Store == nil {
		writeError(w, http.StatusInternalServerError, "历史存储未初始化")
		return
	}

	ledger, date, ok := decodeLedgerRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tracker := a.core.NewTracker()
	tracker.Load(ledger)

	a.saveMu.Lock()
	rec, err := tracker.SaveDay(ctx, date)
	a.saveMu.Unlock()
	a.metrics.ObserveSave(err)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ev := tracker.Evaluate()
	a.metrics.ObserveEvaluation(string(tracker.Formula()), string(ev.Advice.Status), ev.Score)
	writeJSON(w, http.StatusOK, dto.SaveResponseDTO{
		Record:     toRecordDTO(rec),
		Evaluation: toEvaluationDTO(tracker.Formula(), ev),
	})
}

func (a *apiServer) formula() service.Formula {
	if a.core == nil || a.core.Formula == "" {
		return service.FormulaHourly
	}
	return a.core.Formula
}

// ========== middleware ==========

// requestLogger 记录请求日志与指标，route 使用 chi 的路由模板
func requestLogger(m *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(r.Method, route, status, time.Since(start))
			slog.Debug("HTTP 请求",
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
