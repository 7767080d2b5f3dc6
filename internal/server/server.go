package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"campaign-insights-go/internal/actionable"
	"campaign-insights-go/internal/aggregator"
	"campaign-insights-go/internal/client"
	"campaign-insights-go/internal/dataset"
	"campaign-insights-go/internal/logger"
	"campaign-insights-go/internal/processor"
	"campaign-insights-go/internal/report"
	"campaign-insights-go/internal/types"
)

// SessionHeader identifies a dashboard session. Overlapping platform metric
// requests within one session are last-write-wins.
const SessionHeader = "X-Session-ID"

type Server struct {
	svc      *processor.Service
	log      *logger.Logger
	topN     int
	bottomN  int
	sessions client.Registry[types.PlatformMetrics]
}

func New(svc *processor.Service, log *logger.Logger, topN, bottomN int) *Server {
	return &Server{svc: svc, log: log, topN: topN, bottomN: bottomN}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handle("health", func(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
		fmt.Fprint(w, "ok")
	}))
	mux.HandleFunc("GET /api/retailers", s.handle("retailers", s.retailers))
	mux.HandleFunc("GET /api/retailers/regions", s.handle("regions", s.regions))
	mux.HandleFunc("GET /api/retailers/rankings", s.handle("rankings", s.rankings))
	mux.HandleFunc("GET /api/retailers/export", s.handle("export", s.export))
	mux.HandleFunc("GET /api/platforms", s.handle("platforms", s.platforms))
	mux.HandleFunc("GET /api/campaign-performance-new/platform-metrics", s.handle("platform-metrics", s.platformMetrics))
	mux.HandleFunc("GET /api/brand-campaigns", s.handle("brand-campaigns", s.campaigns(types.BrandCampaigns)))
	mux.HandleFunc("GET /api/retailer-campaigns", s.handle("retailer-campaigns", s.campaigns(types.RetailerCampaigns)))
	mux.HandleFunc("GET /api/insights", s.handle("insights", s.insights))

	return mux
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, log *logrus.Entry)

// handle tags the request with an id, logs it and times it.
func (s *Server) handle(name string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := logger.RequestID(r)
		w.Header().Set(logger.RequestIDHeader, reqID)
		reqLog := s.log.WithRequest(r, reqID).WithField("handler", name)
		reqLog.Debug("request received")

		start := time.Now()
		h(w, r, reqLog)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("request handled")
	}
}

func (s *Server) retailers(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
	q := r.URL.Query()
	desc := strings.EqualFold(q.Get("order"), "desc")
	res, err := s.svc.Retailers(r.Context(), aggregator.Criteria{
		Region:   q.Get("region"),
		Platform: q.Get("platform"),
	}, q.Get("sort"), desc)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, types.Envelope[[]types.ScoredRetailer]{Success: true, Data: res})
}

func (s *Server) regions(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
	res, err := s.svc.Regions(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, types.Envelope[[]types.RegionalAggregate]{Success: true, Data: res})
}

func (s *Server) rankings(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
	top, bottom, err := s.limits(r)
	if err != nil {
		writeError(w, log, err)
		return
	}
	res, err := s.svc.Rankings(r.Context(), top, bottom)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, types.Envelope[processor.Rankings]{Success: true, Data: res})
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
	ov, err := s.svc.Overview(r.Context(), s.topN, s.bottomN)
	if err != nil {
		writeError(w, log, err)
		return
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="retailer-performance.xlsx"`)
	if err := report.WriteXLSX(w, ov); err != nil {
		log.WithField("error", err.Error()).Error("failed to write export")
	}
}

func (s *Server) platforms(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
	res, err := s.svc.Platforms(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, types.Envelope[processor.PlatformReport]{Success: true, Data: res})
}

func (s *Server) platformMetrics(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		writeError(w, log, badRequest("missing platform"))
		return
	}
	log = log.WithField("platform", platform)

	fetch := func(ctx context.Context) (types.PlatformMetrics, error) {
		return s.svc.PlatformMetrics(ctx, platform)
	}
	var res types.PlatformMetrics
	var err error
	if session := r.Header.Get(SessionHeader); session != "" {
		res, err = s.sessions.Fetch(r.Context(), session, fetch)
	} else {
		res, err = fetch(r.Context())
	}
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, types.Envelope[types.PlatformMetrics]{Success: true, Data: res})
}

func (s *Server) campaigns(kind types.CampaignKind) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
		res, err := s.svc.Campaigns(r.Context(), kind)
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, log, http.StatusOK, types.Envelope[any]{Success: true, Campaigns: res})
	}
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request, log *logrus.Entry) {
	ov, err := s.svc.Overview(r.Context(), s.topN, s.bottomN)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, types.Envelope[[]actionable.ActionCard]{Success: true, Data: actionable.Generate(ov)})
}

// limits reads top and bottom from the query, falling back to the server
// defaults.
func (s *Server) limits(r *http.Request) (int, int, error) {
	top, err := queryInt(r, "top", s.topN)
	if err != nil {
		return 0, 0, err
	}
	bottom, err := queryInt(r, "bottom", s.bottomN)
	if err != nil {
		return 0, 0, err
	}
	return top, bottom, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, badRequest(fmt.Sprintf("%s must be a non-negative integer", key))
	}
	return n, nil
}

type badRequest string

func (e badRequest) Error() string { return string(e) }

func statusFor(err error) int {
	var br badRequest
	switch {
	case errors.As(err, &br), errors.Is(err, aggregator.ErrUnknownSortField):
		return http.StatusBadRequest
	case errors.Is(err, dataset.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, client.ErrSuperseded):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	status := statusFor(err)
	entry := log.WithField("error", err.Error()).WithField("status", status)
	if status >= 500 {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}
	writeJSON(w, log, status, types.Envelope[any]{Success: false, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, log *logrus.Entry, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.WithField("error", err.Error()).Error("failed to write response")
	}
}
