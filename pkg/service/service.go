package service

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kumarabd/gokit/logger"
	cache_pkg "github.com/patrickmn/go-cache"

	"github.com/sysward/selaudit/internal/metrics"
	"github.com/sysward/selaudit/pkg/logview"
	"github.com/sysward/selaudit/pkg/selinux"
)

// ErrUnknownSource is returned when a query names a log source that has
// never received a line.
var ErrUnknownSource = errors.New("unknown log source")

type Config struct {
	ReportTTL   time.Duration `json:"report_ttl" yaml:"report_ttl" default:"15m"`
	ReportSweep time.Duration `json:"report_sweep" yaml:"report_sweep" default:"30m"`
}

// Report is the persisted outcome of one consistency evaluation.
type Report struct {
	ID        string           `json:"id"`
	OK        bool             `json:"ok"`
	Problems  selinux.Problems `json:"problems"`
	CreatedAt time.Time        `json:"created_at"`
}

// Handler owns the registry of named log views and the evaluation report
// cache. Views are appended to by ingestion and read by queries, so the
// registry guards them with a single RWMutex; the views themselves are
// unsynchronized.
type Handler struct {
	log    *logger.Handler
	config *Config
	metric *metrics.Handler

	mu    sync.RWMutex
	views map[string]*logview.View

	reports *cache_pkg.Cache
}

func New(l *logger.Handler, m *metrics.Handler, sConfig *Config) (*Handler, error) {
	if sConfig == nil {
		return nil, errors.New("service config is nil")
	}

	return &Handler{
		log:     l,
		config:  sConfig,
		metric:  m,
		views:   make(map[string]*logview.View),
		reports: cache_pkg.New(sConfig.ReportTTL, sConfig.ReportSweep),
	}, nil
}

// AppendLines adds raw lines to the named view, creating it on first use,
// and returns the view's new length. Lines are stored verbatim; parsing
// happens only at query time.
func (h *Handler) AppendLines(source string, lines []string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	view, ok := h.views[source]
	if !ok {
		view = logview.NewView()
		h.views[source] = view
	}
	view.Append(lines...)

	if h.metric != nil {
		h.metric.IncLinesAppended(source, len(lines))
		for _, line := range lines {
			outcome := "unmatched"
			if logview.Parse(line).Complete() {
				outcome = "matched"
			}
			h.metric.IncLinesParsed(outcome)
		}
	}
	h.log.Debug().Str("source", source).Int("lines", len(lines)).Msg("appended log lines")

	return view.Len()
}

// SearchView parses and returns every line of the named view containing q.
func (h *Handler) SearchView(source, q string) ([]logview.Record, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	view, ok := h.views[source]
	if !ok {
		return nil, ErrUnknownSource
	}
	if h.metric != nil {
		h.metric.IncViewQueries("search")
	}
	return view.Search(q), nil
}

// ContainsView reports whether any line of the named view contains q.
func (h *Handler) ContainsView(source, q string) (bool, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	view, ok := h.views[source]
	if !ok {
		return false, ErrUnknownSource
	}
	if h.metric != nil {
		h.metric.IncViewQueries("contains")
	}
	return view.Contains(q), nil
}

// LastRecord returns the most recent usable record of the named view.
func (h *Handler) LastRecord(source string) (logview.Record, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	view, ok := h.views[source]
	if !ok {
		return logview.Record{}, ErrUnknownSource
	}
	if h.metric != nil {
		h.metric.IncViewQueries("last")
	}
	return view.Last(), nil
}

// Sources returns the names of all known views, sorted.
func (h *Handler) Sources() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, 0, len(h.views))
	for name := range h.views {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Evaluate runs the consistency evaluator over the three snapshots, stores
// the resulting report under a fresh id, and returns it.
func (h *Handler) Evaluate(status selinux.Status, boot selinux.BootConfig, grub selinux.GrubConfig) *Report {
	eval := selinux.NewEvaluator(status, boot, grub)

	report := &Report{
		ID:        uuid.NewString(),
		OK:        eval.OK(),
		Problems:  eval.Problems(),
		CreatedAt: time.Now().UTC(),
	}
	h.reports.Set(report.ID, report, cache_pkg.DefaultExpiration)

	if h.metric != nil {
		h.metric.IncEvaluations(report.OK)
		for kind := range report.Problems {
			h.metric.IncProblemsDetected(string(kind))
		}
	}
	h.log.Info().
		Str("report_id", report.ID).
		Bool("ok", report.OK).
		Int("problems", len(report.Problems)).
		Msg("selinux consistency evaluated")

	return report
}

// GetReport looks up a previously stored evaluation report.
func (h *Handler) GetReport(id string) (*Report, bool) {
	v, ok := h.reports.Get(id)
	if !ok {
		return nil, false
	}
	report, ok := v.(*Report)
	return report, ok
}
