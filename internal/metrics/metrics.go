package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the service counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	interviewsGenerated *prometheus.CounterVec
	feedbackGenerated   *prometheus.CounterVec
	llmRequests         *prometheus.CounterVec
	llmLatency          *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		interviewsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockmate_interviews_generated_total",
			Help: "Interview question generations by result.",
		}, []string{"result"}),
		feedbackGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockmate_feedback_generated_total",
			Help: "Feedback generations by result.",
		}, []string{"result"}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockmate_llm_requests_total",
			Help: "Model calls by provider and result.",
		}, []string{"provider", "result"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockmate_llm_request_duration_seconds",
			Help:    "Model call latency by provider.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"provider"}),
	}
	reg.MustRegister(m.interviewsGenerated, m.feedbackGenerated, m.llmRequests, m.llmLatency)
	return m
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

func (m *Metrics) InterviewGenerated(err error) {
	if m == nil {
		return
	}
	m.interviewsGenerated.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) FeedbackGenerated(err error) {
	if m == nil {
		return
	}
	m.feedbackGenerated.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) LLMRequest(provider string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.llmRequests.WithLabelValues(provider, result(err)).Inc()
	m.llmLatency.WithLabelValues(provider).Observe(seconds)
}
