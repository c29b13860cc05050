// Package metrics exports assessment and HTTP telemetry to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/myrjola/finbias/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Observer captures telemetry of the assessment flow.
type Observer interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordScoring(duration time.Duration, skipped map[string]int)
	RecordAssessment(primaryType string, duration time.Duration)
	RecordFeedback(rating int)
	RecordContactMessage()
}

// PrometheusObserver implements Observer with Prometheus collectors.
type PrometheusObserver struct {
	requestDuration    *prometheus.HistogramVec
	scoringDuration    prometheus.Histogram
	skippedAnswers     *prometheus.CounterVec
	assessments        *prometheus.CounterVec
	assessmentDuration prometheus.Histogram
	feedbackRatings    *prometheus.CounterVec
	contactMessages    prometheus.Counter
}

// NewPrometheusObserver registers the collectors against reg. A nil reg uses the default registerer.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "finbias"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		scoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_duration_seconds",
			Help:      "Time spent scoring and classifying a set of answers.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}),
		skippedAnswers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_answers_total",
			Help:      "Answers that did not contribute to scores by reason.",
		}, []string{"reason"}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_completed_total",
			Help:      "Completed assessments by primary personality type.",
		}, []string{"primary_type"}),
		assessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_duration_seconds",
			Help:      "Time from the first question view to completion.",
			Buckets:   []float64{30, 60, 120, 300, 600, 1800, 3600},
		}),
		feedbackRatings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_total",
			Help:      "Results feedback by rating.",
		}, []string{"rating"}),
		contactMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_messages_total",
			Help:      "Messages received through the contact form.",
		}),
	}
	collectors := []prometheus.Collector{
		o.requestDuration,
		o.scoringDuration,
		o.skippedAnswers,
		o.assessments,
		o.assessmentDuration,
		o.feedbackRatings,
		o.contactMessages,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return nil, errors.Wrap(err, "register metric")
		}
	}
	return o, nil
}

func (o *PrometheusObserver) RecordRequest(method, route string, status int, duration time.Duration) {
	o.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func (o *PrometheusObserver) RecordScoring(duration time.Duration, skipped map[string]int) {
	o.scoringDuration.Observe(duration.Seconds())
	for reason, count := range skipped {
		o.skippedAnswers.WithLabelValues(reason).Add(float64(count))
	}
}

func (o *PrometheusObserver) RecordAssessment(primaryType string, duration time.Duration) {
	if primaryType == "" {
		primaryType = "none"
	}
	o.assessments.WithLabelValues(primaryType).Inc()
	o.assessmentDuration.Observe(duration.Seconds())
}

func (o *PrometheusObserver) RecordFeedback(rating int) {
	o.feedbackRatings.WithLabelValues(strconv.Itoa(rating)).Inc()
}

func (o *PrometheusObserver) RecordContactMessage() {
	o.contactMessages.Inc()
}

// Handler serves the metrics gathered by g in the Prometheus exposition format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{}) //nolint:exhaustruct // defaults are fine.
}

// Nop discards all telemetry.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}

func (Nop) RecordScoring(time.Duration, map[string]int) {}

func (Nop) RecordAssessment(string, time.Duration) {}

func (Nop) RecordFeedback(int) {}

func (Nop) RecordContactMessage() {}
