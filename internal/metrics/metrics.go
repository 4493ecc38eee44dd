// Package metrics collects and exposes Prometheus counters for the
// account-lifecycle operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts lifecycle outcomes. Services call it on every operation;
// a nil-safe no-op is available via Nop for tests.
type Collector struct {
	signups       *prometheus.CounterVec
	verifications *prometheus.CounterVec
	resets        *prometheus.CounterVec
	emails        *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_signups_total",
			Help: "Signup attempts by outcome.",
		}, []string{"outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_verifications_total",
			Help: "Verification confirmation attempts by outcome.",
		}, []string{"outcome"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_password_resets_total",
			Help: "Password reset requests and completions by stage and outcome.",
		}, []string{"stage", "outcome"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_emails_total",
			Help: "Outbound emails by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(c.signups, c.verifications, c.resets, c.emails)
	return c
}

// Nop returns a collector that records into a throwaway registry.
func Nop() *Collector {
	return NewCollector(prometheus.NewRegistry())
}

func (c *Collector) RecordSignup(outcome string) {
	c.signups.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordVerification(outcome string) {
	c.verifications.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordReset(stage, outcome string) {
	c.resets.WithLabelValues(stage, outcome).Inc()
}

func (c *Collector) RecordEmail(kind, outcome string) {
	c.emails.WithLabelValues(kind, outcome).Inc()
}

// Handler returns the Prometheus scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
