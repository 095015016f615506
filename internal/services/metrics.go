// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package services

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/juju/opcore/core/service"
)

const metricsNamespace = "opcore_services"

// Collector is a prometheus.Collector that collects metrics about
// the controllers of a registry.
type Collector struct {
	controllers   *prometheus.GaugeVec
	transitions   *prometheus.CounterVec
	startFailures prometheus.Counter
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		controllers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "controllers",
				Help:      "The number of installed controllers in each state.",
			}, []string{"state"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "transitions_total",
				Help:      "The number of controller transitions, by target state.",
			}, []string{"to"},
		),
		startFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "start_failures_total",
				Help:      "The number of service start calls that returned an error.",
			},
		),
	}
}

func (c *Collector) installed() {
	c.controllers.WithLabelValues(service.Down.String()).Inc()
}

func (c *Collector) transition(from, to service.State) {
	c.controllers.WithLabelValues(from.String()).Dec()
	if to != service.Removed {
		c.controllers.WithLabelValues(to.String()).Inc()
	}
	c.transitions.WithLabelValues(to.String()).Inc()
}

func (c *Collector) startFailed() {
	c.startFailures.Inc()
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.controllers.Describe(ch)
	c.transitions.Describe(ch)
	c.startFailures.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.controllers.Collect(ch)
	c.transitions.Collect(ch)
	c.startFailures.Collect(ch)
}
