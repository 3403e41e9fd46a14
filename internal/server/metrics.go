package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	writesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_writes_total",
		Help: "Accepted writes by collection.",
	}, []string{"collection"})

	broadcastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_broadcasts_total",
		Help: "Broadcast notifications by event name.",
	}, []string{"event"})

	listenersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gateway_listeners",
		Help: "Currently connected event-stream listeners.",
	})
)
