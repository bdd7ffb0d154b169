package main

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	promRegistry = prom.NewRegistry()

	commandsTotal = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "tilewm",
		Name:      "commands_total",
		Help:      "Commands executed, from key bindings or the API",
	}, []string{"command"})
	workspaceClients = prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "tilewm",
		Name:      "workspace_clients",
		Help:      "Clients currently managed on each workspace",
	}, []string{"workspace"})
	eventSubscribers = prom.NewGauge(prom.GaugeOpts{
		Namespace: "tilewm",
		Name:      "event_subscribers",
		Help:      "Connected websocket event subscribers",
	})
)

func init() {
	promRegistry.MustRegister(commandsTotal, workspaceClients, eventSubscribers)
	promRegistry.MustRegister(promcollect.NewGoCollector())
}

func metricsHandler() http.Handler {
	return promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})
}
