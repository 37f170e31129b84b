/*
Package observability exports realization and retry activity as Prometheus metrics.

Metrics are collected through domain.LifecycleHooks, so any engine that accepts
hooks can be measured:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	spec := chainspec.New("orders", fetch, chainspec.WithLifecycleHooks(m.Hooks()))
*/
package observability
