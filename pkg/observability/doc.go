/*
Package observability turns engine lifecycle hooks into Prometheus metrics and
structured log lines.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	eng, _ := twotruths.New(paths, twotruths.WithLifecycleHooks(
		observability.Chain(metrics.Hooks(), observability.LogHooks(logger)),
	))
*/
package observability
