package observe

import (
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitProvider installs a MeterProvider backed by a Prometheus exporter as
// the global provider, so instruments from [DefaultMetrics] are scraped via
// the default Prometheus registry. The returned provider must be shut down
// by the caller.
func InitProvider() (*sdkmetric.MeterProvider, error) {
	promExp, err := promexporter.New()
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(promExp))
	otel.SetMeterProvider(mp)
	return mp, nil
}
