package observability

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

// Module wires observability configuration, tracing and HTTP metrics.
var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		NewTracerProvider,
		NewHTTPMetrics,
	),
	fx.Invoke(ensureTracerProvider),
)

func ensureTracerProvider(_ *sdktrace.TracerProvider) {}
