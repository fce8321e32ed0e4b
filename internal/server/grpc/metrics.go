package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	pb "github.com/s-r-jones/deep-dive-air/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const metricsNamespace = "airbooking"

// Latency buckets cover a PBKDF2 derivation on the slow end.
var rpcBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

// GRPCMetrics instruments the booking service. Calls are labelled by
// BookingService method; anything else is counted as "other".
type GRPCMetrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inFlight   prometheus.Gauge
	rejections *prometheus.CounterVec
}

// NewGRPCMetrics registers the collectors with reg. Collectors a previous
// call already registered on reg are reused.
func NewGRPCMetrics(reg prometheus.Registerer) (*GRPCMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	var (
		m   GRPCMetrics
		err error
	)
	if m.requests, err = reuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "rpc_requests_total",
		Help:      "BookingService calls by method and status code.",
	}, []string{"method", "code"})); err != nil {
		return nil, err
	}
	if m.duration, err = reuse(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "rpc_duration_seconds",
		Help:      "BookingService call latency by method.",
		Buckets:   rpcBuckets,
	}, []string{"method"})); err != nil {
		return nil, err
	}
	if m.inFlight, err = reuse(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "rpc_in_flight",
		Help:      "BookingService calls being served.",
	})); err != nil {
		return nil, err
	}
	if m.rejections, err = reuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "sign_in_rejections_total",
		Help:      "Refused Login calls by reason (credentials, rate_limited).",
	}, []string{"reason"})); err != nil {
		return nil, err
	}
	return &m, nil
}

func reuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		return c, fmt.Errorf("register collector: %w", err)
	}
	existing, ok := already.ExistingCollector.(C)
	if !ok {
		return c, fmt.Errorf("collector registered with type %T", already.ExistingCollector)
	}
	return existing, nil
}

// UnaryServerInterceptor records every call. A nil *GRPCMetrics records
// nothing.
func (m *GRPCMetrics) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if m == nil {
			return handler(ctx, req)
		}

		method := methodName(info.FullMethod)
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		resp, err := handler(ctx, req)

		code := status.Code(err)
		m.requests.WithLabelValues(method, code.String()).Inc()
		m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		if info.FullMethod == pb.MethodLogin {
			switch code {
			case codes.Unauthenticated:
				m.rejections.WithLabelValues("credentials").Inc()
			case codes.ResourceExhausted:
				m.rejections.WithLabelValues("rate_limited").Inc()
			}
		}
		return resp, err
	}
}

// methodName keeps label cardinality bounded to the BookingService methods.
func methodName(fullMethod string) string {
	name, ok := strings.CutPrefix(fullMethod, "/"+pb.ServiceName+"/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "other"
	}
	return name
}
