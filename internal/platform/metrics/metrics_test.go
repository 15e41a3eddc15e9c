package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryServerInterceptor_CountsByCode(t *testing.T) {
	t.Parallel()

	m := New()
	intercept := m.UnaryServerInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/employee.v1.EmployeeService/GetEmployee"}

	ok := func(ctx context.Context, req any) (any, error) { return "ok", nil }
	missing := func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.NotFound, "missing")
	}

	for i := 0; i < 2; i++ {
		if _, err := intercept(context.Background(), nil, info, ok); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := intercept(context.Background(), nil, info, missing); status.Code(err) != codes.NotFound {
		t.Fatalf("interceptor must pass the handler error through, got %v", err)
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues(info.FullMethod, "OK")); got != 2 {
		t.Fatalf("expected 2 OK requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(info.FullMethod, "NotFound")); got != 1 {
		t.Fatalf("expected 1 NotFound request, got %v", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveHTTP(http.MethodGet, "/employees", http.StatusOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `directory_http_requests_total{method="GET",route="/employees",status="200"} 1`) {
		t.Fatalf("http counter missing from output:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Fatalf("go collector missing from output")
	}
}
