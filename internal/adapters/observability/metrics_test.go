package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelos_gateway/internal/adapters/observability"
)

func scrape(t *testing.T) string {
	t.Helper()
	rr := httptest.NewRecorder()
	observability.MetricsHandler(observability.InitRegistry()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	return string(body)
}

func TestRegistryExportsGatewayMetrics(t *testing.T) {
	observability.ObserveHTTP("/v1/hotels/{id}/{slug}", http.MethodGet, 200, 12*time.Millisecond)
	observability.ObserveExternal("hotelos", "GET /api/hotels/{id}", 404, 3*time.Millisecond)
	observability.ObserveCache("offer", "corrupt")
	observability.ObserveBooking("rejected")
	observability.InFlight.Set(2)

	out := scrape(t)
	for _, want := range []string{
		`hotelos_http_requests_total{method="GET",route="/v1/hotels/{id}/{slug}",status="200"}`,
		`hotelos_backend_requests_total{endpoint="GET /api/hotels/{id}",service="hotelos",status="404"}`,
		`hotelos_cache_events_total{cache="offer",event="corrupt"}`,
		`hotelos_booking_attempts_total{outcome="rejected"}`,
		"hotelos_backend_inflight 2",
		"hotelos_offer_stale_responses_total",
		"go_goroutines",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output", want)
		}
	}
}

func TestNewLogger_Level(t *testing.T) {
	if l := observability.NewLogger("prod", "debug"); l.GetLevel().String() != "debug" {
		t.Fatalf("level = %s", l.GetLevel())
	}
	if l := observability.NewLogger("dev", "nonsense"); l.GetLevel().String() != "info" {
		t.Fatalf("unparsable level should mean info, got %s", l.GetLevel())
	}
}
