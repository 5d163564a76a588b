package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func scrape(m *Metrics) string {
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}

func TestRecorders(t *testing.T) {
	m := New("barber-booking")

	m.ObserveHTTP("/api/me", "GET", 200, 15*time.Millisecond)
	m.ObserveAvailability(OutcomeSlots, 8)
	m.ObserveAvailability(OutcomeEmpty, 0)
	m.ObserveAvailability(OutcomeError, 0)
	m.ObserveCache(true)
	m.ObserveTransition("confirmed")

	body := scrape(m)
	assert.Contains(t, body, `http_requests_total{method="GET",route="/api/me",service="barber-booking",status="200"} 1`)
	assert.Contains(t, body, `availability_queries_total{outcome="empty",service="barber-booking"} 1`)
	assert.Contains(t, body, `availability_slots_count{service="barber-booking"} 2`)
	assert.Contains(t, body, `availability_cache_lookups_total{result="hit",service="barber-booking"} 1`)
	assert.Contains(t, body, `appointment_transitions_total{service="barber-booking",status="confirmed"} 1`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("/", "GET", 200, time.Second)
		m.ObserveAvailability(OutcomeSlots, 1)
		m.ObserveCache(false)
		m.ObserveTransition("canceled")
	})
}
