package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Guesses.WithLabelValues("word", "present").Inc()
	m.Guesses.WithLabelValues("word", "present").Inc()
	m.Awards.WithLabelValues("huruf").Add(1)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Guesses.WithLabelValues("word", "present")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Awards.WithLabelValues("huruf")))
}

func TestPendingAnnouncementsGauge(t *testing.T) {
	m := New()
	pending := 3
	m.ObservePendingAnnouncements(func() int { return pending })

	srv := httptest.NewServer(NewRouter(m, nil))
	defer srv.Close()

	body := scrape(t, srv.URL)
	assert.Contains(t, body, "discord_bot_pending_announcements 3")

	pending = 0
	assert.Contains(t, scrape(t, srv.URL), "discord_bot_pending_announcements 0")
}

func scrape(t *testing.T, base string) string {
	t.Helper()
	resp, err := http.Get(base + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRouter(t *testing.T) {
	m := New()
	m.RoundsStarted.WithLabelValues("number").Inc()

	srv := httptest.NewServer(NewRouter(m, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `discord_bot_rounds_started_total{game="number"} 1`)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(NewRouter(New(), func(context.Context) error {
		return errors.New("db down")
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
