package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageURL = "https://steamrip.com/games-list-page/"

func newTestFetcher(t *testing.T, transport *httpmock.MockTransport) *Fetcher {
	t.Helper()

	f, err := New(testPageURL, "gamedex-test/1.0", 5*time.Second, nil)
	require.NoError(t, err)
	f.WithTransport(transport)
	return f
}

func htmlResponder(body string) httpmock.Responder {
	resp := httpmock.NewStringResponse(200, body)
	resp.Header.Set("Content-Type", "text/html")
	return httpmock.ResponderFromResponse(resp)
}

func TestNewValidation(t *testing.T) {
	_, err := New("://bad", "ua", time.Second, nil)
	assert.Error(t, err)

	_, err = New("/no-host", "ua", time.Second, nil)
	assert.Error(t, err)
}

func TestFetchPage(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", testPageURL, htmlResponder("<html><body>games</body></html>"))

	f := newTestFetcher(t, transport)

	markup, err := f.FetchPage(context.Background(), testPageURL)
	require.NoError(t, err)
	assert.Contains(t, markup, "games")
}

func TestFetchPageServerError(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", testPageURL, httpmock.NewStringResponder(500, "boom"))

	f := newTestFetcher(t, transport)

	_, err := f.FetchPage(context.Background(), testPageURL)
	assert.Error(t, err)
}

func TestFetchPageCancelledContext(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", testPageURL, htmlResponder("<html></html>"))

	f := newTestFetcher(t, transport)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FetchPage(ctx, testPageURL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchPageSequentialReuse(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", testPageURL, httpmock.NewStringResponder(500, "boom"))

	f := newTestFetcher(t, transport)

	_, err := f.FetchPage(context.Background(), testPageURL)
	require.Error(t, err)

	// A failed fetch must not poison the next one.
	transport.RegisterResponder("GET", testPageURL, htmlResponder("<html>ok</html>"))
	markup, err := f.FetchPage(context.Background(), testPageURL)
	require.NoError(t, err)
	assert.Contains(t, markup, "ok")
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.IncRequest("started")
	m.ObserveDuration(0.1)
	m.AddCandidates(3)
	m.AddNewGames(1)
	m.IncRuns()
}
