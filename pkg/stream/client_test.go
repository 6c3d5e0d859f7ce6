package stream

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/femelo/pyhtmx-gui-client/pkg/fragment"
)

// guiServer fakes the update endpoints: a root page carrying a session
// id, an event stream, and the ping sink.
func guiServer(t *testing.T, events []string, pings *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p id="session-id" hx-post="/ping/abc123">abc123</p></body></html>`)
	})
	mux.HandleFunc("GET /updates", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "text/event-stream" {
			t.Error("missing event-stream accept header")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fl := w.(http.Flusher)
		for _, ev := range events {
			fmt.Fprint(w, ev)
			fl.Flush()
		}
		<-r.Context().Done()
	})
	mux.HandleFunc("POST /ping/{session}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("session") != "abc123" {
			t.Errorf("ping for wrong session %q", r.PathValue("session"))
		}
		if pings != nil {
			pings.Add(1)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStreamDeliversUpdates(t *testing.T) {
	events := []string{
		"event: utterance\ndata: <div>hello there</div>\n\n",
		": keepalive\n\n",
		"event: root\ndata: <div id=\"home\" class=\"fade-in\">page</div>\n\n",
	}
	srv := guiServer(t, events, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New(srv.URL, time.Minute, nil)
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	first := recvUpdate(t, c)
	if first.Target != "utterance" || first.Markup != "<div>hello there</div>" {
		t.Errorf("unexpected first update: %+v", first)
	}
	second := recvUpdate(t, c)
	if second.Target != "root" {
		t.Errorf("unexpected second target: %q", second.Target)
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestStreamJoinsMultiLineData(t *testing.T) {
	events := []string{
		"event: root\n" +
			"data: <div class=\"fade-in\n" +
			"data: speech-period-3\">x</div>\n\n",
	}
	srv := guiServer(t, events, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New(srv.URL, time.Minute, nil)
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	up := recvUpdate(t, c)
	// Data lines of one event join with a newline, so class tokens on
	// separate lines stay separate tokens.
	want := "<div class=\"fade-in\nspeech-period-3\">x</div>"
	if up.Markup != want {
		t.Errorf("markup = %q, want %q", up.Markup, want)
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestStreamPingsSession(t *testing.T) {
	var pings atomic.Int32
	srv := guiServer(t, nil, &pings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New(srv.URL, 20*time.Millisecond, nil)
	go c.Run(ctx)

	deadline := time.After(2 * time.Second)
	for pings.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected pings, got %d", pings.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStreamReconnects(t *testing.T) {
	var sessions atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		sessions.Add(1)
		fmt.Fprint(w, `<p id="session-id">s1</p>`)
	})
	mux.HandleFunc("GET /updates", func(w http.ResponseWriter, r *http.Request) {
		// Drop the stream immediately to force a reconnect.
	})
	mux.HandleFunc("POST /ping/{session}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := New(srv.URL, time.Minute, nil)
	go c.Run(ctx)

	deadline := time.After(5 * time.Second)
	for sessions.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected a reconnect, got %d sessions", sessions.Load())
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestOpenSessionRejectsMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>no session here</body></html>`)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Minute, nil)
	if _, err := c.openSession(context.Background()); err == nil {
		t.Error("expected error for page without session id")
	}
}

func recvUpdate(t *testing.T, c *Client) fragment.Update {
	t.Helper()
	select {
	case u := <-c.Updates():
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		return fragment.Update{}
	}
}
