package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/langlights/internal/conn"
	"github.com/sweeney/langlights/internal/render"
	"github.com/sweeney/langlights/internal/stats"
	"github.com/sweeney/langlights/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		Server:              "rapscript.net",
		Port:                8143,
		Capacity:            30,
		HeartbeatMs:         25000,
		DisconnectThreshold: 10,
		Broker:              "tcp://192.168.1.200:1883",
		HTTPAddr:            ":8080",
	}
	tr := status.NewTracker(start, "sess-1", cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, tr
}

func setFrame(t *testing.T, tr *status.Tracker, text string) {
	t.Helper()
	msg, err := stats.Decode(text, stats.DefaultHues())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	res := stats.Allocate(msg.Records, msg.TotalRawCount, 30)
	tr.SetFrame(time.Now(), res, render.Frame(res, render.Options{Brightness: 51, Boost: 51}))
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	setFrame(t, tr, `["statistics",{"en":5,"es":3}]`)
	tr.SetConnection(conn.StateConnected, 0)
	tr.SetMQTTConnected(true)

	resp, body := get(t, ts.URL+"/index.json")
	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.Unmarshal([]byte(body), &sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if sj.Status.State != "CONNECTED" {
		t.Errorf("State: got %q", sj.Status.State)
	}
	if sj.Status.Total != 8 {
		t.Errorf("Total: got %d, want 8", sj.Status.Total)
	}
	if len(sj.Status.Languages) != 2 {
		t.Errorf("Languages: got %d", len(sj.Status.Languages))
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("MQTT.Broker: got %q", sj.Status.MQTT.Broker)
	}
}

func TestHTMLEndpointRoot(t *testing.T) {
	ts, tr := newTestServer(t)
	setFrame(t, tr, `["statistics",{"en":40,"es":10}]`)
	tr.SetLines([]string{"Welcome!", "en:40 es:10"})

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}
	if n := strings.Count(body, `class="unit"`); n != 30 {
		t.Errorf("expected 30 strip units, got %d", n)
	}
	for _, want := range []string{"(halved)", "en:40 es:10", "rapscript.net:8143", "sess-1"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestHTMLEndpointIndexHTML(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, _ := get(t, ts.URL+"/index.html")
	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
}

func TestNotFoundForUnknownPath(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, _ := get(t, ts.URL+"/nonexistent")
	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestStateChangesReflectedInResponse(t *testing.T) {
	ts, tr := newTestServer(t)

	_, body := get(t, ts.URL+"/index.json")
	var sj1 status.StatusJSON
	json.Unmarshal([]byte(body), &sj1)
	if sj1.Status.State != "DISCONNECTED" {
		t.Errorf("expected DISCONNECTED initially, got %q", sj1.Status.State)
	}

	tr.SetConnection(conn.StateSleeping, 11)

	_, body = get(t, ts.URL+"/index.json")
	var sj2 status.StatusJSON
	json.Unmarshal([]byte(body), &sj2)
	if sj2.Status.State != "SLEEPING" || sj2.Status.Disconnects != 11 {
		t.Errorf("got %s/%d, want SLEEPING/11", sj2.Status.State, sj2.Status.Disconnects)
	}
}
