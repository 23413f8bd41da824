package api

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/smazurov/nucled/internal/api/models"
	"github.com/smazurov/nucled/internal/events"
	"github.com/smazurov/nucled/internal/led"
	"github.com/smazurov/nucled/internal/startup"
)

type testEnv struct {
	server   *Server
	ts       *httptest.Server
	recorder *led.Recorder
	bus      *events.Bus
	lights   string
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEnv(t *testing.T, username, password string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	lightsFile := filepath.Join(dir, "lights_conf.json")
	content := `{"lights": [{"led": "button", "source": "power", "brightness": 50, "color": "#FF8000"}]}`
	if err := os.WriteFile(lightsFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	logger := newTestLogger()
	bus := events.New()
	rec := led.NewRecorder()
	emitter := led.NewEmitter(rec, logger, led.WithEventBus(bus))
	driver := startup.NewDriver(emitter, startup.Options{LightsFile: lightsFile, LogFile: filepath.Join(dir, "log")}, logger, bus)

	server := NewServer(&Options{
		AuthUsername:      username,
		AuthPassword:      password,
		Emitter:           emitter,
		Driver:            driver,
		EventBus:          bus,
		PrometheusHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { io.WriteString(w, "# metrics\n") }),
	})
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{server: server, ts: ts, recorder: rec, bus: bus, lights: lightsFile}
}

func (e *testEnv) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(e.ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(e.ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "", "")

	resp := env.get(t, "/api/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body models.HealthData
	decode(t, resp, &body)
	if body.Status != "ok" || body.Device != "memory" || body.State != string(startup.StateIdle) {
		t.Errorf("health = %+v", body)
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, "", "")

	var body models.VersionData
	decode(t, env.get(t, "/api/version"), &body)
	if body.Name != "nucled" || body.Version == "" {
		t.Errorf("version = %+v", body)
	}
}

func TestSetLight(t *testing.T) {
	env := newTestEnv(t, "", "")

	resp := env.post(t, "/api/lights", `{"led": "skull", "source": "hddio", "brightness": 10, "color": "#112233"}`)
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, b)
	}

	var body models.LightResultData
	decode(t, resp, &body)

	want := []string{
		"set_indicator,2,1",
		"set_indicator_value,2,1,0,10",
		"set_indicator_value,2,1,1,17",
		"set_indicator_value,2,1,2,34",
		"set_indicator_value,2,1,3,51",
	}
	if !reflect.DeepEqual(body.Commands, want) {
		t.Errorf("commands = %v, want %v", body.Commands, want)
	}
	if !reflect.DeepEqual(env.recorder.Lines(), want) {
		t.Errorf("device lines = %v, want %v", env.recorder.Lines(), want)
	}
}

func TestSetLight_InvalidSetting(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown led", `{"led": "ring", "source": "power", "brightness": 10, "color": "#112233"}`},
		{"unknown source", `{"led": "button", "source": "disk", "brightness": 10, "color": "#112233"}`},
		{"bad color", `{"led": "button", "source": "power", "brightness": 10, "color": "#12345"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "", "")
			if resp := env.post(t, "/api/lights", tt.body); resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestSetLight_WriteErrorsReported(t *testing.T) {
	env := newTestEnv(t, "", "")
	env.recorder.FailWith(func(led.Command) error { return errors.New("device gone") })

	resp := env.post(t, "/api/lights", `{"led": "f1", "source": "off", "brightness": 0, "color": "#000000"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body models.LightResultData
	decode(t, resp, &body)
	if len(body.WriteErrors) != 1 {
		t.Errorf("write errors = %v, want 1", body.WriteErrors)
	}
}

func TestApplyLights(t *testing.T) {
	env := newTestEnv(t, "", "")

	resp := env.post(t, "/api/lights/apply", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body models.ApplyData
	decode(t, resp, &body)
	if body.State != string(startup.StateCompleted) || body.Applied != 1 || body.LightsFile != env.lights {
		t.Errorf("apply = %+v", body)
	}
	if got := len(env.recorder.Lines()); got != 5 {
		t.Errorf("wrote %d commands, want 5", got)
	}
}

func TestApplyLights_FailedBatch(t *testing.T) {
	env := newTestEnv(t, "", "")
	if err := os.WriteFile(env.lights, []byte(`{"lights": [{"led": "nose", "source": "power", "brightness": 1, "color": "000000"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var body models.ApplyData
	decode(t, env.post(t, "/api/lights/apply", ""), &body)
	if body.State != string(startup.StateFailed) || body.Error == "" {
		t.Errorf("apply = %+v, want failed with error", body)
	}
}

func TestSymbols(t *testing.T) {
	env := newTestEnv(t, "", "")

	var body models.SymbolsData
	decode(t, env.get(t, "/api/lights/symbols"), &body)

	if len(body.LEDs) != 6 || body.LEDs[0].Name != "button" {
		t.Errorf("leds = %+v", body.LEDs)
	}
	if len(body.Indicators) != 6 {
		t.Fatalf("indicators = %+v", body.Indicators)
	}

	byName := make(map[string]models.IndicatorSymbol)
	for _, ind := range body.Indicators {
		byName[ind.Name] = ind
	}
	if got := byName["netio"].Fields; !reflect.DeepEqual(got, []string{"behavior", "brightness", "red", "green", "blue"}) {
		t.Errorf("netio fields = %v", got)
	}
	if got := byName["off"].Fields; len(got) != 0 {
		t.Errorf("off fields = %v, want none", got)
	}
}

func TestLogs(t *testing.T) {
	env := newTestEnv(t, "", "")

	resp := env.get(t, "/api/logs?limit=5&module=led")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body models.LogsData
	decode(t, resp, &body)
	if body.Count != len(body.Entries) || body.Count > 5 {
		t.Errorf("logs count = %d, entries = %d", body.Count, len(body.Entries))
	}
	for _, e := range body.Entries {
		if e.Module != "led" {
			t.Errorf("entry from module %q, want led", e.Module)
		}
	}

	if resp := env.get(t, "/api/logs?limit=0"); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("limit=0 status = %d, want 422", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, "admin", "secret")

	resp := env.get(t, "/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 without auth", resp.StatusCode)
	}
}

func TestBasicAuth(t *testing.T) {
	env := newTestEnv(t, "admin", "secret")

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no credentials", "/api/lights/symbols", "", http.StatusUnauthorized},
		{"wrong scheme", "/api/lights/symbols", "Bearer abc", http.StatusUnauthorized},
		{"wrong password", "/api/lights/symbols", "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:nope")), http.StatusUnauthorized},
		{"wrong user", "/api/lights/symbols", "Basic " + base64.StdEncoding.EncodeToString([]byte("root:secret")), http.StatusUnauthorized},
		{"password prefix", "/api/lights/symbols", "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secre")), http.StatusUnauthorized},
		{"password with suffix", "/api/lights/symbols", "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret2")), http.StatusUnauthorized},
		{"not base64", "/api/lights/symbols", "Basic !!!", http.StatusUnauthorized},
		{"valid", "/api/lights/symbols", "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret")), http.StatusOK},
		{"health is public", "/api/health", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, env.ts.URL+tt.path, nil)
			if err != nil {
				t.Fatal(err)
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if tt.want == http.StatusUnauthorized && resp.Header.Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
		})
	}
}

func TestServer_StartStop(t *testing.T) {
	env := newTestEnv(t, "", "")

	done := make(chan error, 1)
	go func() { done <- env.server.Start("127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := env.server.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v, want nil after Stop", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after Stop")
	}
}

func TestServer_StopBeforeStart(t *testing.T) {
	env := newTestEnv(t, "", "")

	if err := env.server.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- env.server.Start("127.0.0.1:0") }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v, want nil on a stopped server", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() kept serving after Stop")
	}
}

func TestPreflight(t *testing.T) {
	env := newTestEnv(t, "admin", "secret")

	req, err := http.NewRequest(http.MethodOptions, env.ts.URL+"/api/lights", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestEventStream(t *testing.T) {
	env := newTestEnv(t, "admin", "secret")

	credentials := base64.StdEncoding.EncodeToString([]byte("admin:secret"))
	resp, err := http.Get(fmt.Sprintf("%s/api/events?auth=%s", env.ts.URL, credentials))
	if err != nil {
		t.Fatalf("failed to connect to event stream: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/event-stream") {
		t.Fatalf("content type = %q", resp.Header.Get("Content-Type"))
	}

	lines := make(chan string, 32)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			if line := scanner.Text(); strings.HasPrefix(line, "data:") {
				lines <- line
			}
		}
	}()

	select {
	case line := <-lines:
		if !strings.Contains(line, "SSE connection established") {
			t.Fatalf("first event = %s, want greeting", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for greeting")
	}

	req, _ := http.NewRequest(http.MethodPost, env.ts.URL+"/api/lights", strings.NewReader(`{"led": "button", "source": "off", "brightness": 0, "color": "#000000"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+credentials)
	postResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	postResp.Body.Close()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case line := <-lines:
			if strings.Contains(line, "set_indicator,0,6") {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for command-written event")
		}
	}
}
