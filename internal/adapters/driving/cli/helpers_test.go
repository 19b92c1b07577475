package cli

import (
	"bytes"
	"context"
	"net/http"
	"sync"

	"github.com/custodia-labs/streamctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
	"github.com/custodia-labs/streamctl/internal/core/services"
)

type fakeTokens struct {
	state     domain.TokenState
	ensureErr error
	ensured   int
}

func (f *fakeTokens) EnsureValidToken(context.Context) error {
	f.ensured++
	if f.ensureErr != nil {
		return f.ensureErr
	}
	f.state = domain.TokenStateValid
	return nil
}

func (f *fakeTokens) Invalidate()                { f.state = domain.TokenStateExpired }
func (f *fakeTokens) State() domain.TokenState   { return f.state }
func (f *fakeTokens) Headers() http.Header       { return http.Header{} }
func (f *fakeTokens) BearerHeaders() http.Header { return http.Header{} }

type fakeClient struct {
	name   string
	tokens *fakeTokens

	resp   *domain.APIResponse
	reqErr error

	mu          sync.Mutex
	lastMethod  string
	lastAddress string
	lastOpts    driving.RequestOptions
	submitted   []domain.ChannelInfo
}

func newFakeClient(name string) *fakeClient {
	return &fakeClient{
		name:   name,
		tokens: &fakeTokens{state: domain.TokenStateNone},
		resp:   &domain.APIResponse{StatusCode: http.StatusOK, Body: []byte(`{"data":[]}`)},
	}
}

func (f *fakeClient) Name() string { return f.name }

func (f *fakeClient) Request(_ context.Context, method, address string, opts driving.RequestOptions) (*domain.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastMethod, f.lastAddress, f.lastOpts = method, address, opts
	return f.resp, f.reqErr
}

func (f *fakeClient) UpdateChannel(_ context.Context, info domain.ChannelInfo) (domain.ChannelInfo, error) {
	out := info.Clone()
	out[domain.ChannelName] = f.name
	return out.ParseStrings(), nil
}

func (f *fakeClient) SubmitChannel(ctx context.Context, info domain.ChannelInfo) (domain.ChannelInfo, error) {
	out, err := f.UpdateChannel(ctx, info)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.submitted = append(f.submitted, out)
	f.mu.Unlock()
	return out, nil
}

func (f *fakeClient) Submitted() []domain.ChannelInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ChannelInfo(nil), f.submitted...)
}

func (f *fakeClient) Tokens() driving.TokenManager { return f.tokens }

type fakeInspector struct {
	processes  map[string]domain.ProcessInfo
	services   map[string]domain.ServiceInfo
	foreground string

	lastFilter, lastStatus string
}

func (f *fakeInspector) Processes(context.Context) (map[string]domain.ProcessInfo, error) {
	return f.processes, nil
}

func (f *fakeInspector) Services(_ context.Context, nameFilter, status string) (map[string]domain.ServiceInfo, error) {
	f.lastFilter, f.lastStatus = nameFilter, status
	return f.services, nil
}

func (f *fakeInspector) ForegroundProcess(context.Context) (string, error) {
	return f.foreground, nil
}

type fakePauser struct {
	calls  int
	active bool
}

func (f *fakePauser) WithPaused(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	f.active = true
	defer func() { f.active = false }()
	return fn(ctx)
}

type fakeMetrics struct {
	written []string
}

func (f *fakeMetrics) WriteTextfile(path string) error {
	f.written = append(f.written, path)
	return nil
}

// testServices holds the fakes installed by setupTestServices.
type testServices struct {
	client    *fakeClient
	inspector *fakeInspector
	pauser    *fakePauser
	metrics   *fakeMetrics
	config    *memory.ConfigStore
}

// setupTestServices installs fakes for every command and returns a cleanup
// function restoring the previous state and resetting command flags.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		client: newFakeClient("Twitch"),
		inspector: &fakeInspector{
			processes: map[string]domain.ProcessInfo{
				"C:/obs64.exe":  {Name: "obs64.exe", Exe: "C:/obs64.exe", NumThreads: 30, MemoryPercent: 2.5},
				"C:/chrome.exe": {Name: "chrome.exe", Exe: "C:/chrome.exe", NumThreads: 40, MemoryPercent: 4},
			},
			services: map[string]domain.ServiceInfo{
				"C:/spoolsv.exe": {Name: "Spooler", BinPath: "C:/spoolsv.exe", Status: "running", StartType: "automatic"},
			},
			foreground: "C:/Games/game.exe",
		},
		pauser:  &fakePauser{},
		metrics: &fakeMetrics{},
		config:  memory.NewConfigStore(),
	}

	Install(&Dependencies{
		Settings: services.NewSettingsService(ts.config),
		Registry: services.DefaultRegistry(),
		Clients: func(name string) (driving.ServiceClient, error) {
			if name != "twitch" {
				return nil, domain.ErrNotFound
			}
			return ts.client, nil
		},
		Pauser:    ts.pauser,
		Inspector: ts.inspector,
		Metrics:   ts.metrics,
	})

	return ts, func() {
		Install(nil)
		resetFlags()
	}
}

func resetFlags() {
	verbose, configDir, logFormat, metricsTextfile = false, "", "", ""
	requestParams, requestData, requestBearer = nil, "", false
	channelFile, channelSet, channelSubmit = "", nil, false
	systemJSON, serviceName, serviceStatus = false, "", ""
	pauseDuration = 0
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
