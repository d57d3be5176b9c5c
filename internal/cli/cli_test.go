package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tablebot/internal/config"
	"github.com/julianstephens/tablebot/internal/devserver"
	"github.com/julianstephens/tablebot/internal/keyring"
	"github.com/julianstephens/tablebot/internal/models"
)

func setupTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	srv, err := devserver.New(devserver.Options{
		Token: "secret",
		Now:   func() time.Time { return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("devserver.New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Close()
	})

	cfg := config.Default()
	cfg.BaseURL = ts.URL
	cfg.Token = "secret"
	cfg.TokenSource = config.TokenFlag
	cfg.ConfigDir = t.TempDir()

	var out bytes.Buffer
	return &Context{Config: cfg, Out: &out}, &out
}

func TestAskCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	cmd := &AskCmd{Date: "2025-08-16", Party: 4, Format: "json"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("ask command failed: %v", err)
	}

	var res askResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if !strings.HasPrefix(res.Reply, "Available times on Saturday Aug 16, 2025") {
		t.Errorf("reply = %q", res.Reply)
	}
	if res.Chips == nil || res.Chips.Date != "2025-08-16" || res.Chips.PartySize != 4 {
		t.Fatalf("chips = %+v", res.Chips)
	}
	if len(res.Chips.Times) == 0 || res.Chips.Times[0] != "12:00:00" {
		t.Errorf("times = %v", res.Chips.Times)
	}
}

func TestAskCmdFormats(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, output string)
	}{
		{
			format: "text",
			check: func(t *testing.T, output string) {
				if !strings.Contains(output, "Times on Saturday Aug 16, 2025 for 2: 12:00 PM") {
					t.Errorf("text output missing chip line:\n%s", output)
				}
			},
		},
		{
			format: "yaml",
			check: func(t *testing.T, output string) {
				var res struct {
					Reply string `yaml:"reply"`
					Chips struct {
						PartySize int `yaml:"party_size"`
					} `yaml:"chips"`
				}
				if err := yaml.Unmarshal([]byte(output), &res); err != nil {
					t.Fatalf("output is not YAML: %v", err)
				}
				if res.Chips.PartySize != 2 {
					t.Errorf("party_size = %d", res.Chips.PartySize)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			cmd := &AskCmd{Message: []string{"VisitDate: 2025-08-16,", "PartySize: 2"}, Format: tt.format}
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("ask command failed: %v", err)
			}
			tt.check(t, out.String())
		})
	}
}

func TestAskCmdErrors(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&AskCmd{Message: []string{"  "}, Format: "text"}).Run(ctx); err == nil {
		t.Error("expected an error for an empty message")
	}

	if err := (&AskCmd{Date: "16/08/2025", Party: 2, Format: "text"}).Run(ctx); err == nil {
		t.Error("expected an error for a malformed date")
	}

	ctx.Config.Token = "wrong"
	if err := (&AskCmd{Message: []string{"hello"}, Format: "text"}).Run(ctx); err == nil {
		t.Error("expected an error for a rejected token")
	}

	ctx.Config.BaseURL = "localhost:8000"
	if err := (&AskCmd{Message: []string{"hello"}, Format: "text"}).Run(ctx); err == nil {
		t.Error("expected an error for an invalid base URL")
	}
}

func TestTokenCmds(t *testing.T) {
	gokeyring.MockInit()
	defer func() { _ = keyring.DeleteToken() }()

	ctx := &Context{Out: &bytes.Buffer{}}

	if err := (&TokenGetCmd{}).Run(ctx); err == nil {
		t.Error("expected an error when no token is stored")
	}

	if err := (&TokenSetCmd{Token: "abcdef123456"}).Run(ctx); err != nil {
		t.Fatalf("token set failed: %v", err)
	}
	stored, err := keyring.GetToken()
	if err != nil || stored != "abcdef123456" {
		t.Fatalf("stored token = %q, %v", stored, err)
	}

	var out bytes.Buffer
	ctx.Out = &out
	if err := (&TokenGetCmd{}).Run(ctx); err != nil {
		t.Fatalf("token get failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "********3456" {
		t.Errorf("token get output = %q", got)
	}

	out.Reset()
	ctx.Config.TokenSource = config.TokenKeyring
	if err := (&TokenStatusCmd{}).Run(ctx); err != nil {
		t.Fatalf("token status failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Token is stored in keyring") || !strings.Contains(out.String(), "keyring") {
		t.Errorf("token status output = %q", out.String())
	}

	if err := (&TokenDeleteCmd{}).Run(ctx); err != nil {
		t.Fatalf("token delete failed: %v", err)
	}
	if err := (&TokenDeleteCmd{}).Run(ctx); err == nil {
		t.Error("expected an error deleting a missing token")
	}
}

func TestTokenSetFromInput(t *testing.T) {
	gokeyring.MockInit()
	defer func() { _ = keyring.DeleteToken() }()

	ctx := &Context{Out: &bytes.Buffer{}, In: strings.NewReader("  from-stdin  \n")}
	if err := (&TokenSetCmd{}).Run(ctx); err != nil {
		t.Fatalf("token set failed: %v", err)
	}
	if got, _ := keyring.GetToken(); got != "from-stdin" {
		t.Errorf("stored token = %q", got)
	}

	ctx.In = strings.NewReader("\n")
	if err := (&TokenSetCmd{}).Run(ctx); err == nil {
		t.Error("expected an error for an empty token")
	}
}

func TestDoctorCmd(t *testing.T) {
	gokeyring.MockInit()

	t.Run("healthy backend", func(t *testing.T) {
		ctx, out := setupTestContext(t)
		if err := (&DoctorCmd{}).Run(ctx); err != nil {
			t.Errorf("doctor command failed: %v\n%s", err, out.String())
		}
		if !strings.Contains(out.String(), "✓ Backend reachable: OK") {
			t.Errorf("output = %s", out.String())
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		ctx, _ := setupTestContext(t)
		ctx.Config.Token = "wrong"
		if err := (&DoctorCmd{}).Run(ctx); err == nil {
			t.Error("doctor should fail when the token is rejected")
		}
	})

	t.Run("backend without health route", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		defer ts.Close()
		cfg := config.Default()
		cfg.BaseURL = ts.URL
		cfg.ConfigDir = t.TempDir()
		if err := (&DoctorCmd{}).Run(&Context{Config: cfg, Out: &bytes.Buffer{}}); err != nil {
			t.Errorf("a 404 still means reachable: %v", err)
		}
	})

	t.Run("invalid config skips backend", func(t *testing.T) {
		ctx, out := setupTestContext(t)
		ctx.Config.Timeout = 0
		if err := (&DoctorCmd{}).Run(ctx); err == nil {
			t.Error("doctor should fail on invalid configuration")
		}
		if !strings.Contains(out.String(), "SKIPPED") {
			t.Errorf("output = %s", out.String())
		}
	})
}

func TestDebugCmds(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&DebugPathsCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug paths failed: %v", err)
	}
	var paths map[string]string
	if err := json.Unmarshal(out.Bytes(), &paths); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if paths["log_file"] != filepath.Join(ctx.Config.ConfigDir, "logs", "tablebot.log") {
		t.Errorf("log_file = %q", paths["log_file"])
	}

	out.Reset()
	if err := (&DebugConfigCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug config failed: %v", err)
	}
	if strings.Contains(out.String(), "secret") {
		t.Error("debug config leaked the token")
	}
	if !strings.Contains(out.String(), "base_url: "+ctx.Config.BaseURL) {
		t.Errorf("output = %s", out.String())
	}
}

func TestChatCmdMode(t *testing.T) {
	tests := []struct {
		mode     string
		wantMode models.Mode
		wantErr  bool
	}{
		{mode: "", wantMode: models.ModeOptions},
		{mode: "availability", wantMode: models.ModeAvailability},
		{mode: "cancel", wantMode: models.ModeCancel},
		{mode: "createCustomer", wantErr: true},
		{mode: "brunch", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			ctx, _ := setupTestContext(t)
			ctrl, err := (&ChatCmd{Mode: tt.mode}).controller(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("controller() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := ctrl.State().Mode; got != tt.wantMode {
				t.Errorf("Mode = %s, want %s", got, tt.wantMode)
			}
		})
	}
}

func TestConfigSaveCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	ctx.Config.Restaurant = "TheSleepyDragon"

	if err := (&ConfigSaveCmd{}).Run(ctx); err != nil {
		t.Fatalf("config save failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Configuration saved") {
		t.Errorf("output = %q", out.String())
	}

	loaded, err := config.Load(config.LoadOptions{
		ConfigDir: ctx.Config.ConfigDir,
		Getenv:    func(string) string { return "" },
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Restaurant != "TheSleepyDragon" || loaded.BaseURL != ctx.Config.BaseURL {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Token != "" {
		t.Error("token was written to config.yaml")
	}

	ctx.Config.Timeout = 0
	if err := (&ConfigSaveCmd{}).Run(ctx); err == nil {
		t.Error("expected an error saving an invalid configuration")
	}
}
