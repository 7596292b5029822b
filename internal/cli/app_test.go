package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"finzen/internal/api"
	"finzen/internal/services"
	"finzen/internal/session"
)

func newTestApp(t *testing.T, handler http.Handler) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokenPath := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenPath, []byte("tok-test\n"), 0600); err != nil {
		t.Fatal(err)
	}

	sess := session.New(tokenPath)
	client := api.NewClient(srv.URL, time.Second, sess)
	sess.Attach(client.Auth)

	out := &bytes.Buffer{}
	in := &bytes.Buffer{}
	goals := services.NewGoalService(client.Goals, nil, nil)
	return NewApp(client, sess, goals, out, in), out, in
}

func authedMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"email":"ana@example.com","name":"Ana","locale":"es","currency":"MXN","onboarding_done":true,"email_verified":true}`))
	})
	return mux
}

func TestGoalsListRendersProgressAndEstimate(t *testing.T) {
	mux := authedMux(t)
	mux.HandleFunc("/goals", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":3,"name":"Fondo","target_amount":1000000,"current_amount":400000,"quota_amount":100000,"frequency":"monthly","status":"active"}]`))
	})

	app, out, _ := newTestApp(t, mux)
	if err := app.Run(context.Background(), []string{"goals", "list"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Fondo") {
		t.Errorf("output missing goal name:\n%s", got)
	}
	if !strings.Contains(got, "40.0%") {
		t.Errorf("output missing progress:\n%s", got)
	}
	// 6 monthly quotas from today: the ETA column carries a real date.
	if !strings.Contains(got, "ETA") || !strings.Contains(got, "-") {
		t.Errorf("output missing estimate column:\n%s", got)
	}
}

func TestGoalsContributeShowsServerState(t *testing.T) {
	mux := authedMux(t)
	mux.HandleFunc("/goals", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":3,"name":"Fondo","target_amount":1000000,"current_amount":400000,"frequency":"monthly","status":"active"}]`))
	})
	mux.HandleFunc("/goals/3/contributions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(`{"id":3,"name":"Fondo","target_amount":1000000,"current_amount":402500,"frequency":"monthly","status":"active"}`))
	})

	app, out, _ := newTestApp(t, mux)
	err := app.Run(context.Background(), []string{
		"goals", "contribute", "-id", "3", "-amount", "2500", "-date", "2025-01-31",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "402500.00 of 1000000.00") {
		t.Errorf("output should show server-rendered amounts:\n%s", out.String())
	}
}

func TestGoalsAchieveAbortsWithoutConfirmation(t *testing.T) {
	mux := authedMux(t)
	var achieveCalled bool
	mux.HandleFunc("/goals", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":3,"name":"Fondo","target_amount":1000000,"current_amount":1000000,"frequency":"monthly","status":"active"}]`))
	})
	mux.HandleFunc("/goals/3/achieve", func(w http.ResponseWriter, r *http.Request) {
		achieveCalled = true
		w.Write([]byte(`{"id":3,"name":"Fondo","target_amount":1000000,"current_amount":1000000,"frequency":"monthly","status":"achieved"}`))
	})

	app, out, in := newTestApp(t, mux)
	in.WriteString("n\n")
	if err := app.Run(context.Background(), []string{"goals", "achieve", "-id", "3"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if achieveCalled {
		t.Error("achieve endpoint must not be called without confirmation")
	}
	if !strings.Contains(out.String(), "Aborted") {
		t.Errorf("expected abort notice:\n%s", out.String())
	}

	// Confirmed run goes through.
	in.WriteString("y\n")
	if err := app.Run(context.Background(), []string{"goals", "achieve", "-id", "3"}); err != nil {
		t.Fatalf("confirmed Run() error = %v", err)
	}
	if !achieveCalled {
		t.Error("achieve endpoint should be called after confirmation")
	}
}

func TestBackendDetailShownVerbatim(t *testing.T) {
	mux := authedMux(t)
	mux.HandleFunc("/goals", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":3,"name":"Fondo","target_amount":1000000,"current_amount":400000,"frequency":"monthly","status":"active"}]`))
	})
	mux.HandleFunc("/goals/3/contributions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"La meta ya fue alcanzada"}`))
	})

	app, _, _ := newTestApp(t, mux)
	err := app.Run(context.Background(), []string{
		"goals", "contribute", "-id", "3", "-amount", "100", "-date", "2025-01-31",
	})
	if err == nil || !strings.Contains(err.Error(), "La meta ya fue alcanzada") {
		t.Errorf("error = %v, want backend detail verbatim", err)
	}
}

func TestDashboardHeaderIsPlainASCII(t *testing.T) {
	mux := authedMux(t)
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/transactions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/goals", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/budgets/month/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/recurring", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	app, out, _ := newTestApp(t, mux)
	if err := app.Run(context.Background(), []string{"dashboard"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Ana - ") {
		t.Errorf("expected plain dash header:\n%s", got)
	}
	for _, r := range got {
		if r > 127 {
			t.Errorf("non-ASCII rune %q in output:\n%s", r, got)
			break
		}
	}
}

func TestCommandsRequireSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected without a token, got %s", r.URL.Path)
	}))
	t.Cleanup(srv.Close)

	sess := session.New(filepath.Join(t.TempDir(), "token"))
	client := api.NewClient(srv.URL, time.Second, sess)
	sess.Attach(client.Auth)
	out := &bytes.Buffer{}
	app := NewApp(client, sess, services.NewGoalService(client.Goals, nil, nil), out, &bytes.Buffer{})

	for _, cmd := range [][]string{{"whoami"}, {"dashboard"}, {"goals", "list"}, {"accounts"}} {
		if err := app.Run(context.Background(), cmd); err == nil || !strings.Contains(err.Error(), "not logged in") {
			t.Errorf("Run(%v) error = %v, want login hint", cmd, err)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	app, _, _ := newTestApp(t, authedMux(t))
	if err := app.Run(context.Background(), []string{"frobnicate"}); err == nil {
		t.Error("expected error for unknown command")
	}
}
