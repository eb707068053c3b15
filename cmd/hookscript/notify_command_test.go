package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNotifyTestDisabled(t *testing.T) {
	env := setupCLITestEnv(t, "")
	out, _, err := runCLI(t, []string{"notify", "test"}, env.configPath, "")
	if err != nil {
		t.Fatalf("notify test: %v", err)
	}
	requireContains(t, out, "Notifications disabled")
}

func TestNotifyTestSends(t *testing.T) {
	var title string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("Title")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	env := setupCLITestEnv(t, fmt.Sprintf("[notifications]\nntfy_topic = %q\n", server.URL+"/hookscript"))
	out, _, err := runCLI(t, []string{"notify", "test"}, env.configPath, "")
	if err != nil {
		t.Fatalf("notify test: %v", err)
	}
	requireContains(t, out, "Test notification sent")
	if title != "hookscript - Test" {
		t.Fatalf("unexpected title %q", title)
	}
}
