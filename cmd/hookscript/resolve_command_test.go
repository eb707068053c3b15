package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const savedResponse = `{"results":{"channels":[{"alternatives":[{"transcript":"x","paragraphs":{"paragraphs":[
 {"speaker":0,"sentences":[{"text":"Hello there friends."}]},
 {"speaker":1,"sentences":[{"text":"Hi."}]},
 {"speaker":0,"sentences":[{"text":"Let us begin today."}]}
]}}]}]}}`

func writeResponse(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "response.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write response: %v", err)
	}
	return path
}

func TestResolvePrintsTallyAndTranscript(t *testing.T) {
	env := setupCLITestEnv(t, "")
	out, _, err := runCLI(t, []string{"resolve", writeResponse(t, env.baseDir, savedResponse)}, env.configPath, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, out, "SPEAKER")
	requireContains(t, out, "Hello there friends. Let us begin today.")
	if strings.Contains(out, "Hi.") {
		t.Fatalf("minor speaker leaked into transcript: %s", out)
	}
}

func TestResolveScriptFlag(t *testing.T) {
	env := setupCLITestEnv(t, "")
	out, _, err := runCLI(t, []string{"resolve", "--script", writeResponse(t, env.baseDir, savedResponse)}, env.configPath, "")
	if err != nil {
		t.Fatalf("resolve --script: %v", err)
	}
	requireContains(t, out, "**HOOK:**\nNO CAPTIONS ON SCREEN. Make the avatar say: \"Hello there friends. Let us begin today.\"")
}

func TestResolveNoSpeech(t *testing.T) {
	env := setupCLITestEnv(t, "")
	body := `{"results":{"channels":[{"alternatives":[{"transcript":""}]}]}}`
	_, errOut, err := runCLI(t, []string{"resolve", writeResponse(t, env.baseDir, body)}, env.configPath, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, errOut, "couldn't find any speech")
}
