package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"hookscript/internal/config"
)

const probeTimeout = 5 * time.Second

// Requirement is an external binary the pipeline shells out to.
type Requirement struct {
	Name        string
	Command     string
	VersionArgs []string
	Optional    bool
}

// Status is the result of probing one Requirement.
type Status struct {
	Requirement
	Path      string
	Version   string
	Available bool
	Detail    string
}

// Prober runs a resolved binary and returns what it printed.
type Prober func(ctx context.Context, path string, args ...string) ([]byte, error)

// Requirements lists the binaries the configured pipeline executes, using
// the configured command paths. uvx is only required when WhisperX is the
// selected transcription backend.
func Requirements(cfg *config.Config) []Requirement {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	return []Requirement{
		{Name: "yt-dlp", Command: cfg.Download.YTDLPBinary, VersionArgs: []string{"--version"}},
		{Name: "FFmpeg", Command: cfg.Download.FFmpegBinary, VersionArgs: []string{"-version"}},
		{
			Name:        "uvx",
			Command:     "uvx",
			VersionArgs: []string{"--version"},
			Optional:    cfg.Transcription.Backend != config.BackendWhisperX,
		},
	}
}

// Check resolves each requirement and records the first line of its version
// output.
func Check(ctx context.Context, reqs []Requirement) []Status {
	return CheckWith(ctx, reqs, runProbe)
}

// CheckWith is Check with a caller-supplied version prober. A failing probe
// leaves the binary available with Version "unknown".
func CheckWith(ctx context.Context, reqs []Requirement, probe Prober) []Status {
	results := make([]Status, 0, len(reqs))
	for _, req := range reqs {
		req.Command = strings.TrimSpace(req.Command)
		status := Status{Requirement: req}
		if req.Command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(req.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
			results = append(results, status)
			continue
		}
		status.Path = path
		status.Available = true
		status.Version = "unknown"
		if probe != nil && len(req.VersionArgs) > 0 {
			out, err := probe(ctx, path, req.VersionArgs...)
			if line := firstLine(out); err == nil && line != "" {
				status.Version = line
			}
		}
		results = append(results, status)
	}
	return results
}

// Missing returns the required statuses that are unavailable.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			out = append(out, status)
		}
	}
	return out
}

func runProbe(ctx context.Context, path string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, path, args...).Output()
}

func firstLine(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			if len(line) > 80 {
				line = line[:80]
			}
			return line
		}
	}
	return ""
}
