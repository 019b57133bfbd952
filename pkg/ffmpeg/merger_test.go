package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/iconidentify/vidgrab/internal/config"
	"github.com/iconidentify/vidgrab/internal/domain"
	"github.com/iconidentify/vidgrab/pkg/execx"
)

// fakeRunner records the invocation and, unless err is set, writes a file at
// the last argument the way ffmpeg would.
type fakeRunner struct {
	err    error
	stderr string
	name   string
	args   []string
	calls  int
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (*execx.Result, error) {
	f.calls++
	f.name = name
	f.args = args
	if f.err != nil {
		return &execx.Result{Stderr: f.stderr, ExitCode: 1}, f.err
	}
	out := args[len(args)-1]
	if err := os.WriteFile(out, []byte("merged"), 0644); err != nil {
		return nil, err
	}
	return &execx.Result{}, nil
}

func testToolsConfig() config.ToolsConfig {
	return config.ToolsConfig{
		FFmpegPath:   "/opt/ffmpeg",
		MergeTimeout: time.Minute,
	}
}

func TestArgs(t *testing.T) {
	got := Args("https://v", "https://a", "out.mp4")
	want := []string{
		"-y", "-nostdin", "-loglevel", "error",
		"-i", "https://v",
		"-i", "https://a",
		"-c:v", "copy",
		"-c:a", "aac",
		"-strict", "experimental",
		"out.mp4",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}
}

func TestStreamMerger_Merge_Success(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "nested", "X-1080p.mp4")
	runner := &fakeRunner{}
	m := NewStreamMerger(testToolsConfig(), runner)

	if err := m.Merge(context.Background(), "https://v", "https://a", output); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if runner.calls != 1 {
		t.Errorf("runner calls = %d, want 1", runner.calls)
	}
	if runner.name != "/opt/ffmpeg" {
		t.Errorf("binary = %q, want %q", runner.name, "/opt/ffmpeg")
	}

	written := runner.args[len(runner.args)-1]
	if written == output {
		t.Error("ffmpeg should write to a temporary path, not the final output")
	}
	if !strings.HasSuffix(written, ".mp4") {
		t.Errorf("temporary path %q should keep the .mp4 extension", written)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not created: %v", err)
	}
	if string(data) != "merged" {
		t.Errorf("output content = %q", data)
	}
	if _, err := os.Stat(written); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}
}

func TestStreamMerger_Merge_Failure(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "X-1080p.mp4")
	runner := &fakeRunner{
		err:    errors.New("ffmpeg exited with status 1"),
		stderr: "https://v: Server returned 403 Forbidden",
	}
	m := NewStreamMerger(testToolsConfig(), runner)

	err := m.Merge(context.Background(), "https://v", "https://a", output)
	if !errors.Is(err, domain.ErrMergeFailed) {
		t.Fatalf("error = %v, want ErrMergeFailed", err)
	}
	if !strings.Contains(err.Error(), "403 Forbidden") {
		t.Errorf("error %q should carry ffmpeg's diagnostic output", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("output should not exist after a failed merge")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("output dir should be empty, found %d entries", len(entries))
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "plain title",
			title: "My Video",
			want:  filepath.Join("downloads", "My Video-1080p.mp4"),
		},
		{
			name:  "path separators",
			title: "../../etc/passwd",
			want:  filepath.Join("downloads", "_.._etc_passwd-1080p.mp4"),
		},
		{
			name:  "reserved characters",
			title: `a:b*c?"d"<e>|f`,
			want:  filepath.Join("downloads", "a_b_c__d__e__f-1080p.mp4"),
		},
		{
			name:  "url metacharacters",
			title: "100% real #shorts",
			want:  filepath.Join("downloads", "100_ real _shorts-1080p.mp4"),
		},
		{
			name:  "empty title",
			title: "   ",
			want:  filepath.Join("downloads", "video-1080p.mp4"),
		},
		{
			name:  "dots only",
			title: "...",
			want:  filepath.Join("downloads", "video-1080p.mp4"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath("downloads", tt.title, 1080); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeTitle_Truncates(t *testing.T) {
	long := strings.Repeat("é", 80) // 160 bytes
	got := sanitizeTitle(long)
	if len(got) > maxTitleLen {
		t.Errorf("len = %d, want <= %d", len(got), maxTitleLen)
	}
	if !strings.HasPrefix(long, got) {
		t.Error("truncation should keep whole runes")
	}
}

func TestIsPartial(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{filepath.Base(partPath(filepath.Join("downloads", "X-1080p.mp4"))), true},
		{"X-1080p.1a2b3c4d.part.mp4", true},
		{"X-1080p.mp4", false},
		{"Movie.part.2-1080p.mp4", false},
		{"Movie.part.mp4-1080p.mp4", false},
		{"X-1080p.zzzzzzzz.part.mp4", false},
	}

	for _, tt := range tests {
		if got := IsPartial(tt.name); got != tt.want {
			t.Errorf("IsPartial(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
