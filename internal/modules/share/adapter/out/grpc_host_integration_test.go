package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	shareout "audiomark/internal/modules/share/adapter/out"
	"audiomark/internal/modules/share/domain"
)

func TestGRPCHostIntegrationNotefilePlugin(t *testing.T) {
	notesDir := t.TempDir()
	t.Setenv("AUDIOMARK_NOTEFILE_DIR", notesDir)
	binPath, checksum := buildNotefilePlugin(t)
	manifest := domain.Manifest{
		Name:    "notefile",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  checksum,
		Enabled: true,
	}

	host := shareout.NewGRPCHost(5*time.Second, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	meta, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if meta.Name != "notefile" || len(meta.Formats) != 1 {
		t.Fatalf("unexpected metadata %+v", meta)
	}

	receipt, err := host.Share(ctx, manifest, domain.Note{
		DocumentRef: "file:///music/lecture.mp3",
		Subject:     "Lecture 3",
		Body:        "#Edit-times\n\n00:00:01\n00:01:05\n",
		MIME:        "text/plain",
		Count:       2,
	})
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if receipt.Location != filepath.Join(notesDir, "lecture-3.txt") {
		t.Fatalf("unexpected location %s", receipt.Location)
	}
	raw, err := os.ReadFile(receipt.Location)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if !strings.HasSuffix(string(raw), "00:01:05\n") {
		t.Fatalf("unexpected note content %q", raw)
	}
}

func buildNotefilePlugin(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "notefile-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/notefile")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build notefile plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
