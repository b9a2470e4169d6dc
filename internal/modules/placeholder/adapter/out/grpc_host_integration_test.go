package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	placeholderout "questbook/internal/modules/placeholder/adapter/out"
	"questbook/internal/modules/placeholder/domain"
)

func TestGRPCHostIntegrationReferencePlugin(t *testing.T) {
	binPath, checksum := buildReferencePlugin(t)
	manifest := domain.Manifest{
		Name:         "reference",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExpand},
	}

	host := placeholderout.NewGRPCHost()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "reference" {
		t.Fatalf("unexpected metadata name: %s", metadata.Name)
	}

	result, err := host.Expand(ctx, manifest, domain.ExpandRequest{
		Viewer:  "steve",
		QuestID: "dragon",
		Pages:   []string{"Good luck, {viewer}! Quest: {quest}."},
	})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(result.Pages) != 1 {
		t.Fatalf("expected one page, got %d", len(result.Pages))
	}
	if result.Pages[0] != "Good luck, steve! Quest: dragon." {
		t.Fatalf("unexpected expansion: %q", result.Pages[0])
	}
}

func buildReferencePlugin(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "reference-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/reference")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build reference plugin: %v\n%s", err, string(out))
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
