package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"questbook/internal/modules/placeholder/domain"
	"questbook/internal/modules/placeholder/dto"
	"questbook/internal/modules/placeholder/service"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	replace map[string]string
	err     error
	calls   []string
}

func (*fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (*fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}
func (h *fakeHost) Expand(_ context.Context, manifest domain.Manifest, input domain.ExpandRequest) (domain.ExpandResult, error) {
	h.calls = append(h.calls, manifest.Name)
	if h.err != nil {
		return domain.ExpandResult{}, h.err
	}
	pages := make([]string, len(input.Pages))
	for i, page := range input.Pages {
		for token, value := range h.replace {
			page = strings.ReplaceAll(page, token, value)
		}
		pages[i] = page
	}
	return domain.ExpandResult{Pages: pages}, nil
}

func TestExpandPassesThroughWithoutPlugins(t *testing.T) {
	t.Parallel()
	svc := service.NewPlaceholderService(fakeStore{}, &fakeHost{})
	out, err := svc.Expand(context.Background(), dto.ExpandInput{Viewer: "steve", QuestID: "dragon", Pages: []string{"Slay {target}."}})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(out.Pages) != 1 || out.Pages[0] != "Slay {target}." {
		t.Fatalf("expected passthrough pages, got %v", out.Pages)
	}
}

func TestExpandRunsEnabledPluginsInOrder(t *testing.T) {
	t.Parallel()
	host := &fakeHost{replace: map[string]string{"{viewer}": "steve"}}
	manifests := []domain.Manifest{
		manifestWithBinary(t, "first", true),
		manifestWithBinary(t, "disabled", false),
		manifestWithBinary(t, "second", true),
	}
	svc := service.NewPlaceholderService(fakeStore{manifests: manifests}, host)
	out, err := svc.Expand(context.Background(), dto.ExpandInput{Viewer: "steve", QuestID: "dragon", Pages: []string{"Good luck, {viewer}!"}})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out.Pages[0] != "Good luck, steve!" {
		t.Fatalf("unexpected page: %q", out.Pages[0])
	}
	if len(host.calls) != 2 || host.calls[0] != "first" || host.calls[1] != "second" {
		t.Fatalf("unexpected call order: %v", host.calls)
	}
}

func TestExpandRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, "tampered", true)
	manifest.SHA256 = strings.Repeat("0", 64)
	svc := service.NewPlaceholderService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{})
	_, err := svc.Expand(context.Background(), dto.ExpandInput{Viewer: "steve", QuestID: "dragon", Pages: []string{"page"}})
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestExpandMapsDeadlineToPluginTimeout(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, "slow", true)
	host := &fakeHost{err: context.DeadlineExceeded}
	svc := service.NewPlaceholderService(fakeStore{manifests: []domain.Manifest{manifest}}, host)
	_, err := svc.Expand(context.Background(), dto.ExpandInput{Viewer: "steve", QuestID: "dragon", Pages: []string{"page"}})
	if !errors.Is(err, domain.ErrPluginTimeout) {
		t.Fatalf("expected ErrPluginTimeout, got %v", err)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	manifests := []domain.Manifest{
		manifestWithBinary(t, "demo", true),
		manifestWithBinary(t, "demo", true),
	}
	svc := service.NewPlaceholderService(fakeStore{manifests: manifests}, &fakeHost{})
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, "demo", true)
	manifest.SHA256 = strings.Repeat("0", 64)
	svc := service.NewPlaceholderService(fakeStore{manifests: []domain.Manifest{manifest}}, nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid {
		t.Fatalf("expected checksum mismatch")
	}
	if !results[0].BinaryReachable {
		t.Fatalf("expected binary to be reachable")
	}
}

func manifestWithBinary(t *testing.T, name string, enabled bool) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         name,
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      enabled,
		Capabilities: []domain.Capability{domain.CapabilityExpand},
	}
}
