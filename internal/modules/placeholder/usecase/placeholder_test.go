package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"questbook/internal/modules/placeholder/domain"
	"questbook/internal/modules/placeholder/dto"
	"questbook/internal/modules/placeholder/service"
	"questbook/internal/modules/placeholder/usecase"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
}

func (s fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct{}

func (fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "p1", Version: "1"}, nil
}
func (fakeHost) Expand(_ context.Context, _ domain.Manifest, input domain.ExpandRequest) (domain.ExpandResult, error) {
	pages := make([]string, len(input.Pages))
	for i, page := range input.Pages {
		pages[i] = strings.ReplaceAll(page, "{viewer}", input.Viewer)
	}
	return domain.ExpandResult{Pages: pages}, nil
}

func TestUsecaseListDoctorAndExpand(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t)
	uc := usecase.NewInteractor(service.NewPlaceholderService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, fakeHost{}))

	list, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "p1" {
		t.Fatalf("unexpected list: %+v", list)
	}

	docs, err := uc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("unexpected doctor result: %+v", docs)
	}

	out, err := uc.Expand(context.Background(), dto.ExpandInput{Viewer: "alex", QuestID: "dragon", Pages: []string{"Hi {viewer}"}})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if out.Pages[0] != "Hi alex" {
		t.Fatalf("unexpected expansion: %q", out.Pages[0])
	}
}

func manifestWithBinary(t *testing.T) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         "p1",
		Version:      "1",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExpand},
	}
}
