package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"questbook/internal/modules/placeholder/domain"
	"questbook/internal/modules/placeholder/dto"
	placeholderout "questbook/internal/modules/placeholder/port/out"
)

type PlaceholderService struct {
	store placeholderout.ManifestStore
	host  placeholderout.Host
}

func NewPlaceholderService(store placeholderout.ManifestStore, host placeholderout.Host) *PlaceholderService {
	return &PlaceholderService{store: store, host: host}
}

func (s *PlaceholderService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *PlaceholderService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Expand runs the pages through every enabled expander plugin in manifest
// order. With no expanders registered the pages pass through unchanged.
func (s *PlaceholderService) Expand(ctx context.Context, input dto.ExpandInput) (dto.ExpandOutput, error) {
	req := domain.ExpandRequest{Viewer: input.Viewer, QuestID: input.QuestID, Pages: input.Pages}
	if err := req.Validate(); err != nil {
		return dto.ExpandOutput{}, err
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.ExpandOutput{}, err
	}
	pages := input.Pages
	for _, manifest := range manifests {
		if !manifest.Enabled || !manifest.HasCapability(domain.CapabilityExpand) {
			continue
		}
		if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
			return dto.ExpandOutput{}, err
		}
		req.Pages = pages
		result, err := s.host.Expand(ctx, manifest, req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return dto.ExpandOutput{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, manifest.Name)
			}
			return dto.ExpandOutput{}, fmt.Errorf("expand via %s: %w", manifest.Name, err)
		}
		pages = result.Pages
	}
	return dto.ExpandOutput{Pages: pages}, nil
}

func (s *PlaceholderService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
