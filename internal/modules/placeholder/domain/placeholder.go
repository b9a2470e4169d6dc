package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	// CapabilityExpand marks a plugin that rewrites placeholder tokens in
	// quest pages before they are shown to a viewer.
	CapabilityExpand Capability = "expand"
)

var (
	ErrChecksumMismatch = errors.New("plugin checksum mismatch")
	ErrPluginTimeout    = errors.New("plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityExpand:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// ExpandRequest carries one quest's pages through a placeholder plugin.
// Viewer is the user the pages are being rendered for.
type ExpandRequest struct {
	Viewer  string
	QuestID string
	Pages   []string
}

func (r ExpandRequest) Validate() error {
	if r.Viewer == "" {
		return fmt.Errorf("viewer is required")
	}
	if r.QuestID == "" {
		return fmt.Errorf("quest id is required")
	}
	return nil
}

type ExpandResult struct {
	Pages []string
}
