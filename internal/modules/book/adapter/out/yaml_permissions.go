package out

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	bookout "questbook/internal/modules/book/port/out"
)

// YAMLPermissions reads the permission grants from permissions.yml. A missing
// file grants everything: a single-operator deployment needs no policy. A
// grant of "*" is a full wildcard; a grant ending in ".*" matches the prefix.
type YAMLPermissions struct {
	grants   map[string][]string
	allowAll bool
}

type permissionsDocument struct {
	Users map[string][]string `yaml:"users"`
}

func NewYAMLPermissions(path string) (bookout.Permissions, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &YAMLPermissions{allowAll: true}, nil
		}
		return nil, fmt.Errorf("read permissions: %w", err)
	}
	doc := permissionsDocument{}
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}
	return &YAMLPermissions{grants: doc.Users}, nil
}

func (p *YAMLPermissions) Has(user, permission string) bool {
	if p.allowAll {
		return true
	}
	for _, grant := range p.grants[user] {
		if grant == "*" || strings.EqualFold(grant, permission) {
			return true
		}
		if prefix, ok := strings.CutSuffix(grant, ".*"); ok {
			if strings.HasPrefix(strings.ToLower(permission), strings.ToLower(prefix)+".") {
				return true
			}
		}
	}
	return false
}
