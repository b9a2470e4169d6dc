package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DataPath        string
	StorePath       string
	DBPath          string
	PluginsPath     string
	PermissionsPath string
	User            string
}

func New(dataPath, user string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	if user == "" {
		user = os.Getenv("USER")
	}
	if user == "" {
		user = "console"
	}
	return Config{
		DataPath:        dataPath,
		StorePath:       filepath.Join(dataPath, "quests.yml"),
		DBPath:          filepath.Join(dataPath, ".questbook", "index.db"),
		PluginsPath:     dataPath,
		PermissionsPath: filepath.Join(dataPath, "permissions.yml"),
		User:            user,
	}, nil
}
