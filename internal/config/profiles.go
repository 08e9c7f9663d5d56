package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes one named API environment in the profiles file.
type Profile struct {
	Name           string `yaml:"name"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int64  `yaml:"timeout_seconds"`
}

type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadProfile reads the profiles file and returns the entry with the given name.
func LoadProfile(path, name string) (Profile, error) {
	profiles, err := LoadProfiles(path)
	if err != nil {
		return Profile{}, err
	}

	name = strings.TrimSpace(strings.ToLower(name))
	for _, p := range profiles {
		if strings.ToLower(p.Name) == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("profile %q not found in %s", name, path)
}

// LoadProfiles loads all environment profiles from a YAML file.
func LoadProfiles(path string) ([]Profile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("profiles file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse profiles file: %w", err)
	}

	for i, p := range file.Profiles {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("profile at index %d has no name", i)
		}
		if strings.TrimSpace(p.BaseURL) == "" {
			return nil, fmt.Errorf("profile %q has no base_url", p.Name)
		}
	}
	return file.Profiles, nil
}
