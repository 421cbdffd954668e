package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/agusx1211/recap/internal/config"
)

const (
	recapFileName  = ".recap"
	defaultProfile = "default"
)

type recapProfile struct {
	Include        []string            `yaml:"include"`
	Exclude        []string            `yaml:"exclude"`
	IncludeContent []string            `yaml:"include_content"`
	ExcludeContent []string            `yaml:"exclude_content"`
	Content        []string            `yaml:"content"`
	Strip          string              `yaml:"strip"`
	StripScope     []config.StripScope `yaml:"strip_scope"`
	Compact        bool                `yaml:"compact"`
	AllContent     bool                `yaml:"all_content"`
	Tree           bool                `yaml:"tree"`
}

type recapFile struct {
	recapProfile `yaml:",inline"`
	Profiles     map[string]recapProfile `yaml:"profiles"`
}

func readRecapFile(path string) (*recapFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rf recapFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &rf, nil
}

// resolve returns the top-level settings merged with the named profile. A
// missing profile falls back to "default"; found is false when neither
// exists while profiles are defined.
func (rf *recapFile) resolve(profile string) (merged recapProfile, found bool) {
	merged = rf.recapProfile
	if len(rf.Profiles) == 0 {
		return merged, true
	}
	prof, ok := rf.Profiles[profile]
	if !ok {
		prof, ok = rf.Profiles[defaultProfile]
	}
	if !ok {
		return merged, false
	}
	merged.Include = append(append([]string{}, merged.Include...), prof.Include...)
	merged.Exclude = append(append([]string{}, merged.Exclude...), prof.Exclude...)
	merged.IncludeContent = append(append([]string{}, merged.IncludeContent...), prof.IncludeContent...)
	merged.ExcludeContent = append(append([]string{}, merged.ExcludeContent...), prof.ExcludeContent...)
	merged.Content = append(append([]string{}, merged.Content...), prof.Content...)
	merged.StripScope = append(append([]config.StripScope{}, merged.StripScope...), prof.StripScope...)
	if prof.Strip != "" {
		merged.Strip = prof.Strip
	}
	merged.Compact = merged.Compact || prof.Compact
	merged.AllContent = merged.AllContent || prof.AllContent
	merged.Tree = merged.Tree || prof.Tree
	return merged, true
}

// findRecapFile returns the explicit path, or ./.recap, or ~/.recap. An
// empty result means no file applies.
func findRecapFile(explicit, cwd string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	candidates := []string{filepath.Join(cwd, recapFileName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, recapFileName))
	}
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return c, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config file: %w", err)
		}
	}
	return "", nil
}

// applyRecapFile merges the .recap settings into cfg. File patterns come
// first and command line patterns are appended; command line scalars win.
func applyRecapFile(cfg *config.Config, explicit, cwd, profile string, stripSet bool, logger zerolog.Logger) error {
	path, err := findRecapFile(explicit, cwd)
	if err != nil || path == "" {
		return err
	}
	rf, err := readRecapFile(path)
	if err != nil {
		return err
	}
	p, found := rf.resolve(profile)
	if !found {
		return fmt.Errorf("profile %q not found in %s and no %q profile defined", profile, path, defaultProfile)
	}
	if _, ok := rf.Profiles[profile]; !ok && len(rf.Profiles) > 0 && profile != defaultProfile {
		logger.Warn().Str("file", path).Str("profile", profile).Msg("profile not found, using default")
	}
	logger.Debug().Str("file", path).Str("profile", profile).Msg("loaded recap file")

	cfg.Include = append(p.Include, cfg.Include...)
	cfg.Exclude = append(p.Exclude, cfg.Exclude...)
	cfg.IncludeContent = append(p.IncludeContent, cfg.IncludeContent...)
	cfg.ExcludeContent = append(p.ExcludeContent, cfg.ExcludeContent...)
	cfg.ContentSpecs = append(p.Content, cfg.ContentSpecs...)
	cfg.StripScopes = append(p.StripScope, cfg.StripScopes...)
	if !stripSet && p.Strip != "" {
		cfg.Strip = p.Strip
	}
	cfg.Compact = cfg.Compact || p.Compact
	cfg.AllContent = cfg.AllContent || p.AllContent
	cfg.Tree = cfg.Tree || p.Tree
	return nil
}
