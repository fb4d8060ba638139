package iosources

import (
	"fmt"
	"os"

	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/sources"
	"gopkg.in/yaml.v3"
)

type iosources struct {
	cfg *config.Config
}

func New(cfg *config.Config) sources.Sources {
	res := iosources{cfg: cfg}
	return &res
}

func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)
	sourcesConfig, err := loadSourcesConfig(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	return sourcesConfig, nil
}

func loadSourcesConfig(path string) (*sources.SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources config file: %w", err)
	}

	var res sources.SourcesConfig
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse sources config: %w", err)
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	return &res, nil
}
