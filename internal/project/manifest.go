// Package project ищет и разбирает манифест ember.toml: настройки по
// умолчанию для CLI (параллелизм, лимит диагностик, цвет), которые флаги
// командной строки могут переопределить.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName — имя файла манифеста, который ищется вверх по дереву.
const ManifestName = "ember.toml"

// Manifest связывает разобранный конфиг с местом, где он найден.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config — содержимое ember.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Fold    FoldConfig    `toml:"fold"`
	Output  OutputConfig  `toml:"output"`
}

// PackageConfig описывает секцию [package].
type PackageConfig struct {
	Name string `toml:"name"`
}

// FoldConfig описывает секцию [fold].
type FoldConfig struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// OutputConfig описывает секцию [output].
type OutputConfig struct {
	Color          string `toml:"color"` // auto | always | never
	MaxDiagnostics int    `toml:"max-diagnostics"`
}

// DefaultConfig возвращает значения, действующие без манифеста.
func DefaultConfig() Config {
	return Config{
		Fold:   FoldConfig{Jobs: 0, Cache: true},
		Output: OutputConfig{Color: "auto", MaxDiagnostics: 100},
	}
}

// Find поднимается от startDir к корню файловой системы в поисках
// ember.toml. Второй результат — нашёлся ли манифест вообще.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load ищет манифест от startDir и разбирает его. Отсутствие манифеста не
// ошибка: возвращается (nil, false, nil), а вызывающий берёт DefaultConfig.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig разбирает один файл манифеста и валидирует значения.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Fold.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [fold].jobs must be non-negative", path)
	}
	if cfg.Output.MaxDiagnostics <= 0 {
		return Config{}, fmt.Errorf("%s: [output].max-diagnostics must be positive", path)
	}
	switch cfg.Output.Color {
	case "auto", "always", "never":
	default:
		return Config{}, fmt.Errorf("%s: [output].color must be auto, always or never", path)
	}
	return cfg, nil
}
