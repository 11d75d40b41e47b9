package ruleset

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// CentralPathEnv overrides where the organization-wide standards document
// is read from.
const CentralPathEnv = "REVLEARN_CENTRAL_CONFIG"

// repoCandidates are the filesystem locations searched for a repo-local
// document, in priority order. The first one found wins; there is no
// multi-file merging within the repo layer.
var repoCandidates = []string{
	filepath.Join(".revlearn", "rules.yaml"),
	".revlearn.yaml",
	filepath.Join(".github", "revlearn-rules.yaml"),
}

//go:embed defaults.yaml
var embeddedDefaults []byte

// LoadOptions carries the resolved inputs of a cascade resolution. The
// central path is resolved once at the boundary (env override or default
// search) and threaded through as plain data.
type LoadOptions struct {
	Logger      *slog.Logger
	CentralPath string
	RepoRoot    string
}

// CentralPathFromEnv resolves the central-standards location: the env
// override wins, otherwise the default search path is probed and the first
// existing file is used. Returns "" when no central document exists.
func CentralPathFromEnv() string {
	if p := os.Getenv(CentralPathEnv); p != "" {
		return p
	}
	for _, p := range defaultCentralPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func defaultCentralPaths() []string {
	var paths []string
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		paths = append(paths, filepath.Join(configHome, "revlearn", "central-rules.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "revlearn", "central-rules.yaml"))
	}
	paths = append(paths, filepath.Join(string(filepath.Separator), "etc", "revlearn", "rules.yaml"))
	return paths
}

// EmbeddedDefaults parses the built-in baseline layer. The document ships
// inside the binary, so a parse failure is a build defect, not a runtime
// condition.
func EmbeddedDefaults() (*RuleConfig, error) {
	cfg, err := Parse(embeddedDefaults)
	if err != nil {
		return nil, fmt.Errorf("embedded defaults are invalid: %w", err)
	}
	return cfg, nil
}

// Parse decodes one layer document and normalizes it. Unknown fields are
// ignored.
func Parse(data []byte) (*RuleConfig, error) {
	var cfg RuleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse rule config: %w", err)
	}
	normalize(&cfg)
	return &cfg, nil
}

// normalize assigns a fresh random id to every check that arrived without
// one. Random ids are never reused, so an anonymous check can never be
// override-matched by a same-named check in another layer. That asymmetry
// is intentional; making the fallback deterministic would change merge
// semantics.
func normalize(cfg *RuleConfig) {
	for i := range cfg.Checks {
		if cfg.Checks[i].ID == "" {
			cfg.Checks[i].ID = uuid.NewString()
		}
	}
	for i := range cfg.PRChecks {
		if cfg.PRChecks[i].ID == "" {
			cfg.PRChecks[i].ID = uuid.NewString()
		}
	}
}

// Resolve builds the effective configuration by cascading embedded
// defaults, the central standards document, and the repo-local document.
// An unreadable or unparseable layer is logged and treated as absent; the
// cascade proceeds with whatever layers remain.
//
// When the repo layer's inherit flag is false the repo document is
// returned as-is at the final step. Central discovery still happens first;
// only the merge is skipped.
func Resolve(opts LoadOptions) (*RuleConfig, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	effective, err := EmbeddedDefaults()
	if err != nil {
		return nil, err
	}

	if central := loadLayer(opts.CentralPath, "central", logger); central != nil {
		effective = Merge(effective, central)
	}

	if repo := discoverRepoLayer(opts.RepoRoot, logger); repo != nil {
		if repo.InheritsBase() {
			effective = Merge(effective, repo)
		} else {
			effective = repo
		}
	}
	return effective, nil
}

// loadLayer reads and parses one document, degrading to nil on any
// failure.
func loadLayer(path, layer string, logger *slog.Logger) *RuleConfig {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("rule config layer unreadable, skipping",
				"layer", layer, "path", path, "error", err)
		}
		return nil
	}
	cfg, err := Parse(data)
	if err != nil {
		logger.Warn("rule config layer invalid, skipping",
			"layer", layer, "path", path, "error", err)
		return nil
	}
	return cfg
}

// DiscoverRepoPath probes the fixed candidate list under root and returns
// the first document path found, or "" when the repo carries none.
func DiscoverRepoPath(root string) string {
	if root == "" {
		return ""
	}
	for _, candidate := range repoCandidates {
		path := filepath.Join(root, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// discoverRepoLayer loads the repo-local document, if any.
func discoverRepoLayer(root string, logger *slog.Logger) *RuleConfig {
	path := DiscoverRepoPath(root)
	if path == "" {
		return nil
	}
	return loadLayer(path, "repo", logger)
}
