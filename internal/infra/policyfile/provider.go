package policyfile

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"sigval/internal/domain"
)

//go:embed default_policy.yaml
var defaultPolicy []byte

// DefaultName is the name of the embedded policy.
const DefaultName = "default"

// Provider holds the named validation policies. Policies loaded later replace
// earlier ones with the same name.
type Provider struct {
	mu       sync.RWMutex
	policies map[string]*domain.ValidationPolicy
	logger   *zap.Logger
}

// NewProvider returns a provider holding the embedded default policy.
func NewProvider(logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{policies: map[string]*domain.ValidationPolicy{}, logger: logger}
	if err := p.Add(defaultPolicy); err != nil {
		return nil, errors.Wrap(err, "embedded default policy")
	}
	return p, nil
}

// Load builds a provider from the embedded policy, then file, then every
// *.yaml in dir. Empty arguments are skipped.
func Load(file, dir string, logger *zap.Logger) (*Provider, error) {
	p, err := NewProvider(logger)
	if err != nil {
		return nil, err
	}
	if file != "" {
		if err := p.LoadFile(file); err != nil {
			return nil, err
		}
	}
	if dir != "" {
		if err := p.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Provider) Add(data []byte) error {
	policy, err := Parse(data, p.logger)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.policies[policy.Name] = policy
	p.logger.Debug("policy loaded",
		zap.String("policy", policy.Name),
		zap.Int("constraints", len(policy.Constraints)))
	return nil
}

func (p *Provider) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read policy %s", path)
	}
	if err := p.Add(data); err != nil {
		return errors.Wrapf(err, "policy %s", path)
	}
	return nil
}

func (p *Provider) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "read policy dir %s", dir)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		if err := p.LoadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Policy returns the named policy; an empty name selects the default.
func (p *Provider) Policy(name string) (*domain.ValidationPolicy, error) {
	if name == "" {
		name = DefaultName
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	policy, ok := p.policies[name]
	if !ok {
		return nil, errors.Wrapf(domain.ErrPolicyNotFound, "policy %q", name)
	}
	return policy, nil
}

func (p *Provider) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.policies))
	for name := range p.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
