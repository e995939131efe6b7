package downloader

import (
	"fmt"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/interface/provider"
)

// ErrNoProviderAvailable is returned when no registered provider can serve
// the kind with the available credentials
type ErrNoProviderAvailable struct {
	Kind common.DataKind
}

func (e ErrNoProviderAvailable) Error() string {
	return fmt.Sprintf("no provider available for %s", e.Kind)
}

// SelectCandidates returns the ordered provider descriptors to try for the
// kind. An explicit override yields that provider alone; otherwise the
// configured primary comes first and the remaining capable providers follow
// in registry rank, excluding those with missing credentials.
func SelectCandidates(registry *provider.Registry, cfg Config, kind common.DataKind, override string) ([]provider.Descriptor, error) {
	if override != "" {
		descriptor, err := registry.Lookup(normalizeProviderName(override))
		if err != nil {
			return nil, err
		}
		return []provider.Descriptor{descriptor}, nil
	}

	primary, fromConfig := cfg.CloudProvider, cfg.CloudProvider != ""
	if primary == "" {
		primary, fromConfig = cfg.KindProviders[kind], cfg.KindProviders[kind] != ""
	}
	if primary == "" {
		primary = defaultProviderName(kind)
	}
	primary = normalizeProviderName(primary)

	var candidates []provider.Descriptor
	seen := map[string]bool{}
	push := func(d provider.Descriptor) {
		if !seen[d.Name] && d.Serves(kind) && d.HasCredentials() {
			candidates = append(candidates, d)
			seen[d.Name] = true
		}
	}

	if descriptor, err := registry.Lookup(primary); err == nil {
		push(descriptor)
	} else if fromConfig {
		return nil, err
	}
	for _, descriptor := range registry.ForKind(kind) {
		push(descriptor)
	}

	if len(candidates) == 0 {
		return nil, ErrNoProviderAvailable{kind}
	}
	return candidates, nil
}

// BuildProvider instantiates the provider behind a descriptor
func BuildProvider(descriptor provider.Descriptor, cfg Config) (provider.Provider, error) {
	switch descriptor.Name {
	case provider.NameAWS:
		p := provider.NewAWSProvider()
		p.MaskOnly = cfg.L2AMaskOnly
		return p, nil
	case provider.NameCreodias:
		return provider.NewCreodiasProvider(), nil
	case provider.NameEWoC:
		return provider.NewEWoCProvider(cfg.CloudProvider), nil
	case provider.NameESA:
		return provider.NewESAProvider(), nil
	case provider.NameFinder:
		return provider.NewFinderProvider(cfg.FinderUsername, cfg.FinderPassword), nil
	case provider.NameLocal:
		return provider.NewLocalProvider(cfg.LocalRoot), nil
	}
	return nil, provider.ErrUnknownProvider{Name: descriptor.Name}
}

// SelectProviders resolves the candidates and instantiates them
func SelectProviders(registry *provider.Registry, cfg Config, kind common.DataKind, override string) ([]provider.Provider, error) {
	descriptors, err := SelectCandidates(registry, cfg, kind, override)
	if err != nil {
		return nil, err
	}
	providers := make([]provider.Provider, 0, len(descriptors))
	for _, descriptor := range descriptors {
		p, err := BuildProvider(descriptor, cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
