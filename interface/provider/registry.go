package provider

import (
	"fmt"
	"os"

	"github.com/ewoc-project/datagateway/common"
)

// Provider names as referenced by configuration
const (
	NameAWS      = "aws"
	NameCreodias = "creodias"
	NameEWoC     = "ewoc"
	NameESA      = "esa"
	NameFinder   = "eodata-finder"
	NameLocal    = "local"
)

// Availability class of a provider
type Availability int

const (
	// AvailabilityDedicated providers serve from a bucket of the local cloud context
	AvailabilityDedicated Availability = iota
	// AvailabilityPublic providers serve from public or open-data storage
	AvailabilityPublic
	// AvailabilityFallback providers serve through a remote API, slower and rate-limited
	AvailabilityFallback
)

// ErrUnknownProvider is returned when the configuration references a name
// that is not registered
type ErrUnknownProvider struct {
	Name string
}

func (e ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown provider: %s", e.Name)
}

// Descriptor describes the capabilities of a registered provider
type Descriptor struct {
	Name         string
	Kinds        []common.DataKind
	Availability Availability
	// HasCredentials reports whether the credentials the provider needs are
	// available. Providers without credential requirements always return true.
	HasCredentials func() bool
}

// Serves returns true if the provider serves the data kind
func (d Descriptor) Serves(kind common.DataKind) bool {
	for _, k := range d.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Registry is the static capability table of the known providers.
// It is read-only after construction.
type Registry struct {
	descriptors map[string]Descriptor
	order       []string
}

// NewRegistry builds a registry from the descriptors, preserving their order
func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{descriptors: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if _, ok := r.descriptors[d.Name]; ok {
			continue
		}
		r.descriptors[d.Name] = d
		r.order = append(r.order, d.Name)
	}
	return r
}

// Lookup returns the descriptor of the named provider
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.descriptors[name]
	if !ok {
		return Descriptor{}, ErrUnknownProvider{name}
	}
	return d, nil
}

// ForKind returns the descriptors serving the kind, in registration order
// (dedicated buckets first, then open data, then remote APIs)
func (r *Registry) ForKind(kind common.DataKind) []Descriptor {
	var descriptors []Descriptor
	for _, name := range r.order {
		if d := r.descriptors[name]; d.Serves(kind) {
			descriptors = append(descriptors, d)
		}
	}
	return descriptors
}

func envCredentials(keys ...string) func() bool {
	return func() bool {
		for _, key := range keys {
			if os.Getenv(key) == "" {
				return false
			}
		}
		return true
	}
}

func always() bool { return true }

// DefaultRegistry returns the capability table of the gateway
func DefaultRegistry() *Registry {
	return NewRegistry(
		Descriptor{
			Name: NameLocal,
			Kinds: []common.DataKind{
				common.Sentinel1, common.Sentinel2L1C, common.Sentinel2L2A, common.Landsat8,
			},
			Availability:   AvailabilityDedicated,
			HasCredentials: envCredentials("EWOC_LOCAL_ROOT"),
		},
		Descriptor{
			Name: NameCreodias,
			Kinds: []common.DataKind{
				common.Sentinel1, common.Sentinel2L1C, common.Sentinel2L2A, common.DemSRTM1s,
			},
			Availability:   AvailabilityDedicated,
			HasCredentials: always, // the DIAS endpoint accepts any credentials
		},
		Descriptor{
			Name: NameEWoC,
			Kinds: []common.DataKind{
				common.DemSRTM3s,
			},
			Availability:   AvailabilityDedicated,
			HasCredentials: envCredentials("EWOC_S3_ACCESS_KEY_ID", "EWOC_S3_SECRET_ACCESS_KEY"),
		},
		Descriptor{
			Name: NameAWS,
			Kinds: []common.DataKind{
				common.Sentinel1, common.Sentinel2L1C, common.Sentinel2L2A, common.Landsat8,
				common.DemCOP1s, common.DemCOP3s,
			},
			Availability: AvailabilityPublic,
			// the Sentinel and Landsat buckets are requester-pays
			HasCredentials: envCredentials("AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"),
		},
		Descriptor{
			Name: NameESA,
			Kinds: []common.DataKind{
				common.DemSRTM1s,
			},
			Availability:   AvailabilityPublic,
			HasCredentials: always,
		},
		Descriptor{
			Name: NameFinder,
			Kinds: []common.DataKind{
				common.Sentinel1, common.Sentinel2L1C, common.Sentinel2L2A,
			},
			Availability:   AvailabilityFallback,
			HasCredentials: envCredentials("EWOC_FINDER_USERNAME", "EWOC_FINDER_PASSWORD"),
		},
	)
}
