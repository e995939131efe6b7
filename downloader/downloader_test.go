package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/interface/provider"
)

type fakeProvider struct {
	name  string
	err   error
	calls *[]string
}

func (f fakeProvider) Name() string { return f.name }

func (f fakeProvider) Download(ctx context.Context, product common.Product, localDir string) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, f.name)
	}
	if f.err != nil {
		return f.err
	}
	dir := filepath.Join(localDir, product.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "data.bin"), []byte(f.name), 0644)
}

func testRegistry(creds map[string]bool) *provider.Registry {
	has := func(name string) func() bool {
		return func() bool { return creds[name] }
	}
	return provider.NewRegistry(
		provider.Descriptor{
			Name:           provider.NameCreodias,
			Kinds:          []common.DataKind{common.Sentinel1, common.Sentinel2L1C},
			Availability:   provider.AvailabilityDedicated,
			HasCredentials: has(provider.NameCreodias),
		},
		provider.Descriptor{
			Name:           provider.NameAWS,
			Kinds:          []common.DataKind{common.Sentinel1, common.Sentinel2L1C, common.Landsat8},
			Availability:   provider.AvailabilityPublic,
			HasCredentials: has(provider.NameAWS),
		},
		provider.Descriptor{
			Name:           provider.NameFinder,
			Kinds:          []common.DataKind{common.Sentinel1, common.Sentinel2L1C},
			Availability:   provider.AvailabilityFallback,
			HasCredentials: has(provider.NameFinder),
		},
	)
}

func TestSelectCandidatesOverride(t *testing.T) {
	registry := testRegistry(map[string]bool{provider.NameAWS: true, provider.NameCreodias: true, provider.NameFinder: true})

	candidates, err := SelectCandidates(registry, Config{}, common.Sentinel1, "aws")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 || candidates[0].Name != provider.NameAWS {
		t.Errorf("expected the override alone, got %v", candidates)
	}

	if _, err := SelectCandidates(registry, Config{}, common.Sentinel1, "nonexistent"); err == nil {
		t.Errorf("expected ErrUnknownProvider")
	} else {
		var unknown provider.ErrUnknownProvider
		if !errors.As(err, &unknown) || unknown.Name != "nonexistent" {
			t.Errorf("expected ErrUnknownProvider{nonexistent}, got %v", err)
		}
	}
}

func TestSelectCandidatesCredentialExclusion(t *testing.T) {
	// only the finder has credentials
	registry := testRegistry(map[string]bool{provider.NameFinder: true})

	candidates, err := SelectCandidates(registry, Config{}, common.Sentinel1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 || candidates[0].Name != provider.NameFinder {
		t.Errorf("expected [%s], got %v", provider.NameFinder, candidates)
	}

	// nobody has credentials
	registry = testRegistry(map[string]bool{})
	if _, err := SelectCandidates(registry, Config{}, common.Sentinel1, ""); err == nil {
		t.Errorf("expected ErrNoProviderAvailable")
	} else {
		var unavailable ErrNoProviderAvailable
		if !errors.As(err, &unavailable) || unavailable.Kind != common.Sentinel1 {
			t.Errorf("expected ErrNoProviderAvailable{Sentinel1}, got %v", err)
		}
	}
}

func TestSelectCandidatesPrimaryFirst(t *testing.T) {
	registry := testRegistry(map[string]bool{provider.NameAWS: true, provider.NameCreodias: true, provider.NameFinder: true})

	cfg := Config{KindProviders: map[common.DataKind]string{common.Sentinel1: "eodag"}}
	candidates, err := SelectCandidates(registry, cfg, common.Sentinel1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 3 || candidates[0].Name != provider.NameFinder {
		t.Errorf("expected the configured primary first, got %v", candidates)
	}
	if candidates[1].Name != provider.NameCreodias || candidates[2].Name != provider.NameAWS {
		t.Errorf("expected the remaining providers in registry rank, got %v", candidates)
	}

	// the cloud context supersedes the per-kind default
	cfg.CloudProvider = "creodias"
	candidates, err = SelectCandidates(registry, cfg, common.Sentinel1, "")
	if err != nil {
		t.Fatal(err)
	}
	if candidates[0].Name != provider.NameCreodias {
		t.Errorf("expected the cloud context first, got %v", candidates)
	}
}

func TestRetrieveFallback(t *testing.T) {
	product := common.Product{ID: "S1B_IW_GRDH_1SDV_20200322T175338_20200322T175403_020847_027813_B9F3", Kind: common.Sentinel1}
	outDir := t.TempDir()

	var calls []string
	providers := []provider.Provider{
		fakeProvider{name: "first", err: fmt.Errorf("bucket empty"), calls: &calls},
		fakeProvider{name: "second", err: fmt.Errorf("access denied"), calls: &calls},
		fakeProvider{name: "third", calls: &calls},
	}

	materialized, err := Retrieve(context.Background(), providers, product, outDir)
	if err != nil {
		t.Fatal(err)
	}
	if materialized.Provider != "third" {
		t.Errorf("expected the success attributed to the third provider, got %s", materialized.Provider)
	}
	if len(calls) != 3 {
		t.Errorf("expected 3 sequential attempts, got %v", calls)
	}
	data, err := os.ReadFile(filepath.Join(outDir, product.ID, "data.bin"))
	if err != nil {
		t.Fatalf("product not materialized: %v", err)
	}
	if string(data) != "third" {
		t.Errorf("expected the third provider's data, got %s", data)
	}
	if materialized.Path != filepath.Join(outDir, product.ID) {
		t.Errorf("unexpected materialized path: %s", materialized.Path)
	}
}

func TestRetrieveExhausted(t *testing.T) {
	product := common.Product{ID: "N43E001", Kind: common.DemSRTM1s}
	outDir := t.TempDir()

	providers := []provider.Provider{
		fakeProvider{name: "first", err: fmt.Errorf("timeout")},
		fakeProvider{name: "second", err: fmt.Errorf("not found")},
		fakeProvider{name: "third", err: fmt.Errorf("denied")},
	}

	_, err := Retrieve(context.Background(), providers, product, outDir)
	if err == nil {
		t.Fatal("expected ErrRetrievalExhausted")
	}
	var exhausted ErrRetrievalExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ErrRetrievalExhausted, got %v", err)
	}
	if len(exhausted.Failures) != 3 {
		t.Fatalf("expected exactly 3 failures, got %d", len(exhausted.Failures))
	}
	for i, name := range []string{"first", "second", "third"} {
		if exhausted.Failures[i].Provider != name {
			t.Errorf("expected failure %d from %s, got %s", i, name, exhausted.Failures[i].Provider)
		}
	}

	// a failed retrieval leaves no partial data behind
	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected an empty output dir, got %v", entries)
	}
}

func TestRetrieveInvalidOutputTarget(t *testing.T) {
	product := common.Product{ID: "N43E001", Kind: common.DemSRTM1s}
	var calls []string
	providers := []provider.Provider{fakeProvider{name: "first", calls: &calls}}

	_, err := Retrieve(context.Background(), providers, product, filepath.Join(t.TempDir(), "missing"))
	var invalid ErrInvalidOutputTarget
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidOutputTarget, got %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("expected no provider attempt on an invalid target, got %v", calls)
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Retrieve(context.Background(), providers, product, file); !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidOutputTarget for a plain file, got %v", err)
	}
}

func TestRetrieveUnwritableOutputTarget(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not apply to root")
	}
	product := common.Product{ID: "N43E001", Kind: common.DemSRTM1s}
	var calls []string
	providers := []provider.Provider{fakeProvider{name: "first", calls: &calls}}

	outDir := t.TempDir()
	if err := os.Chmod(outDir, 0555); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(outDir, 0755)

	_, err := Retrieve(context.Background(), providers, product, outDir)
	var invalid ErrInvalidOutputTarget
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidOutputTarget, got %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("expected no provider attempt on an unwritable target, got %v", calls)
	}
}

type cancellingProvider struct {
	cancel context.CancelFunc
	calls  *[]string
}

func (c cancellingProvider) Name() string { return "cancelling" }

func (c cancellingProvider) Download(ctx context.Context, product common.Product, localDir string) error {
	*c.calls = append(*c.calls, c.Name())
	c.cancel()
	return ctx.Err()
}

func TestRetrieveCancelled(t *testing.T) {
	product := common.Product{ID: "N43E001", Kind: common.DemSRTM1s}
	outDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls []string
	providers := []provider.Provider{
		cancellingProvider{cancel: cancel, calls: &calls},
		fakeProvider{name: "second", calls: &calls},
	}

	_, err := Retrieve(ctx, providers, product, outDir)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the cancellation to surface, got %v", err)
	}
	var exhausted ErrRetrievalExhausted
	if errors.As(err, &exhausted) {
		t.Errorf("a cancelled retrieval must not report exhaustion: %v", err)
	}
	if len(calls) != 1 {
		t.Errorf("expected no attempt after the cancellation, got %v", calls)
	}
}

func TestRetrieveStopsAfterFirstSuccess(t *testing.T) {
	product := common.Product{ID: "N43E001", Kind: common.DemSRTM1s}
	outDir := t.TempDir()

	var calls []string
	providers := []provider.Provider{
		fakeProvider{name: "first", calls: &calls},
		fakeProvider{name: "second", calls: &calls},
	}
	materialized, err := Retrieve(context.Background(), providers, product, outDir)
	if err != nil {
		t.Fatal(err)
	}
	if materialized.Provider != "first" {
		t.Errorf("expected the first provider, got %s", materialized.Provider)
	}
	if len(calls) != 1 {
		t.Errorf("expected a single attempt, got %v", calls)
	}
}
