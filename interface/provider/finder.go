package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/ewoc-project/datagateway/common"
	"github.com/ewoc-project/datagateway/service"
	"github.com/ewoc-project/datagateway/tiling"
)

const (
	finderTokenURL  = "https://auth.creodias.eu/auth/realms/DIAS/protocol/openid-connect/token"
	finderClientID  = "CLOUDFERRO_PUBLIC"
	finderSearchURL = "https://finder.creodias.eu/resto/api/collections/%s/search.json?%s"
)

// FinderProvider implements Provider through the CloudFerro finder API.
// It is the fallback when no bucket serves the product, and the only
// provider able to search products by tile and date range.
type FinderProvider struct {
	user  string
	pword string
	conf  *oauth2.Config
	token *oauth2.Token
}

// NewFinderProvider creates a new Provider from the finder API
func NewFinderProvider(user, pword string) *FinderProvider {
	return &FinderProvider{
		user:  user,
		pword: pword,
		conf: &oauth2.Config{
			ClientID: finderClientID,
			Endpoint: oauth2.Endpoint{TokenURL: finderTokenURL},
		},
	}
}

// Name implements Provider
func (p *FinderProvider) Name() string {
	return NameFinder
}

func collectionOf(kind common.DataKind) (string, error) {
	switch kind {
	case common.Sentinel1:
		return "Sentinel1", nil
	case common.Sentinel2L1C, common.Sentinel2L2A:
		return "Sentinel2", nil
	}
	return "", fmt.Errorf("kind %s not supported", kind)
}

func (p *FinderProvider) accessToken(ctx context.Context) (string, error) {
	if p.token == nil || !p.token.Valid() {
		token, err := p.conf.PasswordCredentialsToken(ctx, p.user, p.pword)
		if err != nil {
			return "", fmt.Errorf("PasswordCredentialsToken: %w", err)
		}
		p.token = token
	}
	return p.token.AccessToken, nil
}

type finderFeatures struct {
	Features []struct {
		Properties struct {
			Title    string `json:"title"`
			Services struct {
				Download struct {
					URL string `json:"url"`
				} `json:"download"`
			} `json:"services"`
		} `json:"properties"`
	} `json:"features"`
}

func (p *FinderProvider) search(searchURL string) (finderFeatures, error) {
	var features finderFeatures
	body, err := service.GetBodyRetry(searchURL, 3)
	if err != nil {
		return features, fmt.Errorf("search.GetBodyRetry: %w", err)
	}
	if err := json.Unmarshal(body, &features); err != nil {
		return features, fmt.Errorf("search.Unmarshal [%s]: %w", body, err)
	}
	return features, nil
}

// Download implements Provider
func (p *FinderProvider) Download(ctx context.Context, product common.Product, localDir string) error {
	collection, err := collectionOf(product.Kind)
	if err != nil {
		return fmt.Errorf("FinderProvider: %w", err)
	}

	query := url.Values{"productIdentifier": {"%" + product.ID + "%"}}
	features, err := p.search(fmt.Sprintf(finderSearchURL, collection, query.Encode()))
	if err != nil {
		return fmt.Errorf("FinderProvider.%w", err)
	}
	if len(features.Features) == 0 {
		return fmt.Errorf("FinderProvider.%w", ErrProductNotFound{product.ID})
	}
	downloadURL := features.Features[0].Properties.Services.Download.URL
	if downloadURL == "" {
		return fmt.Errorf("FinderProvider.%w", ErrProductNotFound{product.ID})
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return fmt.Errorf("FinderProvider.%w", err)
	}
	downloadURL += "?token=" + token
	if err := downloadZip(ctx, downloadURL, localDir, product.ID, p.Name(), &token); err != nil {
		return fmt.Errorf("FinderProvider.%w", err)
	}
	return nil
}

// Search returns the ids of the products of the kind acquired over the tile
// within the date range
func (p *FinderProvider) Search(ctx context.Context, kind common.DataKind, tileID string, start, end time.Time) ([]string, error) {
	collection, err := collectionOf(kind)
	if err != nil {
		return nil, fmt.Errorf("FinderProvider.Search: %w", err)
	}
	footprint, err := tiling.ResolveFootprint(tileID)
	if err != nil {
		return nil, fmt.Errorf("FinderProvider.Search: %w", err)
	}

	query := url.Values{
		"box": {fmt.Sprintf("%f,%f,%f,%f",
			footprint.MinX(), footprint.MinY(), footprint.MaxX(), footprint.MaxY())},
		"startDate":      {start.Format("2006-01-02")},
		"completionDate": {end.Format("2006-01-02")},
		"maxRecords":     {"500"},
	}
	if kind == common.Sentinel2L1C {
		query.Set("processingLevel", "LEVEL1C")
	} else if kind == common.Sentinel2L2A {
		query.Set("processingLevel", "LEVEL2A")
	}

	features, err := p.search(fmt.Sprintf(finderSearchURL, collection, query.Encode()))
	if err != nil {
		return nil, fmt.Errorf("FinderProvider.Search.%w", err)
	}
	var ids []string
	for _, feature := range features.Features {
		if feature.Properties.Title != "" {
			ids = append(ids, feature.Properties.Title)
		}
	}
	return ids, nil
}
