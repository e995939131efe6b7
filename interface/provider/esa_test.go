package provider

import (
	"context"
	"os"
	"testing"

	"github.com/ewoc-project/datagateway/common"
)

func testDownloadSRTM(t *testing.T) {
	p := NewESAProvider()
	product := common.Product{ID: "N43E001", Kind: common.DemSRTM1s}
	if err := p.Download(context.Background(), product, os.TempDir()); err != nil {
		t.Fatalf("Failed to Download tile: %v", err)
	}
}

func TestDownloadESA(t *testing.T) {
	//testDownloadSRTM(t)
}
