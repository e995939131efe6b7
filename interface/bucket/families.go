package bucket

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/ewoc-project/datagateway/common"
)

// AWS open-data buckets
const (
	awsS1Bucket       = "sentinel-s1-l1c"
	awsS2L1CBucket    = "sentinel-s2-l1c"
	awsS2L2ABucket    = "sentinel-s2-l2a"
	awsLandsatBucket  = "usgs-landsat"
	awsCopDem1sBucket = "copernicus-dem-30m"
	awsCopDem3sBucket = "copernicus-dem-90m"

	awsSentinelRegion = "eu-central-1"
	awsLandsatRegion  = "us-west-2"
)

// Creodias DIAS bucket
const (
	creodiasBucket     = "DIAS"
	creodiasEndpoint   = "http://data.cloudferro.com"
	creodiasDummyCreds = "anystring"
)

// EWoC private buckets
const (
	ewocAuxDataBucket = "ewoc-aux-data"
	ewocARDBucket     = "ewoc-ard"
	ewocPRDBucket     = "ewoc-prd"
	ewocDevSuffix     = "-dev"

	ewocCreodiasEndpoint = "https://s3.waw2-1.cloudferro.com"
)

// AWSBucketName returns the AWS open-data bucket hosting the kind
func AWSBucketName(kind common.DataKind) (string, error) {
	switch kind {
	case common.Sentinel1:
		return awsS1Bucket, nil
	case common.Sentinel2L1C:
		return awsS2L1CBucket, nil
	case common.Sentinel2L2A:
		return awsS2L2ABucket, nil
	case common.Landsat8:
		return awsLandsatBucket, nil
	case common.DemCOP1s:
		return awsCopDem1sBucket, nil
	case common.DemCOP3s:
		return awsCopDem3sBucket, nil
	}
	return "", fmt.Errorf("no AWS open-data bucket for %s", kind)
}

// CopDemBucketName returns the AWS bucket of the Copernicus DEM resolution
func CopDemBucketName(kind common.DataKind) string {
	if kind == common.DemCOP3s {
		return awsCopDem3sBucket
	}
	return awsCopDem1sBucket
}

// NewAWS connects to the AWS open-data bucket hosting the kind. The Sentinel
// and Landsat buckets are requester-pays, the Copernicus DEM buckets are not.
func NewAWS(ctx context.Context, kind common.DataKind) (*Bucket, error) {
	name, err := AWSBucketName(kind)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithRegion(awsSentinelRegion)}
	switch kind {
	case common.Landsat8:
		opts = []Option{WithRegion(awsLandsatRegion), WithRequesterPays()}
	case common.Sentinel1, common.Sentinel2L1C, common.Sentinel2L2A:
		opts = append(opts, WithRequesterPays())
	}
	return New(ctx, name, opts...)
}

// NewCreodias connects to the DIAS bucket, reachable from Creodias virtual
// machines. The endpoint ignores credentials but the SDK requires some.
func NewCreodias(ctx context.Context) (*Bucket, error) {
	return New(ctx, creodiasBucket,
		WithEndpoint(creodiasEndpoint),
		WithStaticCredentials(creodiasDummyCreds, creodiasDummyCreds),
		WithRegion("RegionOne"),
	)
}

// EWoCCredentials returns the credentials of the EWoC private archive
func EWoCCredentials() (accessKeyId, secretAccessKey string) {
	return os.Getenv("EWOC_S3_ACCESS_KEY_ID"), os.Getenv("EWOC_S3_SECRET_ACCESS_KEY")
}

// EWoCDevMode returns true when EWOC_DEV_MODE selects the dev namespace
func EWoCDevMode() bool {
	devMode, err := strconv.ParseBool(os.Getenv("EWOC_DEV_MODE"))
	return err == nil && devMode
}

// newEWoC connects to an EWoC private bucket. The archive is hosted on the
// CloudFerro endpoint when the cloud context is creodias, on AWS otherwise.
func newEWoC(ctx context.Context, name, cloudProvider string) (*Bucket, error) {
	accessKeyId, secretAccessKey := EWoCCredentials()
	if accessKeyId == "" || secretAccessKey == "" {
		return nil, fmt.Errorf("EWoC bucket %s: missing EWOC_S3_ACCESS_KEY_ID/EWOC_S3_SECRET_ACCESS_KEY", name)
	}
	opts := []Option{WithStaticCredentials(accessKeyId, secretAccessKey)}
	switch cloudProvider {
	case "creodias", "":
		opts = append(opts, WithEndpoint(ewocCreodiasEndpoint), WithRegion("RegionOne"))
	case "aws":
		opts = append(opts, WithRegion(awsSentinelRegion))
	default:
		return nil, fmt.Errorf("cloud provider %s not supported for the EWoC archive", cloudProvider)
	}
	return New(ctx, name, opts...)
}

// NewEWoCAuxData connects to the EWoC auxiliary-data bucket
func NewEWoCAuxData(ctx context.Context, cloudProvider string) (*Bucket, error) {
	return newEWoC(ctx, ewocAuxDataBucket, cloudProvider)
}

// NewEWoCARD connects to the EWoC analysis-ready-data bucket
func NewEWoCARD(ctx context.Context, cloudProvider string, devMode bool) (*Bucket, error) {
	name := ewocARDBucket
	if devMode {
		name += ewocDevSuffix
	}
	return newEWoC(ctx, name, cloudProvider)
}

// NewEWoCPRD connects to the EWoC final-products bucket
func NewEWoCPRD(ctx context.Context, cloudProvider string, devMode bool) (*Bucket, error) {
	name := ewocPRDBucket
	if devMode {
		name += ewocDevSuffix
	}
	return newEWoC(ctx, name, cloudProvider)
}
