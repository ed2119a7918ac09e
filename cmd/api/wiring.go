package main

import (
	"context"
	"fmt"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sahintepesi/donation-api/config"
	"github.com/sahintepesi/donation-api/internal/adapters/filestore"
	"github.com/sahintepesi/donation-api/internal/adapters/iyzico"
	"github.com/sahintepesi/donation-api/internal/adapters/pdf"
	"github.com/sahintepesi/donation-api/internal/adapters/s3store"
	"github.com/sahintepesi/donation-api/internal/core/domain"
	"github.com/sahintepesi/donation-api/internal/core/ports"
)

// loadConfig reads and validates configuration plus the organization profile.
func loadConfig() (*config.Config, domain.Organization, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, domain.Organization{}, err
	}

	org, err := config.LoadOrganization(cfg.OrganizationFile)
	if err != nil {
		return nil, domain.Organization{}, err
	}

	return cfg, org, nil
}

// newReceiptStore builds the configured receipt store backend.
func newReceiptStore(ctx context.Context, cfg config.ReceiptsConfig) (ports.ReceiptStore, error) {
	switch cfg.Store {
	case config.StoreFile:
		return filestore.NewStore(cfg.Dir), nil
	case config.StoreS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return s3store.NewStore(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		return nil, fmt.Errorf("unknown receipt store %q", cfg.Store)
	}
}

// newGateway builds the immutable gateway client shared by all requests.
func newGateway(cfg config.GatewayConfig, org domain.Organization) *iyzico.Client {
	return iyzico.NewClient(cfg.BaseURL, cfg.APIKey, cfg.SecretKey, org.Locale, cfg.Timeout)
}

// newRenderer builds the receipt renderer and reports which font it will use.
func newRenderer(fontPath string, org domain.Organization) *pdf.Renderer {
	if data, err := pdf.LoadFont(fontPath); err != nil {
		log.Printf("Warning: %v (receipts will fail until the font is fixed)", err)
	} else {
		log.Printf("Receipt font: %s", pdf.FontName(data))
	}
	return pdf.NewRenderer(fontPath, org)
}
