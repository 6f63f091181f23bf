package metadata_test

import (
	"context"
	"testing"

	"shelf/internal/metadata"
	"shelf/internal/testsupport"
)

func TestNewResolverWithoutKeysDisablesProviders(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	resolver, err := metadata.NewResolver(cfg, nil)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	if resolver.SearchConfigured() {
		t.Fatal("expected search to be unconfigured without an API key")
	}
	if resolver.ScanConfigured() {
		t.Fatal("expected scan to be unconfigured without an API key")
	}

	ctx := context.Background()
	results, err := resolver.SearchByTitle(ctx, "anything")
	if err != nil || results != nil {
		t.Fatalf("expected empty answer, got %v, %v", results, err)
	}
	record, err := resolver.FetchByID(ctx, "tt0000001")
	if err != nil || record != nil {
		t.Fatalf("expected empty answer, got %v, %v", record, err)
	}
	product, err := resolver.FetchByCode(ctx, "123456789012")
	if err != nil || product != nil {
		t.Fatalf("expected empty answer, got %v, %v", product, err)
	}
}

func TestNewResolverWithKeysEnablesProviders(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithOMDBKey("omdb-key"), testsupport.WithUPCKey("upc-key"))

	resolver, err := metadata.NewResolver(cfg, nil)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	if !resolver.SearchConfigured() {
		t.Fatal("expected search to be configured")
	}
	if !resolver.ScanConfigured() {
		t.Fatal("expected scan to be configured")
	}
}
