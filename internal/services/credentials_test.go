package services

import (
	"errors"
	"testing"
	"webshop-partner-server/internal/models"
)

func TestStaticCredentials_ResolveSecret(t *testing.T) {
	creds := &StaticCredentials{
		secrets: map[string]string{"WS00000026": "secret-26"},
	}

	secret, err := creds.ResolveSecret("WS00000026")
	if err != nil {
		t.Fatalf("ResolveSecret error: %v", err)
	}
	if secret != "secret-26" {
		t.Fatalf("unexpected secret: %s", secret)
	}

	if _, err := creds.ResolveSecret("WS-UNKNOWN"); !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("expected ErrSecretNotFound, got %v", err)
	}
}

func TestStaticCredentials_ResolveDomain(t *testing.T) {
	creds := &StaticCredentials{
		sandboxDomain:    "qa-sbpp.onestore.co.kr",
		commercialDomain: "qa-pp.onestore.co.kr",
	}

	domain, err := creds.ResolveDomain("WS00000026", EnvSandbox)
	if err != nil || domain != "qa-sbpp.onestore.co.kr" {
		t.Fatalf("unexpected sandbox domain: %s, err=%v", domain, err)
	}

	domain, err = creds.ResolveDomain("WS00000026", EnvCommercial)
	if err != nil || domain != "qa-pp.onestore.co.kr" {
		t.Fatalf("unexpected commercial domain: %s, err=%v", domain, err)
	}
}

func TestRegistryCredentials_ResolvesFromRegistry(t *testing.T) {
	initTestConfig(t)
	db := newTestDB(t)
	db.Create(&models.ClientEnvironment{
		ClientID:            "WS00000026",
		ClientSecret:        "registry-secret",
		PNSSandboxDomain:    "sbx.partner.example.com",
		PNSCommercialDomain: "prod.partner.example.com",
	})

	creds := &RegistryCredentials{envs: &EnvService{db: db}}

	secret, err := creds.ResolveSecret("WS00000026")
	if err != nil || secret != "registry-secret" {
		t.Fatalf("unexpected secret: %s, err=%v", secret, err)
	}

	domain, err := creds.ResolveDomain("WS00000026", EnvSandbox)
	if err != nil || domain != "sbx.partner.example.com" {
		t.Fatalf("unexpected sandbox domain: %s, err=%v", domain, err)
	}

	domain, err = creds.ResolveDomain("WS00000026", EnvCommercial)
	if err != nil || domain != "prod.partner.example.com" {
		t.Fatalf("unexpected commercial domain: %s, err=%v", domain, err)
	}
}

func TestRegistryCredentials_MissingClient(t *testing.T) {
	initTestConfig(t)
	db := newTestDB(t)
	creds := &RegistryCredentials{envs: &EnvService{db: db}}

	if _, err := creds.ResolveSecret("WS-UNKNOWN"); !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("expected ErrSecretNotFound, got %v", err)
	}
	if _, err := creds.ResolveDomain("WS-UNKNOWN", EnvSandbox); err == nil {
		t.Fatalf("expected error for unregistered client")
	}
}

func TestRegistryCredentials_EmptySecret(t *testing.T) {
	initTestConfig(t)
	db := newTestDB(t)
	db.Create(&models.ClientEnvironment{ClientID: "WS00000026"})

	creds := &RegistryCredentials{envs: &EnvService{db: db}}
	if _, err := creds.ResolveSecret("WS00000026"); !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("expected ErrSecretNotFound for empty secret, got %v", err)
	}
}

func TestRegistryCredentials_DomainFallback(t *testing.T) {
	initTestConfig(t)
	db := newTestDB(t)
	db.Create(&models.ClientEnvironment{ClientID: "WS00000026", ClientSecret: "s"})

	creds := &RegistryCredentials{envs: &EnvService{db: db}}
	domain, err := creds.ResolveDomain("WS00000026", EnvSandbox)
	if err != nil || domain != "sandbox.example.com" {
		t.Fatalf("expected configured fallback domain, got %s, err=%v", domain, err)
	}
}
