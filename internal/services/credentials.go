package services

import (
	"errors"
	"fmt"
	"webshop-partner-server/internal/config"
)

// Environment tags of the OneStore APIs
const (
	EnvSandbox    = "SANDBOX"
	EnvCommercial = "COMMERCIAL"
)

// ErrSecretNotFound indicates that no client secret is registered for a
// client id. It surfaces as an internal error on the triggering request.
var ErrSecretNotFound = errors.New("client secret not found")

// CredentialSource resolves the OneStore credentials and API domain for a
// client. Both the static config table and the database-backed env
// registry satisfy it.
type CredentialSource interface {
	ResolveSecret(clientID string) (string, error)
	ResolveDomain(clientID, environment string) (string, error)
}

// StaticCredentials resolves secrets from the configured client secret
// table and domains from the fixed per-environment hostnames.
type StaticCredentials struct {
	secrets          map[string]string
	sandboxDomain    string
	commercialDomain string
}

// NewStaticCredentials creates a static credential source from AppConfig
func NewStaticCredentials() *StaticCredentials {
	return &StaticCredentials{
		secrets:          config.AppConfig.ClientSecrets,
		sandboxDomain:    config.AppConfig.SandboxDomain,
		commercialDomain: config.AppConfig.CommercialDomain,
	}
}

// ResolveSecret returns the configured secret for the client id
func (s *StaticCredentials) ResolveSecret(clientID string) (string, error) {
	secret, ok := s.secrets[clientID]
	if !ok || secret == "" {
		return "", fmt.Errorf("%w: client_id=%s", ErrSecretNotFound, clientID)
	}
	return secret, nil
}

// ResolveDomain returns the fixed domain for the environment tag
func (s *StaticCredentials) ResolveDomain(clientID, environment string) (string, error) {
	if environment == EnvSandbox {
		return s.sandboxDomain, nil
	}
	return s.commercialDomain, nil
}

// RegistryCredentials resolves secrets and domains from the client
// environment registry, falling back to the fixed domains when a row has
// no domain recorded.
type RegistryCredentials struct {
	envs *EnvService
}

// NewRegistryCredentials creates a registry-backed credential source
func NewRegistryCredentials() *RegistryCredentials {
	return &RegistryCredentials{envs: NewEnvService()}
}

// ResolveSecret returns the secret stored for the client id
func (r *RegistryCredentials) ResolveSecret(clientID string) (string, error) {
	env, err := r.envs.GetByClientID(clientID)
	if err != nil {
		return "", fmt.Errorf("%w: client_id=%s", ErrSecretNotFound, clientID)
	}
	if env.ClientSecret == "" {
		return "", fmt.Errorf("%w: client_id=%s", ErrSecretNotFound, clientID)
	}
	return env.ClientSecret, nil
}

// ResolveDomain returns the per-client domain for the environment tag
func (r *RegistryCredentials) ResolveDomain(clientID, environment string) (string, error) {
	env, err := r.envs.GetByClientID(clientID)
	if err != nil {
		return "", fmt.Errorf("environment not registered: client_id=%s", clientID)
	}

	domain := env.PNSCommercialDomain
	if environment == EnvSandbox {
		domain = env.PNSSandboxDomain
	}
	if domain == "" {
		// Fall back to the fixed hostnames for rows created before the
		// domain columns existed
		if environment == EnvSandbox {
			return config.AppConfig.SandboxDomain, nil
		}
		return config.AppConfig.CommercialDomain, nil
	}
	return domain, nil
}

// NewCredentialSource picks the active credential source: the static
// table when secrets are configured, the env registry otherwise.
func NewCredentialSource() CredentialSource {
	if len(config.AppConfig.ClientSecrets) > 0 {
		return NewStaticCredentials()
	}
	return NewRegistryCredentials()
}
