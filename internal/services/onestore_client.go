package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"webshop-partner-server/internal/config"
	"webshop-partner-server/pkg/logging"
)

// ErrAccessToken indicates that the OAuth token endpoint did not issue a
// usable bearer token. Unlike consume failures this error propagates.
var ErrAccessToken = errors.New("failed to obtain access token")

// PurchaseConsumer finalizes a completed purchase with the payment
// provider so it cannot be refunded or re-delivered.
type PurchaseConsumer interface {
	ConsumePurchase(clientID, productID, purchaseToken, developerPayload, environment string) (map[string]interface{}, error)
}

// OneStoreClient calls the OneStore OAuth token and purchase consume APIs
type OneStoreClient struct {
	httpClient *http.Client
	creds      CredentialSource
	scheme     string
}

// NewOneStoreClient creates a OneStore API client with a fixed timeout
func NewOneStoreClient(creds CredentialSource) *OneStoreClient {
	timeout := 10 * time.Second
	if config.AppConfig != nil && config.AppConfig.ConsumeTimeout > 0 {
		timeout = time.Duration(config.AppConfig.ConsumeTimeout) * time.Second
	}
	return &OneStoreClient{
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		scheme:     "https",
	}
}

// AccessToken requests a bearer token from the OneStore OAuth endpoint
// using the client-credentials grant. A fresh token is fetched for every
// consume attempt; tokens are never cached or reused.
func (c *OneStoreClient) AccessToken(clientID, environment string) (string, error) {
	domain, err := c.creds.ResolveDomain(clientID, environment)
	if err != nil {
		return "", err
	}
	secret, err := c.creds.ResolveSecret(clientID)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("client_secret", secret)
	form.Set("grant_type", "client_credentials")

	tokenURL := fmt.Sprintf("%s://%s/v2/oauth/token", c.scheme, domain)
	req, err := http.NewRequest(http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status=%d body=%s", ErrAccessToken, resp.StatusCode, string(body))
	}

	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	logging.Infof("Access token issued: client_id=%s, environment=%s", clientID, environment)
	return res.AccessToken, nil
}

// ConsumePurchase consumes a completed in-app purchase. On HTTP 200 it
// returns the decoded response body; on a non-200 status, a timeout, or
// any transport error it logs the failure and returns an empty result
// without an error, so notification handling never fails on a bad
// consume. Token errors do propagate.
func (c *OneStoreClient) ConsumePurchase(clientID, productID, purchaseToken, developerPayload, environment string) (map[string]interface{}, error) {
	domain, err := c.creds.ResolveDomain(clientID, environment)
	if err != nil {
		return nil, err
	}

	accessToken, err := c.AccessToken(clientID, environment)
	if err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, ErrAccessToken
	}

	consumeURL := fmt.Sprintf("%s://%s/pc/v7/apps/%s/purchases/inapp/%s/%s/consume",
		c.scheme, domain, clientID, productID, purchaseToken)

	payload, err := json.Marshal(map[string]string{
		"developerPayload": developerPayload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal consume payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, consumeURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create consume request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-market-code", "MKT_ONE")

	logging.Infof("Consume request: url=%s, product_id=%s", consumeURL, productID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Errorf("Consume request failed: purchase_token=%s, error=%v", purchaseToken, err)
		return map[string]interface{}{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logging.Errorf("Consume rejected: status=%d, response=%s", resp.StatusCode, string(body))
		return map[string]interface{}{}, nil
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logging.Errorf("Consume response malformed: purchase_token=%s, error=%v", purchaseToken, err)
		return map[string]interface{}{}, nil
	}

	logging.Infof("Consume response: %v", result)
	return result, nil
}
