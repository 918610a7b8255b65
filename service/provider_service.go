package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ryuga001/MiniOrangeAssessment1/config"
	"github.com/ryuga001/MiniOrangeAssessment1/logger"
)

var (
	// ErrProviderUnreachable means the introspection call failed at the
	// transport level or timed out.
	ErrProviderUnreachable = errors.New("identity provider unreachable")
	// ErrInvalidProviderToken means the provider rejected the token or
	// returned a payload missing the required identity fields.
	ErrInvalidProviderToken = errors.New("invalid provider token")
)

// ExternalIdentity is the verified identity triple returned by a
// provider. Nothing client-supplied ever reaches it.
type ExternalIdentity struct {
	Email       string
	DisplayName string
	SubjectID   string
}

// IIdentityVerifier exchanges a third-party token for a verified
// identity.
type IIdentityVerifier interface {
	Verify(ctx context.Context, providerToken string) (*ExternalIdentity, error)
}

// GoogleVerifier validates Google ID tokens against the tokeninfo
// endpoint.
type GoogleVerifier struct {
	tokenInfoURL string
	client       *http.Client
}

func NewGoogleVerifier(cfg *config.Config) *GoogleVerifier {
	return &GoogleVerifier{
		tokenInfoURL: cfg.Providers.Google.TokenInfoURL,
		client:       &http.Client{Timeout: time.Duration(cfg.Providers.TimeoutSeconds) * time.Second},
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, providerToken string) (*ExternalIdentity, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", v.tokenInfoURL, url.QueryEscape(providerToken))

	body, err := fetchProviderJSON(ctx, v.client, endpoint, "google")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Sub   string `json:"sub"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Log.WithError(err).Error("Failed to decode Google tokeninfo response")
		return nil, ErrInvalidProviderToken
	}
	if payload.Email == "" || payload.Sub == "" {
		return nil, ErrInvalidProviderToken
	}

	return &ExternalIdentity{
		Email:       payload.Email,
		DisplayName: payload.Name,
		SubjectID:   payload.Sub,
	}, nil
}

// FacebookVerifier validates Facebook access tokens against the Graph
// API.
type FacebookVerifier struct {
	graphURL string
	client   *http.Client
}

func NewFacebookVerifier(cfg *config.Config) *FacebookVerifier {
	return &FacebookVerifier{
		graphURL: cfg.Providers.Facebook.GraphURL,
		client:   &http.Client{Timeout: time.Duration(cfg.Providers.TimeoutSeconds) * time.Second},
	}
}

func (v *FacebookVerifier) Verify(ctx context.Context, providerToken string) (*ExternalIdentity, error) {
	endpoint := fmt.Sprintf("%s?fields=id,name,email&access_token=%s", v.graphURL, url.QueryEscape(providerToken))

	body, err := fetchProviderJSON(ctx, v.client, endpoint, "facebook")
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Log.WithError(err).Error("Failed to decode Facebook graph response")
		return nil, ErrInvalidProviderToken
	}
	if payload.Email == "" || payload.ID == "" {
		return nil, ErrInvalidProviderToken
	}

	return &ExternalIdentity{
		Email:       payload.Email,
		DisplayName: payload.Name,
		SubjectID:   payload.ID,
	}, nil
}

func fetchProviderJSON(ctx context.Context, client *http.Client, endpoint, provider string) ([]byte, error) {
	log := logger.Log.WithField("provider", provider)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.WithError(err).Error("Failed to build introspection request")
		return nil, ErrProviderUnreachable
	}

	resp, err := client.Do(req)
	if err != nil {
		log.WithError(err).Error("Introspection call failed")
		return nil, ErrProviderUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("Provider rejected token")
		return nil, ErrInvalidProviderToken
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Error("Failed to read introspection response")
		return nil, ErrProviderUnreachable
	}
	return buf, nil
}
