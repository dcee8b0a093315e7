package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

var (
	ErrMissingCode       = errors.New("authorization code is required")
	ErrProviderConfig    = errors.New("google oauth is not configured")
	ErrTokenExchange     = errors.New("failed to exchange authorization code")
	ErrIncompleteProfile = errors.New("google profile is missing required fields")
)

// GoogleService exchanges an authorization code for tokens and fetches the
// user's profile from the provider.
type GoogleService struct {
	oauth  *oauth2.Config
	client *http.Client
}

func NewGoogleService(clientID, clientSecret, redirectURL string) *GoogleService {
	return &GoogleService{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// GoogleProfile is the subset of the userinfo response the identity store
// needs.
type GoogleProfile struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Exchange trades the authorization code for tokens and returns the profile.
func (s *GoogleService) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	if code == "" {
		return nil, ErrMissingCode
	}
	if s.oauth.ClientID == "" || s.oauth.ClientSecret == "" {
		return nil, ErrProviderConfig
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		log.Printf("Google code exchange failed: %v", err)
		return nil, ErrTokenExchange
	}

	req, err := http.NewRequestWithContext(ctx, "GET", googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create userinfo request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Google userinfo request failed: %v", err)
		return nil, ErrTokenExchange
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("Google userinfo status %d: %s", resp.StatusCode, string(body))
		return nil, ErrTokenExchange
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %v", err)
	}
	if profile.Subject == "" || profile.Email == "" {
		return nil, ErrIncompleteProfile
	}

	return &profile, nil
}
