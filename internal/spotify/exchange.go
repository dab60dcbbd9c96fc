package spotify

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// Credentials are one player's own Spotify app credentials, supplied at
// registration. Authorization runs against the player's app, not a shared
// one.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// ExchangeCode swaps an authorization code for an access/refresh token
// pair.
func (c *Client) ExchangeCode(ctx context.Context, creds Credentials, code string) (*oauth2.Token, error) {
	token, err := c.oauthConfig(creds).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return token, nil
}

// Refresh obtains a fresh access token from a refresh token. The returned
// token may carry a rotated refresh token; callers persist whatever comes
// back.
func (c *Client) Refresh(ctx context.Context, creds Credentials, refreshToken string) (*oauth2.Token, error) {
	source := c.oauthConfig(creds).TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}
	return token, nil
}

func (c *Client) oauthConfig(creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  c.redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.authURL,
			TokenURL: c.tokenURL,
		},
	}
}
