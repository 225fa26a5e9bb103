package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrs "github.com/lurknmore/lurk/pkg/errors"
)

const defaultTokenEndpointPath = "api/v1/access_token"

// tokenMargin is the safety window before expiry. A token inside the margin
// is treated as already expired so a request is never issued with a token
// that could expire mid-flight.
const tokenMargin = 5 * time.Minute

// Credentials holds the four secrets required for the password grant.
// Presence is checked lazily at token time, not at construction, so commands
// that never touch the network never require them.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// validate reports the first missing secret, if any.
func (c Credentials) validate() error {
	switch {
	case c.ClientID == "":
		return &pkgerrs.ConfigError{Field: "client_id", Message: "credential is missing"}
	case c.ClientSecret == "":
		return &pkgerrs.ConfigError{Field: "client_secret", Message: "credential is missing"}
	case c.Username == "":
		return &pkgerrs.ConfigError{Field: "username", Message: "credential is missing"}
	case c.Password == "":
		return &pkgerrs.ConfigError{Field: "password", Message: "credential is missing"}
	}
	return nil
}

// Authenticator exchanges credentials for a bearer token and caches the
// result for the life of the process. It is the sole owner of token state;
// every refresh repeats the original password grant (no refresh-token flow).
type Authenticator struct {
	client    *http.Client
	creds     Credentials
	userAgent string
	tokenURL  *url.URL

	token     string
	expiresAt time.Time

	// now is a clock hook so tests can simulate expiry without sleeping.
	now func() time.Time
}

// NewAuthenticator creates a new authenticator. The tokenPath parameter can
// be an empty string to use the default Reddit token endpoint.
func NewAuthenticator(httpClient *http.Client, creds Credentials, userAgent, authURL, tokenPath string) (*Authenticator, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(authURL)
	if err != nil {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("failed to parse auth URL: %w", err)}
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}

	if tokenPath == "" {
		tokenPath = defaultTokenEndpointPath
	}

	resolvedTokenURL, err := parsedURL.Parse(tokenPath)
	if err != nil {
		return nil, &pkgerrs.AuthError{Err: fmt.Errorf("failed to parse token endpoint path: %w", err)}
	}

	return &Authenticator{
		client:    httpClient,
		creds:     creds,
		userAgent: userAgent,
		tokenURL:  resolvedTokenURL,
		now:       time.Now,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// GetToken returns the cached token when it has at least tokenMargin of
// validity left, otherwise performs a fresh password-grant exchange.
func (a *Authenticator) GetToken(ctx context.Context) (string, error) {
	if a.token != "" && a.now().Before(a.expiresAt.Add(-tokenMargin)) {
		return a.token, nil
	}

	if err := a.creds.validate(); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", a.creds.Username)
	form.Set("password", a.creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", &pkgerrs.AuthError{Err: fmt.Errorf("failed to create token request: %w", err)}
	}

	req.SetBasicAuth(a.creds.ClientID, a.creds.ClientSecret)
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &pkgerrs.AuthError{Err: fmt.Errorf("failed to execute token request: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &pkgerrs.AuthError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &pkgerrs.AuthError{
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(bodyBytes, &tokenResp); err != nil {
		return "", &pkgerrs.AuthError{
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
			Err:        fmt.Errorf("failed to unmarshal token response: %w", err),
		}
	}

	if tokenResp.AccessToken == "" {
		return "", &pkgerrs.AuthError{
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
			Err:        fmt.Errorf("access token was empty in response"),
		}
	}

	a.token = tokenResp.AccessToken
	a.expiresAt = a.now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return a.token, nil
}
