package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	xerrors "github.com/daytrack/daytrack/client/internal/errors"
	"github.com/daytrack/daytrack/client/internal/types"
)

// Me resolves the identity behind the current bearer token. Any non-2xx
// response means the token is invalid.
func Me(ctx context.Context, httpClient *http.Client, baseURL string) (*types.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/auth/me", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	// Authorization header is added by the transport layer.
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, xerrors.NewNetworkError("identity check", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, failure(resp, "identity check")
	}

	var user types.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token and the resolved user.
func Login(ctx context.Context, httpClient *http.Client, baseURL string, creds types.Credentials) (*types.AuthResponse, error) {
	return postCredentials(ctx, httpClient, baseURL, "/api/auth/login", "login", creds)
}

// Register creates an account and returns its first token.
func Register(ctx context.Context, httpClient *http.Client, baseURL string, creds types.Credentials) (*types.AuthResponse, error) {
	return postCredentials(ctx, httpClient, baseURL, "/api/auth/register", "register", creds)
}

func postCredentials(ctx context.Context, httpClient *http.Client, baseURL, path, operation string, creds types.Credentials) (*types.AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s%s", baseURL, path)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, xerrors.NewNetworkError(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, failure(resp, operation)
	}

	var ar types.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, err
	}
	return &ar, nil
}
