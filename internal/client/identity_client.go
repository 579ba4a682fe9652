package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
)

// IdentityClient talks to the identity provider, which owns users and
// sessions. The payment service only needs the payer's email at initiation.
type IdentityClient struct {
	Address    string
	httpClient *http.Client
}

func NewIdentityClient(address string) *IdentityClient {
	return &IdentityClient{
		Address:    address,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *IdentityClient) GetUserEmail(ctx context.Context, userID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/users/%s", c.Address, userID), nil)
	if err != nil {
		return "", err
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var user userResponse
		if err := json.Unmarshal(responseBodyBytes, &user); err != nil {
			return "", fmt.Errorf("%w: decoding user: %v", domain.ErrIdentityUnavailable, err)
		}
		return user.Email, nil
	}

	var errResponse errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResponse); err != nil {
		return "", fmt.Errorf("%w: http %d", domain.ErrIdentityUnavailable, response.StatusCode)
	}
	return "", fmt.Errorf("%w: %s", domain.ErrIdentityUnavailable, errResponse.Error)
}
