package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, secretKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type initializeRequest struct {
	Email     string   `json:"email"`
	Amount    int64    `json:"amount"`
	Currency  string   `json:"currency"`
	Reference string   `json:"reference"`
	Channels  []string `json:"channels,omitempty"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID              json.Number `json:"id"`
		Status          string      `json:"status"`
		Reference       string      `json:"reference"`
		GatewayResponse string      `json:"gateway_response"`
	} `json:"data"`
}

// MinorUnits converts a decimal major-unit amount to integer minor units
// for the wire, avoiding floating-point drift on provider side.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (c *Client) Initialize(ctx context.Context, input domain.InitializeInput) (*domain.InitializeResult, error) {
	body, err := json.Marshal(initializeRequest{
		Email:     input.Email,
		Amount:    MinorUnits(input.Amount),
		Currency:  string(input.Currency),
		Reference: input.Reference,
		Channels:  []string{string(input.Method)},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError("initialize", err)
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading initialize response: %v", domain.ErrGatewayUnavailable, err)
	}

	if response.StatusCode >= 500 {
		c.logger.Error("gateway initialize failed",
			zap.String("reference", input.Reference),
			zap.Int("http_status", response.StatusCode),
		)
		return nil, fmt.Errorf("%w: http %d", domain.ErrGatewayUnavailable, response.StatusCode)
	}
	if response.StatusCode >= 400 {
		var res initializeResponse
		_ = json.Unmarshal(responseBodyBytes, &res)
		c.logger.Warn("gateway declined initialize",
			zap.String("reference", input.Reference),
			zap.Int("http_status", response.StatusCode),
			zap.String("message", res.Message),
		)
		return nil, fmt.Errorf("%w: %s", domain.ErrGatewayRejected, res.Message)
	}

	var res initializeResponse
	if err := json.Unmarshal(responseBodyBytes, &res); err != nil {
		return nil, fmt.Errorf("%w: decoding initialize response: %v", domain.ErrGatewayUnavailable, err)
	}
	if !res.Status {
		return nil, fmt.Errorf("%w: %s", domain.ErrGatewayRejected, res.Message)
	}

	return &domain.InitializeResult{
		Reference:  res.Data.Reference,
		PaymentURL: res.Data.AuthorizationURL,
		AccessCode: res.Data.AccessCode,
	}, nil
}

func (c *Client) Verify(ctx context.Context, reference string) (*domain.Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError("verify", err)
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading verify response: %v", domain.ErrGatewayUnavailable, err)
	}

	if response.StatusCode >= 500 {
		c.logger.Error("gateway verify failed",
			zap.String("reference", reference),
			zap.Int("http_status", response.StatusCode),
		)
		return nil, fmt.Errorf("%w: http %d", domain.ErrGatewayUnavailable, response.StatusCode)
	}
	if response.StatusCode >= 400 {
		var res verifyResponse
		_ = json.Unmarshal(responseBodyBytes, &res)
		return nil, fmt.Errorf("%w: %s", domain.ErrGatewayRejected, res.Message)
	}

	var res verifyResponse
	if err := json.Unmarshal(responseBodyBytes, &res); err != nil {
		return nil, fmt.Errorf("%w: decoding verify response: %v", domain.ErrGatewayUnavailable, err)
	}

	var raw map[string]any
	_ = json.Unmarshal(responseBodyBytes, &raw)

	outcome := &domain.Outcome{
		TransactionID: res.Data.ID.String(),
		Reason:        res.Data.GatewayResponse,
		Source:        "verify",
		Raw:           raw,
	}

	switch res.Data.Status {
	case "success":
		outcome.Kind = domain.OutcomeSuccess
	case "failed", "abandoned":
		outcome.Kind = domain.OutcomeFailure
	case "reversed":
		outcome.Kind = domain.OutcomeRefunded
	default:
		outcome.Kind = domain.OutcomePending
	}

	return outcome, nil
}

func (c *Client) classifyTransportError(operation string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		c.logger.Error("gateway call timed out", zap.String("operation", operation), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrGatewayTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrGatewayTimeout, err)
	}
	c.logger.Error("gateway unreachable", zap.String("operation", operation), zap.Error(err))
	return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
}
