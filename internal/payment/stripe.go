package payment

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ecodonate-backend/internal/logger"

	"github.com/go-resty/resty/v2"
)

const serviceName = "stripe"

type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// StripeClient is a minimal client for the Stripe payment intents API
type StripeClient struct {
	httpClient *resty.Client
}

func NewStripeClient(baseURL, secretKey string, timeout time.Duration) *StripeClient {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetBasicAuth(secretKey, "").
		SetHeader("Accept", "application/json")

	return &StripeClient{httpClient: client}
}

func (c *StripeClient) CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error) {
	logger.ExternalServiceCall(ctx, serviceName, "CreatePaymentIntent", "amount", amountMinor, "currency", currency)

	form := map[string]string{
		"amount":   strconv.FormatInt(amountMinor, 10),
		"currency": currency,
	}
	for k, v := range metadata {
		form["metadata["+k+"]"] = v
	}

	var result stripeIntentResponse
	var apiErr stripeErrorResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&result).
		SetError(&apiErr).
		Post("/v1/payment_intents")
	if err != nil {
		logger.ExternalServiceResult(ctx, serviceName, "CreatePaymentIntent", err)
		return nil, fmt.Errorf("failed to call payment processor: %w", err)
	}

	if resp.IsError() {
		perr := &ProcessorError{
			StatusCode: resp.StatusCode(),
			Type:       apiErr.Error.Type,
			Code:       apiErr.Error.Code,
			Message:    apiErr.Error.Message,
		}
		if perr.Message == "" {
			perr.Message = http.StatusText(resp.StatusCode())
		}
		logger.ExternalServiceResult(ctx, serviceName, "CreatePaymentIntent", perr)
		return nil, perr
	}

	if result.ID == "" || result.ClientSecret == "" {
		err := fmt.Errorf("payment processor returned an incomplete intent")
		logger.ExternalServiceResult(ctx, serviceName, "CreatePaymentIntent", err)
		return nil, err
	}

	logger.ExternalServiceResult(ctx, serviceName, "CreatePaymentIntent", nil, "intentID", result.ID)
	return &Intent{ID: result.ID, ClientSecret: result.ClientSecret}, nil
}
