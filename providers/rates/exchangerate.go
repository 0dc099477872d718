package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/shopspring/decimal"
)

var (
	ErrRateUnavailable = errors.New("exchange rate source unavailable")
	ErrPairNotFound    = errors.New("exchange rate pair not found")
)

type ExchangeRateConfig struct {
	APIKey  string `mapstructure:"EXCHANGE_RATE_API_KEY"`
	BaseURL string `mapstructure:"EXCHANGE_RATE_BASE_URL"`
}

// ExchangeRateProvider reads pair rates from exchangerate-api.com.
type ExchangeRateProvider struct {
	providers.BaseProvider
}

type pairResponse struct {
	Result         string          `json:"result"`
	ErrorType      string          `json:"error-type"`
	BaseCode       string          `json:"base_code"`
	TargetCode     string          `json:"target_code"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

func NewExchangeRateProvider(logger *logging.Logger) *ExchangeRateProvider {
	var c ExchangeRateConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://v6.exchangerate-api.com"
	}

	return NewExchangeRateProviderWithConfig(c, logger)
}

func NewExchangeRateProviderWithConfig(c ExchangeRateConfig, logger *logging.Logger) *ExchangeRateProvider {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &ExchangeRateProvider{
		BaseProvider: providers.BaseProvider{
			Name:    providers.ExchangeRate,
			BaseURL: c.BaseURL,
			APIKey:  c.APIKey,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
	}
}

// GetPairRate returns how many units of target one unit of base buys.
func (p *ExchangeRateProvider) GetPairRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	endpoint, err := p.Endpoint(fmt.Sprintf("v6/%s/pair/%s/%s", p.APIKey, base, target), nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := p.MakeRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrRateUnavailable, resp.StatusCode)
	}

	var pair pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return decimal.Zero, fmt.Errorf("%w: error decoding response body: %v", ErrRateUnavailable, err)
	}

	if pair.Result != "success" || !pair.ConversionRate.IsPositive() {
		p.Logger.WithField("error_type", pair.ErrorType).Warn(fmt.Sprintf("no rate for %s/%s", base, target))
		return decimal.Zero, ErrPairNotFound
	}
	return pair.ConversionRate, nil
}
