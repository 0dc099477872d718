package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
)

// Plunk sends transactional email through the Plunk API.
type Plunk struct {
	HttpClient *http.Client
	BaseURL    string
	APIKey     string
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewPlunk(c *utils.Config) *Plunk {
	return &Plunk{
		HttpClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    c.PlunkBaseUrl,
		APIKey:     c.PlunkApiKey,
	}
}

func (s *Plunk) makeRequest(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+endpoint, reqBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, errors.New(string(respBody))
	}

	return respBody, nil
}

func (s *Plunk) Send(ctx context.Context, to, subject, html string) error {
	email := EmailRequest{
		To:      to,
		Subject: subject,
		Body:    html,
	}

	_, err := s.makeRequest(ctx, http.MethodPost, "/send", email)
	return err
}
