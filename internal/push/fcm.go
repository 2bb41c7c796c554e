package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/spec-kit/profile-push-service/internal/config"
	"github.com/spec-kit/profile-push-service/internal/domain"
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

// ProviderError is a non-2xx reply from the messaging provider.
type ProviderError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("fcm send failed: %d %s: %s", e.StatusCode, e.Status, e.Message)
}

// FCMSender sends through the Firebase Cloud Messaging HTTP v1 API.
type FCMSender struct {
	client   *http.Client
	endpoint string
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmMessage struct {
	Token string            `json:"token"`
	Data  map[string]string `json:"data,omitempty"`
}

type fcmResponse struct {
	Name string `json:"name"`
}

type fcmErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewFCMSender loads service account credentials and builds an
// OAuth2-authorized sender.
func NewFCMSender(ctx context.Context, cfg config.PushConfig) (*FCMSender, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read push credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("parse push credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = cfg.Timeout()
	return NewFCMSenderWithClient(client, cfg.Endpoint, cfg.ProjectID), nil
}

// NewFCMSenderWithClient uses an already authorized client.
func NewFCMSenderWithClient(client *http.Client, endpoint, projectID string) *FCMSender {
	endpoint = strings.TrimRight(endpoint, "/")
	return &FCMSender{
		client:   client,
		endpoint: fmt.Sprintf("%s/v1/projects/%s/messages:send", endpoint, projectID),
	}
}

// Send posts the message and returns the message name assigned by FCM.
func (s *FCMSender) Send(ctx context.Context, msg domain.PushMessage) (string, error) {
	body, err := json.Marshal(fcmRequest{Message: fcmMessage{Token: msg.Token, Data: msg.Data}})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fcm send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		perr := &ProviderError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
		var e fcmErrorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			if e.Error.Status != "" {
				perr.Status = e.Error.Status
			}
			perr.Message = e.Error.Message
		}
		return "", perr
	}

	var out fcmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode fcm response: %w", err)
	}
	if out.Name == "" {
		return "", errors.New("fcm response has no message name")
	}
	return out.Name, nil
}
