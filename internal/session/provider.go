package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spectropro/spectro-backend/internal/models"
)

// AuthPayload is what the identity provider hands back on a successful
// credential operation.
type AuthPayload struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

type RegisterParams struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      models.Role `json:"role"`
	StudentID string      `json:"student_id,omitempty"`
}

// IdentityProvider is the external collaborator performing the actual
// credential checks. Errors carry a human-readable message.
type IdentityProvider interface {
	Login(ctx context.Context, email, password string) (AuthPayload, error)
	Register(ctx context.Context, p RegisterParams) (AuthPayload, error)
}

// HTTPProvider talks to the spectro-backend API.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *HTTPProvider) Login(ctx context.Context, email, password string) (AuthPayload, error) {
	return p.post(ctx, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (p *HTTPProvider) Register(ctx context.Context, params RegisterParams) (AuthPayload, error) {
	return p.post(ctx, "/api/v1/auth/register", params)
}

func (p *HTTPProvider) post(ctx context.Context, path string, body any) (AuthPayload, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return AuthPayload{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return AuthPayload{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return AuthPayload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return AuthPayload{}, fmt.Errorf("%s", apiErr.Error)
		}
		return AuthPayload{}, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var payload AuthPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return AuthPayload{}, err
	}
	return payload, nil
}
