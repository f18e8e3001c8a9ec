// supabase.go - Provider backed by the Supabase auth API
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/appforms/backend/internal/models"
)

// SupabaseProvider validates tokens by asking the Supabase auth endpoint
// for the user they belong to.
type SupabaseProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewSupabaseProvider creates a SupabaseProvider for a project.
func NewSupabaseProvider(baseURL, apiKey string, httpClient *http.Client) (*SupabaseProvider, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &SupabaseProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}, nil
}

func (p *SupabaseProvider) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	reqURL := p.baseURL + "/auth/v1/user"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	return &user, nil
}

var _ Provider = (*SupabaseProvider)(nil)
