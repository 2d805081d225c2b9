package dashboard

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/config"
)

const embedTokenLifetime = 1 * time.Hour

// EmbedClaims are carried by the short-lived token handed to the embedded
// dashboard iframe.
type EmbedClaims struct {
	jwt.RegisteredClaims
	WorkspaceID string `json:"workspace_id"`
	DashboardID string `json:"dashboard_id"`
}

// Config is the embed payload served to the frontend.
type Config struct {
	InstanceURL string `json:"instance_url"`
	WorkspaceID string `json:"workspace_id"`
	DashboardID string `json:"dashboard_id"`
	Token       string `json:"token"`
	EmbedURL    string `json:"embed_url"`
}

type Service struct {
	instanceURL string
	workspaceID string
	dashboardID string
	secret      []byte
	now         func() time.Time
}

func NewService() *Service {
	s := &Service{
		instanceURL: config.GetDashboardInstanceURL(),
		workspaceID: config.GetDashboardWorkspaceID(),
		dashboardID: config.GetDashboardID(),
		secret:      config.GetEmbedTokenSecret(),
		now:         time.Now,
	}

	if !s.IsConfigured() {
		log.Warn().Msg("Dashboard embedding is not fully configured")
	}
	return s
}

func (s *Service) IsConfigured() bool {
	return s.instanceURL != "" && s.workspaceID != "" && s.dashboardID != "" && len(s.secret) > 0
}

// EmbedConfig builds the embed payload with a freshly signed token.
func (s *Service) EmbedConfig() (*Config, error) {
	token, err := s.signEmbedToken()
	if err != nil {
		return nil, fmt.Errorf("failed to sign embed token: %w", err)
	}

	return &Config{
		InstanceURL: s.instanceURL,
		WorkspaceID: s.workspaceID,
		DashboardID: s.dashboardID,
		Token:       token,
		EmbedURL:    fmt.Sprintf("%s/embed/dashboardsv3/%s?o=%s", s.instanceURL, s.dashboardID, s.workspaceID),
	}, nil
}

func (s *Service) signEmbedToken() (string, error) {
	now := s.now()
	claims := &EmbedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(embedTokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		WorkspaceID: s.workspaceID,
		DashboardID: s.dashboardID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
