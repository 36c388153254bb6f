package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"ingresos_gastos/internal/model"
	"ingresos_gastos/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var ErrUnauthenticated = errors.New("no autenticado")

const defaultAPIBaseURL = "https://api.github.com"

// OAuthConfig carries the settings for the external identity provider.
// Endpoint and APIBaseURL default to GitHub's and only need to be set in
// tests.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Endpoint     oauth2.Endpoint
	APIBaseURL   string
}

// AuthService handles the OAuth sign-in flow and session resolution.
// Token issuance and password handling are delegated to the provider;
// sessions issued here are opaque random tokens persisted in the store.
type AuthService interface {
	LoginURL(state string) string
	HandleCallback(ctx context.Context, code string) (*model.Session, error)
	Resolve(ctx context.Context, token string) (*model.Identity, error)
	Logout(ctx context.Context, token string) error
	CleanupExpired(ctx context.Context) (int64, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	oauthCfg    *oauth2.Config
	apiBaseURL  string
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg OAuthConfig, sessionTTL time.Duration) AuthService {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = github.Endpoint
	}
	apiBaseURL := cfg.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}

	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		apiBaseURL: apiBaseURL,
		sessionTTL: sessionTTL,
	}
}

// LoginURL builds the provider's authorization URL for the given state.
func (s *authService) LoginURL(state string) string {
	return s.oauthCfg.AuthCodeURL(state)
}

// githubProfile is the subset of the provider's user payload we consume.
type githubProfile struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type githubEmail struct {
	Email   string `json:"email"`
	Primary bool   `json:"primary"`
}

// HandleCallback exchanges the authorization code, looks up the provider
// profile, creates the user on first sign-in and issues a session.
func (s *authService) HandleCallback(ctx context.Context, code string) (*model.Session, error) {
	token, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	client := s.oauthCfg.Client(ctx, token)

	profile, err := s.fetchProfile(ctx, client)
	if err != nil {
		return nil, err
	}

	user, err := s.ensureUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

func (s *authService) fetchProfile(ctx context.Context, client *http.Client) (*githubProfile, error) {
	profile := &githubProfile{}
	if err := s.getJSON(ctx, client, s.apiBaseURL+"/user", profile); err != nil {
		return nil, fmt.Errorf("failed to fetch provider profile: %w", err)
	}

	// The public email can be hidden; fall back to the primary address.
	if profile.Email == "" {
		var emails []githubEmail
		if err := s.getJSON(ctx, client, s.apiBaseURL+"/user/emails", &emails); err != nil {
			return nil, fmt.Errorf("failed to fetch provider emails: %w", err)
		}
		for _, e := range emails {
			if e.Primary {
				profile.Email = e.Email
				break
			}
		}
		if profile.Email == "" && len(emails) > 0 {
			profile.Email = emails[0].Email
		}
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("provider profile has no email address")
	}
	if profile.Name == "" {
		profile.Name = profile.Login
	}
	return profile, nil
}

func (s *authService) getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d for %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ensureUser finds the account for the profile's email, creating it on
// first sign-in. New accounts get the ADMIN role.
func (s *authService) ensureUser(ctx context.Context, profile *githubProfile) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &model.User{
		ID:        uuid.NewString(),
		Name:      profile.Name,
		Email:     profile.Email,
		Role:      model.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user on first sign-in: %w", err)
	}
	log.Printf("Created user %s (%s) on first sign-in", user.ID, user.Email)
	return user, nil
}

// Resolve validates a session token and returns the authenticated
// identity. Read-only: expired sessions fail resolution but are left for
// the sweeper to remove.
func (s *authService) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if session == nil || session.Expired(time.Now()) {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	role := user.Role
	if role == "" {
		role = model.RoleUser
	}
	return &model.Identity{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  role,
	}, nil
}

// Logout removes the session for the given token.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session on logout: %w", err)
	}
	return nil
}

// CleanupExpired sweeps expired sessions from the store.
func (s *authService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}
