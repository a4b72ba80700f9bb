package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ranchbook/internal/models"
	"ranchbook/internal/storage"
)

// Manager owns the identity and session lifecycle: verifying identity
// assertions, upserting users, and minting/revoking rolling sessions.
type Manager struct {
	store          storage.Store
	sessionSecret  []byte
	identitySecret []byte
	ttl            time.Duration
	adminEmails    map[string]bool
	lg             *zap.SugaredLogger
}

func NewManager(store storage.Store, sessionSecret, identitySecret string, ttl time.Duration, defaultAdminEmails []string, lg *zap.SugaredLogger) *Manager {
	admins := make(map[string]bool, len(defaultAdminEmails))
	for _, email := range defaultAdminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = true
	}
	return &Manager{
		store:          store,
		sessionSecret:  []byte(sessionSecret),
		identitySecret: []byte(identitySecret),
		ttl:            ttl,
		adminEmails:    admins,
		lg:             lg,
	}
}

// UpsertFromAssertion refreshes profile fields on every login and
// preserves the stored role for existing users. New users get admin only
// when their email is on the default-admin allow-list; everyone else
// starts as partner. This is the sole automatic role-assignment path.
func (m *Manager) UpsertFromAssertion(ctx context.Context, a IdentityAssertion) (*models.User, error) {
	role := models.RolePartner
	if m.adminEmails[strings.ToLower(a.Email)] {
		role = models.RoleAdmin
	}
	if existing, err := m.store.GetUser(ctx, a.Subject); err == nil {
		role = existing.Role
	}
	return m.store.UpsertUser(ctx, &models.User{
		ID:              a.Subject,
		Email:           a.Email,
		FirstName:       a.GivenName,
		LastName:        a.FamilyName,
		ProfileImageURL: a.Picture,
		Role:            role,
	})
}

// Login verifies the broker's id_token, upserts the user, and opens a
// session valid for the configured TTL.
func (m *Manager) Login(ctx context.Context, idToken string) (string, *models.User, error) {
	assertion, err := VerifyIdentityToken(m.identitySecret, idToken)
	if err != nil {
		return "", nil, err
	}
	user, err := m.UpsertFromAssertion(ctx, assertion)
	if err != nil {
		return "", nil, fmt.Errorf("upserting user: %w", err)
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("account is deactivated")
	}
	jti := uuid.NewString()
	sess := &models.Session{
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(m.ttl),
		CreatedAt: time.Now(),
	}
	if err := m.store.CreateSession(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("creating session: %w", err)
	}
	token, err := signSessionToken(m.sessionSecret, user.ID, jti)
	if err != nil {
		return "", nil, fmt.Errorf("signing session token: %w", err)
	}
	return token, user, nil
}

// Logout revokes the session behind the given JTI.
func (m *Manager) Logout(ctx context.Context, jti string) error {
	return m.store.RevokeSession(ctx, jti)
}
