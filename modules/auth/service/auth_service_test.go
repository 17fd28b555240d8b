package service

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"go-booking-api/core/cache"
	"go-booking-api/core/entity"
	"go-booking-api/core/errors"
	"go-booking-api/core/session"
	"go-booking-api/modules/auth/dto"
	authEntity "go-booking-api/modules/auth/entity"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

type fakeAuthRepo struct {
	mu     sync.Mutex
	users    map[uuid.UUID]*authEntity.User
	states   map[string]time.Time
	purgeErr error
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		users:  make(map[uuid.UUID]*authEntity.User),
		states: make(map[string]time.Time),
	}
}

func (r *fakeAuthRepo) UpsertGoogleUser(_ context.Context, u *authEntity.User) (*authEntity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.GoogleID != nil && *existing.GoogleID == *u.GoogleID {
			existing.Email = u.Email
			existing.Name = u.Name
			existing.GoogleAccessToken = u.GoogleAccessToken
			if u.GoogleRefreshToken != nil {
				existing.GoogleRefreshToken = u.GoogleRefreshToken
			}
			cp := *existing
			return &cp, nil
		}
	}
	saved := *u
	saved.BaseEntity = entity.BaseEntity{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.users[saved.ID] = &saved
	cp := saved
	return &cp, nil
}

func (r *fakeAuthRepo) GetUserByID(_ context.Context, id uuid.UUID) (*authEntity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAuthRepo) GetUserByGoogleID(_ context.Context, googleID string) (*authEntity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAuthRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAuthRepo) SaveLoginState(_ context.Context, state string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state] = expiresAt
	return nil
}

func (r *fakeAuthRepo) ConsumeLoginState(_ context.Context, state string, now time.Time) (*authEntity.OAuthState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.states[state]
	delete(r.states, state)
	if !ok || !exp.After(now) {
		return nil, nil
	}
	return &authEntity.OAuthState{State: state, ExpiresAt: exp}, nil
}

func (r *fakeAuthRepo) PurgeExpiredLoginStates(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.purgeErr != nil {
		return 0, r.purgeErr
	}
	var n int64
	for state, exp := range r.states {
		if !exp.After(now) {
			delete(r.states, state)
			n++
		}
	}
	return n, nil
}

func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"google-access","token_type":"Bearer","refresh_token":"google-refresh","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, tokenURL string) (*AuthService, *fakeAuthRepo, *cache.MemoryCache) {
	t.Helper()
	codec, err := session.NewCodec("auth-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	repo := newFakeAuthRepo()
	c := cache.NewMemoryCache()
	cfg := &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/api/auth/google/callback",
		Scopes:       []string{"openid"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.example.com/auth",
			TokenURL: tokenURL,
		},
	}
	svc := NewAuthService(repo, c, codec, cfg).WithUserInfoFetcher(
		func(ctx context.Context, ts oauth2.TokenSource) (*dto.GoogleUserInfo, error) {
			return &dto.GoogleUserInfo{ID: "g-123", Email: "ada@example.com", Name: "Ada Lovelace"}, nil
		})
	return svc, repo, c
}

func stateFrom(t *testing.T, authURL string) string {
	t.Helper()
	u, err := url.Parse(authURL)
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if q.Get("access_type") != "offline" || q.Get("prompt") != "consent" {
		t.Fatalf("auth url missing offline consent params: %s", authURL)
	}
	return q.Get("state")
}

func TestGoogleLoginFlow(t *testing.T) {
	srv := newTokenServer(t)
	svc, repo, _ := newTestService(t, srv.URL)
	ctx := context.Background()

	authURL, appErr := svc.GetGoogleAuthURL(ctx)
	if appErr != nil {
		t.Fatalf("GetGoogleAuthURL: %v", appErr)
	}
	state := stateFrom(t, authURL)

	result, appErr := svc.HandleGoogleCallback(ctx, "auth-code", state)
	if appErr != nil {
		t.Fatalf("HandleGoogleCallback: %v", appErr)
	}
	if result.User.Slug != "ada-lovelace" || !result.User.GoogleConnected {
		t.Fatalf("user = %+v", result.User)
	}

	uid, err := svc.codec.Verify(result.SessionToken)
	if err != nil || uid != result.User.ID {
		t.Fatalf("session token verifies to %s (%v), want %s", uid, err, result.User.ID)
	}

	// state is single use
	if _, appErr := svc.HandleGoogleCallback(ctx, "auth-code", state); appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("reused state = %v, want unauthorized", appErr)
	}

	// second login keeps the same user and slug
	authURL, _ = svc.GetGoogleAuthURL(ctx)
	again, appErr := svc.HandleGoogleCallback(ctx, "auth-code", stateFrom(t, authURL))
	if appErr != nil {
		t.Fatalf("second login: %v", appErr)
	}
	if again.User.ID != result.User.ID || again.User.Slug != result.User.Slug {
		t.Fatalf("second login created a different user: %+v vs %+v", again.User, result.User)
	}
	if len(repo.users) != 1 {
		t.Fatalf("users = %d, want 1", len(repo.users))
	}
}

func TestGetGoogleAuthURLUnconfigured(t *testing.T) {
	codec, _ := session.NewCodec("x", time.Hour)
	svc := NewAuthService(newFakeAuthRepo(), nil, codec, nil)
	if _, appErr := svc.GetGoogleAuthURL(context.Background()); appErr == nil {
		t.Fatal("expected error without oauth config")
	}
}

func TestGetCurrentUserUnknown(t *testing.T) {
	svc, _, _ := newTestService(t, "http://unused")
	_, appErr := svc.GetCurrentUser(context.Background(), uuid.New())
	if appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("GetCurrentUser unknown = %v, want unauthorized", appErr)
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc, _, c := newTestService(t, "http://unused")
	token, _, err := svc.codec.Issue(uuid.New())
	if err != nil {
		t.Fatal(err)
	}

	if appErr := svc.Logout(context.Background(), token); appErr != nil {
		t.Fatalf("Logout: %v", appErr)
	}
	revoked, err := c.IsTokenBlacklisted(context.Background(), token)
	if err != nil || !revoked {
		t.Fatalf("token revoked = %v (%v), want true", revoked, err)
	}
}

func TestGetGoogleAuthURLPurgesAbandonedStates(t *testing.T) {
	svc, repo, _ := newTestService(t, "http://unused")
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })
	ctx := context.Background()

	repo.states["abandoned"] = now.Add(-time.Minute)
	repo.states["in-flight"] = now.Add(5 * time.Minute)

	authURL, appErr := svc.GetGoogleAuthURL(ctx)
	if appErr != nil {
		t.Fatalf("GetGoogleAuthURL: %v", appErr)
	}
	if _, ok := repo.states["abandoned"]; ok {
		t.Fatal("expired state was not purged")
	}
	if _, ok := repo.states["in-flight"]; !ok {
		t.Fatal("live state was purged")
	}
	if exp := repo.states[stateFrom(t, authURL)]; !exp.Equal(now.Add(10 * time.Minute)) {
		t.Fatalf("new state expires at %s", exp)
	}

	// an expired state is rejected even before it is purged
	repo.states["stale"] = now.Add(-time.Second)
	if _, appErr := svc.HandleGoogleCallback(ctx, "auth-code", "stale"); appErr == nil || appErr.Code != errors.ErrUnauthorized {
		t.Fatalf("stale state = %v, want unauthorized", appErr)
	}
}

func TestGetGoogleAuthURLPurgeFailure(t *testing.T) {
	svc, repo, _ := newTestService(t, "http://unused")
	repo.purgeErr = stderrors.New("connection reset")

	if _, appErr := svc.GetGoogleAuthURL(context.Background()); appErr != nil {
		t.Fatalf("purge failure should not block login: %v", appErr)
	}
	if len(repo.states) != 1 {
		t.Fatalf("states = %d, want the new one saved", len(repo.states))
	}
}
