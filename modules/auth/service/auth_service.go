package service

import (
	"context"
	"strings"
	"time"

	"go-booking-api/core/cache"
	"go-booking-api/core/config"
	"go-booking-api/core/constants"
	"go-booking-api/core/database"
	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	"go-booking-api/core/session"
	"go-booking-api/core/utils"
	"go-booking-api/modules/auth/dto"
	"go-booking-api/modules/auth/entity"
	"go-booking-api/modules/auth/mapper"
	"go-booking-api/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type AuthServiceInterface interface {
	GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError)
	HandleGoogleCallback(ctx context.Context, code, state string) (*dto.LoginResult, *errors.AppError)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
}

// UserInfoFetcher loads the Google profile for an authorized token source.
type UserInfoFetcher func(ctx context.Context, ts oauth2.TokenSource) (*dto.GoogleUserInfo, error)

type AuthService struct {
	repo        repository.AuthRepositoryInterface
	cache       cache.Cache
	codec       *session.Codec
	oauthConfig *oauth2.Config
	userInfo    UserInfoFetcher
	now         func() time.Time
}

// GoogleOAuthConfig builds the login config; it returns nil when Google
// credentials are not configured.
func GoogleOAuthConfig(cfg config.GoogleAPIConfig) *oauth2.Config {
	if !cfg.Enabled() {
		return nil
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes: []string{
			"openid",
			googleoauth.UserinfoEmailScope,
			googleoauth.UserinfoProfileScope,
			calendar.CalendarScope,
		},
		Endpoint: google.Endpoint,
	}
}

func NewAuthService(repo repository.AuthRepositoryInterface, c cache.Cache, codec *session.Codec, oauthConfig *oauth2.Config) *AuthService {
	return &AuthService{
		repo:        repo,
		cache:       c,
		codec:       codec,
		oauthConfig: oauthConfig,
		userInfo:    fetchGoogleUserInfo,
		now:         time.Now,
	}
}

// WithUserInfoFetcher replaces the Google profile lookup.
func (service *AuthService) WithUserInfoFetcher(f UserInfoFetcher) *AuthService {
	service.userInfo = f
	return service
}

func (service *AuthService) WithClock(now func() time.Time) *AuthService {
	service.now = now
	return service
}

// GetGoogleAuthURL generates the Google OAuth authorization URL
func (service *AuthService) GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError) {
	if service.oauthConfig == nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}

	now := service.now()
	if purged, err := service.repo.PurgeExpiredLoginStates(ctx, now); err != nil {
		logger.Warn("AuthService:GetGoogleAuthURL:PurgeExpiredLoginStates:Error", "error", err)
	} else if purged > 0 {
		logger.Debug("AuthService:GetGoogleAuthURL:PurgedStates", "count", purged)
	}

	// Generate state token for CSRF protection
	state := utils.GenerateRandomString(32)
	if err := service.repo.SaveLoginState(ctx, state, now.Add(constants.OAuthStateTTL)); err != nil {
		logger.Error("AuthService:GetGoogleAuthURL:SaveLoginState:Error", "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to store state token", err)
	}

	return service.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// HandleGoogleCallback exchanges the code, upserts the user and issues a
// session token.
func (service *AuthService) HandleGoogleCallback(ctx context.Context, code, state string) (*dto.LoginResult, *errors.AppError) {
	if service.oauthConfig == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}
	if code == "" || state == "" {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "missing code or state", nil)
	}

	oauthState, err := service.repo.ConsumeLoginState(ctx, state, service.now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to validate state token", err)
	}
	if oauthState == nil {
		logger.Warn("AuthService:HandleGoogleCallback:StateNotFound")
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired state token", nil)
	}

	token, err := service.oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:Exchange:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrUpstreamFailure, "failed to exchange authorization code", err)
	}

	info, err := service.userInfo(ctx, service.oauthConfig.TokenSource(ctx, token))
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:UserInfo:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrUpstreamFailure, "failed to get user info", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, errors.NewAppError(errors.ErrUpstreamFailure, "Google profile is missing id or email", nil)
	}

	user, appErr := service.upsertUser(ctx, info, token)
	if appErr != nil {
		return nil, appErr
	}

	sessionToken, expiresAt, err := service.codec.Issue(user.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue session", err)
	}

	logger.Info("AuthService:HandleGoogleCallback:Success",
		"user_id", user.ID,
		"has_refresh_token", token.RefreshToken != "",
	)

	return &dto.LoginResult{
		SessionToken: sessionToken,
		ExpiresAt:    expiresAt,
		User:         mapper.ToUserResponse(user),
	}, nil
}

func (service *AuthService) upsertUser(ctx context.Context, info *dto.GoogleUserInfo, token *oauth2.Token) (*entity.User, *errors.AppError) {
	existing, err := service.repo.GetUserByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load user", err)
	}

	googleID := info.ID
	accessToken := token.AccessToken
	user := &entity.User{
		GoogleID:          &googleID,
		Email:             info.Email,
		Name:              info.Name,
		GoogleAccessToken: &accessToken,
	}
	if token.RefreshToken != "" {
		refreshToken := token.RefreshToken
		user.GoogleRefreshToken = &refreshToken
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		user.GoogleTokenExpiresAt = &expiry
	}

	if existing != nil {
		user.Slug = existing.Slug
	} else {
		slug, err := service.uniqueSlug(ctx, info)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to allocate slug", err)
		}
		user.Slug = slug
	}

	saved, err := service.repo.UpsertGoogleUser(ctx, user)
	if err != nil && existing == nil && database.IsUniqueViolation(err) {
		// lost a race for the slug
		user.Slug = utils.SlugWithSuffix(user.Slug)
		saved, err = service.repo.UpsertGoogleUser(ctx, user)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save user", err)
	}
	return saved, nil
}

func (service *AuthService) uniqueSlug(ctx context.Context, info *dto.GoogleUserInfo) (string, error) {
	local := info.Email
	if at := strings.Index(local, "@"); at > 0 {
		local = local[:at]
	}
	base := utils.MakeSlug(info.Name, local)

	exists, err := service.repo.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}
	return utils.SlugWithSuffix(base), nil
}

func (service *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Unauthorized", nil)
	}
	return mapper.ToUserResponse(user), nil
}

// Logout revokes the session token until it would have expired anyway.
func (service *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	claims, err := service.codec.Parse(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid session", err)
	}
	if service.cache == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := service.cache.AddToTokenBlacklist(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist:Error", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke session", err)
	}
	return nil
}

func fetchGoogleUserInfo(ctx context.Context, ts oauth2.TokenSource) (*dto.GoogleUserInfo, error) {
	svc, err := googleoauth.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return &dto.GoogleUserInfo{
		ID:    info.Id,
		Email: info.Email,
		Name:  info.Name,
	}, nil
}
