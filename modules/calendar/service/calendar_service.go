package service

import (
	"context"
	"time"

	"go-booking-api/core/constants"
	"go-booking-api/core/errors"
	"go-booking-api/core/logger"
	"go-booking-api/modules/calendar/dto"
	"go-booking-api/modules/calendar/entity"
	"go-booking-api/modules/calendar/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type CalendarServiceInterface interface {
	FreeBusy(ctx context.Context, hostID uuid.UUID, start, end time.Time) (*dto.FreeBusyResponse, *errors.AppError)
	Sync(ctx context.Context, hostID uuid.UUID) ([]dto.CalendarEventResponse, *errors.AppError)
}

type CalendarService struct {
	repo        repository.CalendarRepositoryInterface
	oauthConfig *oauth2.Config
	clientOpts  []option.ClientOption
	now         func() time.Time
}

// NewCalendarService builds the Google Calendar bridge. A nil oauthConfig
// means the integration is not configured and every call fails with 400.
func NewCalendarService(repo repository.CalendarRepositoryInterface, oauthConfig *oauth2.Config) *CalendarService {
	return &CalendarService{repo: repo, oauthConfig: oauthConfig, now: time.Now}
}

// WithClientOptions appends options to every Calendar API client, e.g. an
// endpoint override.
func (service *CalendarService) WithClientOptions(opts ...option.ClientOption) *CalendarService {
	service.clientOpts = append(service.clientOpts, opts...)
	return service
}

func (service *CalendarService) WithClock(now func() time.Time) *CalendarService {
	service.now = now
	return service
}

// FreeBusy reports busy intervals on the host's primary calendar. Zero
// bounds default to now and one week later.
func (service *CalendarService) FreeBusy(ctx context.Context, hostID uuid.UUID, start, end time.Time) (*dto.FreeBusyResponse, *errors.AppError) {
	if start.IsZero() {
		start = service.now()
	}
	if end.IsZero() {
		end = start.Add(constants.FreeBusyDefaultWindow)
	}
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end must be after start", nil)
	}

	client, appErr := service.client(ctx, hostID)
	if appErr != nil {
		return nil, appErr
	}
	defer client.persist(ctx)

	resp, err := client.api.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: constants.GoogleCalendarPrimary}},
	}).Context(ctx).Do()
	if err != nil {
		logger.Error("CalendarService:FreeBusy:Error", "error", err, "host_id", hostID)
		return nil, errors.NewAppError(errors.ErrUpstreamFailure, "Google Calendar request failed", err)
	}

	result := &dto.FreeBusyResponse{TimeMin: start, TimeMax: end, Busy: []dto.TimeSlot{}}
	cal, ok := resp.Calendars[constants.GoogleCalendarPrimary]
	if !ok {
		return result, nil
	}
	if len(cal.Errors) > 0 {
		logger.Warn("CalendarService:FreeBusy:CalendarError", "reason", cal.Errors[0].Reason, "host_id", hostID)
		return nil, errors.NewAppError(errors.ErrUpstreamFailure, "Google Calendar request failed", nil)
	}
	for _, period := range cal.Busy {
		s, err1 := time.Parse(time.RFC3339, period.Start)
		e, err2 := time.Parse(time.RFC3339, period.End)
		if err1 != nil || err2 != nil {
			logger.Warn("CalendarService:FreeBusy:BadPeriod", "start", period.Start, "end", period.End)
			continue
		}
		result.Busy = append(result.Busy, dto.TimeSlot{Start: s.UTC(), End: e.UTC()})
	}
	return result, nil
}

// Sync reads the next 30 days of the host's primary calendar, recurring
// events expanded, soonest first.
func (service *CalendarService) Sync(ctx context.Context, hostID uuid.UUID) ([]dto.CalendarEventResponse, *errors.AppError) {
	client, appErr := service.client(ctx, hostID)
	if appErr != nil {
		return nil, appErr
	}
	defer client.persist(ctx)

	now := service.now().UTC()
	resp, err := client.api.Events.List(constants.GoogleCalendarPrimary).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.Add(constants.CalendarSyncWindow).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250).
		Context(ctx).
		Do()
	if err != nil {
		logger.Error("CalendarService:Sync:Error", "error", err, "host_id", hostID)
		return nil, errors.NewAppError(errors.ErrUpstreamFailure, "Google Calendar request failed", err)
	}

	events := make([]dto.CalendarEventResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		if ev, ok := toEventResponse(item); ok {
			events = append(events, ev)
		}
	}
	logger.Info("CalendarService:Sync:Success", "host_id", hostID, "count", len(events))
	return events, nil
}

type apiClient struct {
	api    *calendar.Service
	tokens oauth2.TokenSource
	issued string
	hostID uuid.UUID
	repo   repository.CalendarRepositoryInterface
}

func (service *CalendarService) client(ctx context.Context, hostID uuid.UUID) (*apiClient, *errors.AppError) {
	if service.oauthConfig == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Google Calendar integration is not configured", nil)
	}

	conn, err := service.repo.GetConnection(ctx, hostID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load calendar connection", err)
	}
	if !conn.Connected() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Google Calendar is not connected", nil)
	}

	token := toOAuthToken(conn)
	tokens := oauth2.ReuseTokenSource(token, service.oauthConfig.TokenSource(ctx, token))

	opts := append([]option.ClientOption{option.WithTokenSource(tokens)}, service.clientOpts...)
	api, err := calendar.NewService(ctx, opts...)
	if err != nil {
		logger.Error("CalendarService:NewClient:Error", "error", err, "host_id", hostID)
		return nil, errors.NewAppError(errors.ErrUpstreamFailure, "failed to create calendar client", err)
	}

	return &apiClient{
		api:    api,
		tokens: tokens,
		issued: token.AccessToken,
		hostID: hostID,
		repo:   service.repo,
	}, nil
}

// persist writes the access token back when the token source refreshed it.
func (c *apiClient) persist(ctx context.Context) {
	current, err := c.tokens.Token()
	if err != nil || current.AccessToken == c.issued {
		return
	}
	if err := c.repo.SaveToken(ctx, c.hostID, current.AccessToken, current.RefreshToken, current.Expiry); err != nil {
		logger.Warn("CalendarService:PersistToken:Error", "error", err, "host_id", c.hostID)
		return
	}
	logger.Info("CalendarService:PersistToken:Refreshed", "host_id", c.hostID)
}

func toOAuthToken(conn *entity.CalendarConnection) *oauth2.Token {
	token := &oauth2.Token{AccessToken: *conn.AccessToken, TokenType: "Bearer"}
	if conn.RefreshToken != nil {
		token.RefreshToken = *conn.RefreshToken
	}
	if conn.TokenExpiresAt != nil {
		token.Expiry = *conn.TokenExpiresAt
	}
	return token
}

func toEventResponse(item *calendar.Event) (dto.CalendarEventResponse, bool) {
	if item == nil || item.Start == nil || item.End == nil {
		return dto.CalendarEventResponse{}, false
	}
	ev := dto.CalendarEventResponse{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Status:      item.Status,
		HTMLLink:    item.HtmlLink,
	}

	if item.Start.DateTime != "" {
		start, err1 := time.Parse(time.RFC3339, item.Start.DateTime)
		end, err2 := time.Parse(time.RFC3339, item.End.DateTime)
		if err1 != nil || err2 != nil {
			return dto.CalendarEventResponse{}, false
		}
		ev.Start, ev.End = start.UTC(), end.UTC()
		return ev, true
	}

	start, err1 := time.Parse(time.DateOnly, item.Start.Date)
	end, err2 := time.Parse(time.DateOnly, item.End.Date)
	if err1 != nil || err2 != nil {
		return dto.CalendarEventResponse{}, false
	}
	ev.Start, ev.End, ev.AllDay = start, end, true
	return ev, true
}
