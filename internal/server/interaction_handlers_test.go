package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInteractionTestServer(
	interactionRepo *MockInteractionRepository,
	userRepo *MockUserRepository,
	trendRepo *MockTrendRepository,
	notificationRepo *MockNotificationRepository,
) *Server {
	s := &Server{config: testConfig()}
	s.interactionService = service.NewInteractionService(
		interactionRepo, userRepo, trendRepo, notificationRepo, nil)
	return s
}

func TestCreateTweetHandler(t *testing.T) {
	interactionRepo := new(MockInteractionRepository)
	userRepo := new(MockUserRepository)
	trendRepo := new(MockTrendRepository)
	notificationRepo := new(MockNotificationRepository)

	interactionRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Interaction")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Interaction).ID = 42
		}).Return(nil)
	interactionRepo.On("AddMentions", mock.Anything, uint(42), []uint{2}).Return(nil)
	userRepo.On("ResolveUsernames", mock.Anything, []string{"bob"}).
		Return([]models.User{{ID: 2, Username: "bob"}}, nil)
	trendRepo.On("FindOrCreate", mock.Anything, "go").Return(&models.Trend{ID: 1, Text: "go"}, nil)
	trendRepo.On("Link", mock.Anything, uint(1), uint(42)).Return(nil)
	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)

	s := newInteractionTestServer(interactionRepo, userRepo, trendRepo, notificationRepo)
	app := authedApp(1)
	app.Post("/api/tweets", s.CreateTweet)

	resp := postJSON(t, app, "/api/tweets", map[string]any{
		"text": "hi @bob #go",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Interaction models.Interaction `json:"interaction"`
		Mentions    []string           `json:"mentions"`
		Trends      []string           `json:"trends"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint(42), body.Interaction.ID)
	assert.Equal(t, []string{"bob"}, body.Mentions)
	assert.Equal(t, []string{"go"}, body.Trends)
}

func TestCreateTweetHandlerRejectsEmpty(t *testing.T) {
	s := newInteractionTestServer(
		new(MockInteractionRepository), new(MockUserRepository),
		new(MockTrendRepository), new(MockNotificationRepository))

	app := authedApp(1)
	app.Post("/api/tweets", s.CreateTweet)

	resp := postJSON(t, app, "/api/tweets", map[string]any{"text": ""})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateReplyHandlerInvalidID(t *testing.T) {
	s := newInteractionTestServer(
		new(MockInteractionRepository), new(MockUserRepository),
		new(MockTrendRepository), new(MockNotificationRepository))

	app := authedApp(1)
	app.Post("/api/interactions/:id/reply", s.CreateReply)

	resp := postJSON(t, app, "/api/interactions/abc/reply", map[string]any{"text": "hi"})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateRetweetHandlerMissingParent(t *testing.T) {
	interactionRepo := new(MockInteractionRepository)
	interactionRepo.On("GetByID", mock.Anything, uint(404)).
		Return(nil, models.NewNotFoundError("Interaction", 404))

	s := newInteractionTestServer(
		interactionRepo, new(MockUserRepository),
		new(MockTrendRepository), new(MockNotificationRepository))

	app := authedApp(1)
	app.Post("/api/interactions/:id/retweet", s.CreateRetweet)

	req := httptest.NewRequest(http.MethodPost, "/api/interactions/404/retweet", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteInteractionHandlerForbidden(t *testing.T) {
	interactionRepo := new(MockInteractionRepository)
	interactionRepo.On("GetByID", mock.Anything, uint(50)).
		Return(&models.Interaction{ID: 50, AuthorID: 9, Type: models.InteractionTweet}, nil)

	s := newInteractionTestServer(
		interactionRepo, new(MockUserRepository),
		new(MockTrendRepository), new(MockNotificationRepository))

	app := authedApp(1)
	app.Delete("/api/interactions/:id", s.DeleteInteraction)

	req := httptest.NewRequest(http.MethodDelete, "/api/interactions/50", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLikeInteractionHandler(t *testing.T) {
	interactionRepo := new(MockInteractionRepository)
	notificationRepo := new(MockNotificationRepository)

	interactionRepo.On("GetByID", mock.Anything, uint(50)).
		Return(&models.Interaction{ID: 50, AuthorID: 9, Type: models.InteractionTweet}, nil)
	interactionRepo.On("Like", mock.Anything, uint(1), uint(50)).Return(nil)
	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)

	s := newInteractionTestServer(
		interactionRepo, new(MockUserRepository),
		new(MockTrendRepository), notificationRepo)

	app := authedApp(1)
	app.Post("/api/interactions/:id/like", s.LikeInteraction)

	req := httptest.NewRequest(http.MethodPost, "/api/interactions/50/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	notificationRepo.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*models.Notification"))
}

func TestFollowUserHandler(t *testing.T) {
	userRepo := new(MockUserRepository)
	notificationRepo := new(MockNotificationRepository)

	userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2, Username: "bob"}, nil)
	userRepo.On("Follow", mock.Anything, uint(1), uint(2)).Return(nil)
	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)

	s := &Server{config: testConfig()}
	s.userService = service.NewUserService(userRepo, notificationRepo, nil)

	app := authedApp(1)
	app.Post("/api/users/:id/follow", s.FollowUser)

	req := httptest.NewRequest(http.MethodPost, "/api/users/2/follow", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFollowSelfHandler(t *testing.T) {
	s := &Server{config: testConfig()}
	s.userService = service.NewUserService(
		new(MockUserRepository), new(MockNotificationRepository), nil)

	app := authedApp(1)
	app.Post("/api/users/:id/follow", s.FollowUser)

	req := httptest.NewRequest(http.MethodPost, "/api/users/1/follow", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
