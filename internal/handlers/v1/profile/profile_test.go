package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-manager/internal/finance"
	authhandlers "github.com/carson-networks/money-manager/internal/handlers/v1/auth"
	"github.com/carson-networks/money-manager/internal/handlers/v1/handlertest"
	"github.com/carson-networks/money-manager/internal/service"
)

var testUserID = uuid.Must(uuid.NewV4())

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) Get(ctx context.Context, userID uuid.UUID) (service.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(service.Profile)
	return p, args.Error(1)
}

func (m *mockProfileService) UpdateName(ctx context.Context, userID uuid.UUID, name string) (service.Profile, error) {
	args := m.Called(ctx, userID, name)
	p, _ := args.Get(0).(service.Profile)
	return p, args.Error(1)
}

func (m *mockProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	return m.Called(ctx, userID, current, next).Error(0)
}

func (m *mockProfileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (service.Profile, error) {
	args := m.Called(ctx, userID, avatarURL)
	p, _ := args.Get(0).(service.Profile)
	return p, args.Error(1)
}

func newTestAPI(t *testing.T, svc profileService) humatest.TestAPI {
	t.Helper()
	api := handlertest.NewAPI(t, testUserID)
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_GetProfile(t *testing.T) {
	mockSvc := new(mockProfileService)
	mockSvc.On("Get", mock.Anything, testUserID).
		Return(service.Profile{ID: testUserID, Email: "ana@example.com", Name: "Ana"}, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/profile", handlertest.AuthHeader)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body authhandlers.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID.String(), body.ID)
	assert.Equal(t, "ana@example.com", body.Email)
}

func TestHTTP_GetProfile_Unauthenticated(t *testing.T) {
	mockSvc := new(mockProfileService)

	resp := newTestAPI(t, mockSvc).Get("/v1/profile", "Authorization: Bearer wrong")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertNotCalled(t, "Get")
}

func TestHTTP_UpdateName(t *testing.T) {
	mockSvc := new(mockProfileService)
	mockSvc.On("UpdateName", mock.Anything, testUserID, "Luis").
		Return(service.Profile{ID: testUserID, Name: "Luis"}, nil)

	resp := newTestAPI(t, mockSvc).Put("/v1/profile/name", handlertest.AuthHeader, map[string]any{"name": "Luis"})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"Luis"`)
}

func TestHTTP_ChangePassword(t *testing.T) {
	mockSvc := new(mockProfileService)
	mockSvc.On("ChangePassword", mock.Anything, testUserID, "Old#Pass1", "New#Pass2").Return(nil)

	resp := newTestAPI(t, mockSvc).Put("/v1/profile/password", handlertest.AuthHeader, map[string]any{
		"currentPassword": "Old#Pass1",
		"newPassword":     "New#Pass2",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ChangePassword_WrongCurrent(t *testing.T) {
	mockSvc := new(mockProfileService)
	mockSvc.On("ChangePassword", mock.Anything, testUserID, mock.Anything, mock.Anything).
		Return(&finance.ValidationError{Field: "currentPassword", Message: "Current password is incorrect"})

	resp := newTestAPI(t, mockSvc).Put("/v1/profile/password", handlertest.AuthHeader, map[string]any{
		"currentPassword": "nope",
		"newPassword":     "New#Pass2",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Current password is incorrect")
}

func TestHTTP_UpdateAvatar(t *testing.T) {
	mockSvc := new(mockProfileService)
	mockSvc.On("UpdateAvatar", mock.Anything, testUserID, "https://cdn.example.com/a.png").
		Return(service.Profile{ID: testUserID, AvatarURL: "https://cdn.example.com/a.png"}, nil)

	resp := newTestAPI(t, mockSvc).Put("/v1/profile/avatar", handlertest.AuthHeader, map[string]any{
		"avatarUrl": "https://cdn.example.com/a.png",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "cdn.example.com")
}
