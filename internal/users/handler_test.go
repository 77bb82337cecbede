package users_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/2beens/levelup/internal/missions"
	"github.com/2beens/levelup/internal/users"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestHandler(t *testing.T) (*MockusersRepo, *MockmissionsSummary, *mux.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := NewMockusersRepo(ctrl)
	summary := NewMockmissionsSummary(ctrl)
	r := mux.NewRouter()
	users.NewHandler(repo, summary, 60).SetupRoutes(r)
	return repo, summary, r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Get(t *testing.T) {
	repo, _, r := newTestHandler(t)

	repo.EXPECT().Get(gomock.Any(), 1).Return(&users.User{ID: 1, Name: "serj", Level: 2, XP: 150}, nil)
	rr := doRequest(t, r, "GET", "/users/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"name":"serj","xp":150,"level":2,"weight":0,"height":0}`, rr.Body.String())

	repo.EXPECT().Get(gomock.Any(), 2).Return(nil, users.ErrUserNotFound)
	assert.Equal(t, http.StatusNotFound, doRequest(t, r, "GET", "/users/2", "").Code)

	repo.EXPECT().Get(gomock.Any(), 3).Return(nil, errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, doRequest(t, r, "GET", "/users/3", "").Code)

	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, "GET", "/users/abc", "").Code)
}

func TestHandler_Update(t *testing.T) {
	repo, _, r := newTestHandler(t)

	repo.EXPECT().Get(gomock.Any(), 1).Return(&users.User{ID: 1, Name: "old", Level: 3, XP: 10}, nil)
	repo.EXPECT().
		UpdateProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, u users.User) error {
			assert.Equal(t, "serj", u.Name)
			assert.Equal(t, 80.5, u.Weight)
			assert.Equal(t, 182.0, u.Height)
			require.NotNil(t, u.BirthDate)
			assert.Equal(t, 1990, u.BirthDate.Year())
			assert.Equal(t, 3, u.Level)
			assert.Equal(t, 10, u.XP)
			return nil
		})

	rr := doRequest(t, r, "PUT", "/users/1", `{"name":"serj","weight":80.5,"height":182,"birthDate":"1990-05-01T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated users.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "serj", updated.Name)
	assert.Equal(t, 3, updated.Level)
}

func TestHandler_Update_Invalid(t *testing.T) {
	repo, _, r := newTestHandler(t)

	req, err := http.NewRequest("PUT", "/users/1", strings.NewReader(`{"name":"serj"}`))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	repo.EXPECT().Get(gomock.Any(), 1).Return(&users.User{ID: 1}, nil).Times(3)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, "PUT", "/users/1", `{"name":"  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, "PUT", "/users/1", `{"name":"serj","weight":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, "PUT", "/users/1", `{invalid`).Code)
}

func TestHandler_Progress(t *testing.T) {
	repo, summary, r := newTestHandler(t)

	birth := time.Now().AddDate(-30, 0, -1)
	repo.EXPECT().Get(gomock.Any(), 1).Return(&users.User{
		ID:        1,
		XP:        100,
		Level:     2,
		Weight:    80,
		Height:    180,
		BirthDate: &birth,
	}, nil)
	summary.EXPECT().Summary().Return(missions.Summary{
		DailyDone:   3,
		DailyTotal:  6,
		WeeklyDone:  1,
		WeeklyTotal: 2,
	})

	rr := doRequest(t, r, "GET", "/users/1/progress", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp users.ProgressResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Level)
	assert.Equal(t, 400, resp.RequiredXP)
	assert.Equal(t, 300, resp.XPRemaining)
	assert.InDelta(t, 0.25, resp.LevelRatio, 1e-9)
	assert.Equal(t, 3, resp.Missions.DailyDone)
	assert.InDelta(t, 0.5, resp.MissionEfficiency, 1e-9)
	assert.InDelta(t, 3.5, resp.WaterRequirement, 1e-9)
	require.NotNil(t, resp.KcalRequirement)
	assert.Greater(t, *resp.KcalRequirement, 0.0)
}

func TestHandler_Progress_NoKcal(t *testing.T) {
	repo, summary, r := newTestHandler(t)

	repo.EXPECT().Get(gomock.Any(), 1).Return(&users.User{ID: 1, Level: 1}, nil)
	summary.EXPECT().Summary().Return(missions.Summary{})

	rr := doRequest(t, r, "GET", "/users/1/progress", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "kcalRequirement")
	assert.Contains(t, rr.Body.String(), `"missionEfficiency":0`)
}
