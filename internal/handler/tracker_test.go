package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/pkg/api"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

func scoredEntry(date string) *model.HealthEntry {
	return &model.HealthEntry{
		Date: date,
		Metrics: model.DailyMetrics{
			SleepHours: 8,
			Exercise:   model.Exercise{Minutes: 30, Type: model.ExerciseCardio},
			Steps:      10000,
		},
		Score: model.ScoreBreakdown{
			TotalScore: 70,
			Breakdown:  model.ComponentScores{Sleep: 25, Exercise: 20, Steps: 15, Medication: 10},
			Rating:     model.RatingGood,
			Color:      "blue",
		},
		UpdatedAt: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestPostEntries(t *testing.T) {
	tracker := new(MockTracker)
	tracker.On("SaveEntry", mock.Anything, testUserID, "2024-03-15", mock.MatchedBy(func(m model.DailyMetrics) bool {
		return m.SleepHours == 8 && m.Exercise.Type == model.ExerciseCardio && m.Medications.Prescribed == nil &&
			m.Mood != nil && *m.Mood == model.MoodHappy
	})).Return(scoredEntry("2024-03-15"), nil)

	h := NewTrackerHandler(tracker, zap.NewNop())
	c, w := newTestContext(http.MethodPost, "/", `{
		"date": "2024-03-15",
		"metrics": {"sleep_hours": 8, "exercise": {"minutes": 30, "type": "cardio"}, "steps": 10000, "mood": "happy"}
	}`)

	h.PostApiV1UsersUserIdEntries(c, testUser)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entry := decode[api.HealthEntry](t, w)
	assert.Equal(t, "2024-03-15", entry.Date.String())
	assert.Equal(t, 70, entry.Score.TotalScore)
	assert.Equal(t, "Good", entry.Score.Rating)
	assert.Equal(t, 25, entry.Score.Breakdown.Sleep)
	tracker.AssertExpectations(t)
}

func TestPostEntries_DefaultsToToday(t *testing.T) {
	tracker := new(MockTracker)
	tracker.On("SaveEntry", mock.Anything, testUserID, "", mock.Anything).Return(scoredEntry("2024-03-15"), nil)

	h := NewTrackerHandler(tracker, zap.NewNop())
	c, w := newTestContext(http.MethodPost, "/", `{"metrics": {"sleep_hours": 7}}`)

	h.PostApiV1UsersUserIdEntries(c, testUser)

	assert.Equal(t, http.StatusOK, w.Code)
	tracker.AssertExpectations(t)
}

func TestPostEntries_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{name: "malformed body", body: `{"metrics": `, wantStatus: http.StatusBadRequest, wantCode: api.ErrorCodeValidation},
		{name: "bad date", body: `{"date": "15/03/2024", "metrics": {}}`, wantStatus: http.StatusBadRequest, wantCode: api.ErrorCodeValidation},
		{
			name:       "out of range metrics",
			body:       `{"metrics": {"sleep_hours": 30}}`,
			serviceErr: fmt.Errorf("%w: sleep hours must be between 0 and 12", service.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantCode:   api.ErrorCodeValidation,
		},
		{
			name:       "store failure",
			body:       `{"metrics": {}}`,
			serviceErr: errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   api.ErrorCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := new(MockTracker)
			if tt.serviceErr != nil {
				tracker.On("SaveEntry", mock.Anything, testUserID, mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			h := NewTrackerHandler(tracker, zap.NewNop())
			c, w := newTestContext(http.MethodPost, "/", tt.body)

			h.PostApiV1UsersUserIdEntries(c, testUser)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestGetEntries(t *testing.T) {
	tracker := new(MockTracker)
	tracker.On("LoadEntries", mock.Anything, testUserID).Return(map[string]model.HealthEntry{
		"2024-03-14": *scoredEntry("2024-03-14"),
		"2024-03-15": *scoredEntry("2024-03-15"),
	}, nil)

	h := NewTrackerHandler(tracker, zap.NewNop())
	c, w := newTestContext(http.MethodGet, "/", "")

	h.GetApiV1UsersUserIdEntries(c, testUser)

	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[map[string]api.HealthEntry](t, w)
	assert.Len(t, entries, 2)
	assert.Equal(t, "2024-03-14", entries["2024-03-14"].Date.String())
}

func TestGetEntryByDate_NotFound(t *testing.T) {
	tracker := new(MockTracker)
	tracker.On("GetEntry", mock.Anything, testUserID, "2024-01-01").Return(nil, service.ErrNotFound)

	h := NewTrackerHandler(tracker, zap.NewNop())
	c, w := newTestContext(http.MethodGet, "/", "")

	h.GetApiV1UsersUserIdEntriesDate(c, testUser, types.Date{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, api.ErrorCodeNotFound, errorCode(t, w))
}

func TestPostScoresPreview(t *testing.T) {
	tracker := new(MockTracker)
	tracker.On("PreviewScore", mock.Anything, "", mock.MatchedBy(func(m model.DailyMetrics) bool {
		return len(m.Medications.Prescribed) == 1 && len(m.Medications.Taken) == 1
	})).Return(model.ScoreBreakdown{TotalScore: 35, Rating: model.RatingNeedsImprovement, Color: "red"}, nil)

	h := NewTrackerHandler(tracker, zap.NewNop())
	c, w := newTestContext(http.MethodPost, "/", `{"metrics": {"medications": {"taken": ["Aspirin"], "prescribed": ["Aspirin"]}}}`)

	h.PostApiV1ScoresPreview(c)

	require.Equal(t, http.StatusOK, w.Code)
	score := decode[api.ScoreBreakdown](t, w)
	assert.Equal(t, 35, score.TotalScore)
	assert.Equal(t, "Needs Improvement", score.Rating)
}

func TestMedications(t *testing.T) {
	t.Run("list empty", func(t *testing.T) {
		tracker := new(MockTracker)
		tracker.On("ListPrescribedMedications", mock.Anything, testUserID).Return(nil, nil)

		h := NewTrackerHandler(tracker, zap.NewNop())
		c, w := newTestContext(http.MethodGet, "/", "")
		h.GetApiV1UsersUserIdMedications(c, testUser)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"medications": []}`, w.Body.String())
	})

	t.Run("add", func(t *testing.T) {
		tracker := new(MockTracker)
		tracker.On("AddPrescribedMedication", mock.Anything, testUserID, "Metformin").Return([]string{"Aspirin", "Metformin"}, nil)

		h := NewTrackerHandler(tracker, zap.NewNop())
		c, w := newTestContext(http.MethodPost, "/", `{"name": "Metformin"}`)
		h.PostApiV1UsersUserIdMedications(c, testUser)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Aspirin", "Metformin"}, decode[api.MedicationList](t, w).Medications)
	})

	t.Run("remove unknown", func(t *testing.T) {
		tracker := new(MockTracker)
		tracker.On("RemovePrescribedMedication", mock.Anything, testUserID, "Ibuprofen").Return(nil, service.ErrNotFound)

		h := NewTrackerHandler(tracker, zap.NewNop())
		c, w := newTestContext(http.MethodDelete, "/", "")
		h.DeleteApiV1UsersUserIdMedicationsName(c, testUser, "Ibuprofen")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
