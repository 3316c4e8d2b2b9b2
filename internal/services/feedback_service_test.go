package services

import (
	"time"

	apierrors "github.com/cognisync/cognisync-api/internal/errors"
)

func intPtr(v int) *int {
	return &v
}

func (suite *ServiceTestSuite) TestFeedback() {
	mine, err := suite.feedback.CreateFeedback(suite.ctx, claimsFor(suite.alice), CreateFeedbackInput{
		MoodScore:            7,
		SensoryOverloadEvent: true,
		CognitiveLoad:        intPtr(6),
		Notes:                " noisy office ",
	})
	suite.Require().NoError(err)
	suite.Equal(suite.alice.ID, mine.UserID)
	suite.Equal("noisy office", mine.Notes)

	_, err = suite.feedback.CreateFeedback(suite.ctx, claimsFor(suite.bob), CreateFeedbackInput{MoodScore: 3})
	suite.Require().NoError(err)

	_, err = suite.feedback.CreateFeedback(suite.ctx, claimsFor(suite.bob), CreateFeedbackInput{MoodScore: 11})
	suite.ErrorIs(err, ErrInvalidMoodScore)
	_, err = suite.feedback.CreateFeedback(suite.ctx, claimsFor(suite.bob), CreateFeedbackInput{MoodScore: 5, CognitiveLoad: intPtr(0)})
	suite.ErrorIs(err, ErrInvalidLoadScore)

	suite.Run("non-privileged list is own only", func() {
		logs, total, err := suite.feedback.ListFeedback(suite.ctx, claimsFor(suite.alice), ListFeedbackInput{UserID: &suite.bob.ID})
		suite.Require().NoError(err)
		suite.Equal(int64(1), total)
		suite.Equal(suite.alice.ID, logs[0].UserID)
	})

	suite.Run("privileged list can filter", func() {
		_, total, err := suite.feedback.ListFeedback(suite.ctx, claimsFor(suite.manager), ListFeedbackInput{})
		suite.Require().NoError(err)
		suite.Equal(int64(2), total)

		logs, _, err := suite.feedback.ListFeedback(suite.ctx, claimsFor(suite.manager), ListFeedbackInput{UserID: &suite.bob.ID})
		suite.Require().NoError(err)
		suite.Require().Len(logs, 1)
		suite.Equal(suite.bob.ID, logs[0].UserID)
	})

	suite.Run("get enforces ownership", func() {
		_, err := suite.feedback.GetFeedback(suite.ctx, claimsFor(suite.bob), mine.ID)
		suite.ErrorIs(err, ErrFeedbackForbidden)
		_, err = suite.feedback.GetFeedback(suite.ctx, claimsFor(suite.manager), mine.ID)
		suite.NoError(err)
		_, err = suite.feedback.GetFeedback(suite.ctx, claimsFor(suite.alice), mine.ID+100)
		suite.ErrorIs(err, ErrFeedbackNotFound)
	})
}

func (suite *ServiceTestSuite) TestAnalytics() {
	for _, entry := range []CreateFeedbackInput{
		{MoodScore: 4},
		{MoodScore: 6, SensoryOverloadEvent: true},
		{MoodScore: 8},
	} {
		_, err := suite.feedback.CreateFeedback(suite.ctx, claimsFor(suite.alice), entry)
		suite.Require().NoError(err)
	}

	analytics, err := suite.users.Analytics(suite.ctx, claimsFor(suite.alice), suite.alice.ID)
	suite.Require().NoError(err)
	suite.Equal([]int{4, 6, 8}, analytics.CognitiveTrend)
	suite.Equal([]bool{false, true, false}, analytics.SensoryEvents)

	_, err = suite.users.Analytics(suite.ctx, claimsFor(suite.bob), suite.alice.ID)
	suite.ErrorIs(err, ErrProfileForbidden)

	empty, err := suite.users.Analytics(suite.ctx, claimsFor(suite.manager), suite.bob.ID)
	suite.Require().NoError(err)
	suite.Empty(empty.CognitiveTrend)
}

func (suite *ServiceTestSuite) TestUpdateProfile() {
	email := "alice@example.com"
	first := " Alice "
	updated, err := suite.users.UpdateProfile(suite.ctx, claimsFor(suite.alice), suite.alice.ID, UpdateProfileInput{
		Email:     &email,
		FirstName: &first,
	})
	suite.Require().NoError(err)
	suite.Equal("Alice", updated.FirstName)
	suite.Equal(email, *updated.Email)
	suite.Equal("alice", updated.Username)

	_, err = suite.users.UpdateProfile(suite.ctx, claimsFor(suite.bob), suite.alice.ID, UpdateProfileInput{FirstName: &first})
	suite.requireKind(err, apierrors.KindForbidden)

	_, err = suite.users.UpdateProfile(suite.ctx, claimsFor(suite.bob), suite.bob.ID, UpdateProfileInput{Email: &email})
	suite.requireKind(err, apierrors.KindConflict)

	_, err = suite.users.GetProfile(suite.ctx, claimsFor(suite.manager), 9999)
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestCalendar() {
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	count, err := suite.calendar.Sync(suite.ctx, claimsFor(suite.alice), "Google", []SyncEvent{
		{ExternalID: "evt-1", Title: "Standup", StartAt: start, EndAt: &end},
		{ExternalID: "evt-2", Title: "Lunch", StartAt: start.Add(3 * time.Hour)},
		{ExternalID: "evt-1", Title: "Daily standup", StartAt: start, EndAt: &end},
	})
	suite.Require().NoError(err)
	suite.Equal(2, count)

	events, err := suite.calendar.ListEvents(suite.ctx, claimsFor(suite.alice), suite.alice.ID, nil, nil)
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)
	suite.Equal("Daily standup", events[0].Title)
	suite.Equal("google", events[0].Source)

	_, err = suite.calendar.ListEvents(suite.ctx, claimsFor(suite.bob), suite.alice.ID, nil, nil)
	suite.ErrorIs(err, ErrCalendarForbidden)

	to := start
	from := start.Add(time.Hour)
	_, err = suite.calendar.ListEvents(suite.ctx, claimsFor(suite.alice), suite.alice.ID, &from, &to)
	suite.ErrorIs(err, ErrInvalidTimeRange)

	_, err = suite.calendar.Sync(suite.ctx, claimsFor(suite.alice), "", nil)
	suite.ErrorIs(err, ErrSourceRequired)
	_, err = suite.calendar.Sync(suite.ctx, claimsFor(suite.alice), "google", []SyncEvent{{ExternalID: "x"}})
	suite.ErrorIs(err, ErrInvalidCalendarRow)

	suite.ErrorIs(suite.calendar.DeleteEvent(suite.ctx, claimsFor(suite.bob), events[0].ID), ErrCalendarForbidden)
	suite.Require().NoError(suite.calendar.DeleteEvent(suite.ctx, claimsFor(suite.alice), events[0].ID))
	suite.ErrorIs(suite.calendar.DeleteEvent(suite.ctx, claimsFor(suite.alice), events[0].ID), ErrEventNotFound)
}
