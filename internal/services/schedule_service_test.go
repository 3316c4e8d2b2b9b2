package services

import (
	"time"

	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/models"
)

func (suite *ServiceTestSuite) TestCreateSchedule_UnknownMemberPersistsNothing() {
	_, err := suite.schedules.CreateSchedule(suite.ctx, claimsFor(suite.manager), CreateScheduleInput{
		Name:    "Standup",
		Time:    "09:00-09:15",
		Members: []uint64{suite.alice.ID, 9999},
	})
	suite.requireKind(err, apierrors.KindValidation)
	suite.ErrorIs(err, ErrInvalidScheduleMember)

	var schedules, members int64
	suite.Require().NoError(suite.db.Model(&models.Schedule{}).Count(&schedules).Error)
	suite.Require().NoError(suite.db.Model(&models.ScheduleMember{}).Count(&members).Error)
	suite.Zero(schedules)
	suite.Zero(members)
}

func (suite *ServiceTestSuite) TestCreateSchedule() {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	end := start.Add(15 * time.Minute)

	schedule, err := suite.schedules.CreateSchedule(suite.ctx, claimsFor(suite.manager), CreateScheduleInput{
		Name:    "Standup",
		Time:    "09:00-09:15",
		StartAt: &start,
		EndAt:   &end,
		Color:   "teal",
		Members: []uint64{suite.alice.ID, suite.bob.ID, suite.alice.ID},
	})
	suite.Require().NoError(err)
	suite.Equal(suite.manager.ID, schedule.CreatedBy)
	suite.Len(schedule.Members, 2)

	_, err = suite.schedules.CreateSchedule(suite.ctx, claimsFor(suite.alice), CreateScheduleInput{Name: "Mine"})
	suite.ErrorIs(err, ErrScheduleManageForbidden)

	_, err = suite.schedules.CreateSchedule(suite.ctx, claimsFor(suite.manager), CreateScheduleInput{
		Name:    "Backwards",
		StartAt: &end,
		EndAt:   &start,
	})
	suite.ErrorIs(err, ErrInvalidTimeRange)
}

func (suite *ServiceTestSuite) TestListSchedules_FilteredByMembership() {
	standup, err := suite.schedules.CreateSchedule(suite.ctx, claimsFor(suite.manager), CreateScheduleInput{
		Name:    "Standup",
		Members: []uint64{suite.alice.ID, suite.bob.ID},
	})
	suite.Require().NoError(err)
	oneOnOne, err := suite.schedules.CreateSchedule(suite.ctx, claimsFor(suite.manager), CreateScheduleInput{
		Name:    "1:1",
		Members: []uint64{suite.alice.ID},
	})
	suite.Require().NoError(err)

	forBob, total, err := suite.schedules.ListSchedules(suite.ctx, claimsFor(suite.bob), 1, 20)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Require().Len(forBob, 1)
	suite.Equal(standup.ID, forBob[0].ID)

	forManager, total, err := suite.schedules.ListSchedules(suite.ctx, claimsFor(suite.manager), 1, 20)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(forManager, 2)

	_, err = suite.schedules.GetSchedule(suite.ctx, claimsFor(suite.bob), oneOnOne.ID)
	suite.ErrorIs(err, ErrScheduleForbidden)
	got, err := suite.schedules.GetSchedule(suite.ctx, claimsFor(suite.alice), oneOnOne.ID)
	suite.Require().NoError(err)
	suite.Equal("1:1", got.Name)
}

func (suite *ServiceTestSuite) TestDeleteSchedule() {
	schedule, err := suite.schedules.CreateSchedule(suite.ctx, claimsFor(suite.manager), CreateScheduleInput{
		Name:    "Retro",
		Members: []uint64{suite.alice.ID},
	})
	suite.Require().NoError(err)

	suite.ErrorIs(suite.schedules.DeleteSchedule(suite.ctx, claimsFor(suite.alice), schedule.ID), ErrScheduleManageForbidden)
	suite.Require().NoError(suite.schedules.DeleteSchedule(suite.ctx, claimsFor(suite.manager), schedule.ID))
	suite.ErrorIs(suite.schedules.DeleteSchedule(suite.ctx, claimsFor(suite.manager), schedule.ID), ErrScheduleNotFound)

	_, err = suite.schedules.GetSchedule(suite.ctx, claimsFor(suite.manager), schedule.ID)
	suite.ErrorIs(err, ErrScheduleNotFound)
}
