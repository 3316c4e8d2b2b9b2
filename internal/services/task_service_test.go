package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/repository"
)

func patchOf(values map[string]interface{}) TaskPatch {
	patch := TaskPatch{}
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			panic(err)
		}
		patch[key] = raw
	}
	return patch
}

func (suite *ServiceTestSuite) reloadTask(id uint64) *models.Task {
	var task models.Task
	suite.Require().NoError(suite.db.First(&task, id).Error)
	return &task
}

func (suite *ServiceTestSuite) TestCreateTask_RoundTrip() {
	task, err := suite.tasks.CreateTask(suite.ctx, claimsFor(suite.manager), CreateTaskInput{
		Name:        "Quarterly report",
		Description: "Collect numbers",
		AssignedTo:  suite.alice.ID,
		Status:      "progress",
		DueDate:     "2026-11-30",
		IsUpcoming:  true,
	})
	suite.Require().NoError(err)

	stored, err := suite.tasks.GetTask(suite.ctx, claimsFor(suite.alice), task.ID)
	suite.Require().NoError(err)
	suite.Equal("Quarterly report", stored.Name)
	suite.Equal("Collect numbers", stored.Description)
	suite.Equal(suite.alice.ID, stored.AssignedTo)
	suite.Equal(suite.manager.ID, stored.AssignedBy)
	suite.Equal(models.TaskStatusProgress, stored.Status)
	suite.True(stored.IsUpcoming)
	suite.False(stored.Checked)
	suite.Require().NotNil(stored.DueDate)
	suite.Equal("2026-11-30", stored.DueDate.UTC().Format("2006-01-02"))

	listed, total, err := suite.tasks.ListTasks(suite.ctx, claimsFor(suite.alice), ListTasksInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(task.ID, listed[0].ID)
}

func (suite *ServiceTestSuite) TestCreateTask_DefaultsToWaiting() {
	task := suite.createTask("Inbox zero", suite.alice)
	suite.Equal(models.TaskStatusWaiting, task.Status)
	suite.False(task.Checked)
}

func (suite *ServiceTestSuite) TestCreateTask_Rejections() {
	_, err := suite.tasks.CreateTask(suite.ctx, claimsFor(suite.alice), CreateTaskInput{Name: "x", AssignedTo: suite.alice.ID})
	suite.requireKind(err, apierrors.KindForbidden)

	_, err = suite.tasks.CreateTask(suite.ctx, claimsFor(suite.manager), CreateTaskInput{Name: "x", AssignedTo: suite.alice.ID, Status: "done"})
	suite.ErrorIs(err, ErrInvalidStatus)

	_, err = suite.tasks.CreateTask(suite.ctx, claimsFor(suite.manager), CreateTaskInput{Name: "x", AssignedTo: 9999})
	suite.ErrorIs(err, ErrInvalidAssignee)

	_, err = suite.tasks.CreateTask(suite.ctx, claimsFor(suite.manager), CreateTaskInput{Name: "  ", AssignedTo: suite.alice.ID})
	suite.ErrorIs(err, ErrTaskNameRequired)

	_, err = suite.tasks.CreateTask(suite.ctx, claimsFor(suite.manager), CreateTaskInput{Name: "x", AssignedTo: suite.alice.ID, DueDate: "next week"})
	suite.ErrorIs(err, ErrInvalidDueDate)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Task{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestListTasks_NonPrivilegedSeesOnlyOwn() {
	suite.createTask("a1", suite.alice)
	suite.createTask("a2", suite.alice)
	suite.createTask("b1", suite.bob)

	tasks, total, err := suite.tasks.ListTasks(suite.ctx, claimsFor(suite.alice), ListTasksInput{AssignedTo: &suite.bob.ID})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	for _, task := range tasks {
		suite.Equal(suite.alice.ID, task.AssignedTo)
	}

	all, total, err := suite.tasks.ListTasks(suite.ctx, claimsFor(suite.manager), ListTasksInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(all, 3)

	bobs, _, err := suite.tasks.ListTasks(suite.ctx, claimsFor(suite.manager), ListTasksInput{AssignedTo: &suite.bob.ID})
	suite.Require().NoError(err)
	suite.Require().Len(bobs, 1)
	suite.Equal("b1", bobs[0].Name)

	_, _, err = suite.tasks.ListTasks(suite.ctx, claimsFor(suite.manager), ListTasksInput{Status: "finished"})
	suite.ErrorIs(err, ErrInvalidStatus)
}

func (suite *ServiceTestSuite) TestGetTask_Access() {
	task := suite.createTask("private", suite.alice)

	_, err := suite.tasks.GetTask(suite.ctx, claimsFor(suite.bob), task.ID)
	suite.ErrorIs(err, ErrTaskForbidden)

	_, err = suite.tasks.GetTask(suite.ctx, claimsFor(suite.bob), task.ID+100)
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.tasks.GetTask(suite.ctx, claimsFor(suite.manager), task.ID)
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestAuditScenario() {
	audit, err := suite.tasks.CreateTask(suite.ctx, claimsFor(suite.manager), CreateTaskInput{
		Name:       "Audit",
		AssignedTo: suite.alice.ID,
		Status:     "waiting",
	})
	suite.Require().NoError(err)
	suite.Equal(suite.manager.ID, audit.AssignedBy)
	suite.False(audit.Checked)

	updated, err := suite.tasks.UpdateTask(suite.ctx, claimsFor(suite.alice), audit.ID, patchOf(map[string]interface{}{"checked": true}))
	suite.Require().NoError(err)
	suite.True(updated.Checked)
	suite.Equal(models.TaskStatusWaiting, updated.Status)

	before := suite.reloadTask(audit.ID)
	_, err = suite.tasks.UpdateTask(suite.ctx, claimsFor(suite.bob), audit.ID, patchOf(map[string]interface{}{"checked": false}))
	suite.requireKind(err, apierrors.KindForbidden)
	suite.Equal(before, suite.reloadTask(audit.ID))
}

func (suite *ServiceTestSuite) TestUpdateTask_Idempotent() {
	task := suite.createTask("Ship release", suite.alice)
	approve := patchOf(map[string]interface{}{"status": "approved"})

	once, err := suite.tasks.UpdateTask(suite.ctx, claimsFor(suite.alice), task.ID, approve)
	suite.Require().NoError(err)
	afterOnce := suite.reloadTask(task.ID)

	twice, err := suite.tasks.UpdateTask(suite.ctx, claimsFor(suite.alice), task.ID, approve)
	suite.Require().NoError(err)
	afterTwice := suite.reloadTask(task.ID)

	suite.Equal(models.TaskStatusApproved, once.Status)
	suite.Equal(once.Status, twice.Status)
	suite.Equal(afterOnce.Status, afterTwice.Status)
	suite.Equal(afterOnce.Checked, afterTwice.Checked)
	suite.Equal(afterOnce.Name, afterTwice.Name)
}

// interleavedTaskRepo runs afterRead once, between the service reading a
// task and writing its patch.
type interleavedTaskRepo struct {
	repository.TaskRepository
	afterRead func()
}

func (r *interleavedTaskRepo) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := r.TaskRepository.FindByID(ctx, id)
	if r.afterRead != nil {
		run := r.afterRead
		r.afterRead = nil
		run()
	}
	return task, err
}

func (suite *ServiceTestSuite) TestUpdateTask_KeepsConcurrentChanges() {
	task := suite.createTask("Audit", suite.alice)

	repo := &interleavedTaskRepo{TaskRepository: repository.NewTaskRepository(suite.db)}
	repo.afterRead = func() {
		_, err := suite.tasks.UpdateTask(suite.ctx, claimsFor(suite.manager), task.ID, patchOf(map[string]interface{}{"status": "approved"}))
		suite.Require().NoError(err)
	}
	assignee := NewTaskService(repo, suite.userRepo, fixedEstimator{score: 7})

	updated, err := assignee.UpdateTask(suite.ctx, claimsFor(suite.alice), task.ID, patchOf(map[string]interface{}{"checked": true}))
	suite.Require().NoError(err)
	suite.True(updated.Checked)
	suite.Equal(models.TaskStatusApproved, updated.Status)

	stored := suite.reloadTask(task.ID)
	suite.True(stored.Checked)
	suite.Equal(models.TaskStatusApproved, stored.Status)

	repo.afterRead = func() {
		_, err := suite.tasks.UpdateTask(suite.ctx, claimsFor(suite.manager), task.ID, patchOf(map[string]interface{}{"name": "Annual audit"}))
		suite.Require().NoError(err)
	}
	estimated, err := assignee.EstimateLoad(suite.ctx, claimsFor(suite.alice), task.ID)
	suite.Require().NoError(err)
	suite.Equal(7, *estimated.CognitiveLoadEstimate)
	suite.Equal("Annual audit", suite.reloadTask(task.ID).Name)
}

func (suite *ServiceTestSuite) TestUpdateTask_KeyNormalisation() {
	task := suite.createTask("Plan offsite", suite.alice)

	updated, err := suite.tasks.UpdateTask(suite.ctx, claimsFor(suite.manager), task.ID, patchOf(map[string]interface{}{
		"IS_UPCOMING": true,
		"dueDate":     "2026-12-01T09:30:00Z",
		"Assigned_To": suite.bob.ID,
		"NAME":        "Plan the offsite",
	}))
	suite.Require().NoError(err)

	stored := suite.reloadTask(task.ID)
	suite.True(updated.IsUpcoming)
	suite.True(stored.IsUpcoming)
	suite.Equal(suite.bob.ID, stored.AssignedTo)
	suite.Equal("Plan the offsite", stored.Name)
	suite.Require().NotNil(stored.DueDate)
	suite.True(time.Date(2026, 12, 1, 9, 30, 0, 0, time.UTC).Equal(*stored.DueDate))
}

func (suite *ServiceTestSuite) TestUpdateTask_Rejections() {
	task := suite.createTask("Write docs", suite.alice)
	before := suite.reloadTask(task.ID)

	cases := []struct {
		name   string
		caller *models.User
		patch  TaskPatch
		kind   apierrors.Kind
	}{
		{"unknown key", suite.manager, patchOf(map[string]interface{}{"priority": 1}), apierrors.KindValidation},
		{"assignee renames", suite.alice, patchOf(map[string]interface{}{"name": "renamed"}), apierrors.KindForbidden},
		{"assignee reassigns", suite.alice, patchOf(map[string]interface{}{"status": "review", "assigned_to": suite.bob.ID}), apierrors.KindForbidden},
		{"bad status", suite.alice, patchOf(map[string]interface{}{"status": "done"}), apierrors.KindValidation},
		{"wrong type", suite.alice, patchOf(map[string]interface{}{"checked": "yes"}), apierrors.KindValidation},
		{"missing assignee", suite.manager, patchOf(map[string]interface{}{"assignedTo": 4242}), apierrors.KindValidation},
		{"empty patch", suite.manager, TaskPatch{}, apierrors.KindValidation},
	}

	for _, tc := range cases {
		_, err := suite.tasks.UpdateTask(suite.ctx, claimsFor(tc.caller), task.ID, tc.patch)
		suite.Require().Error(err, tc.name)
		suite.Equal(tc.kind, apierrors.KindOf(err), tc.name)
		suite.Equal(before, suite.reloadTask(task.ID), tc.name)
	}

	_, err := suite.tasks.UpdateTask(suite.ctx, claimsFor(suite.manager), task.ID+100, patchOf(map[string]interface{}{"checked": true}))
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestUpdateTask_ClearDueDate() {
	task, err := suite.tasks.CreateTask(suite.ctx, claimsFor(suite.manager), CreateTaskInput{
		Name:       "Renew badge",
		AssignedTo: suite.alice.ID,
		DueDate:    "2026-10-01",
	})
	suite.Require().NoError(err)

	_, err = suite.tasks.UpdateTask(suite.ctx, claimsFor(suite.manager), task.ID, TaskPatch{"due_date": json.RawMessage(`null`)})
	suite.Require().NoError(err)
	suite.Nil(suite.reloadTask(task.ID).DueDate)
}

func (suite *ServiceTestSuite) TestDeleteTask() {
	task := suite.createTask("Obsolete", suite.alice)

	suite.ErrorIs(suite.tasks.DeleteTask(suite.ctx, claimsFor(suite.alice), task.ID), ErrTaskDeleteForbidden)
	suite.Require().NoError(suite.tasks.DeleteTask(suite.ctx, claimsFor(suite.manager), task.ID))
	suite.ErrorIs(suite.tasks.DeleteTask(suite.ctx, claimsFor(suite.manager), task.ID), ErrTaskNotFound)

	_, err := suite.tasks.GetTask(suite.ctx, claimsFor(suite.manager), task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestEstimateLoad() {
	task := suite.createTask("Migrate database", suite.alice)

	estimated, err := suite.tasks.EstimateLoad(suite.ctx, claimsFor(suite.alice), task.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(estimated.CognitiveLoadEstimate)
	suite.Equal(4, *estimated.CognitiveLoadEstimate)
	suite.Equal(4, *suite.reloadTask(task.ID).CognitiveLoadEstimate)

	_, err = suite.tasks.EstimateLoad(suite.ctx, claimsFor(suite.bob), task.ID)
	suite.ErrorIs(err, ErrTaskForbidden)
}

func (suite *ServiceTestSuite) TestEstimateLoad_ClampsAndFallsBack() {
	task := suite.createTask("Migrate database", suite.alice)
	taskRepo := repository.NewTaskRepository(suite.db)

	high := NewTaskService(taskRepo, suite.userRepo, fixedEstimator{score: 42})
	estimated, err := high.EstimateLoad(suite.ctx, claimsFor(suite.manager), task.ID)
	suite.Require().NoError(err)
	suite.Equal(10, *estimated.CognitiveLoadEstimate)

	failing := NewTaskService(taskRepo, suite.userRepo, fixedEstimator{err: errors.New("upstream unavailable")})
	estimated, err = failing.EstimateLoad(suite.ctx, claimsFor(suite.manager), task.ID)
	suite.Require().NoError(err)
	suite.GreaterOrEqual(*estimated.CognitiveLoadEstimate, 1)
	suite.LessOrEqual(*estimated.CognitiveLoadEstimate, 10)
}
