package services

import apierrors "github.com/cognisync/cognisync-api/internal/errors"

var (
	ErrInvalidCredentials = apierrors.New(apierrors.KindAuth, "invalid credentials")
	ErrInvalidUsername    = apierrors.New(apierrors.KindValidation, "username must be 3-30 characters of letters, digits, '.' or '_'")
	ErrPasswordRequired   = apierrors.New(apierrors.KindValidation, "password is required")
	ErrPasswordTooLong    = apierrors.New(apierrors.KindValidation, "password must be at most 72 bytes")
	ErrInvalidRole        = apierrors.New(apierrors.KindValidation, "role must be one of user, employee, manager, admin")
	ErrIdentityTaken      = apierrors.New(apierrors.KindConflict, "username or email already exists")
	ErrUserNotFound       = apierrors.New(apierrors.KindNotFound, "user not found")
	ErrProfileForbidden   = apierrors.New(apierrors.KindForbidden, "cannot access another user's profile")

	ErrTaskNotFound        = apierrors.New(apierrors.KindNotFound, "task not found")
	ErrTaskForbidden       = apierrors.New(apierrors.KindForbidden, "task is not assigned to you")
	ErrTaskCreateForbidden = apierrors.New(apierrors.KindForbidden, "only managers and admins can create tasks")
	ErrTaskDeleteForbidden = apierrors.New(apierrors.KindForbidden, "only managers and admins can delete tasks")
	ErrTaskNameRequired    = apierrors.New(apierrors.KindValidation, "name is required")
	ErrInvalidStatus       = apierrors.New(apierrors.KindValidation, "status must be one of waiting, progress, review, approved")
	ErrAssigneeRequired    = apierrors.New(apierrors.KindValidation, "assigned_to is required")
	ErrInvalidAssignee     = apierrors.New(apierrors.KindValidation, "assigned_to does not reference an existing user")
	ErrInvalidDueDate      = apierrors.New(apierrors.KindValidation, "due_date must be YYYY-MM-DD or RFC3339")
	ErrEmptyPatch          = apierrors.New(apierrors.KindValidation, "no fields to update")

	ErrScheduleNotFound        = apierrors.New(apierrors.KindNotFound, "schedule not found")
	ErrScheduleForbidden       = apierrors.New(apierrors.KindForbidden, "you are not a member of this schedule")
	ErrScheduleManageForbidden = apierrors.New(apierrors.KindForbidden, "only managers and admins can manage schedules")
	ErrScheduleNameRequired    = apierrors.New(apierrors.KindValidation, "name is required")
	ErrInvalidScheduleMember   = apierrors.New(apierrors.KindValidation, "one or more members do not exist")
	ErrInvalidTimeRange        = apierrors.New(apierrors.KindValidation, "end must not be before start")

	ErrFeedbackNotFound   = apierrors.New(apierrors.KindNotFound, "feedback not found")
	ErrFeedbackForbidden  = apierrors.New(apierrors.KindForbidden, "feedback belongs to another user")
	ErrInvalidMoodScore   = apierrors.New(apierrors.KindValidation, "mood_score must be between 0 and 10")
	ErrInvalidLoadScore   = apierrors.New(apierrors.KindValidation, "cognitive_load must be between 1 and 10")
	ErrCalendarForbidden  = apierrors.New(apierrors.KindForbidden, "calendar belongs to another user")
	ErrEventNotFound      = apierrors.New(apierrors.KindNotFound, "calendar event not found")
	ErrSourceRequired     = apierrors.New(apierrors.KindValidation, "source is required")
	ErrInvalidCalendarRow = apierrors.New(apierrors.KindValidation, "every event needs external_id, title and start_at")

	ErrLengthMismatch    = apierrors.New(apierrors.KindValidation, "tasks and cognitive_loads must have the same length")
	ErrNoSensoryReadings = apierrors.New(apierrors.KindValidation, "sensory_sensitivity must not be empty")
)
