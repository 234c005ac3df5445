package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"work-tracker/internal/domain"
	"work-tracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateTask(t *testing.T) {
	env := setupServices(t)
	due := time.Date(2024, 4, 30, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		actor          func() domain.Actor
		input          func() CreateTaskInput
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:  "should create task with every reference in the organization",
			actor: func() domain.Actor { return env.reporter },
			input: func() CreateTaskInput {
				return CreateTaskInput{
					Name:         "Draft floor plan",
					Description:  "Ground floor",
					ProjectStage: "STAGE_02",
					Priority:     "high",
					DueDate:      &due,
					ProjectID:    &env.project,
					AssigneeID:   &env.assignee.UserID,
					CheckerID:    &env.checker.UserID,
				}
			},
		},
		{
			name:  "should create standalone task without project",
			actor: func() domain.Actor { return env.member },
			input: func() CreateTaskInput {
				return CreateTaskInput{Name: "Standalone", ProjectStage: "STAGE_01_PREPARATION_BRIEF"}
			},
		},
		{
			name:  "should return invalid argument for empty name",
			actor: func() domain.Actor { return env.reporter },
			input: func() CreateTaskInput { return CreateTaskInput{Name: "   ", ProjectStage: "STAGE_02"} },
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
				assert.Contains(t, err.Error(), "name")
			},
		},
		{
			name:  "should return invalid argument for unknown stage",
			actor: func() domain.Actor { return env.reporter },
			input: func() CreateTaskInput { return CreateTaskInput{Name: "Task", ProjectStage: "STAGE_99"} },
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
				assert.Contains(t, err.Error(), "project_stage")
			},
		},
		{
			name:  "should return invalid argument for project of another organization",
			actor: func() domain.Actor { return env.reporter },
			input: func() CreateTaskInput {
				return CreateTaskInput{Name: "Task", ProjectStage: "STAGE_02", ProjectID: &env.foreignProject}
			},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
				assert.Contains(t, err.Error(), "not in your organization")
			},
		},
		{
			name:  "should return invalid argument for assignee of another organization",
			actor: func() domain.Actor { return env.reporter },
			input: func() CreateTaskInput {
				return CreateTaskInput{Name: "Task", ProjectStage: "STAGE_02", AssigneeID: &env.outsider.UserID}
			},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
			},
		},
		{
			name:  "should return invalid argument for unknown checker",
			actor: func() domain.Actor { return env.reporter },
			input: func() CreateTaskInput {
				return CreateTaskInput{Name: "Task", ProjectStage: "STAGE_02", CheckerID: int64p(999)}
			},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
				assert.Contains(t, err.Error(), "999")
			},
		},
		{
			name:  "should return forbidden for actor without organization",
			actor: func() domain.Actor { return env.loner },
			input: func() CreateTaskInput { return CreateTaskInput{Name: "Task", ProjectStage: "STAGE_02"} },
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeForbidden)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			actor := tt.actor()
			input := tt.input()

			// Act
			result, err := env.services.TaskService.CreateTask(ctx, actor, input)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Greater(t, result.ID, int64(0))
			assert.Equal(t, domain.StatusToDo, result.Status)
			assert.Equal(t, actor.UserID, result.ReporterID)
			assert.Equal(t, env.clock.Now(), result.CreatedAt)

			stored := env.storedTask(t, result.ID)
			assert.Equal(t, *result, stored)
		})
	}
}

func TestTaskService_CreateTask_Defaults(t *testing.T) {
	// Arrange
	env := setupServices(t)
	due := time.Date(2024, 4, 30, 15, 30, 0, 0, time.UTC)

	// Act
	task, err := env.services.TaskService.CreateTask(context.Background(), env.reporter, CreateTaskInput{
		Name:         "  Survey site  ",
		ProjectStage: "stage_05",
		DueDate:      &due,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Survey site", task.Name)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.StageConstruction, task.ProjectStage)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), *task.DueDate)
	assert.True(t, task.IsStandalone())
	assert.Equal(t, 1.0, counterValue(t, env, "work_tracker_task_operations_total", "operation", "create"))

	entry := env.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "task created", entry.Message)
	assert.Equal(t, true, entry.Data["standalone"])
}

func TestCompletedStatuses(t *testing.T) {
	assert.Equal(t, []string{"DONE", "CHECKED"}, completedStatuses())
}

func TestTaskService_GetTask(t *testing.T) {
	env := setupServices(t)
	task := env.createTask(t, "Visible")

	tests := []struct {
		name           string
		actor          domain.Actor
		id             int64
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:  "should return task to a member of the organization",
			actor: env.member,
			id:    task.ID,
		},
		{
			name:  "should return not found to another organization",
			actor: env.outsider,
			id:    task.ID,
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeNotFound)
			},
		},
		{
			name:  "should return not found for non-existent task",
			actor: env.member,
			id:    999,
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeNotFound)
			},
		},
		{
			name:  "should return invalid argument for invalid ID",
			actor: env.member,
			id:    0,
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
				assert.Contains(t, err.Error(), "task_id")
			},
		},
		{
			name:  "should return forbidden to actor without organization",
			actor: env.loner,
			id:    task.ID,
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeForbidden)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			result, err := env.services.TaskService.GetTask(context.Background(), tt.actor, tt.id)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *task, *result)
		})
	}
}

func TestTaskService_CheckFlow(t *testing.T) {
	// Arrange
	env := setupServices(t)
	ctx := context.Background()
	tasks := env.services.TaskService

	task := env.createTask(t, "Draft floor plan")
	require.Equal(t, domain.StatusToDo, task.Status)

	// Act & Assert: the assignee finishes the work
	env.clock.Set(env.clock.Now().Add(time.Hour))
	done, err := tasks.SetStatus(ctx, env.assignee, task.ID, "DONE")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, done.Status)
	assert.True(t, done.UpdatedAt.After(task.UpdatedAt))

	// the assignee may not check it
	_, err = tasks.MarkCompletedAndChecked(ctx, env.assignee, task.ID)
	assertErrorType(t, err, errors.ErrorTypeUnauthorized)
	assert.Equal(t, domain.StatusDone, env.storedTask(t, task.ID).Status)

	// the checker may
	checked, err := tasks.MarkCompletedAndChecked(ctx, env.checker, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusChecked, checked.Status)

	// checking again fails on the status, whoever asks
	_, err = tasks.MarkCompletedAndChecked(ctx, env.assignee, task.ID)
	assertErrorType(t, err, errors.ErrorTypeInvalidState)
	_, err = tasks.MarkCompletedAndChecked(ctx, env.checker, task.ID)
	assertErrorType(t, err, errors.ErrorTypeInvalidState)

	assert.Equal(t, *checked, env.storedTask(t, task.ID))
	assert.Equal(t, 1.0, counterValue(t, env, "work_tracker_task_operations_total", "operation", "check"))
}

func TestTaskService_MarkCompletedAndChecked(t *testing.T) {
	tests := []struct {
		name           string
		status         string
		noChecker      bool
		actor          func(env *testEnv) domain.Actor
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:   "should check a done task as checker",
			status: "DONE",
			actor:  func(env *testEnv) domain.Actor { return env.checker },
		},
		{
			name:   "should return invalid state when task is in progress",
			status: "IN_PROGRESS",
			actor:  func(env *testEnv) domain.Actor { return env.checker },
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidState)
				assert.Contains(t, err.Error(), "IN_PROGRESS")
			},
		},
		{
			name:   "should return unauthorized for reporter on a done task",
			status: "DONE",
			actor:  func(env *testEnv) domain.Actor { return env.reporter },
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeUnauthorized)
			},
		},
		{
			name:   "should return not found for another organization",
			status: "DONE",
			actor:  func(env *testEnv) domain.Actor { return env.outsider },
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeNotFound)
			},
		},
		{
			name:      "should return unauthorized for a done task without a checker",
			status:    "DONE",
			noChecker: true,
			actor:     func(env *testEnv) domain.Actor { return env.reporter },
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeUnauthorized)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			env := setupServices(t)
			ctx := context.Background()
			task := env.createTask(t, "Inspect")
			if tt.noChecker {
				var err error
				task, err = env.services.TaskService.CreateTask(ctx, env.reporter, CreateTaskInput{
					Name:         "Inspect",
					ProjectStage: "STAGE_02",
					AssigneeID:   &env.assignee.UserID,
				})
				require.NoError(t, err)
				require.Nil(t, task.CheckerID)
			}
			_, err := env.services.TaskService.SetStatus(ctx, env.assignee, task.ID, tt.status)
			require.NoError(t, err)
			before := env.storedTask(t, task.ID)

			// Act
			result, err := env.services.TaskService.MarkCompletedAndChecked(ctx, tt.actor(env), task.ID)

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				assert.Equal(t, before, env.storedTask(t, task.ID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusChecked, env.storedTask(t, task.ID).Status)
		})
	}
}

func TestTaskService_SetStatus(t *testing.T) {
	t.Run("should reject a user without a role and leave the task unchanged", func(t *testing.T) {
		// Arrange
		env := setupServices(t)
		task := env.createTask(t, "Guarded")
		before := env.storedTask(t, task.ID)

		// Act
		result, err := env.services.TaskService.SetStatus(context.Background(), env.member, task.ID, "IN_PROGRESS")

		// Assert
		assertErrorType(t, err, errors.ErrorTypeForbidden)
		assert.Nil(t, result)
		assert.Equal(t, before, env.storedTask(t, task.ID))

		events := env.securityEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "authorization_denied", events[0].Data["event"])
		assert.Equal(t, "set_status", events[0].Data["operation"])
		assert.Equal(t, env.member.UserID, events[0].Data["user_id"])
		assert.Equal(t, "none", events[0].Data["roles"])
	})

	t.Run("should allow arbitrary jumps including checked back to to do", func(t *testing.T) {
		// Arrange
		env := setupServices(t)
		ctx := context.Background()
		task := env.createTask(t, "Reopened")
		_, err := env.services.TaskService.SetStatus(ctx, env.reporter, task.ID, "DONE")
		require.NoError(t, err)
		_, err = env.services.TaskService.MarkCompletedAndChecked(ctx, env.checker, task.ID)
		require.NoError(t, err)

		// Act
		result, err := env.services.TaskService.SetStatus(ctx, env.checker, task.ID, "to_do")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, domain.StatusToDo, result.Status)

		var transition map[string]interface{}
		for _, entry := range env.hook.AllEntries() {
			if entry.Message == "task updated" {
				transition = entry.Data
			}
		}
		require.NotNil(t, transition)
		assert.Equal(t, domain.StatusChecked, transition["from"])
		assert.Equal(t, domain.StatusToDo, transition["to"])
	})

	t.Run("should return invalid argument for unknown status from a role holder", func(t *testing.T) {
		// Arrange
		env := setupServices(t)
		task := env.createTask(t, "Typo")

		// Act
		_, err := env.services.TaskService.SetStatus(context.Background(), env.assignee, task.ID, "FINISHED")

		// Assert
		assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
		assert.Equal(t, domain.StatusToDo, env.storedTask(t, task.ID).Status)
	})
}

func TestTaskService_UpdateTaskFields(t *testing.T) {
	validInput := func(env *testEnv) UpdateTaskInput {
		return UpdateTaskInput{
			Name:         "Revised plan",
			Description:  "Both floors",
			ProjectStage: "STAGE_03",
			Status:       "IN_REVIEW",
			Priority:     "URGENT",
			AssigneeID:   &env.member.UserID,
			CheckerID:    &env.checker.UserID,
		}
	}

	tests := []struct {
		name           string
		actor          func(env *testEnv) domain.Actor
		input          func(env *testEnv) UpdateTaskInput
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:  "should replace every field as checker",
			actor: func(env *testEnv) domain.Actor { return env.checker },
			input: validInput,
		},
		{
			name:  "should return forbidden for user without a role",
			actor: func(env *testEnv) domain.Actor { return env.member },
			input: validInput,
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeForbidden)
			},
		},
		{
			name:  "should return forbidden before validating input of a user without a role",
			actor: func(env *testEnv) domain.Actor { return env.member },
			input: func(env *testEnv) UpdateTaskInput {
				in := validInput(env)
				in.Status = "BOGUS"
				return in
			},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeForbidden)
			},
		},
		{
			name:  "should reject the whole update when one enum is invalid",
			actor: func(env *testEnv) domain.Actor { return env.assignee },
			input: func(env *testEnv) UpdateTaskInput {
				in := validInput(env)
				in.Priority = "CRITICAL"
				return in
			},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
				assert.Contains(t, err.Error(), "priority")
			},
		},
		{
			name:  "should reject an over-long name",
			actor: func(env *testEnv) domain.Actor { return env.reporter },
			input: func(env *testEnv) UpdateTaskInput {
				in := validInput(env)
				in.Name = strings.Repeat("n", 300)
				return in
			},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
				assert.Contains(t, err.Error(), "name")
			},
		},
		{
			name:  "should reject a checker from another organization",
			actor: func(env *testEnv) domain.Actor { return env.reporter },
			input: func(env *testEnv) UpdateTaskInput {
				in := validInput(env)
				in.CheckerID = &env.outsider.UserID
				return in
			},
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
				assert.Contains(t, err.Error(), "user_id")
			},
		},
		{
			name:  "should return not found for another organization",
			actor: func(env *testEnv) domain.Actor { return env.outsider },
			input: validInput,
			errorAssertion: func(t *testing.T, err error) {
				assertErrorType(t, err, errors.ErrorTypeNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			env := setupServices(t)
			task := env.createTask(t, "Plan")
			before := env.storedTask(t, task.ID)
			env.clock.Set(env.clock.Now().Add(time.Minute))

			// Act
			result, err := env.services.TaskService.UpdateTaskFields(context.Background(), tt.actor(env), task.ID, tt.input(env))

			// Assert
			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				assert.Equal(t, before, env.storedTask(t, task.ID))
				return
			}
			require.NoError(t, err)
			stored := env.storedTask(t, task.ID)
			assert.Equal(t, *result, stored)
			assert.Equal(t, "Revised plan", stored.Name)
			assert.Equal(t, domain.StageDesignDevelopment, stored.ProjectStage)
			assert.Equal(t, domain.StatusInReview, stored.Status)
			assert.Equal(t, domain.PriorityUrgent, stored.Priority)
			assert.Equal(t, env.member.UserID, *stored.AssigneeID)
			assert.Equal(t, before.ReporterID, stored.ReporterID)
			assert.Equal(t, before.ProjectID, stored.ProjectID)
			assert.Equal(t, before.CreatedAt, stored.CreatedAt)
			assert.True(t, stored.UpdatedAt.After(before.UpdatedAt))
		})
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	// Arrange
	env := setupServices(t)
	ctx := context.Background()
	task := env.createTask(t, "Temporary")
	log, err := env.services.TimeLogService.LogTime(ctx, env.assignee, LogTimeInput{
		TaskID:          task.ID,
		DateLogged:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		HoursLogged:     hours("1.5"),
		WorkDescription: "Sketches",
	})
	require.NoError(t, err)

	// Act & Assert
	deleted, err := env.services.TaskService.DeleteTask(ctx, env.outsider, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "another organization cannot delete")

	deleted, err = env.services.TaskService.DeleteTask(ctx, env.loner, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = env.services.TaskService.DeleteTask(ctx, env.member, task.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = env.services.TaskService.DeleteTask(ctx, env.member, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = env.services.TaskService.GetTask(ctx, env.member, task.ID)
	assertErrorType(t, err, errors.ErrorTypeNotFound)

	// logs of a deleted task stay in the ledger
	logs, err := env.services.TimeLogService.ListByUser(ctx, env.assignee, env.assignee.UserID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, log.ID, logs[0].ID)
}

func TestTaskService_Worklists(t *testing.T) {
	// Arrange
	env := setupServices(t)
	ctx := context.Background()
	tasks := env.services.TaskService

	var ids []int64
	for i, name := range []string{"one", "two", "three", "four"} {
		env.clock.Set(env.clock.Now().Add(time.Duration(i) * time.Minute))
		ids = append(ids, env.createTask(t, name).ID)
	}
	_, err := tasks.SetStatus(ctx, env.assignee, ids[0], "DONE")
	require.NoError(t, err)
	_, err = tasks.SetStatus(ctx, env.assignee, ids[1], "DONE")
	require.NoError(t, err)
	_, err = tasks.MarkCompletedAndChecked(ctx, env.checker, ids[1])
	require.NoError(t, err)

	_, err = tasks.CreateTask(ctx, env.outsider, CreateTaskInput{Name: "foreign", ProjectStage: "STAGE_01"})
	require.NoError(t, err)

	t.Run("should exclude finished tasks from the assignee view", func(t *testing.T) {
		page, err := tasks.ListAssignedTasks(ctx, env.assignee, domain.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalItems)
		require.Len(t, page.Items, 2)
		assert.Equal(t, ids[3], page.Items[0].ID, "newest first")
		assert.Equal(t, ids[2], page.Items[1].ID)
	})

	t.Run("should exclude finished tasks from the reporter view", func(t *testing.T) {
		page, err := tasks.ListReportedTasks(ctx, env.reporter, domain.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalItems)
	})

	t.Run("should keep finished tasks in the checker view", func(t *testing.T) {
		page, err := tasks.ListCheckingTasks(ctx, env.checker, domain.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, 4, page.TotalItems)
	})

	t.Run("should paginate the project view", func(t *testing.T) {
		page, err := tasks.ListProjectTasks(ctx, env.member, env.project, domain.PageRequest{Page: 1, Size: 3})
		require.NoError(t, err)
		assert.Equal(t, 4, page.TotalItems)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 1)
		assert.Equal(t, ids[0], page.Items[0].ID)
	})

	t.Run("should reject a project of another organization", func(t *testing.T) {
		_, err := tasks.ListProjectTasks(ctx, env.member, env.foreignProject, domain.PageRequest{})
		assertErrorType(t, err, errors.ErrorTypeInvalidArgument)
	})

	t.Run("should return an empty page to an actor without organization", func(t *testing.T) {
		page, err := tasks.ListAssignedTasks(ctx, env.loner, domain.PageRequest{})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.TotalItems)
	})
}
