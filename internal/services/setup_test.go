package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"work-tracker/internal/config"
	"work-tracker/internal/domain"
	"work-tracker/internal/errors"
	"work-tracker/internal/metrics"
	"work-tracker/internal/repository/sqlite"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a settable clock shared by the services under test
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// testEnv is a migrated database with two organizations and a set of users
type testEnv struct {
	repo     *sqlite.SQLiteRepository
	clock    *testClock
	services *ServiceContainer
	metrics  *metrics.Metrics
	hook     *test.Hook

	reporter domain.Actor // Acme
	assignee domain.Actor // Acme
	checker  domain.Actor // Acme
	member   domain.Actor // Acme, no role on seeded tasks
	outsider domain.Actor // Globex
	loner    domain.Actor // no organization

	project        int64 // Acme
	foreignProject int64 // Globex
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	repo, err := sqlite.New(filepath.Join(t.TempDir(), "wt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	acme := &sqlite.Organization{Name: "Acme"}
	globex := &sqlite.Organization{Name: "Globex"}
	require.NoError(t, repo.CreateOrganization(ctx, acme))
	require.NoError(t, repo.CreateOrganization(ctx, globex))

	newActor := func(username string, orgID *int64) domain.Actor {
		u := &sqlite.User{Username: username, OrganizationID: orgID}
		require.NoError(t, repo.CreateUser(ctx, u))
		return domain.Actor{UserID: u.ID, Username: u.Username, OrganizationID: u.OrganizationID}
	}

	env := &testEnv{
		repo:     repo,
		clock:    &testClock{now: time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)},
		metrics:  metrics.New(),
		reporter: newActor("rita", &acme.ID),
		assignee: newActor("alex", &acme.ID),
		checker:  newActor("chris", &acme.ID),
		member:   newActor("morgan", &acme.ID),
		outsider: newActor("olive", &globex.ID),
		loner:    newActor("lee", nil),
	}

	project := &sqlite.Project{Name: "Tower", OrganizationID: acme.ID}
	foreign := &sqlite.Project{Name: "Bridge", OrganizationID: globex.ID}
	require.NoError(t, repo.CreateProject(ctx, project))
	require.NoError(t, repo.CreateProject(ctx, foreign))
	env.project = project.ID
	env.foreignProject = foreign.ID

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	env.hook = hook

	timeService := NewTimeServiceWithClock(time.UTC, env.clock.Now)
	env.services = newServiceContainer(repo, config.NewConfig(), timeService, logger, env.metrics)
	return env
}

// createTask creates a task reported by env.reporter with the seeded assignee and checker
func (e *testEnv) createTask(t *testing.T, name string) *domain.Task {
	t.Helper()
	task, err := e.services.TaskService.CreateTask(context.Background(), e.reporter, CreateTaskInput{
		Name:         name,
		ProjectStage: "STAGE_02",
		ProjectID:    &e.project,
		AssigneeID:   &e.assignee.UserID,
		CheckerID:    &e.checker.UserID,
	})
	require.NoError(t, err)
	return task
}

// storedTask reads a task straight from the repository
func (e *testEnv) storedTask(t *testing.T, id int64) domain.Task {
	t.Helper()
	row, err := e.repo.GetTask(context.Background(), *e.reporter.OrganizationID, id)
	require.NoError(t, err)
	return domain.NewMapper().Task.FromDatabase(*row)
}

// securityEvents returns the logged entries flagged as security events
func (e *testEnv) securityEvents() []logrus.Entry {
	var events []logrus.Entry
	for _, entry := range e.hook.AllEntries() {
		if entry.Data["security"] == true {
			events = append(events, *entry)
		}
	}
	return events
}

func assertErrorType(t *testing.T, err error, want errors.ErrorType) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.Truef(t, ok, "expected an AppError, got %T: %v", err, err)
	assert.Equalf(t, want, appErr.Type, "unexpected error type: %v", err)
}

// counterValue reads one labelled counter from the environment's registry
func counterValue(t *testing.T, env *testEnv, name, label, value string) float64 {
	t.Helper()
	families, err := env.metrics.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, pair := range m.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func int64p(v int64) *int64 {
	return &v
}
