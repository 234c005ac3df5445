package services

import (
	"work-tracker/internal/authz"
	"work-tracker/internal/config"
	"work-tracker/internal/metrics"
	"work-tracker/internal/repository/sqlite"
	"work-tracker/internal/scope"
	"work-tracker/internal/validation"

	"github.com/sirupsen/logrus"
)

// NewServiceContainer wires every service against one repository.
// m may be nil when metrics are not collected.
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config, logger logrus.FieldLogger, m *metrics.Metrics) (*ServiceContainer, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	timeService := NewTimeService(loc)
	return newServiceContainer(repo, cfg, timeService, logger, m), nil
}

func newServiceContainer(repo sqlite.Repository, cfg *config.Config, timeService TimeService, logger logrus.FieldLogger, m *metrics.Metrics) *ServiceContainer {
	v := validation.NewValidatorWithConfig(cfg)
	guard := authz.NewGuard(logger, m)

	return &ServiceContainer{
		TimeService:       timeService,
		TaskService:       NewTaskService(repo, timeService, guard, v, logger, m),
		TimeLogService:    NewTimeLogService(repo, timeService, guard, v, logger, m),
		AttendanceService: NewAttendanceService(repo, timeService, guard, v, logger, m),
	}
}

// newScope builds a tenant filter whose Forbidden outcomes go through guard.
func newScope(dir scope.Directory, guard *authz.Guard) *scope.Filter {
	return scope.NewFilter(dir).WithAuditor(guard)
}
