package services

import (
	"context"
	"strings"
	"time"

	"work-tracker/internal/authz"
	"work-tracker/internal/domain"
	"work-tracker/internal/errors"
	"work-tracker/internal/metrics"
	"work-tracker/internal/repository/sqlite"
	"work-tracker/internal/validation"

	"github.com/sirupsen/logrus"
)

// timeLogServiceImpl implements the TimeLogService interface
type timeLogServiceImpl struct {
	repo             sqlite.Repository
	timeService      TimeService
	guard            *authz.Guard
	mapper           *domain.Mapper
	timeLogValidator *validation.TimeLogValidator
	logger           logrus.FieldLogger
	metrics          *metrics.Metrics
}

// NewTimeLogService creates a new TimeLogService instance
func NewTimeLogService(repo sqlite.Repository, timeService TimeService, guard *authz.Guard,
	v *validation.Validator, logger logrus.FieldLogger, m *metrics.Metrics) TimeLogService {
	return &timeLogServiceImpl{
		repo:             repo,
		timeService:      timeService,
		guard:            guard,
		mapper:           domain.NewMapper(),
		timeLogValidator: validation.NewTimeLogValidatorWith(v),
		logger:           logger.WithField("component", "time_log_service"),
		metrics:          m,
	}
}

// LogTime records hours against a task visible to the actor. Any member of the
// task's organization may log time; the log is owned by the actor.
func (s *timeLogServiceImpl) LogTime(ctx context.Context, actor domain.Actor, in LogTimeInput) (*domain.TimeLog, error) {
	if err := s.timeLogValidator.ValidateForCreation(in.TaskID, in.DateLogged, in.HoursLogged, in.WorkDescription); err != nil {
		return nil, validation.ToInvalidArgument("invalid time log", err)
	}

	log := domain.NewTimeLog(in.TaskID, actor.UserID, in.DateLogged, in.HoursLogged, strings.TrimSpace(in.WorkDescription))
	err := s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		orgID, err := newScope(tx, s.guard).OrganizationOf(actor)
		if err != nil {
			return err
		}
		if _, err := tx.GetTask(ctx, orgID, in.TaskID); err != nil {
			if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
				return errors.NewUnresolvedReferenceError("task", in.TaskID)
			}
			return err
		}

		log.CreatedAt = s.timeService.Now()
		row := s.mapper.TimeLog.ToDatabase(log)
		if err := tx.CreateTimeLog(ctx, &row); err != nil {
			return err
		}
		log.ID = row.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.TimeLogOperation("create")
	s.logger.WithFields(logrus.Fields{
		"time_log_id": log.ID,
		"task_id":     log.TaskID,
		"user_id":     actor.UserID,
		"hours":       log.HoursLogged.StringFixed(domain.HoursScale),
	}).Info("time logged")
	return &log, nil
}

// UpdateTimeLog applies the supplied fields to a log owned by the actor
func (s *timeLogServiceImpl) UpdateTimeLog(ctx context.Context, actor domain.Actor, id int64, in UpdateTimeLogInput) (*domain.TimeLog, error) {
	validationErr := s.timeLogValidator.ValidateForUpdate(in.DateLogged, in.HoursLogged, in.WorkDescription)

	var log domain.TimeLog
	err := s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		var err error
		log, err = s.loadOwned(ctx, tx, actor, id, "update")
		if err != nil {
			return err
		}
		if validationErr != nil {
			return validation.ToInvalidArgument("invalid time log", validationErr)
		}

		if in.DateLogged != nil {
			log.DateLogged = domain.DateOf(*in.DateLogged)
		}
		if in.HoursLogged != nil {
			log.HoursLogged = *in.HoursLogged
		}
		if in.WorkDescription != nil {
			log.WorkDescription = strings.TrimSpace(*in.WorkDescription)
		}

		row := s.mapper.TimeLog.ToDatabase(log)
		return tx.UpdateTimeLog(ctx, &row)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.TimeLogOperation("update")
	s.logger.WithFields(logrus.Fields{"time_log_id": id, "user_id": actor.UserID}).Info("time log updated")
	return &log, nil
}

// DeleteTimeLog deletes a log owned by the actor
func (s *timeLogServiceImpl) DeleteTimeLog(ctx context.Context, actor domain.Actor, id int64) (bool, error) {
	err := s.repo.WithTx(ctx, func(tx sqlite.Repository) error {
		if _, err := s.loadOwned(ctx, tx, actor, id, "delete"); err != nil {
			return err
		}
		return tx.DeleteTimeLog(ctx, id)
	})
	if err != nil {
		return false, err
	}

	s.metrics.TimeLogOperation("delete")
	s.logger.WithFields(logrus.Fields{"time_log_id": id, "user_id": actor.UserID}).Info("time log deleted")
	return true, nil
}

// ListByTask lists the logs of a task visible to the actor
func (s *timeLogServiceImpl) ListByTask(ctx context.Context, actor domain.Actor, taskID int64) ([]domain.TimeLog, error) {
	orgID, err := newScope(s.repo, s.guard).OrganizationOf(actor)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetTask(ctx, orgID, taskID); err != nil {
		return nil, err
	}
	return s.search(ctx, sqlite.TimeLogSearchOptions{TaskID: &taskID})
}

// ListByUser lists every log of a user in the actor's organization
func (s *timeLogServiceImpl) ListByUser(ctx context.Context, actor domain.Actor, userID int64) ([]domain.TimeLog, error) {
	if err := newScope(s.repo, s.guard).CheckUserVisible(ctx, actor, userID); err != nil {
		return nil, err
	}
	return s.search(ctx, sqlite.TimeLogSearchOptions{UserID: &userID})
}

// ListByUserInRange lists a user's logs dated between from and to, both inclusive
func (s *timeLogServiceImpl) ListByUserInRange(ctx context.Context, actor domain.Actor, userID int64, from, to time.Time) ([]domain.TimeLog, error) {
	if err := s.timeLogValidator.ValidateDateRange(&from, &to); err != nil {
		return nil, validation.ToInvalidArgument("invalid date range", err)
	}
	if err := newScope(s.repo, s.guard).CheckUserVisible(ctx, actor, userID); err != nil {
		return nil, err
	}

	fromDate, toDate := domain.DateOf(from), domain.DateOf(to)
	return s.search(ctx, sqlite.TimeLogSearchOptions{UserID: &userID, From: &fromDate, To: &toDate})
}

// loadOwned fetches a log and checks that the actor created it.
// A missing log is reported as an invalid argument.
func (s *timeLogServiceImpl) loadOwned(ctx context.Context, repo sqlite.Repository, actor domain.Actor, id int64, operation string) (domain.TimeLog, error) {
	row, err := repo.GetTimeLog(ctx, id)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return domain.TimeLog{}, errors.NewUnresolvedReferenceError("time log", id)
		}
		return domain.TimeLog{}, err
	}
	log := s.mapper.TimeLog.FromDatabase(*row)
	if err := s.guard.AuthorizeOwner(actor, log, operation); err != nil {
		return domain.TimeLog{}, err
	}
	return log, nil
}

func (s *timeLogServiceImpl) search(ctx context.Context, opts sqlite.TimeLogSearchOptions) ([]domain.TimeLog, error) {
	rows, err := s.repo.SearchTimeLogs(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.mapper.TimeLog.FromDatabaseSlice(rows), nil
}
