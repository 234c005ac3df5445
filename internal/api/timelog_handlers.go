package api

import (
	"net/http"

	"work-tracker/internal/domain"
	"work-tracker/internal/errors"
)

// ========== Time Log Ledger ==========

func (s *Server) logTime(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	var req LogTimeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		return err
	}

	tl, err := s.timeLogs.LogTime(r.Context(), actor, req.input())
	if err != nil {
		return err
	}
	respondCreated(w, toTimeLogResponse(tl))
	return nil
}

func (s *Server) updateTimeLog(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var req UpdateTimeLogRequest
	if err := decodeJSON(r, &req, false); err != nil {
		return err
	}

	tl, err := s.timeLogs.UpdateTimeLog(r.Context(), actor, id, req.input())
	if err != nil {
		return err
	}
	respondOK(w, toTimeLogResponse(tl))
	return nil
}

func (s *Server) deleteTimeLog(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	if _, err := s.timeLogs.DeleteTimeLog(r.Context(), actor, id); err != nil {
		return err
	}
	respondNoContent(w)
	return nil
}

// ========== Queries ==========

func (s *Server) listTaskTimeLogs(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	taskID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	logs, err := s.timeLogs.ListByTask(r.Context(), actor, taskID)
	if err != nil {
		return err
	}
	respondOK(w, toTimeLogResponses(logs))
	return nil
}

// listUserTimeLogs returns a user's whole ledger, or the inclusive date range
// when both from and to are given
func (s *Server) listUserTimeLogs(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	userID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var q DateRangeQuery
	if err := decodeQuery(r, &q); err != nil {
		return err
	}

	var logs []domain.TimeLog
	from, to := optionalDate(&q.From), optionalDate(&q.To)
	switch {
	case from == nil && to == nil:
		logs, err = s.timeLogs.ListByUser(r.Context(), actor, userID)
	case from != nil && to != nil:
		logs, err = s.timeLogs.ListByUserInRange(r.Context(), actor, userID, *from, *to)
	default:
		return errors.NewInvalidArgumentError("from and to must be given together", nil)
	}
	if err != nil {
		return err
	}
	respondOK(w, toTimeLogResponses(logs))
	return nil
}
