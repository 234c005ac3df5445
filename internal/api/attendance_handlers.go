package api

import (
	"net/http"
	"strconv"
	"time"

	"work-tracker/internal/domain"
	"work-tracker/internal/errors"

	"github.com/go-chi/chi/v5"
)

// ========== Clock In / Out ==========

func (s *Server) clockIn(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	var req ClockRequest
	if err := decodeJSON(r, &req, true); err != nil {
		return err
	}

	entry, err := s.attendance.ClockIn(r.Context(), actor, req.Notes)
	if err != nil {
		return err
	}
	respondCreated(w, toEntryResponse(entry))
	return nil
}

func (s *Server) clockOut(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	var req ClockRequest
	if err := decodeJSON(r, &req, true); err != nil {
		return err
	}

	entry, err := s.attendance.ClockOut(r.Context(), actor, req.Notes)
	if err != nil {
		return err
	}
	respondCreated(w, toEntryResponse(entry))
	return nil
}

// ========== Queries ==========

func (s *Server) attendanceStatus(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	status, err := s.attendance.Status(r.Context(), actor)
	if err != nil {
		return err
	}
	respondOK(w, toStatusResponse(status))
	return nil
}

func (s *Server) attendanceToday(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	entries, err := s.attendance.Today(r.Context(), actor)
	if err != nil {
		return err
	}
	respondOK(w, toEntryResponses(entries))
	return nil
}

func (s *Server) attendanceHistory(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	var q DateRangeQuery
	if err := decodeQuery(r, &q); err != nil {
		return err
	}

	entries, err := s.attendance.History(r.Context(), actor, optionalDate(&q.From), optionalDate(&q.To))
	if err != nil {
		return err
	}
	respondOK(w, toEntryResponses(entries))
	return nil
}

func (s *Server) monthlyAttendance(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	userID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		return errors.NewInvalidInputError("year", chi.URLParam(r, "year"), "must be a positive integer")
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		return errors.NewInvalidInputError("month", chi.URLParam(r, "month"), "must be an integer")
	}

	report, err := s.attendance.MonthlyReport(r.Context(), actor, userID, year, time.Month(month))
	if err != nil {
		return err
	}
	respondOK(w, toMonthlyResponse(report))
	return nil
}
