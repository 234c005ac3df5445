package api

import (
	"net/http"
	"strconv"

	"work-tracker/internal/domain"
	"work-tracker/internal/errors"
)

// ========== Task Lifecycle ==========

func (s *Server) createTask(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	var req CreateTaskRequest
	if err := decodeJSON(r, &req, false); err != nil {
		return err
	}

	task, err := s.tasks.CreateTask(r.Context(), actor, req.input())
	if err != nil {
		return err
	}
	respondCreated(w, toTaskResponse(task))
	return nil
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	task, err := s.tasks.GetTask(r.Context(), actor, id)
	if err != nil {
		return err
	}
	respondOK(w, toTaskResponse(task))
	return nil
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var req UpdateTaskRequest
	if err := decodeJSON(r, &req, false); err != nil {
		return err
	}

	task, err := s.tasks.UpdateTaskFields(r.Context(), actor, id, req.input())
	if err != nil {
		return err
	}
	respondOK(w, toTaskResponse(task))
	return nil
}

func (s *Server) setTaskStatus(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var req SetStatusRequest
	if err := decodeJSON(r, &req, false); err != nil {
		return err
	}

	task, err := s.tasks.SetStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		return err
	}
	respondOK(w, toTaskResponse(task))
	return nil
}

func (s *Server) checkTask(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	task, err := s.tasks.MarkCompletedAndChecked(r.Context(), actor, id)
	if err != nil {
		return err
	}
	respondOK(w, toTaskResponse(task))
	return nil
}

// deleteTask answers 404 for a task the actor cannot see, the same as for a missing one
func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	id, err := pathID(r, "id")
	if err != nil {
		return err
	}

	deleted, err := s.tasks.DeleteTask(r.Context(), actor, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}
	respondNoContent(w)
	return nil
}

// ========== Worklists ==========

func (s *Server) listProjectTasks(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	projectID, err := pathID(r, "id")
	if err != nil {
		return err
	}
	var q PageQuery
	if err := decodeQuery(r, &q); err != nil {
		return err
	}

	page, err := s.tasks.ListProjectTasks(r.Context(), actor, projectID, q.request())
	if err != nil {
		return err
	}
	respondTaskPage(w, page)
	return nil
}

func (s *Server) listAssignedTasks(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	var q PageQuery
	if err := decodeQuery(r, &q); err != nil {
		return err
	}
	page, err := s.tasks.ListAssignedTasks(r.Context(), actor, q.request())
	if err != nil {
		return err
	}
	respondTaskPage(w, page)
	return nil
}

func (s *Server) listReportedTasks(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	var q PageQuery
	if err := decodeQuery(r, &q); err != nil {
		return err
	}
	page, err := s.tasks.ListReportedTasks(r.Context(), actor, q.request())
	if err != nil {
		return err
	}
	respondTaskPage(w, page)
	return nil
}

func (s *Server) listCheckingTasks(w http.ResponseWriter, r *http.Request, actor domain.Actor) error {
	var q PageQuery
	if err := decodeQuery(r, &q); err != nil {
		return err
	}
	page, err := s.tasks.ListCheckingTasks(r.Context(), actor, q.request())
	if err != nil {
		return err
	}
	respondTaskPage(w, page)
	return nil
}

func respondTaskPage(w http.ResponseWriter, page domain.Page[domain.Task]) {
	respondPage(w, toTaskResponses(page.Items), page.Page, page.Size, page.TotalItems, page.TotalPages)
}
