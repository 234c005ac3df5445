package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"work-tracker/internal/domain"
	"work-tracker/internal/errors"
	"work-tracker/internal/services"
	"work-tracker/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

var validate = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// ========== Requests ==========

type CreateTaskRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	ProjectStage string  `json:"project_stage" validate:"required"`
	Priority     string  `json:"priority"`
	DueDate      *string `json:"due_date" validate:"omitempty,eq=|datetime=2006-01-02"`
	ProjectID    *int64  `json:"project_id" validate:"omitempty,gt=0"`
	AssigneeID   *int64  `json:"assignee_id" validate:"omitempty,gt=0"`
	CheckerID    *int64  `json:"checker_id" validate:"omitempty,gt=0"`
	// Status is read and discarded; a new task always starts TO_DO.
	Status *string `json:"status"`
}

// UpdateTaskRequest replaces every editable field; omitted role ids clear the role
type UpdateTaskRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	ProjectStage string  `json:"project_stage" validate:"required"`
	Status       string  `json:"status" validate:"required"`
	Priority     string  `json:"priority" validate:"required"`
	DueDate      *string `json:"due_date" validate:"omitempty,eq=|datetime=2006-01-02"`
	AssigneeID   *int64  `json:"assignee_id" validate:"omitempty,gt=0"`
	CheckerID    *int64  `json:"checker_id" validate:"omitempty,gt=0"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type LogTimeRequest struct {
	TaskID          int64  `json:"task_id" validate:"required,gt=0"`
	DateLogged      string `json:"date_logged" validate:"required,datetime=2006-01-02"`
	HoursLogged     string `json:"hours_logged" validate:"required,numeric"`
	WorkDescription string `json:"work_description" validate:"required"`
}

type UpdateTimeLogRequest struct {
	DateLogged      *string `json:"date_logged" validate:"omitempty,datetime=2006-01-02"`
	HoursLogged     *string `json:"hours_logged" validate:"omitempty,numeric"`
	WorkDescription *string `json:"work_description"`
}

type ClockRequest struct {
	Notes string `json:"notes"`
}

type PageQuery struct {
	Page int `query:"page" validate:"min=0"`
	Size int `query:"size" validate:"omitempty,min=1,max=100"`
}

type DateRangeQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

func (q PageQuery) request() domain.PageRequest {
	return domain.PageRequest{Page: q.Page, Size: q.Size}
}

func (req CreateTaskRequest) input() services.CreateTaskInput {
	return services.CreateTaskInput{
		Name:         req.Name,
		Description:  req.Description,
		ProjectStage: req.ProjectStage,
		Priority:     req.Priority,
		DueDate:      optionalDate(req.DueDate),
		ProjectID:    req.ProjectID,
		AssigneeID:   req.AssigneeID,
		CheckerID:    req.CheckerID,
	}
}

func (req UpdateTaskRequest) input() services.UpdateTaskInput {
	return services.UpdateTaskInput{
		Name:         req.Name,
		Description:  req.Description,
		ProjectStage: req.ProjectStage,
		Status:       req.Status,
		Priority:     req.Priority,
		DueDate:      optionalDate(req.DueDate),
		AssigneeID:   req.AssigneeID,
		CheckerID:    req.CheckerID,
	}
}

func (req LogTimeRequest) input() services.LogTimeInput {
	date, _ := domain.ParseDate(req.DateLogged)
	hours, _ := decimal.NewFromString(req.HoursLogged)
	return services.LogTimeInput{
		TaskID:          req.TaskID,
		DateLogged:      date,
		HoursLogged:     hours,
		WorkDescription: req.WorkDescription,
	}
}

func (req UpdateTimeLogRequest) input() services.UpdateTimeLogInput {
	in := services.UpdateTimeLogInput{
		DateLogged:      optionalDate(req.DateLogged),
		WorkDescription: req.WorkDescription,
	}
	if req.HoursLogged != nil {
		hours, _ := decimal.NewFromString(*req.HoursLogged)
		in.HoursLogged = &hours
	}
	return in
}

// optionalDate parses a date already checked by the datetime tag. Null and the
// empty string both mean no due date.
func optionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}

// ========== Responses ==========

type TaskResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	DueDate      *string   `json:"due_date"`
	ProjectStage string    `json:"project_stage"`
	ProjectID    *int64    `json:"project_id"`
	ReporterID   int64     `json:"reporter_id"`
	AssigneeID   *int64    `json:"assignee_id"`
	CheckerID    *int64    `json:"checker_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TimeLogResponse struct {
	ID              int64     `json:"id"`
	TaskID          int64     `json:"task_id"`
	UserID          int64     `json:"user_id"`
	DateLogged      string    `json:"date_logged"`
	HoursLogged     string    `json:"hours_logged"`
	WorkDescription string    `json:"work_description"`
	CreatedAt       time.Time `json:"created_at"`
}

type AttendanceEntryResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EntryType string    `json:"entry_type"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type AttendanceStatusResponse struct {
	IsClockedIn  bool                      `json:"is_clocked_in"`
	LastEntry    *AttendanceEntryResponse  `json:"last_entry"`
	TodayEntries []AttendanceEntryResponse `json:"today_entries"`
}

type DayResponse struct {
	Date  string `json:"date"`
	Class string `json:"class"`
}

type MonthlyAttendanceResponse struct {
	UserID  int64         `json:"user_id"`
	Year    int           `json:"year"`
	Month   int           `json:"month"`
	Days    []DayResponse `json:"days"`
	Present int           `json:"present"`
	Absent  int           `json:"absent"`
}

func toTaskResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		ProjectStage: string(t.ProjectStage),
		ProjectID:    t.ProjectID,
		ReporterID:   t.ReporterID,
		AssigneeID:   t.AssigneeID,
		CheckerID:    t.CheckerID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := domain.FormatDate(*t.DueDate)
		resp.DueDate = &due
	}
	return resp
}

func toTaskResponses(tasks []domain.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = toTaskResponse(&tasks[i])
	}
	return result
}

func toTimeLogResponse(tl *domain.TimeLog) TimeLogResponse {
	return TimeLogResponse{
		ID:              tl.ID,
		TaskID:          tl.TaskID,
		UserID:          tl.UserID,
		DateLogged:      domain.FormatDate(tl.DateLogged),
		HoursLogged:     tl.HoursLogged.StringFixed(domain.HoursScale),
		WorkDescription: tl.WorkDescription,
		CreatedAt:       tl.CreatedAt,
	}
}

func toTimeLogResponses(logs []domain.TimeLog) []TimeLogResponse {
	result := make([]TimeLogResponse, len(logs))
	for i := range logs {
		result[i] = toTimeLogResponse(&logs[i])
	}
	return result
}

func toEntryResponse(e *domain.AttendanceEntry) AttendanceEntryResponse {
	return AttendanceEntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		EntryType: string(e.EntryType),
		Timestamp: e.Timestamp,
		Notes:     e.Notes,
	}
}

func toEntryResponses(entries []domain.AttendanceEntry) []AttendanceEntryResponse {
	result := make([]AttendanceEntryResponse, len(entries))
	for i := range entries {
		result[i] = toEntryResponse(&entries[i])
	}
	return result
}

func toStatusResponse(st *domain.AttendanceStatus) AttendanceStatusResponse {
	resp := AttendanceStatusResponse{
		IsClockedIn:  st.IsClockedIn,
		TodayEntries: toEntryResponses(st.TodayEntries),
	}
	if st.LastEntry != nil {
		last := toEntryResponse(st.LastEntry)
		resp.LastEntry = &last
	}
	return resp
}

func toMonthlyResponse(m *services.MonthlyAttendance) MonthlyAttendanceResponse {
	days := make([]DayResponse, len(m.Days))
	for i, d := range m.Days {
		days[i] = DayResponse{Date: domain.FormatDate(d.Date), Class: string(d.Class)}
	}
	return MonthlyAttendanceResponse{
		UserID:  m.UserID,
		Year:    m.Year,
		Month:   int(m.Month),
		Days:    days,
		Present: m.Present,
		Absent:  m.Absent,
	}
}

// ========== Binding ==========

// decodeJSON reads the request body into dst and validates it. An empty body
// is accepted only when optional is set.
func decodeJSON(r *http.Request, dst any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if stderrors.Is(err, io.EOF) && optional {
			return nil
		}
		return errors.NewInvalidArgumentError("malformed request body", err)
	}
	return validateRequest(dst)
}

// decodeQuery fills the tagged int and string fields of dst from the query string
func decodeQuery(r *http.Request, dst any) error {
	values := r.URL.Query()
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("query")
		raw := values.Get(name)
		if name == "" || raw == "" {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return errors.NewInvalidInputError(name, raw, "must be an integer")
			}
			field.SetInt(int64(n))
		case reflect.String:
			field.SetString(raw)
		}
	}
	return validateRequest(dst)
}

func validateRequest(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewInvalidArgumentError("invalid request", err)
	}

	ve := validation.NewValidationError()
	for _, fe := range fieldErrs {
		switch lastTag(fe.Tag()) {
		case "required":
			ve.AddRequiredError(fe.Field())
		case "datetime":
			ve.AddInvalidFormatError(fe.Field(), fe.Value(), "YYYY-MM-DD")
		case "numeric":
			ve.AddInvalidFormatError(fe.Field(), fe.Value(), "decimal number")
		case "oneof":
			ve.AddInvalidValueError(fe.Field(), fe.Value(), "must be one of "+fe.Param())
		default:
			ve.AddInvalidValueError(fe.Field(), fe.Value(), fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param()))
		}
	}
	return validation.ToInvalidArgument("invalid request", ve)
}

// lastTag strips the parameter from a tag and keeps the last alternative of an
// or-tag such as "eq=|datetime=2006-01-02".
func lastTag(tag string) string {
	if i := strings.LastIndex(tag, "|"); i >= 0 {
		tag = tag[i+1:]
	}
	name, _, _ := strings.Cut(tag, "=")
	return name
}

// pathID reads a positive integer URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(name, raw, "must be a positive integer")
	}
	return id, nil
}
