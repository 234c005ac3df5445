package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"work-tracker/internal/domain"
	"work-tracker/internal/errors"
)

// AttendanceReportCommand prints a user's monthly attendance classification
type AttendanceReportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAttendanceReportCommand creates a new attendance report command handler
func NewAttendanceReportCommand(app *App) *AttendanceReportCommand {
	return &AttendanceReportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the attendance report command
func (c *AttendanceReportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errInvalidUsage("attendance report", "wt attendance report <username> <year> <month>")
	}
	year, err := strconv.Atoi(args[1])
	if err != nil || year < 1 {
		return errors.NewInvalidInputError("year", args[1], "must be a positive integer")
	}
	month, err := strconv.Atoi(args[2])
	if err != nil {
		return errors.NewInvalidInputError("month", args[2], "must be between 1 and 12")
	}

	repo, err := c.app.openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	row, err := repo.GetUserByUsername(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("build attendance report", err)
	}
	user := domain.NewDirectoryMapper().UserFromDatabase(*row)

	container, err := c.app.newServices(repo, nil)
	if err != nil {
		return c.errorHandler.Handle("build attendance report", err)
	}
	report, err := container.AttendanceService.MonthlyReport(ctx, user.Actor(), user.ID, year, time.Month(month))
	if err != nil {
		return c.errorHandler.Handle("build attendance report", err)
	}

	c.app.printf("Attendance for %s, %s %d\n\n", user.Username, report.Month, report.Year)
	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDAY\tSTATUS")
	for _, day := range report.Days {
		fmt.Fprintf(w, "%s\t%s\t%s\n", day.Date.Format("2006-01-02"), day.Date.Weekday().String()[:3], day.Class)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	c.app.printf("\nPresent: %d  Absent: %d\n", report.Present, report.Absent)
	return nil
}
