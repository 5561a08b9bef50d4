package analytics

import (
	"fmt"
	"time"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/response"
	"campus-connect/internal/global/sentry/tracing"
	"campus-connect/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type eventRow struct {
	ID               uint    `excel:"ID"`
	Name             string  `excel:"Name"`
	ProgramType      string  `excel:"Program Type"`
	Mode             string  `excel:"Mode"`
	DateTime         string  `excel:"Date"`
	EndDateTime      string  `excel:"End Date"`
	ParticipantCount int     `excel:"Participants"`
	Expense          float64 `excel:"Expense"`
	Rating           int     `excel:"Rating"`
}

type distributionRow struct {
	Type  string `excel:"Event Type"`
	Count int    `excel:"Count"`
}

type participationRow struct {
	Month        string `excel:"Month"`
	Participants int    `excel:"Participants"`
}

// ExportReport bundles the campus events plus both aggregations into one
// spreadsheet, one sheet per dataset.
func ExportReport(c *gin.Context) {
	campusID, ok := parseCampusID(c)
	if !ok {
		return
	}

	year := time.Now().Year()

	ctx := tracing.ContextWithSpan(c)

	events, err := database.Store.GetEventsByCampus(ctx, campusID)
	if err != nil {
		log.Error("listing campus events failed", "error", err, "campus_id", campusID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	distribution, err := database.Store.EventTypeDistribution(ctx, campusID)
	if err != nil {
		log.Error("type distribution query failed", "error", err, "campus_id", campusID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	participation, err := database.Store.MonthlyParticipation(ctx, campusID, year)
	if err != nil {
		log.Error("monthly participation query failed", "error", err, "campus_id", campusID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	eventRows := make([]eventRow, 0, len(events))
	for _, e := range events {
		row := eventRow{
			ID:               e.ID,
			Name:             e.Name,
			ProgramType:      e.ProgramType,
			Mode:             e.Mode,
			DateTime:         e.DateTime.Format(time.RFC3339),
			ParticipantCount: e.ParticipantCount,
			Expense:          e.Expense,
			Rating:           e.Rating,
		}
		if e.EndDateTime != nil {
			row.EndDateTime = e.EndDateTime.Format(time.RFC3339)
		}
		eventRows = append(eventRows, row)
	}

	distributionRows := make([]distributionRow, 0, len(distribution))
	for _, d := range distribution {
		distributionRows = append(distributionRows, distributionRow(d))
	}
	participationRows := make([]participationRow, 0, len(participation))
	for _, p := range participation {
		participationRows = append(participationRows, participationRow(p))
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		data any
	}{
		{"Events", eventRows},
		{"Event Types", distributionRows},
		{fmt.Sprintf("Participation %d", year), participationRows},
	}
	for _, sheet := range sheets {
		if err := tools.ExportToExcel(f, sheet.name, sheet.data); err != nil {
			log.Error("building report failed", "error", err, "campus_id", campusID, "sheet", sheet.name)
			response.Fail(c, response.ErrInternal.WithOrigin(err))
			return
		}
	}

	// Drop the default sheet so the report opens on real data.
	if index, err := f.GetSheetIndex("Events"); err == nil && index >= 0 {
		f.SetActiveSheet(index)
		f.DeleteSheet("Sheet1")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Error("serializing report failed", "error", err, "campus_id", campusID)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	filename := fmt.Sprintf("campus-%d-report-%s.xlsx", campusID, time.Now().Format("2006-01-02"))
	tools.SendAttachmentHeaders(c, filename, tools.ExcelContentType)
	c.Data(200, tools.ExcelContentType, buf.Bytes())

	log.Info("report exported", "campus_id", campusID, "events", len(eventRows))
}
