package service

import (
	"bytes"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/planner"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	sheetSummary  = "Summary"
	sheetPlan     = "Plan"
	sheetSessions = "Sessions"
)

type ExportService struct {
	SkillRepo     *repository.SkillRepository
	PlanRepo      *repository.PlanRepository
	SessionRepo   *repository.SessionRepository
	TargetMinutes int
}

func NewExportService(
	skillRepo *repository.SkillRepository,
	planRepo *repository.PlanRepository,
	sessionRepo *repository.SessionRepository,
	targetMinutes int,
) *ExportService {
	return &ExportService{
		SkillRepo:     skillRepo,
		PlanRepo:      planRepo,
		SessionRepo:   sessionRepo,
		TargetMinutes: targetMinutes,
	}
}

func ExportFilename(skillName string) string {
	return strings.TrimSuffix(CalendarFilename(skillName), "_schedule.ics") + "_progress.xlsx"
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// Workbook renders the skill's summary, plan and session log.
func (s *ExportService) Workbook(userID, skillID uint) (string, []byte, error) {
	skill, err := s.SkillRepo.FindByIDAndUserID(skillID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrSkillNotFound
		}
		return "", nil, err
	}
	plans, err := s.PlanRepo.FindBySkillID(skill.ID)
	if err != nil {
		return "", nil, err
	}
	sessions, err := s.SessionRepo.FindBySkillID(skill.ID)
	if err != nil {
		return "", nil, err
	}

	total := 0
	for _, sess := range sessions {
		total += sess.DurationMinutes
	}
	progress := planner.ComputeProgress(total, skill.DailyMinutes, s.TargetMinutes)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return "", nil, err
	}
	for _, name := range []string{sheetPlan, sheetSessions} {
		if _, err := f.NewSheet(name); err != nil {
			return "", nil, err
		}
	}

	summary := [][]interface{}{
		{"Skill", skill.Name},
		{"Target", skill.TargetDefinition},
		{"Status", string(skill.Status)},
		{"Daily minutes", skill.DailyMinutes},
		{"Total minutes", progress.TotalMinutes},
		{"Hours done", progress.HoursDone},
		{"Percentage", progress.Percentage},
		{"Current day", progress.CurrentDay},
	}

	planRows := [][]interface{}{{"Day", "Date", "Focus", "Task", "Minutes", "Resources"}}
	for _, p := range plans {
		date := ""
		if p.ScheduledDate != nil {
			date = p.ScheduledDate.UTC().Format(util.DateFormat)
		}
		links := make([]string, 0, len(p.Resources))
		for _, r := range p.Resources {
			links = append(links, fmt.Sprintf("%s (%s)", r.Title, r.URL))
		}
		planRows = append(planRows, []interface{}{p.DayNumber, date, p.FocusTopic, p.ActionTask, p.SuggestedDurationMinutes, strings.Join(links, "; ")})
	}

	sessionRows := [][]interface{}{{"Date", "Minutes", "Difficulty", "Takeaway", "Reflection"}}
	for _, sess := range sessions {
		var difficulty model.Difficulty
		var takeaway, content string
		if len(sess.Reflections) > 0 {
			r := sess.Reflections[len(sess.Reflections)-1]
			difficulty, takeaway, content = r.Difficulty, r.KeyTakeaway, r.Content
		}
		sessionRows = append(sessionRows, []interface{}{sess.Date.UTC().Format(util.TimeFormat), sess.DurationMinutes, string(difficulty), takeaway, content})
	}

	for sheet, rows := range map[string][][]interface{}{
		sheetSummary:  summary,
		sheetPlan:     planRows,
		sheetSessions: sessionRows,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return "", nil, fmt.Errorf("write %s: %w", sheet, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", nil, fmt.Errorf("render workbook: %w", err)
	}
	return ExportFilename(skill.Name), buf.Bytes(), nil
}
