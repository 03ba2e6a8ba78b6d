package service

import (
	"context"
	"errors"
	"first20_backend/internal/model"
	"first20_backend/internal/repository"
	"first20_backend/internal/util"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const icsLineLimit = 75

var (
	icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)
	whitespace = regexp.MustCompile(`\s`)
)

type CalendarService struct {
	SkillRepo *repository.SkillRepository
	PlanRepo  *repository.PlanRepository
	Storage   *StorageService
}

func NewCalendarService(skillRepo *repository.SkillRepository, planRepo *repository.PlanRepository, storage *StorageService) *CalendarService {
	return &CalendarService{SkillRepo: skillRepo, PlanRepo: planRepo, Storage: storage}
}

// CalendarFilename is the download name for a skill's schedule. Every
// whitespace character becomes one underscore.
func CalendarFilename(skillName string) string {
	return whitespace.ReplaceAllString(strings.ToLower(skillName), "_") + "_schedule.ics"
}

// foldLine splits a content line at 75 octets without cutting a UTF-8
// sequence; continuation lines start with a space.
func foldLine(line string) string {
	if len(line) <= icsLineLimit {
		return line
	}
	var b strings.Builder
	limit := icsLineLimit
	width := 0
	for _, r := range line {
		n := utf8.RuneLen(r)
		if width+n > limit {
			b.WriteString("\r\n ")
			width = 0
			limit = icsLineLimit - 1
		}
		b.WriteRune(r)
		width += n
	}
	return b.String()
}

// BuildICS renders one all-day event per scheduled plan day.
func BuildICS(skill *model.Skill, plans []model.DailyPlan) []byte {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//First20Hours//App//EN",
		"CALSCALE:GREGORIAN",
	}

	for _, plan := range plans {
		if plan.ScheduledDate == nil {
			continue
		}
		date := plan.ScheduledDate.UTC().Format(util.ICSDateFormat)
		description := plan.ActionTask
		if description == "" {
			description = "Practice Session"
		}
		lines = append(lines,
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:20hours-plan-%d-%s", plan.ID, date),
			"DTSTART;VALUE=DATE:"+date,
			"SUMMARY:"+icsEscaper.Replace(fmt.Sprintf("%s - Day %d", skill.Name, plan.DayNumber)),
			"DESCRIPTION:"+icsEscaper.Replace(description),
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(foldLine(l))
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

func (s *CalendarService) load(userID, skillID uint) (*model.Skill, []model.DailyPlan, error) {
	skill, err := s.SkillRepo.FindByIDAndUserID(skillID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrSkillNotFound
		}
		return nil, nil, err
	}
	plans, err := s.PlanRepo.FindBySkillID(skill.ID)
	if err != nil {
		return nil, nil, err
	}
	return skill, plans, nil
}

// Export returns the download filename and the calendar body.
func (s *CalendarService) Export(userID, skillID uint) (string, []byte, error) {
	skill, plans, err := s.load(userID, skillID)
	if err != nil {
		return "", nil, err
	}
	return CalendarFilename(skill.Name), BuildICS(skill, plans), nil
}

// Publish uploads the calendar to storage under a stable per-skill key so
// a subscribed calendar app keeps seeing updates, and returns its URL.
func (s *CalendarService) Publish(ctx context.Context, userID, skillID uint) (string, error) {
	skill, plans, err := s.load(userID, skillID)
	if err != nil {
		return "", err
	}

	seed := strconv.FormatUint(uint64(userID), 10) + ":" + strconv.FormatUint(uint64(skill.ID), 10) + ":" + skill.CreatedAt.String()
	key := fmt.Sprintf("calendars/%s/%s", uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)), CalendarFilename(skill.Name))

	url, err := s.Storage.UploadBytes(ctx, key, BuildICS(skill, plans), util.MimeCalendar)
	if err != nil {
		return "", fmt.Errorf("publish calendar: %w", err)
	}
	return url, nil
}
