package controller

import (
	"first20_backend/internal/service"
	"first20_backend/internal/util"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ScheduleController serves the calendar, streak freeze and export
// endpoints of a skill.
type ScheduleController struct {
	CalendarService *service.CalendarService
	FreezeService   *service.FreezeService
	ExportService   *service.ExportService
}

func NewScheduleController(calendar *service.CalendarService, freeze *service.FreezeService, export *service.ExportService) *ScheduleController {
	return &ScheduleController{CalendarService: calendar, FreezeService: freeze, ExportService: export}
}

func attachment(ctx *gin.Context, filename, contentType string, data []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, contentType, data)
}

// DownloadCalendar godoc
// @Summary 下载 ICS 日历
// @Tags 日历
// @Produce text/calendar
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Param token query string false "JWT，供日历应用直接下载"
// @Success 200 {file} file
// @Failure 404 {object} util.ErrorResponse
// @Router /skills/{id}/calendar [get]
func (c *ScheduleController) DownloadCalendar(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	filename, data, err := c.CalendarService.Export(userID, skillID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	attachment(ctx, filename, util.MimeCalendar+"; charset=utf-8", data)
}

// PublishCalendar godoc
// @Summary 发布日历到对象存储
// @Tags 日历
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} object
// @Router /skills/{id}/calendar/publish [post]
func (c *ScheduleController) PublishCalendar(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	url, err := c.CalendarService.Publish(ctx.Request.Context(), userID, skillID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

type FreezeRequest struct {
	Date string `json:"date"`
}

// FreezeDay godoc
// @Summary 使用连续打卡冻结
// @Tags 日历
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Param body body FreezeRequest false "日期 YYYY-MM-DD，默认今天"
// @Success 201 {object} model.SkillFreeze
// @Failure 409 {object} util.ErrorResponse "没有剩余冻结或当天已冻结"
// @Router /skills/{id}/freeze [post]
func (c *ScheduleController) FreezeDay(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req FreezeRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	var day *time.Time
	if req.Date != "" {
		d, err := util.ParseDate(req.Date)
		if err != nil {
			util.BadRequest(ctx, "date must be YYYY-MM-DD")
			return
		}
		day = &d
	}

	freeze, err := c.FreezeService.Freeze(ctx.Request.Context(), userID, skillID, day)
	if err != nil {
		writeError(ctx, err)
		return
	}
	util.Created(ctx, freeze)
}

// ExportProgress godoc
// @Summary 导出学习进度 Excel
// @Tags 日历
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {file} file
// @Router /skills/{id}/export [get]
func (c *ScheduleController) ExportProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	skillID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	filename, data, err := c.ExportService.Workbook(userID, skillID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	attachment(ctx, filename, util.MimeXLSX, data)
}
