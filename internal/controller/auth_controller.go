package controller

import (
	"first20_backend/internal/service"
	"first20_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// SignupRequest defines model for registration
// swagger:model SignupRequest
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// TokenRequest accepts both the OAuth2 password form and JSON.
type TokenRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type UserResponse struct {
	ID                     uint      `json:"id"`
	Email                  string    `json:"email"`
	Username               string    `json:"username"`
	StreakFreezesAvailable int       `json:"streak_freezes_available"`
	CreatedAt              time.Time `json:"created_at"`
	LastSeen               time.Time `json:"last_seen"`
}

// Signup godoc
// @Summary 注册新用户
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body SignupRequest true "用户注册信息"
// @Success 201 {object} UserResponse "创建成功"
// @Failure 400 {object} util.ErrorResponse "请求参数错误"
// @Failure 409 {object} util.ErrorResponse "邮箱已被注册"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req.Email, req.Username, req.Password)
	if err != nil {
		writeError(ctx, err)
		return
	}

	util.Created(ctx, UserResponse{
		ID:                     user.ID,
		Email:                  user.Email,
		Username:               user.Username,
		StreakFreezesAvailable: user.StreakFreezesAvailable,
		CreatedAt:              user.CreatedAt,
		LastSeen:               user.LastSeen,
	})
}

// Token godoc
// @Summary 登录获取访问令牌
// @Description OAuth2 password flow, username is the account email
// @Tags 认证
// @Accept  x-www-form-urlencoded
// @Produce  json
// @Param   username formData string true "邮箱"
// @Param   password formData string true "密码"
// @Success 200 {object} service.Token
// @Failure 401 {object} util.ErrorResponse "邮箱或密码错误"
// @Router /auth/token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	var req TokenRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		writeError(ctx, err)
		return
	}

	// OAuth2 客户端需要裸响应
	ctx.JSON(http.StatusOK, token)
}

// Me godoc
// @Summary 当前用户信息
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.AuthService.Profile(userID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	util.Success(ctx, UserResponse{
		ID:                     user.ID,
		Email:                  user.Email,
		Username:               user.Username,
		StreakFreezesAvailable: user.StreakFreezesAvailable,
		CreatedAt:              user.CreatedAt,
		LastSeen:               user.LastSeen,
	})
}
