package handler

import (
	"net/http"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/dto"
	apperrors "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/errors"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/middleware"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/service"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/validation"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates an account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid register request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.Messages(err)))
		return
	}

	result, err := h.authService.Register(ctx, service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.LogAuth(result.User.ID, "register", true)
	c.JSON(http.StatusOK, dto.AuthResponse{User: dto.NewUserResponse(result.User), Token: result.Token})
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.Messages(err)))
		return
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.LogAuth("", "login", false)
		respondError(c, err)
		return
	}

	logger.LogAuth(result.User.ID, "login", true)
	c.JSON(http.StatusOK, dto.AuthResponse{User: dto.NewUserResponse(result.User), Token: result.Token})
}

// Logout revokes the presented token. It always succeeds unless the
// session store is unreachable.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	token, _ := middleware.BearerToken(c.GetHeader(constants.HeaderAuthorization))
	if err := h.authService.Logout(ctx, token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgLoggedOut))
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}
	c.JSON(http.StatusOK, dto.UserEnvelope{User: dto.NewUserResponse(user)})
}

// UpdateProfile expects the body already decoded by ValidateRequestBody.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateProfile")

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	req, ok := c.MustGet(middleware.GinKeyRequestBody).(*dto.UpdateProfileRequest)
	if !ok {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, nil))
		return
	}

	user, err := h.authService.UpdateProfile(ctx, userID, req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserEnvelope{User: dto.NewUserResponse(user)})
}

func (h *AuthHandler) CompleteOnboarding(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CompleteOnboarding")

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(constants.MsgUnauthorized, nil))
		return
	}

	user, err := h.authService.CompleteOnboarding(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OnboardingResponse{
		Message: constants.MsgOnboardingCompleted,
		User:    dto.NewUserResponse(user),
	})
}

// Me reports the caller's identity without requiring one.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, dto.MeResponse{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{Authenticated: true, User: dto.NewUserResponse(user)})
}

// respondError renders a service error with its mapped status. Wrapped
// causes never reach the client.
func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorWithContext(c.Request.Context(), "Request failed").
			Path(c.Request.URL.Path).
			StatusCode(status).
			Err(err).
			Log()
	}
	c.JSON(status, constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}
