package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// GinKeyRequestBody holds the decoded body set by ValidateRequestBody.
const GinKeyRequestBody = "validated_body"

type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{validate: validator.New()}
}

// ValidateRequestBody decodes the body into factory()'s value, rejecting
// unknown fields, and runs struct validation. The result is stored under
// GinKeyRequestBody for the handler.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				logger.WarnWithContext(ctx, "Failed to read request body").
					Path(c.Request.URL.Path).
					Err(err).
					Log()
				c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, nil))
				c.Abort()
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		request := factory()

		dec := json.NewDecoder(bytes.NewReader(bodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(request); err != nil {
			logger.WarnWithContext(ctx, "Request body rejected").
				Path(c.Request.URL.Path).
				Int("body_size", len(bodyBytes)).
				Err(err).
				Log()
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, err.Error()))
			c.Abort()
			return
		}

		if err := m.validate.Struct(request); err != nil {
			details := validation.Messages(err)
			logger.WarnWithContext(ctx, "Request validation failed").
				Path(c.Request.URL.Path).
				Int("error_count", len(details)).
				Log()
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, details))
			c.Abort()
			return
		}

		c.Set(GinKeyRequestBody, request)
		c.Next()
	}
}
