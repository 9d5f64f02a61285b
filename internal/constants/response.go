package constants

// Standard Response Field Keys
const (
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
	ResponseFieldSuccess = "success"
	ResponseFieldUser    = "user"
)

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldMessage: message,
	}
}

// BuildUserResponse wraps a user payload, optionally with a message.
func BuildUserResponse(message string, user any) map[string]any {
	response := map[string]any{
		ResponseFieldUser: user,
	}
	if message != "" {
		response[ResponseFieldSuccess] = true
		response[ResponseFieldMessage] = message
	}
	return response
}
