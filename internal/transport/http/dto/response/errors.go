package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrMissingCredentials = ErrorResponse{
		Status:  "error",
		Error:   "missing_credentials",
		Details: "Required fields: email, password",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrInvalidRegisterRequest = ErrorResponse{
		Status:  "error",
		Error:   "invalid_register_request",
		Details: "Invalid registration data",
	}

	ErrUserAlreadyExists = ErrorResponse{
		Status:  "error",
		Error:   "user_already_exists",
		Details: "User with this email already exists",
	}

	ErrTokenRequired = ErrorResponse{
		Status:  "error",
		Error:   "token_required",
		Details: "Refresh token is required",
	}

	ErrInvalidToken = ErrorResponse{
		Status:  "error",
		Error:   "invalid_token",
		Details: "Invalid or missing refresh token",
	}
)
