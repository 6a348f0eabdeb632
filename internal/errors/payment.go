package errors

var (
	ErrValidation = &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: "invalid request",
		Status:  400,
	}
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "payment method not found",
		Status:  404,
	}
	ErrPayment = &DomainError{
		Code:    "PAYMENT_ERROR",
		Message: "payment failed",
		Status:  422,
	}
	ErrGatewayNotConfigured = &DomainError{
		Code:    "CONFIGURATION_ERROR",
		Message: "payment service not configured",
		Status:  503,
	}
	ErrServer = &DomainError{
		Code:    "SERVER_ERROR",
		Message: "internal server error",
		Status:  500,
	}
)
