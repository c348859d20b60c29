package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken       ErrorCode = "AUTH_001"
	AuthExpiredToken       ErrorCode = "AUTH_002"
	AuthInvalidTokenFormat ErrorCode = "AUTH_003"
	AuthUnknownUser        ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral        ErrorCode = "VALIDATION_001"
	ValidationRequiredField  ErrorCode = "VALIDATION_002"
	ValidationInvalidAmount  ErrorCode = "VALIDATION_003"
	ValidationInvalidDate    ErrorCode = "VALIDATION_004"
	ValidationInvalidFormat  ErrorCode = "VALIDATION_005"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound     ErrorCode = "EXPENSE_001"
	ExpenseInvalidField ErrorCode = "EXPENSE_002"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNameRequired    ErrorCode = "CATEGORY_001"
	CategoryNotFound        ErrorCode = "CATEGORY_002"
	CategoryReservedName    ErrorCode = "CATEGORY_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError     ErrorCode = "SYSTEM_001"
	SystemDatabaseError     ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded ErrorCode = "SYSTEM_003"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",
	AuthUnknownUser:        "No user could be resolved for this session",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidAmount: "Amount must be a non-negative decimal number",
	ValidationInvalidDate:   "Date must be empty or formatted as YYYY-MM-DD",
	ValidationInvalidFormat: "Invalid field format",

	// Expense errors
	ExpenseNotFound:     "Expense not found",
	ExpenseInvalidField: "Unknown expense field",

	// Category errors
	CategoryNameRequired: "Category name must not be empty",
	CategoryNotFound:     "Category not found",
	CategoryReservedName: "The undefined category is reserved and cannot be deleted",

	// System errors
	SystemInternalError:     "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:     "Database connection error",
	SystemRateLimitExceeded: "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
