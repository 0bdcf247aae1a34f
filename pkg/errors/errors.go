package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a failure outcome. Each code carries the HTTP status and the
// message returned to clients.
type ErrorCode struct {
	Name    string
	Status  int
	Message string
}

func (c ErrorCode) String() string {
	return c.Name
}

// Member
var (
	MemberInvalid  = ErrorCode{"MEMBER_INVALID", http.StatusBadRequest, "member information is invalid"}
	MemberNotFound = ErrorCode{"MEMBER_NOT_FOUND", http.StatusNotFound, "member not found"}
)

// OAuth
var (
	LoginError = ErrorCode{"LOGIN_ERROR", http.StatusBadRequest, "login error"}
	// AccessDenied keeps the 400 status clients already depend on.
	AccessDenied = ErrorCode{"ACCESS_DENIED", http.StatusBadRequest, "access denied"}
)

// Weather
var (
	LocationInformationNotFound       = ErrorCode{"LOCATION_INFORMATION_NOT_FOUND", http.StatusNotFound, "location information not found"}
	MemberLocationInformationNotFound = ErrorCode{"MEMBER_LOCATION_INFORMATION_NOT_FOUND", http.StatusNotFound, "member has no saved location"}
	APICallBadRequest                 = ErrorCode{"API_CALL_BAD_REQUEST", http.StatusBadRequest, "malformed response format"}
	WeatherAPIResResultIsEmpty        = ErrorCode{"WEATHER_API_RES_RESULT_IS_EMPTY", http.StatusNotFound, "weather data does not exist"}
)

// UserNotification
var (
	InvalidInputValue = ErrorCode{"INVALID_INPUT_VALUE", http.StatusBadRequest, "input value is invalid"}
	// NotExistsUserNotification is a 404 like the other not-found codes, where the first
	// release of the API answered 400.
	NotExistsUserNotification = ErrorCode{"NOT_EXISTS_USER_NOTIFICATION", http.StatusNotFound, "user notification does not exist"}
)

// Auth
var (
	JWTValueIsEmpty = ErrorCode{"JWT_VALUE_IS_EMPTY", http.StatusUnauthorized, "put the access token in the request header"}
)

// BasicNotification
var (
	BasicNotificationIsEmpty = ErrorCode{"BASIC_NOTIFICATION_IS_EMPTY", http.StatusNotFound, "basic notification data does not exist"}
)

var registry = func() map[string]ErrorCode {
	m := make(map[string]ErrorCode)
	for _, c := range []ErrorCode{
		MemberInvalid, MemberNotFound,
		LoginError, AccessDenied,
		LocationInformationNotFound, MemberLocationInformationNotFound, APICallBadRequest, WeatherAPIResResultIsEmpty,
		InvalidInputValue, NotExistsUserNotification,
		JWTValueIsEmpty,
		BasicNotificationIsEmpty,
	} {
		m[c.Name] = c
	}
	return m
}()

// Lookup returns the registered code with the given name.
func Lookup(name string) (ErrorCode, bool) {
	c, ok := registry[name]
	return c, ok
}

// AppError represents an application error
type AppError struct {
	Code ErrorCode
	Err  error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code.Message, e.Err)
	}
	return e.Code.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode reports the HTTP status for the error handler middleware.
func (e *AppError) StatusCode() int {
	return e.Code.Status
}

// Is matches another AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code.Name == e.Code.Name
}

// New creates an AppError for code
func New(code ErrorCode) *AppError {
	return &AppError{Code: code}
}

// Wrap creates an AppError for code with an underlying cause
func Wrap(code ErrorCode, err error) *AppError {
	return &AppError{Code: code, Err: err}
}

// CodeOf extracts the ErrorCode from err, if it is (or wraps) an AppError.
func CodeOf(err error) (ErrorCode, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code, true
	}
	return ErrorCode{}, false
}
