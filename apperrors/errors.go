package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a business failure with a stable code, the HTTP status it maps
// to and a message that is safe to show to the caller.
type AppError struct {
	Code    int
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code, status int, message string) *AppError {
	return &AppError{Code: code, Status: status, Message: message}
}

// Wrap returns a copy of e carrying err as its cause.
func (e *AppError) Wrap(err error) *AppError {
	return &AppError{Code: e.Code, Status: e.Status, Message: e.Message, Err: err}
}

// Is reports whether err is an AppError with the same code as target.
func Is(err error, target *AppError) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == target.Code
	}
	return false
}

// CodeOf returns the code of err, or CodeServerError for foreign errors.
func CodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeServerError
}

// StatusOf returns the HTTP status of err, or 500 for foreign errors.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the caller-facing message of err.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return DefaultMessage
}

const DefaultMessage = "Something went wrong, please try again"

const (
	// permission 10000-10999
	CodeNotOwner       = 10001
	CodeNotParticipant = 10002
	CodeRoleMismatch   = 10003
	CodeForbidden      = 10004
	CodeUnauthorized   = 10005

	// state 11000-11999
	CodeInvalidState     = 11001
	CodeNotEligible      = 11002
	CodeConcurrentUpdate = 11003

	// precondition 12000-12999
	CodeMissingContact = 12001
	CodeSelfHelp       = 12002
	CodeHelperNotFound = 12003
	CodeMissingField   = 12004
	CodeInvalidRating  = 12005
	CodeInvalidParams  = 12006
	CodeSelfReport     = 12007

	// duplicate 13000-13999
	CodeAlreadyOffered   = 13001
	CodeAlreadyRated     = 13002
	CodeAlreadyConfirmed = 13003
	CodeAlreadyReported  = 13004
	CodeEmailTaken       = 13005

	// not found 14000-14999
	CodeFavorNotFound        = 14001
	CodeUserNotFound         = 14002
	CodeNotificationNotFound = 14003
	CodeReportNotFound       = 14004

	// auth 15000-15999
	CodeInvalidCredentials = 15001
	CodeTooManyRequests    = 15002

	CodeServerError = 50001
	CodeDBError     = 50002
)

// Permission errors
var (
	ErrNotOwner       = New(CodeNotOwner, http.StatusForbidden, "Only the owner of the favor can do this")
	ErrNotParticipant = New(CodeNotParticipant, http.StatusForbidden, "You are not part of this favor")
	ErrRoleMismatch   = New(CodeRoleMismatch, http.StatusForbidden, "The role does not match your part in this favor")
	ErrForbidden      = New(CodeForbidden, http.StatusForbidden, "You are not allowed to do this")
	ErrUnauthorized   = New(CodeUnauthorized, http.StatusUnauthorized, "Authentication required")
)

// State errors
var (
	ErrInvalidState     = New(CodeInvalidState, http.StatusConflict, "The favor is not in a state that allows this")
	ErrNotEligible      = New(CodeNotEligible, http.StatusConflict, "This favor cannot be rated yet")
	ErrConcurrentUpdate = New(CodeConcurrentUpdate, http.StatusConflict, "The favor was changed by someone else, reload and try again")
)

// Precondition errors
var (
	ErrMissingContact = New(CodeMissingContact, http.StatusBadRequest, "Add a phone number to your profile before offering help")
	ErrSelfHelp       = New(CodeSelfHelp, http.StatusBadRequest, "You cannot offer help on your own favor")
	ErrHelperNotFound = New(CodeHelperNotFound, http.StatusBadRequest, "That user has not offered help on this favor")
	ErrMissingField   = New(CodeMissingField, http.StatusBadRequest, "A required field is missing")
	ErrInvalidRating  = New(CodeInvalidRating, http.StatusBadRequest, "Ratings must be between 1 and 5 stars")
	ErrInvalidParams  = New(CodeInvalidParams, http.StatusBadRequest, "Invalid parameters")
	ErrSelfReport     = New(CodeSelfReport, http.StatusBadRequest, "You cannot report your own content")
)

// Duplicate errors
var (
	ErrAlreadyOffered   = New(CodeAlreadyOffered, http.StatusConflict, "You already offered help on this favor")
	ErrAlreadyRated     = New(CodeAlreadyRated, http.StatusConflict, "You already rated this favor")
	ErrAlreadyConfirmed = New(CodeAlreadyConfirmed, http.StatusConflict, "You already confirmed this favor")
	ErrAlreadyReported  = New(CodeAlreadyReported, http.StatusConflict, "You already reported this content")
	ErrEmailTaken       = New(CodeEmailTaken, http.StatusConflict, "Email already registered")
)

// Not-found errors
var (
	ErrFavorNotFound        = New(CodeFavorNotFound, http.StatusNotFound, "Favor not found")
	ErrUserNotFound         = New(CodeUserNotFound, http.StatusNotFound, "User not found")
	ErrNotificationNotFound = New(CodeNotificationNotFound, http.StatusNotFound, "Notification not found")
	ErrReportNotFound       = New(CodeReportNotFound, http.StatusNotFound, "Report not found")
)

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, http.StatusUnauthorized, "Invalid email or password")
	ErrTooManyRequests    = New(CodeTooManyRequests, http.StatusTooManyRequests, "Too many requests, slow down")
	ErrServerError        = New(CodeServerError, http.StatusInternalServerError, DefaultMessage)
	ErrDBError            = New(CodeDBError, http.StatusInternalServerError, "Database error")
)
