package service

import (
	"errors"
	"net/http"
)

var (
	ErrParamInvalid    = errors.New("Invalid request parameters.")
	ErrValidation      = errors.New("Validation failed. Please check the provided data.")
	ErrUnauthenticated = errors.New("Authentication required. Please log in.")
	ErrForbidden       = errors.New("You do not have permission to perform this action.")
	ErrAdminOnly       = errors.New("Only administrators can create posts. Please contact an admin if you need to publish content.")
	ErrNotOwner        = errors.New("You can only modify your own content unless you are an admin.")
	ErrPostNotFound    = errors.New("The requested post does not exist or has been removed.")
	ErrCommentNotFound = errors.New("The requested comment does not exist or has been removed.")
	ErrImageInvalid    = errors.New("Invalid image file type. Only JPEG, PNG, GIF, or WEBP images are allowed.")
	ErrImageTooLarge   = errors.New("Image size cannot exceed 50MB.")
	ErrTooManyRequests = errors.New("Too many requests. Please slow down.")
	UnExpectedError    = errors.New("Something went wrong. Please try again later.")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    http.StatusUnprocessableEntity,
	ErrValidation:      http.StatusUnprocessableEntity,
	ErrUnauthenticated: http.StatusUnauthorized,
	ErrForbidden:       http.StatusForbidden,
	ErrAdminOnly:       http.StatusForbidden,
	ErrNotOwner:        http.StatusForbidden,
	ErrPostNotFound:    http.StatusNotFound,
	ErrCommentNotFound: http.StatusNotFound,
	ErrImageInvalid:    http.StatusUnprocessableEntity,
	ErrImageTooLarge:   http.StatusUnprocessableEntity,
	ErrTooManyRequests: http.StatusTooManyRequests,
	UnExpectedError:    http.StatusInternalServerError,
}
