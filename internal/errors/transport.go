package errors

import (
	"context"
	"errors"
	"net/url"
)

// MapTransportError maps a failed round trip to an AppError carrying the
// underlying transport message. Context cancellation keeps its own message.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		msg = urlErr.Err.Error()
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		msg = "request timed out"
	case errors.Is(err, context.Canceled):
		msg = "request canceled"
	}

	return &AppError{
		Code:    ErrCodeTransport,
		Message: msg,
		Cause:   err,
	}
}
