package client

import (
	"errors"
	"fmt"
)

var (
	// ErrRemoteCall - любой сбой обращения к серверу: сеть, таймаут, статус ответа
	ErrRemoteCall = errors.New("remote call failed")

	ErrUnauthorized = errors.New("authorization required")
	ErrForbidden    = errors.New("invalid or expired token")
	ErrNotFound     = errors.New("trip not found")
	ErrNoSession    = errors.New("not logged in")
)

// RemoteCallError описывает неудачный запрос к серверу
type RemoteCallError struct {
	Op     string
	Status int
	Err    error
}

func (e *RemoteCallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// Is позволяет проверять любую ошибку запроса через errors.Is(err, ErrRemoteCall)
func (e *RemoteCallError) Is(target error) bool {
	return target == ErrRemoteCall
}
