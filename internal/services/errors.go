package services

import "fmt"

// Service errors
var (
	ErrRaceArchived        = &ServiceError{Message: "race is archived"}
	ErrRaceNotFound        = &ServiceError{Message: "race not found"}
	ErrDriverNotFound      = &ServiceError{Message: "driver not found"}
	ErrParticipantNotFound = &ServiceError{Message: "participant not found"}
	ErrPicksLocked         = &ServiceError{Message: "picks are locked - qualifying has started"}
	ErrNoTablesSpecified   = &ServiceError{Message: "no tables specified"}
	ErrInvalidDelayMinutes = &ServiceError{Message: "delay minutes must be between 0 and 1440"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// InvalidTableError represents an invalid table name error
type InvalidTableError struct {
	Table string
}

func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("invalid table name: %s", e.Table)
}

// InvalidGroupError reports a driver group number outside 1..6
type InvalidGroupError struct {
	Group int
}

func (e *InvalidGroupError) Error() string {
	return fmt.Sprintf("invalid driver group: %d", e.Group)
}
