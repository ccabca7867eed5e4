package core

import "errors"

var (
	// ErrCollaborator marks failures of an external collaborator (route
	// simulator, terrain oracle, distance primitive). Rules that have no safe
	// permissive fallback wrap this instead of silently defaulting, so the
	// solver can tell a broken oracle from an infeasible candidate.
	ErrCollaborator = errors.New("collaborator failure")

	// ErrNoHomeAirport is returned when a sequence evaluation is asked about
	// a drone without a home airport to start from.
	ErrNoHomeAirport = errors.New("drone has no home airport")

	// ErrUnknownTask is returned by route replay when an assignment
	// references a task id that is not in the task set.
	ErrUnknownTask = errors.New("unknown task id")
)
