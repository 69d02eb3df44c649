package main

import "github.com/google/uuid"

// newActorID mints a stable actor id with google/uuid rather than a
// hand-rolled counter (the teacher's Entity.ID is a plain int, but the spec requires a
// "stable string" id that survives across engine resets and save/load).
func newActorID() string {
	return uuid.NewString()
}

// newRequestID mints a stable id for an outbound flower-factory request.
func newRequestID() string {
	return uuid.NewString()
}
