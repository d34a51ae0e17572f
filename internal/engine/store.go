// Package engine holds the in-memory activity registry for the activities service.
package engine

import (
	"errors"

	"github.com/celerix-dev/mergington-activities/pkg/schema"
)

var (
	// ErrActivityNotFound is returned when the requested activity name is not registered.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp is returned when the email is already a participant.
	ErrAlreadySignedUp = errors.New("student is already signed up")
	// ErrNotSignedUp is returned when unregistering an email that is not a participant.
	ErrNotSignedUp = errors.New("student is not signed up for this activity")
)

// ActivityStore is the contract the HTTP layer uses to read and mutate activities.
type ActivityStore interface {
	// List returns a snapshot of every activity keyed by name.
	List() (map[string]schema.Activity, error)
	// Get returns a snapshot of a single activity.
	Get(name string) (schema.Activity, error)
	// Names returns all activity names in sorted order.
	Names() []string

	// Signup appends email to the activity's participant list.
	Signup(name, email string) error
	// Unregister removes email from the activity's participant list.
	Unregister(name, email string) error
}
