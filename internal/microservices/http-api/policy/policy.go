// Package policy decides who may do what to which resource.
// Every role check in the HTTP API goes through Authorize.
package policy

import (
	"fmt"

	domainerrors "yamdb/internal/errors"
	"yamdb/internal/microservices/http-api/models"
)

type Resource int

const (
	Category Resource = iota
	Genre
	Title
	Review
	Comment
	User    // full user management
	Profile // the caller's own record
)

var resourceNames = [...]string{"category", "genre", "title", "review", "comment", "user", "profile"}

func (r Resource) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return "unknown"
}

type Action int

const (
	Read Action = iota
	Create
	Update
	Delete
)

var actionNames = [...]string{"read", "create", "update", "delete"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

type Decision int

const (
	Allow Decision = iota
	Unauthorized
	Forbidden
)

// Subject is the caller. The zero value is an anonymous caller.
type Subject struct {
	UserID string
	Role   models.Role
}

func Anonymous() Subject {
	return Subject{}
}

func SubjectOf(u *models.User) Subject {
	if u == nil {
		return Anonymous()
	}
	return Subject{UserID: u.ID, Role: u.Role}
}

func (s Subject) Authenticated() bool {
	return s.UserID != ""
}

// Authorize evaluates one request. ownerID is the author of the target object for
// Review and Comment updates and deletes; it is ignored elsewhere.
func Authorize(s Subject, res Resource, act Action, ownerID string) Decision {
	switch res {
	case Category, Genre, Title:
		if act == Read {
			return Allow
		}
		return require(s, s.Role.IsAdmin())

	case Review, Comment:
		switch act {
		case Read:
			return Allow
		case Create:
			return require(s, true)
		default:
			isOwner := ownerID != "" && s.UserID == ownerID
			return require(s, isOwner || s.Role.AtLeast(models.RoleModerator))
		}

	case User:
		return require(s, s.Role.IsAdmin())

	case Profile:
		return require(s, act == Read || act == Update)
	}
	return require(s, false)
}

// require turns a privilege check into a decision, reporting anonymous callers as
// Unauthorized before anything else.
func require(s Subject, ok bool) Decision {
	if !s.Authenticated() {
		return Unauthorized
	}
	if !ok {
		return Forbidden
	}
	return Allow
}

// Enforce is Authorize reported as a domain error. nil means allowed.
func Enforce(s Subject, res Resource, act Action, ownerID string) error {
	switch Authorize(s, res, act, ownerID) {
	case Allow:
		return nil
	case Unauthorized:
		return domainerrors.Unauthorized("authentication credentials were not provided")
	default:
		return domainerrors.Forbidden(fmt.Sprintf("you do not have permission to %s this %s", act, res))
	}
}
