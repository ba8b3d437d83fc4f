package service

import domainerrors "yamdb/internal/errors"

// slugConflict attaches the slug field to a uniqueness failure.
func slugConflict(err error) error {
	if domainerrors.Is(err, domainerrors.ErrConflict) {
		return domainerrors.ConflictOn("slug", "this slug is already in use")
	}
	return err
}
