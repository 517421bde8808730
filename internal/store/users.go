package store

import (
	"errors"
	"fmt"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// User loads one user by id.
func (t *Tx) User(id string) (*model.User, error) {
	var u model.User
	if err := t.get(userKey(id), &u); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: usuario no encontrado", model.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

// UserByUsername resolves a user through the unique username index.
func (t *Tx) UserByUsername(username string) (*model.User, error) {
	var id string
	if err := t.get(userNameKey(username), &id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: usuario no encontrado", model.ErrNotFound)
		}
		return nil, err
	}
	return t.User(id)
}

// UserByEmail resolves a user through the unique email index.
func (t *Tx) UserByEmail(email string) (*model.User, error) {
	var id string
	if err := t.get(userEmailKey(email), &id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: usuario no encontrado", model.ErrNotFound)
		}
		return nil, err
	}
	return t.User(id)
}

// InsertUser writes a new user together with its unique email and
// username indexes. Either index already existing rejects the insert.
func (t *Tx) InsertUser(u *model.User) error {
	emailTaken, err := t.exists(userEmailKey(u.Email))
	if err != nil {
		return err
	}
	if emailTaken {
		return fmt.Errorf("%w: el email ya está registrado", model.ErrConflict)
	}
	nameTaken, err := t.exists(userNameKey(u.Username))
	if err != nil {
		return err
	}
	if nameTaken {
		return fmt.Errorf("%w: el nombre de usuario ya está en uso", model.ErrConflict)
	}
	if err := t.set(userEmailKey(u.Email), u.ID); err != nil {
		return err
	}
	if err := t.set(userNameKey(u.Username), u.ID); err != nil {
		return err
	}
	return t.set(userKey(u.ID), u)
}

// Store-level convenience wrappers.

// CreateUser inserts a user enforcing email and username uniqueness.
func (s *Store) CreateUser(u *model.User) error {
	return s.Update(func(tx *Tx) error {
		return tx.InsertUser(u)
	})
}

// User loads one user by id.
func (s *Store) User(id string) (*model.User, error) {
	var u *model.User
	err := s.View(func(tx *Tx) error {
		var err error
		u, err = tx.User(id)
		return err
	})
	return u, err
}

// UserByUsername resolves a user by unique username.
func (s *Store) UserByUsername(username string) (*model.User, error) {
	var u *model.User
	err := s.View(func(tx *Tx) error {
		var err error
		u, err = tx.UserByUsername(username)
		return err
	})
	return u, err
}

// UserByEmail resolves a user by unique email.
func (s *Store) UserByEmail(email string) (*model.User, error) {
	var u *model.User
	err := s.View(func(tx *Tx) error {
		var err error
		u, err = tx.UserByEmail(email)
		return err
	})
	return u, err
}
