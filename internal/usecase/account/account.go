package usecase_account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/filmnest/core/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInternal           = errors.New("internal error")
)

const minPasswordLen = 6

type UserRepository interface {
	Insert(ctx context.Context, u model.User) error
	LoadByEmail(ctx context.Context, email string) (model.User, error)
	LoadByID(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// Cleaner removes all rows owned by a user from one collection.
type Cleaner interface {
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
	Revoke(token string) error
}

type Usecase struct {
	users     UserRepository
	watchlist Cleaner
	reviews   Cleaner
	tokens    TokenIssuer
}

func New(users UserRepository, watchlist, reviews Cleaner, tokens TokenIssuer) *Usecase {
	return &Usecase{
		users:     users,
		watchlist: watchlist,
		reviews:   reviews,
		tokens:    tokens,
	}
}

func (u *Usecase) SignUp(ctx context.Context, email, password, confirm string) (model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, ErrInvalidEmail
	}
	if password != confirm {
		return model.User{}, ErrPasswordMismatch
	}
	if len(password) < minPasswordLen {
		return model.User{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := u.users.Insert(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return user, nil
}

// SignIn returns the user and a session token. A missing user and a wrong
// password both surface as ErrInvalidCredentials so the response does not
// leak which one failed.
func (u *Usecase) SignIn(ctx context.Context, email, password string) (model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := u.users.LoadByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.User{}, "", ErrInvalidCredentials
		}
		return model.User{}, "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.User{}, "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return user, token, nil
}

func (u *Usecase) SignOut(ctx context.Context, token string) error {
	if err := u.tokens.Revoke(token); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}

func (u *Usecase) Get(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := u.users.LoadByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return user, nil
}

func (u *Usecase) UpdatePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if len(next) < minPasswordLen {
		return ErrPasswordTooShort
	}

	user, err := u.users.LoadByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := u.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return nil
}

// DeleteAccount removes the user's watchlist rows, then their reviews, then
// the user record. There is no surrounding transaction: if the final delete
// fails, the rows already removed stay removed.
func (u *Usecase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := u.watchlist.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if err := u.reviews.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := u.users.DeleteByID(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	return nil
}
