// Package service contains the auth subsystem layered on the local store.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/lowtide/localbase/internal/crypto"
	"github.com/lowtide/localbase/internal/errs"
	"github.com/lowtide/localbase/internal/limiter"
	"github.com/lowtide/localbase/internal/model"
	"github.com/lowtide/localbase/internal/query"
	"github.com/lowtide/localbase/internal/storage"
)

// UsersCollection is the collection holding account records.
const UsersCollection = "users"

// DefaultSessionTTL is the session lifetime applied when none is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

// AuthService defines sign-up, sign-in and session operations. At most one
// session exists at a time; every state-changing call replaces or removes
// it wholesale.
type AuthService interface {
	// SignUp creates a user, opens a session and returns the public user.
	SignUp(ctx context.Context, email, password string) (model.PublicUser, error)
	// SignIn verifies credentials and opens a fresh session.
	SignIn(ctx context.Context, email, password string) (model.PublicUser, error)
	// SignOut removes the current session. Idempotent, never fails.
	SignOut(ctx context.Context)
	// Session returns the current non-expired session, or errs.ErrNoSession.
	Session(ctx context.Context) (model.Session, error)
	// CurrentUser returns the user of the current session, or errs.ErrNoSession.
	CurrentUser(ctx context.Context) (model.PublicUser, error)
}

type AuthServiceImpl struct {
	client  *query.Client
	store   storage.Store
	signKey []byte
	ttl     time.Duration
	lim     limiter.Limiter

	now func() time.Time
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(client *query.Client, store storage.Store, signKey []byte, ttl time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthServiceImpl{
		client:  client,
		store:   store,
		signKey: signKey,
		ttl:     ttl,
		lim:     lim,
		now:     time.Now,
	}
}

// SignUp creates a user record with a hashed password and role "user".
// A duplicate email fails with errs.ErrAlreadyExists before anything is
// written.
func (s *AuthServiceImpl) SignUp(ctx context.Context, email, password string) (model.PublicUser, error) {
	if email == "" || password == "" {
		return model.PublicUser{}, errors.New("empty email/password")
	}
	if _, err := s.client.From(UsersCollection).Eq("email", email).Single(); err == nil {
		return model.PublicUser{}, errs.ErrAlreadyExists
	}

	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}
	inserted, err := s.client.From(UsersCollection).Insert([]model.Record{{
		"email":         email,
		"password_hash": hash,
		"role":          "user",
	}})
	if err != nil {
		return model.PublicUser{}, err
	}

	u, err := recordToUser(inserted[0])
	if err != nil {
		return model.PublicUser{}, err
	}
	pub := u.Public()
	if err := s.openSession(pub); err != nil {
		return model.PublicUser{}, err
	}
	return pub, nil
}

// SignIn verifies credentials against the users collection and replaces the
// session. Unknown emails and wrong passwords fail identically so account
// existence is not revealed.
func (s *AuthServiceImpl) SignIn(ctx context.Context, email, password string) (model.PublicUser, error) {
	allowed, _, err := s.lim.Allow(ctx, email)
	if err != nil {
		return model.PublicUser{}, err
	}
	if !allowed {
		return model.PublicUser{}, errs.ErrRateLimited
	}

	rec, err := s.client.From(UsersCollection).Eq("email", email).Single()
	var u model.User
	if err == nil {
		u, err = recordToUser(rec)
	}
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email); ferr == nil && blocked {
			return model.PublicUser{}, errs.ErrRateLimited
		}
		return model.PublicUser{}, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email)

	pub := u.Public()
	if err := s.openSession(pub); err != nil {
		return model.PublicUser{}, err
	}
	return pub, nil
}

// SignOut deletes the session key unconditionally.
func (s *AuthServiceImpl) SignOut(context.Context) {
	s.store.Delete(storage.SessionKey)
}

// Session reads the session key. A stale or undecodable session is deleted
// as a side effect and reported as errs.ErrNoSession; this lazy check is
// the only place expiry is enforced.
func (s *AuthServiceImpl) Session(context.Context) (model.Session, error) {
	data, ok := s.store.Get(storage.SessionKey)
	if !ok {
		return model.Session{}, errs.ErrNoSession
	}
	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.store.Delete(storage.SessionKey)
		return model.Session{}, errs.ErrNoSession
	}
	if sess.Expired(s.now()) {
		s.store.Delete(storage.SessionKey)
		return model.Session{}, errs.ErrNoSession
	}
	return sess, nil
}

// CurrentUser returns the user carried by the current session.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context) (model.PublicUser, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return model.PublicUser{}, err
	}
	return sess.User, nil
}

// openSession issues a signed token and replaces the session key.
func (s *AuthServiceImpl) openSession(u model.PublicUser) error {
	token, exp, err := s.issueAccessToken(u.ID)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	sess := model.Session{User: u, AccessToken: token, ExpiresAt: exp}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.store.Set(storage.SessionKey, data); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// issueAccessToken creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueAccessToken(userID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

// recordToUser converts a users-collection record into the typed User via a
// JSON round trip, which also normalizes timestamp strings.
func recordToUser(rec model.Record) (model.User, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return model.User{}, err
	}
	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}
