package auth

import (
	"context"
	"errors"

	"github.com/pquerna/otp/totp"

	"hrlite/internal/platform/crypto"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSignupDisabled     = errors.New("self signup disabled")
	ErrMFARequired        = errors.New("mfa code required")
	ErrMFAInvalid         = errors.New("invalid mfa code")
	ErrMFANotEnrolled     = errors.New("mfa not enrolled")
)

type Service struct {
	Store       *Store
	Codec       *TokenCodec
	Crypto      *crypto.Service
	AllowSignup bool
}

func NewService(store *Store, codec *TokenCodec, cryptoSvc *crypto.Service, allowSignup bool) *Service {
	return &Service{Store: store, Codec: codec, Crypto: cryptoSvc, AllowSignup: allowSignup}
}

// Register creates an account. Syntactic checks on email and password
// happen at the transport boundary; the store's unique index is the
// authority on duplicates.
func (s *Service) Register(ctx context.Context, email, password string, role Role) (User, error) {
	if !s.AllowSignup {
		return User{}, ErrSignupDisabled
	}

	if _, err := s.Store.FindByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	return s.Store.CreateUser(ctx, email, hash, role)
}

type LoginResult struct {
	Token string
	Role  Role
	Email string
}

// Login authenticates and issues a token. All failure modes collapse
// into ErrInvalidCredentials so callers cannot probe which emails exist;
// only the MFA errors are distinguishable, and those already require a
// correct password.
func (s *Service) Login(ctx context.Context, email, password, mfaCode string) (LoginResult, error) {
	user, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.MFAEnabled {
		if mfaCode == "" {
			return LoginResult{}, ErrMFARequired
		}
		secret, err := s.Crypto.DecryptString(user.MFASecretEnc)
		if err != nil || secret == "" || !totp.Validate(mfaCode, secret) {
			return LoginResult{}, ErrMFAInvalid
		}
	}

	token, err := s.Codec.Issue(user.ID, user.Role, user.Email)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Role: user.Role, Email: user.Email}, nil
}

type MFAEnrollment struct {
	Secret     string
	OTPAuthURL string
}

func (s *Service) EnrollMFA(ctx context.Context, userID, email string) (MFAEnrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "hrlite", AccountName: email})
	if err != nil {
		return MFAEnrollment{}, err
	}

	secretEnc, err := s.Crypto.EncryptString(key.Secret())
	if err != nil {
		return MFAEnrollment{}, err
	}
	if err := s.Store.SetMFASecret(ctx, userID, secretEnc); err != nil {
		return MFAEnrollment{}, err
	}
	return MFAEnrollment{Secret: key.Secret(), OTPAuthURL: key.URL()}, nil
}

func (s *Service) VerifyMFA(ctx context.Context, userID, code string) error {
	secretEnc, err := s.Store.MFASecret(ctx, userID)
	if err != nil {
		return err
	}
	if len(secretEnc) == 0 {
		return ErrMFANotEnrolled
	}

	secret, err := s.Crypto.DecryptString(secretEnc)
	if err != nil {
		return err
	}
	if !totp.Validate(code, secret) {
		return ErrMFAInvalid
	}
	return s.Store.SetMFAEnabled(ctx, userID, true)
}
