package usecases

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"expenseml-server/entities"
	"expenseml-server/repositories"
	"expenseml-server/services"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const otpValidity = 10 * time.Minute
const tokenValidity = 30 * 24 * time.Hour

type AuthUseCase struct {
	UserRepo  repositories.UserRepository
	Mailer    services.Mailer
	jwtSecret []byte
}

func NewAuthUseCase(userRepo repositories.UserRepository, mailer services.Mailer, jwtSecret []byte) *AuthUseCase {
	return &AuthUseCase{
		UserRepo:  userRepo,
		Mailer:    mailer,
		jwtSecret: jwtSecret,
	}
}

// Register creates an unverified user and mails them an OTP. When the
// email already belongs to an unverified account, the account's name,
// password and OTP are refreshed instead of creating a duplicate.
// A verified duplicate is rejected.
func (uc *AuthUseCase) Register(name, email, password string) (*entities.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password are required")
	}
	if len(password) < 6 {
		return nil, errors.New("password too short (min 6)")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(otpValidity)

	user, err := uc.UserRepo.GetByEmail(email)
	switch {
	case err == nil:
		if user.IsVerified {
			return nil, ErrEmailTaken
		}
		// Unverified retry: take the new details in case of a typo
		// the first time around, and re-issue the OTP.
		user.Name = name
		user.PasswordHash = string(hash)
		user.OTP = otp
		user.OTPExpires = &expires
		if err := uc.UserRepo.Update(user); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &entities.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			IsVerified:   false,
			OTP:          otp,
			OTPExpires:   &expires,
		}
		if err := uc.UserRepo.Create(user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := uc.Mailer.SendOTP(user.Email, user.Name, otp); err != nil {
		return nil, fmt.Errorf("email sending failed: %w", err)
	}
	return user, nil
}

// VerifyEmail checks the OTP, flips the verified flag and issues a
// session token.
func (uc *AuthUseCase) VerifyEmail(email, otp string) (*entities.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || otp == "" {
		return nil, "", errors.New("email and OTP are required")
	}

	user, err := uc.UserRepo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrNotFound
	}
	if user.IsVerified {
		return nil, "", ErrAlreadyVerified
	}
	if user.OTP == "" || user.OTP != otp || user.OTPExpires == nil || time.Now().After(*user.OTPExpires) {
		return nil, "", ErrInvalidOTP
	}

	user.IsVerified = true
	user.OTP = ""
	user.OTPExpires = nil
	if err := uc.UserRepo.Update(user); err != nil {
		return nil, "", err
	}

	token, err := uc.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the password and returns a session token. Unverified
// accounts are rejected even with the right password.
func (uc *AuthUseCase) Login(email, password string) (*entities.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.UserRepo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, "", ErrEmailNotVerified
	}

	token, err := uc.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me returns the user behind a validated token subject.
func (uc *AuthUseCase) Me(userID string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// IssueToken signs a 30-day HMAC session token carrying the user ID.
func (uc *AuthUseCase) IssueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(tokenValidity).Unix(),
	})
	return token.SignedString(uc.jwtSecret)
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
