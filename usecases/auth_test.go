package usecases

import (
	"testing"
	"time"

	"expenseml-server/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// In-memory user store standing in for Postgres.
type fakeUserRepo struct {
	byEmail map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entities.User{}}
}

func (r *fakeUserRepo) Create(user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entities.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(email string) (*entities.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *entities.User) error {
	r.byEmail[user.Email] = user
	return nil
}

// Mailer that captures the last OTP instead of sending anything.
type fakeMailer struct {
	lastOTP string
}

func (m *fakeMailer) SendOTP(email, name, otp string) error {
	m.lastOTP = otp
	return nil
}

func newTestAuth() (*AuthUseCase, *fakeUserRepo, *fakeMailer) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	return NewAuthUseCase(repo, mailer, []byte("test-secret")), repo, mailer
}

func TestRegisterAndVerifyFlow(t *testing.T) {
	uc, repo, mailer := newTestAuth()

	user, err := uc.Register("Asha", "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.Regexp(t, `^\d{6}$`, mailer.lastOTP)

	// Wrong code is rejected. Generated codes are always >= 100000.
	_, _, err = uc.VerifyEmail("asha@example.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)

	verified, token, err := uc.VerifyEmail("asha@example.com", mailer.lastOTP)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Empty(t, verified.OTP)
	assert.NotEmpty(t, token)

	stored := repo.byEmail["asha@example.com"]
	assert.True(t, stored.IsVerified)
}

func TestRegisterRefreshesUnverifiedAccount(t *testing.T) {
	uc, repo, mailer := newTestAuth()

	_, err := uc.Register("Asha", "asha@example.com", "secret123")
	require.NoError(t, err)
	firstOTP := mailer.lastOTP

	// Retrying before verification updates the record in place.
	user, err := uc.Register("Asha Rao", "asha@example.com", "newsecret")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", user.Name)
	assert.Len(t, repo.byEmail, 1)
	assert.NotEqual(t, "", firstOTP)

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newsecret"))
	assert.NoError(t, err)
}

func TestRegisterRejectsVerifiedDuplicate(t *testing.T) {
	uc, _, mailer := newTestAuth()

	_, err := uc.Register("Asha", "asha@example.com", "secret123")
	require.NoError(t, err)
	_, _, err = uc.VerifyEmail("asha@example.com", mailer.lastOTP)
	require.NoError(t, err)

	_, err = uc.Register("Imposter", "asha@example.com", "secret456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	uc, _, mailer := newTestAuth()

	_, err := uc.Register("Asha", "asha@example.com", "secret123")
	require.NoError(t, err)

	// Unverified accounts cannot log in.
	_, _, err = uc.Login("asha@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	_, _, err = uc.VerifyEmail("asha@example.com", mailer.lastOTP)
	require.NoError(t, err)

	_, _, err = uc.Login("asha@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, token, err := uc.Login("asha@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)
	assert.NotEmpty(t, token)
}

func TestIssueTokenCarriesUserID(t *testing.T) {
	uc, _, _ := newTestAuth()

	signed, err := uc.IssueToken("user-42")
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-42", claims["id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), exp.Time, time.Minute)
}

func TestRegisterValidation(t *testing.T) {
	uc, _, _ := newTestAuth()

	_, err := uc.Register("", "a@b.com", "secret123")
	assert.Error(t, err)

	_, err = uc.Register("Asha", "a@b.com", "shor")
	assert.Error(t, err)
}
