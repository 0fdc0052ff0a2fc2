package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/logger"
	"github.com/authgate/authgate/internal/mock"
	"github.com/authgate/authgate/internal/store"
	"github.com/authgate/authgate/internal/token"
	"github.com/authgate/authgate/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSignKey  = "test-sign-key"
	testIssuer   = "authgate-test"
	testPassword = "Abc123!@"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		TokenSignKey:    testSignKey,
		TokenIssuer:     testIssuer,
		PartialTokenTTL: 10 * time.Minute,
		FullTokenTTL:    2 * time.Hour,
		TOTPIssuer:      "2FA Code",
	}
}

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(testSignKey, testIssuer)
	require.NoError(t, err)
	return codec
}

// newTestAuthSvc builds an authService against a gomock UserRepository.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository, *token.Codec) {
	t.Helper()
	repo := mock.NewMockUserRepository(ctrl)
	codec := newTestCodec(t)
	svc := NewAuthService(repo, codec, testAuthConfig(), logger.Nop())
	return svc, repo, codec
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func enabledUser(t *testing.T) models.User {
	t.Helper()
	return models.User{
		UserID:       42,
		Email:        "a@b.com",
		PasswordHash: hashPassword(t, testPassword),
		Enabled:      true,
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success_SetupHintWithoutSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, codec := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByEmail(ctx, "a@b.com").Return(enabledUser(t), nil)

	result, err := svc.Login(ctx, "a@b.com", testPassword)
	require.NoError(t, err)

	assert.Equal(t, models.NextSetup2FA, result.Next)

	claims, err := codec.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.False(t, claims.FullAuth, "login must issue a partial credential")
}

func TestLogin_Success_VerifyHintWithSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := enabledUser(t)
	user.TOTPSecret = "STOREDSECRETBASE32"
	repo.EXPECT().FindUserByEmail(ctx, "a@b.com").Return(user, nil)

	result, err := svc.Login(ctx, "a@b.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, models.NextVerify2FA, result.Next)
}

func TestLogin_UnknownEmail_UniformError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByEmail(ctx, "ghost@b.com").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(ctx, "ghost@b.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount_UniformError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := enabledUser(t)
	user.Enabled = false
	repo.EXPECT().FindUserByEmail(ctx, "a@b.com").Return(user, nil)

	_, err := svc.Login(ctx, "a@b.com", testPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword_UniformError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByEmail(ctx, "a@b.com").Return(enabledUser(t), nil)

	_, err := svc.Login(ctx, "a@b.com", "Wrong123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingFields_NoStoreAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", testPassword)
	assert.ErrorIs(t, err, ErrValidationMissingFields)

	_, err = svc.Login(ctx, "a@b.com", "")
	assert.ErrorIs(t, err, ErrValidationMissingFields)

	// Sanitization may leave nothing of a hostile input.
	_, err = svc.Login(ctx, `<>"';`, testPassword)
	assert.ErrorIs(t, err, ErrValidationMissingFields)
}

func TestLogin_StoreFailure_Propagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().FindUserByEmail(ctx, "a@b.com").Return(models.User{}, errors.New("connection lost"))

	_, err := svc.Login(ctx, "a@b.com", testPassword)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, codec := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "a@b.com", user.Email)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(testPassword)),
				"stored hash must verify against the submitted password")
			user.UserID = 7
			user.Enabled = true
			return user, nil
		})

	result, err := svc.Create(ctx, "a@b.com", "a@b.com", testPassword)
	require.NoError(t, err)

	assert.Equal(t, models.NextSetup2FA, result.Next)

	claims, err := codec.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.False(t, claims.FullAuth)
}

func TestCreate_ValidationFailures_NoStoreAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name         string
		email        string
		confirmEmail string
		password     string
		wantErr      error
	}{
		{"missing email", "", "a@b.com", testPassword, ErrValidationMissingFields},
		{"missing confirm", "a@b.com", "", testPassword, ErrValidationMissingFields},
		{"missing password", "a@b.com", "a@b.com", "", ErrValidationMissingFields},
		{"bad email format", "not-an-email", "not-an-email", testPassword, ErrValidationEmailFormat},
		{"email sanitized to invalid", "<a>@<b>", "<a>@<b>", testPassword, ErrValidationEmailFormat},
		{"oversized email", strings.Repeat("a", 120) + "@b.com", strings.Repeat("a", 120) + "@b.com", testPassword, ErrValidationEmailFormat},
		{"emails differ", "a@b.com", "c@d.com", testPassword, ErrValidationEmailMismatch},
		{"weak password", "a@b.com", "a@b.com", "weakpass", ErrValidationWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.email, tt.confirmEmail, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_DuplicateEmail_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	result, err := svc.Create(ctx, "a@b.com", "a@b.com", testPassword)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
	assert.Empty(t, result.Token, "no token may be issued on conflict")
}

// ── VerifyPartial ────────────────────────────────────────────────────────────

func TestVerifyPartial_ValidTokenExistingUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, codec := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	signed, err := codec.Issue(42, "a@b.com", false, time.Minute)
	require.NoError(t, err)

	repo.EXPECT().FindUserByID(ctx, int64(42)).Return(enabledUser(t), nil)

	assert.True(t, svc.VerifyPartial(ctx, signed))
}

func TestVerifyPartial_FalseOnAnyFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, codec := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	// Malformed token: no store access at all.
	assert.False(t, svc.VerifyPartial(ctx, "garbage"))

	// Valid token, vanished user.
	signed, err := codec.Issue(42, "a@b.com", false, time.Minute)
	require.NoError(t, err)
	repo.EXPECT().FindUserByID(ctx, int64(42)).Return(models.User{}, store.ErrNoUserWasFound)
	assert.False(t, svc.VerifyPartial(ctx, signed))
}

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestAuthenticate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, codec := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	signed, err := codec.Issue(42, "a@b.com", true, time.Minute)
	require.NoError(t, err)

	repo.EXPECT().FindUserByID(ctx, int64(42)).Return(enabledUser(t), nil)

	authUser, err := svc.Authenticate(ctx, signed)
	require.NoError(t, err)

	assert.Equal(t, int64(42), authUser.UserID)
	assert.Equal(t, "a@b.com", authUser.Email)
	assert.Equal(t, models.DefaultRole, authUser.Role, "empty stored role defaults to user")
	assert.True(t, authUser.FullAuth, "full-auth flag is copied from the token claim")
}

func TestAuthenticate_PartialTokenKeepsFullAuthFalse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, codec := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	signed, err := codec.Issue(42, "a@b.com", false, time.Minute)
	require.NoError(t, err)

	repo.EXPECT().FindUserByID(ctx, int64(42)).Return(enabledUser(t), nil)

	authUser, err := svc.Authenticate(ctx, signed)
	require.NoError(t, err)
	assert.False(t, authUser.FullAuth)
}

func TestAuthenticate_BadToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthenticate_VanishedAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, codec := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	signed, err := codec.Issue(42, "a@b.com", false, time.Minute)
	require.NoError(t, err)

	repo.EXPECT().FindUserByID(ctx, int64(42)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err = svc.Authenticate(ctx, signed)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthenticate_DisabledAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, codec := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	signed, err := codec.Issue(42, "a@b.com", false, time.Minute)
	require.NoError(t, err)

	user := enabledUser(t)
	user.Enabled = false
	repo.EXPECT().FindUserByID(ctx, int64(42)).Return(user, nil)

	_, err = svc.Authenticate(ctx, signed)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}
