package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/config"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/model"
	"github.com/FredesVirginia/captus-back/internal/repository"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	byEmail map[string]*model.User
	byID    map[uint]*model.User
	created []*model.User
	nextID  uint
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: make(map[string]*model.User),
		byID:    make(map[uint]*model.User),
		nextID:  1,
	}
}

func (s *stubUserRepo) add(u *model.User) {
	if u.ID == 0 {
		u.ID = s.nextID
		s.nextID++
	}
	s.byEmail[u.Email] = u
	s.byID[u.ID] = u
}

func (s *stubUserRepo) Create(_ context.Context, u *model.User) error {
	s.add(u)
	s.created = append(s.created, u)
	return nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserRepo) DB() *gorm.DB { return nil }

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 24,
		NotifyEmail:        "shop@captus.com",
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&model.User{Email: "vir@captus.com", Password: "x"})
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Nombre: "Vir", Email: "vir@captus.com", Password: "secret1", Role: "USER",
	})
	require.Error(t, err)

	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodeUserExists, ae.Code)
	assert.Equal(t, http.StatusConflict, ae.Status)
}

func TestRegisterHashesPasswordAndReturnsToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testConfig())

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Nombre: "Vir", Email: "vir@captus.com", Password: "secret1", Role: "ADMIN",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEqual(t, "secret1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
	assert.Equal(t, "ADMIN", stored.Role)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@captus.com", Password: "whatever",
	})
	require.Error(t, err)

	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodeUserNotFound, ae.Code)
	assert.Equal(t, http.StatusNotFound, ae.Status)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correcta"), 10)
	repo.add(&model.User{Email: "vir@captus.com", Password: string(hash)})
	svc := NewAuthService(repo, testConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "vir@captus.com", Password: "incorrecta",
	})
	require.Error(t, err)

	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodeUnauthorizedUser, ae.Code)
	assert.Equal(t, http.StatusUnauthorized, ae.Status)
}

func TestLoginAndValidateTokenRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), 10)
	repo.add(&model.User{Email: "vir@captus.com", Nombre: "Vir", Password: string(hash), Role: "USER"})
	svc := NewAuthService(repo, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "vir@captus.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "vir@captus.com", resp.User.Email)
	assert.Equal(t, "Vir", resp.User.Name)

	validation := svc.ValidateToken(resp.AccessToken)
	require.True(t, validation.Valid)
	assert.Equal(t, "vir@captus.com", validation.User["email"])
	assert.Equal(t, "USER", validation.User["role"])
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testConfig())

	validation := svc.ValidateToken("no-es-un-jwt")
	assert.False(t, validation.Valid)
	assert.NotEmpty(t, validation.Error)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	repoA := newStubUserRepo()
	svcA := NewAuthService(repoA, &config.Config{JWTSecret: "secret-a", JWTExpirationHours: 1})

	resp, err := svcA.Register(context.Background(), dto.RegisterRequest{
		Nombre: "Vir", Email: "vir@captus.com", Password: "secret1", Role: "USER",
	})
	require.NoError(t, err)

	svcB := NewAuthService(newStubUserRepo(), &config.Config{JWTSecret: "secret-b", JWTExpirationHours: 1})
	validation := svcB.ValidateToken(resp.AccessToken)
	assert.False(t, validation.Valid)
}
