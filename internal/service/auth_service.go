package service

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/config"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/model"
	"github.com/FredesVirginia/captus-back/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ValidateToken(token string) *dto.TokenValidation
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apierror.Conflict(apierror.CodeUserExists, "El email ya esta registrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeRegisterError, "No se pudo registrar el usuario")
	}

	user := &model.User{
		Nombre:   req.Nombre,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apierror.Classify(err, apierror.CodeRegisterError, "No se pudo registrar el usuario")
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeRegisterError, "No se pudo registrar el usuario")
	}
	return &dto.RegisterResponse{AccessToken: token}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apierror.NotFound(apierror.CodeUserNotFound, "Usuario no encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apierror.New(apierror.CodeUnauthorizedUser, http.StatusUnauthorized, "Credenciales incorrectas")
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeLoginError, "No se pudo iniciar sesion")
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User: dto.UserSummary{
			ID:    user.ID,
			Name:  user.Nombre,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// ValidateToken never returns an error: invalid tokens come back as
// {valid:false} so the endpoint always answers 200.
func (s *authService) ValidateToken(tokenStr string) *dto.TokenValidation {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		msg := "token invalido"
		if err != nil {
			msg = err.Error()
		}
		return &dto.TokenValidation{Valid: false, Error: msg}
	}

	claims, _ := token.Claims.(jwt.MapClaims)
	return &dto.TokenValidation{Valid: true, User: claims}
}

func (s *authService) signToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
