package service

import (
	"context"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/model"
	"github.com/FredesVirginia/captus-back/internal/repository"
)

type UserService interface {
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetFavorites(ctx context.Context, userID uint) ([]model.Favorito, error)
	AddFavorito(ctx context.Context, req dto.CreateFavoritoRequest) (*model.Favorito, error)
	RemoveFavorito(ctx context.Context, userID, floorID uint) error
}

type userService struct {
	userRepo     repository.UserRepository
	floorRepo    repository.FloorRepository
	favoritoRepo repository.FavoritoRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	floorRepo repository.FloorRepository,
	favoritoRepo repository.FavoritoRepository,
) UserService {
	return &userService{
		userRepo:     userRepo,
		floorRepo:    floorRepo,
		favoritoRepo: favoritoRepo,
	}
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeGetUsersError, "Error al obtener los usuarios")
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *userService) GetFavorites(ctx context.Context, userID uint) ([]model.Favorito, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, apierror.NotFound(apierror.CodeUserNotFound, "Usuario no encontrado")
	}
	favs, err := s.favoritoRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeGetUsersError, "Error al obtener los favoritos")
	}
	if favs == nil {
		favs = []model.Favorito{}
	}
	return favs, nil
}

func (s *userService) AddFavorito(ctx context.Context, req dto.CreateFavoritoRequest) (*model.Favorito, error) {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, apierror.NotFound(apierror.CodeUserNotFound, "Usuario no encontrado")
	}
	if _, err := s.floorRepo.FindByID(ctx, req.FloorID); err != nil {
		return nil, apierror.NotFound(apierror.CodeFloorNotFound, "Planta no encontrada")
	}

	fav := &model.Favorito{UserID: req.UserID, FloorID: req.FloorID}
	if err := s.favoritoRepo.Create(ctx, fav); err != nil {
		return nil, apierror.Classify(err, apierror.CodeInternalServer, "No se pudo agregar el favorito")
	}
	return fav, nil
}

func (s *userService) RemoveFavorito(ctx context.Context, userID, floorID uint) error {
	rows, err := s.favoritoRepo.Delete(ctx, userID, floorID)
	if err != nil {
		return apierror.Classify(err, apierror.CodeInternalServer, "No se pudo eliminar el favorito")
	}
	if rows == 0 {
		return apierror.NotFound(apierror.CodeFavoritoNotFound, "Favorito no encontrado")
	}
	return nil
}
