package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/model"
	"github.com/FredesVirginia/captus-back/internal/repository"
)

type stubFavoritoRepo struct {
	byUser  map[uint][]model.Favorito
	deleted int64
}

var _ repository.FavoritoRepository = (*stubFavoritoRepo)(nil)

func newStubFavoritoRepo() *stubFavoritoRepo {
	return &stubFavoritoRepo{byUser: make(map[uint][]model.Favorito)}
}

func (s *stubFavoritoRepo) Create(_ context.Context, f *model.Favorito) error {
	f.ID = uint(len(s.byUser[f.UserID]) + 1)
	s.byUser[f.UserID] = append(s.byUser[f.UserID], *f)
	return nil
}

func (s *stubFavoritoRepo) ListByUser(_ context.Context, userID uint) ([]model.Favorito, error) {
	return s.byUser[userID], nil
}

func (s *stubFavoritoRepo) Delete(_ context.Context, userID, floorID uint) (int64, error) {
	kept := s.byUser[userID][:0]
	var removed int64
	for _, f := range s.byUser[userID] {
		if f.FloorID == floorID {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	s.byUser[userID] = kept
	s.deleted += removed
	return removed, nil
}

func (s *stubFavoritoRepo) DB() *gorm.DB { return nil }

func userFixtures() (UserService, *stubUserRepo, *stubFloorRepo, *stubFavoritoRepo) {
	users := newStubUserRepo()
	users.add(&model.User{Email: "vir@captus.com", Nombre: "Vir"})

	floors := newStubFloorRepo()
	floors.byID[1] = &model.Floor{ID: 1, Nombre: "Echeveria"}

	favs := newStubFavoritoRepo()
	return NewUserService(users, floors, favs), users, floors, favs
}

func TestAddFavoritoUnknownUser(t *testing.T) {
	svc, _, _, _ := userFixtures()

	_, err := svc.AddFavorito(context.Background(), dto.CreateFavoritoRequest{UserID: 99, FloorID: 1})
	require.Error(t, err)
	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodeUserNotFound, ae.Code)
}

func TestAddFavoritoUnknownFloor(t *testing.T) {
	svc, _, _, _ := userFixtures()

	_, err := svc.AddFavorito(context.Background(), dto.CreateFavoritoRequest{UserID: 1, FloorID: 99})
	require.Error(t, err)
	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodeFloorNotFound, ae.Code)
}

func TestAddAndListFavorites(t *testing.T) {
	svc, _, _, _ := userFixtures()

	fav, err := svc.AddFavorito(context.Background(), dto.CreateFavoritoRequest{UserID: 1, FloorID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(1), fav.FloorID)

	list, err := svc.GetFavorites(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRemoveFavoritoNotFound(t *testing.T) {
	svc, _, _, _ := userFixtures()

	err := svc.RemoveFavorito(context.Background(), 1, 1)
	require.Error(t, err)
	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodeFavoritoNotFound, ae.Code)
}

func TestRemoveFavorito(t *testing.T) {
	svc, _, _, favs := userFixtures()
	_, err := svc.AddFavorito(context.Background(), dto.CreateFavoritoRequest{UserID: 1, FloorID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorito(context.Background(), 1, 1))
	assert.Equal(t, int64(1), favs.deleted)
}

func TestGetFavoritesUnknownUser(t *testing.T) {
	svc, _, _, _ := userFixtures()

	_, err := svc.GetFavorites(context.Background(), 404)
	require.Error(t, err)
	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodeUserNotFound, ae.Code)
}

func TestGetAllUsersNeverNil(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubFloorRepo(), newStubFavoritoRepo())

	users, err := svc.GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

// ── Mail service ─────────────────────────────────────────────────────────────

type stubSender struct {
	err        error
	to         string
	subject    string
	attachName string
	pdf        []byte
}

func (s *stubSender) Send(to, subject, _, attachName string, pdf []byte) error {
	s.to, s.subject, s.attachName, s.pdf = to, subject, attachName, pdf
	return s.err
}

func TestSendOrderMailAttachesReceipt(t *testing.T) {
	sender := &stubSender{}
	svc := NewMailService(sender)

	err := svc.SendOrderMail(context.Background(), "shop@captus.com", 42, []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "shop@captus.com", sender.to)
	assert.Equal(t, "Nueva orden recibida - #42", sender.subject)
	assert.Equal(t, "orden-42.pdf", sender.attachName)
	assert.Equal(t, []byte("%PDF"), sender.pdf)
}

func TestSendOrderMailFailure(t *testing.T) {
	svc := NewMailService(&stubSender{err: errors.New("smtp: 550")})

	err := svc.SendOrderMail(context.Background(), "shop@captus.com", 42, nil)
	require.Error(t, err)
	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodeEmailSendFailed, ae.Code)
}

func TestSendOrderMailKeepsTypedErrors(t *testing.T) {
	typed := apierror.New("EMAIL_REJECTED", http.StatusBadGateway, "Destinatario rechazado")
	svc := NewMailService(&stubSender{err: typed})

	err := svc.SendOrderMail(context.Background(), "shop@captus.com", 42, nil)
	require.Error(t, err)
	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, "EMAIL_REJECTED", ae.Code)
	assert.Equal(t, http.StatusBadGateway, ae.Status)
}
