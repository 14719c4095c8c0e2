package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/estoque-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuthUC() (*auth.AuthUseCase, *memory.UserRepo) {
	repo := memory.NewUserRepository()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 480, Issuer: "test"}).
		WithHashCost(bcrypt.MinCost)
	return uc, repo
}

func TestRegister_HasheaYAsignaVendedor(t *testing.T) {
	uc, repo := newAuthUC()
	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, "vendedor", out.Role)

	stored, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw1", stored.PasswordHash, "nunca se guarda el texto plano")
}

func TestRegister_Duplicado(t *testing.T) {
	uc, repo := newAuthUC()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// El primer registro no cambia.
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "pw1"})
	assert.NoError(t, err)
	list, _ := repo.List(ctx)
	assert.Len(t, list, 1)
}

func TestRegister_CamposObligatorios(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_TokenConIdentidad(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()
	reg, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", out.Role)

	id, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.Identity{UserID: reg.ID, Username: "alice", Role: "vendedor"}, id)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuthUC()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "pw1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "mismo error para usuario inexistente")
}
