package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farhxn/foodcourt-backend/internal/users"
	"github.com/farhxn/foodcourt-backend/pkg/config"
	pkgmodels "github.com/farhxn/foodcourt-backend/pkg/db/models"
	pkgerrors "github.com/farhxn/foodcourt-backend/pkg/errors"
	"github.com/farhxn/foodcourt-backend/pkg/security"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserRepository struct {
	data      map[string]*pkgmodels.User
	created   *pkgmodels.User
	createErr error
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{data: map[string]*pkgmodels.User{}}
}

func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (*pkgmodels.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) Create(ctx context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := &pkgmodels.User{
		ID:           uuid.New(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		Phone:        dto.Phone,
		IsActive:     true,
	}
	s.data[dto.Email] = user
	s.created = user
	return user, nil
}

func newRegisterTestService(t *testing.T, repo *stubUserRepository) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return repo
		},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return svc
}

func TestRegisterCreatesUser(t *testing.T) {
	repo := newStubUserRepository()
	svc := newRegisterTestService(t, repo)

	dto, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Jamie Rivera",
		Email:    "Jamie@Example.com",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if repo.created == nil {
		t.Fatal("expected user to be created")
	}
	if repo.created.Email != "jamie@example.com" {
		t.Fatalf("email not normalized: %q", repo.created.Email)
	}
	if repo.created.PasswordHash == "Secret123!" || repo.created.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
	if ok, err := security.VerifyPassword("Secret123!", repo.created.PasswordHash); err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
	if dto.ID != repo.created.ID {
		t.Fatalf("returned dto does not match created user")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepository()
	repo.data["taken@example.com"] = &pkgmodels.User{ID: uuid.New(), Email: "taken@example.com"}
	svc := newRegisterTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Someone Else",
		Email:    "taken@example.com",
		Password: "Secret123!",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("no user should be created on conflict")
	}
}

func TestRegisterRequiresName(t *testing.T) {
	repo := newStubUserRepository()
	svc := newRegisterTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "nameless@example.com",
		Password: "Secret123!",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
