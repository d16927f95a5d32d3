package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/usecase"
	"github.com/recyclo/cashbook/internal/usecase/mocks"
)

func newUserService(repo *mocks.MockUserRepository) *usecase.UserService {
	return usecase.NewUserService(repo, mocks.NewMockTokenIssuer(), mocks.NewMockIDGenerator())
}

func TestLogin(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	svc := newUserService(repo)

	ctx := context.Background()
	if _, err := svc.CreateUser(ctx, "admin", "secret123", domain.RoleAdmin); err != nil {
		t.Fatalf("create user: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, "admin", "secret123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Token == "" {
			t.Error("expected a token")
		}
		if result.User.Username != "admin" {
			t.Errorf("username = %s, want admin", result.User.Username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Login(ctx, "admin", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := svc.Login(ctx, "nobody", "secret123"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		if _, err := svc.Login(ctx, "", ""); !errors.Is(err, domain.ErrMissingCredentials) {
			t.Errorf("err = %v, want ErrMissingCredentials", err)
		}
	})
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	svc := newUserService(repo)

	ctx := context.Background()
	user, err := svc.CreateUser(ctx, "former", "secret123", domain.RoleManager)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	user.Active = false

	if _, err := svc.Login(ctx, "former", "secret123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	svc := newUserService(repo)

	user, err := svc.CreateUser(context.Background(), "clerk", "secret123", domain.RoleInventory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.HashedPassword == "secret123" {
		t.Error("password stored in the clear")
	}
	if !user.Active {
		t.Error("new user should be active")
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	svc := newUserService(mocks.NewMockUserRepository())

	if _, err := svc.CreateUser(context.Background(), "x", "secret123", "SUPERUSER"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestSeedInitialUsers(t *testing.T) {
	seeds := []usecase.SeedUser{
		{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		{Username: "manager", Password: "manager123", Role: domain.RoleManager},
	}

	t.Run("empty table seeds", func(t *testing.T) {
		repo := mocks.NewMockUserRepository()
		svc := newUserService(repo)

		if err := svc.SeedInitialUsers(context.Background(), seeds); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count, _ := repo.Count(context.Background())
		if count != 2 {
			t.Errorf("users = %d, want 2", count)
		}
	})

	t.Run("populated table untouched", func(t *testing.T) {
		repo := mocks.NewMockUserRepository()
		svc := newUserService(repo)

		if _, err := svc.CreateUser(context.Background(), "existing", "secret123", domain.RoleViewer); err != nil {
			t.Fatalf("create user: %v", err)
		}

		if err := svc.SeedInitialUsers(context.Background(), seeds); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count, _ := repo.Count(context.Background())
		if count != 1 {
			t.Errorf("users = %d, want 1", count)
		}
	})

	t.Run("blank seeds skipped", func(t *testing.T) {
		repo := mocks.NewMockUserRepository()
		svc := newUserService(repo)

		if err := svc.SeedInitialUsers(context.Background(), []usecase.SeedUser{{Username: "", Password: ""}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count, _ := repo.Count(context.Background())
		if count != 0 {
			t.Errorf("users = %d, want 0", count)
		}
	})
}

func TestGetUser(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	svc := newUserService(repo)

	ctx := context.Background()
	created, err := svc.CreateUser(ctx, "viewer", "secret123", domain.RoleViewer)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	user, err := svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "viewer" {
		t.Errorf("username = %s, want viewer", user.Username)
	}

	if _, err := svc.GetUser(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestLogin_NoIssuer(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	svc := usecase.NewUserService(repo, nil, mocks.NewMockIDGenerator())

	ctx := context.Background()
	if _, err := svc.CreateUser(ctx, "admin", "secret123", domain.RoleAdmin); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := svc.Login(ctx, "admin", "secret123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
