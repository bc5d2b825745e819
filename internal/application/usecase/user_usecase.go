package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/auth"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/access"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase casos de uso CRUD para usuarios. Las cuentas superadmin solo
// pueden crearse, editarse o eliminarse por otro superadmin.
type UserUseCase struct {
	repo       repository.UserRepository
	warehouses repository.WarehouseRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, warehouses repository.WarehouseRepository) *UserUseCase {
	return &UserUseCase{repo: repo, warehouses: warehouses}
}

// Create crea un usuario con la contraseña hasheada con bcrypt.
func (uc *UserUseCase) Create(actor access.Grant, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username y password son obligatorios", domain.ErrValidation)
	}
	level, err := access.ParseLevel(in.AccessLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if level == access.LevelSuperadmin && actor.Level != access.LevelSuperadmin {
		return nil, fmt.Errorf("%w: solo un superadmin puede crear cuentas superadmin", domain.ErrPermissionDenied)
	}
	existing, err := uc.repo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe el usuario %s", domain.ErrDuplicate, in.Username)
	}
	if err := uc.checkWarehouses(in.WarehouseIDs); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		AccessLevel:  string(level),
		Active:       true,
		WarehouseIDs: in.WarehouseIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	return auth.ToUserResponse(user), nil
}

// Update edición parcial de un usuario.
func (uc *UserUseCase) Update(actor access.Grant, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	if err := uc.guardSuperadmin(actor, user); err != nil {
		return nil, err
	}
	if in.AccessLevel != nil {
		level, err := access.ParseLevel(*in.AccessLevel)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		if level == access.LevelSuperadmin && actor.Level != access.LevelSuperadmin {
			return nil, fmt.Errorf("%w: solo un superadmin puede promover a superadmin", domain.ErrPermissionDenied)
		}
		user.AccessLevel = string(level)
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.WarehouseIDs != nil {
		if err := uc.checkWarehouses(*in.WarehouseIDs); err != nil {
			return nil, err
		}
		user.WarehouseIDs = *in.WarehouseIDs
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(actor access.Grant, id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	if err := uc.guardSuperadmin(actor, user); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// guardSuperadmin impide que un no-superadmin toque cuentas superadmin.
func (uc *UserUseCase) guardSuperadmin(actor access.Grant, target *entity.User) error {
	if target.AccessLevel == string(access.LevelSuperadmin) && actor.Level != access.LevelSuperadmin {
		return fmt.Errorf("%w: una cuenta superadmin solo puede modificarla otro superadmin", domain.ErrProtectedRecord)
	}
	return nil
}

func (uc *UserUseCase) checkWarehouses(ids []string) error {
	for _, id := range ids {
		w, err := uc.warehouses.GetByID(id)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, id)
		}
	}
	return nil
}
