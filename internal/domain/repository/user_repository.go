package repository

import "github.com/dukapos/dukapos-api/internal/domain/entity"

// UserRepository usuarios del sistema. GetByUsername devuelve (nil, nil)
// cuando no existe.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
