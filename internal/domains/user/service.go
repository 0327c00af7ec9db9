package user

import (
	"context"
)

// Service định nghĩa business logic layer contract
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}
