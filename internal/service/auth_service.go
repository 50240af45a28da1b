package service

import (
	"context"
	"fmt"
	"time"

	"course-copilot-be/internal/dto"
	"course-copilot-be/internal/entity"
	"course-copilot-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterStaffRequest) (*dto.RegisterStaffResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterStaffRequest) (*dto.RegisterStaffResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.StaffUserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entity.StaffUser{
		Id:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uow.StaffUserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}
	return &dto.RegisterStaffResponse{Id: user.Id}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.StaffUserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": user.Id.String(),
		"email":    user.Email,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: signed}, nil
}
