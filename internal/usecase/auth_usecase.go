package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kliniki/clinic-api/internal/delivery/dto"
	"github.com/kliniki/clinic-api/internal/domain/entity"
	"github.com/kliniki/clinic-api/internal/domain/repository"
	"github.com/kliniki/clinic-api/internal/infrastructure/database"
	"github.com/kliniki/clinic-api/pkg/jwt"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrIDNumberTaken      = errors.New("ID number already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type authUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

func NewAuthUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthUsecase {
	return &authUsecase{
		db:         db,
		log:        log,
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Signup creates a user with one of the patient/doctor/secretary roles.
// Credential issuance lives here; the access gate only verifies tokens.
func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		RoleID:               entity.RoleIDByName[req.Role],
		Username:             req.Username,
		Email:                req.Email,
		Password:             string(hashedPassword),
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		IDNumber:             req.IDNumber,
		SocialSecurityNumber: req.SocialSecurityNumber,
		Specialty:            req.Specialty,
	}

	if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
		if database.IsUniqueViolation(err, "username") {
			return nil, ErrUsernameTaken
		}
		if database.IsUniqueViolation(err, "email") {
			return nil, ErrEmailTaken
		}
		if database.IsUniqueViolation(err, "id_number") {
			return nil, ErrIDNumberTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.log.Infof("User created: username=%s, role=%s", user.Username, req.Role)
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      req.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login verifies credentials and mints a signed token carrying
// {username, id, roles[]}.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", req.Username, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Username, []string{user.Role.RoleName})
	if err != nil {
		u.log.Warnf("Failed to generate token for %s: %+v", req.Username, err)
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetExpiry().Seconds()),
	}, nil
}
