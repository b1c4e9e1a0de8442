package user

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/entities"
	"Recipe-Sharing/internal/utils/mailing"
	"Recipe-Sharing/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		SendVerificationEmail(ctx context.Context, email string) error
		VerifyEmail(ctx context.Context, token string) error
		GetProfile(ctx context.Context, userID string) (domain.ProfileResponse, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.ProfileResponse, error)
	}

	// Options carries the identity settings read from configuration.
	Options struct {
		AppURL                  string
		RequireConfirmedAccount bool
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		options        Options
		logger         *zap.Logger
	}
)

// NewUserService builds the account service. mailer may be nil when SMTP is
// not configured; verification mails are then skipped.
func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer, options Options, logger *zap.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		options:        options,
		logger:         logger.Named("user"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if req.Password != req.ConfirmPassword {
		return domain.RegisterResponse{}, domain.ErrPasswordMismatch
	}

	email := normalizeEmail(req.Email)
	exists, err := s.userRepository.CheckUserByEmail(ctx, email)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user, err := s.userRepository.RegisterUser(ctx, entities.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		FullName: req.FullName,
		Role:     domain.RoleUser,
	})
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	if err := s.sendVerification(user); err != nil {
		// the account exists either way; the user can ask for a new mail
		s.logger.Warn("verification email not sent", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return domain.RegisterResponse{
		ID:         user.ID.String(),
		Email:      user.Email,
		IsVerified: user.IsVerified,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	if s.options.RequireConfirmedAccount && !user.IsVerified {
		return domain.LoginResponse{}, domain.ErrAccountNotVerified
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}

func (s *userService) SendVerificationEmail(ctx context.Context, email string) error {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.IsVerified {
		return nil
	}

	if err := s.sendVerification(user); err != nil {
		s.logger.Warn("verification email not sent", zap.String("user_id", user.ID.String()), zap.Error(err))
		return domain.ErrFailedSendEmail
	}
	return nil
}

func (s *userService) sendVerification(user entities.User) error {
	if s.mailer == nil {
		return nil
	}

	token, err := s.jwtService.GenerateTokenVerifyEmail(user.ID.String())
	if err != nil {
		return err
	}

	body, err := mailing.VerificationEmailBody(s.options.AppURL, token)
	if err != nil {
		return err
	}

	return s.mailer.SendMail(user.Email, "Confirm your email", body)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.jwtService.ValidateTokenVerifyEmail(token)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.IsVerified {
		return nil
	}

	user.IsVerified = true
	if _, err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("email verified", zap.String("user_id", userID))
	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrUserNotFound
		}
		return domain.ProfileResponse{}, err
	}

	return toProfile(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrUserNotFound
		}
		return domain.ProfileResponse{}, err
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	return toProfile(updated), nil
}

func toProfile(user entities.User) domain.ProfileResponse {
	return domain.ProfileResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		IsVerified:  user.IsVerified,
	}
}
