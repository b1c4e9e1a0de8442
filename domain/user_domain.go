package domain

import (
	"errors"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessVerifyEmail    = "email verified successfully"
	MessageSuccessSendVerifyMail = "verification email sent"

	MessageFailedRegister    = "failed to register user"
	MessageFailedLogin       = "failed to login"
	MessageFailedGetUser     = "failed to get user"
	MessageFailedUpdateUser  = "failed to update user"
	MessageFailedVerifyEmail = "failed to verify email"

	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("account email is not verified")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrFailedSendEmail    = errors.New("failed to send verification email")
)

type (
	RegisterRequest struct {
		Email           string `json:"email" form:"email" validate:"required,email"`
		Password        string `json:"password" form:"password" validate:"required,min=8"`
		ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
		FullName        string `json:"full_name" form:"full_name" validate:"omitempty,max=100"`
	}

	RegisterResponse struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		IsVerified bool   `json:"is_verified"`
	}

	LoginRequest struct {
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateProfileRequest struct {
		FullName    string `json:"full_name" form:"full_name" validate:"omitempty,max=100"`
		PhoneNumber string `json:"phone_number" form:"phone_number" validate:"omitempty,max=20"`
	}

	ProfileResponse struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		FullName    string `json:"full_name"`
		PhoneNumber string `json:"phone_number"`
		IsVerified  bool   `json:"is_verified"`
	}
)
