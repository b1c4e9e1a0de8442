package handlers

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/internal/middleware"
	"Recipe-Sharing/pkg/user"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const sessionTTL = 120 * time.Minute

type (
	AccountWebHandler interface {
		LoginForm(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		RegisterForm(c *fiber.Ctx) error
		Register(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Verify(c *fiber.Ctx) error
		Profile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
	}

	accountWebHandler struct {
		userService user.UserService
		validator   *validator.Validate
		logger      *zap.Logger
	}
)

func NewAccountWebHandler(userService user.UserService, validator *validator.Validate, logger *zap.Logger) AccountWebHandler {
	return &accountWebHandler{
		userService: userService,
		validator:   validator,
		logger:      logger.Named("web"),
	}
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *accountWebHandler) renderLogin(c *fiber.Ctx, status int, email, returnURL string, errs []string) error {
	return render(c, status, "account/login", fiber.Map{
		"Title":     "Log in",
		"Email":     email,
		"ReturnURL": returnURL,
		"Errors":    errs,
	})
}

func (h *accountWebHandler) LoginForm(c *fiber.Ctx) error {
	return h.renderLogin(c, fiber.StatusOK, "", safeReturnURL(c.Query("return_url")), nil)
}

func (h *accountWebHandler) Login(c *fiber.Ctx) error {
	returnURL := safeReturnURL(c.FormValue("return_url"))

	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return h.renderLogin(c, fiber.StatusBadRequest, "", returnURL, []string{domain.MessageFailedBodyRequest})
	}

	if err := h.validator.Struct(req); err != nil {
		return h.renderLogin(c, fiber.StatusUnprocessableEntity, req.Email, returnURL, formErrors(err))
	}

	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return h.renderLogin(c, statusFromError(err), req.Email, returnURL, []string{formMessage(err, domain.MessageFailedLogin)})
	}

	setSessionCookie(c, res.Token)
	return c.Redirect(returnURL, fiber.StatusSeeOther)
}

func (h *accountWebHandler) renderRegister(c *fiber.Ctx, status int, req domain.RegisterRequest, errs []string) error {
	return render(c, status, "account/register", fiber.Map{
		"Title":    "Register",
		"Email":    req.Email,
		"FullName": req.FullName,
		"Errors":   errs,
	})
}

func (h *accountWebHandler) RegisterForm(c *fiber.Ctx) error {
	return h.renderRegister(c, fiber.StatusOK, domain.RegisterRequest{}, nil)
}

// Register signs the new user in straight away unless the account has to be
// confirmed first, in which case the confirmation notice is shown.
func (h *accountWebHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return h.renderRegister(c, fiber.StatusBadRequest, domain.RegisterRequest{}, []string{domain.MessageFailedBodyRequest})
	}

	if err := h.validator.Struct(req); err != nil {
		return h.renderRegister(c, fiber.StatusUnprocessableEntity, *req, formErrors(err))
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		return h.renderRegister(c, statusFromError(err), *req, []string{formMessage(err, domain.MessageFailedRegister)})
	}

	login, err := h.userService.Login(c.Context(), domain.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotVerified) {
			h.logger.Error("login after register", zap.String("user_id", res.ID), zap.Error(err))
		}
		return render(c, fiber.StatusOK, "account/register_confirmation", fiber.Map{
			"Title": "Confirm your email",
			"Email": res.Email,
		})
	}

	setSessionCookie(c, login.Token)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *accountWebHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(middleware.TokenCookie)
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (h *accountWebHandler) Verify(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Confirm email"}

	token := c.Query("token")
	if token == "" {
		data["Error"] = domain.ErrTokenNotFound.Error()
		return render(c, fiber.StatusBadRequest, "account/verify", data)
	}

	if err := h.userService.VerifyEmail(c.Context(), token); err != nil {
		data["Error"] = formMessage(err, domain.MessageFailedVerifyEmail)
		return render(c, statusFromError(err), "account/verify", data)
	}

	data["Message"] = domain.MessageSuccessVerifyEmail
	return render(c, fiber.StatusOK, "account/verify", data)
}

func (h *accountWebHandler) renderProfile(c *fiber.Ctx, status int, profile domain.ProfileResponse, message string, errs []string) error {
	return render(c, status, "account/profile", fiber.Map{
		"Title":   "Profile",
		"Profile": profile,
		"Message": message,
		"Errors":  errs,
	})
}

func (h *accountWebHandler) Profile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return renderError(c, err)
	}

	return h.renderProfile(c, fiber.StatusOK, profile, "", nil)
}

func (h *accountWebHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return renderError(c, err)
	}

	req := new(domain.UpdateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return h.renderProfile(c, fiber.StatusBadRequest, profile, "", []string{domain.MessageFailedBodyRequest})
	}

	profile.FullName = req.FullName
	profile.PhoneNumber = req.PhoneNumber

	if err := h.validator.Struct(req); err != nil {
		return h.renderProfile(c, fiber.StatusUnprocessableEntity, profile, "", formErrors(err))
	}

	updated, err := h.userService.UpdateProfile(c.Context(), *req, userID)
	if err != nil {
		return h.renderProfile(c, statusFromError(err), profile, "", []string{formMessage(err, domain.MessageFailedUpdateUser)})
	}

	return h.renderProfile(c, fiber.StatusOK, updated, "Your profile has been updated", nil)
}
