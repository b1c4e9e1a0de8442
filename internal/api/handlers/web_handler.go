package handlers

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const mainLayout = "layouts/main"

// viewData adds the values every page needs (signed-in state and the CSRF
// token for forms) to the page-specific bindings.
func viewData(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	csrf, _ := c.Locals("csrf").(string)
	data["CSRF"] = csrf
	data["SignedIn"] = currentUserID(c) != ""
	return data
}

func render(c *fiber.Ctx, status int, view string, data fiber.Map) error {
	return c.Status(status).Render(view, viewData(c, data), mainLayout)
}

// renderError shows the generic error page with the status that matches err.
func renderError(c *fiber.Ctx, err error) error {
	status := statusFromError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = domain.MessageFailedProcessRequest
	}
	if status == fiber.StatusNotFound {
		message = domain.MessagePageNotFound
	}
	return render(c, status, "errors/error", fiber.Map{
		"Title":   "Error",
		"Status":  status,
		"Message": message,
	})
}

func formErrors(err error) []string {
	return utils.ValidationMessages(err)
}

// safeReturnURL only allows local paths so the login form cannot be used as
// an open redirect.
func safeReturnURL(raw string) string {
	if len(raw) < 1 || raw[0] != '/' || (len(raw) > 1 && (raw[1] == '/' || raw[1] == '\\')) {
		return "/"
	}
	return raw
}
