package controller

import (
	"persona-chat-be/pkg/signedurl"

	"github.com/gofiber/fiber/v2"
)

type IResourceController interface {
	RegisterRoutes(r fiber.Router)
	Download(ctx *fiber.Ctx) error
}

// resourceController serves signed-link downloads. The token in the query
// string is the whole authorization; there are no accounts.
type resourceController struct {
	issuer        *signedurl.Issuer
	resourcePaths map[string]string
}

func NewResourceController(issuer *signedurl.Issuer, resourcePaths map[string]string) IResourceController {
	return &resourceController{
		issuer:        issuer,
		resourcePaths: resourcePaths,
	}
}

func (c *resourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/resources")
	h.Get("download", c.Download)
}

func (c *resourceController) Download(ctx *fiber.Ctx) error {
	token := ctx.Query("token")
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing token")
	}

	resource, err := c.issuer.Verify(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired link")
	}

	path, ok := c.resourcePaths[resource]
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown resource")
	}

	return ctx.Download(path)
}
