package handlers

import (
	"log"

	"veriloan/internal/models"
	"veriloan/internal/services/user"
	"veriloan/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterUser creates a new customer account. Registration also maintains
// the cross-bank registry bank count for the applicant's email.
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "Name, email and password are required")
	}

	created, err := h.userService.Create(c.Context(), &input)
	if err != nil {
		log.Printf("Registration failed for %s: %v", input.Email, err)
		return response.BadRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user": fiber.Map{
			"id":    created.ID,
			"name":  created.Name,
			"email": created.Email,
			"role":  created.Role,
		},
	})
}
