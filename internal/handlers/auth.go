package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moviecatalog/internal/common"
	"moviecatalog/internal/services"
)

type registerRequest struct {
	Email     string `json:"email" form:"email" binding:"required"`
	FirstName string `json:"first_name" form:"first_name" binding:"required"`
	LastName  string `json:"last_name" form:"last_name" binding:"required"`
	Password  string `json:"password" form:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Register handles user registration. Accepts JSON or form bodies.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email, first_name, last_name and password are required"})
		return
	}

	_, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.respondError(c, err, map[error]string{
			common.ErrorConflict: "That email already exists.",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully."})
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err, map[error]string{
			common.ErrorUnauthorized: "You entered incorrect email or password",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login succeeded!",
		"access_token": token,
	})
}
