// Package controllers controllers/auth_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"kiddushware/logger"
	"kiddushware/models"
	"kiddushware/store"
)

// AuthController handles admin login, registration and logout.
type AuthController struct {
	Store *store.Store
}

// NewAuthController builds the controller against the store.
func NewAuthController(s *store.Store) *AuthController {
	return &AuthController{Store: s}
}

// ComparePasswords checks if the given password matches the hashed password.
func ComparePasswords(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// ShowLoginPage renders the login form.
func (a *AuthController) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// PerformLogin validates credentials and stores the admin's user id in the
// session; that id scopes every subsequent admin query.
func (a *AuthController) PerformLogin(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": "Please enter email and password."})
		return
	}

	user, err := a.Store.GetUserByEmail(email)
	if err != nil || !ComparePasswords(user.PasswordHash, password) {
		logger.Warn.Printf("PerformLogin: failed login attempt for %s", email)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid email or password."})
		return
	}

	session := sessions.Default(c)
	session.Set("userID", user.ID)
	session.Set("userEmail", user.Email)
	if err := session.Save(); err != nil {
		logger.Error.Printf("PerformLogin: failed to save session: %v", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	logger.Info.Printf("User %s logged in", user.Email)
	c.Redirect(http.StatusFound, "/admin")
}

// ShowRegisterPage renders the registration form.
func (a *AuthController) ShowRegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// PerformRegister creates a new admin account.
func (a *AuthController) PerformRegister(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	congregation := c.PostForm("congregation")
	if email == "" || len(password) < 8 {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "Email and a password of at least 8 characters are required."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error.Printf("PerformRegister: bcrypt failed: %v", err)
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Internal error, please try again."})
		return
	}

	_, err = a.Store.CreateUser(&models.User{
		Email:        email,
		PasswordHash: string(hash),
		Congregation: congregation,
	})
	if err != nil {
		logger.Error.Printf("PerformRegister: %v", err)
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": "Could not create the account. The email may already be registered."})
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// Logout clears the admin session.
func (a *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	userEmail := session.Get("userEmail")
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: error saving session: %v", err)
	} else if userEmail != nil {
		logger.Info.Printf("Logout: %v logged out", userEmail)
	}
	c.Redirect(http.StatusFound, "/login")
}
