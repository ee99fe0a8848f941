package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tguillot/plume/internal/database"
	"github.com/tguillot/plume/internal/forms"
	"github.com/tguillot/plume/internal/logs"
	"github.com/tguillot/plume/internal/session"
	"github.com/tguillot/plume/internal/user"
)

// ShowRegister GET /register
func ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", formData(c, nil, ""))
}

// Register POST /register
func Register(c *gin.Context) {
	var form forms.Register
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.html",
			formData(c, forms.Errors(err), c.PostForm("username")))
		return
	}

	if user.ExistsByUsername(form.Username) {
		c.HTML(http.StatusConflict, "register.html",
			formData(c, []string{"Username already exists. Please choose another."}, form.Username))
		return
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		logs.LogJSON("ERROR", "Password hashing failed", map[string]interface{}{
			"error": err.Error(),
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	newUser := user.User{
		CreatedAt: time.Now(),
		Username:  form.Username,
		Password:  hash,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		logs.LogJSON("ERROR", "User creation failed", map[string]interface{}{
			"error":    err.Error(),
			"username": form.Username,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	session.Flash(c, "success", "Registration successful. Please login.")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin GET /login
func ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", formData(c, nil, ""))
}

// Login POST /login
func Login(c *gin.Context) {
	var form forms.Login
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html",
			formData(c, forms.Errors(err), c.PostForm("username")))
		return
	}

	u, err := user.FindByUsername(form.Username)
	if err != nil {
		logs.LogJSON("ERROR", "User lookup failed", map[string]interface{}{
			"error":    err.Error(),
			"username": form.Username,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	// Missing user and wrong password get the same message.
	if u == nil || !CheckPassword(u.Password, form.Password) {
		c.HTML(http.StatusUnauthorized, "login.html",
			formData(c, []string{"Invalid username or password"}, form.Username))
		return
	}

	if err := session.SetUserID(c, u.ID); err != nil {
		logs.LogJSON("ERROR", "Session save failed", map[string]interface{}{
			"error":   err.Error(),
			"user_id": u.ID,
		})
		c.HTML(http.StatusInternalServerError, "500.html", nil)
		return
	}

	session.Flash(c, "success", "Logged in successfully!")
	c.Redirect(http.StatusFound, "/")
}

// Logout GET /logout
func Logout(c *gin.Context) {
	_ = session.ClearUser(c)
	session.Flash(c, "success", "Logged out successfully.")
	c.Redirect(http.StatusFound, "/login")
}

// formData feeds both the register and login templates.
func formData(c *gin.Context, errs []string, username string) gin.H {
	return gin.H{
		"Flashes":  session.Flashes(c),
		"Errors":   errs,
		"Username": username,
	}
}
