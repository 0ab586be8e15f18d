package controller

import (
	"net/http"

	"github.com/careerconnect/careerconnect/web/service"
	"github.com/careerconnect/careerconnect/web/session"

	"github.com/gin-gonic/gin"
)

// UserController handles accounts, profiles and the password reset flow.
type UserController struct {
	BaseController

	userService           service.UserService
	recommendationService service.RecommendationService
	limiter               gin.HandlerFunc
}

func NewUserController(g *gin.RouterGroup, auth *service.AuthService, limiter gin.HandlerFunc) *UserController {
	if limiter == nil {
		limiter = func(c *gin.Context) { c.Next() }
	}
	a := &UserController{
		BaseController: BaseController{authService: auth},
		limiter:        limiter,
	}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.POST("/register", a.limiter, a.register)
	g.POST("/login", a.limiter, a.login)
	g.POST("/forgot-password", a.limiter, a.forgotPassword)
	g.POST("/reset-password/:token", a.resetPassword)

	m := a.member(g)
	m.POST("/logout", can(service.Logout), a.logout)
	m.GET("/profile", can(service.ViewOwnProfile), a.getProfile)
	m.PUT("/update", can(service.UpdateOwnProfile), a.updateProfile)
	m.DELETE("/delete", can(service.DeleteOwnAccount), a.deleteSelf)
	m.GET("/recommendations", can(service.ViewRecommendations), a.recommendations)

	admin := a.admin(g)
	admin.GET("/all", can(service.ListUsers), a.getUsers)
}

func (a *UserController) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	user, err := a.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": message(c, "users.created", "User created successfully!"),
		"user":    user,
	})
}

func (a *UserController) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.authService.Login(req.Email, req.Password)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message(c, "users.loggedIn", "Login successful!"),
		"token":   res.Token,
		"user": gin.H{
			"id":    res.User.ID,
			"name":  res.User.Name,
			"email": res.User.Email,
			"role":  res.User.Role,
		},
	})
}

// logout only confirms; tokens stay valid until they expire.
func (a *UserController) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": message(c, "users.loggedOut", "Logout successfully")})
}

func (a *UserController) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, session.GetLoginUser(c))
}

func (a *UserController) updateProfile(c *gin.Context) {
	var patch service.UserPatch
	if !bindStrictJSON(c, &patch) {
		return
	}
	user, err := a.userService.UpdateUser(session.GetLoginUserID(c), patch)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message(c, "users.updated", "User updated successfully"),
		"user":    user,
	})
}

func (a *UserController) deleteSelf(c *gin.Context) {
	if err := a.userService.DeleteUser(session.GetLoginUserID(c)); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message(c, "users.deleted", "User account deleted successfully")})
}

func (a *UserController) getUsers(c *gin.Context) {
	users, err := a.userService.GetUsers()
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (a *UserController) recommendations(c *gin.Context) {
	user := session.GetLoginUser(c)
	c.JSON(http.StatusOK, a.recommendationService.Recommend(user.Profile))
}

func (a *UserController) forgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if !bindJSON(c, &req) {
		return
	}
	reset, err := a.authService.IssuePasswordResetToken(req.Email)
	if err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    message(c, "users.resetIssued", "Password reset link generated (check console)"),
		"resetToken": reset.Token,
	})
}

func (a *UserController) resetPassword(c *gin.Context) {
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := a.authService.ResetPassword(c.Param("token"), req.NewPassword); err != nil {
		jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message(c, "users.resetDone", "Password reset successful!")})
}
