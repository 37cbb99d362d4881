package routes

import (
	"time"

	"mindlift/api/handler"
	"mindlift/api/middleware"
	"mindlift/api/ws"
	"mindlift/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Videos         *handler.VideoHandler
	Speaker        *handler.SpeakerHandler
	Admin          *handler.AdminHandler
	Bookmarks      *handler.BookmarkHandler
	Notifications  *handler.NotificationHandler
	Billing        *handler.BillingHandler
	Hub            *ws.Hub
	AuthMiddleware middleware.AuthMiddleware
	SignupRate     *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	videos *handler.VideoHandler,
	speaker *handler.SpeakerHandler,
	admin *handler.AdminHandler,
	bookmarks *handler.BookmarkHandler,
	notifications *handler.NotificationHandler,
	billing *handler.BillingHandler,
	hub *ws.Hub,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Videos:         videos,
		Speaker:        speaker,
		Admin:          admin,
		Bookmarks:      bookmarks,
		Notifications:  notifications,
		Billing:        billing,
		Hub:            hub,
		AuthMiddleware: authMiddleware,
		SignupRate:     middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	requireAuth := r.AuthMiddleware.RequireAuth
	adminOnly := middleware.RequireRole(entity.UserRoleAdmin)
	speakerOrAdmin := middleware.RequireRole(entity.UserRoleSpeaker, entity.UserRoleAdmin)
	speakerOnly := middleware.RequireRole(entity.UserRoleSpeaker)

	api := e.Group("/api")

	api.POST("/signup", r.Auth.Signup, r.SignupRate.Middleware())
	api.POST("/login", r.Auth.Login, r.LoginRate.Middleware())
	api.POST("/auth/verify-email", r.Auth.VerifyEmail, r.SignupRate.Middleware())
	api.POST("/auth/password/forgot", r.Auth.PasswordForgot, r.LoginRate.Middleware())
	api.POST("/auth/password/reset", r.Auth.PasswordReset, r.SignupRate.Middleware())
	api.GET("/me", r.Auth.Me, requireAuth)

	api.GET("/videos", r.Videos.List)
	api.GET("/videos/:id", r.Videos.Get, r.AuthMiddleware.OptionalAuth)
	api.POST("/videos", r.Videos.Create, requireAuth, speakerOrAdmin)
	api.PUT("/videos/:id", r.Videos.Update, requireAuth)
	api.PATCH("/videos/:id", r.Videos.Update, requireAuth)
	api.PATCH("/videos/:id/approval", r.Videos.SetApproval, requireAuth, adminOnly)
	api.DELETE("/videos/:id", r.Videos.Delete, requireAuth)

	api.GET("/speaker/dashboard", r.Speaker.Dashboard, requireAuth, speakerOrAdmin)
	api.GET("/speaker/onboarding/profile", r.Speaker.GetProfile, requireAuth, speakerOnly)
	api.PUT("/speaker/onboarding/profile", r.Speaker.UpdateProfile, requireAuth, speakerOnly)
	api.POST("/speaker/onboarding/submit", r.Speaker.SubmitForReview, requireAuth, speakerOnly)

	api.GET("/users", r.Admin.ListUsers, requireAuth, adminOnly)
	api.GET("/admin/stats", r.Admin.Stats, requireAuth, adminOnly)
	api.DELETE("/admin/users/:id", r.Admin.DeleteUser, requireAuth, adminOnly)
	api.GET("/admin/speakers", r.Admin.ListPendingSpeakers, requireAuth, adminOnly)
	api.POST("/admin/speakers/:id/approve", r.Admin.ApproveSpeaker, requireAuth, adminOnly)
	api.POST("/admin/speakers/:id/reject", r.Admin.RejectSpeaker, requireAuth, adminOnly)
	api.GET("/admin/videos", r.Admin.ListPendingVideos, requireAuth, adminOnly)
	api.POST("/admin/videos/:id/approve", r.Admin.ApproveVideo, requireAuth, adminOnly)
	api.POST("/admin/videos/:id/reject", r.Admin.RejectVideo, requireAuth, adminOnly)

	api.GET("/bookmarks", r.Bookmarks.List, requireAuth, middleware.RequireNonAdmin())
	api.POST("/bookmarks", r.Bookmarks.Create, requireAuth, middleware.RequireNonAdmin())
	api.DELETE("/bookmarks/:videoID", r.Bookmarks.Delete, requireAuth, middleware.RequireNonAdmin())

	api.GET("/notifications", r.Notifications.List, requireAuth)
	api.PUT("/notifications/read-all", r.Notifications.MarkAllRead, requireAuth)
	api.PUT("/notifications/:id/read", r.Notifications.MarkRead, requireAuth)

	if r.Billing != nil {
		api.POST("/subscribe", r.Billing.Subscribe, requireAuth)
		api.POST("/webhook", r.Billing.Webhook)
	}

	e.GET("/ws", r.Hub.Handle)
}
