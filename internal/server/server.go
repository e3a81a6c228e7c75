package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gymgate/internal/attendance"
	"gymgate/internal/auth"
	"gymgate/internal/config"
	"gymgate/internal/gym"
	"gymgate/internal/occupancy"
	"gymgate/internal/staff"
	"gymgate/internal/streak"
	"gymgate/internal/token"
)

// Handlers bundles the feature handlers the router mounts.
type Handlers struct {
	Staff      *staff.Handler
	Gym        *gym.Handler
	Token      *token.Handler
	Attendance *attendance.Handler
	Streak     *streak.Handler
	Reconciler *occupancy.Reconciler
}

type Server struct {
	router *gin.Engine
	config *config.Config
	http   *http.Server
}

func New(cfg *config.Config, h Handlers) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(50, 100))

	public := router.Group("/auth")
	{
		public.POST("/login", h.Staff.Login)
		public.POST("/refresh", h.Staff.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/auth/me", h.Staff.Me)

		protected.POST("/checkin", h.Attendance.CheckIn)
		protected.POST("/checkout", h.Attendance.CheckOut)
		protected.POST("/tokens", h.Token.Issue)

		protected.GET("/gyms", h.Gym.ListGyms)
		protected.GET("/gyms/:gymID", h.Gym.GetGym)
		protected.GET("/gyms/:gymID/occupancy", h.Gym.GetOccupancy)

		protected.GET("/members/:memberID/attendance", h.Attendance.History)
		protected.GET("/members/:memberID/streak", h.Streak.GetMemberStreak)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/staff", h.Staff.Register)
		admin.POST("/gyms", h.Gym.CreateGym)
		admin.GET("/gyms", h.Gym.ListGyms)
		admin.PUT("/gyms/:gymID/capacity", h.Gym.UpdateCapacity)
		admin.POST("/gyms/:gymID/reconcile", ReconcileGym(h.Reconciler))
		admin.POST("/attendance/:recordID/void", h.Attendance.Void)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests before returning.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
