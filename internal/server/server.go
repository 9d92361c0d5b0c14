package server

import (
	"context"
	"net/http"
	"time"

	"kusgan/internal/attendance"
	"kusgan/internal/auth"
	"kusgan/internal/catalog"
	"kusgan/internal/config"
	"kusgan/internal/member"
	"kusgan/internal/notify"
	"kusgan/internal/payment"
	"kusgan/internal/reminder"
	"kusgan/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router   *gin.Engine
	http     *http.Server
	db       *sqlx.DB
	config   *config.Config
	notify   *notify.Service
	staff    staff.Service
	reminder *reminder.Job
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	staffService := staff.NewService(staff.NewRepository(db), cfg.JWTSecret)
	catalogService := catalog.NewService(catalog.NewRepository(db), cfg.CatalogExplicitFlags)
	memberService := member.NewService(member.NewRepository(db), cfg.Location)
	paymentService := payment.NewService(payment.NewRepository(db), catalogService, memberService, notifier, cfg.Location)
	attendanceService := attendance.NewService(attendance.NewRepository(db), memberService, paymentService, cfg.RequireActiveMembership, cfg.Location)

	staffHandler := staff.NewHandler(staffService)
	catalogHandler := catalog.NewHandler(catalogService)
	memberHandler := member.NewHandler(memberService, paymentService)
	paymentHandler := payment.NewHandler(paymentService)
	attendanceHandler := attendance.NewHandler(attendanceService)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	adminMiddleware := auth.RequireRole(auth.RoleAdmin)

	public := router.Group("/auth")
	{
		public.POST("/login", staffHandler.Login)
		public.POST("/refresh", staffHandler.Refresh)
		public.POST("/register", authMiddleware, adminMiddleware, staffHandler.Register)
	}

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", staffHandler.GetMe)
		protected.GET("/products", catalogHandler.List)

		protected.POST("/members", memberHandler.Register)
		protected.GET("/members", memberHandler.List)
		protected.GET("/members/:id", memberHandler.Get)
		protected.GET("/members/:id/status", paymentHandler.Status)
		protected.GET("/members/:id/payments", paymentHandler.List)
		protected.POST("/members/:id/payments", paymentHandler.Record)
		protected.POST("/members/:id/payments/preview", paymentHandler.Preview)
		protected.POST("/members/:id/checkin", attendanceHandler.CheckIn)
		protected.POST("/members/:id/checkout", attendanceHandler.CheckOut)
		protected.GET("/members/:id/attendance", attendanceHandler.ListByMember)
		protected.GET("/attendance", attendanceHandler.ListByDate)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/products", catalogHandler.Create)
		admin.PUT("/products/:label", catalogHandler.Update)
		admin.GET("/test-email", TestEmail(notifier))
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics(notifier))
	SetupSwagger(router)

	return &Server{
		router:   router,
		db:       db,
		config:   cfg,
		notify:   notifier,
		staff:    staffService,
		reminder: reminder.NewJob(memberService, paymentService, notifier, cfg.ReminderDaysAhead, cfg.Location),
	}
}

// Start seeds the admin account, schedules the expiry reminders and serves
// HTTP until Shutdown is called.
func (s *Server) Start(port string) error {
	if err := s.staff.EnsureAdmin(context.Background(), s.config.AdminEmail, s.config.AdminPassword); err != nil {
		return err
	}
	if err := s.reminder.Start(s.config.ReminderSchedule); err != nil {
		return err
	}

	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.reminder.Stop()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
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
