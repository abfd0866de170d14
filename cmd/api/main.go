// Package main is the entry point for the MSLS backend API server.
//
// @title MSLS API
// @version 1.0
// @description Multi-School Learning System API
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	// swaggerFiles "github.com/swaggo/files"
	// ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// _ "msls-backend/docs" // TODO: Generate docs with `swag init`
	academicyearhandler "msls-backend/internal/handlers/academicyear"
	admissionhandler "msls-backend/internal/handlers/admission"
	adminhandler "msls-backend/internal/handlers/admin"
	authhandler "msls-backend/internal/handlers/auth"
	branchhandler "msls-backend/internal/handlers/branch"
	profilehandler "msls-backend/internal/handlers/profile"
	rbachandler "msls-backend/internal/handlers/rbac"
	"msls-backend/internal/middleware"
	"msls-backend/internal/modules/assignment"
	"msls-backend/internal/modules/academic"
	"msls-backend/internal/modules/timetable"
	"msls-backend/internal/modules/staff"
	"msls-backend/internal/modules/student"
	"msls-backend/internal/pkg/config"
	"msls-backend/internal/pkg/database"
	apperrors "msls-backend/internal/pkg/errors"
	"msls-backend/internal/pkg/logger"
	"msls-backend/internal/pkg/response"
	"msls-backend/internal/pkg/sms"
	"msls-backend/internal/services/academicyear"
	"msls-backend/internal/services/admission"
	"msls-backend/internal/services/auth"
	"msls-backend/internal/services/branch"
	"msls-backend/internal/services/featureflag"
	"msls-backend/internal/services/profile"
	"msls-backend/internal/services/rbac"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	// Initialize database connection
	dbConfig := database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	conn, err := database.New(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db := conn.DB()
	log.Info("database connected")

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := setupRouter(cfg, log, db)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("address", addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))

		// Create shutdown context with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt graceful shutdown
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
			if err := srv.Close(); err != nil {
				return fmt.Errorf("forced shutdown error: %w", err)
			}
		}

		log.Info("server stopped gracefully")
	}

	return nil
}

func setupRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB) *gin.Engine {
	router := gin.New()

	// === Global Middleware (applied to all routes) ===
	// Order matters: these are executed in the order they are added

	// 1. CORS - Must be first to handle preflight requests
	corsConfig := middleware.DefaultCORSConfig()
	if cfg.App.IsProduction() {
		// In production, configure allowed origins from environment
		corsConfig = middleware.ProductionCORSConfig([]string{
			"https://msls.example.com",
			// Add production origins here
		})
	}
	router.Use(middleware.CORS(corsConfig))

	// 2. Request ID - Generate/propagate request ID for tracing
	router.Use(middleware.RequestIDDefault())

	// 3. Recovery - Catch panics and return 500 errors
	router.Use(middleware.RecoveryDefault(log))

	// 4. Logging - Log all requests (after request ID so it's available)
	router.Use(middleware.LoggingDefault(log))

	// 5. Error Handler - Convert errors to RFC 7807 responses
	router.Use(apperrors.Handler(log))

	// 6. Rate Limiting - Global rate limit (100 req/min by default)
	router.Use(middleware.RateLimitDefault())

	// === Static File Serving ===
	// Serve uploaded files (documents, avatars, etc.)
	router.Static("/uploads", "./uploads")

	// === Public Routes (no tenant required) ===
	// Health check endpoint (excluded from tenant middleware)
	router.GET("/health", healthHandler)
	router.GET("/ready", readyHandler)

	// Swagger documentation endpoint
	// TODO: Enable after running `swag init` to generate docs
	// router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize services
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessExpiresIn,
		RefreshTTL: cfg.JWT.RefreshExpiresIn,
	})
	authService := auth.NewAuthService(db, jwtService)

	// Initialize RBAC services
	permissionService := rbac.NewPermissionService(db)
	roleService := rbac.NewRoleService(db, permissionService)
	userRoleService := rbac.NewUserRoleService(db, roleService)

	// Initialize SMS provider (mock for development)
	smsProvider, err := sms.NewMockProvider("")
	if err != nil {
		log.Warn("failed to initialize SMS provider, OTP via SMS will not work", zap.Error(err))
	}

	// Initialize OTP service
	otpService := auth.NewOTPService(db, jwtService, auth.OTPConfig{
		SMSProvider: smsProvider,
	})

	// Initialize TOTP service for 2FA
	totpService, err := auth.NewTOTPService(db, cfg.JWT.Secret)
	if err != nil {
		log.Warn("failed to initialize TOTP service, 2FA will not work", zap.Error(err))
	}
	authService.SetTOTPService(totpService)

	// Initialize profile service
	profileService := profile.NewProfileService(db, profile.Config{
		UploadDir: "./uploads/avatars",
	})

	// Initialize feature flag service
	featureFlagService := featureflag.NewService(db, featureflag.DefaultConfig())

	// Initialize branch service
	branchService := branch.NewService(db)

	// Initialize academic year service
	academicYearService := academicyear.NewService(db)

	// Initialize admission services
	admissionSessionService := admission.NewSessionService(db)
	admissionReportService := admission.NewReportService(db)
	admissionExportService := admission.NewExportService(db, admissionReportService)
	enquiryService := admission.NewEnquiryService(db)
	applicationService := admission.NewApplicationService(db)
	testService := admission.NewTestService(db)
	reviewService := admission.NewReviewService(db)
	meritService := admission.NewMeritService(db)
	decisionService := admission.NewDecisionService(db)

	// Initialize student service (base roster only - health/behavioral/
	// guardian/enrollment/document/bulk feature modules are out of this
	// generation engine's scope and were trimmed, per DESIGN.md)
	studentService := student.NewService(db, branchService)

	// Initialize staff service
	staffService := staff.NewService(db, branchService)

	// Initialize assignment service
	assignmentService := assignment.NewService(db)

	// Initialize academic service
	academicRepo := academic.NewRepository(db)
	academicService := academic.NewService(academicRepo)

	// Initialize timetable service
	timetableRepo := timetable.NewRepository(db)
	timetableService := timetable.NewService(timetableRepo)

	// Initialize timetable generation service
	generationRepo := timetable.NewGenerationRepository(db)
	generationService := timetable.NewGenerationService(generationRepo, cfg.Timetable)

	// Initialize handlers
	authHandler := authhandler.NewHandler(authService)
	otpHandler := authhandler.NewOTPHandler(otpService)
	twoFactorHandler := authhandler.NewTwoFactorHandler(authService, totpService)
	profileHandler := profilehandler.NewHandler(profileService)
	roleHandler := rbachandler.NewRoleHandler(roleService)
	permissionHandler := rbachandler.NewPermissionHandler(permissionService)
	userRoleHandler := rbachandler.NewUserRoleHandler(userRoleService)
	featureFlagHandler := adminhandler.NewFeatureFlagHandler(featureFlagService)
	branchHandler := branchhandler.NewHandler(branchService)
	academicYearHandler := academicyearhandler.NewHandler(academicYearService)
	admissionSessionHandler := admissionhandler.NewSessionHandler(admissionSessionService)
	admissionReportHandler := admissionhandler.NewReportHandler(admissionReportService)
	admissionExportHandler := admissionhandler.NewExportHandler(admissionExportService)
	enquiryHandler := admissionhandler.NewEnquiryHandler(enquiryService)
	applicationHandler := admissionhandler.NewApplicationHandler(applicationService)
	testHandler := admissionhandler.NewTestHandler(testService)
	reviewHandler := admissionhandler.NewReviewHandler(reviewService)
	meritHandler := admissionhandler.NewMeritHandler(meritService)
	decisionHandler := admissionhandler.NewDecisionHandler(decisionService)
	studentHandler := student.NewHandler(studentService)
	staffHandler := staff.NewHandler(staffService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	academicHandler := academic.NewHandler(academicService)
	timetableHandler := timetable.NewHandler(timetableService)
	generationHandler := timetable.NewGenerationHandler(generationService)

	// === API v1 Routes ===
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication or tenant required)
		public := v1.Group("")
		{
			public.GET("/ping", pingHandler)
		}

		// Public routes that require tenant ID but no authentication
		publicTenant := v1.Group("/public")
		publicTenant.Use(middleware.TenantRequired())
		{
			// Application status check (for parents to check their application status)
			publicTenant.POST("/applications/status", applicationHandler.CheckStatus)
		}

		// Auth routes (public - no authentication required)
		authRoutes := v1.Group("/auth")
		{
			// Public auth endpoints
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.RefreshToken)
			authRoutes.POST("/verify-email", authHandler.VerifyEmail)
			authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
			authRoutes.POST("/reset-password", authHandler.ResetPassword)

			// OTP endpoints (public - for passwordless login)
			otpRoutes := authRoutes.Group("/otp")
			{
				otpRoutes.POST("/request", otpHandler.RequestOTP)
				otpRoutes.POST("/verify", otpHandler.VerifyOTP)
				otpRoutes.POST("/resend", otpHandler.ResendOTP)
			}

			// 2FA validation endpoint (public - uses partial token)
			authRoutes.POST("/2fa/validate", twoFactorHandler.Validate2FA)

			// Protected auth endpoints (require authentication)
			authProtected := authRoutes.Group("")
			authProtected.Use(middleware.AuthRequired(jwtService))
			{
				authProtected.POST("/logout", authHandler.Logout)
				authProtected.GET("/me", authHandler.Me)

				// 2FA management endpoints (require authentication)
				twoFactorRoutes := authProtected.Group("/2fa")
				{
					twoFactorRoutes.POST("/setup", twoFactorHandler.Setup2FA)
					twoFactorRoutes.POST("/verify", twoFactorHandler.Verify2FA)
					twoFactorRoutes.POST("/disable", twoFactorHandler.Disable2FA)
					twoFactorRoutes.GET("/status", twoFactorHandler.GetStatus)
					twoFactorRoutes.GET("/backup-codes", twoFactorHandler.GetBackupCodes)
					twoFactorRoutes.POST("/regenerate-backup", twoFactorHandler.RegenerateBackupCodes)
				}
			}

			// Admin-only auth endpoints (require authentication + permission)
			authAdmin := authRoutes.Group("")
			authAdmin.Use(middleware.TenantRequired())
			authAdmin.Use(middleware.AuthRequired(jwtService))
			authAdmin.Use(middleware.PermissionRequired("users:write"))
			{
				authAdmin.POST("/register", authHandler.Register)
			}
		}

		// Profile routes (require authentication, tenant from token)
		profileRoutes := v1.Group("/profile")
		profileRoutes.Use(middleware.AuthRequired(jwtService))
		{
			profileRoutes.GET("", profileHandler.GetProfile)
			profileRoutes.PUT("", profileHandler.UpdateProfile)
			profileRoutes.DELETE("", profileHandler.RequestAccountDeletion)
			profileRoutes.POST("/avatar", profileHandler.UploadAvatar)
			profileRoutes.PUT("/password", profileHandler.ChangePassword)
			profileRoutes.GET("/preferences", profileHandler.GetPreferences)
			profileRoutes.PUT("/preferences", profileHandler.UpdatePreferences)
			profileRoutes.GET("/preferences/extended", profileHandler.GetUserPreferences)
			profileRoutes.POST("/preferences/extended", profileHandler.SetUserPreference)
			profileRoutes.DELETE("/preferences/extended", profileHandler.DeleteUserPreference)
		}

		// Protected routes (require tenant ID and authentication)
		protected := v1.Group("")
		protected.Use(middleware.TenantRequired())
		protected.Use(middleware.AuthRequired(jwtService))
		{
			// Role management routes
			roles := protected.Group("/roles")
			{
				// Read operations - require roles:read permission
				rolesRead := roles.Group("")
				rolesRead.Use(middleware.PermissionRequired("roles:read"))
				{
					rolesRead.GET("", roleHandler.List)
					rolesRead.GET("/:id", roleHandler.GetByID)
				}

				// Write operations - require roles:write permission
				rolesWrite := roles.Group("")
				rolesWrite.Use(middleware.PermissionRequired("roles:write"))
				{
					rolesWrite.POST("", roleHandler.Create)
					rolesWrite.PUT("/:id", roleHandler.Update)
					rolesWrite.POST("/:id/permissions", roleHandler.AssignPermissions)
					rolesWrite.DELETE("/:id/permissions", roleHandler.RemovePermissions)
				}

				// Delete operations - require roles:delete permission
				rolesDelete := roles.Group("")
				rolesDelete.Use(middleware.PermissionRequired("roles:delete"))
				{
					rolesDelete.DELETE("/:id", roleHandler.Delete)
				}
			}

			// Permission routes (read-only for most users)
			permissions := protected.Group("/permissions")
			permissions.Use(middleware.PermissionRequired("roles:read"))
			{
				permissions.GET("", permissionHandler.List)
				permissions.GET("/modules", permissionHandler.GetModules)
				permissions.GET("/modules/:module", permissionHandler.GetByModule)
			}

			// User role management routes
			users := protected.Group("/users")
			{
				// Current user can always view their own roles
				users.GET("/me/roles", userRoleHandler.GetMyRoles)

				// Admin operations on user roles - require users:write permission
				userRoles := users.Group("/:id/roles")
				userRoles.Use(middleware.PermissionRequired("users:write"))
				{
					userRoles.GET("", userRoleHandler.GetUserRoles)
					userRoles.POST("", userRoleHandler.AssignRoles)
					userRoles.DELETE("", userRoleHandler.RemoveRoles)
				}
			}

			// Branch management routes
			branches := protected.Group("/branches")
			{
				// Read operations - require branches:read permission
				branchesRead := branches.Group("")
				branchesRead.Use(middleware.PermissionRequired("branches:read"))
				{
					branchesRead.GET("", branchHandler.List)
					branchesRead.GET("/:id", branchHandler.GetByID)
				}

				// Write operations - require branches:update permission
				branchesWrite := branches.Group("")
				branchesWrite.Use(middleware.PermissionRequired("branches:update"))
				{
					branchesWrite.PUT("/:id", branchHandler.Update)
					branchesWrite.PATCH("/:id/primary", branchHandler.SetPrimary)
					branchesWrite.PATCH("/:id/status", branchHandler.SetStatus)
				}

				// Create operations - require branches:create permission
				branchesCreate := branches.Group("")
				branchesCreate.Use(middleware.PermissionRequired("branches:create"))
				{
					branchesCreate.POST("", branchHandler.Create)
				}

				// Delete operations - require branches:delete permission
				branchesDelete := branches.Group("")
				branchesDelete.Use(middleware.PermissionRequired("branches:delete"))
				{
					branchesDelete.DELETE("/:id", branchHandler.Delete)
				}
			}

			// Academic year management routes
			academicYears := protected.Group("/academic-years")
			{
				// Read operations - require academic-years:read permission
				academicYearsRead := academicYears.Group("")
				academicYearsRead.Use(middleware.PermissionRequired("academic-years:read"))
				{
					academicYearsRead.GET("", academicYearHandler.List)
					academicYearsRead.GET("/current", academicYearHandler.GetCurrent)
					academicYearsRead.GET("/:id", academicYearHandler.GetByID)
					academicYearsRead.GET("/:id/terms", academicYearHandler.ListTerms)
					academicYearsRead.GET("/:id/holidays", academicYearHandler.ListHolidays)
				}

				// Create operations - require academic-years:create permission
				academicYearsCreate := academicYears.Group("")
				academicYearsCreate.Use(middleware.PermissionRequired("academic-years:create"))
				{
					academicYearsCreate.POST("", academicYearHandler.Create)
				}

				// Update operations - require academic-years:update permission
				academicYearsUpdate := academicYears.Group("")
				academicYearsUpdate.Use(middleware.PermissionRequired("academic-years:update"))
				{
					academicYearsUpdate.PUT("/:id", academicYearHandler.Update)
					academicYearsUpdate.PATCH("/:id/current", academicYearHandler.SetCurrent)
					academicYearsUpdate.POST("/:id/terms", academicYearHandler.CreateTerm)
					academicYearsUpdate.PUT("/:id/terms/:termId", academicYearHandler.UpdateTerm)
					academicYearsUpdate.DELETE("/:id/terms/:termId", academicYearHandler.DeleteTerm)
					academicYearsUpdate.POST("/:id/holidays", academicYearHandler.CreateHoliday)
					academicYearsUpdate.PUT("/:id/holidays/:holidayId", academicYearHandler.UpdateHoliday)
					academicYearsUpdate.DELETE("/:id/holidays/:holidayId", academicYearHandler.DeleteHoliday)
				}

				// Delete operations - require academic-years:delete permission
				academicYearsDelete := academicYears.Group("")
				academicYearsDelete.Use(middleware.PermissionRequired("academic-years:delete"))
				{
					academicYearsDelete.DELETE("/:id", academicYearHandler.Delete)
				}
			}

			// Student management routes
			students := protected.Group("/students")
			{
				// Read operations - require students:read permission
				studentsRead := students.Group("")
				studentsRead.Use(middleware.PermissionRequired("students:read"))
				{
					studentsRead.GET("", studentHandler.List)
					studentsRead.GET("/next-admission-number", studentHandler.GetNextAdmissionNumber)
					studentsRead.GET("/:id", studentHandler.GetByID)
				}

				// Create operations - require students:write permission
				studentsCreate := students.Group("")
				studentsCreate.Use(middleware.PermissionRequired("students:write"))
				{
					studentsCreate.POST("", studentHandler.Create)
				}

				// Update operations - require students:write permission
				studentsUpdate := students.Group("")
				studentsUpdate.Use(middleware.PermissionRequired("students:write"))
				{
					studentsUpdate.PUT("/:id", studentHandler.Update)
					studentsUpdate.POST("/:id/photo", studentHandler.UpdatePhoto)
				}

				// Delete operations - require students:delete permission
				studentsDelete := students.Group("")
				studentsDelete.Use(middleware.PermissionRequired("students:delete"))
				{
					studentsDelete.DELETE("/:id", studentHandler.Delete)
				}
			}

			// Admission session management routes
			admissionSessions := protected.Group("/admission-sessions")
			{
				// Read operations - require admissions:read permission
				admissionsRead := admissionSessions.Group("")
				admissionsRead.Use(middleware.PermissionRequired("admissions:read"))
				{
					admissionsRead.GET("", admissionSessionHandler.List)
					admissionsRead.GET("/:id", admissionSessionHandler.GetByID)
					admissionsRead.GET("/:id/seats", admissionSessionHandler.ListSeats)
					admissionsRead.GET("/:id/stats", admissionSessionHandler.GetStats)
					admissionsRead.GET("/:id/merit-list", meritHandler.GetMeritList)
					admissionsRead.GET("/:id/merit-lists", meritHandler.ListMeritLists)
				}

				// Create operations - require admissions:create permission
				admissionsCreate := admissionSessions.Group("")
				admissionsCreate.Use(middleware.PermissionRequired("admissions:create"))
				{
					admissionsCreate.POST("", admissionSessionHandler.Create)
				}

				// Update operations - require admissions:update permission
				admissionsUpdate := admissionSessions.Group("")
				admissionsUpdate.Use(middleware.PermissionRequired("admissions:update"))
				{
					admissionsUpdate.PUT("/:id", admissionSessionHandler.Update)
					admissionsUpdate.PATCH("/:id/status", admissionSessionHandler.ChangeStatus)
					admissionsUpdate.PATCH("/:id/extend", admissionSessionHandler.ExtendDeadline)
					admissionsUpdate.POST("/:id/seats", admissionSessionHandler.CreateSeat)
					admissionsUpdate.PUT("/:id/seats/:seatId", admissionSessionHandler.UpdateSeat)
					admissionsUpdate.DELETE("/:id/seats/:seatId", admissionSessionHandler.DeleteSeat)
					admissionsUpdate.POST("/:id/merit-list", meritHandler.GenerateMeritList)
				}

				// Delete operations - require admissions:delete permission
				admissionsDelete := admissionSessions.Group("")
				admissionsDelete.Use(middleware.PermissionRequired("admissions:delete"))
				{
					admissionsDelete.DELETE("/:id", admissionSessionHandler.Delete)
				}
			}

			// Merit list management routes
			meritLists := protected.Group("/merit-lists")
			{
				// Read operations - require admissions:read permission
				meritListsRead := meritLists.Group("")
				meritListsRead.Use(middleware.PermissionRequired("admissions:read"))
				{
					// Note: No GET /:id here as merit lists are accessed via session
				}

				// Update operations - require admissions:update permission
				meritListsUpdate := meritLists.Group("")
				meritListsUpdate.Use(middleware.PermissionRequired("admissions:update"))
				{
					meritListsUpdate.POST("/:id/finalize", meritHandler.FinalizeMeritList)
					meritListsUpdate.PATCH("/:id/cutoff", meritHandler.UpdateCutoff)
				}

				// Delete operations - require admissions:delete permission
				meritListsDelete := meritLists.Group("")
				meritListsDelete.Use(middleware.PermissionRequired("admissions:delete"))
				{
					meritListsDelete.DELETE("/:id", meritHandler.DeleteMeritList)
				}
			}

			// Admission enquiry management routes
			enquiries := protected.Group("/enquiries")
			{
				// Read operations - require enquiries:read permission
				enquiriesRead := enquiries.Group("")
				enquiriesRead.Use(middleware.PermissionRequired("enquiries:read"))
				{
					enquiriesRead.GET("", enquiryHandler.List)
					enquiriesRead.GET("/:id", enquiryHandler.GetByID)
					enquiriesRead.GET("/:id/follow-ups", enquiryHandler.ListFollowUps)
				}

				// Create operations - require enquiries:create permission
				enquiriesCreate := enquiries.Group("")
				enquiriesCreate.Use(middleware.PermissionRequired("enquiries:create"))
				{
					enquiriesCreate.POST("", enquiryHandler.Create)
				}

				// Update operations - require enquiries:update permission
				enquiriesUpdate := enquiries.Group("")
				enquiriesUpdate.Use(middleware.PermissionRequired("enquiries:update"))
				{
					enquiriesUpdate.PUT("/:id", enquiryHandler.Update)
					enquiriesUpdate.POST("/:id/follow-ups", enquiryHandler.AddFollowUp)
					enquiriesUpdate.POST("/:id/convert", enquiryHandler.ConvertToApplication)
				}

				// Delete operations - require enquiries:delete permission
				enquiriesDelete := enquiries.Group("")
				enquiriesDelete.Use(middleware.PermissionRequired("enquiries:delete"))
				{
					enquiriesDelete.DELETE("/:id", enquiryHandler.Delete)
				}
			}

			// Admission reports and analytics routes
			admissions := protected.Group("/admissions")
			{
				// Report endpoints - require admissions:read permission
				admissionsReportsRead := admissions.Group("")
				admissionsReportsRead.Use(middleware.PermissionRequired("admissions:read"))
				{
					// Dashboard overview
					admissionsReportsRead.GET("/dashboard", admissionReportHandler.GetDashboard)

					// Report endpoints
					admissionsReportsRead.GET("/reports/funnel", admissionReportHandler.GetFunnel)
					admissionsReportsRead.GET("/reports/class-wise", admissionReportHandler.GetClassWise)
					admissionsReportsRead.GET("/reports/source-analysis", admissionReportHandler.GetSourceAnalysis)
					admissionsReportsRead.GET("/reports/daily-trend", admissionReportHandler.GetDailyTrend)

					// Export endpoint
					admissionsReportsRead.GET("/export", admissionExportHandler.Export)
				}
			}

			// Admission application management routes
			applications := protected.Group("/applications")
			{
				// Read operations - require applications:read permission
				applicationsRead := applications.Group("")
				applicationsRead.Use(middleware.PermissionRequired("applications:read"))
				{
					applicationsRead.GET("", applicationHandler.List)
					applicationsRead.GET("/:id", applicationHandler.GetByID)
					applicationsRead.GET("/:id/parents", applicationHandler.ListParents)
					applicationsRead.GET("/:id/documents", applicationHandler.ListDocuments)
					applicationsRead.GET("/:id/decision", decisionHandler.GetDecision)
				}

				// Create operations - require applications:create permission
				applicationsCreate := applications.Group("")
				applicationsCreate.Use(middleware.PermissionRequired("applications:create"))
				{
					applicationsCreate.POST("", applicationHandler.Create)
				}

				// Update operations - require applications:update permission
				applicationsUpdate := applications.Group("")
				applicationsUpdate.Use(middleware.PermissionRequired("applications:update"))
				{
					applicationsUpdate.PUT("/:id", applicationHandler.Update)
					applicationsUpdate.POST("/:id/submit", applicationHandler.Submit)
					applicationsUpdate.PATCH("/:id/stage", applicationHandler.UpdateStage)
					applicationsUpdate.POST("/:id/parents", applicationHandler.AddParent)
					applicationsUpdate.PUT("/:id/parents/:parentId", applicationHandler.UpdateParent)
					applicationsUpdate.DELETE("/:id/parents/:parentId", applicationHandler.DeleteParent)
					applicationsUpdate.POST("/:id/documents", applicationHandler.AddDocument)
					applicationsUpdate.PATCH("/:id/documents/:documentId/verify", applicationHandler.VerifyDocument)
					applicationsUpdate.DELETE("/:id/documents/:documentId", applicationHandler.DeleteDocument)
				}

				// Delete operations - require applications:delete permission
				applicationsDelete := applications.Group("")
				applicationsDelete.Use(middleware.PermissionRequired("applications:delete"))
				{
					applicationsDelete.DELETE("/:id", applicationHandler.Delete)
				}

				// Review operations - require applications:review permission
				applicationsReview := applications.Group("")
				applicationsReview.Use(middleware.PermissionRequired("applications:review"))
				{
					applicationsReview.GET("/:id/reviews", reviewHandler.GetReviews)
					applicationsReview.POST("/:id/review", reviewHandler.CreateReview)
					applicationsReview.PATCH("/:id/status", reviewHandler.UpdateStatus)
				}

				// Decision operations - require admissions:update permission
				applicationsDecision := applications.Group("")
				applicationsDecision.Use(middleware.PermissionRequired("admissions:update"))
				{
					applicationsDecision.POST("/:id/decision", decisionHandler.MakeDecision)
					applicationsDecision.POST("/:id/offer-letter", decisionHandler.GenerateOfferLetter)
					applicationsDecision.POST("/:id/accept-offer", decisionHandler.AcceptOffer)
					applicationsDecision.POST("/:id/enroll", decisionHandler.Enroll)
					applicationsDecision.POST("/:id/promote", decisionHandler.PromoteFromWaitlist)
					applicationsDecision.PATCH("/:id/waitlist-position", decisionHandler.UpdateWaitlistPosition)
				}

				// Bulk decision operations - require admissions:update permission
				applicationsBulk := applications.Group("")
				applicationsBulk.Use(middleware.PermissionRequired("admissions:update"))
				{
					applicationsBulk.POST("/bulk-decision", decisionHandler.MakeBulkDecision)
				}
			}

			// Entrance test management routes
			entranceTests := protected.Group("/entrance-tests")
			{
				// Read operations - require tests:read permission
				testsRead := entranceTests.Group("")
				testsRead.Use(middleware.PermissionRequired("tests:read"))
				{
					testsRead.GET("", testHandler.ListTests)
					testsRead.GET("/:id", testHandler.GetTest)
					testsRead.GET("/:id/registrations", testHandler.ListRegistrations)
					testsRead.GET("/:id/hall-tickets", testHandler.GetHallTickets)
					testsRead.GET("/:id/hall-tickets/:registrationId", testHandler.GetHallTicket)
				}

				// Create operations - require tests:create permission
				testsCreate := entranceTests.Group("")
				testsCreate.Use(middleware.PermissionRequired("tests:create"))
				{
					testsCreate.POST("", testHandler.CreateTest)
				}

				// Update operations - require tests:update permission
				testsUpdate := entranceTests.Group("")
				testsUpdate.Use(middleware.PermissionRequired("tests:update"))
				{
					testsUpdate.PUT("/:id", testHandler.UpdateTest)
					testsUpdate.POST("/:id/register", testHandler.RegisterCandidate)
					testsUpdate.DELETE("/:id/registrations/:registrationId", testHandler.CancelRegistration)
				}

				// Results management - require tests:manage permission
				testsManage := entranceTests.Group("")
				testsManage.Use(middleware.PermissionRequired("tests:manage"))
				{
					testsManage.POST("/:id/results", testHandler.SubmitResult)
					testsManage.POST("/:id/results/bulk", testHandler.BulkSubmitResults)
				}

				// Delete operations - require tests:delete permission
				testsDelete := entranceTests.Group("")
				testsDelete.Use(middleware.PermissionRequired("tests:delete"))
				{
					testsDelete.DELETE("/:id", testHandler.DeleteTest)
				}
			}

			// Staff management routes
			staffRoutes := protected.Group("/staff")
			{
				// Read operations - require staff:read permission
				staffRead := staffRoutes.Group("")
				staffRead.Use(middleware.PermissionRequired("staff:read"))
				{
					staffRead.GET("", staffHandler.List)
					staffRead.GET("/employee-id/preview", staffHandler.PreviewEmployeeID)
					staffRead.GET("/:id", staffHandler.Get)
					staffRead.GET("/:id/status-history", staffHandler.GetStatusHistory)
				}

				// Create operations - require staff:create permission
				staffCreate := staffRoutes.Group("")
				staffCreate.Use(middleware.PermissionRequired("staff:create"))
				{
					staffCreate.POST("", staffHandler.Create)
				}

				// Update operations - require staff:update permission
				staffUpdate := staffRoutes.Group("")
				staffUpdate.Use(middleware.PermissionRequired("staff:update"))
				{
					staffUpdate.PUT("/:id", staffHandler.Update)
					staffUpdate.PATCH("/:id/status", staffHandler.UpdateStatus)
					staffUpdate.POST("/:id/photo", staffHandler.UpdatePhoto)
				}

				// Delete operations - require staff:delete permission
				staffDelete := staffRoutes.Group("")
				staffDelete.Use(middleware.PermissionRequired("staff:delete"))
				{
					staffDelete.DELETE("/:id", staffHandler.Delete)
				}
			}

			// Academic structure routes (classes, sections, streams)
			academicHandler.RegisterRoutes(protected)

			// Timetable structure routes (shifts, day patterns, period slots)
			timetableHandler.RegisterRoutes(protected)

			// Weekly timetable generation routes
			generationHandler.RegisterRoutes(protected)

			// Substitution management routes
			timetableHandler.RegisterSubstitutionRoutes(protected)

			// Teacher assignment routes
			assignmentHandler.RegisterRoutes(protected)
			assignmentHandler.RegisterStaffRoutes(staffRoutes)
			assignmentHandler.RegisterClassRoutes(protected)
		}

		// Feature flags routes (authenticated - returns flags for current user)
		featureFlagsRoutes := v1.Group("/feature-flags")
		featureFlagsRoutes.Use(middleware.AuthRequired(jwtService))
		featureFlagsRoutes.Use(middleware.FeatureFlagDefault(featureFlagService))
		{
			featureFlagsRoutes.GET("", featureFlagHandler.GetCurrentFlags)
			featureFlagsRoutes.GET("/:key", featureFlagHandler.IsEnabled)
		}

		// Admin routes (require admin permissions)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.TenantRequired())
		adminRoutes.Use(middleware.AuthRequired(jwtService))
		{
			// Feature flag management (admin only)
			adminFlags := adminRoutes.Group("/feature-flags")
			adminFlags.Use(middleware.PermissionRequired("settings:write"))
			{
				adminFlags.GET("", featureFlagHandler.ListFlags)
				adminFlags.GET("/:id", featureFlagHandler.GetFlag)
				adminFlags.POST("", featureFlagHandler.CreateFlag)
				adminFlags.PUT("/:id", featureFlagHandler.UpdateFlag)
				adminFlags.DELETE("/:id", featureFlagHandler.DeleteFlag)
			}

			// Tenant feature flag overrides (admin only)
			adminTenants := adminRoutes.Group("/tenants")
			adminTenants.Use(middleware.PermissionRequired("settings:write"))
			{
				adminTenants.GET("/:id/feature-flags", featureFlagHandler.GetTenantFlags)
				adminTenants.PUT("/:id/feature-flags", featureFlagHandler.SetTenantFlags)
			}

			// User feature flag overrides (admin only - for beta testing)
			adminUsers := adminRoutes.Group("/users")
			adminUsers.Use(middleware.PermissionRequired("settings:write"))
			{
				adminUsers.GET("/:id/feature-flags", featureFlagHandler.GetUserFlags)
				adminUsers.PUT("/:id/feature-flags", featureFlagHandler.SetUserFlags)
			}
		}
	}

	return router
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func healthHandler(c *gin.Context) {
	response.OK(c, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func readyHandler(c *gin.Context) {
	// TODO: Add database and cache connectivity checks
	response.OK(c, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func pingHandler(c *gin.Context) {
	response.OK(c, gin.H{"message": "pong"})
}
