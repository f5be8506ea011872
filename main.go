// main.go
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"kiddushware/controllers"
	"kiddushware/live"
	"kiddushware/logger"
	"kiddushware/middleware"
	"kiddushware/services"
	"kiddushware/store"
	"kiddushware/websocket"
)

// defaultShabbatWindow is how many upcoming Shabbosim calendars and forms
// show when SHABBAT_WINDOW is unset.
const defaultShabbatWindow = 8

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("main: no .env file loaded")
	}

	env := os.Getenv("APP_ENV")
	logger.SetLogLevel(env)
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
		websocket.EnableMetrics()
	}

	// Read configuration from environment variables
	applicationURL := os.Getenv("APPLICATION_URL")
	if applicationURL == "" {
		applicationURL = "http://localhost:8080" // Default to localhost for local testing
	}
	websocketURL := os.Getenv("WEBSOCKET_URL")
	if websocketURL == "" {
		websocketURL = "ws://localhost:8080" // Default to localhost for local testing
	}
	controllers.SetConfig(applicationURL, websocketURL)

	window := defaultShabbatWindow
	if w, err := strconv.Atoi(os.Getenv("SHABBAT_WINDOW")); err == nil && w > 0 {
		window = w
	}

	dbPath := os.Getenv("KIDDUSHWARE_DB")
	if dbPath == "" {
		dbPath = "kiddushware.db"
	}
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	// Service and engine wiring. The store satisfies both source interfaces.
	parsha := services.NewParshaService()
	resolver := services.NewResolverService(parsha, db)
	engine := live.NewEngine(db, resolver, db.Notifier())
	hub := websocket.NewHub(engine, window)
	email := services.NewEmailService()
	people := services.NewPeopleService(db)

	authController := controllers.NewAuthController(db)
	configController := controllers.NewConfigController(db)
	eventController := controllers.NewEventController(db)
	sponsorshipController := controllers.NewSponsorshipController(db, parsha, hub)
	peopleController := controllers.NewPeopleController(db, people)
	publicController := controllers.NewPublicController(db, engine, email, hub, window)

	router := gin.Default()

	// Admin pages refuse framing; public displays must stay embeddable in
	// congregation websites, so they carry no frame restriction at all.
	router.Use(func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, "/display") {
			c.Writer.Header().Set("X-Frame-Options", "SAMEORIGIN")
		}
		c.Next()
	})

	// Initialize session store
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "kiddushware-dev-secret"
		logger.Warn.Println("main: SESSION_SECRET not set, using development default")
	}
	sessionStore := cookie.NewStore([]byte(sessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("kiddushware_session", sessionStore))

	// Load HTML templates and static assets
	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")
	router.GET("/favicon.ico", func(c *gin.Context) {
		c.File("./static/images/favicon.ico")
	})

	router.GET("/health", controllers.Health)
	router.GET("/", controllers.Index)

	// Public routes. Display pages stay frame-embeddable; everything else
	// refuses framing.
	router.GET("/login", authController.ShowLoginPage)
	router.POST("/login", authController.PerformLogin)
	router.GET("/register", authController.ShowRegisterPage)
	router.POST("/register", authController.PerformRegister)
	router.GET("/logout", authController.Logout)

	router.GET("/display/:id", publicController.ShowDisplay)
	router.POST("/display/:id/sponsor", publicController.SubmitSponsorship)
	router.GET("/display-updates/:id", publicController.DisplayUpdates)
	router.GET("/display-heartbeat", gin.WrapF(HeartbeatHandler))
	go CleanupRoutine()

	// Protected admin routes
	admin := router.Group("/admin", middleware.AuthRequired)
	{
		admin.GET("", configController.ShowDashboard)
		admin.POST("/configurations", configController.CreateConfiguration)
		admin.POST("/configurations/:id", configController.UpdateConfiguration)
		admin.POST("/configurations/:id/delete", configController.DeleteConfiguration)
		admin.GET("/configurations/:id/qrcode", configController.GetQRCode)

		admin.GET("/events", eventController.ShowEvents)
		admin.POST("/events", eventController.CreateEvent)
		admin.POST("/events/:id", eventController.UpdateEvent)
		admin.POST("/events/:id/delete", eventController.DeleteEvent)

		admin.GET("/sponsorships", sponsorshipController.ShowSponsorships)
		admin.POST("/sponsorships/reserve", sponsorshipController.ReserveKiddush)
		admin.POST("/sponsorships/:id/approve", sponsorshipController.ApproveSponsorship)
		admin.POST("/sponsorships/:id/reject", sponsorshipController.RejectSponsorship)
		admin.POST("/sponsorships/:id/edit", sponsorshipController.EditSponsorship)
		admin.POST("/sponsorships/:id/delete", sponsorshipController.DeleteSponsorship)
		admin.GET("/sponsorship-updates", sponsorshipController.WorklistUpdates)

		admin.GET("/people", peopleController.ShowPeople)
		admin.POST("/people", peopleController.SavePerson)
		admin.POST("/people/delete", peopleController.DeletePerson)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info.Printf("main: KiddushWare listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
