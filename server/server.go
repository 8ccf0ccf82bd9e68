package server

import (
	"user-server/confs"
	"user-server/db"
	httpHandler "user-server/handlers/http"
	"user-server/repositories"
	"user-server/usecases"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Server struct {
	app *gin.Engine
	db  db.Database
}

func NewServer(database db.Database) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
	}
}

// requestID tags every request with an X-Request-ID for log correlation,
// keeping a client-supplied id when present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) Start() {
	// Setup CORS middleware; the allowed client origin comes from config
	config := cors.DefaultConfig()
	if origins := confs.AllowedOrigins(); len(origins) > 0 {
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	s.app.Use(cors.New(config))
	s.app.Use(requestID())

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo)

	// Initialize handlers
	userHandler := httpHandler.NewUserHandler(userUseCase)

	// Setup API routes
	api := s.app.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.GetAllUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/search", userHandler.SearchUsers)
			users.GET("/count", userHandler.CountUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	// Single-page frontend
	s.app.StaticFile("/", "./web/index.html")
	s.app.StaticFile("/app.js", "./web/app.js")
	s.app.StaticFile("/style.css", "./web/style.css")

	if err := s.app.Run("0.0.0.0:" + confs.ServerPort()); err != nil {
		panic(err)
	}
}
