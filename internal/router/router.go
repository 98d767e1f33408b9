package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vocably-dev/vocably/internal/handlers"
	"github.com/vocably-dev/vocably/internal/middleware"
	"github.com/vocably-dev/vocably/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/profile", middleware.AuthMiddleware(), handlers.UpdateProfile)
			auth.DELETE("/account", middleware.AuthMiddleware(), handlers.DeleteAccount)
		}

		me := api.Group("/me", middleware.AuthMiddleware())
		{
			me.GET("/words", handlers.ListMyWords)
			me.PATCH("/words/:assignment_id/learned", handlers.MarkLearned)
			me.POST("/words/:assignment_id/practice", handlers.RecordPractice)
			me.GET("/submissions", handlers.ListMySubmissions)
			me.POST("/submissions", handlers.CreateSubmission)
		}

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			admin.GET("/users", handlers.ListUsers)
			admin.POST("/users", handlers.CreateUser)
			admin.PATCH("/users/:user_id", handlers.UpdateUser)
			admin.DELETE("/users/:user_id", handlers.DeleteUser)

			admin.GET("/words", handlers.ListWords)
			admin.POST("/words", handlers.CreateWord)
			admin.PATCH("/words/:word_id", handlers.UpdateWord)
			admin.DELETE("/words/:word_id", handlers.DeleteWord)
			admin.POST("/words/generate", handlers.GenerateWords)
			admin.POST("/words/examples", handlers.GenerateExamples)
			admin.POST("/words/pronunciation", handlers.GeneratePronunciation)
			admin.POST("/words/import", handlers.ImportWords)
			admin.POST("/words/:word_id/assign", handlers.AssignWord)

			admin.POST("/assignments", handlers.BulkAssign)

			admin.GET("/submissions", handlers.ListSubmissions)
			admin.POST("/submissions/:submission_id/review", handlers.ReviewSubmission)
		}
	}

	return r
}
