package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pradipta/siakad/internal/app/controllers"
	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	offeringController *controllers.OfferingController,
	componentController *controllers.ComponentController,
	scoreController *controllers.ScoreController,
	gradeController *controllers.GradeController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	instructorOnly := authMiddleware.RoleRequired(string(models.RoleInstructor), string(models.RoleAdmin))

	// Course offering routes
	offerings := authenticated.Group("/offerings")
	{
		offerings.GET("/:id", offeringController.GetOffering)
		offerings.GET("/:id/components", componentController.ListComponents)
		offerings.GET("/:id/weight-summary", componentController.GetWeightSummary)
		offerings.GET("/:id/students/:studentId/scores", scoreController.GetStudentScores)
		offerings.GET("/:id/students/:studentId/final-grade", gradeController.GetFinal)
		offerings.GET("/:id/final-grades", gradeController.ListFinalGrades)

		// Configuration and computation are restricted to instructors
		offeringsProtected := offerings.Group("")
		offeringsProtected.Use(instructorOnly)
		{
			offeringsProtected.POST("", offeringController.CreateOffering)
			offeringsProtected.POST("/:id/components", componentController.AddComponent)
			offeringsProtected.POST("/:id/students/:studentId/final-grade", gradeController.ComputeFinal)
			offeringsProtected.POST("/:id/final-grades/recompute", gradeController.RecomputeBatch)
		}
	}

	// Component routes addressed by component id
	components := authenticated.Group("/components")
	components.Use(instructorOnly)
	{
		components.PUT("/:id", componentController.UpdateComponent)
		components.DELETE("/:id", componentController.RemoveComponent)
	}

	// Score routes
	scores := authenticated.Group("/scores")
	scores.Use(instructorOnly)
	{
		scores.PUT("", scoreController.UpsertScore)
	}
}
