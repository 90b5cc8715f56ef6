package routes

import (
    "github.com/faisal-gif/project-daily-log/config"
    "github.com/faisal-gif/project-daily-log/controllers"
    "github.com/faisal-gif/project-daily-log/middlewares"
    "github.com/faisal-gif/project-daily-log/models"
    "github.com/faisal-gif/project-daily-log/services"

    "github.com/gin-gonic/gin"
    "log"
)

func SetupRouter() *gin.Engine {
    r := gin.Default()

    moderation, err := services.NewModerationService()
    if err != nil {
        log.Fatalf("moderation init failed: %v", err)
    }
    hub := services.NewRealtimeHub()

    logSvc := services.NewLogService(config.DB, moderation, hub)
    reportSvc := services.NewReportService(config.DB)
    dashSvc := services.NewDashboardService(config.DB)

    logCtl := controllers.NewDailyLogController(logSvc)
    reportCtl := controllers.NewReportController(reportSvc, controllers.IndonesianFormat)
    dashCtl := controllers.NewDashboardController(dashSvc)
    rtCtl := controllers.NewRealtimeController(hub)

    // Public auth routes
    auth := r.Group("/auth")
    {
        auth.POST("/login", controllers.Login)
    }

    // Staff area: own dashboard, daily logs, profile
    user := r.Group("/user")
    user.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleStaff))
    {
        user.GET("/dashboard", dashCtl.User)

        user.GET("/daily-logs", logCtl.Index)
        user.POST("/daily-logs", logCtl.Store)
        user.GET("/daily-logs/:id", logCtl.Show)
        user.DELETE("/daily-logs/:id", logCtl.Destroy)
        user.PUT("/daily-logs/:id/items/:itemId", logCtl.UpdateItem)
        user.DELETE("/daily-logs/:id/items/:itemId", logCtl.DeleteItem)

        user.GET("/profile", controllers.GetProfile)
        user.PATCH("/profile", controllers.UpdateProfile)
        user.DELETE("/profile", controllers.DeleteProfile)
    }

    // Admin area: user management, reports, dashboards, live feed
    admin := r.Group("/admin")
    admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
    {
        admin.GET("/dashboard", dashCtl.Admin)

        admin.GET("/users", controllers.ListUsers)
        admin.POST("/users", controllers.CreateUser)
        admin.PUT("/users/:id", controllers.UpdateUser)
        admin.DELETE("/users/:id", controllers.DeleteUser)

        admin.GET("/reports", reportCtl.Index)
        admin.GET("/ws", rtCtl.ActivityWS)
    }

    return r
}
