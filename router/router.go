package router

import (
	"time"

	"github.com/Soufianejami/coworkingcaisse/api"
	"github.com/Soufianejami/coworkingcaisse/config"
	_ "github.com/Soufianejami/coworkingcaisse/docs"
	"github.com/Soufianejami/coworkingcaisse/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter builds the route tree.
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()
	r.Use(CORSMiddleware())

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// Auth routes (no login required)
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
			auth.POST("/password/request-reset", authHandler.RequestPasswordReset)
			auth.POST("/password/reset", authHandler.ResetPassword)
		}

		// Staff routes (JWT)
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth())
		{
			transactionHandler := api.NewTransactionHandler()
			protected.POST("/transactions", transactionHandler.Create)
			protected.GET("/transactions", transactionHandler.List)
			protected.GET("/transactions/:id", transactionHandler.Get)
			protected.PATCH("/transactions/:id", transactionHandler.Update)
			protected.DELETE("/transactions/:id", transactionHandler.Delete)

			statsHandler := api.NewStatsHandler()
			protected.GET("/stats/daily", statsHandler.Daily)
			protected.GET("/stats/range", statsHandler.Range)
			protected.GET("/stats/net-revenue", statsHandler.NetRevenue)
			protected.GET("/stats/summary", statsHandler.Summary)

			expenseHandler := api.NewExpenseHandler()
			protected.GET("/expenses/categories", expenseHandler.GetCategories)
			protected.POST("/expenses", expenseHandler.Create)
			protected.GET("/expenses", expenseHandler.List)
			protected.GET("/expenses/:id", expenseHandler.Get)
			protected.PUT("/expenses/:id", expenseHandler.Update)
			protected.DELETE("/expenses/:id", expenseHandler.Delete)

			stockHandler := api.NewStockHandler(cfg)
			protected.POST("/stock/add", stockHandler.Add)
			protected.POST("/stock/remove", stockHandler.Remove)
			protected.POST("/stock/adjust", stockHandler.Adjust)
			protected.GET("/inventory", stockHandler.ListInventory)
			protected.GET("/inventory/low-stock", stockHandler.LowStock)
			protected.GET("/inventory/expiring", stockHandler.Expiring)
			protected.GET("/inventory/:productId/movements", stockHandler.Movements)

			productHandler := api.NewProductHandler()
			protected.GET("/products", productHandler.List)

			// Back-office routes (admin only)
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/products", productHandler.Create)
				admin.PUT("/products/:id", productHandler.Update)
				admin.DELETE("/products/:id", productHandler.Delete)

				admin.POST("/inventory", stockHandler.CreateInventory)
				admin.POST("/inventory/alert", stockHandler.SendLowStockAlert)

				userHandler := api.NewUserHandler()
				admin.GET("/users", userHandler.List)
				admin.PATCH("/users/:id", userHandler.Update)

				exportHandler := api.NewExportHandler()
				admin.GET("/export/excel", exportHandler.ExportExcel)
			}
		}
	}

	return r
}
