package routes

import (
	"nowpad/src/interface/handler"
	"nowpad/src/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all API routes under the secret URL prefix
func SetupRoutes(r *gin.Engine, secretPrefix string, itemHandler *handler.ItemHandler, rouletteHandler *handler.RouletteHandler) {
	// アイテムAPIは推測されにくいプレフィックスの下に置く（アクセス制御の代わり）
	secret := r.Group("/" + secretPrefix)
	secret.Use(middleware.LoggerMiddleware())
	secret.Use(middleware.CORSMiddleware())
	secret.Use(middleware.RateLimitMiddleware())

	api := secret.Group("/api")
	{
		// アイテムの取り込みと取得
		api.POST("/items/", itemHandler.CreateItem)                // POST /{secret}/api/items/
		api.GET("/item/:id/", itemHandler.GetItem)                 // GET  /{secret}/api/item/:id/
		api.POST("/item/:id/update/", itemHandler.UpdateItemField) // POST /{secret}/api/item/:id/update/

		// フィルタードロップダウン用のカテゴリ一覧
		api.GET("/categories/", itemHandler.GetCategories) // GET /{secret}/api/categories/
	}

	// 整理とルーレットの一覧サーフェス
	secret.GET("/organize/", itemHandler.Organize)     // GET /{secret}/organize/
	secret.GET("/roulette/", rouletteHandler.Roulette) // GET /{secret}/roulette/
}
