// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yourusername/hirehub/internal/auth"
	"github.com/yourusername/hirehub/internal/config"
	"github.com/yourusername/hirehub/internal/user"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowOrigins = origins
	// クッキーでセッショントークンを受け渡すため資格情報を許可
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
	}
	router.Use(cors.New(corsConfig))

	// MongoDBへの接続とインデックスの作成
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	store := user.NewMongoStore(client.Database(cfg.MongoDatabase))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure user indexes: %v", err)
	}
	log.Printf("MongoDB connected (database: %s)", cfg.MongoDatabase)

	// メール配信ワーカーの起動
	scheduler, mailManager := setupMail(cfg)
	if mailManager != nil {
		mailManager.StartWorkers()
		defer func() {
			_ = mailManager.Shutdown(context.Background())
		}()
	}

	// ルーティングの設定
	setupRoutes(router, cfg, store, scheduler)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "hirehub-api",
		"version": "0.1.0",
	})
}

// setupRoutes は認証系エンドポイントの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, store user.Store, scheduler user.MailScheduler) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret)
	limiter := auth.NewLoginLimiter()
	handler := user.NewHandler(store, tokenManager, limiter, scheduler, cfg.GinMode == gin.ReleaseMode, log.Default())

	// 認証不要のエンドポイント
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)
	router.GET("/logout", handler.Logout)

	// セッショントークン必須のエンドポイント
	guard := auth.RequireAuth(tokenManager)
	router.GET("/authcheck", guard, handler.Authcheck)
	router.GET("/users", guard, handler.ListUsers)
}
