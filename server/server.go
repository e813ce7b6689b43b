package server

import (
	"fmt"

	"llm-assessment-backend/server/common"
	"llm-assessment-backend/server/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Host      string
	Port      int
	DebugMode bool
}

type Server struct {
	engine *gin.Engine
	config *Config
}

func New(config *Config) *Server {
	eng := gin.Default()

	eng.Use(common.LogRequest)
	eng.Use(common.SetUserInfo(config.DebugMode))
	eng.Use(cors.Default())

	eng.GET("/metrics", gin.WrapH(promhttp.Handler()))

	eng.POST("/register", handler.Register)
	eng.POST("/login", handler.Login)
	eng.POST("/logout", handler.Logout)

	// 需要登录的路由
	reviewGroup := eng.Group("review")
	{
		reviewGroup.Use(common.RejectNotLogin(config.DebugMode))

		reviewGroup.POST("/upload", handler.UploadFile)
		reviewGroup.GET("/dashboard", handler.Dashboard)
		reviewGroup.GET("/assessment", handler.GetAssessment)
		reviewGroup.POST("/assessment", handler.SubmitAssessment)
		reviewGroup.GET("/records", handler.ListRecord)
		reviewGroup.GET("/search", handler.Search)
		reviewGroup.GET("/export", handler.ExportResults)
		reviewGroup.POST("/delete", handler.DeleteBatch)
	}

	return &Server{
		engine: eng,
		config: config,
	}
}

func (s *Server) RunServer() error {
	return s.engine.Run(fmt.Sprintf("%s:%d", s.config.Host, s.config.Port))
}
