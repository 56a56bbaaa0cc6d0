package pkg

import (
	"fmt"

	"shop/internal/app/config"
	"shop/internal/app/handler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config     *config.Config
	Router     *gin.Engine
	Handler    *handler.Handler
	APIHandler *handler.APIHandler
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.Handler, api *handler.APIHandler) *Application {
	return &Application{
		Config:     c,
		Router:     r,
		Handler:    h,
		APIHandler: api,
	}
}

// Routes регистрирует шаблоны, статику, HTML и API маршруты
func (a *Application) Routes() {
	a.Handler.RegisterStatic(a.Router, a.Config.Templates, a.Config.Static)
	a.Handler.RegisterRoutes(a.Router)
	if a.APIHandler != nil {
		a.APIHandler.RegisterAPIRoutes(a.Router)
	}
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Routes()

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
