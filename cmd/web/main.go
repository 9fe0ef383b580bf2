package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foxred/hillary/internal/infrastructure/apiclient"
	"github.com/foxred/hillary/internal/infrastructure/session"
	"github.com/foxred/hillary/internal/interfaces/web"
	"github.com/foxred/hillary/pkg/config"
	"github.com/foxred/hillary/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "web",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("api", cfg.Web.APIBaseURL).
		Bool("redis", cfg.Redis.URL != "").
		Msg("iniciando frontend")

	sessions, err := session.Open(cfg.Redis.URL, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de sesiones")
	}
	defer sessions.Close()

	if cfg.Web.InsecureTLS {
		log.Warn().Msg("WEB_INSECURE_TLS activo: no se validan los certificados de la API")
	}
	app := web.NewApp(web.Deps{
		AppName:      cfg.App.Name + "-web",
		API:          apiclient.New(apiclient.Options{BaseURL: cfg.Web.APIBaseURL, InsecureTLS: cfg.Web.InsecureTLS}),
		Sessions:     sessions,
		SessionTTL:   cfg.Web.SessionDuration(),
		CookieSecure: cfg.Web.CookieSecure,
		CSRF:         cfg.Web.CSRF,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.Web.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor web finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("frontend detenido")
}
