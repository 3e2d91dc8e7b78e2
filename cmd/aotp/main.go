package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-otp-migrate/internal/client"
	"github.com/MKhiriev/go-otp-migrate/internal/config"
	"github.com/MKhiriev/go-otp-migrate/internal/logger"
	"github.com/MKhiriev/go-otp-migrate/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: aotp <command> [flags] <image|url>...

commands:
  dump (qr-dump)  print the credentials held by QR images or URLs
  encode          build otpauth-migration URLs from the inputs
  code            print the current code of every credential
  version         print build information

flags:
  -d, -debug          print every field of every credential
  -u, -url            print otpauth-migration URLs
  -mode string        output mode: plain, debug or url
  -copy               copy the printed URLs to the clipboard
  -o, -qr-file path   write the URLs as QR code PNG images
  -qr-size int        QR image side in pixels
  -per-payload int    credentials per encoded payload
  -workers int        images decoded concurrently
  -timeout duration   per-image decoding timeout
  -log-level string   debug, info, warn or error
  -log-file path      log file
  -c, -config path    JSON config file
`

func main() {
	log := logger.NewLogger("aotp", logger.Options{})

	cfg, err := config.GetConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stderr, usage)
		return
	}
	if err != nil {
		fmt.Fprint(os.Stderr, usage)
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log = logger.NewLogger("aotp", logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	defer log.Close()
	log.Debug().Any("config", cfg).Msg("received configs")

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	var app client.Client
	app, err = client.NewApp(cfg, buildInfo, os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init aotp app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("aotp run error")
	}
}
