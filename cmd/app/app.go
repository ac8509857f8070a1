package main

import (
	"os"

	"github.com/DRSN-tech/lignum-storefront/internal/app"
	config "github.com/DRSN-tech/lignum-storefront/internal/cfg"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/joho/godotenv"
)

//	@title			Lignum Storefront API
//	@version		1.0
//	@description	Витрина мебельного магазина: каталог, корзина, B2B-предоплата и оформление заказов.
//	@BasePath		/api/v1
func main() {
	// .env нужен только для локального запуска
	_ = godotenv.Load()

	log, err := logger.NewZapLogger()
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		log.Sync()
		os.Exit(1)
	}
}
