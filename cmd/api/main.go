package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/catalog"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/handlers"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/pedidos"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/sheets"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/tabular"
)

func setupRouter(cfg handlers.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestID())
	handlers.Register(r, cfg)
	return r
}

func initLogger() *zap.Logger {
	var zcfg zap.Config
	if os.Getenv("APP_DEV") == "true" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	return logger
}

// loadCredentials prefers an inline bundle, falling back to a key file.
func loadCredentials() ([]byte, error) {
	if inline := os.Getenv("GOOGLE_CREDENTIALS_JSON"); inline != "" {
		return []byte(inline), nil
	}
	path := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if path == "" {
		path = "credentials.json"
	}
	return os.ReadFile(path)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	logger := initLogger()
	defer logger.Sync()
	sugar := logger.Sugar()

	creds, err := loadCredentials()
	if err != nil {
		sugar.Fatalf("failed to read credentials: %v", err)
	}

	client, err := sheets.Connect(context.Background(), sheets.Config{
		CredentialsJSON: creds,
		SpreadsheetURL:  os.Getenv("SHEET_URL"),
	})
	if err != nil {
		// an unauthenticated process serves nothing useful; halt and report
		if errors.Is(err, sheets.ErrAuth) {
			sugar.Fatalf("authentication failed: %v", err)
		}
		sugar.Fatalf("failed to connect to spreadsheet: %v", err)
	}

	if titles, terr := client.SheetTitles(context.Background()); terr != nil {
		sugar.Warnf("could not list worksheets: %v", terr)
	} else {
		for _, want := range []string{catalog.Worksheet, pedidos.Worksheet} {
			found := false
			for _, t := range titles {
				if t == want {
					found = true
					break
				}
			}
			if !found {
				sugar.Warnw("expected worksheet missing", "worksheet", want, "present", titles)
			}
		}
	}

	loader := tabular.NewLoader(client)
	cfg := handlers.Config{
		Catalog: catalog.NewStore(client, loader),
		Pedidos: pedidos.NewStore(loader),
		Log:     sugar,
	}

	r := setupRouter(cfg)

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}
	sugar.Infow("serving", "addr", addr)
	if err := r.Run(addr); err != nil {
		sugar.Fatalf("server stopped: %v", err)
	}
}
