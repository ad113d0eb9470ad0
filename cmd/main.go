package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/algojudge.net/internal/adapter/crypto"
	"gitlab.com/algojudge.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/algojudge.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/algojudge.net/internal/adapter/postgres/testcaserepository"
	"gitlab.com/algojudge.net/internal/adapter/postgres/userrepository"
	"gitlab.com/algojudge.net/internal/adapter/redis/testcasecache"
	"gitlab.com/algojudge.net/internal/adapter/sandbox"
	"gitlab.com/algojudge.net/internal/config"
	auth2 "gitlab.com/algojudge.net/internal/core/services/auth"
	"gitlab.com/algojudge.net/internal/core/services/judge"
	"gitlab.com/algojudge.net/internal/core/services/problem"
	logger2 "gitlab.com/algojudge.net/internal/global/logger"
	http2 "gitlab.com/algojudge.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting judge service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	schema := sysCfg.PostgresConfig.Schema
	problemRepo := problemrepository.New(db, logger)
	testcaseRepo := testcasecache.New(testcaserepository.New(db, logger, schema), redisClient, logger)
	submissionRepo := submissionrepository.New(db, logger)
	userPort := userrepository.New(db, logger, schema)
	sandboxClient := sandbox.NewClient(sysCfg.SandboxConfig, logger)

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	judgeSvc := judge.NewJudgeService(testcaseRepo, submissionRepo, sandboxClient, logger)
	problemSvc := problem.NewProblemService(problemRepo, testcaseRepo, submissionRepo, logger)
	ggAuth := auth2.NewGoogleAuthService(userPort, jwtProvider, sysCfg.GGAuthConfig)
	localAuth := auth2.NewLocalAuthService(userPort, jwtProvider)
	serviceProvider := http2.NewServiceProvider(judgeSvc, problemSvc, ggAuth, localAuth, localAuth)

	//server
	httServer := http2.NewServer(sysCfg, "judge", *serviceProvider, jwtProvider, logger)
	err = httServer.Init()
	if err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httServer.Stop(ctx)

	logger.Info("successfully shutdown server")

}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
