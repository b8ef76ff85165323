// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/authorization"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/config"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/db"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/kratos"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring/prometheus"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/openfga"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/redis"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/storage"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/authentication"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/garage"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/status"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/web"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %+v", specs.Redacted())
	defer logger.Sync()

	monitor := prometheus.NewMonitor("garage-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	plan := types.Plan(specs.DefaultPlan)
	if !plan.Valid() {
		return fmt.Errorf("unknown default plan %q", specs.DefaultPlan)
	}

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	var authorizer *authorization.Authorizer
	if specs.AuthorizationEnabled {
		ofga := openfga.NewClient(
			openfga.NewConfig(
				specs.OpenfgaApiScheme,
				specs.OpenfgaApiHost,
				specs.OpenfgaStoreId,
				specs.OpenfgaApiToken,
				specs.OpenfgaModelId,
				specs.Debug,
				tracer,
				monitor,
				logger,
			),
		)
		authorizer = authorization.NewAuthorizer(
			ofga,
			tracer,
			monitor,
			logger,
		)
		logger.Info("Authorization is enabled")
		if authorizer.ValidateModel(context.Background()) != nil {
			panic("Invalid authorization model provided")
		}
	} else {
		authorizer = authorization.NewAuthorizer(
			openfga.NewNoopClient(tracer, monitor, logger),
			tracer,
			monitor,
			logger,
		)
		logger.Info("Using noop authorizer")
	}

	kratosClient := kratos.NewClient(
		specs.KratosAdminURL,
		tracer,
		monitor,
		logger,
	)

	probes := map[string]status.DependencyInterface{"database": dbClient}

	var profiles garage.UserCacheInterface = kratosClient
	switch specs.ProfileCacheBackend {
	case config.ProfileCacheKratos:
		logger.Info("Using the Kratos identity record as profile cache")
	case config.ProfileCacheRedis:
		store, err := redis.NewProfileStore(specs.RedisURL, kratosClient, tracer, monitor, logger)
		if err != nil {
			return fmt.Errorf("failed to create redis profile store: %v", err)
		}
		defer store.Close()

		profiles = store
		probes["profile_cache"] = store
		logger.Info("Using redis as profile cache")
	default:
		return fmt.Errorf("unknown profile cache backend %q", specs.ProfileCacheBackend)
	}

	garageService := garage.NewService(
		s,
		profiles,
		kratosClient,
		authorizer,
		garage.Config{
			DefaultPlan:        plan,
			TrialPeriod:        specs.TrialPeriod,
			InvitationLifetime: specs.InvitationLifetime,
			SyncInitialDelay:   specs.SyncInitialDelay,
			SyncRetryDelay:     specs.SyncRetryDelay,
			SyncMaxAttempts:    specs.SyncMaxAttempts,
		},
		tracer,
		monitor,
		logger,
	)

	webhookService := webhooks.NewService(garageService, profiles, tracer, monitor, logger)

	var verifier authentication.TokenVerifierInterface = authentication.NewNoopVerifier()
	if specs.AuthenticationEnabled {
		verifier, err = authentication.NewJWTAuthenticator(
			context.Background(),
			specs.JWTIssuer,
			specs.JWKSURL,
			authentication.AccessPolicy{AllowedSubjects: specs.AllowedSubjects, RequiredScope: specs.RequiredScope},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create JWT authenticator: %v", err)
		}
	}

	authMiddleware := authentication.NewMiddleware(verifier, tracer, monitor, logger)
	authenticate := authMiddleware.IdentityHeader()
	if specs.AuthenticationEnabled {
		authenticate = authMiddleware.Authenticate()
	} else {
		logger.Info("JWT authentication is disabled, trusting the identity header")
	}

	router := web.NewRouter(
		web.Dependencies{
			Garages:      garageService,
			Users:        profiles,
			Webhooks:     webhookService,
			Authenticate: authenticate,
			Probes:       probes,
		},
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
