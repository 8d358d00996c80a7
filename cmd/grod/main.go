package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/cmd/grod/dispatch"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/auth"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/buildtime"
	kcs "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/configs/server"
	kpg "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/postgres"
	kfarm "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/farm"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/layout/state"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/loop"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/loop/recurring"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/utils/echoutil"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/utils/filewatch"
)

const layoutCacheTTL = 5 * time.Second

func main() {

	configPath := flag.String("config-path", "", "server config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	log.Println("grod", buildtime.VersionString())

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		if httperr := new(echo.HTTPError); errors.As(err, &httperr) && httperr.Code < 500 {
			e.Logger.Warn(err)
			return
		}
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	metrics := echoutil.NewMetrics("gro")
	e.Use(metrics.Middleware)
	e.GET("/metrics", metrics.Handler())

	// read configfile
	conf, err := kcs.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}
	if conf.Debug {
		echoutil.SetLevel(e, "debug")
	}

	// a config change needs new URL tables; quit and let the
	// supervisor restart us.
	wctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
	if err != nil {
		log.Fatalf("can not watch configration: %s", err)
	}
	defer cancel()
	context.AfterFunc(wctx, func() {
		log.Println("config file is updated. quit to restart server.")
		graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(graceful); err != nil {
			log.Printf("error on shutdown by config update: %s", err)
		}
	})

	registry := schema.NewRegistry()
	if err := registry.LoadDir(conf.SchemaDir); err != nil {
		log.Fatalf("can not load layout schemas from %s: %s", conf.SchemaDir, err)
	}
	log.Println("known layouts:", registry.Names())

	secret, err := kcs.Secret(conf.SecretFile)
	if err != nil {
		log.Fatalf("can not read or create secret: %s", err)
	}

	ctx := context.Background()
	db, err := kpg.New(ctx, conf.DBURI, kpg.WithRegistry(registry))
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer db.Close()

	if err := db.Admin().UpgradeShared(ctx); err != nil {
		log.Fatalf("can not upgrade shared tables: %s", err)
	}

	provider := state.NewProvider(layoutCacheTTL, func(ctx context.Context) (string, error) {
		farm, err := db.Farms().Singleton(ctx)
		if err != nil {
			return "", err
		}
		if farm.Layout == nil {
			return "", nil
		}
		return *farm.Layout, nil
	})

	var registrar *kfarm.Registrar
	if conf.ServerType == kcs.Leaf {
		registrar = kfarm.NewRegistrar(kfarm.DefaultRegistrationTimeout)
	}
	farmService := kfarm.NewService(
		db.Farms(), db.Admin(), registry, registrar, provider,
	)

	if conf.ServerType == kcs.Leaf {
		// ensure the singleton farm row exists before serving
		farm, err := db.Farms().Singleton(ctx)
		if err != nil {
			log.Fatalf("can not initialize the farm record: %s", err)
		}
		if conf.ParentServer != "" &&
			(farm.ParentServerURL == nil || *farm.ParentServerURL == "") {
			farm.ParentServerURL = &conf.ParentServer
			if _, err := db.Farms().Update(ctx, farm); err != nil {
				log.Fatalf("can not record the parent server: %s", err)
			}
		}

		go func() {
			task := kfarm.RefreshIP(db.Farms())
			policy := recurring.Policy{
				Interval: time.Hour,
				OnError: func(err error) {
					e.Logger.Warnf("ip refresh failed: %s", err)
				},
			}
			if _, err := loop.Start(wctx, struct{}{}, task.Applied(policy)); err != nil &&
				wctx.Err() == nil {
				e.Logger.Errorf("ip refresh loop stopped: %s", err)
			}
		}()
	}

	d := dispatch.New(dispatch.Config{
		ServerType:  conf.ServerType,
		Database:    db,
		Registry:    registry,
		FarmService: farmService,
		Issuer:      auth.NewIssuer(secret, auth.DefaultTokenTTL),
		Secret:      secret,
		RequireAuth: conf.AuthRequired,
	})
	d.Mount(e)

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.Port, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.Port))
	}
}
