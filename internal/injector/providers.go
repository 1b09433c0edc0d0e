package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/interact/internal/config"
	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/integrator"
	"github.com/zeusync/interact/internal/core/interaction"
	"github.com/zeusync/interact/internal/core/observability/log"
	"github.com/zeusync/interact/internal/host"
	"github.com/zeusync/interact/internal/server"
)

// App is everything the playground binary runs.
type App struct {
	Logger *log.Logger
	Loop   *host.Loop
	View   *interaction.Interactive
	Server *server.Server
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	bus.New,
	ProvideLoop,
	host.NewScheduler,
	wire.Bind(new(integrator.Scheduler), new(*host.Scheduler)),
	ProvideOptions,
	ProvideInteractive,
	ProvideServerConfig,
	server.NewServer,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.New(cfg.LogLevel())
}

func ProvideLoop(logger log.Log) *host.Loop {
	return host.NewLoop(256, logger)
}

func ProvideOptions(cfg *config.Config) (interaction.Options, error) {
	return cfg.Options()
}

func ProvideInteractive(scheduler integrator.Scheduler, events bus.EventBus, opts interaction.Options, logger log.Log) *interaction.Interactive {
	return interaction.New(scheduler, events, opts, logger)
}

func ProvideServerConfig(cfg *config.Config) server.Config {
	sc := server.DefaultServerConfig()
	sc.ListenAddr = cfg.Server.Addr
	sc.MaxClients = cfg.Server.MaxClients
	sc.Token = cfg.Server.Token
	return sc
}
