package service

import (
	"log/slog"

	redisrepo "github.com/precisionto/funnel-go/internal/repository/redis"
	"github.com/precisionto/funnel-go/internal/service/admin"
	"github.com/precisionto/funnel-go/internal/service/availability"
	"github.com/precisionto/funnel-go/internal/service/checkout"
	"github.com/precisionto/funnel-go/internal/service/funnel"
	"github.com/precisionto/funnel-go/internal/upstream"
)

type Services struct {
	Funnel       *funnel.Service
	Availability *availability.Service
	Checkout     *checkout.Service
	Admin        *admin.Service
}

type Config struct {
	Availability   availability.Config
	AdminJWTSecret string
}

func NewServices(
	slot *redisrepo.DraftSlot,
	bus *redisrepo.DraftPubSub,
	cache *redisrepo.Cache,
	backend *upstream.Client,
	logger *slog.Logger,
	cfg Config,
) *Services {
	fun := funnel.New(slot, bus, logger)

	return &Services{
		Funnel:       fun,
		Availability: availability.New(backend, cache, logger, cfg.Availability),
		Checkout:     checkout.New(backend, fun, cache, logger),
		Admin:        admin.New(backend, logger, cfg.AdminJWTSecret),
	}
}
