package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"

	"github.com/oudaybenrhouma/ghalinino-checkout/internal/platform/auth"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/platform/config"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/platform/jobs"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/platform/observability"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/repositories"
	firestorerepo "github.com/oudaybenrhouma/ghalinino-checkout/internal/repositories/firestore"
	"github.com/oudaybenrhouma/ghalinino-checkout/internal/services"
)

// Services groups the service layer exposed to embedding applications.
type Services struct {
	Checkout services.CheckoutService
	Rates    *services.ShippingRates
	Totals   *services.TotalsCalculator
}

// Container aggregates the long-lived runtime dependencies.
type Container struct {
	Config       config.Config
	Logger       *zap.Logger
	Repositories repositories.Registry
	Accounts     *auth.AccountResolver
	Services     Services

	pubsubClient *pubsub.Client
}

// NewContainer builds the full dependency graph from configuration. The
// Firebase verifier and Pub/Sub publisher are optional: they are wired only
// when their project IDs are configured, so local development can run against
// the Firestore emulator alone.
func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	logger, err := observability.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	registry, err := firestorerepo.NewRegistry(cfg.Firestore)
	if err != nil {
		return nil, fmt.Errorf("build repository registry: %w", err)
	}

	container := &Container{
		Config:       cfg,
		Logger:       logger,
		Repositories: registry,
	}

	if cfg.Firebase.ProjectID != "" {
		verifier, err := auth.NewFirebaseVerifier(ctx, cfg.Firebase)
		if err != nil {
			return nil, fmt.Errorf("build firebase verifier: %w", err)
		}
		resolver, err := auth.NewAccountResolver(verifier)
		if err != nil {
			return nil, fmt.Errorf("build account resolver: %w", err)
		}
		container.Accounts = resolver
	}

	var publisher services.OrderEventPublisher
	if cfg.PubSub.ProjectID != "" {
		client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("build pubsub client: %w", err)
		}
		container.pubsubClient = client
		publisher, err = jobs.NewPubSubOrderEventPublisher(client.Topic(cfg.PubSub.OrderEventsTopic))
		if err != nil {
			return nil, fmt.Errorf("build order event publisher: %w", err)
		}
	}

	svc, err := buildServices(registry, cfg, publisher, logger)
	if err != nil {
		return nil, err
	}
	container.Services = svc

	return container, nil
}

// Close releases repository clients and the Pub/Sub connection.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.pubsubClient != nil {
		if err := c.pubsubClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pubsub client: %w", err))
		}
	}
	if c.Repositories != nil {
		if err := c.Repositories.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close repositories: %w", err))
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}

func buildServices(reg repositories.Registry, cfg config.Config, publisher services.OrderEventPublisher, logger *zap.Logger) (Services, error) {
	rates, err := services.NewShippingRates(services.ShippingRatesDeps{
		FreeShippingThreshold: cfg.Checkout.WholesaleFreeShipping,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build shipping rates: %w", err)
	}

	calculator, err := services.NewTotalsCalculator(services.TotalsCalculatorDeps{
		Rates:  rates,
		CODFee: cfg.Checkout.CODFee,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build totals calculator: %w", err)
	}

	checkout, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Orders:     reg.Orders(),
		Products:   reg.Products(),
		Calculator: calculator,
		Events:     publisher,
		Clock:      time.Now,
		Logger:     observability.EventLogger(logger),
	})
	if err != nil {
		return Services{}, fmt.Errorf("build checkout service: %w", err)
	}

	return Services{
		Checkout: checkout,
		Rates:    rates,
		Totals:   calculator,
	}, nil
}
