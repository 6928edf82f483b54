// cli/bootstrap.go
package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/ems/api/audit"
	"github.com/dev-mohitbeniwal/ems/api/config"
	"github.com/dev-mohitbeniwal/ems/api/dao"
	"github.com/dev-mohitbeniwal/ems/api/db"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/pdp/engine"
	"github.com/dev-mohitbeniwal/ems/api/search"
	"github.com/dev-mohitbeniwal/ems/api/service"
	"github.com/dev-mohitbeniwal/ems/api/storage"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

const decisionCacheSize = 1024

// application is the wired service graph shared by the commands.
type application struct {
	cfg      *config.Configuration
	services *service.Services
	eventBus *util.EventBus
}

// bootstrap connects every backing store and builds the services. The
// returned cleanup closes the connections in reverse order.
func bootstrap(ctx context.Context, cfg *config.Configuration) (*application, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*application, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	// Initialize Postgres
	if err := db.InitPostgres(cfg.Postgres); err != nil {
		return fail(err)
	}
	closers = append(closers, db.ClosePostgres)

	// Initialize Redis
	if err := db.InitRedis(cfg.Redis); err != nil {
		return fail(err)
	}
	closers = append(closers, db.CloseRedis)

	// Initialize Neo4j
	if err := db.InitNeo4j(cfg.Neo4j); err != nil {
		return fail(err)
	}
	closers = append(closers, db.CloseNeo4j)

	auditRepository, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Elasticsearch.AuditIndex)
	if err != nil {
		return fail(fmt.Errorf("failed to create audit repository: %w", err))
	}
	index, err := search.NewElasticsearchIndex(cfg.Elasticsearch.URL, cfg.Elasticsearch.PolicyIndex)
	if err != nil {
		return fail(fmt.Errorf("failed to create policy index: %w", err))
	}
	store, err := storage.NewS3Store(ctx, cfg.S3)
	if err != nil {
		return fail(fmt.Errorf("failed to create attachment store: %w", err))
	}

	var notifierOpts []util.NotificationOption
	if cfg.Slack.Token != "" {
		client, err := util.NewSlackClient(cfg.Slack.Token)
		if err != nil {
			return fail(err)
		}
		notifierOpts = append(notifierOpts, util.WithSlack(client, cfg.Slack.AdminChannel))
	} else {
		logger.Warn("Slack token not configured; notifications are only logged")
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	busCtx, cancel := context.WithCancel(context.Background())
	eventBus.Start(busCtx)
	closers = append(closers, func() {
		eventBus.Wait()
		cancel()
	})

	services, err := service.InitializeServices(service.Dependencies{
		DB:           db.DB,
		Directory:    dao.NewUserDAO(dao.NewCypherReader(db.Neo4jDriver)),
		Authorizer:   engine.NewPolicyEvaluator(engine.DefaultRules(), decisionCacheSize),
		AuditService: audit.NewService(auditRepository),
		Index:        index,
		Store:        store,
		Validation:   util.NewValidationUtil(),
		Cache:        util.NewCacheService(cfg.Compliance.SummaryCacheTTL),
		Notifier:     util.NewNotificationService(notifierOpts...),
		EventBus:     eventBus,
		Compliance:   cfg.Compliance,
	})
	if err != nil {
		return fail(fmt.Errorf("failed to initialize services: %w", err))
	}

	logger.Info("Application initialized",
		zap.String("auditIndex", cfg.Elasticsearch.AuditIndex),
		zap.String("policyIndex", cfg.Elasticsearch.PolicyIndex),
		zap.String("bucket", cfg.S3.Bucket))

	return &application{cfg: cfg, services: services, eventBus: eventBus}, cleanup, nil
}
