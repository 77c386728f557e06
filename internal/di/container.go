package di

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	command "github.com/goliatone/go-command"
	gocmddispatcher "github.com/goliatone/go-command/dispatcher"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sections/internal/builder"
	"github.com/goliatone/go-sections/internal/commands"
	"github.com/goliatone/go-sections/internal/commands/pagescmd"
	"github.com/goliatone/go-sections/internal/commands/sectionscmd"
	"github.com/goliatone/go-sections/internal/dispatcher"
	"github.com/goliatone/go-sections/internal/fixtures"
	sectionshttp "github.com/goliatone/go-sections/internal/http"
	"github.com/goliatone/go-sections/internal/logging"
	"github.com/goliatone/go-sections/internal/logging/console"
	"github.com/goliatone/go-sections/internal/logging/gologger"
	"github.com/goliatone/go-sections/internal/pages"
	"github.com/goliatone/go-sections/internal/registry"
	"github.com/goliatone/go-sections/internal/runtimeconfig"
	"github.com/goliatone/go-sections/internal/sections"
	"github.com/goliatone/go-sections/internal/storage"
	"github.com/goliatone/go-sections/pkg/interfaces"
)

// Subscription is a dispatcher registration released by Close.
type Subscription interface {
	Unsubscribe()
}

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	routeManager  *urlkit.RouteManager
	fixturesFS    fs.FS
	authorizer    sectionshttp.Authorizer

	registry    *registry.Registry
	sectionRepo sections.SectionRepository
	pageRepo    pages.PageRepository

	sectionSvc sections.Service
	pageSvc    pages.Service
	editors    *dispatcher.Dispatcher
	builderSvc *builder.Service

	sectionCmds   sectionscmd.Handlers
	layoutCmd     *commands.Handler[pagescmd.SavePageLayoutCommand]
	subscriptions []Subscription

	adminAPI   *sectionshttp.AdminAPI
	seedResult fixtures.Result
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database. The container never closes it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRegistry replaces the builtin section type registry.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Container) {
		c.registry = r
	}
}

func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithFixturesFS reads fixtures from fsys instead of Config.Fixtures.Dir.
func WithFixturesFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.fixturesFS = fsys
	}
}

func WithAuthorizer(authorizer sectionshttp.Authorizer) Option {
	return func(c *Container) {
		c.authorizer = authorizer
	}
}

func WithSectionService(svc sections.Service) Option {
	return func(c *Container) {
		c.sectionSvc = svc
	}
}

func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		sectionRepo: sections.NewMemorySectionRepository(),
		pageRepo:    pages.NewMemoryPageRepository(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureServices()
	c.configureCommands()
	c.subscribeCommands()
	c.configureHTTP()
	if err := c.seedFixtures(context.Background()); err != nil {
		_ = c.Close()
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, logging.RootModule).Info("sections.container.ready",
		"storage", c.storageLabel(),
		"cache", c.cacheService != nil,
		"subscriptions", len(c.subscriptions),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: console.ParseLevel(logCfg.Level)})
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || !strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "bun") {
		return nil
	}
	ctx := context.Background()
	db, err := storage.Open(ctx, c.Config.Storage.Dialect, c.Config.Storage.DSN)
	if err != nil {
		return fmt.Errorf("di: open storage: %w", err)
	}
	if c.Config.Storage.CreateSchema {
		if err := storage.CreateSchema(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("di: create schema: %w", err)
		}
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.sectionRepo = sections.NewBunSectionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.pageRepo = pages.NewBunPageRepository(c.bunDB)
}

func (c *Container) configureServices() {
	if c.registry == nil {
		c.registry = registry.Default()
	}

	if c.sectionSvc == nil {
		c.sectionSvc = sections.NewService(c.sectionRepo, c.registry,
			sections.WithLogger(logging.ModuleLogger(c.loggerProvider, logging.StoreModule)),
		)
	}

	if c.pageSvc == nil {
		pageOpts := []pages.ServiceOption{
			pages.WithLogger(logging.ModuleLogger(c.loggerProvider, logging.PagesModule)),
		}
		if resolver := c.urlResolver(); resolver != nil {
			pageOpts = append(pageOpts, pages.WithURLResolver(resolver))
		}
		c.pageSvc = pages.NewService(c.pageRepo, c.sectionSvc, pageOpts...)
	}

	c.editors = dispatcher.New(c.registry,
		dispatcher.WithLogger(logging.ModuleLogger(c.loggerProvider, logging.DispatcherModule)),
	)
	c.builderSvc = builder.NewService(c.sectionSvc, c.pageSvc, c.editors,
		builder.WithLogger(logging.ModuleLogger(c.loggerProvider, logging.BuilderModule)),
		builder.WithSaveTimeout(c.Config.Builder.SaveTimeout),
	)
}

func (c *Container) urlResolver() pages.URLResolver {
	routes := c.Config.Routes
	if c.routeManager == nil && routes.RouteConfig != nil {
		c.routeManager = urlkit.NewRouteManager(routes.RouteConfig)
	}
	if c.routeManager == nil {
		return nil
	}
	return pages.NewURLKitResolver(pages.URLKitResolverOptions{
		Manager:   c.routeManager,
		Group:     strings.TrimSpace(routes.Group),
		Route:     strings.TrimSpace(routes.Route),
		SlugParam: strings.TrimSpace(routes.SlugParam),
	})
}

func (c *Container) configureCommands() {
	if !c.Config.Features.Commands {
		return
	}
	timeout := c.Config.Commands.Timeout
	sectionLogger := commands.CommandLogger(c.loggerProvider, "sections")
	c.sectionCmds = sectionscmd.Handlers{
		Create:    sectionscmd.NewCreateSectionHandler(c.sectionSvc, sectionLogger, commands.WithTimeout[sectionscmd.CreateSectionCommand](timeout)),
		Update:    sectionscmd.NewUpdateSectionHandler(c.sectionSvc, sectionLogger, commands.WithTimeout[sectionscmd.UpdateSectionCommand](timeout)),
		Delete:    sectionscmd.NewDeleteSectionHandler(c.sectionSvc, sectionLogger, commands.WithTimeout[sectionscmd.DeleteSectionCommand](timeout)),
		Duplicate: sectionscmd.NewDuplicateSectionHandler(c.sectionSvc, sectionLogger, commands.WithTimeout[sectionscmd.DuplicateSectionCommand](timeout)),
	}
	c.layoutCmd = pagescmd.NewSavePageLayoutHandler(c.pageSvc, commands.CommandLogger(c.loggerProvider, "pages"),
		commands.WithTimeout[pagescmd.SavePageLayoutCommand](timeout),
	)
}

func (c *Container) subscribeCommands() {
	if !c.Config.Commands.AutoRegisterDispatcher || c.sectionCmds.Create == nil {
		return
	}
	c.subscriptions = append(c.subscriptions,
		subscribe(c.sectionCmds.Create),
		subscribe(c.sectionCmds.Update),
		subscribe(c.sectionCmds.Delete),
		subscribe(c.sectionCmds.Duplicate),
		subscribe(c.layoutCmd),
	)
}

func subscribe[T command.Message](handler *commands.Handler[T]) Subscription {
	return gocmddispatcher.SubscribeCommand[T](handler)
}

func (c *Container) configureHTTP() {
	opts := []sectionshttp.AdminOption{
		sectionshttp.WithBasePath(c.Config.HTTP.AdminBasePath),
		sectionshttp.WithPublicBasePath(c.Config.HTTP.PublicBasePath),
		sectionshttp.WithSectionService(c.sectionSvc),
		sectionshttp.WithPageService(c.pageSvc),
		sectionshttp.WithTypeCatalog(c.registry),
		sectionshttp.WithLogger(logging.ModuleLogger(c.loggerProvider, logging.HTTPModule)),
	}
	if c.sectionCmds.Create != nil {
		opts = append(opts, sectionshttp.WithSectionCommands(c.sectionCmds))
	}
	if c.layoutCmd != nil {
		opts = append(opts, sectionshttp.WithLayoutCommand(c.layoutCmd))
	}
	if c.authorizer != nil {
		opts = append(opts, sectionshttp.WithAuthorizer(c.authorizer))
	}
	c.adminAPI = sectionshttp.NewAdminAPI(opts...)
}

func (c *Container) seedFixtures(ctx context.Context) error {
	if !c.Config.Features.Fixtures {
		return nil
	}
	fsys := c.fixturesFS
	if fsys == nil {
		fsys = os.DirFS(c.Config.Fixtures.Dir)
	}
	logger := logging.ModuleLogger(c.loggerProvider, logging.FixturesModule)
	set, err := fixtures.NewLoader(fsys).Load(ctx)
	if err != nil {
		return fmt.Errorf("di: load fixtures: %w", err)
	}
	result, err := fixtures.NewSeeder(c.sectionSvc, c.pageSvc, fixtures.WithLogger(logger)).Seed(ctx, set)
	if err != nil {
		return fmt.Errorf("di: seed fixtures: %w", err)
	}
	c.seedResult = result
	return nil
}

func (c *Container) storageLabel() string {
	if c.bunDB == nil {
		return "memory"
	}
	return c.bunDB.Dialect().Name().String()
}

// Close releases dispatcher subscriptions and the database the container
// opened itself.
func (c *Container) Close() error {
	for _, sub := range c.subscriptions {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
	c.subscriptions = nil
	if c.ownsDB && c.bunDB != nil {
		err := c.bunDB.Close()
		c.bunDB = nil
		return err
	}
	return nil
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the database, nil for in-memory storage.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

func (c *Container) Registry() *registry.Registry {
	return c.registry
}

func (c *Container) SectionService() sections.Service {
	return c.sectionSvc
}

func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

func (c *Container) EditorDispatcher() *dispatcher.Dispatcher {
	return c.editors
}

func (c *Container) BuilderService() *builder.Service {
	return c.builderSvc
}

// SectionCommands returns the section handlers; zero when commands are
// disabled.
func (c *Container) SectionCommands() sectionscmd.Handlers {
	return c.sectionCmds
}

func (c *Container) LayoutCommand() *commands.Handler[pagescmd.SavePageLayoutCommand] {
	return c.layoutCmd
}

func (c *Container) AdminAPI() *sectionshttp.AdminAPI {
	return c.adminAPI
}

// SeedResult reports what fixture seeding did during construction.
func (c *Container) SeedResult() fixtures.Result {
	return c.seedResult
}
