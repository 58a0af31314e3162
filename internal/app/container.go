package app

import (
	"context"

	"github.com/doeshing/ecoscan/internal/infrastructure/ai"
	"github.com/doeshing/ecoscan/internal/infrastructure/augment"
	"github.com/doeshing/ecoscan/internal/infrastructure/cache"
	"github.com/doeshing/ecoscan/internal/infrastructure/catalog"
	"github.com/doeshing/ecoscan/internal/infrastructure/classify"
	"github.com/doeshing/ecoscan/internal/infrastructure/config"
	"github.com/doeshing/ecoscan/internal/infrastructure/registry"
	"github.com/doeshing/ecoscan/internal/infrastructure/store"
	"github.com/doeshing/ecoscan/internal/pkg/logger"
	"github.com/doeshing/ecoscan/internal/ports"
	"github.com/doeshing/ecoscan/internal/services"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	ScanService    *services.Scanner
	DoctorService  *services.DoctorService
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Catalog        ports.CatalogSource
	Snapshots      ports.SnapshotStore
	Repository     ports.ServiceRepository
	Augmenter      ports.Augmenter
	Registry       ports.AppRegistry
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)
	snapshots := cache.NewFileCache(cfg.Catalog.SnapshotDir)
	catalogSource := catalog.NewClient(cfg, snapshots, log)

	classifier, err := classify.NewClassifier(cfg.Classify.RulesFile, log)
	if err != nil {
		classifier, err = classify.NewClassifier("", log)
		if err != nil {
			return nil, err
		}
	}

	augmenter := augment.NewAugmenter(cfg, ai.NewFactory(), log)
	repository := store.Open(cfg.Store.Path, log)
	hostRegistry := registry.NewHostRegistry(log)

	scanService := &services.Scanner{
		ConfigProvider: cfgLoader,
		Registry:       hostRegistry,
		Catalog:        catalogSource,
		Classifier:     classifier,
		Augmenter:      augmenter,
		Repository:     repository,
		Logger:         log,
	}

	doctorService := &services.DoctorService{
		ConfigProvider: cfgLoader,
		Registry:       hostRegistry,
		Catalog:        catalogSource,
		Repository:     repository,
		Augmenter:      augmenter,
	}

	return &Container{
		ScanService:    scanService,
		DoctorService:  doctorService,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Catalog:        catalogSource,
		Snapshots:      snapshots,
		Repository:     repository,
		Augmenter:      augmenter,
		Registry:       hostRegistry,
		Logger:         log,
	}, nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.Repository != nil {
		return c.Repository.Close()
	}
	return nil
}
