package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storefront-client/apperrors"
	"storefront-client/auth"
	"storefront-client/cart"
	"storefront-client/catalog"
	"storefront-client/config"
	"storefront-client/logger"
	"storefront-client/storage"
	"storefront-client/transport"
)

// app bundles the wired client services for the commands.
type app struct {
	cfg        config.Config
	tokens     *auth.TokenStore
	auth       *auth.Service
	products   *catalog.ProductService
	categories *catalog.CategoryService
	cart       *cart.Manager
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Load()
	logger.Initialize(cfg.Env)

	var store storage.Store
	if cfg.RedisURL != "" {
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		store = storage.NewRedisStore(client)
	} else {
		fileStore, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	}

	tokens := auth.NewTokenStore(store)
	tokens.Restore(ctx)

	httpClient := transport.New(cfg.APIBaseURL, tokens, logger.Log).Client(cfg.HTTPTimeout)
	apiClient := catalog.NewClient(cfg.APIBaseURL, httpClient, logger.Log)

	return &app{
		cfg:        cfg,
		tokens:     tokens,
		auth:       auth.NewService(httpClient, cfg.APIBaseURL, tokens, logger.Log),
		products:   catalog.NewProductService(apiClient),
		categories: catalog.NewCategoryService(apiClient),
		cart:       cart.NewManager(ctx, store, logger.Log),
	}, nil
}

func Execute() {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront API client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		productsCmd(),
		categoriesCmd(),
		cartCmd(),
	)

	if err := root.Execute(); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "session expired, run `storefront login`")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
