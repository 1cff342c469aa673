package server

import (
	"fmt"
	"net/http"
	"time"

	"retailgenie/internal/config"
	"retailgenie/internal/domain"
	custommiddleware "retailgenie/internal/middleware"
	"retailgenie/internal/repository"
	"retailgenie/internal/service"
	"retailgenie/internal/store"
	"retailgenie/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	client *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, client *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.StripSlashes)
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.Origins))
	router.Use(custommiddleware.AllowOptions)
	router.Use(custommiddleware.Recovery(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(middleware.Compress(5))

	router.NotFound(custommiddleware.NotFoundHandler())
	router.MethodNotAllowed(custommiddleware.MethodNotAllowedHandler())

	// Initialize the document store
	documents := store.NewRedisStore(client)

	// Initialize repositories
	userRepo := repository.NewUserRepository(documents)
	productRepo := repository.NewProductRepository(documents)
	orderRepo := repository.NewOrderRepository(documents)
	customerRepo := repository.NewCustomerRepository(documents)
	feedbackRepo := repository.NewFeedbackRepository(documents)
	cartRepo := repository.NewCartRepository(documents)
	wishlistRepo := repository.NewWishlistRepository(documents)
	discountRepo := repository.NewDiscountRepository(documents)
	preferenceRepo := repository.NewPreferenceRepository(documents)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.APIKeyPrefix)
	orderService := service.NewOrderService(orderRepo, productRepo)
	inventoryService := service.NewInventoryService(productRepo)
	pricingService := service.NewPricingService(productRepo, discountRepo)
	analyticsService := service.NewAnalyticsService(productRepo, orderRepo, customerRepo)
	mlService := service.NewMLService(feedbackRepo, productRepo, nil, nil, nil)
	systemService := service.NewSystemService(documents)

	// Create auth middleware
	authGate := custommiddleware.AuthMiddleware(authService, logger)
	optionalAuth := custommiddleware.OptionalAuth(authService)
	retailerOnly := custommiddleware.RequireRole([]string{domain.RoleRetailer}, logger)

	// Register routes
	transport.NewSystemHandler(systemService, logger).RegisterRoutes(router)
	transport.NewAuthHandler(authService, logger).RegisterRoutes(router, authGate)
	transport.NewProfileHandler(authService, preferenceRepo, logger).RegisterRoutes(router, authGate, optionalAuth)
	transport.NewProductHandler(productRepo, logger).RegisterRoutes(router, authGate)
	transport.NewInventoryHandler(inventoryService, logger).RegisterRoutes(router, authGate, retailerOnly)
	transport.NewOrderHandler(orderRepo, orderService, logger).RegisterRoutes(router, authGate)
	transport.NewCustomerHandler(customerRepo, logger).RegisterRoutes(router, authGate)
	transport.NewFeedbackHandler(feedbackRepo, logger).RegisterRoutes(router)
	transport.NewAnalyticsHandler(analyticsService, logger).RegisterRoutes(router)
	transport.NewMLHandler(mlService, logger).RegisterRoutes(router)
	transport.NewPricingHandler(pricingService, logger).RegisterRoutes(router, authGate, retailerOnly)
	transport.NewCartHandler(cartRepo, productRepo, logger).RegisterRoutes(router, authGate, optionalAuth)
	transport.NewWishlistHandler(wishlistRepo, cartRepo, productRepo, logger).RegisterRoutes(router, authGate, optionalAuth)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		client: client,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.client != nil {
		if err := s.client.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
			return err
		}
	}
	return nil
}
