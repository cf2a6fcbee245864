package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"rackup/internal/adapter/api"
	"rackup/internal/adapter/api/handler"
	apimiddleware "rackup/internal/adapter/api/middleware"
	"rackup/internal/adapter/api/router"
	"rackup/internal/adapter/repository"
	"rackup/internal/infrastructure/firebase"
	"rackup/internal/infrastructure/storage"
	"rackup/internal/infrastructure/websocket"
	"rackup/internal/usecase"
	"rackup/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	// Service account JSON from the environment wins (production); a file
	// path is the local-development fallback.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			log.Fatalf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH must be set")
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}
	defer storageClient.Close()

	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	locationRepo := repository.NewFirestoreLocationRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	statusRepo := repository.NewFirestoreStatusCheckRepository(firestoreClient)

	registry := websocket.NewRegistry()
	verifier := firebase.NewFirebaseAuthClient(authClient)

	authUseCase := usecase.NewAuthUseCase(userRepo, verifier, cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTExpiry)*time.Second)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, listingRepo, registry)
	listingUseCase := usecase.NewListingUseCase(listingRepo, storageClient)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, listingRepo)
	locationUseCase := usecase.NewLocationUseCase(locationRepo)
	statusUseCase := usecase.NewStatusUseCase(statusRepo)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)

	router.Setup(e, router.Handlers{
		Auth:      handler.NewAuthHandler(authUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		WebSocket: handler.NewWebSocketHandler(registry, chatUseCase, authUseCase),
		Listing:   handler.NewListingHandler(listingUseCase),
		Favorite:  handler.NewFavoriteHandler(favoriteUseCase),
		Location:  handler.NewLocationHandler(locationUseCase),
		Status:    handler.NewStatusHandler(statusUseCase),
	}, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
