package app

import (
	"github.com/openbims/bims-backend/internal/clients/face"
	"github.com/openbims/bims-backend/internal/clients/gcp"
	redisclient "github.com/openbims/bims-backend/internal/clients/redis"
	"github.com/openbims/bims-backend/internal/clients/syncqueries"
	"github.com/openbims/bims-backend/internal/logger"
)

type Clients struct {
	Bucket gcp.Bucket
	Vision gcp.Vision
	Bus    redisclient.NotifyBus
	Sync   syncqueries.Client
	Faces  face.ModelProvider
}

// wireClients initializes external clients. Optional integrations that fail
// to initialize are logged and left nil; callers treat a nil client as the
// feature being off.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")
	clients := Clients{
		Sync:  syncqueries.New(log),
		Faces: face.NewHTTPProvider(log),
	}

	bucket, err := gcp.NewBucket(log)
	if err != nil {
		log.Warn("Storage bucket unavailable", "error", err)
	} else {
		clients.Bucket = bucket
	}

	vision, err := gcp.NewVision(log)
	if err != nil {
		log.Warn("Vision OCR unavailable", "error", err)
	} else {
		clients.Vision = vision
	}

	bus, err := redisclient.NewNotifyBus(log)
	if err != nil {
		log.Warn("Notification bus unavailable", "error", err)
	} else {
		clients.Bus = bus
	}
	return clients
}
