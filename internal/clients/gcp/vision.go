package gcp

import (
	"context"
	"fmt"
	"os"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"github.com/openbims/bims-backend/internal/logger"
)

// Vision extracts text from uploaded ID documents for KYC matching.
type Vision interface {
	OCRImageBytes(ctx context.Context, img []byte) (string, error)
	Close() error
}

type visionClient struct {
	log    *logger.Logger
	client *vision.ImageAnnotatorClient
}

func NewVision(log *logger.Logger) (Vision, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	clientLog := log.With("client", "GCPVision")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")
	var annotator *vision.ImageAnnotatorClient
	var err error
	if saPath != "" {
		annotator, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(saPath))
	} else {
		annotator, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}

	return &visionClient{log: clientLog, client: annotator}, nil
}

func (v *visionClient) OCRImageBytes(ctx context.Context, img []byte) (string, error) {
	if len(img) == 0 {
		return "", fmt.Errorf("empty image")
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := v.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: img},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("annotate image: %w", err)
	}
	if len(resp.Responses) == 0 {
		return "", fmt.Errorf("empty vision response")
	}
	r := resp.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision error: %s", r.Error.Message)
	}
	if r.FullTextAnnotation == nil {
		return "", nil
	}
	return r.FullTextAnnotation.GetText(), nil
}

func (v *visionClient) Close() error {
	return v.client.Close()
}
