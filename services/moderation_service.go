package services

import (
	"context"
	"fmt"
	"log"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// Screens uploaded activity photos before they are stored. Disabled
// unless PHOTO_MODERATION=true, so local setups without AWS
// credentials keep working.
type ModerationService struct {
	client  *rekognition.Client
	enabled bool
}

func NewModerationService() (*ModerationService, error) {
	if os.Getenv("PHOTO_MODERATION") != "true" {
		return &ModerationService{}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(os.Getenv("AWS_REGION")),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %v", err)
	}
	return &ModerationService{
		client:  rekognition.NewFromConfig(cfg),
		enabled: true,
	}, nil
}

// CheckImage returns an error when Rekognition flags the image. A
// Rekognition outage is logged and treated as a pass so photo intake
// never depends on the moderation backend being up.
func (s *ModerationService) CheckImage(ctx context.Context, imageData []byte) error {
	if !s.enabled {
		return nil
	}

	out, err := s.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image:         &rektypes.Image{Bytes: imageData},
		MinConfidence: ptr(float32(80)),
	})
	if err != nil {
		log.Printf("moderation check failed, allowing image: %v", err)
		return nil
	}

	for _, label := range out.ModerationLabels {
		if label.Name != nil && *label.Name != "" {
			return fmt.Errorf("photo rejected by moderation: %s", *label.Name)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
