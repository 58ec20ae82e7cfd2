package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"go-portfolio-backend/internal/domain"
)

// ObjectPutter is the subset of *s3.Client used by the publisher.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// SnapshotPublisher uploads public portfolios as JSON objects so static
// template renderers can read them without the API.
type SnapshotPublisher struct {
	client ObjectPutter
	bucket string
}

func NewSnapshotPublisher(client ObjectPutter, bucket string) *SnapshotPublisher {
	return &SnapshotPublisher{client: client, bucket: bucket}
}

// SnapshotKey is the object key of a username's snapshot.
func SnapshotKey(username string) string {
	return "portfolios/" + username + ".json"
}

func (p *SnapshotPublisher) Publish(ctx context.Context, portfolio *domain.PublicPortfolio) error {
	body, err := json.Marshal(portfolio)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(SnapshotKey(portfolio.Username)),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return fmt.Errorf("put snapshot %s: %w", portfolio.Username, err)
	}
	return nil
}
