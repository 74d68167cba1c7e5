package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/sousie/backend/config"
)

// ObjectPutter is the part of the S3 client the archive needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ReplyArchive stores raw model replies in S3 so rejected payloads can be
// inspected later.
type ReplyArchive struct {
	client ObjectPutter
	bucket string
}

// NewReplyArchive returns nil when no bucket is configured
func NewReplyArchive(cfg *config.S3Config) *ReplyArchive {
	if cfg == nil {
		return nil
	}
	return &ReplyArchive{client: cfg.Client, bucket: cfg.BucketName}
}

func NewReplyArchiveWithClient(client ObjectPutter, bucket string) *ReplyArchive {
	return &ReplyArchive{client: client, bucket: bucket}
}

func replyKey(userID, conversationID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("replies/%s/%s/%d.txt", userID, conversationID, at.UnixNano())
}

// Store uploads reply and returns its object key
func (a *ReplyArchive) Store(ctx context.Context, userID, conversationID uuid.UUID, reply string, at time.Time) (string, error) {
	key := replyKey(userID, conversationID, at)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(reply),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive reply: %w", err)
	}
	return key, nil
}
