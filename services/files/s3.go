// Package filesvc stores uploaded letters and book assignments in S3.
package filesvc

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/bookiown/backend/core"
)

type s3Storage struct {
	client *s3.Client
	bucket string
	region string
}

var _ core.FileStorage = (*s3Storage)(nil)

func NewS3Storage(ctx context.Context, conf *core.Config) (core.FileStorage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(conf.Storage.Region))
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return &s3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: conf.Storage.Bucket,
		region: conf.Storage.Region,
	}, nil
}

func (svc *s3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(svc.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrapf(err, "uploading %s", key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", svc.bucket, svc.region, key), nil
}

// LetterKey builds the object key for an uploaded letter, e.g.
// "letters/Ana-K-student-letter-<studentID>-scan.pdf".
func LetterKey(studentFirstName, lastInitial, side, studentID, filename string) string {
	filename = strings.ReplaceAll(filename, "/", "-")
	return fmt.Sprintf("letters/%s-%s-%s-letter-%s-%s", studentFirstName, lastInitial, side, studentID, filename)
}
