// Package s3store keeps receipts as objects under a bucket prefix.
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/sahintepesi/donation-api/internal/adapters/filestore"
	"github.com/sahintepesi/donation-api/internal/core/domain"
)

const contentType = "application/pdf"

// API is the subset of the S3 client used by the store.
type API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store implements ports.ReceiptStore on S3.
type Store struct {
	client API
	bucket string
	prefix string
}

// NewStore creates a store writing to bucket under prefix (e.g. "receipts/").
func NewStore(client API, bucket, prefix string) *Store {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *Store) key(id string) string {
	return s.prefix + id + ".pdf"
}

// Put uploads the receipt, replacing any previous object for the id.
func (s *Store) Put(ctx context.Context, id string, pdf []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(s.key(id)),
		Body:               bytes.NewReader(pdf),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf(`attachment; filename="makbuz_%s.pdf"`, id)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload receipt to S3: %w", err)
	}
	return nil
}

// Open streams the receipt object. Returns domain.ErrReceiptNotFound if absent.
func (s *Store) Open(ctx context.Context, id string) (io.ReadCloser, *domain.ReceiptInfo, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil, domain.ErrReceiptNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch receipt from S3: %w", err)
	}

	info := &domain.ReceiptInfo{
		ReceiptID: id,
		Filename:  path.Base(s.key(id)),
		CreatedAt: aws.ToTime(out.LastModified),
		Size:      aws.ToInt64(out.ContentLength),
	}
	return out.Body, info, nil
}

// List pages through every .pdf object directly under the prefix.
func (s *Store) List(ctx context.Context) ([]domain.ReceiptInfo, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(s.prefix),
		Delimiter: aws.String("/"),
	})

	receipts := []domain.ReceiptInfo{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			var noBucket *types.NoSuchBucket
			if errors.As(err, &noBucket) {
				return []domain.ReceiptInfo{}, nil
			}
			return nil, fmt.Errorf("failed to list receipts in S3: %w", err)
		}
		for _, obj := range page.Contents {
			name := path.Base(aws.ToString(obj.Key))
			if !strings.HasSuffix(name, ".pdf") {
				continue
			}
			receipts = append(receipts, domain.ReceiptInfo{
				ReceiptID: filestore.ReceiptIDFromName(name),
				Filename:  name,
				CreatedAt: aws.ToTime(obj.LastModified),
				Size:      aws.ToInt64(obj.Size),
			})
		}
	}

	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].Filename < receipts[j].Filename
	})

	return receipts, nil
}
