// Package storage wraps the S3 bucket that holds raw course files. Objects
// are keyed course/cycle/module/section/filename so staff can manage a
// course offering as one prefix.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the minimal S3 interface required by Bucket.
// Defined here for testability.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// ObjectRef locates one file within the bucket's layout.
type ObjectRef struct {
	Course   string
	Cycle    string
	Module   string
	Section  string
	FileName string
}

// Key builds the object key, sanitizing each path component.
func (r ObjectRef) Key() (string, error) {
	var missing []string
	if r.Course == "" {
		missing = append(missing, "course")
	}
	if r.Cycle == "" {
		missing = append(missing, "cycle")
	}
	if r.Module == "" {
		missing = append(missing, "module")
	}
	if r.Section == "" {
		missing = append(missing, "section")
	}
	if r.FileName == "" {
		missing = append(missing, "file name")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("incomplete object ref, missing: %s", strings.Join(missing, ", "))
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s",
		sanitizeComponent(r.Course),
		sanitizeComponent(r.Cycle),
		sanitizeComponent(r.Module),
		sanitizeComponent(r.Section),
		r.FileName,
	), nil
}

// Bucket wraps one S3 bucket holding raw course files.
type Bucket struct {
	api    s3API
	bucket string
}

func NewBucket(api s3API, bucket string) (*Bucket, error) {
	if api == nil {
		return nil, errors.New("storage: api must not be nil")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("storage: bucket name must not be empty")
	}
	return &Bucket{api: api, bucket: bucket}, nil
}

// Put uploads a file under the layout key and returns that key.
func (b *Bucket) Put(ctx context.Context, ref ObjectRef, data []byte, contentType string) (string, error) {
	key, err := ref.Key()
	if err != nil {
		return "", err
	}

	_, err = b.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}
	return key, nil
}

// Get downloads an object by its stored key.
func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	if strings.HasSuffix(key, "/") {
		return nil, fmt.Errorf("storage: key %q is a directory", key)
	}

	out, err := b.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return data, nil
}

// Delete removes an object by its stored key.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

// ListSection returns the file names under one course/cycle/module/section
// prefix.
func (b *Bucket) ListSection(ctx context.Context, course, cycle, module, section string) ([]string, error) {
	prefix := fmt.Sprintf("%s/%s/%s/%s/",
		sanitizeComponent(course),
		sanitizeComponent(cycle),
		sanitizeComponent(module),
		sanitizeComponent(section),
	)

	var names []string
	var token *string
	for {
		out, err := b.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(b.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("storage: list %s: %w", prefix, err)
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			names = append(names, key[len(prefix):])
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}
	return names, nil
}

// accentFold maps the Spanish accented letters onto their base forms so the
// same course lands on the same prefix regardless of how staff typed it.
var accentFold = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U", "Ñ", "N",
)

func sanitizeComponent(s string) string {
	s = accentFold.Replace(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return s
}
