package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	putInput  *s3.PutObjectInput
	getBody   string
	listPages [][]string
	listCalls int
	deleted   []string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.getBody))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	page := f.listPages[f.listCalls]
	f.listCalls++

	var contents []types.Object
	for _, key := range page {
		contents = append(contents, types.Object{Key: aws.String(key)})
	}
	truncated := f.listCalls < len(f.listPages)
	out := &s3.ListObjectsV2Output{
		Contents:    contents,
		IsTruncated: aws.Bool(truncated),
	}
	if truncated {
		out.NextContinuationToken = aws.String("next")
	}
	return out, nil
}

func TestObjectRefKeySanitizesComponents(t *testing.T) {
	ref := ObjectRef{
		Course:   "Matemática Básica",
		Cycle:    "20241",
		Module:   "A",
		Section:  "G1",
		FileName: "sílabo.pdf",
	}

	key, err := ref.Key()
	if err != nil {
		t.Fatalf("Key error: %v", err)
	}
	want := "Matematica_Basica/20241/A/G1/sílabo.pdf"
	if key != want {
		t.Errorf("key = %q, want %q", key, want)
	}
}

func TestObjectRefKeyMissingFields(t *testing.T) {
	ref := ObjectRef{Course: "Algoritmos", FileName: "a.pdf"}

	_, err := ref.Key()
	if err == nil {
		t.Fatal("expected error for incomplete ref")
	}
	for _, field := range []string{"cycle", "module", "section"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not name missing field %q", err, field)
		}
	}
}

func TestNewBucketValidation(t *testing.T) {
	if _, err := NewBucket(nil, "files"); err == nil {
		t.Error("nil api accepted")
	}
	if _, err := NewBucket(&fakeS3{}, "  "); err == nil {
		t.Error("blank bucket name accepted")
	}
}

func TestPutUsesLayoutKey(t *testing.T) {
	api := &fakeS3{}
	b, err := NewBucket(api, "course-files")
	if err != nil {
		t.Fatalf("NewBucket error: %v", err)
	}

	ref := ObjectRef{Course: "Algoritmos", Cycle: "20241", Module: "B", Section: "G2", FileName: "tarea.txt"}
	key, err := b.Put(context.Background(), ref, []byte("data"), "text/plain")
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}

	if key != "Algoritmos/20241/B/G2/tarea.txt" {
		t.Errorf("key = %q", key)
	}
	if aws.ToString(api.putInput.Bucket) != "course-files" {
		t.Errorf("bucket = %q", aws.ToString(api.putInput.Bucket))
	}
	if aws.ToString(api.putInput.ContentType) != "text/plain" {
		t.Errorf("content type = %q", aws.ToString(api.putInput.ContentType))
	}
}

func TestGetRejectsDirectoryKey(t *testing.T) {
	b, _ := NewBucket(&fakeS3{}, "course-files")

	if _, err := b.Get(context.Background(), "Algoritmos/20241/A/G1/"); err == nil {
		t.Error("directory key accepted")
	}
}

func TestListSectionPaginates(t *testing.T) {
	api := &fakeS3{listPages: [][]string{
		{"Algoritmos/20241/A/G1/silabo.pdf", "Algoritmos/20241/A/G1/"},
		{"Algoritmos/20241/A/G1/tarea1.txt"},
	}}
	b, _ := NewBucket(api, "course-files")

	names, err := b.ListSection(context.Background(), "Algoritmos", "20241", "A", "G1")
	if err != nil {
		t.Fatalf("ListSection error: %v", err)
	}

	if api.listCalls != 2 {
		t.Errorf("list calls = %d, want 2", api.listCalls)
	}
	want := []string{"silabo.pdf", "tarea1.txt"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
