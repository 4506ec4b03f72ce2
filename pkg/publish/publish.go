package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/tour/pkg/server"
)

// ContentType is the content type of every published page.
const ContentType = "text/html; charset=utf-8"

// ErrNoBucket is returned by New when the config names no bucket.
var ErrNoBucket = errors.New("publish: bucket is required")

// ObjectPutter is the part of the S3 client the publisher uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ ObjectPutter = (*s3.Client)(nil)

// Config configures a Publisher.
type Config struct {
	// Bucket is the destination bucket.
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// CacheControl is sent as the object's Cache-Control header when set.
	CacheControl string

	// Title is the document title of published pages.
	Title string

	// Pretty indents the published HTML.
	Pretty bool
}

// Result describes one uploaded snapshot.
type Result struct {
	Root   string
	Bucket string
	Key    string
	Size   int
	ETag   string
}

// URI returns the s3:// URI of the object.
func (r *Result) URI() string {
	return "s3://" + r.Bucket + "/" + r.Key
}

// Publisher renders roots and uploads them.
type Publisher struct {
	client ObjectPutter
	config Config
	logger *slog.Logger
}

// New creates a Publisher that uploads through client.
func New(client ObjectPutter, config Config) (*Publisher, error) {
	if config.Bucket == "" {
		return nil, ErrNoBucket
	}
	if client == nil {
		return nil, errors.New("publish: client is required")
	}
	if config.Title == "" {
		config.Title = "Tour"
	}
	return &Publisher{
		client: client,
		config: config,
		logger: slog.Default().With("component", "publish"),
	}, nil
}

// SetLogger sets the logger.
func (p *Publisher) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Key returns the object key a root is published under.
func (p *Publisher) Key(name string) string {
	return path.Join(strings.Trim(p.config.Prefix, "/"), name, "index.html")
}

// Publish renders root as a static page and uploads it.
func (p *Publisher) Publish(ctx context.Context, name string, root server.RootFunc) (*Result, error) {
	var buf bytes.Buffer
	err := server.RenderRootPage(&buf, name, root, server.PageOptions{
		Title:  p.config.Title,
		Pretty: p.config.Pretty,
	})
	if err != nil {
		return nil, fmt.Errorf("publish: render %s: %w", name, err)
	}

	key := p.Key(name)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"tour-root": name,
		},
	}
	if p.config.CacheControl != "" {
		input.CacheControl = aws.String(p.config.CacheControl)
	}

	out, err := p.client.PutObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("publish: upload %s: %w", key, err)
	}

	res := &Result{
		Root:   name,
		Bucket: p.config.Bucket,
		Key:    key,
		Size:   buf.Len(),
	}
	if out != nil && out.ETag != nil {
		res.ETag = strings.Trim(*out.ETag, `"`)
	}

	p.logger.Info("published", "root", name, "uri", res.URI(), "bytes", res.Size)
	return res, nil
}
