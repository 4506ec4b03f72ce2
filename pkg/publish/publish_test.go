package publish

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/tour/pkg/vango"
	"github.com/vango-dev/tour/pkg/vdom"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func greeting() vdom.Component {
	name := vango.NewSignal("world")
	return vdom.Func(func() *vdom.VNode {
		return vdom.P(vdom.Textf("Hello, %s", name.Get()))
	})
}

func TestNewValidates(t *testing.T) {
	_, err := New(&fakePutter{}, Config{})
	assert.ErrorIs(t, err, ErrNoBucket)

	_, err = New(nil, Config{Bucket: "b"})
	assert.Error(t, err)
}

func TestPublish(t *testing.T) {
	fake := &fakePutter{}
	p, err := New(fake, Config{Bucket: "snapshots", Prefix: "/v1/", CacheControl: "max-age=60"})
	require.NoError(t, err)

	res, err := p.Publish(context.Background(), "greeting", greeting)
	require.NoError(t, err)

	assert.Equal(t, "v1/greeting/index.html", res.Key)
	assert.Equal(t, "s3://snapshots/v1/greeting/index.html", res.URI())
	assert.Equal(t, "abc123", res.ETag)

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "snapshots", aws.ToString(in.Bucket))
	assert.Equal(t, ContentType, aws.ToString(in.ContentType))
	assert.Equal(t, "max-age=60", aws.ToString(in.CacheControl))
	assert.Equal(t, "greeting", in.Metadata["tour-root"])

	body := fake.bodies[0]
	assert.Equal(t, res.Size, len(body))
	assert.Contains(t, body, "<title>Tour</title>")
	assert.Contains(t, body, "Hello, world")
	assert.NotContains(t, body, "data-live", "snapshots must not connect")
}

func TestPublishNoPrefix(t *testing.T) {
	p, err := New(&fakePutter{}, Config{Bucket: "b"})
	require.NoError(t, err)
	assert.Equal(t, "form/index.html", p.Key("form"))
}

func TestPublishUploadError(t *testing.T) {
	boom := errors.New("access denied")
	p, err := New(&fakePutter{err: boom}, Config{Bucket: "b"})
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), "greeting", greeting)
	assert.ErrorIs(t, err, boom)
}

func TestPublishRenderError(t *testing.T) {
	fake := &fakePutter{}
	p, err := New(fake, Config{Bucket: "b"})
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), "broken", func() vdom.Component { panic("setup failed") })
	assert.Error(t, err)
	assert.Empty(t, fake.inputs)
}

func TestEnvCredentials(t *testing.T) {
	env := map[string]string{
		"AWS_ACCESS_KEY_ID":     "AKID",
		"AWS_SECRET_ACCESS_KEY": "SECRET",
		"AWS_SESSION_TOKEN":     "TOKEN",
	}
	creds, err := EnvCredentials(func(k string) string { return env[k] }).Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
	assert.Equal(t, "SECRET", creds.SecretAccessKey)
	assert.Equal(t, "TOKEN", creds.SessionToken)

	_, err = EnvCredentials(func(string) string { return "" }).Retrieve(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestNewClient(t *testing.T) {
	client := NewClient(ClientConfig{
		Region:      "eu-west-1",
		Endpoint:    "http://localhost:9000",
		Credentials: EnvCredentials(func(string) string { return "x" }),
	})

	opts := client.Options()
	assert.Equal(t, "eu-west-1", opts.Region)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}
