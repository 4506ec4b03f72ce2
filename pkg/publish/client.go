package publish

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNoCredentials is returned when the AWS environment variables are not
// set.
var ErrNoCredentials = errors.New("publish: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")

// ClientConfig configures the S3 client.
type ClientConfig struct {
	// Region is the bucket region. Defaults to AWS_REGION, then us-east-1.
	Region string

	// Endpoint overrides the S3 endpoint, for S3-compatible stores.
	Endpoint string

	// Credentials overrides EnvCredentials.
	Credentials aws.CredentialsProvider
}

// NewClient creates an S3 client. Custom endpoints use path-style
// addressing.
func NewClient(config ClientConfig) *s3.Client {
	region := config.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	creds := config.Credentials
	if creds == nil {
		creds = EnvCredentials(os.Getenv)
	}

	opts := s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(creds),
	}
	if config.Endpoint != "" {
		opts.BaseEndpoint = aws.String(config.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// EnvCredentials reads static credentials from the standard AWS variables
// through getenv.
func EnvCredentials(getenv func(string) string) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		id := getenv("AWS_ACCESS_KEY_ID")
		secret := getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, ErrNoCredentials
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}, nil
	})
}
