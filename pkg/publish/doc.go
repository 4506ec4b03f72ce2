// Package publish uploads static snapshots of root widgets to S3.
//
// A snapshot is the server-rendered first paint of a root with no live
// script, so it can be served from any static host:
//
//	client := publish.NewClient(publish.ClientConfig{Region: "us-east-1"})
//	p, err := publish.New(client, publish.Config{Bucket: "tour-snapshots", Prefix: "v1"})
//	if err != nil {
//	    return err
//	}
//	res, err := p.Publish(ctx, "counter", components.AppOne)
//
// Credentials come from the standard AWS environment variables. Set
// Endpoint to publish to an S3-compatible store.
package publish
