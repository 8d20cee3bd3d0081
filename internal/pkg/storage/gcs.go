package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS implements Storage on Google Cloud Storage.
type GCS struct {
	client *gcs.Client
	bucket string
	owned  bool
}

// GCSOptions configures GCS client initialization. Client wins over the
// other fields when set.
type GCSOptions struct {
	Client          *gcs.Client
	CredentialsFile string
	Endpoint        string
}

func NewGCS(ctx context.Context, bucket string, opts GCSOptions) (*GCS, error) {
	if opts.Client != nil {
		return &GCS{client: opts.Client, bucket: bucket}, nil
	}

	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint), option.WithoutAuthentication())
	}

	client, err := gcs.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	return &GCS{client: client, bucket: bucket, owned: true}, nil
}

func (g *GCS) Put(ctx context.Context, key string, data []byte, contentType string) (Object, error) {
	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		return Object{}, errors.Join(err, w.Close())
	}
	if err := w.Close(); err != nil {
		return Object{}, err
	}

	obj := Object{Bucket: g.bucket, Key: key, Size: int64(len(data)), ContentType: contentType}
	if attrs := w.Attrs(); attrs != nil {
		obj.ETag = attrs.Etag
		obj.UpdatedAt = attrs.Updated
	}
	return obj, nil
}

func (g *GCS) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := g.client.Bucket(g.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

// Close closes the client when NewGCS created it.
func (g *GCS) Close() error {
	if !g.owned {
		return nil
	}
	return g.client.Close()
}
