// Package media wraps the Cloudinary image CDN behind a small gateway
// interface. Batch operations fan out concurrently and are awaited as a
// whole; the first failure aborts the batch.
package media

import (
	"bytes"
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"golang.org/x/sync/errgroup"

	"github.com/hostelites/hostelites-api/models"
)

const (
	HostelFolder  = "Hostelites/hostels"
	RoomFolder    = "Hostelites/rooms"
	ReceiptFolder = "Hostelites/receipts"
)

// UploadFile is one file taken from a multipart request.
type UploadFile struct {
	Name   string
	Reader io.Reader
}

type Gateway interface {
	UploadAll(ctx context.Context, files []UploadFile, folder string) ([]models.Picture, error)
	DestroyAll(ctx context.Context, pictures []models.Picture) error
	UploadRaw(ctx context.Context, data []byte, publicID string) (string, error)
}

type Client struct {
	cld *cloudinary.Cloudinary
}

func NewClient(cloudinaryURL string) (*Client, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &Client{cld: cld}, nil
}

func (c *Client) UploadAll(ctx context.Context, files []UploadFile, folder string) ([]models.Picture, error) {
	g, ctx := errgroup.WithContext(ctx)
	pictures := make([]models.Picture, len(files))

	for i := range files {
		g.Go(func() error {
			res, err := c.cld.Upload.Upload(ctx, files[i].Reader, uploader.UploadParams{
				Folder: folder,
			})
			if err != nil {
				return err
			}
			pictures[i] = models.Picture{AssetID: res.PublicID, URL: res.SecureURL}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pictures, nil
}

func (c *Client) DestroyAll(ctx context.Context, pictures []models.Picture) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, picture := range pictures {
		g.Go(func() error {
			_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: picture.AssetID})
			return err
		})
	}

	return g.Wait()
}

func (c *Client) UploadRaw(ctx context.Context, data []byte, publicID string) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     publicID,
		Folder:       ReceiptFolder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}
