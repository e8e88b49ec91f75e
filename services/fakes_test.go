package services

import (
	"context"
	"fmt"

	"github.com/hostelites/hostelites-api/media"
	"github.com/hostelites/hostelites-api/models"
)

// fakeGateway records the order of upload and destroy calls so tests can
// check the swap-then-destroy policy.
type fakeGateway struct {
	calls     []string
	destroyed []string
	uploads   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{}
}

func (g *fakeGateway) UploadAll(_ context.Context, files []media.UploadFile, folder string) ([]models.Picture, error) {
	g.calls = append(g.calls, "upload")
	pictures := make([]models.Picture, len(files))
	for i, f := range files {
		g.uploads++
		pictures[i] = models.Picture{
			AssetID: fmt.Sprintf("%s/%s-%d", folder, f.Name, g.uploads),
			URL:     fmt.Sprintf("https://cdn.example.com/%s/%s", folder, f.Name),
		}
	}
	return pictures, nil
}

func (g *fakeGateway) DestroyAll(_ context.Context, pictures []models.Picture) error {
	g.calls = append(g.calls, "destroy")
	for _, p := range pictures {
		g.destroyed = append(g.destroyed, p.AssetID)
	}
	return nil
}

func (g *fakeGateway) UploadRaw(_ context.Context, _ []byte, publicID string) (string, error) {
	g.calls = append(g.calls, "upload-raw")
	return "https://cdn.example.com/raw/" + publicID, nil
}
