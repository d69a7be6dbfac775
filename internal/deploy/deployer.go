package deploy

import (
	"context"
	"fmt"
	"log"

	"siteforge/internal/artifact"
	"siteforge/internal/blueprint"
)

// Archiver keeps a copy of deployed bundles for later inspection. Archive
// failures never fail a deployment.
type Archiver interface {
	PutBundle(ctx context.Context, prefix string, objects []artifact.Object) error
}

// PagesDeployer publishes documents through a PagesClient. With no
// credentials configured it degrades to a dry run that logs and returns the
// URL the deployment would have had.
type PagesDeployer struct {
	Client  *PagesClient
	Archive Archiver // optional
}

func NewPagesDeployer(client *PagesClient) *PagesDeployer {
	return &PagesDeployer{Client: client}
}

func (d *PagesDeployer) Deploy(ctx context.Context, doc *blueprint.Document, userID string) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("deploy: no document")
	}
	projectName := ProjectName(doc.Branding.Name, userID)
	url := fmt.Sprintf("https://%s.pages.dev", projectName)

	bundle, err := CreateBundle(doc)
	if err != nil {
		return "", err
	}

	if d.Client == nil || d.Client.AccountID == "" || d.Client.APIToken == "" {
		log.Printf("[deploy] no provider credentials, dry run for %s", projectName)
		d.archive(ctx, projectName, bundle)
		return url, nil
	}

	if err := d.Client.EnsureProject(ctx, projectName); err != nil {
		return "", fmt.Errorf("deploy %s: %w", projectName, err)
	}
	if _, err := d.Client.UploadDeployment(ctx, projectName, bundle); err != nil {
		return "", fmt.Errorf("deploy %s: %w", projectName, err)
	}

	d.archive(ctx, projectName, bundle)
	log.Printf("[deploy] %s live at %s", projectName, url)
	return url, nil
}

func (d *PagesDeployer) archive(ctx context.Context, projectName string, bundle *Bundle) {
	if d.Archive == nil {
		return
	}
	objects := make([]artifact.Object, 0, len(bundle.Files))
	for _, f := range bundle.Files {
		objects = append(objects, artifact.Object{
			Key:           f.Path,
			Base64Content: f.Base64Content,
			ContentType:   f.ContentType,
		})
	}
	if err := d.Archive.PutBundle(ctx, projectName, objects); err != nil {
		log.Printf("[deploy] bundle archive failed for %s: %v", projectName, err)
	}
}
