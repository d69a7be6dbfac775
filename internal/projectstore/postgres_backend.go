package projectstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"siteforge/internal/blueprint"
	"siteforge/internal/util/jsonutil"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS siteforge_projects (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL DEFAULT 'Untitled',
  config JSONB NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_siteforge_projects_tenant ON siteforge_projects (tenant_id);

CREATE TABLE IF NOT EXISTS siteforge_deployments (
  id SERIAL PRIMARY KEY,
  project_id TEXT NOT NULL,
  url TEXT NOT NULL,
  environment TEXT NOT NULL DEFAULT 'production',
  deployed_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_siteforge_deployments_project ON siteforge_deployments (project_id);
`)
	})
	return s.schemaErr
}

func (s *Store) upsertDB(ctx context.Context, tenantID, name string, doc *blueprint.Document, existingID string) (string, error) {
	if err := s.ensureSchema(); err != nil {
		return "", fmt.Errorf("ensure schema: %w", err)
	}
	raw, err := jsonutil.MarshalNoEscape(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	id := existingID
	if id == "" {
		row := s.db.QueryRowContext(ctx,
			`SELECT id FROM siteforge_projects WHERE tenant_id = $1 AND name = $2`, tenantID, name)
		if err := row.Scan(&id); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
	}

	if id != "" {
		res, err := s.db.ExecContext(ctx,
			`UPDATE siteforge_projects SET name = $2, config = $3, updated_at = NOW() WHERE id = $1`,
			id, name, raw)
		if err != nil {
			return "", err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			return id, nil
		}
		// stale id from a wiped table, fall through to insert
	}

	id = uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO siteforge_projects (id, tenant_id, name, config) VALUES ($1, $2, $3, $4)`,
		id, tenantID, name, raw)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) getDocumentDB(ctx context.Context, projectID string) (*blueprint.Document, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	var raw []byte
	row := s.db.QueryRowContext(ctx, `SELECT config FROM siteforge_projects WHERE id = $1`, projectID)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc blueprint.Document
	if err := jsonutil.ExtractRaw(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", projectID, err)
	}
	return &doc, nil
}

func (s *Store) listByTenantDB(ctx context.Context, tenantID string) ([]Project, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, created_at, updated_at
FROM siteforge_projects WHERE tenant_id = $1 ORDER BY updated_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		var created, updated sql.NullTime
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &created, &updated); err != nil {
			return nil, err
		}
		p.CreatedAt = created.Time
		p.UpdatedAt = updated.Time
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) recordDeploymentDB(ctx context.Context, projectID, url, environment string) error {
	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO siteforge_deployments (project_id, url, environment) VALUES ($1, $2, $3)`,
		projectID, url, environment)
	return err
}

func (s *Store) deploymentsDB(ctx context.Context, projectID string) ([]Deployment, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT project_id, url, environment, deployed_at
FROM siteforge_deployments WHERE project_id = $1 ORDER BY deployed_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Deployment
	for rows.Next() {
		var d Deployment
		var at sql.NullTime
		if err := rows.Scan(&d.ProjectID, &d.URL, &d.Environment, &at); err != nil {
			return nil, err
		}
		d.DeployedAt = at.Time
		out = append(out, d)
	}
	return out, rows.Err()
}
