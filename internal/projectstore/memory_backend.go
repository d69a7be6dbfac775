package projectstore

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"siteforge/internal/blueprint"
)

var ErrNotFound = errors.New("projectstore: project not found")

func (s *Store) upsertMem(tenantID, name string, doc *blueprint.Document, existingID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existingID != "" {
		if p, ok := s.byID[existingID]; ok {
			p.Name = name
			p.Config = doc
			p.UpdatedAt = now
			s.byID[existingID] = p
			return existingID, nil
		}
	}
	for id, p := range s.byID {
		if p.TenantID == tenantID && p.Name == name {
			p.Config = doc
			p.UpdatedAt = now
			s.byID[id] = p
			return id, nil
		}
	}
	id := uuid.NewString()
	s.byID[id] = Project{
		ID:        id,
		TenantID:  tenantID,
		Name:      name,
		Config:    doc,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id, nil
}

func (s *Store) getDocumentMem(projectID string) (*blueprint.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[projectID]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Config, nil
}

func (s *Store) listByTenantMem(tenantID string) []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Project
	for _, p := range s.byID {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

func (s *Store) recordDeploymentMem(projectID, url, environment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deployments = append(s.deployments, Deployment{
		ProjectID:   projectID,
		URL:         url,
		Environment: environment,
		DeployedAt:  time.Now(),
	})
}

func (s *Store) deploymentsMem(projectID string) []Deployment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Deployment
	for _, d := range s.deployments {
		if d.ProjectID == projectID {
			out = append(out, d)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
