package projectstore

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"

	"siteforge/internal/blueprint"
)

// Project is one persisted website blueprint owned by a tenant.
type Project struct {
	ID        string
	TenantID  string
	Name      string
	Config    *blueprint.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deployment is one publish event of a project.
type Deployment struct {
	ProjectID   string
	URL         string
	Environment string
	DeployedAt  time.Time
}

// Store persists projects to Postgres when a DSN is configured, or to an
// in-process map otherwise. A small LRU keeps recently touched documents
// out of the hot read path.
type Store struct {
	db *sql.DB

	mu          sync.RWMutex
	byID        map[string]Project
	deployments []Deployment

	schemaOnce sync.Once
	schemaErr  error

	docCache *lru.Cache[string, *blueprint.Document]
}

const docCacheSize = 256

// New returns a memory-backed store.
func New() *Store {
	cache, _ := lru.New[string, *blueprint.Document](docCacheSize)
	return &Store{
		byID:     make(map[string]Project),
		docCache: cache,
	}
}

// NewPostgres connects to the given DSN and verifies the connection.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, *blueprint.Document](docCacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, docCache: cache}, nil
}

// NewFromEnv reads PROJECT_STORE_PG_DSN and falls back to memory when it is
// unset or unreachable.
func NewFromEnv() *Store {
	dsn := strings.TrimSpace(os.Getenv("PROJECT_STORE_PG_DSN"))
	if dsn == "" {
		return New()
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New()
	}
	return s
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// UpsertProject writes the document under (tenant, name). When existingID
// names a known row that row is updated; otherwise the row matching the
// tenant and name is updated, and a new row is created when none matches.
// Returns the project id.
func (s *Store) UpsertProject(ctx context.Context, tenantID, name string, doc *blueprint.Document, existingID string) (string, error) {
	tenantID = strings.TrimSpace(tenantID)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled"
	}
	var (
		id  string
		err error
	)
	if s.db != nil {
		id, err = s.upsertDB(ctx, tenantID, name, doc, existingID)
	} else {
		id, err = s.upsertMem(tenantID, name, doc, existingID)
	}
	if err == nil {
		s.docCache.Add(id, doc)
	}
	return id, err
}

// GetDocument loads a project's document, from cache when possible.
func (s *Store) GetDocument(ctx context.Context, projectID string) (*blueprint.Document, error) {
	if doc, ok := s.docCache.Get(projectID); ok {
		return doc, nil
	}
	var (
		doc *blueprint.Document
		err error
	)
	if s.db != nil {
		doc, err = s.getDocumentDB(ctx, projectID)
	} else {
		doc, err = s.getDocumentMem(projectID)
	}
	if err == nil {
		s.docCache.Add(projectID, doc)
	}
	return doc, err
}

// ListByTenant returns a tenant's projects, most recently updated first.
// Documents are not loaded.
func (s *Store) ListByTenant(ctx context.Context, tenantID string) ([]Project, error) {
	if s.db != nil {
		return s.listByTenantDB(ctx, tenantID)
	}
	return s.listByTenantMem(tenantID), nil
}

// RecordDeployment appends a publish event for the project.
func (s *Store) RecordDeployment(ctx context.Context, projectID, url, environment string) error {
	if environment == "" {
		environment = "production"
	}
	if s.db != nil {
		return s.recordDeploymentDB(ctx, projectID, url, environment)
	}
	s.recordDeploymentMem(projectID, url, environment)
	return nil
}

// Deployments returns a project's publish history, newest first.
func (s *Store) Deployments(ctx context.Context, projectID string) ([]Deployment, error) {
	if s.db != nil {
		return s.deploymentsDB(ctx, projectID)
	}
	return s.deploymentsMem(projectID), nil
}
