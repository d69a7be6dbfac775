package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// PagesClient talks the Pages direct-upload protocol: ensure the project
// exists, fetch a scoped upload token, push content-addressed assets, then
// create a deployment from the manifest and poll it to completion.
type PagesClient struct {
	BaseURL   string
	AccountID string
	APIToken  string

	HTTPClient   *http.Client
	PollInterval time.Duration
	PollAttempts int
}

func NewPagesClient(accountID, apiToken string) *PagesClient {
	return &PagesClient{
		BaseURL:      defaultBaseURL,
		AccountID:    accountID,
		APIToken:     apiToken,
		HTTPClient:   &http.Client{Timeout: 60 * time.Second},
		PollInterval: 5 * time.Second,
		PollAttempts: 20,
	}
}

// apiEnvelope is the provider's uniform response wrapper.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Errors  []apiError      `json:"errors"`
	Result  json.RawMessage `json:"result"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e apiEnvelope) firstError(status int, op string) error {
	if len(e.Errors) > 0 {
		return fmt.Errorf("%s: %s (status %d)", op, e.Errors[0].Message, status)
	}
	return fmt.Errorf("%s: status %d", op, status)
}

// EnsureProject creates the Pages project, or refreshes its config when it
// already exists.
func (c *PagesClient) EnsureProject(ctx context.Context, name string) error {
	config := map[string]any{
		"name":              name,
		"production_branch": "main",
		"deployment_configs": map[string]any{
			"production": map[string]any{"compatibility_date": "2026-01-13", "compatibility_flags": []string{}},
			"preview":    map[string]any{"compatibility_date": "2026-01-13", "compatibility_flags": []string{}},
		},
	}

	projectURL := fmt.Sprintf("%s/accounts/%s/pages/projects/%s", c.BaseURL, c.AccountID, name)
	status, _, err := c.doJSON(ctx, http.MethodGet, projectURL, c.APIToken, nil)
	if err != nil {
		return fmt.Errorf("check project: %w", err)
	}

	if status == http.StatusOK {
		log.Printf("[deploy] project %s exists, updating config", name)
		status, env, err := c.doJSON(ctx, http.MethodPatch, projectURL, c.APIToken, config)
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		if status != http.StatusOK {
			return env.firstError(status, "update project")
		}
		return nil
	}

	log.Printf("[deploy] creating project %s", name)
	createURL := fmt.Sprintf("%s/accounts/%s/pages/projects", c.BaseURL, c.AccountID)
	status, env, err := c.doJSON(ctx, http.MethodPost, createURL, c.APIToken, config)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return env.firstError(status, "create project")
	}
	return nil
}

// UploadDeployment runs the asset upload and deployment creation sequence
// and blocks until the deployment's deploy stage settles or the poll budget
// runs out. Returns the deployment id.
func (c *PagesClient) UploadDeployment(ctx context.Context, projectName string, bundle *Bundle) (string, error) {
	jwt, err := c.uploadToken(ctx, projectName)
	if err != nil {
		return "", err
	}

	payload := make([]map[string]any, 0, len(bundle.Files))
	for _, f := range bundle.Files {
		payload = append(payload, map[string]any{
			"key":      f.Hash,
			"value":    f.Base64Content,
			"metadata": map[string]any{"contentType": f.ContentType},
			"base64":   true,
		})
	}
	status, env, err := c.doJSON(ctx, http.MethodPost, c.BaseURL+"/pages/assets/upload", jwt, payload)
	if err != nil {
		return "", fmt.Errorf("upload assets: %w", err)
	}
	if status != http.StatusOK {
		return "", env.firstError(status, "upload assets")
	}
	log.Printf("[deploy] uploaded %d assets for %s", len(bundle.Files), projectName)

	hashes := make([]string, 0, len(bundle.Files))
	for _, f := range bundle.Files {
		hashes = append(hashes, f.Hash)
	}
	status, env, err = c.doJSON(ctx, http.MethodPost, c.BaseURL+"/pages/assets/upsert-hashes", jwt, map[string]any{"hashes": hashes})
	if err != nil {
		return "", fmt.Errorf("upsert hashes: %w", err)
	}
	if status != http.StatusOK {
		return "", env.firstError(status, "upsert hashes")
	}

	deploymentID, err := c.createDeployment(ctx, projectName, bundle.Manifest)
	if err != nil {
		return "", err
	}
	log.Printf("[deploy] deployment %s created for %s", deploymentID, projectName)

	if err := c.waitForDeployment(ctx, projectName, deploymentID); err != nil {
		return deploymentID, err
	}
	return deploymentID, nil
}

func (c *PagesClient) uploadToken(ctx context.Context, projectName string) (string, error) {
	url := fmt.Sprintf("%s/accounts/%s/pages/projects/%s/upload-token", c.BaseURL, c.AccountID, projectName)
	status, env, err := c.doJSON(ctx, http.MethodGet, url, c.APIToken, nil)
	if err != nil {
		return "", fmt.Errorf("upload token: %w", err)
	}
	if status != http.StatusOK {
		return "", env.firstError(status, "upload token")
	}
	var result struct {
		JWT string `json:"jwt"`
	}
	if err := json.Unmarshal(env.Result, &result); err != nil || result.JWT == "" {
		return "", fmt.Errorf("upload token: no jwt in response")
	}
	return result.JWT, nil
}

// createDeployment posts the manifest as multipart form data, the only
// endpoint in the sequence that is not JSON-bodied.
func (c *PagesClient) createDeployment(ctx context.Context, projectName string, manifest map[string]string) (string, error) {
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("create deployment: marshal manifest: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("manifest", string(manifestJSON)); err != nil {
		return "", fmt.Errorf("create deployment: %w", err)
	}
	if err := mw.WriteField("branch", "main"); err != nil {
		return "", fmt.Errorf("create deployment: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("create deployment: %w", err)
	}

	url := fmt.Sprintf("%s/accounts/%s/pages/projects/%s/deployments", c.BaseURL, c.AccountID, projectName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("create deployment: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIToken)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create deployment: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("create deployment: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", env.firstError(resp.StatusCode, "create deployment")
	}
	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Result, &result); err != nil || result.ID == "" {
		return "", fmt.Errorf("create deployment: no id in response")
	}
	return result.ID, nil
}

// waitForDeployment polls the deployment's stages until the deploy stage
// reports success. A timed-out poll is not an error: the deployment usually
// finishes shortly after and the URL is already known.
func (c *PagesClient) waitForDeployment(ctx context.Context, projectName, deploymentID string) error {
	url := fmt.Sprintf("%s/accounts/%s/pages/projects/%s/deployments/%s", c.BaseURL, c.AccountID, projectName, deploymentID)
	for attempt := 0; attempt < c.PollAttempts; attempt++ {
		status, env, err := c.doJSON(ctx, http.MethodGet, url, c.APIToken, nil)
		if err == nil && status == http.StatusOK {
			var result struct {
				Stages []struct {
					Name   string `json:"name"`
					Status string `json:"status"`
				} `json:"stages"`
			}
			if err := json.Unmarshal(env.Result, &result); err == nil {
				for _, stage := range result.Stages {
					if stage.Name != "deploy" {
						continue
					}
					switch stage.Status {
					case "success":
						return nil
					case "failure", "failed":
						return fmt.Errorf("deployment %s failed during deploy stage", deploymentID)
					}
				}
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}
	log.Printf("[deploy] poll budget exhausted for deployment %s, assuming eventual success", deploymentID)
	return nil
}

func (c *PagesClient) doJSON(ctx context.Context, method, url, token string, body any) (int, apiEnvelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, apiEnvelope{}, err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, apiEnvelope{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, apiEnvelope{}, err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return resp.StatusCode, apiEnvelope{}, nil
	}
	return resp.StatusCode, env, nil
}
