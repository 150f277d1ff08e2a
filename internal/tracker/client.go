// Package tracker implements the HTTP client for the project-tracking backend.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"podpulse/internal/contract"
	"podpulse/schema"
)

// DefaultPageSize is the page size requested from the tracker API.
const DefaultPageSize = 100

// defaultTimeout bounds a single tracker round trip. Pagination issues one
// request per page, each with its own timeout.
const defaultTimeout = 30 * time.Second

const deliverablesQuery = `
query Deliverables($teamId: String!, $labelId: String!, $first: Int!, $after: String) {
  issues(
    filter: { team: { id: { eq: $teamId } }, labels: { id: { eq: $labelId } } }
    first: $first
    after: $after
  ) {
    nodes {
      id
      title
      state { name type }
      labels { nodes { id name } }
      createdAt
      completedAt
    }
    pageInfo { hasNextPage endCursor }
  }
}`

const projectsQuery = `
query Projects($initiativeId: String!, $first: Int!, $after: String) {
  initiative(id: $initiativeId) {
    projects(first: $first, after: $after) {
      nodes {
        id
        name
        state
        lead { name }
        targetDate
        updatedAt
      }
      pageInfo { hasNextPage endCursor }
    }
  }
}`

// Client is the HTTP implementation of contract.TrackerClient.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	pageSize   int
}

var _ contract.TrackerClient = &Client{} // Compile-time check

// NewClient creates a tracker client for the given endpoint and API token.
func NewClient(endpoint, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   endpoint,
		token:      token,
		pageSize:   DefaultPageSize,
	}
}

// --- Wire types ---

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type issueNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	State struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"state"`
	Labels struct {
		Nodes []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"labels"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

type projectNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
	Lead *struct {
		Name string `json:"name"`
	} `json:"lead"`
	TargetDate string    `json:"targetDate"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type deliverablesResponse struct {
	Data struct {
		Issues struct {
			Nodes    []issueNode `json:"nodes"`
			PageInfo pageInfo    `json:"pageInfo"`
		} `json:"issues"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

type projectsResponse struct {
	Data struct {
		Initiative struct {
			Projects struct {
				Nodes    []projectNode `json:"nodes"`
				PageInfo pageInfo      `json:"pageInfo"`
			} `json:"projects"`
		} `json:"initiative"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

type apiError struct {
	Message string `json:"message"`
}

// ListDeliverables implements contract.TrackerClient. It follows cursor
// pagination until the backend reports no more pages and returns one flat list.
func (c *Client) ListDeliverables(ctx context.Context, teamID, labelID string) ([]schema.WorkItem, error) {
	var items []schema.WorkItem
	after := ""

	for {
		variables := map[string]any{
			"teamId":  teamID,
			"labelId": labelID,
			"first":   c.pageSize,
		}
		if after != "" {
			variables["after"] = after
		}

		var resp deliverablesResponse
		if err := c.do(ctx, deliverablesQuery, variables, &resp); err != nil {
			return nil, fmt.Errorf("list deliverables for team %s: %w", teamID, err)
		}
		if len(resp.Errors) > 0 {
			return nil, fmt.Errorf("list deliverables for team %s: %s", teamID, resp.Errors[0].Message)
		}

		for _, node := range resp.Data.Issues.Nodes {
			items = append(items, convertIssue(node))
		}

		page := resp.Data.Issues.PageInfo
		if !page.HasNextPage {
			return items, nil
		}
		after = page.EndCursor
	}
}

// ListProjects implements contract.TrackerClient.
func (c *Client) ListProjects(ctx context.Context, initiativeID string) ([]schema.Project, error) {
	var projects []schema.Project
	after := ""

	for {
		variables := map[string]any{
			"initiativeId": initiativeID,
			"first":        c.pageSize,
		}
		if after != "" {
			variables["after"] = after
		}

		var resp projectsResponse
		if err := c.do(ctx, projectsQuery, variables, &resp); err != nil {
			return nil, fmt.Errorf("list projects for initiative %s: %w", initiativeID, err)
		}
		if len(resp.Errors) > 0 {
			return nil, fmt.Errorf("list projects for initiative %s: %s", initiativeID, resp.Errors[0].Message)
		}

		for _, node := range resp.Data.Initiative.Projects.Nodes {
			projects = append(projects, convertProject(node))
		}

		page := resp.Data.Initiative.Projects.PageInfo
		if !page.HasNextPage {
			return projects, nil
		}
		after = page.EndCursor
	}
}

// do posts one GraphQL request and decodes the response body into out.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for error context
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("tracker returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func convertIssue(node issueNode) schema.WorkItem {
	item := schema.WorkItem{
		ID:    node.ID,
		Title: node.Title,
		State: schema.WorkItemState{
			Name: node.State.Name,
			Type: node.State.Type,
		},
		CreatedAt:   node.CreatedAt,
		CompletedAt: node.CompletedAt,
	}
	for _, label := range node.Labels.Nodes {
		item.Labels = append(item.Labels, schema.Label{ID: label.ID, Name: label.Name})
	}
	return item
}

func convertProject(node projectNode) schema.Project {
	project := schema.Project{
		ID:         node.ID,
		Name:       node.Name,
		State:      node.State,
		TargetDate: node.TargetDate,
		UpdatedAt:  node.UpdatedAt,
	}
	if node.Lead != nil {
		project.Lead = node.Lead.Name
	}
	return project
}
