package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphqlRequest mirrors the request body the client sends.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func TestListDeliverablesPaginates(t *testing.T) {
	var requests []graphqlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		assert.Equal(t, "secret-token", r.Header.Get("Authorization"))

		// First page points at cursor "p2", second page is terminal.
		if _, ok := req.Variables["after"]; !ok {
			fmt.Fprint(w, `{"data":{"issues":{
				"nodes":[
					{"id":"item-1","title":"First","state":{"name":"Done","type":"completed"},
					 "labels":{"nodes":[{"id":"lbl-a","name":"DEL"}]},
					 "createdAt":"2026-01-05T10:00:00Z","completedAt":"2026-01-10T10:00:00Z"}
				],
				"pageInfo":{"hasNextPage":true,"endCursor":"p2"}}}}`)
			return
		}
		fmt.Fprint(w, `{"data":{"issues":{
			"nodes":[
				{"id":"item-2","title":"Second","state":{"name":"In Progress","type":"started"},
				 "labels":{"nodes":[]},
				 "createdAt":"2026-01-06T10:00:00Z","completedAt":null}
			],
			"pageInfo":{"hasNextPage":false,"endCursor":""}}}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token")
	items, err := client.ListDeliverables(context.Background(), "team-1", "lbl-a")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, "completed", items[0].State.Type)
	require.Len(t, items[0].Labels, 1)
	assert.Equal(t, "lbl-a", items[0].Labels[0].ID)
	assert.NotNil(t, items[0].CompletedAt)
	assert.Nil(t, items[1].CompletedAt)

	require.Len(t, requests, 2)
	assert.Equal(t, "p2", requests[1].Variables["after"])
	assert.Equal(t, "team-1", requests[0].Variables["teamId"])
	assert.Equal(t, "lbl-a", requests[0].Variables["labelId"])
}

func TestListDeliverablesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	_, err := client.ListDeliverables(context.Background(), "team-1", "lbl-a")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestListDeliverablesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"team not found"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	_, err := client.ListDeliverables(context.Background(), "ghost", "lbl-a")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "team not found")
}

func TestListProjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "init-1", req.Variables["initiativeId"])

		fmt.Fprint(w, `{"data":{"initiative":{"projects":{
			"nodes":[
				{"id":"proj-1","name":"Contributor Portal","state":"started",
				 "lead":{"name":"Sam"},"targetDate":"2026-03-31","updatedAt":"2026-01-20T08:00:00Z"},
				{"id":"proj-2","name":"Billing Revamp","state":"planned",
				 "lead":null,"targetDate":"","updatedAt":"2026-01-21T08:00:00Z"}
			],
			"pageInfo":{"hasNextPage":false,"endCursor":""}}}}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	projects, err := client.ListProjects(context.Background(), "init-1")

	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Contributor Portal", projects[0].Name)
	assert.Equal(t, "Sam", projects[0].Lead)
	assert.Empty(t, projects[1].Lead)
}

func TestListProjectsContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data":{"initiative":{"projects":{"nodes":[],"pageInfo":{"hasNextPage":false,"endCursor":""}}}}}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "token")
	_, err := client.ListProjects(ctx, "init-1")
	assert.Error(t, err)
}
