// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"
)

func TestSectionAddElement(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.do(t, http.MethodPost, "/api/portfolio/skills", map[string]string{
		"name":        "Docker",
		"description": "Containers",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	el, _ := body["element"].(map[string]any)
	if el["name"] != "Docker" {
		t.Errorf("element = %v", el)
	}
	if el["id"] == "" || el["id"] == nil {
		t.Error("element missing server-assigned id")
	}

	// Persisted: visible through the public document.
	resp = ts.do(t, http.MethodGet, "/api/portfolio", nil)
	doc := decodeBody(t, resp)
	skills, _ := doc["skills"].([]any)
	found := false
	for _, s := range skills {
		if m, ok := s.(map[string]any); ok && m["name"] == "Docker" {
			found = true
		}
	}
	if !found {
		t.Error("added skill not present in stored document")
	}
}

func TestSectionUpdateElement(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.do(t, http.MethodPost, "/api/portfolio/skills", map[string]string{
		"name":        "Redis",
		"description": "Caching",
	})
	body := decodeBody(t, resp)
	el, _ := body["element"].(map[string]any)
	id, _ := el["id"].(string)

	resp = ts.do(t, http.MethodPatch, "/api/portfolio/skills/"+id, map[string]string{
		"name": "Redis 7",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PATCH status = %d, want 200", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/portfolio/skills", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET section status = %d, want 200", resp.StatusCode)
	}
	defer func() { _ = resp.Body.Close() }()

	var items []map[string]any
	decodeJSONBody(t, resp, &items)
	var updated map[string]any
	for _, it := range items {
		if it["id"] == id {
			updated = it
		}
	}
	if updated == nil {
		t.Fatal("updated element not found in section listing")
	}
	if updated["name"] != "Redis 7" {
		t.Errorf("name = %v, want Redis 7", updated["name"])
	}
	if updated["description"] != "Caching" {
		t.Errorf("description = %v, unpatched fields must survive", updated["description"])
	}
}

func TestSectionUpdateUnknownID(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.do(t, http.MethodPatch, "/api/portfolio/skills/no-such-id", map[string]string{"name": "x"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSectionRemoveUnknownIDSucceeds(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.do(t, http.MethodDelete, "/api/portfolio/projects/no-such-id", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (removal is idempotent)", resp.StatusCode)
	}
}

func TestSectionReorder(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	for _, name := range []string{"one", "two", "three"} {
		resp := ts.do(t, http.MethodPost, "/api/portfolio/gallery", map[string]string{
			"image":   "/api/file?id=" + name,
			"caption": name,
		})
		_ = resp.Body.Close()
	}

	resp := ts.do(t, http.MethodPost, "/api/portfolio/gallery/reorder", map[string]int{"from": 0, "to": 2})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reorder status = %d, want 200", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/portfolio/gallery", nil)
	var items []map[string]any
	decodeJSONBody(t, resp, &items)
	if len(items) != 3 {
		t.Fatalf("gallery has %d items, want 3", len(items))
	}
	captions := []string{}
	for i, it := range items {
		captions = append(captions, it["caption"].(string))
		if int(it["order"].(float64)) != i {
			t.Errorf("items[%d].order = %v, want %d", i, it["order"], i)
		}
	}
	if captions[0] != "two" || captions[2] != "one" {
		t.Errorf("captions after reorder = %v", captions)
	}
}

func TestSectionReorderOutOfRange(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.do(t, http.MethodPost, "/api/portfolio/skills/reorder", map[string]int{"from": 0, "to": 99})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUnknownSection(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.do(t, http.MethodPost, "/api/portfolio/hero", map[string]string{"name": "x"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (hero is not a list section)", resp.StatusCode)
	}
}

func TestSectionEndpointsRequireSession(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/portfolio/skills", map[string]string{"name": "x"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
