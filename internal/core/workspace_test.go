package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arete-cli/arete/internal/storage"
)

// writeDoc creates a workspace file with any needed parent directories.
func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

func newTestStore(t *testing.T, root string) storage.WorkspaceStore {
	t.Helper()
	return storage.NewWorkspaceStore(storage.NewWorkspacePaths(root))
}

// fullWorkspace lays down a complete workspace with substantive context,
// goals, a person, projects, a meeting, and dated memory entries.
func fullWorkspace(t *testing.T) (string, storage.WorkspaceStore) {
	t.Helper()
	root := t.TempDir()

	writeDoc(t, root, "goals/strategy.md", `# Strategy

Win the mid-market by making onboarding effortless and pricing transparent.
`)
	writeDoc(t, root, "goals/quarter.md", `# This Quarter

Ship the new onboarding flow and validate usage-based pricing.
`)
	writeDoc(t, root, "context/business-overview.md", `# Business Overview

Acme sells workflow software to mid-market operations teams. Churn is
driven by slow onboarding and unclear pricing.
`)
	writeDoc(t, root, "context/users-personas.md", `# Users

Operations managers who run onboarding for their teams and care about
time to value more than feature depth.
`)
	writeDoc(t, root, "context/products-services.md", `# Products

The core product automates workflow handoffs; the onboarding module is
the newest addition.
`)
	writeDoc(t, root, "context/competitive-landscape.md", `# Competitive Landscape

FlowCorp competes on price, Workly on integrations. Neither does guided
onboarding well.
`)
	writeDoc(t, root, "context/risks.md", `# Risks

Pricing changes may alienate existing annual contracts. Onboarding
rework could slip past the quarter.
`)
	writeDoc(t, root, "people/team/jane-smith.md", `---
name: Jane Smith
email: jane@acme.com
role: Product Lead
company: Acme
---
Jane leads the onboarding workstream and owns pricing research.
`)
	writeDoc(t, root, "people/external/bob-jones.md", `---
name: Bob Jones
email: bob@flowcorp.example
role: Advisor
---
Bob advises on competitive positioning.
`)
	writeDoc(t, root, "projects/active/search-discovery/README.md", `# Search Discovery

Improve in-product search with ranking experiments.

## Team

- Jane Smith
- Bob Jones
`)
	writeDoc(t, root, "projects/active/onboarding-revamp/README.md", `# Onboarding Revamp

Rebuild the onboarding flow around guided checklists.

## Team

- Jane Smith
`)
	writeDoc(t, root, "projects/archive/legacy-importer/README.md", `# Legacy Importer

Retired importer for onboarding spreadsheets.
`)
	writeDoc(t, root, "resources/meetings/2026-02-01-roadmap-sync.md", `---
title: Roadmap Sync
date: "2026-02-01"
attendees: Jane Smith, Bob Jones
attendee_ids:
  - jane-smith
  - bob-jones
---
Jane Smith walked through onboarding milestones and the pricing
experiment.
`)
	writeDoc(t, root, ".arete/memory/items/decisions.md", `# Decisions

### 2026-01-10: Adopted usage-based pricing
We decided to adopt usage-based pricing for the enterprise tier after
the onboarding cohort analysis.

### Keep the legacy importer readable
The importer code stays in the archive for reference.
`)
	writeDoc(t, root, ".arete/memory/items/learnings.md", `# Learnings

### 2026-01-20: Onboarding drop-off happens at step three
Most churned accounts never finished the integrations step of
onboarding.
`)
	writeDoc(t, root, ".arete/memory/items/agent-observations.md", `# Observations

### 2026-01-25: Weekly review ran long
The onboarding review meeting ran forty minutes over.
`)

	return root, newTestStore(t, root)
}
