package catalog

import (
	"testing"
)

// frontPageHTML mimics the store front page category dropdown.
const frontPageHTML = `<html><body>
<div id="action-dropdown-children-Categories">
  <a href="/store/apps/category/GAME">Games</a>
  <a href="/store/apps/category/PRODUCTIVITY">Productivity</a>
  <a href="/store/apps/category/FAMILY?age=AGE_RANGE1">Family Ages 5 &amp; Under</a>
  <a href="/store/apps/category/FAMILY?age=AGE_RANGE2">Family Ages 6-8</a>
  <a href="/store/promotions/category-sale">Sale</a>
</div>
</body></html>`

// categoryPageHTML mimics a category page with one cluster link and a
// standard item listing.
const categoryPageHTML = `<html><body>
<c-wiz><c-wiz><div><div class="Z3lOXb"><div class="xwY9Zc">
  <a href="/store/apps/collection/cluster?gsr=token_top_free"><h2>Top Free</h2></a>
</div></div></div></c-wiz></c-wiz>
<c-wiz><c-wiz><div><div class="Z3lOXb"><div class="xwY9Zc">
  <a href="/store/apps/collection/cluster?gsr=token_trending"><h2>Trending</h2></a>
  <a href="/store/apps/category/GAME_ACTION"><h2>Action</h2></a>
</div></div></div></c-wiz></c-wiz>
<div class="ZmHEEd"><div><c-wiz><div><div><div class="uzcko"><div><div>
  <a href="/store/apps/details?id=com.example.one"></a>
  <a href="/store/apps/details?id=com.example.two"></a>
  <a href="/store/apps/details?id=com.example.one"></a>
</div></div></div></div></div></c-wiz></div></div>
</body></html>`

// overlayPageHTML mimics the legacy listing layout with overlay spans.
const overlayPageHTML = `<html><body>
<span class="preview-overlay-container" data-docid="com.example.three"></span>
<span class="preview-overlay-container" data-docid="com.example.four"></span>
</body></html>`

// detailPageHTML mimics an app detail page.
const detailPageHTML = `<html><body>
<h1 itemprop="name"><span>Example App</span></h1>
<a href="/store/apps/dev?id=5700313618786177705">Example Studio</a>
<a itemprop="genre" href="/store/apps/category/GAME_ARCADE">Arcade</a>
<div itemprop="description">An example application.</div>
<img itemprop="image" src="https://img.example/icon.png" alt="Cover art">
<div itemprop="starRating">4.3</div>
<div itemprop="contentRating">Everyone</div>
<meta itemprop="price" content="0">
</body></html>`

// TestParseCategories tests front page category extraction.
func TestParseCategories(t *testing.T) {
	t.Parallel()

	categories, err := parseCategories([]byte(frontPageHTML), DefaultBaseURL)
	if err != nil {
		t.Fatalf("failed to parse categories: %v", err)
	}

	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d: %+v", len(categories), categories)
	}

	byID := make(map[string]string, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat.Name
	}

	if byID["GAME"] != "Games" {
		t.Errorf("expected GAME category, got %v", byID)
	}
	if byID["PRODUCTIVITY"] != "Productivity" {
		t.Errorf("expected PRODUCTIVITY category, got %v", byID)
	}
	// Age-segmented family links collapse into one FAMILY entry.
	if byID["FAMILY"] != "Family" {
		t.Errorf("expected collapsed FAMILY category, got %v", byID)
	}
}

// TestParseClusters tests cluster link extraction from a category page.
func TestParseClusters(t *testing.T) {
	t.Parallel()

	clusters, err := parseClusters([]byte(categoryPageHTML))
	if err != nil {
		t.Fatalf("failed to parse clusters: %v", err)
	}

	// The subcategory link has no gsr handle and must be skipped.
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d: %+v", len(clusters), clusters)
	}
	if clusters[0].Title != "Top Free" || clusters[0].Handle != "token_top_free" {
		t.Errorf("unexpected first cluster: %+v", clusters[0])
	}
	if clusters[1].Title != "Trending" || clusters[1].Handle != "token_trending" {
		t.Errorf("unexpected second cluster: %+v", clusters[1])
	}
}

// TestParseItemIDs tests app id extraction from listing pages.
func TestParseItemIDs(t *testing.T) {
	t.Parallel()

	t.Run("extracts and dedupes ids from listing links", func(t *testing.T) {
		t.Parallel()

		ids, err := parseItemIDs([]byte(categoryPageHTML))
		if err != nil {
			t.Fatalf("failed to parse item ids: %v", err)
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 unique ids, got %d: %v", len(ids), ids)
		}
		if ids[0] != "com.example.one" || ids[1] != "com.example.two" {
			t.Errorf("unexpected ids: %v", ids)
		}
	})

	t.Run("falls back to overlay spans", func(t *testing.T) {
		t.Parallel()

		ids, err := parseItemIDs([]byte(overlayPageHTML))
		if err != nil {
			t.Fatalf("failed to parse item ids: %v", err)
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 ids, got %d: %v", len(ids), ids)
		}
	})

	t.Run("empty page yields no ids", func(t *testing.T) {
		t.Parallel()

		ids, err := parseItemIDs([]byte("<html><body></body></html>"))
		if err != nil {
			t.Fatalf("failed to parse item ids: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("expected no ids, got %v", ids)
		}
	})
}

// TestParseAppDetail tests detail page extraction.
func TestParseAppDetail(t *testing.T) {
	t.Parallel()

	detail, err := parseAppDetail([]byte(detailPageHTML))
	if err != nil {
		t.Fatalf("failed to parse detail page: %v", err)
	}

	if detail.Title != "Example App" {
		t.Errorf("expected title 'Example App', got %q", detail.Title)
	}
	if detail.DeveloperName != "Example Studio" {
		t.Errorf("expected developer name, got %q", detail.DeveloperName)
	}
	if detail.DeveloperID != "5700313618786177705" {
		t.Errorf("expected developer id, got %q", detail.DeveloperID)
	}
	if len(detail.CategoryIDs) != 1 || detail.CategoryIDs[0] != "GAME_ARCADE" {
		t.Errorf("expected GAME_ARCADE category, got %v", detail.CategoryIDs)
	}
	if detail.Description != "An example application." {
		t.Errorf("unexpected description: %q", detail.Description)
	}
	if detail.IconURL != "https://img.example/icon.png" {
		t.Errorf("unexpected icon: %q", detail.IconURL)
	}
	if detail.Score != "4.3" {
		t.Errorf("unexpected score: %q", detail.Score)
	}
	if !detail.Free {
		t.Error("expected app with price 0 to be free")
	}
}

// TestParseAppDetailSparsePage tests that missing fields stay empty rather
// than failing the parse.
func TestParseAppDetailSparsePage(t *testing.T) {
	t.Parallel()

	detail, err := parseAppDetail([]byte("<html><body><h1>Bare</h1></body></html>"))
	if err != nil {
		t.Fatalf("failed to parse sparse page: %v", err)
	}
	if detail.Title != "Bare" {
		t.Errorf("expected fallback title, got %q", detail.Title)
	}
	if detail.DeveloperID != "" {
		t.Errorf("expected empty developer id, got %q", detail.DeveloperID)
	}
}
