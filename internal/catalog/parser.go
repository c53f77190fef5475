package catalog

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/soheilrt/play-scraper/internal/model"
)

// CSS selectors for the store's listing markup. The class soup is what the
// store actually serves; when Google reshuffles the markup these are the
// only lines that need to change.
const (
	categoryLinkSelector = `div[id*="action-dropdown-children"] a[href*="category"]`
	clusterLinkSelector  = `c-wiz > c-wiz > div > div.Z3lOXb > div.xwY9Zc > a`
	listItemSelector     = `div.ZmHEEd > div > c-wiz > div > div > div.uzcko > div > div > a`
	listItemPromo        = `div.vU6FJ.HPtqMb > div > div.b8cIId.ReQCgd.KdSQre.fmVS2c > a`
	overlayItemSelector  = `span.preview-overlay-container`
	cardItemSelector     = `div.p63iDd > a`
)

// parseCategories extracts the category list from the store front page.
// Age-segmented family links collapse into the single FAMILY category, and
// promotional links outside /store/apps/category/ are ignored.
func parseCategories(body []byte, baseURL string) ([]model.Category, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	seen := make(map[string]struct{})
	categories := make([]model.Category, 0)

	doc.Find(categoryLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := base.ResolveReference(ref)

		id := full.Path[strings.LastIndex(full.Path, "/")+1:]
		name := strings.TrimSpace(sel.Text())

		// Age-segmented family pages share one category.
		if full.Query().Get("age") != "" {
			id = "FAMILY"
			name = "Family"
			full.RawQuery = ""
		}

		if !strings.Contains(full.Path, "/store/apps/category/") {
			return
		}
		if _, dup := seen[id]; dup || id == "" {
			return
		}
		seen[id] = struct{}{}

		categories = append(categories, model.Category{
			ID:   id,
			Name: name,
			URL:  full.String(),
		})
	})

	return categories, nil
}

// parseClusters extracts the cluster headings and handles from a category
// page. Entries without a handle are skipped.
func parseClusters(body []byte) ([]model.Cluster, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	clusters := make([]model.Cluster, 0)
	doc.Find(clusterLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		handle := queryParam(href, "gsr")
		if handle == "" {
			return
		}
		clusters = append(clusters, model.Cluster{
			Title:  strings.TrimSpace(sel.Find("h2").Text()),
			Handle: handle,
		})
	})

	return clusters, nil
}

// parseItemIDs extracts app ids from any listing page (category, cluster,
// similar, developer). The store serves several listing layouts; each
// selector is tried in turn until one yields results.
func parseItemIDs(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	fromHrefs := func(selector string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if href, ok := sel.Attr("href"); ok {
				add(queryParam(href, "id"))
			}
		})
	}

	// Overlay spans carry the id directly in a data attribute.
	doc.Find(overlayItemSelector).Each(func(_ int, sel *goquery.Selection) {
		if id, ok := sel.Attr("data-docid"); ok {
			add(id)
		}
	})

	for _, selector := range []string{listItemSelector, listItemPromo, cardItemSelector} {
		if len(ids) > 0 {
			break
		}
		fromHrefs(selector)
	}

	return ids, nil
}

// parseAppDetail extracts a structured record from a detail page. The
// caller fills in AppID and URL; everything here is optional and left
// empty when the page does not expose it.
func parseAppDetail(body []byte) (*model.AppDetail, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	detail := &model.AppDetail{}

	detail.Title = strings.TrimSpace(doc.Find(`h1[itemprop="name"]`).First().Text())
	if detail.Title == "" {
		detail.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	// The developer link carries both the display name and, when present,
	// the developer id in its query string.
	devLink := doc.Find(`a[href*="/store/apps/dev"]`).First()
	detail.DeveloperName = strings.TrimSpace(devLink.Text())
	if href, ok := devLink.Attr("href"); ok {
		detail.DeveloperID = queryParam(href, "id")
	}

	doc.Find(`a[itemprop="genre"]`).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			id := href[strings.LastIndex(href, "/")+1:]
			if cut := strings.IndexByte(id, '?'); cut >= 0 {
				id = id[:cut]
			}
			if id != "" {
				detail.CategoryIDs = append(detail.CategoryIDs, id)
			}
		}
	})

	detail.Description = strings.TrimSpace(doc.Find(`div[itemprop="description"]`).First().Text())
	if icon, ok := doc.Find(`img[itemprop="image"]`).First().Attr("src"); ok {
		detail.IconURL = icon
	}
	detail.Score = strings.TrimSpace(doc.Find(`div[itemprop="starRating"]`).First().Text())
	detail.ContentRating = strings.TrimSpace(doc.Find(`div[itemprop="contentRating"]`).First().Text())

	if price, ok := doc.Find(`meta[itemprop="price"]`).First().Attr("content"); ok {
		detail.Price = price
	}
	detail.Free = detail.Price == "" || detail.Price == "0"

	return detail, nil
}
