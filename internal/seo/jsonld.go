// Package seo builds page metadata and schema.org JSON-LD payloads.
package seo

import (
	"encoding/json"
	"strconv"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Restaurant returns a minimal Restaurant schema; menuURL links the Menu payload.
func Restaurant(name, url, menuURL, currency string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Restaurant",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if menuURL != "" {
		m["hasMenu"] = menuURL
	}
	if currency != "" {
		m["currenciesAccepted"] = currency
	}
	return m
}

// MenuEntry is one dish of a MenuSection.
type MenuEntry struct {
	Name        string
	Description string
	Price       float64
	Image       string
}

// MenuSection groups entries under a localized heading.
type MenuSection struct {
	Name    string
	Entries []MenuEntry
}

// Menu builds a schema.org Menu with sections and priced offers in currency.
func Menu(name, lang, currency string, sections []MenuSection) map[string]any {
	secs := make([]map[string]any, 0, len(sections))
	for _, s := range sections {
		items := make([]map[string]any, 0, len(s.Entries))
		for _, e := range s.Entries {
			item := map[string]any{
				"@type": "MenuItem",
				"name":  e.Name,
			}
			if e.Description != "" {
				item["description"] = e.Description
			}
			if e.Image != "" {
				item["image"] = e.Image
			}
			offer := map[string]any{
				"@type": "Offer",
				"price": strconv.FormatFloat(e.Price, 'f', 2, 64),
			}
			if currency != "" {
				offer["priceCurrency"] = currency
			}
			item["offers"] = offer
			items = append(items, item)
		}
		secs = append(secs, map[string]any{
			"@type":       "MenuSection",
			"name":        s.Name,
			"hasMenuItem": items,
		})
	}
	m := map[string]any{
		"@context":       "https://schema.org",
		"@type":          "Menu",
		"name":           name,
		"hasMenuSection": secs,
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
