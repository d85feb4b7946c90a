package handlers

// MenuResponse is the JSON body of GET /api/v1/menu.
type MenuResponse struct {
	Lang     string        `json:"lang"`
	Tags     string        `json:"tags"`
	Search   string        `json:"search,omitempty"`
	Count    int           `json:"count"`
	Sections []APISection  `json:"sections"`
	Filters  []APITagGroup `json:"filters"`
}

// APISection is a category with its visible items.
type APISection struct {
	Category string    `json:"category"`
	Label    string    `json:"label"`
	Items    []APIItem `json:"items"`
}

// APIItem is a localized dish.
type APIItem struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	PriceLabel  string   `json:"price_label"`
	Image       string   `json:"image,omitempty"`
	Tags        []APITag `json:"tags"`
}

// APITag is a tag reference with its localized label.
type APITag struct {
	ID       int    `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// APITagGroup is a filter block.
type APITagGroup struct {
	Label string   `json:"label"`
	Tags  []APITag `json:"tags"`
}

// BuildMenuResponse projects MenuData onto the API shape.
func BuildMenuResponse(lang string, data MenuData) MenuResponse {
	resp := MenuResponse{
		Lang:     lang,
		Tags:     data.TagsParam,
		Search:   data.Search,
		Count:    data.Count,
		Sections: make([]APISection, 0, len(data.Sections)),
		Filters:  make([]APITagGroup, 0, len(data.Groups)),
	}
	for _, s := range data.Sections {
		sec := APISection{Category: s.Key, Label: s.Label, Items: make([]APIItem, 0, len(s.Items))}
		for _, it := range s.Items {
			item := APIItem{
				Key:         it.Key,
				Name:        it.Name,
				Description: it.PlainText,
				Price:       it.Price,
				PriceLabel:  it.PriceLabel,
				Image:       it.Image,
				Tags:        make([]APITag, 0, len(it.Badges)),
			}
			for _, b := range it.Badges {
				item.Tags = append(item.Tags, APITag{ID: b.ID, Label: b.Label})
			}
			sec.Items = append(sec.Items, item)
		}
		resp.Sections = append(resp.Sections, sec)
	}
	for _, g := range data.Groups {
		group := APITagGroup{Label: g.Label, Tags: make([]APITag, 0, len(g.Tags))}
		for _, t := range g.Tags {
			group.Tags = append(group.Tags, APITag{ID: t.ID, Label: t.Label, Selected: t.Selected})
		}
		resp.Filters = append(resp.Filters, group)
	}
	return resp
}
