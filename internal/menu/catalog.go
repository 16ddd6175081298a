package menu

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed menu.json
var menuJSON []byte

// Choice is one selectable value within an option category. The catalog
// writes choices either as bare strings or as {value, price} objects;
// a nil Price marks the bare form.
type Choice struct {
	Value string
	Price *float64
}

func (c *Choice) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		c.Value = plain
		c.Price = nil
		return nil
	}

	var priced struct {
		Value string   `json:"value"`
		Price *float64 `json:"price"`
	}
	if err := json.Unmarshal(data, &priced); err != nil {
		return fmt.Errorf("decode menu choice: %w", err)
	}
	c.Value = priced.Value
	c.Price = priced.Price
	return nil
}

func (c Choice) MarshalJSON() ([]byte, error) {
	if c.Price == nil {
		return json.Marshal(c.Value)
	}
	return json.Marshal(struct {
		Value string   `json:"value"`
		Price *float64 `json:"price"`
	}{c.Value, c.Price})
}

type Item struct {
	Name               string              `json:"name"`
	Slug               string              `json:"slug"`
	Price              *float64            `json:"price,omitempty"`
	Options            map[string][]Choice `json:"options,omitempty"`
	CollapsibleOptions map[string]string   `json:"collapsibleOptions,omitempty"`
	Extras             []string            `json:"extras,omitempty"`
}

// Fields that never hold a nested category, skipped during the catalog walk.
var skipFields = map[string]bool{
	"title":       true,
	"description": true,
	"name":        true,
	"price":       true,
}

// Catalog is the read-only menu: sections nest categories to arbitrary
// depth, and any node may carry an "items" array.
type Catalog struct {
	raw    json.RawMessage
	items  []Item
	bySlug map[string]*Item
}

func Load() (*Catalog, error) {
	return Parse(menuJSON)
}

func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{
		raw:    json.RawMessage(data),
		bySlug: make(map[string]*Item),
	}
	if err := c.walk(data); err != nil {
		return nil, err
	}
	sort.Slice(c.items, func(i, j int) bool { return c.items[i].Name < c.items[j].Name })
	for i := range c.items {
		c.bySlug[c.items[i].Slug] = &c.items[i]
	}
	return c, nil
}

func (c *Catalog) walk(node json.RawMessage) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(node, &obj); err != nil {
		// Leaf value, nothing to descend into.
		return nil
	}

	if rawItems, ok := obj["items"]; ok {
		var items []Item
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return fmt.Errorf("decode menu items: %w", err)
		}
		for _, item := range items {
			if item.Slug == "" {
				return fmt.Errorf("menu item %q has no slug", item.Name)
			}
			if _, dup := c.bySlug[item.Slug]; dup {
				return fmt.Errorf("duplicate menu slug %q", item.Slug)
			}
			c.bySlug[item.Slug] = &Item{}
			c.items = append(c.items, item)
		}
	}

	for key, child := range obj {
		if key == "items" || skipFields[key] {
			continue
		}
		if err := c.walk(child); err != nil {
			return err
		}
	}
	return nil
}

// FindBySlug returns the item for a catalog key, or false when absent.
func (c *Catalog) FindBySlug(slug string) (*Item, bool) {
	item, ok := c.bySlug[slug]
	return item, ok
}

// Items lists every item in the catalog, sorted by name.
func (c *Catalog) Items() []Item {
	return c.items
}

// Raw returns the catalog exactly as authored, for serving to clients.
func (c *Catalog) Raw() json.RawMessage {
	return c.raw
}

// DefaultOptions picks the initial selection for an item: the collapsible
// default when one is declared for the category, else the first choice.
func DefaultOptions(item *Item) map[string]string {
	if item == nil || len(item.Options) == 0 {
		return map[string]string{}
	}

	defaults := make(map[string]string, len(item.Options))
	for category, choices := range item.Options {
		if len(choices) == 0 {
			continue
		}
		if def, ok := item.CollapsibleOptions[category]; ok {
			defaults[category] = def
			continue
		}
		defaults[category] = choices[0].Value
	}
	return defaults
}
