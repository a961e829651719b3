package domain

import (
	"sort"
	"strconv"
	"strings"
)

// AddOn is an optional named, priced modifier attached to a cart line.
type AddOn struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Attachments carries freeform customer notes on a cart line. They are not
// part of the line identity.
type Attachments struct {
	Images []string `json:"images,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// Empty reports whether there is nothing worth sending upstream.
func (a Attachments) Empty() bool {
	return len(a.Images) == 0 && strings.TrimSpace(a.Text) == ""
}

// CartLine is one product+add-ons+quantity entry in a cart.
type CartLine struct {
	ProductID   int64        `json:"productId"`
	Name        string       `json:"name,omitempty"`
	Quantity    int          `json:"quantity"`
	UnitPrice   float64      `json:"price"`
	Image       string       `json:"image,omitempty"`
	AddOns      []AddOn      `json:"addOns,omitempty"`
	Attachments *Attachments `json:"attachments,omitempty"`
}

// LineKey identifies a cart line: same product and same set of add-on names
// means the same line, regardless of add-on order.
type LineKey string

// KeyFor derives the identity key for a product and its add-ons.
func KeyFor(productID int64, addOns []AddOn) LineKey {
	if len(addOns) == 0 {
		return LineKey(strconv.FormatInt(productID, 10))
	}
	names := make([]string, 0, len(addOns))
	for _, a := range addOns {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return LineKey(strconv.FormatInt(productID, 10) + "|" + strings.Join(names, "|"))
}

// Key returns the line's identity key.
func (l CartLine) Key() LineKey {
	return KeyFor(l.ProductID, l.AddOns)
}

// AddOnsTotal sums the per-unit price of the line's add-ons.
func (l CartLine) AddOnsTotal() float64 {
	var total float64
	for _, a := range l.AddOns {
		total += a.Price
	}
	return total
}

// Total is the line total: unit price plus add-ons, times quantity.
func (l CartLine) Total() float64 {
	return (l.UnitPrice + l.AddOnsTotal()) * float64(l.Quantity)
}

// MergeLine folds an incoming line into the given cart. Lines with the same
// identity key collapse into one by summing quantities; price and image are
// refreshed only with non-zero / non-empty values so a failed lookup never
// clobbers known data. Distinct add-on sets stay distinct lines.
func MergeLine(lines []CartLine, incoming CartLine) []CartLine {
	key := incoming.Key()
	for i := range lines {
		if lines[i].Key() != key {
			continue
		}
		lines[i].Quantity += incoming.Quantity
		if incoming.UnitPrice > 0 {
			lines[i].UnitPrice = incoming.UnitPrice
		}
		if incoming.Image != "" {
			lines[i].Image = incoming.Image
		}
		if incoming.Name != "" {
			lines[i].Name = incoming.Name
		}
		if incoming.Attachments != nil && !incoming.Attachments.Empty() {
			lines[i].Attachments = incoming.Attachments
		}
		return lines
	}
	return append(lines, incoming)
}
