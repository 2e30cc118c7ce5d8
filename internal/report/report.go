// Package report renders search results for people and programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

// NoResultText is printed when no candidate is admissible
const NoResultText = "No valid mix found."

// View is the serialized form of a result
type View struct {
	Found      bool          `json:"found"`
	BaseItem   string        `json:"base_item,omitempty"`
	Modifiers  []string      `json:"modifiers,omitempty"`
	Cost       int64         `json:"cost"`
	SellPrice  int64         `json:"sell_price"`
	Profit     int64         `json:"profit"`
	Properties []string      `json:"properties,omitempty"`
	Multiplier float64       `json:"multiplier"`
	Stats      *search.Stats `json:"stats,omitempty"`
}

// NewView flattens res. A nil result gives a view with Found false.
func NewView(res *search.Result) View {
	if res == nil {
		return View{}
	}
	v := View{
		Found:      true,
		BaseItem:   res.BaseItem.Name,
		Modifiers:  modifierNames(res.Modifiers),
		Cost:       res.Cost,
		SellPrice:  res.SellPrice,
		Profit:     res.Profit,
		Properties: propertyNames(res.Properties),
		Multiplier: res.Multiplier,
	}
	if res.Stats.Candidates > 0 {
		stats := res.Stats
		v.Stats = &stats
	}
	return v
}

// WriteJSON writes res as indented JSON
func WriteJSON(w io.Writer, res *search.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewView(res))
}

// WriteText writes res as an aligned, human-readable block
func WriteText(w io.Writer, res *search.Result) error {
	if res == nil {
		_, err := fmt.Fprintln(w, NoResultText)
		return err
	}

	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	p.Fprintf(tw, "Base item:\t%s\n", res.BaseItem.Name)
	p.Fprintf(tw, "Ingredients:\t%s\n", strings.Join(modifierNames(res.Modifiers), ", "))
	p.Fprintf(tw, "Cost:\t%d\n", res.Cost)
	p.Fprintf(tw, "Sell price:\t%d\n", res.SellPrice)
	p.Fprintf(tw, "Profit:\t%d\n", res.Profit)
	p.Fprintf(tw, "Effects:\t%s\n", strings.Join(propertyNames(res.Properties), ", "))
	p.Fprintf(tw, "Multiplier:\t%.2f\n", res.Multiplier)
	if err := tw.Flush(); err != nil {
		return err
	}

	if s := res.Stats; s.Candidates > 0 {
		_, err := p.Fprintf(w, "\nEvaluated %d of %d candidates (%d admitted) over %d partitions on %d workers in %s\n",
			s.Evaluated, s.Candidates, s.Admitted, s.Partitions, s.Workers, s.Elapsed.Round(time.Millisecond))
		return err
	}
	return nil
}

// Catalog lists the reference data a search can use
type Catalog interface {
	Properties() []domain.Property
	BaseItems() []domain.BaseItem
	Modifiers() []domain.Modifier
	Property(id domain.PropertyID) (domain.Property, bool)
}

// WriteCatalog writes base items, modifiers and properties as tables
func WriteCatalog(w io.Writer, c Catalog) error {
	p := message.NewPrinter(language.English)
	name := func(id domain.PropertyID) string {
		if prop, ok := c.Property(id); ok {
			return prop.Name
		}
		return "?"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	p.Fprintln(tw, "BASE ITEM\tSELL\tTIER\tPROPERTY")
	for _, b := range c.BaseItems() {
		inherent := "-"
		if b.InherentProperty != nil {
			inherent = name(*b.InherentProperty)
		}
		p.Fprintf(tw, "%s\t%d\t%d\t%s\n", b.Name, b.BaseSellValue, b.UnlockTier, inherent)
	}

	p.Fprintln(tw, "\nMODIFIER\tPRICE\tTIER\tADDS\tREPLACES")
	for _, m := range c.Modifiers() {
		reps := make([]string, len(m.Replacements))
		for i, r := range m.Replacements {
			reps[i] = name(r.From) + " -> " + name(r.To)
		}
		p.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", m.Name, m.BuyPrice, m.UnlockTier, name(m.AddsProperty), strings.Join(reps, ", "))
	}

	p.Fprintln(tw, "\nPROPERTY\tMULTIPLIER")
	for _, prop := range c.Properties() {
		p.Fprintf(tw, "%s\t%.2f\n", prop.Name, prop.Multiplier)
	}

	return tw.Flush()
}

func modifierNames(mods []domain.Modifier) []string {
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name
	}
	return names
}

func propertyNames(props []domain.Property) []string {
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	return names
}
