package console

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"storefront-client/internal/cart"
	"storefront-client/internal/catalog"
	"storefront-client/internal/product"
	"storefront-client/internal/profile"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func (s *Shell) sessionLine() string {
	if !s.Session.IsAuthenticated() {
		return "Not logged in"
	}
	line := "Logged in as " + s.Session.Email()
	if r := s.Session.Role(); r != "" {
		line += " (" + r + ")"
	}
	return line
}

func (s *Shell) renderCatalog() {
	v := s.Catalog.View()

	fmt.Fprintf(s.out, "\n%s\n", s.sessionLine())
	fmt.Fprintf(s.out, "Type: %s   Category: %s\n", orAll(v.SelectedType), orAll(v.SelectedCategory))
	if len(v.Types) > 0 {
		fmt.Fprintf(s.out, "Types: %s\n", strings.Join(v.Types, ", "))
	}
	if len(v.Categories) > 0 {
		fmt.Fprintf(s.out, "Categories: %s\n", strings.Join(v.Categories, ", "))
	}
	fmt.Fprintln(s.out)

	switch {
	case v.Loading:
		fmt.Fprintln(s.out, "Loading products...")
		return
	case v.Empty():
		fmt.Fprintln(s.out, "No products found.")
		return
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSKU\tTYPE\tCATEGORY\tPRICE")
	for _, p := range v.Products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.SKU, p.Type, p.Category, money(p.Price))
	}
	_ = tw.Flush()

	fmt.Fprintf(s.out, "\n%s\n", s.pager(v))
}

// pager renders the page window with the current page bracketed.
func (s *Shell) pager(v catalog.View) string {
	width := catalog.WidthFor(s.columns(), s.narrowBelow)
	pages := s.Catalog.PageWindow(width)

	parts := make([]string, 0, len(pages))
	for _, n := range pages {
		if n == v.Page {
			parts = append(parts, "["+strconv.Itoa(n)+"]")
			continue
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return fmt.Sprintf("Page %s of %d (%d products)", strings.Join(parts, " "), v.TotalPages, v.TotalCount)
}

func (s *Shell) renderPreview(p product.Product) {
	fmt.Fprintf(s.out, "%s  %s\n", p.Title, money(p.Price))
	if p.ImageRef == "" {
		fmt.Fprintln(s.out, "Image: none")
		return
	}
	fmt.Fprintf(s.out, "Image: %s\n", p.ImageRef)
}

func (s *Shell) renderCart() {
	items := s.Cart.Items()

	fmt.Fprintln(s.out, "\nYour Cart")
	if name := s.Cart.ClientName(); name != "" {
		fmt.Fprintf(s.out, "Client: %s\n", name)
	}
	if len(items) == 0 {
		fmt.Fprintln(s.out, "Your cart is empty.")
		return
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.ProductID, it.ItemName, it.Quantity, money(it.Price), money(it.Subtotal()))
	}
	_ = tw.Flush()
	fmt.Fprintf(s.out, "Total: %s\n", money(s.Cart.Total()))
}

func (s *Shell) renderSummary(sum cart.Summary) {
	units := 0
	for _, it := range sum.Items {
		units += it.Quantity
	}
	fmt.Fprintf(s.out, "Order for %s: %d items, total %s\n", sum.ClientName, units, money(sum.Total))
}

func (s *Shell) renderProfile(p profile.Profile) {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	fmt.Fprintf(tw, "Email\t%s\n", p.Email)
	if p.Phone != "" {
		fmt.Fprintf(tw, "Phone\t%s\n", p.Phone)
	}
	fmt.Fprintf(tw, "Role\t%s\n", p.Role)
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Member since\t%s\n", p.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintf(tw, "Avatar\t%s\n", p.AvatarURL())
	_ = tw.Flush()
}

func (s *Shell) renderHelp() {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, name := range s.order {
		c := s.commands[name]
		note := ""
		switch c.access {
		case member:
			note = " (login)"
		case admin:
			note = " (admin)"
		}
		fmt.Fprintf(tw, "%s %s\t%s%s\n", c.name, c.usage, c.help, note)
	}
	_ = tw.Flush()
	fmt.Fprintf(s.out, "Known types: %s\n", strings.Join(product.KnownTypes, ", "))
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
