package catalog

import (
	"context"
	"strings"
)

// SelectType switches the type filter. Any category selection is dropped;
// the empty type returns to the server-paginated listing.
func (c *Controller) SelectType(ctx context.Context, t string) error {
	t = strings.TrimSpace(t)
	return c.run(ctx, "SelectType", newSelection(t, ""), 1)
}

// SelectCategory narrows the current type selection, or the whole catalog
// when no type is selected. The empty category keeps the type alone.
func (c *Controller) SelectCategory(ctx context.Context, category string) error {
	category = strings.TrimSpace(category)

	c.mu.Lock()
	t := typeOf(c.want)
	c.mu.Unlock()

	return c.run(ctx, "SelectCategory", newSelection(t, category), 1)
}

// ClearFilters is SelectType("").
func (c *Controller) ClearFilters(ctx context.Context) error {
	return c.SelectType(ctx, "")
}

// Selection returns the selection the shown data belongs to.
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel
}
