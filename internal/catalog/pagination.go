package catalog

import (
	"context"

	"storefront-client/internal/product"
)

// GoToPage shows page n, clamped to the known page range. Unfiltered pages
// come from the backend; filtered pages are sliced from the loaded set.
func (c *Controller) GoToPage(ctx context.Context, n int) error {
	c.mu.Lock()
	n = clamp(n, 1, c.totalPages)
	switch c.sel.(type) {
	case Unfiltered:
		c.mu.Unlock()
		return c.run(ctx, "GoToPage", Unfiltered{}, n)
	case Filtered:
		c.page = n
		c.mu.Unlock()
		return nil
	default:
		c.mu.Unlock()
		panic("catalog: unknown selection")
	}
}

func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	n := c.page + 1
	last := n > c.totalPages
	c.mu.Unlock()
	if last {
		return nil
	}
	return c.GoToPage(ctx, n)
}

func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	n := c.page - 1
	c.mu.Unlock()
	if n < 1 {
		return nil
	}
	return c.GoToPage(ctx, n)
}

// PageWindow returns the page numbers to display around the current page.
func (c *Controller) PageWindow(width int) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Window(c.page, c.totalPages, width)
}

// visible returns the slice of raw on screen. Caller holds c.mu.
func (c *Controller) visible() []product.Product {
	switch c.sel.(type) {
	case Unfiltered:
		n := min(len(c.raw), PageSize)
		return append([]product.Product(nil), c.raw[:n]...)
	case Filtered:
		start := (c.page - 1) * PageSize
		if start >= len(c.raw) {
			return []product.Product{}
		}
		end := min(start+PageSize, len(c.raw))
		return append([]product.Product(nil), c.raw[start:end]...)
	default:
		panic("catalog: unknown selection")
	}
}

// reclamp recomputes the page count from totalCount after the raw set
// changed size and pulls page back into range. Caller holds c.mu.
func (c *Controller) reclamp() (moved bool) {
	c.totalPages = pagesFor(c.totalCount)
	n := clamp(c.page, 1, c.totalPages)
	moved = n != c.page
	c.page = n
	return moved
}

func pagesFor(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + PageSize - 1) / PageSize
}
