// Package catalog holds the product listing view state: which products are
// loaded, which filter is active and which page is shown.
package catalog

import (
	"context"
	"errors"
	"sync"

	"storefront-client/internal/logger"
	"storefront-client/internal/notify"
	"storefront-client/internal/product"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	PageSize = 20
	// FacetScanSize is the listing size used to derive the category and type
	// vocabulary, and to fetch everything when only a category is selected.
	// The backend has no facet endpoint, so this is a full scan.
	FacetScanSize = 1000
)

const msgFetchFailed = "Failed to fetch products"

// View is a snapshot of the listing for rendering.
type View struct {
	Products         []product.Product
	Page             int
	PageSize         int
	TotalCount       int
	TotalPages       int
	Categories       []string
	Types            []string
	SelectedType     string
	SelectedCategory string
	State            State
	Loading          bool
	Preview          *product.Product
	PendingDelete    string
}

// Empty reports a finished load that produced nothing to show.
func (v View) Empty() bool {
	return !v.Loading && len(v.Products) == 0
}

type Controller struct {
	backend  Backend
	cart     CartAdder
	notifier notify.Notifier

	mu sync.Mutex
	// sel is the selection the loaded data belongs to; want is the latest
	// requested one, which may still be in flight.
	sel  Selection
	want Selection
	// raw is the current server page in Unfiltered mode and the complete
	// filtered set in Filtered mode.
	raw           []product.Product
	page          int
	totalCount    int
	totalPages    int
	facets        product.Facets
	loading       bool
	gen           uint64
	pendingDelete string
	preview       *product.Product
}

func New(backend Backend, cart CartAdder, notifier notify.Notifier) *Controller {
	return &Controller{
		backend:    backend,
		cart:       cart,
		notifier:   notifier,
		sel:        Unfiltered{},
		want:       Unfiltered{},
		page:       1,
		totalPages: 1,
	}
}

// Load fetches the current selection and page again.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	sel, page := c.want, c.page
	c.mu.Unlock()

	return c.run(ctx, "Load", sel, page)
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Products:         c.visible(),
		Page:             c.page,
		PageSize:         PageSize,
		TotalCount:       c.totalCount,
		TotalPages:       c.totalPages,
		Categories:       append([]string(nil), c.facets.Categories...),
		Types:            append([]string(nil), c.facets.Types...),
		SelectedType:     typeOf(c.sel),
		SelectedCategory: categoryOf(c.sel),
		State:            stateOf(c.sel),
		Loading:          c.loading,
		PendingDelete:    c.pendingDelete,
	}
	if c.preview != nil {
		p := *c.preview
		v.Preview = &p
	}
	return v
}

// Loading reports whether the latest fetch is still in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

type result struct {
	sel        Selection
	raw        []product.Product
	page       int
	totalCount int
	totalPages int
	facets     product.Facets
	// keepTypes keeps the known type vocabulary; a type filtered set only
	// carries its own type.
	keepTypes bool
}

// run fetches sel at page and applies the result unless a newer request
// was issued meanwhile. Failures keep the previous state.
func (c *Controller) run(ctx context.Context, op string, sel Selection, page int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "catalog"),
		zap.String("method", op),
		zap.String("state", string(stateOf(sel))),
		zap.Int("page", page),
	)

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.want = sel
	c.loading = true
	c.mu.Unlock()

	res, err := c.fetch(ctx, sel, page)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		log.Debug("dropping superseded response", zap.Uint64("generation", gen), zap.Uint64("latest", c.gen))
		return ErrStaleResponse
	}
	c.loading = false

	if err != nil {
		c.want = c.sel
		log.Error("failed to fetch products", zap.Error(err))
		c.notifier.Error(msgFetchFailed)
		return notify.Reported(err)
	}

	if res.keepTypes && len(c.facets.Types) > 0 {
		res.facets.Types = c.facets.Types
	}

	c.sel = res.sel
	c.raw = res.raw
	c.page = res.page
	c.totalCount = res.totalCount
	c.totalPages = res.totalPages
	c.facets = res.facets
	if c.preview != nil && product.IndexByID(c.raw, c.preview.ID) < 0 {
		c.preview = nil
	}

	log.Info("products loaded",
		zap.Int("count", len(res.raw)),
		zap.Int("total", res.totalCount),
		zap.Int("total_pages", res.totalPages),
	)
	return nil
}

func (c *Controller) fetch(ctx context.Context, sel Selection, page int) (result, error) {
	switch s := sel.(type) {
	case Unfiltered:
		return c.fetchPage(ctx, page)
	case Filtered:
		var (
			set []product.Product
			err error
		)
		if s.Type != "" {
			set, err = c.fetchByType(ctx, s.Type)
		} else {
			set, err = c.fetchAll(ctx)
		}
		if err != nil {
			return result{}, err
		}
		facets := product.FacetsOf(set)
		if s.Category != "" {
			set = product.FilterByCategory(set, s.Category)
		}

		total := len(set)
		pages := pagesFor(total)
		return result{
			sel:        s,
			raw:        set,
			page:       clamp(page, 1, pages),
			totalCount: total,
			totalPages: pages,
			facets:     facets,
			keepTypes:  s.Type != "",
		}, nil
	default:
		return result{}, errors.New("catalog: unknown selection")
	}
}

// fetchPage loads one server page and, alongside it, the facet scan. Both
// must succeed for anything to be applied.
func (c *Controller) fetchPage(ctx context.Context, page int) (result, error) {
	if page < 1 {
		page = 1
	}

	var pg, scan product.Page
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pg, err = c.backend.ListProducts(gctx, page, PageSize)
		return err
	})
	g.Go(func() error {
		var err error
		scan, err = c.backend.ListProducts(gctx, 1, FacetScanSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return result{}, err
	}

	pages := pg.TotalPages
	if pages < 1 {
		pages = pagesFor(pg.TotalCount)
	}
	// The catalog shrank below the requested page; load the last one instead.
	if last := clamp(page, 1, pages); last != page {
		var err error
		if pg, err = c.backend.ListProducts(ctx, last, PageSize); err != nil {
			return result{}, err
		}
		page = last
		if pg.TotalPages >= 1 {
			pages = pg.TotalPages
		} else {
			pages = pagesFor(pg.TotalCount)
		}
		page = clamp(page, 1, pages)
	}
	return result{
		sel:        Unfiltered{},
		raw:        pg.Products,
		page:       page,
		totalCount: pg.TotalCount,
		totalPages: pages,
		facets:     product.FacetsOf(scan.Products),
	}, nil
}

func (c *Controller) fetchAll(ctx context.Context) ([]product.Product, error) {
	pg, err := c.backend.ListProducts(ctx, 1, FacetScanSize)
	if err != nil {
		return nil, err
	}
	return pg.Products, nil
}

func (c *Controller) fetchByType(ctx context.Context, t string) ([]product.Product, error) {
	return c.backend.FilterByType(ctx, t)
}
