// Package console is the terminal storefront: a line-oriented shell over
// the catalog, cart, session and profile.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"storefront-client/internal/cart"
	"storefront-client/internal/catalog"
	"storefront-client/internal/logger"
	"storefront-client/internal/notify"
	"storefront-client/internal/product"
	"storefront-client/internal/profile"

	"github.com/google/uuid"
	"github.com/mattn/go-shellwords"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const prompt = "> "

var errQuit = errors.New("quit")

type Catalog interface {
	Load(ctx context.Context) error
	View() catalog.View
	SelectType(ctx context.Context, t string) error
	SelectCategory(ctx context.Context, c string) error
	GoToPage(ctx context.Context, n int) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	PageWindow(width int) []int
	AddToCart(ctx context.Context, id string) error
	RequestDelete(id string) (product.Product, error)
	ConfirmDelete(ctx context.Context) error
	CancelDelete()
	BeginEdit(id string) (product.Form, error)
	SubmitEdit(ctx context.Context, id string, f product.Form) error
	AddProduct(ctx context.Context, f product.Form) error
	Preview(id string) (product.Product, error)
	ClosePreview()
}

type Cart interface {
	Load(ctx context.Context) error
	Increase(ctx context.Context, productID string) error
	Decrease(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
	Items() []cart.Item
	Total() decimal.Decimal
	SetClientName(name string)
	ClientName() string
	Checkout() (cart.Summary, error)
}

type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
	Email() string
	Role() string
	Login(email string) error
	LoginWithToken(email, token string) error
	Logout(ctx context.Context) error
}

// Deps are the controllers the shell drives.
type Deps struct {
	Catalog  Catalog
	Cart     Cart
	Session  Session
	Profile  profile.Service
	Notifier notify.Notifier
}

type Option func(*Shell)

// WithColumns fixes the terminal width instead of asking the terminal.
func WithColumns(n int) Option {
	return func(s *Shell) {
		s.fixedWidth = true
		s.cols.Store(int64(n))
	}
}

// WithNarrowBelow sets the width under which the short page window is used.
func WithNarrowBelow(n int) Option {
	return func(s *Shell) { s.narrowBelow = n }
}

// WithReadFile replaces os.ReadFile for image uploads.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(s *Shell) { s.readFile = fn }
}

type Shell struct {
	in  io.Reader
	out io.Writer
	Deps

	commands    map[string]*command
	order       []string
	lines       <-chan string
	readFile    func(string) ([]byte, error)
	narrowBelow int
	fixedWidth  bool
	cols        atomic.Int64
}

func New(in io.Reader, out io.Writer, deps Deps, opts ...Option) *Shell {
	s := &Shell{
		in:          in,
		out:         out,
		Deps:        deps,
		readFile:    os.ReadFile,
		narrowBelow: 80,
	}
	if s.Notifier == nil {
		s.Notifier = notify.NewWriter(out)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.register()
	return s
}

// Run shows the catalog and reads commands until quit, end of input or ctx
// is done.
func (s *Shell) Run(ctx context.Context) error {
	stopResize := s.watchResize()
	defer stopResize()

	done := make(chan struct{})
	defer close(done)
	s.lines = readLines(s.in, done)

	fmt.Fprintln(s.out, "Storefront. Type help for commands.")
	s.exec(ctx, "products", nil)

	for {
		line, ok := s.readLine(ctx, prompt)
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			return nil
		}

		args, err := shellwords.Parse(line)
		if err != nil {
			s.Notifier.Error("Could not parse command: " + err.Error())
			continue
		}
		if len(args) == 0 {
			continue
		}
		if err := s.exec(ctx, strings.ToLower(args[0]), args[1:]); errors.Is(err, errQuit) {
			return nil
		}
	}
}

// exec runs one command with its own request id and reports its error.
func (s *Shell) exec(ctx context.Context, name string, args []string) error {
	ctx = logger.WithRequestID(ctx, uuid.NewString())
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "console"),
		zap.String("command", name),
	)

	cmd, ok := s.commands[name]
	if !ok {
		s.Notifier.Error(fmt.Sprintf("Unknown command %q, type help", name))
		return nil
	}

	err := cmd.run(ctx, args)
	if err != nil && !errors.Is(err, errQuit) {
		log.Debug("command failed", zap.Error(err))
		s.report(err)
	}
	return err
}

func (s *Shell) report(err error) {
	var verrs product.ValidationErrors
	switch {
	case errors.Is(err, catalog.ErrStaleResponse), notify.IsReported(err):
	case errors.As(err, &verrs):
		s.Notifier.Error("Please fix the form:")
		for _, f := range verrs.Fields() {
			fmt.Fprintf(s.out, "  %s: %s\n", f, verrs[f])
		}
	case errors.Is(err, errUsage):
		fmt.Fprintln(s.out, err.Error())
	default:
		s.Notifier.Error(notify.MessageOf(err, sentence(err.Error())))
	}
}

// readLine prints p and waits for a line. It reports false on end of input
// or when ctx is done.
func (s *Shell) readLine(ctx context.Context, p string) (string, bool) {
	fmt.Fprint(s.out, p)
	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return "", false
	case line, ok := <-s.lines:
		if !ok {
			fmt.Fprintln(s.out)
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-done:
				return
			}
		}
	}()
	return ch
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var _ Cart = (*cart.Controller)(nil)
