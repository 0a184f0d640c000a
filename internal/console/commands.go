package console

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"storefront-client/internal/auth"
	"storefront-client/internal/catalog"
	"storefront-client/internal/product"
)

var errUsage = errors.New("usage")

type access int

const (
	public access = iota
	member
	admin
)

type command struct {
	name   string
	usage  string
	help   string
	access access
	run    func(ctx context.Context, args []string) error
}

func usage(c *command) error {
	return fmt.Errorf("%w: %s %s", errUsage, c.name, c.usage)
}

func (s *Shell) register() {
	s.commands = map[string]*command{}
	add := func(c command, aliases ...string) {
		cmd := &c
		run := cmd.run
		cmd.run = func(ctx context.Context, args []string) error {
			if err := s.allow(cmd.access); err != nil {
				return err
			}
			return run(ctx, args)
		}
		s.commands[c.name] = cmd
		s.order = append(s.order, c.name)
		for _, a := range aliases {
			s.commands[a] = cmd
		}
	}

	add(command{name: "products", help: "reload and show the catalog", run: s.cmdProducts}, "ls")
	add(command{name: "type", usage: "<type|->", help: "filter by type, - clears every filter", run: s.cmdType})
	add(command{name: "category", usage: "<category|->", help: "filter by category, - clears it", run: s.cmdCategory})
	add(command{name: "page", usage: "<n>", help: "go to page n", run: s.cmdPage})
	add(command{name: "next", help: "next page", run: s.cmdNext})
	add(command{name: "prev", help: "previous page", run: s.cmdPrev})
	add(command{name: "preview", usage: "<id|->", help: "show a product image, - closes it", run: s.cmdPreview})
	add(command{name: "add", usage: "<id>", help: "add one unit to the cart", access: member, run: s.cmdAdd})
	add(command{name: "cart", help: "show the cart", access: member, run: s.cmdCart})
	add(command{name: "inc", usage: "<id>", help: "increase a cart quantity", access: member, run: s.cmdInc})
	add(command{name: "dec", usage: "<id>", help: "decrease a cart quantity", access: member, run: s.cmdDec})
	add(command{name: "rm", usage: "<id>", help: "remove a cart line", access: member, run: s.cmdRemove})
	add(command{name: "name", usage: "<client name>", help: "set the name for the order", access: member, run: s.cmdName})
	add(command{name: "checkout", help: "summarise the order", access: member, run: s.cmdCheckout})
	add(command{name: "login", usage: "<email> [token]", help: "log in, optionally with an access token", run: s.cmdLogin})
	add(command{name: "logout", help: "log out", access: member, run: s.cmdLogout})
	add(command{name: "whoami", help: "show the session", run: s.cmdWhoami})
	add(command{name: "profile", help: "show your profile", access: member, run: s.cmdProfile})
	add(command{
		name:   "admin",
		usage:  "delete <id> | edit <id> field=value... | add field=value... image=<path>",
		help:   "manage products",
		access: admin,
		run:    s.cmdAdmin,
	})
	add(command{name: "help", help: "this list", run: s.cmdHelp}, "?")
	add(command{name: "quit", help: "leave", run: func(context.Context, []string) error { return errQuit }}, "exit")
}

func (s *Shell) allow(a access) error {
	switch a {
	case member:
		return auth.Require(s.Session)
	case admin:
		return auth.RequireAdmin(s.Session)
	default:
		return nil
	}
}

// --- catalog ---

func (s *Shell) cmdProducts(ctx context.Context, _ []string) error {
	err := s.Catalog.Load(ctx)
	s.renderCatalog()
	return err
}

func (s *Shell) cmdType(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage(s.commands["type"])
	}
	err := s.Catalog.SelectType(ctx, clearArg(args[0]))
	s.renderCatalog()
	return err
}

func (s *Shell) cmdCategory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage(s.commands["category"])
	}
	err := s.Catalog.SelectCategory(ctx, clearArg(strings.Join(args, " ")))
	s.renderCatalog()
	return err
}

func (s *Shell) cmdPage(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage(s.commands["page"])
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return usage(s.commands["page"])
	}
	err = s.Catalog.GoToPage(ctx, n)
	s.renderCatalog()
	return err
}

func (s *Shell) cmdNext(ctx context.Context, _ []string) error {
	err := s.Catalog.NextPage(ctx)
	s.renderCatalog()
	return err
}

func (s *Shell) cmdPrev(ctx context.Context, _ []string) error {
	err := s.Catalog.PrevPage(ctx)
	s.renderCatalog()
	return err
}

func (s *Shell) cmdPreview(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage(s.commands["preview"])
	}
	if args[0] == "-" {
		s.Catalog.ClosePreview()
		return nil
	}
	p, err := s.Catalog.Preview(args[0])
	if err != nil {
		return err
	}
	s.renderPreview(p)
	return nil
}

func (s *Shell) cmdAdd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage(s.commands["add"])
	}
	return s.Catalog.AddToCart(ctx, args[0])
}

// --- cart ---

func (s *Shell) cmdCart(ctx context.Context, _ []string) error {
	if err := s.Cart.Load(ctx); err != nil {
		return err
	}
	s.renderCart()
	return nil
}

func (s *Shell) cartOp(ctx context.Context, name string, args []string, op func(context.Context, string) error) error {
	if len(args) != 1 {
		return usage(s.commands[name])
	}
	if err := op(ctx, args[0]); err != nil {
		return err
	}
	s.renderCart()
	return nil
}

func (s *Shell) cmdInc(ctx context.Context, args []string) error {
	return s.cartOp(ctx, "inc", args, s.Cart.Increase)
}

func (s *Shell) cmdDec(ctx context.Context, args []string) error {
	return s.cartOp(ctx, "dec", args, s.Cart.Decrease)
}

func (s *Shell) cmdRemove(ctx context.Context, args []string) error {
	return s.cartOp(ctx, "rm", args, s.Cart.Remove)
}

func (s *Shell) cmdName(_ context.Context, args []string) error {
	s.Cart.SetClientName(strings.Join(args, " "))
	if s.Cart.ClientName() == "" {
		fmt.Fprintln(s.out, "Client name cleared.")
		return nil
	}
	fmt.Fprintf(s.out, "Client name: %s\n", s.Cart.ClientName())
	return nil
}

func (s *Shell) cmdCheckout(_ context.Context, _ []string) error {
	sum, err := s.Cart.Checkout()
	if err != nil {
		return err
	}
	s.renderSummary(sum)
	return nil
}

// --- session ---

func (s *Shell) cmdLogin(_ context.Context, args []string) error {
	var err error
	switch len(args) {
	case 1:
		err = s.Session.Login(args[0])
	case 2:
		err = s.Session.LoginWithToken(args[0], args[1])
	default:
		return usage(s.commands["login"])
	}
	if auth.IsExpired(err) {
		return auth.ErrTokenExpired
	}
	if err != nil {
		return err
	}
	s.Notifier.Success("Logged in as " + s.Session.Email())
	return nil
}

func (s *Shell) cmdLogout(ctx context.Context, _ []string) error {
	if err := s.Session.Logout(ctx); err != nil {
		s.Notifier.Error("Logged out locally, the server did not confirm")
		return nil
	}
	s.Notifier.Success("Logged out")
	return nil
}

func (s *Shell) cmdWhoami(_ context.Context, _ []string) error {
	fmt.Fprintln(s.out, s.sessionLine())
	return nil
}

func (s *Shell) cmdProfile(ctx context.Context, _ []string) error {
	if s.Profile == nil {
		return errors.New("profile is not available")
	}
	p, err := s.Profile.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	s.renderProfile(p)
	return nil
}

// --- admin ---

func (s *Shell) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage(s.commands["admin"])
	}
	switch sub, rest := args[0], args[1:]; sub {
	case "delete", "rm":
		if len(rest) != 1 {
			return usage(s.commands["admin"])
		}
		return s.adminDelete(ctx, rest[0])
	case "edit":
		if len(rest) < 2 {
			return usage(s.commands["admin"])
		}
		return s.adminEdit(ctx, rest[0], rest[1:])
	case "add":
		if len(rest) == 0 {
			return usage(s.commands["admin"])
		}
		return s.adminAdd(ctx, rest)
	default:
		return usage(s.commands["admin"])
	}
}

func (s *Shell) adminDelete(ctx context.Context, id string) error {
	p, err := s.Catalog.RequestDelete(id)
	if err != nil {
		return err
	}

	answer, ok := s.readLine(ctx, fmt.Sprintf("Delete %q (%s)? [y/N] ", p.Title, p.ID))
	if !ok || !yes(answer) {
		s.Catalog.CancelDelete()
		fmt.Fprintln(s.out, "Cancelled.")
		return nil
	}

	err = s.Catalog.ConfirmDelete(ctx)
	s.renderCatalog()
	return err
}

func (s *Shell) adminEdit(ctx context.Context, id string, pairs []string) error {
	f, err := s.Catalog.BeginEdit(id)
	if err != nil {
		return err
	}
	if err := s.applyPairs(&f, pairs); err != nil {
		return err
	}
	if err := s.Catalog.SubmitEdit(ctx, id, f); err != nil {
		return err
	}
	s.renderCatalog()
	return nil
}

func (s *Shell) adminAdd(ctx context.Context, pairs []string) error {
	var f product.Form
	if err := s.applyPairs(&f, pairs); err != nil {
		return err
	}
	if err := s.Catalog.AddProduct(ctx, f); err != nil {
		return err
	}
	s.renderCatalog()
	return nil
}

// applyPairs sets form fields from field=value words. image=<path> loads
// the file to upload.
func (s *Shell) applyPairs(f *product.Form, pairs []string) error {
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%w: expected field=value, got %q", errUsage, pair)
		}
		if strings.EqualFold(field, "image") {
			data, err := s.readFile(value)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			f.Image = &product.ImageFile{Name: filepath.Base(value), Data: data}
			continue
		}
		if !f.Set(field, value) {
			return fmt.Errorf("%w: unknown field %q (title, sku, price, category, type, image)", errUsage, field)
		}
	}
	return nil
}

func (s *Shell) cmdHelp(_ context.Context, _ []string) error {
	s.renderHelp()
	return nil
}

func clearArg(a string) string {
	if a == "-" {
		return ""
	}
	return a
}

func yes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

var _ Catalog = (*catalog.Controller)(nil)

var _ Session = (*auth.Session)(nil)
