// Package console implements the interactive text menus of CarConnect.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"carconnect/internal/core/services"

	"github.com/sirupsen/logrus"
)

// Console runs the menu loop over a reader and a writer
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	svc *services.Registry
}

// New creates a console reading commands from in and writing to out
func New(in io.Reader, out io.Writer, svc *services.Registry) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
		svc: svc,
	}
}

// menuItem is one numbered menu entry
type menuItem struct {
	label  string
	action func(ctx context.Context) error
}

// errLeave ends the current menu loop
var errLeave = errors.New("leave menu")

// Run shows the main menu until the user exits or input ends
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Welcome to CarConnect - Your Car Rental Platform!")

	err := c.loop(ctx, "Main Menu", []menuItem{
		{"Customer Login", c.customerLogin},
		{"Admin Login", c.adminLogin},
		{"New Customer Registration", c.registerCustomer},
		{"Exit", leave},
	})
	fmt.Fprintln(c.out, "Thank you for using CarConnect. Goodbye!")

	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func leave(context.Context) error {
	return errLeave
}

// loop repeats a menu until an item returns errLeave or input ends.
// Any other error is printed and the menu is shown again.
func (c *Console) loop(ctx context.Context, title string, items []menuItem) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.choose(ctx, title, items)
		switch {
		case err == nil:
		case errors.Is(err, errLeave):
			return nil
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			return err
		default:
			c.printError(err)
		}
	}
}

// submenu shows a menu once and runs the chosen item
func (c *Console) submenu(ctx context.Context, title string, items []menuItem) error {
	err := c.choose(ctx, title, items)
	if errors.Is(err, errLeave) {
		return nil
	}
	return err
}

func (c *Console) choose(ctx context.Context, title string, items []menuItem) error {
	fmt.Fprintf(c.out, "\n--- %s ---\n", title)
	for i, item := range items {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, item.label)
	}

	choice, err := c.promptInt("Enter your choice: ")
	if errors.Is(err, io.EOF) {
		return err
	}
	if err != nil || choice < 1 || choice > len(items) {
		fmt.Fprintln(c.out, "Invalid choice. Please try again.")
		return nil
	}
	return items[choice-1].action(ctx)
}

func (c *Console) printError(err error) {
	logrus.WithError(err).Debug("Console action failed")
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

func (c *Console) header(title string) {
	fmt.Fprintf(c.out, "\n--- %s ---\n", title)
}

func (c *Console) separator() {
	fmt.Fprintln(c.out, "--------------------")
}
