package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	s := a.user.Username
	if a.user.IsAdmin {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

// Root runs the command loop until exit or EOF.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to Bottlerun CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("brn %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: whoami, profile, add, cart, qty, remove, checkout, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, google, exit")
			}
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "google":
			a.GoogleLogin(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.WhoAmI(ctx)
		case "profile":
			a.UpdateProfile(ctx)
		case "add":
			a.addToCart(ctx)
		case "cart":
			a.showCart(ctx)
		case "qty":
			if len(args) < 2 {
				fmt.Println("Usage: qty <product-id> <quantity>")
				continue
			}
			a.updateQuantity(ctx, args[0], args[1])
		case "remove":
			if len(args) == 0 {
				fmt.Println("Usage: remove <product-id>")
				continue
			}
			a.removeFromCart(ctx, args[0])
		case "checkout":
			a.checkout(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
