package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/bottlerun/bottlerun/internal/client/models"
	"github.com/bottlerun/bottlerun/internal/client/services"
)

func (a *App) addToCart(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return
	}

	var product models.Product
	var err error

	if product.ID, err = getSimpleText(a.reader, "Product id", os.Stdout); err != nil {
		log.Println(err.Error())
		return
	}
	if product.Name, err = getSimpleText(a.reader, "Product name", os.Stdout); err != nil {
		log.Println(err.Error())
		return
	}
	priceText, err := getSimpleText(a.reader, "Unit price", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if product.Price, err = strconv.ParseFloat(priceText, 64); err != nil {
		fmt.Println("Invalid price:", priceText)
		return
	}

	item, err := a.carts.Add(ctx, a.user.ID, product)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("In cart: %s x%d\n", item.Name, item.Quantity)
}

func (a *App) showCart(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return
	}

	items, err := a.carts.Fetch(ctx, a.user.ID)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(items) == 0 {
		fmt.Println("Cart is empty.")
		return
	}

	var total float64
	for _, it := range items {
		fmt.Printf("%-24s  %s x%d @ %.2f = %.2f\n",
			it.ProductID, it.Name, it.Quantity, it.Price, it.Subtotal())
		total += it.Subtotal()
	}
	fmt.Printf("Total: %.2f\n", total)
}

func (a *App) updateQuantity(ctx context.Context, productID, quantityText string) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return
	}

	quantity, err := strconv.Atoi(quantityText)
	if err != nil {
		fmt.Println("Invalid quantity:", quantityText)
		return
	}

	if err := a.carts.UpdateQuantity(ctx, a.user.ID, productID, quantity); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Quantity updated.")
}

func (a *App) removeFromCart(ctx context.Context, productID string) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return
	}

	if err := a.carts.Remove(ctx, a.user.ID, productID); err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Println("Removed.")
}

// checkout submits the named product lines, or the whole cart when no ids
// are given, as a remote order.
func (a *App) checkout(ctx context.Context, productIDs []string) {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return
	}

	if len(productIDs) == 0 {
		items, err := a.carts.Fetch(ctx, a.user.ID)
		if err != nil {
			log.Println(err.Error())
			return
		}
		for _, it := range items {
			productIDs = append(productIDs, it.ProductID)
		}
	}

	paymentMethod, err := getSimpleText(a.reader, "Payment method", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return
	}

	result, err := a.carts.Checkout(ctx, services.CheckoutRequest{
		UserID:          a.user.ID,
		ProductIDs:      productIDs,
		ShippingAddress: a.user.Address,
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		log.Printf("Checkout unsuccessful: %s", err.Error())
		return
	}
	fmt.Printf("Order %s placed (%s).\n", result.ID, result.Status)
}
