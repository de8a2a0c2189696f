// Command console is an interactive stock-management menu over the
// in-memory store, handy for demos and manual testing without a
// database.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vpalhares/gamestock-backend/internal/modules/catalog"
	"github.com/vpalhares/gamestock-backend/internal/modules/sales"
	"github.com/vpalhares/gamestock-backend/internal/storage/memory"
)

func main() {
	store := memory.NewSeededStore()
	catalogService := catalog.NewService(store.Games())
	salesService := sales.NewService(store.Sales(), zap.NewNop())

	in := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Println()
		fmt.Println("Options:")
		fmt.Println("1. Register a game")
		fmt.Println("2. Show stock")
		fmt.Println("3. Look up a game")
		fmt.Println("4. Sell a game")
		fmt.Println("5. Show sales")
		fmt.Println("6. Reset catalog")
		fmt.Println("7. Quit")

		switch prompt(in, "Choose an option: ") {
		case "1":
			registerGame(ctx, in, catalogService)
		case "2":
			showStock(ctx, catalogService)
		case "3":
			lookupGame(ctx, in, catalogService)
		case "4":
			sellGame(ctx, in, salesService)
		case "5":
			showSales(ctx, salesService)
		case "6":
			if _, err := catalogService.Reset(ctx); err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Println("Catalog restored to the default games.")
		case "7":
			fmt.Println("Bye.")
			return
		default:
			fmt.Println("Invalid option, try again.")
		}
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}

func registerGame(ctx context.Context, in *bufio.Scanner, svc catalog.Service) {
	title := prompt(in, "Title: ")
	developer := prompt(in, "Developer: ")
	quantity, err := strconv.Atoi(prompt(in, "Units in stock: "))
	if err != nil {
		fmt.Println("Invalid quantity.")
		return
	}
	price, err := decimal.NewFromString(prompt(in, "Unit price: "))
	if err != nil {
		fmt.Println("Invalid price.")
		return
	}

	g, err := svc.CreateGame(ctx, catalog.CreateGameRequest{
		Title:     title,
		Developer: developer,
		Quantity:  quantity,
		Price:     price,
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Registered #%d %q.\n", g.ID, g.Title)
}

func showStock(ctx context.Context, svc catalog.Service) {
	games, err := svc.ListGames(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(games) == 0 {
		fmt.Println("The stock is empty.")
		return
	}
	for _, g := range games {
		printGame(g)
	}
}

func lookupGame(ctx context.Context, in *bufio.Scanner, svc catalog.Service) {
	id, err := strconv.ParseInt(prompt(in, "Game id: "), 10, 64)
	if err != nil {
		fmt.Println("Invalid id.")
		return
	}
	g, err := svc.GetGame(ctx, id)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	printGame(g)
}

func sellGame(ctx context.Context, in *bufio.Scanner, svc sales.Service) {
	id, err := strconv.ParseInt(prompt(in, "Game id: "), 10, 64)
	if err != nil {
		fmt.Println("Invalid id.")
		return
	}
	quantity, err := strconv.Atoi(prompt(in, "Units to sell: "))
	if err != nil {
		fmt.Println("Invalid quantity.")
		return
	}

	g, sale, err := svc.Sell(ctx, id, quantity)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Sold %d x %q for %s. %d units remaining.\n",
		sale.QuantitySold, g.Title, sale.SaleValue.StringFixed(2), g.Quantity)
}

func showSales(ctx context.Context, svc sales.Service) {
	list, err := svc.ListSales(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(list) == 0 {
		fmt.Println("No sales recorded.")
		return
	}
	for _, s := range list {
		fmt.Printf("Sale %s: game #%d, %d units, total %s (%s)\n",
			s.ID, s.GameID, s.QuantitySold, s.SaleValue.StringFixed(2), s.SoldAt.Format("2006-01-02 15:04:05"))
	}
}

func printGame(g *catalog.Game) {
	fmt.Printf("#%d Title: %s, Developer: %s, Quantity: %d, Price: %s\n",
		g.ID, g.Title, g.Developer, g.Quantity, g.Price.StringFixed(2))
}
