package term

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"shopkeeper/internal/app"
	"shopkeeper/internal/gateway"
	"shopkeeper/internal/ui"
)

// Run starts the interactive admin loop. It logs in, bootstraps the
// session, and dispatches slash commands against the same screen
// controllers the web pages use.
func Run(ctx context.Context, baseURL, username, password string, reader *bufio.Reader, out io.Writer) error {
	terminal := NewTerminal(out)
	toasts := ui.NewToaster(terminal)
	defer toasts.Stop()

	client, err := gateway.NewClient(baseURL, toasts)
	if err != nil {
		return err
	}
	if err := client.Login(ctx, username, password); err != nil {
		return err
	}
	if err := client.Bootstrap(ctx); err != nil {
		return err
	}

	env := ui.Env{
		Client:  client,
		Surface: terminal,
		Modal:   ui.NewModal(terminal),
		Confirm: ui.NewConfirmModal(terminal),
		Toasts:  toasts,
		Strings: client.Strings(),
	}
	router := ui.NewRouter(ui.Descriptors()...)
	screens := make(map[string]*ui.Screen)
	var current *ui.Screen

	defer func() {
		for _, s := range screens {
			s.Close()
		}
	}()

	fmt.Fprintln(out, "Shopkeeper Admin")
	fmt.Fprintf(out, "Connected to %s as %s\n", baseURL, username)
	fmt.Fprintln(out, "Use /screen <name> to open a screen, or /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	openScreen := func(name string) error {
		desc, err := router.Lookup(name)
		if err != nil {
			return err
		}
		s, ok := screens[name]
		if !ok {
			s = ui.NewScreen(desc, env)
			screens[name] = s
		}
		current = s
		s.Refresh(ctx)
		return nil
	}

	requireScreen := func() bool {
		if current == nil {
			fmt.Fprintln(out, "No screen open. Use /screen <name> first.")
			return false
		}
		return true
	}

	rowArg := func(args []string) (int, bool) {
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: needs a row number from the current table.")
			return 0, false
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintf(out, "Invalid row number: %s\n", args[0])
			return 0, false
		}
		return n - 1, true
	}

	errExit := fmt.Errorf("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "screen", "s":
			if len(args) < 1 {
				fmt.Fprintf(out, "Usage: /screen <%s>\n", strings.Join(router.Screens(), "|"))
				return nil
			}
			return openScreen(strings.ToLower(args[0]))

		case "search":
			if !requireScreen() {
				return nil
			}
			current.SearchChanged(ctx, strings.Join(args, " "))

		case "refresh", "r":
			if !requireScreen() {
				return nil
			}
			current.Refresh(ctx)

		case "next":
			if terminal.lastPager != nil {
				terminal.lastPager.Next()
			}

		case "prev":
			if terminal.lastPager != nil {
				terminal.lastPager.Prev()
			}

		case "add":
			if !requireScreen() {
				return nil
			}
			current.AddNew(ctx)

		case "edit":
			if !requireScreen() {
				return nil
			}
			if index, ok := rowArg(args); ok {
				return current.Edit(ctx, index)
			}

		case "delete", "del":
			if !requireScreen() {
				return nil
			}
			if index, ok := rowArg(args); ok {
				return current.Delete(ctx, index)
			}

		case "set":
			form := env.Modal.Form()
			if form == nil {
				fmt.Fprintln(out, "No form open. Use /add or /edit first.")
				return nil
			}
			rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(input, "/"), tokens[0]))
			name, value, found := strings.Cut(rest, "=")
			if !found {
				fmt.Fprintln(out, "Usage: /set <field>=<value>")
				return nil
			}
			if err := form.Set(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
				fmt.Fprintf(out, "%v\n", err)
			}

		case "save":
			env.Modal.Save()

		case "cancel":
			env.Modal.Close()
			env.Confirm.Close()

		case "confirm":
			env.Confirm.Confirm()

		case "dashboard", "dash":
			return printDashboard(ctx, client, out)

		case "report":
			return printReport(ctx, client, out, args)

		case "settings":
			return handleSettings(ctx, client, out, args)

		case "help", "h":
			printHelp(out, router.Screens())

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Fprintf(out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Fprint(out, "\n> ")
		input, readErr := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			if readErr != nil {
				return nil
			}
			continue
		}

		// Slash prefix → command dispatcher; anything else is a search
		// term for the current screen.
		if !strings.HasPrefix(input, "/") {
			if requireScreen() {
				current.SearchChanged(ctx, input)
			}
			continue
		}

		if err := dispatchSlash(input); err != nil {
			if err == errExit {
				fmt.Fprintln(out, "Goodbye!")
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		if readErr != nil {
			return nil
		}
	}
}

func printDashboard(ctx context.Context, client *gateway.Client, out io.Writer) error {
	data, err := client.Call(ctx, "rsam_get_dashboard_stats", url.Values{}, nil)
	if err != nil {
		return nil // the gateway already raised the error toast
	}
	var stats app.DashboardStatsResult
	if err := json.Unmarshal(data, &stats); err != nil {
		return err
	}

	fmt.Fprintln(out, "Dashboard")
	fmt.Fprintf(out, "  Today's Sales:         %s\n", stats.TodaySales)
	fmt.Fprintf(out, "  This Month's Sales:    %s\n", stats.MonthlySales)
	fmt.Fprintf(out, "  This Month's Profit:   %s\n", stats.MonthlyProfit)
	fmt.Fprintf(out, "  This Month's Expenses: %s\n", stats.MonthlyExpenses)
	fmt.Fprintf(out, "  Total Stock Value:     %s\n", stats.StockValue)
	fmt.Fprintf(out, "  Low Stock Items:       %d\n", stats.LowStockCount)

	fmt.Fprintln(out, "Top Selling Products")
	if len(stats.TopProducts) == 0 {
		fmt.Fprintln(out, "  No top selling products this month.")
	}
	for _, p := range stats.TopProducts {
		fmt.Fprintf(out, "  %s - %s units\n", p.Name, p.TotalQuantity)
	}

	fmt.Fprintln(out, "Low Stock")
	if len(stats.LowStockProducts) == 0 {
		fmt.Fprintln(out, "  All stock levels are good.")
	}
	for _, p := range stats.LowStockProducts {
		fmt.Fprintf(out, "  %s - In Stock: %s %s\n", p.Name, p.StockQuantity, p.UnitType)
	}
	return nil
}

func printReport(ctx context.Context, client *gateway.Client, out io.Writer, args []string) error {
	payload := url.Values{}
	if len(args) >= 1 {
		payload.Set("date_from", args[0])
	}
	if len(args) >= 2 {
		payload.Set("date_to", args[1])
	}

	data, err := client.Call(ctx, "rsam_get_report", payload, nil)
	if err != nil {
		return nil
	}
	var report app.ReportResult
	if err := json.Unmarshal(data, &report); err != nil {
		return err
	}

	fmt.Fprintf(out, "%-12s %14s %14s %8s\n", "Date", "Sales", "Profit", "# Sales")
	fmt.Fprintln(out, strings.Repeat("-", 52))
	for _, row := range report.Rows {
		fmt.Fprintf(out, "%-12s %14s %14s %8d\n", row.Date, row.SalesFmt, row.ProfitFmt, row.NumSales)
	}
	fmt.Fprintf(out, "Total sales: %s, total profit: %s\n", report.TotalSalesFmt, report.TotalProfitFmt)
	return nil
}

// handleSettings prints the store settings, or updates them when given
// key=value arguments.
func handleSettings(ctx context.Context, client *gateway.Client, out io.Writer, args []string) error {
	data, err := client.Call(ctx, "rsam_get_settings", url.Values{}, nil)
	if err != nil {
		return nil
	}
	var settings app.SettingsResult
	if err := json.Unmarshal(data, &settings); err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Fprintf(out, "  store_name:        %s\n", settings.StoreName)
		fmt.Fprintf(out, "  currency_symbol:   %s\n", settings.CurrencySymbol)
		fmt.Fprintf(out, "  low_stock_default: %s\n", settings.LowStockDefault)
		return nil
	}

	form := url.Values{
		"store_name":        {settings.StoreName},
		"currency_symbol":   {settings.CurrencySymbol},
		"low_stock_default": {settings.LowStockDefault},
	}
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found || !form.Has(name) {
			fmt.Fprintf(out, "Unknown setting: %s\n", arg)
			return nil
		}
		form.Set(name, value)
	}

	saved, err := client.Call(ctx, "rsam_save_settings", url.Values{"form_data": {form.Encode()}}, nil)
	if err != nil {
		return nil
	}
	var msg struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(saved, &msg)
	fmt.Fprintln(out, msg.Message)
	return nil
}

func printHelp(out io.Writer, screens []string) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintf(out, "  /screen <name>      open a screen (%s)\n", strings.Join(screens, ", "))
	fmt.Fprintln(out, "  /search <term>      search the current screen (or just type the term)")
	fmt.Fprintln(out, "  /refresh            reload the current page")
	fmt.Fprintln(out, "  /next, /prev        change page")
	fmt.Fprintln(out, "  /add                open the add form")
	fmt.Fprintln(out, "  /edit <row>         open the edit form for a table row")
	fmt.Fprintln(out, "  /set <field>=<val>  fill a form field")
	fmt.Fprintln(out, "  /save, /cancel      submit or abandon the open form")
	fmt.Fprintln(out, "  /delete <row>       ask to delete a table row")
	fmt.Fprintln(out, "  /confirm            confirm a pending delete")
	fmt.Fprintln(out, "  /dashboard          show the dashboard stats")
	fmt.Fprintln(out, "  /report [from] [to] show the sales report (dates YYYY-MM-DD)")
	fmt.Fprintln(out, "  /settings [k=v]...  show or update store settings")
	fmt.Fprintln(out, "  /exit               quit")
}
