package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/tokenswap/infra/initializer"
	"github.com/amirasaad/tokenswap/pkg/app"
	"github.com/amirasaad/tokenswap/pkg/config"
	"github.com/amirasaad/tokenswap/pkg/selection"
)

const usage = `Usage: cli <command> [arguments]
Commands: currencies, sell <amount> [<sell> <buy>], buy <amount> [<sell> <buy>]`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintln(out, usage)
		return nil
	}
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return execute(ctx, app.New(deps, cfg), args, out)
}

func execute(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	svc := a.ConverterService
	switch cmd := args[0]; cmd {
	case "currencies":
		currencies, err := svc.Currencies(ctx)
		if err != nil {
			return err
		}
		for _, c := range currencies {
			fmt.Fprintf(out, "%-8s %s\n", c.Symbol, c.Price.String())
		}
		return nil
	case "sell", "buy":
		if len(args) != 2 && len(args) != 4 {
			return fmt.Errorf("usage: %s <amount> [<sell> <buy>]", cmd)
		}
		side, err := selection.ParseSide(cmd)
		if err != nil {
			return err
		}
		id, _, err := svc.Create(ctx)
		if err != nil {
			return err
		}
		defer svc.Delete(id) //nolint: errcheck
		ctrl, err := svc.Get(id)
		if err != nil {
			return err
		}
		if len(args) == 4 {
			if _, err := ctrl.Select(selection.Sell, args[2]); err != nil {
				return err
			}
			if _, err := ctrl.Select(selection.Buy, args[3]); err != nil {
				return err
			}
		}
		view, err := ctrl.EditAmount(side, args[1])
		if err != nil {
			return err
		}
		if view.SellAmount == "" || view.BuyAmount == "" {
			return fmt.Errorf("conversion unavailable for %s -> %s", view.SellSymbol, view.BuySymbol)
		}
		fmt.Fprintf(out, "Sell: %s %s\n", view.SellAmount, view.SellSymbol)
		fmt.Fprintf(out, "Buy:  %s %s\n", view.BuyAmount, view.BuySymbol)
		if view.Summary != "" {
			fmt.Fprintln(out, view.Summary)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}
