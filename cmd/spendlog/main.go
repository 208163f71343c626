package main

import (
	"context"
	"fmt"
	"os"

	"spendlog/internal/amqp"
	"spendlog/internal/cli"
	"spendlog/internal/core"
	"spendlog/internal/services"
)

const menu = `
=== spendlog ===
1. Add expense
2. View all expenses
3. Show total (optional date range)
4. Summary by category
5. Export to CSV
6. Exit
`

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.OpenLedger(logger, cfg.LedgerPath)

	// The sync queue is optional: without AMQP_URL every append stays local
	// and the worker backfills the sheet later.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Sync queue unavailable, continuing without it", "error", err)
			amqpClient = nil
		}
	}

	svc := services.NewLedgerService(store, amqpClient)
	defer svc.Close()

	ctx := context.Background()
	p := cli.NewPrompter(os.Stdin, os.Stdout)

	for {
		fmt.Print(menu)
		choice, err := p.Line("Choose: ")
		if err != nil {
			return
		}

		switch choice {
		case "1":
			addExpense(ctx, p, svc)
		case "2":
			records, err := svc.AllRecords()
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			cli.PrintTable(os.Stdout, records)
		case "3":
			start, end, err := promptRange(p)
			if err != nil {
				return
			}
			total, err := svc.Total(start, end)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Total expenses: %s\n", total)
		case "4":
			start, end, err := promptRange(p)
			if err != nil {
				return
			}
			summary, err := svc.CategorySummary(start, end)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			cli.PrintSummary(os.Stdout, summary)
		case "5":
			path, err := p.Line(fmt.Sprintf("Export path [%s]: ", cfg.ExportPath))
			if err != nil {
				return
			}
			if path == "" {
				path = cfg.ExportPath
			}
			if err := svc.ExportCSV(path); err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("Exported to %s\n", path)
		case "6":
			fmt.Println("Goodbye.")
			return
		default:
			fmt.Println("Invalid choice.")
		}
	}
}

func addExpense(ctx context.Context, p *cli.Prompter, svc *services.LedgerService) {
	date, err := p.Date("Date (YYYY-MM-DD) [default: today]: ")
	if err != nil {
		return
	}
	category, err := p.Category("Category: ")
	if err != nil {
		return
	}
	amount, err := p.Amount("Amount: ")
	if err != nil {
		return
	}
	note, err := p.Line("Note (optional): ")
	if err != nil {
		return
	}

	rec := core.ExpenseRecord{Date: date, Category: category, Amount: amount, Note: note}
	if err := svc.AddRecord(ctx, rec); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Expense added.")
}

func promptRange(p *cli.Prompter) (string, string, error) {
	start, err := p.OptionalDate("Start date (YYYY-MM-DD) or enter to skip: ")
	if err != nil {
		return "", "", err
	}
	end, err := p.OptionalDate("End date (YYYY-MM-DD) or enter to skip: ")
	if err != nil {
		return "", "", err
	}
	return start, end, nil
}
