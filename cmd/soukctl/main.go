package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/souk-hq/souk-go/internal/config"
	"github.com/souk-hq/souk-go/internal/logger"
	"github.com/souk-hq/souk-go/internal/session"
	"github.com/souk-hq/souk-go/pkg/api"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "soukctl failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := session.NewStore(cfg.StorageType, cfg.BBoltPath)
	if err != nil {
		return fmt.Errorf("init session storage: %w", err)
	}
	defer store.Close()

	log := logger.ZapLogger{}
	client := api.New(api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Logger:  log,
	})

	manager, err := session.NewManager(client, store, log)
	if err != nil {
		return fmt.Errorf("init session manager: %w", err)
	}
	manager.Restore()

	args := os.Args[1:]
	if len(args) == 0 {
		return usage()
	}
	return dispatch(ctx, args, client, manager)
}

func dispatch(ctx context.Context, args []string, client *api.Client, manager *session.Manager) error {
	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: soukctl login <email> <password>")
		}
		if !manager.Login(ctx, args[1], args[2]) {
			return fmt.Errorf("login failed")
		}
		user := manager.CurrentUser()
		fmt.Printf("logged in as %s (%s)\n", user.Name, user.Role)
		return nil

	case "logout":
		manager.Logout(ctx)
		fmt.Println("logged out")
		return nil

	case "whoami":
		user := manager.CurrentUser()
		if user == nil {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s <%s> role=%s status=%s\n", user.Name, user.Email, user.Role, user.Status)
		return nil

	case "stores":
		var q *api.StoreQuery
		if len(args) > 1 {
			q = &api.StoreQuery{Category: args[1]}
		}
		res := client.Stores(ctx, q)
		if !res.Success {
			return fmt.Errorf("list stores: %s", res.Err)
		}
		if res.Data != nil {
			for _, s := range *res.Data {
				fmt.Printf("%s\t%s\t%s\n", s.ID, s.Name, s.Category)
			}
		}
		return nil

	case "orders":
		res := client.Orders(ctx, nil)
		if !res.Success {
			return fmt.Errorf("list orders: %s", res.Err)
		}
		if res.Data != nil {
			for _, o := range *res.Data {
				fmt.Printf("%s\t%s\t%.2f\n", o.ID, o.Status, o.Total)
			}
		}
		return nil

	case "stats":
		res := client.AdminStats(ctx)
		if !res.Success {
			return fmt.Errorf("admin stats: %s", res.Err)
		}
		if res.Data != nil {
			fmt.Printf("users=%d merchants=%d stores=%d orders=%d revenue=%.2f open_tickets=%d\n",
				res.Data.TotalUsers, res.Data.TotalMerchants, res.Data.TotalStores,
				res.Data.TotalOrders, res.Data.TotalRevenue, res.Data.OpenTickets)
		}
		return nil

	case "upload":
		if len(args) != 2 {
			return fmt.Errorf("usage: soukctl upload <file>")
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		res := client.UploadImage(ctx, f.Name(), f)
		if !res.Success {
			return fmt.Errorf("upload: %s", res.Err)
		}
		if res.Data != nil {
			fmt.Println(res.Data.URL)
		}
		return nil

	default:
		return usage()
	}
}

func usage() error {
	return fmt.Errorf("usage: soukctl <login|logout|whoami|stores|orders|stats|upload> [args]")
}
