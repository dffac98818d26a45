// Package main provides a command line client for the conversation API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DragonEmporer001/fiverr-clone/internal/auth"
	"github.com/DragonEmporer001/fiverr-clone/internal/client"
	"github.com/DragonEmporer001/fiverr-clone/internal/config"
	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
)

const usage = `usage: convctl [-addr URL] [-token JWT] <command> [args]

commands:
  token -user ID [-seller]   issue an access token with JWT_SECRET
  list                       list your conversations
  get ID                     show one conversation
  create -to ID              open a conversation with a user
  read ID                    mark a conversation read on your side
  watch                      print conversation events until interrupted
  nav [-path /]              show the navigation view
`

func main() {
	config.LoadDotEnv()

	addr := flag.String("addr", "http://localhost:8080", "API base URL")
	token := flag.String("token", os.Getenv("CONVCTL_TOKEN"), "access token (defaults to $CONVCTL_TOKEN)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	log.SetFlags(log.Ltime)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.NewClient(*addr, *token)
	if err := run(ctx, c, os.Stdout, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func run(ctx context.Context, c *client.Client, out io.Writer, cmd string, args []string) error {
	switch cmd {
	case "token":
		fs := flag.NewFlagSet("token", flag.ContinueOnError)
		user := fs.String("user", "", "user ID")
		seller := fs.Bool("seller", false, "issue a seller token")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *user == "" {
			return fmt.Errorf("-user is required")
		}
		cfg := config.Load()
		raw, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL).Issue(domain.Requester{UserID: *user, IsSeller: *seller})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, raw)
		return nil

	case "list":
		list, err := c.ListConversations(ctx)
		if err != nil {
			return err
		}
		return renderConversations(out, list)

	case "get":
		if len(args) != 1 {
			return fmt.Errorf("expected conversation ID")
		}
		conv, err := c.GetConversation(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(out, conv)

	case "create":
		fs := flag.NewFlagSet("create", flag.ContinueOnError)
		to := fs.String("to", "", "counterpart user ID")
		if err := fs.Parse(args); err != nil {
			return err
		}
		conv, err := c.CreateConversation(ctx, *to)
		if err != nil {
			return err
		}
		return printJSON(out, conv)

	case "read":
		if len(args) != 1 {
			return fmt.Errorf("expected conversation ID")
		}
		conv, err := c.MarkRead(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(out, conv)

	case "watch":
		fmt.Fprintln(out, "Watching conversation events. Press Ctrl+C to quit.")
		return c.Watch(ctx, func(ev domain.Event) {
			id := ""
			if ev.Conversation != nil {
				id = ev.Conversation.ID
			}
			fmt.Fprintf(out, "[%s] %s %s\n", time.UnixMilli(ev.Ts).Format(time.TimeOnly), ev.Type, id)
		})

	case "nav":
		fs := flag.NewFlagSet("nav", flag.ContinueOnError)
		path := fs.String("path", "/", "current page path")
		if err := fs.Parse(args); err != nil {
			return err
		}
		view, err := c.Navigation(ctx, *path)
		if err != nil {
			return err
		}
		return renderNavigation(out, view)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printJSON(out io.Writer, v interface{}) error {
	formatted, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(formatted))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
