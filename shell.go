package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"okuyorum-admin/admin"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Etkileşimli yönetim kabuğu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd)
		},
	}
}

func (a *app) runShell(parent *cobra.Command) error {
	ctx := parent.Context()

	a.printf("OkuYorum yönetim kabuğu. Komutlar:\n")
	a.printf("  Bağışlar: donations list|show|status|tracking|delete|create|edit\n")
	a.printf("  Talepler: requests list|show|status|delete\n")
	a.printf("  Etkinlik: events list, kiraathanes list, registrations list|status\n")
	a.printf("  Diğer   : users list, dashboard, journal, whoami, login, logout\n")
	a.printf("  Kabuk   : go [rota], route, help, exit\n")

	for {
		a.printf("\nokuyorum:%s> ", a.term.Route())
		if !a.in.Scan() {
			break
		}
		args, err := splitArgs(a.in.Text())
		if err != nil {
			a.printf("%v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit", "çıkış":
			a.printf("Güle güle!\n")
			return nil
		case "route", "pwd":
			a.printf("%s\n", a.term.Route())
			continue
		case "help":
			newRootCmd(a).Usage()
			continue
		case "shell":
			a.printf("Zaten kabuktasınız.\n")
			continue
		case "go", "cd":
			route := a.term.Route()
			if len(args) > 1 {
				route = args[1]
			}
			routed, ok := routeArgs(route)
			if !ok {
				a.printf("Bilinmeyen rota: %s\n", route)
				continue
			}
			args = routed
		}

		if err := a.execute(parent, args); err != nil && !alreadyReported(err) {
			a.printf("Hata: %v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

// execute runs one shell line through a fresh command tree sharing this app.
func (a *app) execute(parent *cobra.Command, args []string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	return root.ExecuteContext(parent.Context())
}

// routeArgs maps an admin route to the command that renders it.
func routeArgs(route string) ([]string, bool) {
	route = strings.TrimRight(route, "/")
	if route == "" {
		route = admin.RouteHome
	}
	switch route {
	case admin.RouteHome:
		return []string{"whoami"}, true
	case admin.RouteDashboard:
		return []string{"dashboard"}, true
	case admin.RouteLogin:
		return []string{"login"}, true
	case admin.RouteDonations:
		return []string{"donations", "list"}, true
	case admin.RouteNewDonation:
		return []string{"donations", "create"}, true
	case admin.RouteRequests:
		return []string{"requests", "list"}, true
	case admin.RouteEvents:
		return []string{"events", "list"}, true
	case admin.RouteUsers:
		return []string{"users", "list"}, true
	}

	parts := strings.Split(strings.TrimPrefix(route, "/"), "/")
	switch {
	case len(parts) == 3 && parts[0] == "admin" && parts[1] == "donations":
		return []string{"donations", "show", parts[2]}, true
	case len(parts) == 3 && parts[0] == "admin" && parts[1] == "requests":
		return []string{"requests", "show", parts[2]}, true
	case len(parts) == 3 && parts[0] == "admin" && parts[1] == "events":
		return []string{"events", "show", parts[2]}, true
	case len(parts) == 4 && parts[0] == "admin" && parts[1] == "events" && parts[3] == "registrations":
		return []string{"registrations", "list", parts[2]}, true
	}
	return nil, false
}

// splitArgs splits a shell line on whitespace, keeping quoted runs together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("kapanmamış tırnak")
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
