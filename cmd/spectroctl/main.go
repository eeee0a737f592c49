// spectroctl is a small client for the spectro-backend API. It keeps its
// session (token + cached user record) in a local file and restores it on
// every invocation, so the session store goes through its full
// load/login/logout lifecycle here.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spectropro/spectro-backend/internal/adminlist"
	"github.com/spectropro/spectro-backend/internal/models"
	"github.com/spectropro/spectro-backend/internal/session"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: spectroctl [-server URL] <command> [args]

commands:
  register <name> <email> <password> [role] [student-id]
  login <email> <password>
  logout
  whoami
  set-name <name>
  admin`)
	os.Exit(2)
}

func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".spectropro/session.json"
	}
	return filepath.Join(home, ".spectropro", "session.json")
}

func main() {
	server := flag.String("server", "http://localhost:8080", "API base URL")
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	store := session.New(
		session.NewFileCache(sessionPath()),
		session.NewHTTPProvider(*server),
		adminlist.New(adminlist.DefaultApprovedIDs),
		nil,
	)
	store.Load()

	ctx := context.Background()

	switch args[0] {
	case "register":
		if len(args) < 4 {
			usage()
		}
		p := session.RegisterParams{Name: args[1], Email: args[2], Password: args[3], Role: models.RoleUser}
		if len(args) > 4 {
			p.Role = models.Role(args[4])
		}
		if len(args) > 5 {
			p.StudentID = args[5]
		}
		report(store.Register(ctx, p))

	case "login":
		if len(args) != 3 {
			usage()
		}
		report(store.Login(ctx, args[1], args[2]))

	case "logout":
		store.Logout()
		fmt.Println("logged out")

	case "whoami":
		u, ok := store.Current()
		if !ok {
			fmt.Println("not logged in")
			os.Exit(1)
		}
		fmt.Printf("%s <%s> role=%s", u.Name, u.Email, u.Role)
		if u.StudentID != "" {
			fmt.Printf(" student-id=%s", u.StudentID)
		}
		if u.IsApprovedAdmin {
			fmt.Print(" (approved admin)")
		}
		fmt.Println()

	case "set-name":
		if len(args) != 2 {
			usage()
		}
		if _, ok := store.Current(); !ok {
			fmt.Println("not logged in")
			os.Exit(1)
		}
		store.UpdateUser(session.UserUpdate{Name: &args[1]})
		fmt.Println("updated")

	case "admin":
		g := store.Guard(true)
		switch g.Decision {
		case session.DecisionAllowed:
			fmt.Println("admin access granted")
		case session.DecisionRedirectLogin:
			fmt.Println("not logged in: run spectroctl login first")
			os.Exit(1)
		case session.DecisionDenied:
			fmt.Printf("admin access denied for role=%s id=%s\n", g.Role, g.UserID)
			os.Exit(1)
		default:
			fmt.Println("session still loading")
			os.Exit(1)
		}

	default:
		usage()
	}
}

func report(res session.Result) {
	fmt.Println(res.Message)
	if !res.OK {
		os.Exit(1)
	}
}
