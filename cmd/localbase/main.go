// Command localbase is an ops CLI for the embedded local data layer: it
// seeds the store and runs queries and auth operations against it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/lowtide/localbase/internal/catalog"
	"github.com/lowtide/localbase/internal/config"
	pkgcrypto "github.com/lowtide/localbase/internal/crypto"
	"github.com/lowtide/localbase/internal/errs"
	"github.com/lowtide/localbase/internal/limiter"
	"github.com/lowtide/localbase/internal/model"
	"github.com/lowtide/localbase/internal/query"
	"github.com/lowtide/localbase/internal/seed"
	"github.com/lowtide/localbase/internal/service"
	"github.com/lowtide/localbase/internal/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `localbase CLI
Usage:
  localbase [-config file] <cmd> [args]

Commands:
  version
  init-config                                  (writes example config)
  seed                                         (one-time store bootstrap)
  query    -from <collection> [-eq k=v ...] [-order col] [-desc]
           [-limit n] [-select a,b] [-single]
  signup   -u <email> -p <password>
  signin   -u <email> -p <password>
  signout
  whoami
`)
	os.Exit(2)
}

// eqFlags collects repeatable -eq key=value predicates.
type eqFlags []string

func (e *eqFlags) String() string { return strings.Join(*e, ",") }
func (e *eqFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return errors.New("want key=value")
	}
	*e = append(*e, v)
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// app wires the full stack from configuration.
type app struct {
	cols   *storage.Collections
	client *query.Client
	auth   service.AuthService
	seeder *seed.Seeder
}

func buildApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	fs, err := storage.NewFileStore(cfg.Storage.Dir, logger)
	if err != nil {
		return nil, err
	}
	var store storage.Store = fs
	if cfg.Storage.Secret != "" {
		sealer := pkgcrypto.NewSealer(cfg.Storage.Secret)
		store = storage.NewSealedStore(store, sealer,
			[]string{storage.CollectionKey(service.UsersCollection)}, logger)
	}
	cols := storage.NewCollections(store, logger)
	client := query.NewClient(cols, logger)
	lim := limiter.NewStoreLimiter(store, logger, cfg.Auth.FailWindow.Std(), cfg.Auth.MaxFails, cfg.Auth.BlockFor.Std())
	auth := service.NewAuthService(client, store, []byte(cfg.Auth.SigningKey), cfg.Auth.SessionTTL.Std(), lim)
	seeder := seed.NewSeeder(cols, catalog.DefaultCatalog(),
		seed.Admin{Email: cfg.Admin.Email, Password: cfg.Admin.Password}, logger)
	return &app{cols: cols, client: client, auth: auth, seeder: seeder}, nil
}

// main dispatches subcommands against the configured store.
func main() {
	cfgPath := flag.String("config", "localbase.toml", "config file (TOML)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	if cmd == "version" {
		fmt.Printf("localbase %s (%s)\n", version, buildDate)
		return
	}
	if cmd == "init-config" {
		if err := config.WriteExample(*cfgPath); err != nil {
			fail(err)
		}
		fmt.Println("wrote", *cfgPath)
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		// Run against defaults when no config file exists yet.
		cfg = config.Default()
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewProduction()
		defer func() { _ = logger.Sync() }()
	}

	a, err := buildApp(cfg, logger)
	if err != nil {
		fail(err)
	}

	ctx := context.Background()

	switch cmd {

	case "seed":
		if err := a.seeder.Run(); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "query":
		fs := flag.NewFlagSet("query", flag.ExitOnError)
		from := fs.String("from", "", "collection name")
		var eqs eqFlags
		fs.Var(&eqs, "eq", "equality predicate key=value (repeatable)")
		order := fs.String("order", "", "order column")
		desc := fs.Bool("desc", false, "descending order")
		limit := fs.Int("limit", -1, "limit")
		sel := fs.String("select", "", "comma-separated projection")
		single := fs.Bool("single", false, "first match only")
		_ = fs.Parse(flag.Args()[1:])
		if *from == "" {
			fmt.Fprintln(os.Stderr, "need -from")
			os.Exit(1)
		}

		q := a.client.From(*from)
		for _, e := range eqs {
			k, v, _ := strings.Cut(e, "=")
			q = q.Eq(k, v)
		}
		if *order != "" {
			q = q.Order(*order, !*desc)
		}
		if *limit >= 0 {
			q = q.Limit(*limit)
		}
		if *sel != "" {
			q = q.Select(strings.Split(*sel, ",")...)
		}

		if *single {
			rec, err := q.Single()
			if errors.Is(err, errs.ErrNotFound) {
				printJSON(nil)
				return
			}
			if err != nil {
				fail(err)
			}
			printJSON(rec)
			return
		}
		data, err := q.Execute()
		if err != nil {
			fail(err)
		}
		printJSON(data)

	case "signup", "signin":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		u := fs.String("u", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *u == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -u and -p")
			os.Exit(1)
		}
		var user model.PublicUser
		if cmd == "signup" {
			user, err = a.auth.SignUp(ctx, *u, *p)
		} else {
			user, err = a.auth.SignIn(ctx, *u, *p)
		}
		if err != nil {
			fail(err)
		}
		printJSON(user)

	case "signout":
		a.auth.SignOut(ctx)
		fmt.Println("ok")

	case "whoami":
		user, err := a.auth.CurrentUser(ctx)
		if errors.Is(err, errs.ErrNoSession) {
			fmt.Println("not signed in")
			return
		}
		if err != nil {
			fail(err)
		}
		printJSON(user)

	default:
		usage()
	}
}
