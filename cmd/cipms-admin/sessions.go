package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/cipms/internal/bootstrap"
	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/nav"
)

const scanBatch = 100

type listSessionsOptions struct {
	Limit int
}

type clearSessionsOptions struct {
	ClientID string
	All      bool
	DryRun   bool
	Yes      bool
}

// sessionRow is one persisted session as printed by list-sessions.
type sessionRow struct {
	Key       string
	Email     string
	Role      string
	Dashboard string
	TTL       time.Duration
	Err       error
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseListSessionsFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer closeRedis(cmdCtx, client)

	rows, err := scanSessions(ctx, client, cmdCtx.Config.Session.KeyPrefix, opts.Limit)
	if err != nil {
		return err
	}
	return printSessions(os.Stdout, rows)
}

func scanSessions(ctx context.Context, client redis.UniversalClient, prefix string, limit int) ([]sessionRow, error) {
	iter := client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	var rows []sessionRow
	for iter.Next(ctx) {
		if limit > 0 && len(rows) >= limit {
			break
		}
		rows = append(rows, loadSessionRow(ctx, client, iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return rows, nil
}

func loadSessionRow(ctx context.Context, client redis.UniversalClient, key string) sessionRow {
	row := sessionRow{Key: key}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		row.Err = err
		return row
	}
	id, err := domainauth.DecodeIdentity(raw)
	if err != nil {
		row.Err = err
		return row
	}
	row.Email = id.Base().Email
	row.Role = string(id.Role())
	row.Dashboard = nav.SelectDashboardFor(id).String()
	if ttl, ttlErr := client.TTL(ctx, key).Result(); ttlErr == nil {
		row.TTL = ttl
	}
	return row
}

func printSessions(w io.Writer, rows []sessionRow) error {
	if len(rows) == 0 {
		return writeln(w, "(no sessions found)")
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "KEY\tEMAIL\tROLE\tDASHBOARD\tTTL\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if r.Err != nil {
			if err := writef(tw, "%s\t-\t-\t-\terror: %v\n", r.Key, r.Err); err != nil {
				return err
			}
			continue
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n", r.Key, r.Email, r.Role, r.Dashboard, renderTTL(r.TTL)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(w, "\nTotal sessions: %d\n", len(rows))
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearSessionsFlags(args)
	if err != nil {
		return err
	}

	target := "all persisted sessions"
	if opts.ClientID != "" {
		target = "the session for client " + opts.ClientID
	}
	if !opts.DryRun {
		if confirmErr := confirmAction(os.Stdin, os.Stdout, opts.Yes, "delete "+target); confirmErr != nil {
			return confirmErr
		}
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer closeRedis(cmdCtx, client)

	deleted, err := clearSessions(ctx, client, cmdCtx.Config.Session.KeyPrefix, opts)
	if err != nil {
		return err
	}
	verb := "deleted"
	if opts.DryRun {
		verb = "would delete"
	}
	cmdCtx.Logger.Info("clear sessions complete", "dry_run", opts.DryRun)
	return writef(os.Stdout, "%s %d session(s)\n", verb, deleted)
}

func clearSessions(ctx context.Context, client redis.UniversalClient, prefix string, opts clearSessionsOptions) (int, error) {
	if opts.ClientID != "" {
		key := prefix + opts.ClientID
		if opts.DryRun {
			n, err := client.Exists(ctx, key).Result()
			if err != nil {
				return 0, fmt.Errorf("redis exists: %w", err)
			}
			return int(n), nil
		}
		n, err := client.Del(ctx, key).Result()
		if err != nil {
			return 0, fmt.Errorf("redis del: %w", err)
		}
		return int(n), nil
	}

	iter := client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	total := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if opts.DryRun {
			total += len(batch)
		} else {
			n, err := client.Del(ctx, batch...).Result()
			if err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			total += int(n)
		}
		batch = batch[:0]
		return nil
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return total, fmt.Errorf("redis scan: %w", err)
	}
	return total, flush()
}

func renderTTL(d time.Duration) string {
	switch {
	case d == -1 || d == -1*time.Second:
		return "no expiry"
	case d == -2 || d == -2*time.Second:
		return "key missing"
	case d == 0:
		return "-"
	default:
		return d.Round(time.Second).String()
	}
}

func parseListSessionsFlags(args []string) (listSessionsOptions, error) {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts listSessionsOptions
	fs.IntVar(&opts.Limit, "limit", 100, "Maximum sessions to print (0 for all)")
	if err := fs.Parse(args); err != nil {
		return listSessionsOptions{}, err
	}
	if opts.Limit < 0 {
		return listSessionsOptions{}, errors.New("--limit must not be negative")
	}
	return opts, nil
}

func parseClearSessionsFlags(args []string) (clearSessionsOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts clearSessionsOptions
	fs.StringVar(&opts.ClientID, "client", "", "Client ID whose session should be deleted")
	fs.BoolVar(&opts.All, "all", false, "Delete every persisted session")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Report how many sessions would be deleted")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return clearSessionsOptions{}, err
	}
	switch {
	case opts.ClientID == "" && !opts.All:
		return clearSessionsOptions{}, errors.New("either --client or --all is required")
	case opts.ClientID != "" && opts.All:
		return clearSessionsOptions{}, errors.New("--client and --all are mutually exclusive")
	}
	return opts, nil
}

//nolint:ireturn // returning redis.UniversalClient keeps sentinel support flexible.
func connectRedis(cmdCtx *commandContext) (redis.UniversalClient, error) {
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func closeRedis(cmdCtx *commandContext, client redis.UniversalClient) {
	if err := client.Close(); err != nil {
		cmdCtx.Logger.Warn("redis close failed", "error", err)
	}
}
