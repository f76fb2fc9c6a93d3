package main

import (
	"context"
	"encoding/json"
	"fmt"
	stdlog "log"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"gitlab-gateway/internal/api"
	"gitlab-gateway/internal/config"
	"gitlab-gateway/internal/logger"
	"gitlab-gateway/internal/platform/gitlab"
	"gitlab-gateway/internal/service"
)

type cliCtx struct {
	context.Context
	Permissions *service.PermissionService
	Items       *service.ItemsService
}

type cli struct {
	Permission PermissionCmd `cmd:"" help:"Grant or change a user's role on a group or project"`
	Items      ItemsCmd      `cmd:"" help:"List issues or merge requests created in a given year"`
}

func main() {
	var cli cli
	ctx := kong.Parse(&cli,
		kong.UsageOnError(),
		kong.Name("gitlabctl"),
		kong.Description("gitlabctl talks to the GitLab API from the command line"),
	)

	// A .env next to the binary is convenient for local use; the process
	// environment still wins.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		stdlog.Fatalf("cannot initialize config: %v", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		stdlog.Fatalf("cannot initialize logger: %v", err)
	}
	defer log.Sync()

	client := gitlab.New(&cfg.GitLab, nil, log)

	err = ctx.Run(&cliCtx{
		Context:     context.Background(),
		Permissions: service.NewPermissionService(client, log),
		Items:       service.NewItemsService(client, log),
	})
	ctx.FatalIfErrorf(err)
}

type PermissionCmd struct {
	Username string `help:"GitLab username" required:""`
	Target   string `help:"Group or project path" required:""`
	Role     string `help:"Role to assign: guest, reporter, developer, maintainer or owner" required:""`
}

func (c *PermissionCmd) Run(ctx *cliCtx) error {
	membership, err := ctx.Permissions.SetPermission(ctx, c.Username, c.Target, c.Role)
	if err != nil {
		return err
	}

	result := api.MembershipResult{
		TargetID:    membership.TargetID,
		TargetKind:  string(membership.TargetKind),
		UserID:      membership.UserID,
		AppliedRole: membership.Role.String(),
		Action:      membership.Action,
	}

	return printJSON(result)
}

type ItemsCmd struct {
	Type string `help:"Item type: mr or issues" required:""`
	Year string `help:"4-digit year to filter by" required:""`
}

func (c *ItemsCmd) Run(ctx *cliCtx) error {
	items, err := ctx.Items.ListItems(ctx, c.Type, c.Year)
	if err != nil {
		return err
	}

	summaries := make([]api.ItemSummary, len(items))
	for i, item := range items {
		summaries[i] = api.ItemSummary{
			ID:        item.ID,
			Title:     item.Title,
			State:     item.State,
			CreatedAt: item.CreatedAt,
			WebURL:    item.WebURL,
			Author:    item.Author,
		}
	}

	return printJSON(summaries)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
