package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/cycks/loftier-cli/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login      commands.LoginCmd      `cmd:"" help:"Log in with email and password"`
		Logout     commands.LogoutCmd     `cmd:"" help:"Log out and clear the local session"`
		Whoami     commands.WhoamiCmd     `cmd:"" help:"Show the current session"`
		Register   commands.RegisterCmd   `cmd:"" help:"Create an account"`
		Posts      commands.PostsCmd      `cmd:"" help:"Browse and rate posts"`
		Categories commands.CategoriesCmd `cmd:"" help:"Browse categories"`
		Comment    commands.CommentCmd    `cmd:"" help:"Comment on a post"`
		Contact    commands.ContactCmd    `cmd:"" help:"Send a contact message"`
		Users      commands.UsersCmd      `cmd:"" help:"Manage accounts (admin)"`
		Dashboard  commands.DashboardCmd  `cmd:"" help:"Enter a dashboard area"`
		Configure  commands.ConfigureCmd  `cmd:"" help:"Write the CLI configuration"`
		Server     string                 `help:"Platform server URL" env:"LOFTIER_SERVER"`
		Home       string                 `help:"Loftier home directory" env:"LOFTIER_HOME"`
		Debug      bool                   `help:"Enable debug mode."`
		Version    kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{
		Debug:   cli.Debug,
		Version: version,
		Server:  cli.Server,
		Home:    cli.Home,
	})
	cmd.FatalIfErrorf(err)
}
