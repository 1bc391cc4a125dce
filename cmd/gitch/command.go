package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/moorara/gitch/internal/changelog"
	"github.com/moorara/gitch/internal/git"
	"github.com/moorara/gitch/internal/publish"
	"github.com/moorara/gitch/internal/remote"
	"github.com/moorara/gitch/internal/remote/github"
	"github.com/moorara/gitch/internal/spec"
	"github.com/moorara/gitch/internal/version"
	"github.com/moorara/gitch/pkg/log"
)

const example = `  gitch               Sync the latest changelog entry
  gitch 1.2.0         Sync the changelog entry for tag 1.2.0
  gitch --all         Sync every changelog entry, skipping existing releases
  gitch -a -o         Sync every changelog entry, overwriting existing releases
  gitch --list        List the tags in the changelog`

type app struct {
	logger log.Logger
	out    io.Writer
	dir    string

	all       bool
	overwrite bool
	list      bool
	dryRun    bool
	noVerify  bool
	verbose   bool
	changelog string
}

func newCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gitch [flags] [TAG]",
		Short:         "Sync GitHub release notes with the project changelog",
		Long:          "Sync GitHub release notes with the project changelog.\nIf no TAG is provided, the latest changelog entry is synced.\nThe GitHub token is read from the GITCH_GITHUB_TOKEN environment variable.",
		Example:       example,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return err
			}

			if len(args) == 1 && a.all {
				return errors.New("do not provide TAG with --all")
			}

			return nil
		},
		RunE: a.run,
	}

	cmd.SetVersionTemplate("{{.Version}}\n")

	f := cmd.Flags()
	f.BoolVarP(&a.all, "all", "a", false, "sync all tags; TAG must not be provided")
	f.BoolVarP(&a.overwrite, "overwrite", "o", false, "overwrite the github release if it exists")
	f.BoolVarP(&a.list, "list", "l", false, "list the tags present in the changelog, and exit")
	f.BoolVar(&a.dryRun, "dry-run", false, "run every step except writing to github")
	f.BoolVar(&a.noVerify, "no-verify", false, "do not check that the tag exists at the git remote")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "show the debugging logs")
	f.StringVar(&a.changelog, "changelog", spec.DefaultChangelog, "the changelog file relative to the repository root")

	return cmd
}

func (a *app) overrides(cmd *cobra.Command) map[string]any {
	overrides := map[string]any{}
	f := cmd.Flags()

	if f.Changed("changelog") {
		overrides[spec.KeyChangelog] = a.changelog
	}

	if f.Changed("verbose") {
		overrides[spec.KeyDebug] = a.verbose
	}

	if f.Changed("overwrite") {
		overrides[spec.KeyOverwrite] = a.overwrite
	}

	if f.Changed("dry-run") {
		overrides[spec.KeyDryRun] = a.dryRun
	}

	if f.Changed("no-verify") {
		overrides[spec.KeyVerifyTag] = !a.noVerify
	}

	return overrides
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// CREATE DEPENDENCIES

	gitRepo, err := git.NewRepo(a.logger, a.dir)
	if err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}

	root, err := gitRepo.Root()
	if err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}

	// READING SPEC

	s, err := spec.Load(root, a.overrides(cmd))
	if err != nil {
		return err
	}

	// Update logger verbosity
	if s.Debug {
		a.logger.ChangeVerbosity(log.Debug)
	} else {
		a.logger.ChangeVerbosity(log.Info)
	}

	rc, err := publish.ResolveContext(a.logger, gitRepo, s)
	if err != nil {
		return err
	}

	chlog := changelog.NewFile(a.logger, rc.ChangelogPath)

	// RUNNING COMMANDS

	if a.list {
		return a.listTags(publish.New(a.logger, s, rc, gitRepo, chlog, nil))
	}

	if s.GitHubToken == "" {
		return errors.New("expected $GITCH_GITHUB_TOKEN")
	}

	git.WithAccessToken(s.GitHubToken)(gitRepo)

	remoteRepo := github.NewRepo(a.logger, rc.Owner, rc.Name, s.GitHubToken,
		github.WithAPIURL(s.GitHubAPIURL),
		github.WithTimeout(s.Timeout),
	)

	releases := remote.NewDirectory(a.logger, remoteRepo)
	p := publish.New(a.logger, s, rc, gitRepo, chlog, releases)

	sel := publish.Selection{All: a.all}
	if len(args) == 1 {
		sel.Tag = args[0]
	}

	tags, err := p.ResolveTargets(sel)
	if err != nil {
		return err
	}

	// A failure for an explicitly requested tag fails the run
	if sel.Tag != "" {
		_, err := p.SyncOne(ctx, sel.Tag)
		return err
	}

	n, err := p.SyncMany(ctx, tags)
	if err != nil {
		return err
	}

	if len(tags) > 1 {
		fmt.Fprintf(a.out, "%d changelog entries pushed to github\n", n)
	}

	return nil
}

func (a *app) listTags(p *publish.Publisher) error {
	tags, err := p.Tags()
	if err != nil {
		return err
	}

	if len(tags) == 0 {
		return errors.New("no tags in changelog")
	}

	for _, tag := range tags {
		fmt.Fprintln(a.out, tag)
	}

	return nil
}
